/*
Copyright 2026 The Listkv Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package listcmd

import (
	"sync"

	"listkv.org/pkg/list"
	"listkv.org/pkg/listend"
)

// Store is the slice of the keyspace a command needs: lookup,
// create-if-missing, and delete of list values by (database,key). The
// full keyspace map — every other value type, expiry, persistence —
// is out of scope; a real server adapts its own map to this
// interface.
type Store interface {
	// GetList returns the list at (db,key). wrongType is true if the
	// key holds a non-list value, in which case l is nil.
	GetList(db int, key string) (l *list.List, wrongType bool)
	// GetOrCreateList is like GetList but creates an empty list when
	// key is absent, for commands with create-if-missing semantics.
	GetOrCreateList(db int, key string) (l *list.List, wrongType bool)
	// Delete removes key entirely, used once a list becomes empty.
	Delete(db int, key string)
}

// MemoryStore is a reference Store implementation backed by plain Go
// maps, also implementing blocking.Keyspace so a single store can
// back both the command layer and the blocking coordinator.
type MemoryStore struct {
	opts list.Options

	mu      sync.Mutex
	lists   map[int]map[string]*list.List
	nonList map[int]map[string]bool
}

// NewMemoryStore returns an empty MemoryStore whose lists use opts
// for their packed/node conversion thresholds.
func NewMemoryStore(opts list.Options) *MemoryStore {
	return &MemoryStore{
		opts:    opts,
		lists:   make(map[int]map[string]*list.List),
		nonList: make(map[int]map[string]bool),
	}
}

func (m *MemoryStore) dbLists(db int) map[string]*list.List {
	d, ok := m.lists[db]
	if !ok {
		d = make(map[string]*list.List)
		m.lists[db] = d
	}
	return d
}

// MarkNonList marks key as holding a non-list value in database db,
// for exercising the wrong-type error paths in tests.
func (m *MemoryStore) MarkNonList(db int, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.nonList[db]
	if !ok {
		d = make(map[string]bool)
		m.nonList[db] = d
	}
	d[key] = true
}

func (m *MemoryStore) isNonList(db int, key string) bool {
	d, ok := m.nonList[db]
	return ok && d[key]
}

func (m *MemoryStore) GetList(db int, key string) (*list.List, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.isNonList(db, key) {
		return nil, true
	}
	return m.dbLists(db)[key], false
}

func (m *MemoryStore) GetOrCreateList(db int, key string) (*list.List, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.isNonList(db, key) {
		return nil, true
	}
	d := m.dbLists(db)
	l, ok := d[key]
	if !ok {
		l = list.New(m.opts)
		d[key] = l
	}
	return l, false
}

func (m *MemoryStore) Delete(db int, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.dbLists(db), key)
	if d, ok := m.nonList[db]; ok {
		delete(d, key)
	}
}

// Pop implements blocking.Keyspace.
func (m *MemoryStore) Pop(db int, key string, end listend.End) ([]byte, bool) {
	m.mu.Lock()
	l, nonList := m.dbLists(db)[key], m.isNonList(db, key)
	m.mu.Unlock()
	if nonList || l == nil {
		return nil, false
	}
	v, ok := l.Pop(end)
	if !ok {
		return nil, false
	}
	if l.IsEmpty() {
		m.Delete(db, key)
	}
	return v, true
}

// Push implements blocking.Keyspace.
func (m *MemoryStore) Push(db int, key string, value []byte, end listend.End) (wrongType bool) {
	l, wrongType := m.GetOrCreateList(db, key)
	if wrongType {
		return true
	}
	l.Push(value, end)
	return false
}

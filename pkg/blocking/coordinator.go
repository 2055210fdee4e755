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

package blocking

import (
	"sync"
	"time"

	"listkv.org/pkg/listend"
)

// Keyspace is the narrow slice of the datastore's keyspace that the
// blocking coordinator needs in order to serve a ready waiter: enough
// to pop an element and, for move-pop waiters, push it elsewhere. The
// full keyspace map, command dispatch and everything else stay out of
// this package entirely.
type Keyspace interface {
	// Pop removes and returns one value from the list at (db,key),
	// from the given end. ok is false if the key doesn't exist or its
	// list is empty.
	Pop(db int, key string, end listend.End) (value []byte, ok bool)
	// Push inserts value at the given end of the list at (db,key),
	// creating it if necessary. wrongType is true if the key holds a
	// non-list value; in that case no push happened.
	Push(db int, key string, value []byte, end listend.End) (wrongType bool)
}

type readyEvent struct {
	db  int
	key string
}

type dbState struct {
	waiters   map[string][]*Client
	readyKeys map[string]bool
}

func newDBState() *dbState {
	return &dbState{
		waiters:   make(map[string][]*Client),
		readyKeys: make(map[string]bool),
	}
}

// Coordinator implements the blocking-pop protocol: client
// registration per key, readiness marking on push, and FIFO draining
// at command/transaction/script boundaries.
type Coordinator struct {
	keyspace Keyspace

	mu          sync.Mutex
	dbs         map[int]*dbState
	readyEvents []readyEvent
	allClients  map[ClientID]*Client // for the deadline sweeper
}

// NewCoordinator returns a Coordinator that serves waiters by calling
// back into ks.
func NewCoordinator(ks Keyspace) *Coordinator {
	return &Coordinator{
		keyspace:   ks,
		dbs:        make(map[int]*dbState),
		allClients: make(map[ClientID]*Client),
	}
}

func (c *Coordinator) db(n int) *dbState {
	d, ok := c.dbs[n]
	if !ok {
		d = newDBState()
		c.dbs[n] = d
	}
	return d
}

// Block registers client as waiting on keys. If ctx.InTransaction is
// true, Block does nothing and returns false immediately: the caller
// must treat the pop as having failed (null reply), per the
// transaction short-circuit.
func (c *Coordinator) Block(ctx Context, client *Client, keys []string, destination string) (blocked bool) {
	if ctx.InTransaction {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	client.Destination = destination
	client.keys = dedupKeys(keys)
	d := c.db(client.db)
	for _, k := range client.keys {
		d.waiters[k] = append(d.waiters[k], client)
	}
	c.allClients[client.ID] = client
	return true
}

func dedupKeys(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// Unblock removes client from every key it was waiting on. Safe to
// call on a client that was never blocked (e.g. disconnect racing a
// delivery).
func (c *Coordinator) Unblock(client *Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unblockLocked(client)
}

func (c *Coordinator) unblockLocked(client *Client) {
	d, ok := c.dbs[client.db]
	if ok {
		for _, k := range client.keys {
			d.waiters[k] = removeClient(d.waiters[k], client)
			if len(d.waiters[k]) == 0 {
				delete(d.waiters, k)
			}
		}
	}
	client.keys = nil
	client.Destination = ""
	delete(c.allClients, client.ID)
}

func removeClient(list []*Client, client *Client) []*Client {
	out := list[:0]
	for _, c := range list {
		if c.ID != client.ID {
			out = append(out, c)
		}
	}
	return out
}

// SignalReady marks (db,key) as having a waiter-visible push. It is a
// no-op if nobody is waiting on key, or if the key is already queued
// for the next drain.
func (c *Coordinator) SignalReady(db int, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.signalReadyLocked(db, key)
}

func (c *Coordinator) signalReadyLocked(db int, key string) {
	d := c.db(db)
	if len(d.waiters[key]) == 0 {
		return
	}
	if d.readyKeys[key] {
		return
	}
	d.readyKeys[key] = true
	c.readyEvents = append(c.readyEvents, readyEvent{db: db, key: key})
}

// timedOutClients returns every currently blocked client whose
// deadline has passed as of now, already unblocked. Called by the
// Sweeper.
func (c *Coordinator) timedOutClients(now time.Time) []*Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	var expired []*Client
	for _, client := range c.allClients {
		if client.Deadline.IsZero() || client.Deadline.After(now) {
			continue
		}
		expired = append(expired, client)
	}
	for _, client := range expired {
		c.unblockLocked(client)
	}
	return expired
}

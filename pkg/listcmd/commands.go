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
	"listkv.org/pkg/list"
	"listkv.org/pkg/listend"
)

// Commands binds the synchronous list command surface to a Store; each
// method corresponds to one list command. Commands holds no state of
// its own, but the *list.List values a Store hands out are not
// synchronized, so concurrent commands on the same key need outside
// serialization even when the Store itself is safe for concurrent use.
type Commands struct {
	store Store
}

// NewCommands returns a Commands bound to store.
func NewCommands(store Store) *Commands {
	return &Commands{store: store}
}

func lengthReply(l *list.List) Reply {
	return intReply(int64(l.Len()))
}

func pushCommon(c *Commands, db int, key string, values [][]byte, end listend.End, createIfMissing bool) Reply {
	if len(values) == 0 {
		return errReply(ErrSyntax)
	}
	var l *list.List
	var wrongType bool
	if createIfMissing {
		l, wrongType = c.store.GetOrCreateList(db, key)
	} else {
		l, wrongType = c.store.GetList(db, key)
	}
	if wrongType {
		return errReply(ErrWrongType)
	}
	if l == nil {
		// RPUSHX/LPUSHX against a missing key: a no-reinsert no-op,
		// reported as length zero.
		return intReply(0)
	}
	for _, v := range values {
		l.Push(v, end)
	}
	return lengthReply(l)
}

// LPush implements LPUSH key value [value ...].
func (c *Commands) LPush(db int, key string, values [][]byte) Reply {
	return pushCommon(c, db, key, values, listend.Head, true)
}

// RPush implements RPUSH key value [value ...].
func (c *Commands) RPush(db int, key string, values [][]byte) Reply {
	return pushCommon(c, db, key, values, listend.Tail, true)
}

// LPushX implements LPUSHX key value [value ...]: pushes only if key
// already holds a list.
func (c *Commands) LPushX(db int, key string, values [][]byte) Reply {
	return pushCommon(c, db, key, values, listend.Head, false)
}

// RPushX implements RPUSHX key value [value ...].
func (c *Commands) RPushX(db int, key string, values [][]byte) Reply {
	return pushCommon(c, db, key, values, listend.Tail, false)
}

func popCommon(c *Commands, db int, key string, end listend.End) Reply {
	l, wrongType := c.store.GetList(db, key)
	if wrongType {
		return errReply(ErrWrongType)
	}
	if l == nil {
		return nullReply()
	}
	v, ok := l.Pop(end)
	if !ok {
		return nullReply()
	}
	if l.IsEmpty() {
		c.store.Delete(db, key)
	}
	return bulkReply(v)
}

// LPop implements LPOP key.
func (c *Commands) LPop(db int, key string) Reply { return popCommon(c, db, key, listend.Head) }

// RPop implements RPOP key.
func (c *Commands) RPop(db int, key string) Reply { return popCommon(c, db, key, listend.Tail) }

// LLen implements LLEN key.
func (c *Commands) LLen(db int, key string) Reply {
	l, wrongType := c.store.GetList(db, key)
	if wrongType {
		return errReply(ErrWrongType)
	}
	if l == nil {
		return intReply(0)
	}
	return lengthReply(l)
}

// LIndex implements LINDEX key index.
func (c *Commands) LIndex(db int, key string, index int) Reply {
	l, wrongType := c.store.GetList(db, key)
	if wrongType {
		return errReply(ErrWrongType)
	}
	if l == nil {
		return nullReply()
	}
	v, ok := l.Index(index)
	if !ok {
		return nullReply()
	}
	return bulkReply(v)
}

// LSet implements LSET key index value.
func (c *Commands) LSet(db int, key string, index int, value []byte) Reply {
	l, wrongType := c.store.GetList(db, key)
	if wrongType {
		return errReply(ErrWrongType)
	}
	if l == nil {
		return errReply(ErrNoSuchKey)
	}
	if !l.Set(index, value) {
		return errReply(ErrOutOfRange)
	}
	return okReply()
}

// LRange implements LRANGE key start stop.
func (c *Commands) LRange(db int, key string, start, stop int) Reply {
	l, wrongType := c.store.GetList(db, key)
	if wrongType {
		return errReply(ErrWrongType)
	}
	if l == nil {
		return arrayReply(nil)
	}
	return arrayReply(l.Range(start, stop))
}

// LTrim implements LTRIM key start stop.
func (c *Commands) LTrim(db int, key string, start, stop int) Reply {
	l, wrongType := c.store.GetList(db, key)
	if wrongType {
		return errReply(ErrWrongType)
	}
	if l == nil {
		return okReply()
	}
	l.Trim(start, stop)
	if l.IsEmpty() {
		c.store.Delete(db, key)
	}
	return okReply()
}

// LRem implements LREM key count value. Positive count removes from
// the head towards the tail, negative from the tail towards the
// head, zero removes every occurrence.
func (c *Commands) LRem(db int, key string, count int, value []byte) Reply {
	l, wrongType := c.store.GetList(db, key)
	if wrongType {
		return errReply(ErrWrongType)
	}
	if l == nil {
		return intReply(0)
	}
	n := l.Remove(value, count)
	if l.IsEmpty() {
		c.store.Delete(db, key)
	}
	return intReply(int64(n))
}

// LInsert implements LINSERT key BEFORE|AFTER pivot value.
func (c *Commands) LInsert(db int, key string, before bool, pivot, value []byte) Reply {
	l, wrongType := c.store.GetList(db, key)
	if wrongType {
		return errReply(ErrWrongType)
	}
	if l == nil {
		return intReply(0)
	}
	if !l.InsertAdjacent(pivot, value, before) {
		return intReply(-1)
	}
	return lengthReply(l)
}

// RPopLPush implements RPOPLPUSH source destination: pop the source's
// tail and push it onto the destination's head, atomically from the
// caller's point of view. source == destination rotates the list.
func (c *Commands) RPopLPush(db int, source, destination string) Reply {
	src, wrongType := c.store.GetList(db, source)
	if wrongType {
		return errReply(ErrWrongType)
	}
	if src == nil {
		return nullReply()
	}
	v, ok := src.Pop(listend.Tail)
	if !ok {
		return nullReply()
	}
	dst, wrongType := c.store.GetOrCreateList(db, destination)
	if wrongType {
		// Put it back; the source must observe no change on failure.
		src.Push(v, listend.Tail)
		return errReply(ErrWrongType)
	}
	dst.Push(v, listend.Head)
	if src.IsEmpty() {
		c.store.Delete(db, source)
	}
	return bulkReply(v)
}

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

package list

import (
	"bytes"

	"listkv.org/pkg/listend"
)

// Push inserts value at the given end, converting to node form first
// if the push crosses a configured threshold.
func (l *List) Push(value []byte, end listend.End) {
	l.maybeConvert(len(value))
	if l.rep == repNode {
		l.nodes.Push(value, end)
		return
	}
	l.packed.Push(value, end)
}

// Pop removes and returns the value at the given end.
func (l *List) Pop(end listend.End) ([]byte, bool) {
	if l.rep == repNode {
		v, ok := l.nodes.Pop(end)
		if !ok {
			return nil, false
		}
		return v.([]byte), true
	}
	v, ok := l.packed.Pop(end)
	if !ok {
		return nil, false
	}
	return valueBytes(v), true
}

// Index returns the value at logical position i (negative counts from
// the tail, -1 is the last element).
func (l *List) Index(i int) ([]byte, bool) {
	if l.rep == repNode {
		n := l.nodes.Index(i)
		if n == nil {
			return nil, false
		}
		return n.Value.([]byte), true
	}
	cur, ok := l.packed.Index(i)
	if !ok {
		return nil, false
	}
	return valueBytes(l.packed.Get(cur)), true
}

// Set overwrites the value at logical position i, reporting whether i
// was in range. In packed form this is a delete-then-insert since
// listpack entries aren't updated in place.
func (l *List) Set(i int, value []byte) bool {
	if l.rep == repNode {
		n := l.nodes.Index(i)
		if n == nil {
			return false
		}
		n.Value = value
		return true
	}
	cur, ok := l.packed.Index(i)
	if !ok {
		return false
	}
	if i < 0 {
		i += l.packed.Len()
	}
	l.packed.DeleteRange(cur, 1)
	cur2, ok := l.packed.Index(i)
	if ok {
		l.packed.InsertBefore(cur2, value)
	} else {
		l.packed.InsertBefore(l.packed.End(), value)
	}
	l.maybeConvert(len(value))
	return true
}

// Range returns the values from logical positions start..stop
// inclusive (Redis-style inclusive range, negative indices counted
// from the tail), clamped to the list's bounds.
func (l *List) Range(start, stop int) [][]byte {
	n := l.Len()
	start = clampIndex(start, n)
	stop = clampIndex(stop, n)
	if start > stop || start >= n {
		return nil
	}
	out := make([][]byte, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		v, ok := l.Index(i)
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

// Trim keeps only the values from logical positions start..stop
// inclusive, discarding the rest.
func (l *List) Trim(start, stop int) {
	n := l.Len()
	start = clampIndex(start, n)
	stop = clampIndex(stop, n)
	if start > stop || n == 0 {
		l.clear()
		return
	}
	it := l.NewIterator(listend.Tail)
	for i := n - 1; i > stop; i-- {
		if _, ok := it.Next(); !ok {
			break
		}
		it.DeleteCurrent()
	}
	it.Close()
	it = l.NewIterator(listend.Head)
	for i := 0; i < start; i++ {
		if _, ok := it.Next(); !ok {
			break
		}
		it.DeleteCurrent()
	}
	it.Close()
}

func (l *List) clear() {
	for {
		if _, ok := l.Pop(listend.Head); !ok {
			return
		}
	}
}

// clampIndex resolves a possibly-negative Redis-style index to a
// value in [0, n], the way LRANGE/LTRIM define out-of-range bounds.
func clampIndex(i, n int) int {
	if i < 0 {
		i = n + i
	}
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	return i
}

// InsertAdjacent inserts value immediately before or after the first
// occurrence of pivot, implementing LINSERT. Reports false if pivot
// isn't found.
func (l *List) InsertAdjacent(pivot, value []byte, before bool) bool {
	idx := l.indexOf(pivot)
	if idx < 0 {
		return false
	}
	if before {
		l.insertAt(idx, value)
	} else {
		l.insertAt(idx+1, value)
	}
	return true
}

func (l *List) indexOf(value []byte) int {
	n := l.Len()
	for i := 0; i < n; i++ {
		v, ok := l.Index(i)
		if ok && bytes.Equal(v, value) {
			return i
		}
	}
	return -1
}

func (l *List) insertAt(idx int, value []byte) {
	n := l.Len()
	switch {
	case idx <= 0:
		l.Push(value, listend.Head)
	case idx >= n:
		l.Push(value, listend.Tail)
	case l.rep == repNode:
		at := l.nodes.Index(idx)
		l.nodes.InsertBefore(at, value)
	default:
		l.maybeConvert(len(value))
		if l.rep == repNode {
			at := l.nodes.Index(idx)
			l.nodes.InsertBefore(at, value)
			return
		}
		cur, ok := l.packed.Index(idx)
		if !ok {
			l.packed.Push(value, listend.Tail)
			return
		}
		l.packed.InsertBefore(cur, value)
	}
}

// Remove deletes occurrences of value, implementing LREM: count > 0
// removes up to count occurrences scanning head-to-tail, count < 0
// scans tail-to-head, count == 0 removes every occurrence. Returns
// the number of elements removed.
func (l *List) Remove(value []byte, count int) int {
	dir := listend.Head
	limit := count
	if count < 0 {
		dir = listend.Tail
		limit = -count
	}
	removed := 0
	it := l.NewIterator(dir)
	defer it.Close()
	for {
		if limit > 0 && removed >= limit {
			return removed
		}
		v, ok := it.Next()
		if !ok {
			return removed
		}
		if bytes.Equal(v, value) {
			it.DeleteCurrent()
			removed++
		}
	}
}

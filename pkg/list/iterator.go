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
	"listkv.org/pkg/listend"
	"listkv.org/pkg/listnode"
)

// Iterator walks a List from one end to the other and supports
// deleting the value it just returned — the access pattern LREM and
// LTRIM both need. An Iterator pins the list's current representation:
// Push/Set calls that would otherwise convert packed form to node
// form panic instead while one is open, since the conversion would
// silently invalidate whatever position the iterator is tracking.
type Iterator struct {
	l      *List
	closed bool

	// packed-representation state: logical indices, since listpack
	// cursors are raw byte offsets that a delete shifts out from
	// under any cursor recorded before it.
	dir      listend.End
	nextIdx  int
	curIdx   int
	pkExhausted bool

	// node-representation state, delegated to listnode's own
	// cursor-caching iterator.
	ndIt  *listnode.Iterator
	ndCur *listnode.Node
}

// NewIterator returns an Iterator starting at the given end.
func (l *List) NewIterator(start listend.End) *Iterator {
	l.iterDepth++
	it := &Iterator{l: l, dir: start}
	if l.rep == repNode {
		it.ndIt = l.nodes.Iterator(start)
		return it
	}
	if start == listend.Head {
		it.nextIdx = 0
	} else {
		it.nextIdx = l.packed.Len() - 1
	}
	it.pkExhausted = l.packed.Len() == 0
	return it
}

// Next returns the next value in the iterator's direction, or
// ok=false when exhausted. Exhaustion automatically releases the
// iterator's hold on the list's representation.
func (it *Iterator) Next() (value []byte, ok bool) {
	if it.closed {
		return nil, false
	}
	if it.l.rep == repNode {
		n, ok := it.ndIt.Next()
		if !ok {
			it.Close()
			return nil, false
		}
		it.ndCur = n
		return n.Value.([]byte), true
	}
	if it.pkExhausted || it.nextIdx < 0 {
		it.Close()
		return nil, false
	}
	cur, ok := it.l.packed.Index(it.nextIdx)
	if !ok {
		it.Close()
		return nil, false
	}
	v := valueBytes(it.l.packed.Get(cur))
	it.curIdx = it.nextIdx
	if it.dir == listend.Head {
		it.nextIdx++
	} else {
		it.nextIdx--
	}
	return v, true
}

// DeleteCurrent removes the value Next most recently returned. It is
// only valid to call once per successful Next call.
func (it *Iterator) DeleteCurrent() {
	if it.l.rep == repNode {
		if it.ndCur != nil {
			it.l.nodes.Remove(it.ndCur)
			it.ndCur = nil
		}
		return
	}
	cur, ok := it.l.packed.Index(it.curIdx)
	if !ok {
		return
	}
	it.l.packed.DeleteRange(cur, 1)
	// Deleting the forward cursor's current element shifts every
	// later element down one slot; the backward cursor is unaffected
	// since it only ever revisits lower indices than the one just
	// removed.
	if it.dir == listend.Head {
		it.nextIdx--
	}
}

// Close releases the iterator's hold on the list's representation.
// Safe to call multiple times and after exhaustion.
func (it *Iterator) Close() {
	if it.closed {
		return
	}
	it.closed = true
	it.l.iterDepth--
}

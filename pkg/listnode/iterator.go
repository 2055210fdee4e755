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

package listnode

import "listkv.org/pkg/listend"

// Iterator walks a List from one end to the other. It caches the
// node it will visit next before returning the current one, so a
// caller is always free to Remove the node Next just handed back —
// the exact pattern LREM needs when it deletes matching elements
// while scanning.
type Iterator struct {
	dir  listend.End
	next *Node
}

// Iterator returns a new Iterator starting at the given end: Head
// walks head-to-tail, Tail walks tail-to-head.
func (l *List) Iterator(start listend.End) *Iterator {
	it := &Iterator{dir: start}
	if start == listend.Head {
		it.next = l.head
	} else {
		it.next = l.tail
	}
	return it
}

// Next returns the next node in the iterator's direction, or
// ok=false when the iterator is exhausted.
func (it *Iterator) Next() (n *Node, ok bool) {
	n = it.next
	if n == nil {
		return nil, false
	}
	if it.dir == listend.Head {
		it.next = n.next
	} else {
		it.next = n.prev
	}
	return n, true
}

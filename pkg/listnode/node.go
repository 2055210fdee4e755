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

// Node is one element of a List. The zero value is not meaningful;
// Nodes are only produced by List's own methods.
type Node struct {
	prev, next *Node
	Value      interface{}
}

// Next returns the node after n, or nil at the tail.
func (n *Node) Next() *Node { return n.next }

// Prev returns the node before n, or nil at the head.
func (n *Node) Prev() *Node { return n.prev }

// Callbacks customize how a List treats the values it holds. Every
// field may be left nil; List falls back to doing nothing (Clone,
// Free) or a plain == comparison (Match).
type Callbacks struct {
	// Clone returns a copy of v, used by Duplicate.
	Clone func(v interface{}) interface{}
	// Free releases any resources associated with v, called when a
	// node holding it is removed from the list.
	Free func(v interface{})
	// Match reports whether v equals key, used by Find.
	Match func(v interface{}, key interface{}) bool
}

// List is a doubly linked list with pluggable clone/free/match
// behavior and negative-index addressing, as needed by the
// representation a packed list converts to once it grows past its
// compact-form thresholds.
type List struct {
	head, tail *Node
	len        int
	cb         Callbacks
}

// New returns an empty List using cb to manage element values.
func New(cb Callbacks) *List {
	return &List{cb: cb}
}

// Len returns the number of nodes in the list.
func (l *List) Len() int { return l.len }

// Head returns the first node, or nil if the list is empty.
func (l *List) Head() *Node { return l.head }

// Tail returns the last node, or nil if the list is empty.
func (l *List) Tail() *Node { return l.tail }

// AddHead inserts value at the front of the list and returns its node.
func (l *List) AddHead(value interface{}) *Node {
	n := &Node{Value: value}
	if l.head == nil {
		l.head, l.tail = n, n
	} else {
		n.next = l.head
		l.head.prev = n
		l.head = n
	}
	l.len++
	return n
}

// AddTail inserts value at the back of the list and returns its node.
func (l *List) AddTail(value interface{}) *Node {
	n := &Node{Value: value}
	if l.tail == nil {
		l.head, l.tail = n, n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.len++
	return n
}

// Push inserts value at the given end.
func (l *List) Push(value interface{}, end listend.End) *Node {
	if end == listend.Head {
		return l.AddHead(value)
	}
	return l.AddTail(value)
}

// InsertBefore inserts value immediately before at and returns its
// node. at must belong to l.
func (l *List) InsertBefore(at *Node, value interface{}) *Node {
	if at == l.head {
		return l.AddHead(value)
	}
	n := &Node{Value: value, prev: at.prev, next: at}
	at.prev.next = n
	at.prev = n
	l.len++
	return n
}

// InsertAfter inserts value immediately after at and returns its
// node. at must belong to l.
func (l *List) InsertAfter(at *Node, value interface{}) *Node {
	if at == l.tail {
		return l.AddTail(value)
	}
	n := &Node{Value: value, prev: at, next: at.next}
	at.next.prev = n
	at.next = n
	l.len++
	return n
}

// Remove unlinks n from the list and, if a Free callback is set,
// releases its value. n must belong to l.
func (l *List) Remove(n *Node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.len--
	if l.cb.Free != nil {
		l.cb.Free(n.Value)
	}
}

// Pop removes and returns the value at the given end, or ok=false if
// the list is empty. Unlike Remove, Pop does not invoke the Free
// callback: the value is handed to the caller, not discarded.
func (l *List) Pop(end listend.End) (value interface{}, ok bool) {
	var n *Node
	if end == listend.Head {
		n = l.head
	} else {
		n = l.tail
	}
	if n == nil {
		return nil, false
	}
	value = n.Value
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	l.len--
	return value, true
}

// Index returns the node at logical position i: non-negative i counts
// forward from the head, negative i counts backward from the tail
// (-1 is the tail). Returns nil if i is out of range.
func (l *List) Index(i int) *Node {
	if i >= 0 {
		n := l.head
		for k := 0; k < i && n != nil; k++ {
			n = n.next
		}
		return n
	}
	n := l.tail
	for k := 0; k < -i-1 && n != nil; k++ {
		n = n.prev
	}
	return n
}

// Find scans starting at start (inclusive) toward tail, returning the
// first node whose value matches key per the Match callback (or ==
// if no callback was given). A nil start scans the whole list from
// the head.
func (l *List) Find(start *Node, key interface{}) *Node {
	n := start
	if n == nil {
		n = l.head
	}
	for ; n != nil; n = n.next {
		if l.matches(n.Value, key) {
			return n
		}
	}
	return nil
}

func (l *List) matches(v, key interface{}) bool {
	if l.cb.Match != nil {
		return l.cb.Match(v, key)
	}
	return v == key
}

// Rotate moves the node at end to the opposite end of the list. It is
// a no-op on lists of fewer than two nodes.
func (l *List) Rotate(end listend.End) {
	if l.len < 2 {
		return
	}
	v, _ := l.Pop(end)
	l.Push(v, end.Opposite())
}

// Duplicate returns a deep copy of l: every node's value is passed
// through the Clone callback (or copied by reference if none is set).
func (l *List) Duplicate() *List {
	out := New(l.cb)
	for n := l.head; n != nil; n = n.next {
		v := n.Value
		if l.cb.Clone != nil {
			v = l.cb.Clone(v)
		}
		out.AddTail(v)
	}
	return out
}

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

package listpack

import "bytes"

// Next returns the entry after cur, or ok=false if cur is the tail
// ("next of the tail returns null").
func (lp *Listpack) Next(cur Cursor) (Cursor, bool) {
	end := int(lp.End())
	c := int(cur)
	if c == end {
		return 0, false
	}
	layout := readEntryLayout(lp.buf, c)
	next := c + layout.total
	if next >= end {
		return 0, false
	}
	return Cursor(next), true
}

// Prev returns the entry before cur, with the well-defined wraparound
// from the encoding rules: prev of the terminator returns the tail.
func (lp *Listpack) Prev(cur Cursor) (Cursor, bool) {
	head := int(lp.Head())
	end := int(lp.End())
	c := int(cur)
	if c == end {
		if lp.Empty() {
			return 0, false
		}
		return lp.Tail(), true
	}
	if c == head {
		return 0, false
	}
	size, _ := decodePrevLen(lp.buf, c)
	return Cursor(c - int(size)), true
}

// Index resolves a logical position to a Cursor: non-negative i walks
// forward from the head, negative i walks backward from the tail (-1
// is the tail). Returns ok=false when i is out of range.
func (lp *Listpack) Index(i int) (Cursor, bool) {
	if i >= 0 {
		cur := lp.Head()
		for k := 0; k < i; k++ {
			if cur == lp.End() {
				return 0, false
			}
			next, ok := lp.Next(cur)
			if !ok {
				return 0, false
			}
			cur = next
		}
		if cur == lp.End() {
			return 0, false
		}
		return cur, true
	}
	if lp.Empty() {
		return 0, false
	}
	cur := lp.Tail()
	steps := -i - 1
	for k := 0; k < steps; k++ {
		prev, ok := lp.Prev(cur)
		if !ok || prev == lp.End() {
			return 0, false
		}
		cur = prev
	}
	return cur, true
}

// Get decodes the value stored at cur. cur must denote a real entry
// (not End()).
func (lp *Listpack) Get(cur Cursor) Value {
	c := int(cur)
	_, prevLenBytes := decodePrevLen(lp.buf, c)
	tagStart := c + prevLenBytes
	t := decodeTag(lp.buf, tagStart)
	return decodeValue(lp.buf, tagStart, t)
}

// Compare reports whether the entry at cur equals b, decoding first
// so that an integer entry compares equal to its decimal string form
// and vice versa ("never compare encoding-to-encoding
// directly").
func (lp *Listpack) Compare(cur Cursor, b []byte) bool {
	v := lp.Get(cur)
	if v.IsInt {
		n, ok := tryParseInt(b)
		return ok && n == v.Int
	}
	return bytes.Equal(v.Str, b)
}

// Find scans forward from start looking for an entry equal to b,
// stepping skip entries between each comparison. The integer parse of
// b is attempted once and cached for the rest of the scan (an edge case
// Design Notes on Find), since re-parsing on every entry would be
// wasted work once b is known not to be representable as an integer
// and the blob holds no other kind of value to compare it to.
func (lp *Listpack) Find(start Cursor, b []byte, skip int) (Cursor, bool) {
	bInt, bIsInt := tryParseInt(b)
	cur := start
	for cur != lp.End() {
		v := lp.Get(cur)
		var eq bool
		if v.IsInt {
			eq = bIsInt && v.Int == bInt
		} else {
			eq = bytes.Equal(v.Str, b)
		}
		if eq {
			return cur, true
		}
		ok := true
		for s := 0; s <= skip && ok; s++ {
			var next Cursor
			next, ok = lp.Next(cur)
			if ok {
				cur = next
			}
		}
		if !ok {
			return 0, false
		}
	}
	return 0, false
}

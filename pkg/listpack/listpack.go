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

import (
	"encoding/binary"
	"fmt"
)

const (
	headerSize = 4 + 4 + 2 // total-bytes, tail-offset, entry-count
	terminator = 0xFF

	// unknownCount is the entry-count sentinel meaning "scan to count".
	unknownCount = 0xFFFF
)

// ErrCorrupt marks a blob this package cannot decode: an unrecognized
// entry tag, or a length scan that cannot walk to the terminator. No
// method returns it; it is wrapped into the value of the panic raised
// when such corruption is found, since corruption is fatal rather
// than an ordinary operation failure.
var ErrCorrupt = fmt.Errorf("listpack: corrupt blob")

// Listpack is the packed byte-blob representation described in
// this package. The zero value is not valid; use New.
type Listpack struct {
	buf []byte
}

// New returns an empty, valid Listpack.
func New() *Listpack {
	lp := &Listpack{buf: make([]byte, headerSize+1)}
	lp.buf[headerSize] = terminator
	lp.setTotalBytes(uint32(len(lp.buf)))
	lp.setTailOffset(headerSize)
	lp.setCount(0)
	return lp
}

// FromBytes wraps an already-encoded blob (e.g. read back from
// storage) without copying. The caller must not mutate buf
// concurrently with calls on the returned Listpack.
func FromBytes(buf []byte) *Listpack {
	return &Listpack{buf: buf}
}

// Bytes returns the current backing buffer. The slice is invalidated
// by the next mutating call.
func (lp *Listpack) Bytes() []byte { return lp.buf }

func (lp *Listpack) totalBytes() uint32 {
	return binary.LittleEndian.Uint32(lp.buf[0:4])
}

func (lp *Listpack) setTotalBytes(v uint32) {
	binary.LittleEndian.PutUint32(lp.buf[0:4], v)
}

func (lp *Listpack) tailOffset() uint32 {
	return binary.LittleEndian.Uint32(lp.buf[4:8])
}

func (lp *Listpack) setTailOffset(v uint32) {
	binary.LittleEndian.PutUint32(lp.buf[4:8], v)
}

func (lp *Listpack) rawCount() uint16 {
	return binary.LittleEndian.Uint16(lp.buf[8:10])
}

func (lp *Listpack) setCount(v uint16) {
	binary.LittleEndian.PutUint16(lp.buf[8:10], v)
}

// Cursor is a byte offset into the blob. It denotes either the start
// of an entry, or the terminator position (End()).
type Cursor int

// Head returns the cursor of the first entry, or the terminator
// cursor if the list is empty.
func (lp *Listpack) Head() Cursor { return headerSize }

// End returns the cursor of the terminator byte: one past the last
// valid entry, the position new tail pushes insert before.
func (lp *Listpack) End() Cursor { return Cursor(lp.totalBytes() - 1) }

// Tail returns the cursor of the last entry, or End() if empty.
func (lp *Listpack) Tail() Cursor { return Cursor(lp.tailOffset()) }

// Empty reports whether the listpack holds zero entries.
func (lp *Listpack) Empty() bool { return lp.Head() == lp.End() }

// incrCount bumps the header count, saturating at unknownCount. Once
// saturated it is only ever recomputed by a full scan in Len.
func (lp *Listpack) incrCount(delta int) {
	c := lp.rawCount()
	if c == unknownCount {
		return
	}
	n := int(c) + delta
	if n < 0 {
		n = 0
	}
	if n >= unknownCount {
		lp.setCount(unknownCount)
		return
	}
	lp.setCount(uint16(n))
}

// Len returns the number of entries, scanning the blob when the
// header count has saturated to the unknown sentinel and writing the
// true count back if it is once again representable (an edge case
// "Count saturation").
func (lp *Listpack) Len() int {
	c := lp.rawCount()
	if c != unknownCount {
		return int(c)
	}
	n := 0
	for cur := lp.Head(); cur != lp.End(); {
		n++
		next, ok := lp.Next(cur)
		if !ok {
			panic(fmt.Errorf("%w: Next failed mid-scan at %d", ErrCorrupt, cur))
		}
		cur = next
	}
	if n < unknownCount {
		lp.setCount(uint16(n))
	}
	return n
}

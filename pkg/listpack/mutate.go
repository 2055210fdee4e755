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

import "listkv.org/pkg/listend"

// InsertBefore inserts payload (which is tentatively integer-encoded,
// see encodeValue) immediately before pos and returns the cursor of
// the new entry. pos may be End() to append at the tail. Every call
// reallocates the backing buffer; any cursor held before the call
// (other than the one this call returns) is invalid afterward.
func (lp *Listpack) InsertBefore(pos Cursor, payload []byte) Cursor {
	buf := lp.buf
	p := int(pos)
	end := int(lp.End())
	atEnd := p == end

	var newPrevLen uint32
	var succOldFieldBytes int
	if !atEnd {
		v, fb := decodePrevLen(buf, p)
		newPrevLen = v
		succOldFieldBytes = fb
	} else if !lp.Empty() {
		tail := readEntryLayout(buf, int(lp.Tail()))
		newPrevLen = uint32(tail.total)
	}

	tagPayload := encodeValue(payload)
	required := prevLenFieldSize(newPrevLen) + len(tagPayload)

	nextdiff := 0
	var succNewFieldBytes int
	if !atEnd {
		succNewFieldBytes = prevLenFieldSizeMinWidth(uint32(required), succOldFieldBytes)
		nextdiff = succNewFieldBytes - succOldFieldBytes
	}

	oldTail := int(lp.tailOffset())
	newTotal := len(buf) + required + nextdiff
	newBuf := make([]byte, newTotal)
	copy(newBuf[:p], buf[:p])

	w := p
	w += putPrevLen(newBuf[w:], newPrevLen)
	w += copy(newBuf[w:], tagPayload)

	if atEnd {
		newBuf[newTotal-1] = terminator
	} else {
		succTagStart := p + succOldFieldBytes
		w += putPrevLenMinWidth(newBuf[w:], uint32(required), succOldFieldBytes)
		copy(newBuf[w:], buf[succTagStart:])
	}

	lp.buf = newBuf
	lp.setTotalBytes(uint32(newTotal))

	switch {
	case atEnd:
		lp.setTailOffset(uint32(p))
	case oldTail == p:
		lp.setTailOffset(uint32(p + required))
	default:
		lp.setTailOffset(uint32(oldTail + required + nextdiff))
	}
	lp.incrCount(1)

	newPos := Cursor(p)
	if !atEnd {
		lp.cascadeUpdate(Cursor(p + required))
	}
	return newPos
}

// Push inserts payload at the given end and returns its cursor.
func (lp *Listpack) Push(payload []byte, end listend.End) Cursor {
	if end == listend.Head {
		return lp.InsertBefore(lp.Head(), payload)
	}
	return lp.InsertBefore(lp.End(), payload)
}

// DeleteRange removes count consecutive entries starting at start.
func (lp *Listpack) DeleteRange(start Cursor, count int) {
	if count <= 0 {
		return
	}
	buf := lp.buf
	p := int(start)
	cur := p
	for i := 0; i < count; i++ {
		if cur == int(lp.End()) {
			break
		}
		layout := readEntryLayout(buf, cur)
		cur += layout.total
	}
	s := cur

	var precedingLen uint32
	if p != int(lp.Head()) {
		v, _ := decodePrevLen(buf, p)
		precedingLen = v
	}

	if s == int(lp.End()) {
		newTotal := p + 1
		newBuf := make([]byte, newTotal)
		copy(newBuf[:p], buf[:p])
		newBuf[p] = terminator
		lp.buf = newBuf
		lp.setTotalBytes(uint32(newTotal))
		if p == int(lp.Head()) {
			lp.setTailOffset(uint32(lp.Head()))
		} else {
			lp.setTailOffset(uint32(p - int(precedingLen)))
		}
		lp.incrCount(-count)
		return
	}

	sLayout := readEntryLayout(buf, s)
	oldSFieldBytes := sLayout.prevLenBytes
	newSFieldBytes := prevLenFieldSizeMinWidth(precedingLen, oldSFieldBytes)
	nextdiff := newSFieldBytes - oldSFieldBytes
	sTagStart := s + oldSFieldBytes
	removedBytes := s - p

	oldTail := int(lp.tailOffset())
	newTotal := p + newSFieldBytes + (len(buf) - sTagStart)
	newBuf := make([]byte, newTotal)
	copy(newBuf[:p], buf[:p])
	w := p
	w += putPrevLenMinWidth(newBuf[w:], precedingLen, oldSFieldBytes)
	copy(newBuf[w:], buf[sTagStart:])

	lp.buf = newBuf
	lp.setTotalBytes(uint32(newTotal))

	switch {
	case oldTail == s:
		lp.setTailOffset(uint32(p))
	case oldTail > s:
		lp.setTailOffset(uint32(oldTail - removedBytes + nextdiff))
	}
	lp.incrCount(-count)
	lp.cascadeUpdate(Cursor(p))
}

// Pop removes and returns the value at the given end.
func (lp *Listpack) Pop(end listend.End) (Value, bool) {
	if lp.Empty() {
		return Value{}, false
	}
	var cur Cursor
	if end == listend.Head {
		cur = lp.Head()
	} else {
		cur = lp.Tail()
	}
	v := lp.Get(cur)
	lp.DeleteRange(cur, 1)
	return v, true
}

// cascadeUpdate walks forward from start, growing the prev-entry-length
// field of each successor that can no longer hold its predecessor's
// actual size. It never shrinks an oversized field back down, which is
// the asymmetry that avoids field-width oscillation.
func (lp *Listpack) cascadeUpdate(start Cursor) {
	cur := int(start)
	for {
		end := int(lp.End())
		if cur == end {
			return
		}
		layout := readEntryLayout(lp.buf, cur)
		curTotal := uint32(layout.total)
		next := cur + layout.total
		if next >= end {
			return
		}
		_, nextFieldBytes := decodePrevLen(lp.buf, next)
		needed := prevLenFieldSize(curTotal)
		if needed <= nextFieldBytes {
			return
		}
		lp.growPrevLenField(next, curTotal)
		cur = next
	}
}

// growPrevLenField widens the 1-byte prev-entry-length field at pos
// into the 5-byte form encoding newPrevLen, shifting everything after
// it by 4 bytes.
func (lp *Listpack) growPrevLenField(pos int, newPrevLen uint32) {
	buf := lp.buf
	newBuf := make([]byte, len(buf)+4)
	copy(newBuf[:pos], buf[:pos])
	putPrevLen(newBuf[pos:], newPrevLen)
	copy(newBuf[pos+5:], buf[pos+1:])

	tailWasHere := pos == int(lp.tailOffset())
	lp.buf = newBuf
	lp.setTotalBytes(uint32(len(newBuf)))
	if !tailWasHere && int(lp.tailOffset()) > pos {
		lp.setTailOffset(lp.tailOffset() + 4)
	}
}

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
	"bytes"
	"math/rand"
	"strconv"
	"testing"

	"listkv.org/pkg/listend"
)

func collect(lp *Listpack) []string {
	var out []string
	for cur := lp.Head(); cur != lp.End(); {
		out = append(out, lp.Get(cur).String())
		next, ok := lp.Next(cur)
		if !ok {
			break
		}
		cur = next
	}
	return out
}

func assertInvariants(t *testing.T, lp *Listpack) {
	t.Helper()
	buf := lp.buf
	if got := lp.totalBytes(); int(got) != len(buf) {
		t.Fatalf("total-bytes header %d != actual buffer length %d", got, len(buf))
	}
	if buf[len(buf)-1] != terminator {
		t.Fatalf("terminator byte missing at end, got 0x%02x", buf[len(buf)-1])
	}
	if lp.Empty() {
		if int(lp.tailOffset()) != headerSize {
			t.Fatalf("empty list tail-offset = %d, want header size %d", lp.tailOffset(), headerSize)
		}
		return
	}
	var prevTotal uint32
	first := true
	for cur := lp.Head(); cur != lp.End(); {
		layout := readEntryLayout(buf, int(cur))
		if !first && layout.prevLen != prevTotal {
			t.Fatalf("entry at %d has prev-entry-length %d, want %d", cur, layout.prevLen, prevTotal)
		}
		first = false
		prevTotal = uint32(layout.total)
		next := int(cur) + layout.total
		if next == int(lp.End()) {
			if int(cur) != int(lp.tailOffset()) {
				t.Fatalf("tail-offset %d does not point at the last entry %d", lp.tailOffset(), cur)
			}
		}
		cur = Cursor(next)
	}
}

func TestPushRangeLen(t *testing.T) {
	lp := New()
	lp.Push([]byte("a"), listend.Tail)
	lp.Push([]byte("b"), listend.Tail)
	lp.Push([]byte("c"), listend.Tail)
	assertInvariants(t, lp)
	got := collect(lp)
	want := []string{"a", "b", "c"}
	if !equalStrs(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if lp.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", lp.Len())
	}
}

func TestPushHeadOrdersReverse(t *testing.T) {
	lp := New()
	for _, v := range []string{"a", "b", "c"} {
		lp.Push([]byte(v), listend.Head)
	}
	got := collect(lp)
	want := []string{"c", "b", "a"}
	if !equalStrs(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	assertInvariants(t, lp)
}

func TestLargeStringSurvivesRoundTrip(t *testing.T) {
	lp := New()
	big := bytes.Repeat([]byte("x"), 100)
	lp.Push(big, listend.Tail)
	assertInvariants(t, lp)
	if lp.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", lp.Len())
	}
	cur, ok := lp.Index(0)
	if !ok {
		t.Fatal("Index(0) not found")
	}
	got := lp.Get(cur)
	if got.IsInt || !bytes.Equal(got.Str, big) {
		t.Fatalf("Get(0) = %+v, want the 100-byte string", got)
	}
}

func Test513EntriesCount(t *testing.T) {
	lp := New()
	for i := 0; i < 513; i++ {
		lp.Push([]byte{'a'}, listend.Tail)
	}
	assertInvariants(t, lp)
	if lp.Len() != 513 {
		t.Fatalf("Len() = %d, want 513", lp.Len())
	}
}

func TestLRemTailTwoAs(t *testing.T) {
	lp := New()
	for _, v := range []string{"a", "b", "a", "c", "a", "d"} {
		lp.Push([]byte(v), listend.Tail)
	}
	removed := 0
	cur := lp.Tail()
	for removed < 2 {
		prev, hasPrev := lp.Prev(cur)
		if lp.Compare(cur, []byte("a")) {
			lp.DeleteRange(cur, 1)
			removed++
		}
		if !hasPrev {
			break
		}
		cur = prev
	}
	assertInvariants(t, lp)
	got := collect(lp)
	want := []string{"a", "b", "c", "d"}
	if !equalStrs(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
}

func TestIndexingSymmetry(t *testing.T) {
	lp := New()
	for i := 0; i < 20; i++ {
		lp.Push([]byte(strconv.Itoa(i)), listend.Tail)
	}
	n := lp.Len()
	for i := 0; i < n; i++ {
		pos, ok := lp.Index(i)
		if !ok {
			t.Fatalf("Index(%d) not found", i)
		}
		negPos, ok := lp.Index(i - n)
		if !ok || pos != negPos {
			t.Fatalf("Index(%d)=%v but Index(%d)=%v,%v", i, pos, i-n, negPos, ok)
		}
	}
}

func TestIntegerEncodingRoundTrips(t *testing.T) {
	values := []int64{0, 12, 13, -1, 127, 128, -128, 32767, -32768, 8388607, -8388608, 1 << 20, -(1 << 20), 1 << 40, -(1 << 40)}
	lp := New()
	for _, v := range values {
		lp.Push([]byte(strconv.FormatInt(v, 10)), listend.Tail)
	}
	assertInvariants(t, lp)
	cur := lp.Head()
	for _, want := range values {
		got := lp.Get(cur)
		if !got.IsInt || got.Int != want {
			t.Fatalf("Get() = %+v, want int %d", got, want)
		}
		next, ok := lp.Next(cur)
		if !ok {
			break
		}
		cur = next
	}
}

func TestNonCanonicalIntegerStringsStayStrings(t *testing.T) {
	lp := New()
	for _, s := range []string{"007", "+5", " 5", "5 ", "-0", ""} {
		lp.Push([]byte(s), listend.Tail)
	}
	cur := lp.Head()
	for _, want := range []string{"007", "+5", " 5", "5 ", "-0", ""} {
		v := lp.Get(cur)
		if v.IsInt {
			t.Fatalf("%q was stored as an integer, want a string", want)
		}
		if string(v.Str) != want {
			t.Fatalf("got %q, want %q", v.Str, want)
		}
		next, ok := lp.Next(cur)
		if !ok {
			break
		}
		cur = next
	}
}

func TestCascadeGrowsAndNeverShrinks(t *testing.T) {
	lp := New()
	// An entry of 254 bytes or more (here 1+2+260 = 263) forces the next
	// entry's prev-entry-length field into the 5-byte form.
	big := bytes.Repeat([]byte("z"), 260)
	lp.Push(big, listend.Tail)
	lp.Push([]byte("tiny"), listend.Tail)
	assertInvariants(t, lp)

	tiny, ok := lp.Index(1)
	if !ok {
		t.Fatal("expected second entry")
	}
	_, fieldBytes := decodePrevLen(lp.buf, int(tiny))
	if fieldBytes != 5 {
		t.Fatalf("expected a 5-byte prev-entry-length field after a >253-byte predecessor, got %d", fieldBytes)
	}

	// Now delete the big entry, so the tiny one becomes the head and its
	// predecessor length drops to 0; the field must stay 5 bytes (grow-only).
	lp.DeleteRange(lp.Head(), 1)
	assertInvariants(t, lp)
	stillTiny, ok := lp.Index(0)
	if !ok {
		t.Fatal("expected remaining entry")
	}
	_, fieldBytes = decodePrevLen(lp.buf, int(stillTiny))
	if fieldBytes != 5 {
		t.Fatalf("cascade shrank a prev-entry-length field from 5 to %d bytes; this must never happen", fieldBytes)
	}
}

func TestRandomOpsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	lp := New()
	var model []string
	for step := 0; step < 2000; step++ {
		switch rng.Intn(4) {
		case 0, 1:
			v := strconv.Itoa(rng.Intn(1 << 20))
			end := listend.Tail
			if rng.Intn(2) == 0 {
				end = listend.Head
			}
			lp.Push([]byte(v), end)
			if end == listend.Head {
				model = append([]string{v}, model...)
			} else {
				model = append(model, v)
			}
		case 2:
			if len(model) == 0 {
				continue
			}
			i := rng.Intn(len(model))
			pos, ok := lp.Index(i)
			if !ok {
				t.Fatalf("Index(%d) missing, model len %d", i, len(model))
			}
			lp.DeleteRange(pos, 1)
			model = append(model[:i], model[i+1:]...)
		case 3:
			if len(model) == 0 {
				continue
			}
			i := rng.Intn(len(model))
			pos, ok := lp.Index(i)
			if !ok {
				t.Fatalf("Index(%d) missing", i)
			}
			if lp.Get(pos).String() != model[i] {
				t.Fatalf("step %d: Get(%d) = %q, want %q", step, i, lp.Get(pos).String(), model[i])
			}
		}
		if step%50 == 0 {
			assertInvariants(t, lp)
			if got := collect(lp); !equalStrs(got, model) {
				t.Fatalf("step %d: got %v, want %v", step, got, model)
			}
		}
	}
	assertInvariants(t, lp)
}

func equalStrs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

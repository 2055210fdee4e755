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
	"context"
	"testing"
	"time"

	"listkv.org/pkg/blocking"
	"listkv.org/pkg/list"
)

func newTestCommands() (*Commands, *MemoryStore) {
	store := NewMemoryStore(list.DefaultOptions())
	return NewCommands(store), store
}

func bs(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

func requireArray(t *testing.T, r Reply, want ...string) {
	t.Helper()
	if r.Kind != KindArray {
		t.Fatalf("want array reply, got kind %v err %v", r.Kind, r.Err)
	}
	if len(r.Array) != len(want) {
		t.Fatalf("want %d elements, got %d (%v)", len(want), len(r.Array), r.Array)
	}
	for i, w := range want {
		if string(r.Array[i]) != w {
			t.Fatalf("element %d: want %q got %q", i, w, r.Array[i])
		}
	}
}

// TestScenarioRPushLRangeLLen covers a basic push/range/len sequence.
func TestScenarioRPushLRangeLLen(t *testing.T) {
	c, _ := newTestCommands()
	if r := c.RPush(0, "mylist", bs("a", "b", "c")); r.Int != 3 {
		t.Fatalf("RPUSH: want 3, got %+v", r)
	}
	if r := c.LLen(0, "mylist"); r.Int != 3 {
		t.Fatalf("LLEN: want 3, got %+v", r)
	}
	requireArray(t, c.LRange(0, "mylist", 0, -1), "a", "b", "c")
}

// TestScenarioLRem covers removing duplicate occurrences: pushing "hello",
// "hello", "foo", "hello" at the head (so list order is reversed) and
// removing the 2 "hello"s nearest the tail.
func TestScenarioLRem(t *testing.T) {
	c, _ := newTestCommands()
	c.LPush(0, "mylist", bs("hello"))
	c.LPush(0, "mylist", bs("hello"))
	c.LPush(0, "mylist", bs("foo"))
	c.LPush(0, "mylist", bs("hello"))
	// list is now: hello, foo, hello, hello
	r := c.LRem(0, "mylist", -2, []byte("hello"))
	if r.Int != 2 {
		t.Fatalf("LREM: want 2 removed, got %+v", r)
	}
	requireArray(t, c.LRange(0, "mylist", 0, -1), "hello", "foo")
}

// TestScenarioRPopLPushSameKey covers rotating
// a list through RPOPLPUSH with source == destination.
func TestScenarioRPopLPushSameKey(t *testing.T) {
	c, _ := newTestCommands()
	c.RPush(0, "mylist", bs("a", "b", "c"))
	r := c.RPopLPush(0, "mylist", "mylist")
	if r.Kind != KindBulk || string(r.Bulk) != "c" {
		t.Fatalf("RPOPLPUSH: want bulk \"c\", got %+v", r)
	}
	requireArray(t, c.LRange(0, "mylist", 0, -1), "c", "a", "b")
}

func TestPushXOnMissingKeyIsNoOp(t *testing.T) {
	c, _ := newTestCommands()
	if r := c.LPushX(0, "nosuch", bs("x")); r.Int != 0 {
		t.Fatalf("LPUSHX on missing key: want 0, got %+v", r)
	}
	if r := c.RPushX(0, "nosuch", bs("x")); r.Int != 0 {
		t.Fatalf("RPUSHX on missing key: want 0, got %+v", r)
	}
	if r := c.LLen(0, "nosuch"); r.Int != 0 {
		t.Fatalf("key should not have been created, LLEN got %+v", r)
	}
}

func TestPushXOnExistingKeyAppends(t *testing.T) {
	c, _ := newTestCommands()
	c.RPush(0, "k", bs("a"))
	if r := c.RPushX(0, "k", bs("b")); r.Int != 2 {
		t.Fatalf("RPUSHX: want 2, got %+v", r)
	}
	requireArray(t, c.LRange(0, "k", 0, -1), "a", "b")
}

func TestLInsertBeforeAndAfter(t *testing.T) {
	c, _ := newTestCommands()
	c.RPush(0, "k", bs("a", "c"))
	if r := c.LInsert(0, "k", true, []byte("c"), []byte("b")); r.Int != 3 {
		t.Fatalf("LINSERT BEFORE: want length 3, got %+v", r)
	}
	requireArray(t, c.LRange(0, "k", 0, -1), "a", "b", "c")

	if r := c.LInsert(0, "k", false, []byte("c"), []byte("d")); r.Int != 4 {
		t.Fatalf("LINSERT AFTER: want length 4, got %+v", r)
	}
	requireArray(t, c.LRange(0, "k", 0, -1), "a", "b", "c", "d")
}

func TestLInsertMissingPivot(t *testing.T) {
	c, _ := newTestCommands()
	c.RPush(0, "k", bs("a"))
	if r := c.LInsert(0, "k", true, []byte("zzz"), []byte("b")); r.Int != -1 {
		t.Fatalf("LINSERT missing pivot: want -1, got %+v", r)
	}
}

func TestLSetOutOfRange(t *testing.T) {
	c, _ := newTestCommands()
	c.RPush(0, "k", bs("a"))
	if r := c.LSet(0, "k", 5, []byte("x")); r.Err != ErrOutOfRange {
		t.Fatalf("LSET out of range: want ErrOutOfRange, got %+v", r)
	}
	if r := c.LSet(0, "k", 0, []byte("z")); r.Kind != KindOK {
		t.Fatalf("LSET in range: want OK, got %+v", r)
	}
	requireArray(t, c.LRange(0, "k", 0, -1), "z")
}

func TestLSetOnMissingKey(t *testing.T) {
	c, _ := newTestCommands()
	if r := c.LSet(0, "nosuch", 0, []byte("x")); r.Err != ErrNoSuchKey {
		t.Fatalf("LSET missing key: want ErrNoSuchKey, got %+v", r)
	}
}

func TestWrongTypeErrors(t *testing.T) {
	c, store := newTestCommands()
	store.MarkNonList(0, "str")
	if r := c.LLen(0, "str"); r.Err != ErrWrongType {
		t.Fatalf("LLEN on wrong type: want ErrWrongType, got %+v", r)
	}
	if r := c.LPush(0, "str", bs("x")); r.Err != ErrWrongType {
		t.Fatalf("LPUSH on wrong type: want ErrWrongType, got %+v", r)
	}
	if r := c.LPop(0, "str"); r.Err != ErrWrongType {
		t.Fatalf("LPOP on wrong type: want ErrWrongType, got %+v", r)
	}
}

func TestPushSyntaxErrorOnNoValues(t *testing.T) {
	c, _ := newTestCommands()
	if r := c.LPush(0, "k", nil); r.Err != ErrSyntax {
		t.Fatalf("LPUSH with no values: want ErrSyntax, got %+v", r)
	}
}

func TestPopOnMissingKeyIsNull(t *testing.T) {
	c, _ := newTestCommands()
	if r := c.LPop(0, "nosuch"); r.Kind != KindNullBulk {
		t.Fatalf("LPOP on missing key: want null, got %+v", r)
	}
}

func TestPopEmptiesKeyFromStore(t *testing.T) {
	c, store := newTestCommands()
	c.RPush(0, "k", bs("only"))
	c.LPop(0, "k")
	if _, wrongType := store.GetList(0, "k"); wrongType {
		t.Fatalf("key should not be marked wrong-type")
	}
	if l, _ := store.GetList(0, "k"); l != nil {
		t.Fatalf("key should have been deleted once its list emptied, got %v", l)
	}
}

func TestLTrim(t *testing.T) {
	c, _ := newTestCommands()
	c.RPush(0, "k", bs("a", "b", "c", "d", "e"))
	c.LTrim(0, "k", 1, 3)
	requireArray(t, c.LRange(0, "k", 0, -1), "b", "c", "d")
}

// TestScenarioBLPopDrain covers a client
// blocks on an empty key, a later RPUSH wakes it.
func TestScenarioBLPopDrain(t *testing.T) {
	store := NewMemoryStore(list.DefaultOptions())
	coord := blocking.NewCoordinator(store)
	bc := NewBlockingCommands(store, coord)

	reply, pending := bc.BLPop(blocking.Context{}, 0, []string{"mylist"}, time.Second)
	if pending == nil {
		t.Fatalf("expected a pending wait, got immediate reply %+v", reply)
	}

	done := make(chan Reply, 1)
	go func() {
		res := <-pending.Client.Notify
		done <- Finalize("", res)
	}()

	NewCommands(store).RPush(0, "mylist", bs("value"))
	coord.SignalReady(0, "mylist")
	coord.Drain()

	select {
	case r := <-done:
		requireArray(t, r, "mylist", "value")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for BLPOP to be served")
	}
}

func TestBLPopImmediateWhenDataPresent(t *testing.T) {
	store := NewMemoryStore(list.DefaultOptions())
	coord := blocking.NewCoordinator(store)
	bc := NewBlockingCommands(store, coord)
	NewCommands(store).RPush(0, "mylist", bs("x"))

	reply, pending := bc.BLPop(blocking.Context{}, 0, []string{"mylist"}, time.Second)
	if pending != nil {
		t.Fatalf("expected immediate reply, got a pending wait")
	}
	requireArray(t, reply, "mylist", "x")
}

func TestBLPopInTransactionShortCircuits(t *testing.T) {
	store := NewMemoryStore(list.DefaultOptions())
	coord := blocking.NewCoordinator(store)
	bc := NewBlockingCommands(store, coord)

	reply, pending := bc.BLPop(blocking.Context{InTransaction: true}, 0, []string{"mylist"}, time.Second)
	if pending != nil {
		t.Fatalf("expected no pending wait inside a transaction")
	}
	if reply.Kind != KindArray || reply.Array != nil {
		t.Fatalf("expected a null-array reply inside a transaction, got %+v", reply)
	}
}

func TestBRPopLPushImmediate(t *testing.T) {
	store := NewMemoryStore(list.DefaultOptions())
	coord := blocking.NewCoordinator(store)
	bc := NewBlockingCommands(store, coord)
	NewCommands(store).RPush(0, "src", bs("a", "b"))

	reply, pending := bc.BRPopLPush(blocking.Context{}, 0, "src", "dst", time.Second)
	if pending != nil {
		t.Fatalf("expected immediate reply")
	}
	if reply.Kind != KindBulk || string(reply.Bulk) != "b" {
		t.Fatalf("want bulk \"b\", got %+v", reply)
	}
	requireArray(t, NewCommands(store).LRange(0, "dst", 0, -1), "b")
}

func TestBLPopTimeout(t *testing.T) {
	store := NewMemoryStore(list.DefaultOptions())
	coord := blocking.NewCoordinator(store)
	bc := NewBlockingCommands(store, coord)

	_, pending := bc.BLPop(blocking.Context{}, 0, []string{"mylist"}, time.Millisecond)
	if pending == nil {
		t.Fatalf("expected a pending wait")
	}
	sweeper := blocking.NewSweeper(coord, time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	go sweeper.Run(ctx)

	select {
	case res := <-pending.Client.Notify:
		r := Finalize("", res)
		if r.Kind != KindArray || r.Array != nil {
			t.Fatalf("expected null-array timeout reply, got %+v", r)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the sweeper to time out the client")
	}
}

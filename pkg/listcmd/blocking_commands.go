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
	"time"

	"listkv.org/pkg/blocking"
	"listkv.org/pkg/listend"
)

// BlockingCommands binds BLPOP/BRPOP/BRPOPLPUSH to a Store and a
// blocking.Coordinator. Unlike Commands' methods, these don't always
// return a final Reply: when nothing is immediately available, they
// register a *blocking.Client and hand it back in Pending for the
// caller to await on its Notify channel, then translate the eventual
// blocking.Result with Finalize.
type BlockingCommands struct {
	commands *Commands
	store    Store
	coord    *blocking.Coordinator
}

// NewBlockingCommands returns a BlockingCommands bound to store and
// coord, which must share the same underlying keyspace (a
// *MemoryStore satisfies blocking.Keyspace directly).
func NewBlockingCommands(store Store, coord *blocking.Coordinator) *BlockingCommands {
	return &BlockingCommands{commands: NewCommands(store), store: store, coord: coord}
}

// Pending is returned when a blocking command found nothing to serve
// immediately and registered a waiter. The caller should select on
// Client.Notify (and its own disconnect/shutdown signals), then pass
// the delivered blocking.Result to Finalize. If the caller gives up
// waiting for any reason (client disconnects), it must call
// Coordinator.Unblock(Client) itself.
type Pending struct {
	Client *blocking.Client
}

func popReplyPair(key string, value []byte) Reply {
	return arrayReply([][]byte{[]byte(key), value})
}

// tryImmediatePop attempts a non-blocking pop across keys in order,
// the first phase of every blocking command.
func (b *BlockingCommands) tryImmediatePop(db int, keys []string, end listend.End) (key string, value []byte, wrongType bool, ok bool) {
	for _, k := range keys {
		l, wt := b.store.GetList(db, k)
		if wt {
			return k, nil, true, false
		}
		if l == nil {
			continue
		}
		if v, popped := l.Pop(end); popped {
			if l.IsEmpty() {
				b.store.Delete(db, k)
			}
			return k, v, false, true
		}
	}
	return "", nil, false, false
}

func (b *BlockingCommands) blockCommon(ctx blocking.Context, db int, keys []string, end listend.End, destination string, timeout time.Duration) (Reply, *Pending) {
	key, value, wrongType, ok := b.tryImmediatePop(db, keys, end)
	if wrongType {
		return errReply(ErrWrongType), nil
	}
	if ok {
		if destination != "" {
			dst, wt := b.store.GetOrCreateList(db, destination)
			if wt {
				// put it back per the RPOPLPUSH wrong-type recovery rule
				src, _ := b.store.GetOrCreateList(db, key)
				src.Push(value, listend.Tail)
				return errReply(ErrWrongType), nil
			}
			dst.Push(value, listend.Head)
			return bulkReply(value), nil
		}
		return popReplyPair(key, value), nil
	}

	var deadline time.Time
	if timeout > 0 {
		deadline = timeoutDeadline(timeout)
	}
	client := blocking.NewClient(db, end, deadline)
	if !b.coord.Block(ctx, client, keys, destination) {
		// transaction short-circuit: treat as an immediate failed pop
		return nullBlockReply(destination), nil
	}
	// Reply is unused whenever Pending is non-nil; the real reply
	// comes later from Finalize.
	return Reply{}, &Pending{Client: client}
}

// BLPop implements BLPOP key [key ...] timeout.
func (b *BlockingCommands) BLPop(ctx blocking.Context, db int, keys []string, timeout time.Duration) (Reply, *Pending) {
	return b.blockCommon(ctx, db, keys, listend.Head, "", timeout)
}

// BRPop implements BRPOP key [key ...] timeout.
func (b *BlockingCommands) BRPop(ctx blocking.Context, db int, keys []string, timeout time.Duration) (Reply, *Pending) {
	return b.blockCommon(ctx, db, keys, listend.Tail, "", timeout)
}

// BRPopLPush implements BRPOPLPUSH source destination timeout.
func (b *BlockingCommands) BRPopLPush(ctx blocking.Context, db int, source, destination string, timeout time.Duration) (Reply, *Pending) {
	return b.blockCommon(ctx, db, []string{source}, listend.Tail, destination, timeout)
}

// Finalize translates a delivered blocking.Result into the reply the
// caller should send back, completing a command that returned a
// Pending.
func Finalize(destination string, res blocking.Result) Reply {
	if res.TimedOut {
		return nullBlockReply(destination)
	}
	if destination != "" {
		return bulkReply(res.Value)
	}
	return popReplyPair(res.Key, res.Value)
}

func nullBlockReply(destination string) Reply {
	if destination != "" {
		return nullReply()
	}
	return Reply{Kind: KindArray, Array: nil}
}

func timeoutDeadline(timeout time.Duration) time.Time {
	return time.Now().Add(timeout)
}

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

package blocking

import "listkv.org/pkg/listend"

// Drain serves every ready key queued since the last call, in FIFO
// order. It must run exactly once after each
// top-level command, transaction, and script.
//
// Serving a move-pop waiter pushes into its destination, which can
// itself call SignalReady and append a fresh event — so the pending
// queue is swapped out for a fresh one before the loop starts, and
// the loop keeps consuming whatever SignalReady appends to the new
// queue during this same Drain call, rather than deferring those
// events to the next top-level Drain.
//
// A key is only ever served once per Drain call, tracked by
// attempted. Without this, a move-pop whose destination stays
// wrong-typed would re-signal its own source key on every attempt
// (the re-insert-on-failure rule an open design question called
// for) and this loop would never converge: each retry pops the same
// element, fails the same push, puts it back, and signals again.
// Genuinely new keys becoming ready — the legitimate cascade the
// re-entrancy handling exists for — still drain within the same call;
// only an exact repeat of a key already attempted this call is
// deferred to the next one, by which point real progress (a
// destination's type changing, a timeout, a disconnect) might have
// occurred.
func (c *Coordinator) Drain() {
	attempted := make(map[readyEvent]bool)
	for {
		c.mu.Lock()
		events := c.readyEvents
		c.readyEvents = nil
		c.mu.Unlock()
		if len(events) == 0 {
			return
		}
		var deferred []readyEvent
		progressed := false
		for _, ev := range events {
			if attempted[ev] {
				deferred = append(deferred, ev)
				continue
			}
			attempted[ev] = true
			progressed = true
			c.serveKey(ev.db, ev.key)
		}
		if len(deferred) > 0 {
			c.mu.Lock()
			c.readyEvents = append(c.readyEvents, deferred...)
			c.mu.Unlock()
		}
		if !progressed {
			return
		}
	}
}

// serveKey pops for each client waiting on key, in the order they
// blocked, until the list empties or a delivery fails.
func (c *Coordinator) serveKey(db int, key string) {
	c.mu.Lock()
	d := c.db(db)
	delete(d.readyKeys, key)
	waiting := append([]*Client(nil), d.waiters[key]...)
	c.mu.Unlock()

	for _, client := range waiting {
		value, ok := c.keyspace.Pop(db, key, client.PopEnd)
		if !ok {
			return // list emptied; remaining waiters stay blocked
		}
		if client.Destination != "" {
			if wrongType := c.keyspace.Push(db, client.Destination, value, listend.Head); wrongType {
				// Local recovery: put the
				// element back at the source's tail and leave this
				// waiter blocked. The re-insert is itself a push, so
				// it must re-signal readiness for the source key (the
				// open design question) or a later
				// drain would never revisit it.
				c.keyspace.Push(db, key, value, listend.Tail)
				c.SignalReady(db, key)
				return
			}
		}
		c.mu.Lock()
		c.unblockLocked(client)
		c.mu.Unlock()
		client.Notify <- Result{Key: key, Value: value}
	}
}

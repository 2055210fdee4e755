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

import (
	"time"

	"github.com/google/uuid"

	"listkv.org/pkg/listend"
)

// ClientID uniquely identifies a blocked client across the lifetime
// of a connection.
type ClientID string

// NewClientID returns a freshly generated, collision-free ClientID.
func NewClientID() ClientID {
	return ClientID(uuid.New().String())
}

// Result is delivered to a client's Notify channel when it is served
// or its wait expires.
type Result struct {
	Key      string
	Value    []byte
	TimedOut bool
}

// Client is a single connection blocked on one or more keys. Callers
// construct one per blocking command invocation and read exactly one
// Result off Notify before reusing or discarding it.
type Client struct {
	ID ClientID

	// PopEnd selects which end to pop when this client is served:
	// Head for BLPOP-style waiters, Tail for BRPOP/BRPOPLPUSH.
	PopEnd listend.End

	// Destination, if non-empty, makes this a move-pop waiter
	// (BRPOPLPUSH): the popped value is pushed there atomically
	// instead of merely being delivered to the client.
	Destination string

	// Deadline is the absolute wall-clock time after which the
	// waiter is unblocked with TimedOut=true. The zero Time means
	// never.
	Deadline time.Time

	// Notify receives exactly one Result when the client is served
	// or times out. Coordinator.Unblock (e.g. on disconnect) sends
	// nothing. Buffered so Drain and the sweeper never block
	// delivering it.
	Notify chan Result

	db      int
	keys    []string
}

// NewClient returns a Client ready to be passed to Coordinator.Block.
func NewClient(db int, popEnd listend.End, deadline time.Time) *Client {
	return &Client{
		ID:       NewClientID(),
		PopEnd:   popEnd,
		Deadline: deadline,
		Notify:   make(chan Result, 1),
		db:       db,
	}
}

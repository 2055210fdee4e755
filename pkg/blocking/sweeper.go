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
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Sweeper periodically unblocks clients whose deadline has passed,
// delivering a TimedOut Result. The sweeps are paced by a
// rate.Limiter that grants one token per interval and is waited on
// with Wait, rather than by a bare time.Ticker.
type Sweeper struct {
	c       *Coordinator
	limiter *rate.Limiter
}

// NewSweeper returns a Sweeper that checks for expired deadlines at
// roughly the given interval.
func NewSweeper(c *Coordinator, interval time.Duration) *Sweeper {
	return &Sweeper{
		c:       c,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Run blocks, sweeping at the configured rate until ctx is canceled.
func (s *Sweeper) Run(ctx context.Context) error {
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		s.sweepOnce(time.Now())
	}
}

func (s *Sweeper) sweepOnce(now time.Time) {
	for _, client := range s.c.timedOutClients(now) {
		client.Notify <- Result{TimedOut: true}
	}
}

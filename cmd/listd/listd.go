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

// The listd command wires pkg/list's representation-polymorphic List
// to pkg/listcmd's command surface and pkg/blocking's coordinator, and
// runs a small scripted demonstration of the stack end to end: pushing
// and ranging over a list, forcing a representation conversion, and
// satisfying a blocking pop from a concurrent pusher.
//
// Usage:
//
//	listd -db=0 -key=demo
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"listkv.org/pkg/blocking"
	"listkv.org/pkg/jsonconfig"
	"listkv.org/pkg/list"
	"listkv.org/pkg/listcmd"
	"listkv.org/pkg/listend"
)

var (
	flagConfig = flag.String("config", "", "path to a JSON object of the form accepted by list.OptionsFromConfig; empty uses the default thresholds")
	flagDB     = flag.Int("db", 0, "database number to demonstrate against")
	flagKey    = flag.String("key", "demo", "list key to demonstrate against")
)

func main() {
	flag.Parse()

	cfg, err := optionsConfig(*flagConfig)
	if err != nil {
		exitf("%v", err)
	}
	opts := list.OptionsFromConfig(cfg)

	store := listcmd.NewMemoryStore(opts)
	cmds := listcmd.NewCommands(store)
	coord := blocking.NewCoordinator(store)
	bcmds := listcmd.NewBlockingCommands(store, coord)

	db, key := *flagDB, *flagKey

	logf("pushing three values onto %q", key)
	must(cmds.RPush(db, key, [][]byte{[]byte("alpha"), []byte("beta"), []byte("gamma")}))

	r := cmds.LRange(db, key, 0, -1)
	logf("LRANGE %s 0 -1 -> %s", key, formatBulkArray(r.Array))

	demoConversion(cmds, store, db, key, opts)
	demoBlockingPop(bcmds, coord, store, db, key)
}

// demoConversion pushes a value past opts.MaxValueBytes so the list
// converts from its packed form to node form, and logs the switch.
func demoConversion(cmds *listcmd.Commands, store *listcmd.MemoryStore, db int, key string, opts list.Options) {
	before, _ := store.GetList(db, key)
	logf("representation before oversized push: %s", before.Representation())

	big := strings.Repeat("x", opts.MaxValueBytes+1)
	must(cmds.RPush(db, key, [][]byte{[]byte(big)}))

	after, _ := store.GetList(db, key)
	logf("representation after oversized push: %s (len %d)", after.Representation(), after.Len())
}

// demoBlockingPop drains key with BLPOP, then pushes a fresh value
// from a goroutine so the BLPOP call has something to unblock on, the
// way a client and a producer would interleave in a real deployment.
func demoBlockingPop(bcmds *listcmd.BlockingCommands, coord *blocking.Coordinator, store *listcmd.MemoryStore, db int, key string) {
	logf("draining %q before the blocking demo", key)
	for {
		r := listcmd.NewCommands(store).LPop(db, key)
		if r.Kind == listcmd.KindNullBulk {
			break
		}
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go blocking.NewSweeper(coord, 100*time.Millisecond).Run(sweepCtx)

	go func() {
		time.Sleep(200 * time.Millisecond)
		logf("pushing %q from a concurrent goroutine", key)
		store.Push(db, key, []byte("delivered-late"), listend.Tail)
		coord.SignalReady(db, key)
		coord.Drain()
	}()

	logf("calling BLPOP %s with a 2s timeout", key)
	reply, pending := bcmds.BLPop(blocking.Context{}, db, []string{key}, 2*time.Second)
	if pending != nil {
		res := <-pending.Client.Notify
		reply = listcmd.Finalize("", res)
	}
	if reply.Kind == listcmd.KindArray && len(reply.Array) == 2 {
		logf("BLPOP woke up with %s = %q", reply.Array[0], reply.Array[1])
	} else {
		logf("BLPOP timed out with no value")
	}
}

// optionsConfig loads path as a list.OptionsFromConfig source, or
// returns an empty config (meaning DefaultOptions) when path is empty.
func optionsConfig(path string) (jsonconfig.Obj, error) {
	if path == "" {
		return jsonconfig.Obj{}, nil
	}
	cfg, err := jsonconfig.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %v", path, err)
	}
	return cfg, nil
}

func formatBulkArray(a [][]byte) string {
	parts := make([]string, len(a))
	for i, b := range a {
		parts[i] = string(b)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func must(r listcmd.Reply) {
	if r.Kind == listcmd.KindError {
		exitf("command failed: %v", r.Err)
	}
}

func logf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "listd: "+format+"\n", args...)
}

func exitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "listd: "+format+"\n", args...)
	os.Exit(1)
}

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

package list

import (
	"errors"

	"listkv.org/pkg/jsonconfig"
	"listkv.org/pkg/listnode"
	"listkv.org/pkg/listpack"
)

// representation names which concrete backing store a List currently
// uses. Conversion only ever goes packed -> node, never back.
type representation int

const (
	repPacked representation = iota
	repNode
)

func (r representation) String() string {
	if r == repNode {
		return "node"
	}
	return "packed"
}

// Options configures the thresholds at which a List converts from its
// compact packed form to the linked node form.
type Options struct {
	// MaxEntries is the entry count above which a list converts to
	// node form.
	MaxEntries int
	// MaxValueBytes is the per-value size above which a single push
	// forces conversion to node form.
	MaxValueBytes int
}

// DefaultOptions returns the thresholds used when no configuration is
// supplied: 512 entries, 64-byte values.
func DefaultOptions() Options {
	return Options{MaxEntries: 512, MaxValueBytes: 64}
}

// OptionsFromConfig reads MaxEntries/MaxValueBytes out of a
// configuration object, falling back to DefaultOptions for any key
// that's absent.
func OptionsFromConfig(conf jsonconfig.Obj) Options {
	def := DefaultOptions()
	return Options{
		MaxEntries:    conf.OptionalInt("maxListEntries", def.MaxEntries),
		MaxValueBytes: conf.OptionalInt("maxListValueBytes", def.MaxValueBytes),
	}
}

// errIteratorActive is returned as a panic value — a representation
// conversion while an iterator holds cursors into the old
// representation would silently invalidate them, so it is treated as
// a programming error rather than something to recover from.
var errIteratorActive = errors.New("list: cannot convert representation while an iterator is active")

// List is a representation-polymorphic sequence of byte strings: a
// packed listpack while small, a linked listnode.List once it outgrows
// opts. The zero value is not valid; use New.
type List struct {
	opts      Options
	rep       representation
	packed    *listpack.Listpack
	nodes     *listnode.List
	iterDepth int
}

// New returns an empty List using opts to decide when to convert to
// node form.
func New(opts Options) *List {
	return &List{
		opts:   opts,
		rep:    repPacked,
		packed: listpack.New(),
	}
}

// Len returns the number of values in the list.
func (l *List) Len() int {
	if l.rep == repNode {
		return l.nodes.Len()
	}
	return l.packed.Len()
}

// IsEmpty reports whether the list holds zero values. Callers use
// this to decide whether a key should be removed from its keyspace
// after a pop leaves the list empty.
func (l *List) IsEmpty() bool { return l.Len() == 0 }

// Representation reports the list's current backing form, "packed"
// or "node". Exposed for tests and diagnostics; callers should never
// need to branch on it.
func (l *List) Representation() string { return l.rep.String() }

func valueBytes(v listpack.Value) []byte { return []byte(v.String()) }

// maybeConvert switches to node form if pushing a value of the given
// length would cross either configured threshold.
func (l *List) maybeConvert(pushedLen int) {
	if l.rep == repNode {
		return
	}
	if pushedLen <= l.opts.MaxValueBytes && l.packed.Len() < l.opts.MaxEntries {
		return
	}
	if l.iterDepth > 0 {
		panic(errIteratorActive)
	}
	l.convertToNodeForm()
}

// convertToNodeForm rebuilds the list on top of listnode.List,
// preserving order. It never runs in the other direction: once a list
// is in node form it stays there, per the one-way conversion rule
// recorded in SPEC_FULL.md.
func (l *List) convertToNodeForm() {
	nodes := listnode.New(listnode.Callbacks{})
	for cur := l.packed.Head(); cur != l.packed.End(); {
		v := valueBytes(l.packed.Get(cur))
		nodes.AddTail(v)
		next, ok := l.packed.Next(cur)
		if !ok {
			break
		}
		cur = next
	}
	l.nodes = nodes
	l.packed = nil
	l.rep = repNode
}

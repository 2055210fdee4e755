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

import "errors"

// Error kinds a command can fail with, each meant to be surfaced as
// its own typed reply by the caller's wire protocol rather than
// propagated as an opaque error.
var (
	ErrWrongType  = errors.New("listcmd: key holds a value that is not a list")
	ErrOutOfRange = errors.New("listcmd: index out of range")
	ErrSyntax     = errors.New("listcmd: syntax error")
	ErrNoSuchKey  = errors.New("listcmd: no such key")
)

// Kind enumerates the shapes a Reply can take.
type Kind int

const (
	KindInteger Kind = iota
	KindBulk
	KindNullBulk
	KindArray
	KindOK
	KindError
)

// Reply is the abstract result of a command, independent of any wire
// encoding. A caller's protocol layer maps this to RESP (or whatever
// it speaks).
type Reply struct {
	Kind  Kind
	Int   int64
	Bulk  []byte
	Array [][]byte
	Err   error
}

func intReply(n int64) Reply       { return Reply{Kind: KindInteger, Int: n} }
func bulkReply(b []byte) Reply     { return Reply{Kind: KindBulk, Bulk: b} }
func nullReply() Reply             { return Reply{Kind: KindNullBulk} }
func arrayReply(a [][]byte) Reply  { return Reply{Kind: KindArray, Array: a} }
func okReply() Reply               { return Reply{Kind: KindOK} }
func errReply(err error) Reply     { return Reply{Kind: KindError, Err: err} }

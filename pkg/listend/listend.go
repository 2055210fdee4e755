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

// Package listend defines the two-element End enum (Head, Tail) shared
// by every list representation and command in this module, so the
// compact form, the node form, and the facade all speak of "which end"
// the same way.
package listend

// End names one of the two ends of a list.
type End int

const (
	Head End = iota
	Tail
)

func (e End) String() string {
	if e == Head {
		return "head"
	}
	return "tail"
}

// Opposite returns the other end.
func (e End) Opposite() End {
	if e == Head {
		return Tail
	}
	return Head
}

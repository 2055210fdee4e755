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

// Package listpack implements the packed, single-allocation byte-blob
// encoding used for short lists: a header, a run of variable-width
// entries each carrying its predecessor's encoded size, and a
// terminator byte. It trades O(N) interior insert/delete for a much
// smaller footprint than a pointer-based list, which is why the list
// facade in package list only keeps values in this form until they
// grow past a configured size or count.
//
// Every mutating method reallocates the backing buffer; callers must
// not retain a Cursor (a byte offset into the blob) across a mutation.
package listpack

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

// Package listnode implements a doubly linked list of arbitrary
// values, used as the node-based representation a List converts to
// once it outgrows the packed listpack form. Unlike container/list,
// every List needs to clone, free and match its element values with
// caller-supplied callbacks, so this package rolls its own node type
// rather than wrapping container/list.
package listnode

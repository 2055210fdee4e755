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

// Package blocking coordinates clients waiting on an empty list key
// for BLPOP/BRPOP/BRPOPLPUSH: registering waiters, marking keys ready
// when a push occurs, and draining ready keys in FIFO order after
// each command, transaction, or script boundary. It knows nothing
// about command parsing, client sockets, or the keyspace's storage —
// those are reached only through the Keyspace interface a Coordinator
// is given at construction time.
package blocking

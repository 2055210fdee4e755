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

// Context carries the calling command's execution environment into
// Block, so it can apply the transaction short-circuit rule without
// the coordinator needing to know anything about transactions or
// scripts itself.
type Context struct {
	// InTransaction is true while the calling command is executing
	// inside a MULTI/EXEC transaction or a script. A blocking pop
	// against an empty list short-circuits to a null reply instead of
	// registering the client as blocked, to avoid deadlocking the
	// event loop on itself.
	InTransaction bool
}

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

// Package listcmd binds the List command surface
// (LPUSH/RPUSH/LPUSHX/RPUSHX/LINSERT/LLEN/LINDEX/LSET/LPOP/RPOP/
// LRANGE/LTRIM/LREM/RPOPLPUSH/BLPOP/BRPOP/BRPOPLPUSH) to pkg/list and
// pkg/blocking. Command parsing and reply wire-encoding are out of
// scope — Reply is an abstract result a caller translates to its own
// wire protocol.
package listcmd

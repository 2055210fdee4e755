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

// Package list implements the representation-polymorphic list value:
// a packed listpack while small, a linked listnode.List once it
// outgrows configurable size thresholds. Conversion from packed to
// linked form is one-way; nothing ever converts a list back down.
package list

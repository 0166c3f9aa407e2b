// Copyright 2025 xliffkit LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package engine implements tag-aware regex matching and substitution over
// markup-bearing strings, the core of xliffqa.
//
// A markup string is split into text segments and tag spans. Patterns run
// against the tag-stripped plain view; match offsets and replacement output
// are mapped back into original-string coordinates with every tag literal
// preserved verbatim. Two regex backends are supported behind a common
// Pattern interface: the standard library's RE2 engine and dlclark/regexp2
// for patterns that need backtracking features such as lookaround.
//
// All operations are pure functions of their inputs. An Engine holds only
// its backend selection and is safe for concurrent use.
package engine

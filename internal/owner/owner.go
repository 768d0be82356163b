/*
 * © 2025 Halcyon Labs Ltd.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package owner

// Owner identifies the subsystem that produced a set of diagnostics. Owners
// never coordinate with each other; the marker store keys by owner so their
// contributions stay independent.
type Owner string

const (
	OwnerTypeScript   Owner = "typescript"
	OwnerESLint       Owner = "eslint"
	OwnerGit          Owner = "git"
	OwnerEditorEngine Owner = "editor"
	OwnerUnknown      Owner = ""
)

func (o Owner) String() string {
	return string(o)
}

// IsValid reports whether o may be used as a store partition key. Empty
// owner names are rejected at the store boundary.
func (o Owner) IsValid() bool {
	return o != OwnerUnknown
}

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

package types

import (
	"fmt"

	"github.com/halcyon-ide/marker-service/internal/owner"
)

// Resource identifies the file or document a diagnostic applies to. It is a
// URI-like string, usually file://-schemed; see internal/uri for path
// conversion.
type Resource string

// FilePath represents a file system path
type FilePath string

// Tag is a display hint attached to a diagnostic. It never affects
// filtering, sorting or statistics.
type Tag int

const (
	TagUnnecessary Tag = 1
	TagDeprecated  Tag = 2
)

// Code is an optional diagnostic code: a bare value, or a value plus a link
// to its documentation.
type Code struct {
	Value string
	// Href links to documentation for the code. May be empty.
	Href string
}

// RelatedInformation points at a secondary location relevant to a
// diagnostic, e.g. the other declaration in a name collision. Display only.
type RelatedInformation struct {
	Resource Resource
	Range    Range
	Message  string
}

// Diagnostic is a single reported issue, immutable once stored.
type Diagnostic struct {
	Range    Range
	Severity Severity
	Message  string
	Code     *Code
	// Source sub-classifies the diagnostic within its producer, e.g. a
	// linter rule ID. Distinct from the owner.
	Source             string
	Tags               []Tag
	RelatedInformation []RelatedInformation
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s %s", d.Severity, d.Range, d.Message)
}

// Marker is a diagnostic plus its ownership coordinates inside the store.
type Marker struct {
	Diagnostic
	Owner    owner.Owner
	Resource Resource
}

func (m Marker) String() string {
	return fmt.Sprintf("%s %s %s", m.Owner, m.Resource, m.Diagnostic)
}

// Statistics are severity counts over a filterable set of markers.
type Statistics struct {
	Errors   int
	Warnings int
	Infos    int
	Hints    int
	// Unknown counts markers whose severity is outside the defined domain.
	Unknown int
	Total   int
}

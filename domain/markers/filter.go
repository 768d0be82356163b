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

package markers

import (
	"github.com/halcyon-ide/marker-service/internal/owner"
	"github.com/halcyon-ide/marker-service/internal/types"
)

// Filter narrows a Read or Statistics call. All fields are optional and
// AND-combined; the zero value matches every stored marker.
type Filter struct {
	// Owner restricts results to one producer when non-empty.
	Owner owner.Owner
	// Resource restricts results to one document when non-empty.
	Resource types.Resource
	// Severities restricts results to members of the given set when non-nil.
	// Markers with a severity outside the defined domain never match a
	// severity-filtered read.
	Severities []types.Severity
	// Take truncates the result to at most N markers when positive. Applied
	// after all other filtering, in store iteration order; callers needing a
	// specific order sort the result themselves.
	Take int
}

func (f Filter) matchesOwner(o owner.Owner) bool {
	return f.Owner == owner.OwnerUnknown || f.Owner == o
}

func (f Filter) matchesResource(resource types.Resource) bool {
	return f.Resource == "" || f.Resource == resource
}

func (f Filter) matchesSeverity(severity types.Severity) bool {
	if f.Severities == nil {
		return true
	}
	if !severity.Known() {
		return false
	}
	for _, s := range f.Severities {
		if s == severity {
			return true
		}
	}
	return false
}

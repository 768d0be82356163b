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

// Severity is the criticality tier of a marker. The numeric values follow the
// host editor's historical bit-flag domain, so higher always means more
// severe. Consumers may persist the raw values; only the relative ordering is
// meaningful.
type Severity int

const (
	SeverityHint    Severity = 1
	SeverityInfo    Severity = 2
	SeverityWarning Severity = 4
	SeverityError   Severity = 8
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Known reports whether s is one of the four defined tiers. Markers with an
// unknown severity are excluded from severity-filtered reads but still show
// up in the unknown bucket of Statistics.
func (s Severity) Known() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo, SeverityHint:
		return true
	default:
		return false
	}
}

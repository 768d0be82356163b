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

package producers

import (
	"github.com/halcyon-ide/marker-service/internal/owner"
	"github.com/halcyon-ide/marker-service/internal/types"
)

// Producer is a diagnostic-producing subsystem, e.g. the built-in editor
// engine, a type checker or a linter. Producers know nothing about the
// marker store; an Adapter bridges them in.
type Producer interface {
	// Owner is the fixed name this producer's markers are stored under.
	Owner() owner.Owner
	// OnDiagnosticsChanged registers a listener for the producer's native
	// "diagnostics changed for these resources" event and returns an
	// unsubscribe func.
	OnDiagnosticsChanged(listener func(resources []types.Resource)) (unsubscribe func())
	// DiagnosticsFor returns the producer's complete current diagnostic list
	// for the resource, never a delta.
	DiagnosticsFor(resource types.Resource) []types.Diagnostic
}

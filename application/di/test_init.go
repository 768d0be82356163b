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

package di

import (
	"testing"

	er "github.com/halcyon-ide/marker-service/domain/observability/error_reporting"
	"github.com/halcyon-ide/marker-service/internal/testutil"
)

// TestInit wires the composition root with test doubles and tears everything
// down with the test.
func TestInit(t *testing.T) {
	t.Helper()
	testutil.UnitTest(t)

	initMutex.Lock()
	errorReporter = er.NewTestErrorReporter()
	initDomain()
	initMutex.Unlock()

	t.Cleanup(Dispose)
}

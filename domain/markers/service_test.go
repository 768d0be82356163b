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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-ide/marker-service/domain/observability/error_reporting"
	"github.com/halcyon-ide/marker-service/internal/owner"
	"github.com/halcyon-ide/marker-service/internal/testutil"
	"github.com/halcyon-ide/marker-service/internal/types"
)

const testResource = types.Resource("file:///workspace/f.ts")

func setupService(t *testing.T) Service {
	t.Helper()
	c := testutil.UnitTest(t)
	service := NewMarkerService(c, error_reporting.NewTestErrorReporter())
	t.Cleanup(service.Dispose)
	return service
}

func diagnostic(severity types.Severity, message string) types.Diagnostic {
	return types.Diagnostic{
		Range: types.Range{
			Start: types.Position{Line: 1, Column: 1},
			End:   types.Position{Line: 1, Column: 10},
		},
		Severity: severity,
		Message:  message,
	}
}

func Test_Replace_FullyOverwrites(t *testing.T) {
	service := setupService(t)

	first := []types.Diagnostic{diagnostic(types.SeverityError, "first"), diagnostic(types.SeverityWarning, "second")}
	second := []types.Diagnostic{diagnostic(types.SeverityInfo, "third")}

	service.Replace(owner.OwnerTypeScript, testResource, first)
	service.Replace(owner.OwnerTypeScript, testResource, second)

	result := service.Read(Filter{Owner: owner.OwnerTypeScript, Resource: testResource})
	require.Len(t, result, 1)
	assert.Equal(t, "third", result[0].Message)
}

func Test_Replace_MultiOwnerIndependence(t *testing.T) {
	service := setupService(t)

	service.Replace(owner.OwnerTypeScript, testResource, []types.Diagnostic{diagnostic(types.SeverityError, "errA")})
	service.Replace(owner.OwnerESLint, testResource, []types.Diagnostic{diagnostic(types.SeverityWarning, "warnB")})

	byResource := service.Read(Filter{Resource: testResource})
	assert.Len(t, byResource, 2)

	byOwner := service.Read(Filter{Owner: owner.OwnerTypeScript})
	require.Len(t, byOwner, 1)
	assert.Equal(t, "errA", byOwner[0].Message)
}

func Test_Replace_EmptyListRemoves(t *testing.T) {
	service := setupService(t)

	service.Replace(owner.OwnerTypeScript, testResource, []types.Diagnostic{diagnostic(types.SeverityError, "x")})
	service.Replace(owner.OwnerTypeScript, testResource, []types.Diagnostic{})

	assert.Empty(t, service.Read(Filter{Owner: owner.OwnerTypeScript, Resource: testResource}))

	// no dangling empty owner container
	target := service.(*DefaultMarkerService)
	target.mutex.RLock()
	_, ownerExists := target.byOwner[owner.OwnerTypeScript]
	target.mutex.RUnlock()
	assert.False(t, ownerExists)
}

func Test_Remove_ScopedToOwner(t *testing.T) {
	service := setupService(t)

	service.Replace(owner.Owner("A"), testResource, []types.Diagnostic{diagnostic(types.SeverityError, "x")})
	service.Replace(owner.Owner("B"), testResource, []types.Diagnostic{diagnostic(types.SeverityWarning, "y")})

	service.Remove(owner.Owner("A"), []types.Resource{testResource})

	result := service.Read(Filter{Resource: testResource})
	require.Len(t, result, 1)
	assert.Equal(t, "y", result[0].Message)
}

func Test_Remove_NonExistentStillNotifies(t *testing.T) {
	service := setupService(t)

	var notified [][]types.Resource
	unsubscribe := service.Subscribe(func(changed []types.Resource) {
		notified = append(notified, changed)
	})
	defer unsubscribe()

	service.Remove(owner.OwnerGit, []types.Resource{testResource})

	require.Len(t, notified, 1)
	assert.Equal(t, []types.Resource{testResource}, notified[0])
}

func Test_Replace_InvalidInputIgnored(t *testing.T) {
	service := setupService(t)

	var notifications int
	unsubscribe := service.Subscribe(func([]types.Resource) { notifications++ })
	defer unsubscribe()

	service.Replace(owner.OwnerUnknown, testResource, []types.Diagnostic{diagnostic(types.SeverityError, "x")})
	service.Replace(owner.OwnerTypeScript, "", []types.Diagnostic{diagnostic(types.SeverityError, "x")})

	assert.Empty(t, service.Read(Filter{}))
	assert.Equal(t, 0, notifications)
}

func Test_Statistics_ConsistentWithRead(t *testing.T) {
	service := setupService(t)

	service.Replace(owner.OwnerTypeScript, testResource, []types.Diagnostic{
		diagnostic(types.SeverityError, "e"),
		diagnostic(types.SeverityWarning, "w"),
		diagnostic(types.Severity(5), "weird"),
	})
	service.Replace(owner.OwnerESLint, "file:///workspace/g.ts", []types.Diagnostic{
		diagnostic(types.SeverityHint, "h"),
		diagnostic(types.SeverityInfo, "i"),
	})
	service.Remove(owner.OwnerESLint, []types.Resource{"file:///workspace/g.ts"})

	stats := service.Statistics(Filter{})
	assert.Equal(t, len(service.Read(Filter{})), stats.Total)
	assert.Equal(t, stats.Total, stats.Errors+stats.Warnings+stats.Infos+stats.Hints+stats.Unknown)
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, 1, stats.Warnings)
	assert.Equal(t, 1, stats.Unknown)
}

func Test_Read_SeverityFilterExcludesUnknown(t *testing.T) {
	service := setupService(t)

	service.Replace(owner.OwnerTypeScript, testResource, []types.Diagnostic{
		diagnostic(types.SeverityError, "e"),
		diagnostic(types.Severity(42), "weird"),
	})

	filtered := service.Read(Filter{Severities: []types.Severity{types.SeverityError, types.SeverityWarning}})
	require.Len(t, filtered, 1)
	assert.Equal(t, "e", filtered[0].Message)
}

func Test_Read_Take(t *testing.T) {
	service := setupService(t)

	service.Replace(owner.OwnerTypeScript, testResource, []types.Diagnostic{
		diagnostic(types.SeverityError, "a"),
		diagnostic(types.SeverityError, "b"),
		diagnostic(types.SeverityError, "c"),
	})

	assert.Len(t, service.Read(Filter{Take: 2}), 2)
	assert.Len(t, service.Read(Filter{Take: 10}), 3)
}

func Test_Read_DefensiveCopy(t *testing.T) {
	service := setupService(t)

	service.Replace(owner.OwnerTypeScript, testResource, []types.Diagnostic{diagnostic(types.SeverityError, "original")})

	result := service.Read(Filter{Resource: testResource})
	result[0].Message = "mutated"

	again := service.Read(Filter{Resource: testResource})
	require.Len(t, again, 1)
	assert.Equal(t, "original", again[0].Message)
}

func Test_ReplaceMany_SingleNotification(t *testing.T) {
	service := setupService(t)

	var notified [][]types.Resource
	unsubscribe := service.Subscribe(func(changed []types.Resource) {
		notified = append(notified, changed)
	})
	defer unsubscribe()

	r1 := types.Resource("file:///workspace/a.ts")
	r2 := types.Resource("file:///workspace/b.ts")
	service.ReplaceMany(owner.OwnerTypeScript, []ResourceDiagnostics{
		{Resource: r1, Diagnostics: []types.Diagnostic{diagnostic(types.SeverityError, "a")}},
		{Resource: r2, Diagnostics: []types.Diagnostic{diagnostic(types.SeverityWarning, "b")}},
	})

	require.Len(t, notified, 1)
	assert.ElementsMatch(t, []types.Resource{r1, r2}, notified[0])
}

func Test_Subscribe_Unsubscribe(t *testing.T) {
	service := setupService(t)

	var notifications int
	unsubscribe := service.Subscribe(func([]types.Resource) { notifications++ })

	service.Replace(owner.OwnerTypeScript, testResource, []types.Diagnostic{diagnostic(types.SeverityError, "x")})
	unsubscribe()
	service.Replace(owner.OwnerTypeScript, testResource, []types.Diagnostic{diagnostic(types.SeverityError, "y")})

	assert.Equal(t, 1, notifications)
}

func Test_Dispose_ClearsDataAndSubscriptions(t *testing.T) {
	c := testutil.UnitTest(t)
	service := NewMarkerService(c, error_reporting.NewTestErrorReporter())

	var notifications int
	service.Subscribe(func([]types.Resource) { notifications++ })
	service.Replace(owner.OwnerTypeScript, testResource, []types.Diagnostic{diagnostic(types.SeverityError, "x")})

	service.Dispose()

	assert.Empty(t, service.Read(Filter{}))
	assert.Equal(t, 0, service.(*DefaultMarkerService).bus.size())

	// writes after disposal are dropped
	service.Replace(owner.OwnerTypeScript, testResource, []types.Diagnostic{diagnostic(types.SeverityError, "y")})
	assert.Empty(t, service.Read(Filter{}))
	assert.Equal(t, 1, notifications)
}

func Test_Scenario_ThreeProducersOneFile(t *testing.T) {
	service := setupService(t)

	service.Replace(owner.OwnerTypeScript, testResource, []types.Diagnostic{
		{
			Range:    types.Range{Start: types.Position{Line: 3, Column: 1}, End: types.Position{Line: 3, Column: 5}},
			Severity: types.SeverityError,
			Message:  "type mismatch",
		},
		{
			Range:    types.Range{Start: types.Position{Line: 8, Column: 1}, End: types.Position{Line: 8, Column: 3}},
			Severity: types.SeverityWarning,
			Message:  "unused variable",
		},
	})
	service.Replace(owner.OwnerESLint, testResource, []types.Diagnostic{
		{
			Range:    types.Range{Start: types.Position{Line: 3, Column: 1}, End: types.Position{Line: 3, Column: 5}},
			Severity: types.SeverityWarning,
			Message:  "prefer-const",
			Source:   "prefer-const",
		},
	})

	assert.Len(t, service.Read(Filter{Resource: testResource}), 3)

	stats := service.Statistics(Filter{Resource: testResource})
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, 2, stats.Warnings)
	assert.Equal(t, 0, stats.Infos)
	assert.Equal(t, 0, stats.Hints)
	assert.Equal(t, 3, stats.Total)
}

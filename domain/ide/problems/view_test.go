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

package problems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-ide/marker-service/application/config"
	"github.com/halcyon-ide/marker-service/domain/markers"
	"github.com/halcyon-ide/marker-service/domain/observability/error_reporting"
	"github.com/halcyon-ide/marker-service/internal/owner"
	"github.com/halcyon-ide/marker-service/internal/testutil"
	"github.com/halcyon-ide/marker-service/internal/types"
)

var (
	resourceA = types.Resource("file:///workspace/a.ts")
	resourceB = types.Resource("file:///workspace/b.ts")
)

func setupView(t *testing.T) (*config.Config, markers.Service, *View) {
	t.Helper()
	c := testutil.UnitTest(t)
	store := markers.NewMarkerService(c, error_reporting.NewTestErrorReporter())
	t.Cleanup(store.Dispose)
	return c, store, NewView(c, store)
}

func at(line int, severity types.Severity, message string) types.Diagnostic {
	return types.Diagnostic{
		Range: types.Range{
			Start: types.Position{Line: line, Column: 1},
			End:   types.Position{Line: line, Column: 10},
		},
		Severity: severity,
		Message:  message,
	}
}

func seedProblems(store markers.Service) {
	store.Replace(owner.OwnerTypeScript, resourceB, []types.Diagnostic{
		at(5, types.SeverityWarning, "unused import"),
		at(1, types.SeverityError, "cannot find name"),
	})
	store.Replace(owner.OwnerESLint, resourceA, []types.Diagnostic{
		{
			Range:    types.Range{Start: types.Position{Line: 9, Column: 1}, End: types.Position{Line: 9, Column: 4}},
			Severity: types.SeverityWarning,
			Message:  "missing semicolon",
			Code:     &types.Code{Value: "semi", Href: "https://eslint.org/docs/rules/semi"},
		},
	})
}

func Test_Problems_SortBySeverityThenPosition(t *testing.T) {
	_, store, view := setupView(t)
	seedProblems(store)

	result := view.Problems(Options{SortOrder: config.SortBySeverity})

	require.Len(t, result, 3)
	assert.Equal(t, "cannot find name", result[0].Message)
	assert.Equal(t, types.SeverityWarning, result[1].Severity)
	assert.Equal(t, types.SeverityWarning, result[2].Severity)
	assert.True(t, result[1].Range.Start.Line <= result[2].Range.Start.Line)
}

func Test_Problems_SortByPosition(t *testing.T) {
	_, store, view := setupView(t)
	seedProblems(store)

	result := view.Problems(Options{SortOrder: config.SortByPosition})

	require.Len(t, result, 3)
	assert.Equal(t, 1, result[0].Range.Start.Line)
	assert.Equal(t, 5, result[1].Range.Start.Line)
	assert.Equal(t, 9, result[2].Range.Start.Line)
}

func Test_Problems_SortByFileNameThenPosition(t *testing.T) {
	_, store, view := setupView(t)
	seedProblems(store)

	result := view.Problems(Options{SortOrder: config.SortByFileName})

	require.Len(t, result, 3)
	assert.Equal(t, resourceA, result[0].Resource)
	assert.Equal(t, resourceB, result[1].Resource)
	assert.Equal(t, 1, result[1].Range.Start.Line)
	assert.Equal(t, 5, result[2].Range.Start.Line)
}

func Test_Problems_ConfiguredOrderIsDefault(t *testing.T) {
	c, store, view := setupView(t)
	seedProblems(store)
	c.SetProblemsSortOrder(config.SortByPosition)

	result := view.Problems(Options{})

	require.Len(t, result, 3)
	assert.Equal(t, 1, result[0].Range.Start.Line)
}

func Test_Problems_OwnerSubset(t *testing.T) {
	_, store, view := setupView(t)
	seedProblems(store)

	result := view.Problems(Options{Owners: []owner.Owner{owner.OwnerESLint}})

	require.Len(t, result, 1)
	assert.Equal(t, owner.OwnerESLint, result[0].Owner)
}

func Test_Problems_FreeTextSearch(t *testing.T) {
	_, store, view := setupView(t)
	seedProblems(store)

	assert.Len(t, view.Problems(Options{Query: "semicolon"}), 1)   // message
	assert.Len(t, view.Problems(Options{Query: "b.ts"}), 2)        // resource
	assert.Len(t, view.Problems(Options{Query: "eslint"}), 1)      // owner
	assert.Len(t, view.Problems(Options{Query: "SEMI"}), 1)        // code, case-folded
	assert.Empty(t, view.Problems(Options{Query: "no such term"}))
}

func Test_GroupByResource(t *testing.T) {
	_, store, view := setupView(t)
	seedProblems(store)

	grouped := GroupByResource(view.Problems(Options{}))

	require.Len(t, grouped, 2)
	assert.Len(t, grouped[resourceA], 1)
	assert.Len(t, grouped[resourceB], 2)
}

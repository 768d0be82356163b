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

// Package problems assembles the problems-panel list from the marker store's
// read contract. All sorting, grouping and searching happens client-side;
// the store stays order-free.
package problems

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/halcyon-ide/marker-service/application/config"
	"github.com/halcyon-ide/marker-service/domain/markers"
	"github.com/halcyon-ide/marker-service/internal/owner"
	"github.com/halcyon-ide/marker-service/internal/types"
	"github.com/halcyon-ide/marker-service/internal/uri"
)

// Options narrow and order one problems-panel read.
type Options struct {
	// Owners is a multi-select subset; empty means all producers.
	Owners []owner.Owner
	// Query is a case-insensitive free-text search over message, resource,
	// owner and code.
	Query string
	// SortOrder overrides the configured order when non-empty.
	SortOrder config.ProblemsSortOrder
}

type View struct {
	c     *config.Config
	store markers.Service
}

func NewView(c *config.Config, store markers.Service) *View {
	return &View{c: c, store: store}
}

// Problems returns the full filtered, sorted problems list.
func (v *View) Problems(opts Options) []types.Marker {
	result := v.filter(v.store.Read(markers.Filter{}), opts)
	v.sort(result, opts.SortOrder)
	return result
}

// ForResource returns one document's markers, sorted by the configured
// order.
func (v *View) ForResource(resource types.Resource) []types.Marker {
	result := v.store.Read(markers.Filter{Resource: resource})
	v.sort(result, "")
	return result
}

func (v *View) filter(all []types.Marker, opts Options) []types.Marker {
	result := []types.Marker{}
	for _, marker := range all {
		if len(opts.Owners) > 0 && !slices.Contains(opts.Owners, marker.Owner) {
			continue
		}
		if opts.Query != "" && !matchesQuery(marker, opts.Query) {
			continue
		}
		result = append(result, marker)
	}
	return result
}

func (v *View) sort(result []types.Marker, order config.ProblemsSortOrder) {
	if order == "" {
		order = v.c.ProblemsSortOrder()
	}
	switch order {
	case config.SortByPosition:
		slices.SortStableFunc(result, comparePosition)
	case config.SortByFileName:
		slices.SortStableFunc(result, compareFileName)
	default:
		slices.SortStableFunc(result, compareSeverity)
	}
}

// GroupByResource buckets an already filtered and sorted list per document,
// preserving the incoming order inside each bucket.
func GroupByResource(list []types.Marker) map[types.Resource][]types.Marker {
	grouped := make(map[types.Resource][]types.Marker)
	for _, marker := range list {
		grouped[marker.Resource] = append(grouped[marker.Resource], marker)
	}
	return grouped
}

func matchesQuery(marker types.Marker, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(marker.Message), q) {
		return true
	}
	if strings.Contains(strings.ToLower(string(marker.Resource)), q) {
		return true
	}
	if strings.Contains(strings.ToLower(marker.Owner.String()), q) {
		return true
	}
	if marker.Code != nil && strings.Contains(strings.ToLower(marker.Code.Value), q) {
		return true
	}
	return false
}

func comparePosition(a, b types.Marker) int {
	if a.Range.Start == b.Range.Start {
		return 0
	}
	if a.Range.Start.Before(b.Range.Start) {
		return -1
	}
	return 1
}

func compareSeverity(a, b types.Marker) int {
	if a.Severity != b.Severity {
		return int(b.Severity) - int(a.Severity)
	}
	return comparePosition(a, b)
}

func compareFileName(a, b types.Marker) int {
	pathA := string(uri.PathFromResource(a.Resource))
	pathB := string(uri.PathFromResource(b.Resource))
	if pathA != pathB {
		return strings.Compare(pathA, pathB)
	}
	return comparePosition(a, b)
}

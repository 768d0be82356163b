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
	"sync"

	"github.com/halcyon-ide/marker-service/application/config"
	"github.com/halcyon-ide/marker-service/domain/observability/error_reporting"
	"github.com/halcyon-ide/marker-service/internal/owner"
	"github.com/halcyon-ide/marker-service/internal/types"
)

// ResourceDiagnostics is one entry of a batched replace: the complete current
// diagnostic list of a producer for one resource.
type ResourceDiagnostics struct {
	Resource    types.Resource
	Diagnostics []types.Diagnostic
}

// Service is the multi-owner marker store. Producers push complete
// per-resource diagnostic lists under their own owner name; consumers read
// filtered snapshots and subscribe to change notifications.
type Service interface {
	Replace(o owner.Owner, resource types.Resource, diagnostics []types.Diagnostic)
	ReplaceMany(o owner.Owner, batch []ResourceDiagnostics)
	Remove(o owner.Owner, resources []types.Resource)
	Read(filter Filter) []types.Marker
	Statistics(filter Filter) types.Statistics
	Subscribe(handler ChangeHandler) (unsubscribe func())
	Dispose()
}

type diagnosticsByResource map[types.Resource][]types.Diagnostic

// DefaultMarkerService partitions markers by owner first, resource second. A
// given (owner, resource) pair always holds the producer's complete current
// list; an empty incoming list removes the pair, and an owner with no
// resources left is removed entirely.
type DefaultMarkerService struct {
	mutex    sync.RWMutex
	byOwner  map[owner.Owner]diagnosticsByResource
	bus      *changeBus
	disposed bool
	c        *config.Config
}

func NewMarkerService(c *config.Config, errorReporter error_reporting.ErrorReporter) Service {
	return &DefaultMarkerService{
		byOwner: make(map[owner.Owner]diagnosticsByResource),
		bus:     newChangeBus(c.Logger(), errorReporter),
		c:       c,
	}
}

// Replace swaps the complete diagnostic list for (owner, resource) and
// notifies subscribers once.
func (s *DefaultMarkerService) Replace(o owner.Owner, resource types.Resource, diagnostics []types.Diagnostic) {
	s.mutex.Lock()
	if s.disposed {
		s.mutex.Unlock()
		return
	}
	applied := s.replaceLocked(o, resource, diagnostics)
	s.mutex.Unlock()

	if applied {
		s.bus.notify([]types.Resource{resource})
	}
}

// ReplaceMany applies every entry of the batch as one logical mutation and
// notifies subscribers exactly once with the union of changed resources.
func (s *DefaultMarkerService) ReplaceMany(o owner.Owner, batch []ResourceDiagnostics) {
	s.mutex.Lock()
	if s.disposed {
		s.mutex.Unlock()
		return
	}
	changed := make([]types.Resource, 0, len(batch))
	seen := make(map[types.Resource]bool, len(batch))
	for _, entry := range batch {
		if !s.replaceLocked(o, entry.Resource, entry.Diagnostics) {
			continue
		}
		if !seen[entry.Resource] {
			seen[entry.Resource] = true
			changed = append(changed, entry.Resource)
		}
	}
	s.mutex.Unlock()

	if len(changed) > 0 {
		s.bus.notify(changed)
	}
}

func (s *DefaultMarkerService) replaceLocked(o owner.Owner, resource types.Resource, diagnostics []types.Diagnostic) bool {
	if !o.IsValid() || resource == "" {
		s.c.Logger().Warn().Str("method", "Replace").
			Str("owner", o.String()).Str("resource", string(resource)).
			Msg("ignoring replace with empty owner or resource")
		return false
	}

	byResource, exists := s.byOwner[o]
	if len(diagnostics) == 0 {
		// absence is the empty-list sentinel, never a stored empty record
		if exists {
			delete(byResource, resource)
			if len(byResource) == 0 {
				delete(s.byOwner, o)
			}
		}
		return true
	}

	if !exists {
		byResource = make(diagnosticsByResource)
		s.byOwner[o] = byResource
	}
	stored := make([]types.Diagnostic, len(diagnostics))
	copy(stored, diagnostics)
	byResource[resource] = stored

	s.c.Logger().Trace().Str("method", "Replace").
		Str("owner", o.String()).Str("resource", string(resource)).
		Int("count", len(stored)).Msg("replaced diagnostics")
	return true
}

// Remove clears the given resources under one owner only; other owners'
// markers for the same resources stay untouched. Every requested resource is
// reported as changed, present or not, since the caller's intent was to
// clear it.
func (s *DefaultMarkerService) Remove(o owner.Owner, resources []types.Resource) {
	if len(resources) == 0 {
		return
	}

	s.mutex.Lock()
	if s.disposed {
		s.mutex.Unlock()
		return
	}
	if byResource, exists := s.byOwner[o]; exists {
		for _, resource := range resources {
			delete(byResource, resource)
		}
		if len(byResource) == 0 {
			delete(s.byOwner, o)
		}
	}
	s.mutex.Unlock()

	s.bus.notify(resources)
}

// Read returns a newly constructed flat list of markers matching the filter.
// Internal containers are never exposed.
func (s *DefaultMarkerService) Read(filter Filter) []types.Marker {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := []types.Marker{}
	for o, byResource := range s.byOwner {
		if !filter.matchesOwner(o) {
			continue
		}
		for resource, diagnostics := range byResource {
			if !filter.matchesResource(resource) {
				continue
			}
			for _, diagnostic := range diagnostics {
				if !filter.matchesSeverity(diagnostic.Severity) {
					continue
				}
				result = append(result, types.Marker{
					Diagnostic: diagnostic,
					Owner:      o,
					Resource:   resource,
				})
				if filter.Take > 0 && len(result) >= filter.Take {
					return result
				}
			}
		}
	}
	return result
}

// Statistics counts the same filterable universe Read serves.
func (s *DefaultMarkerService) Statistics(filter Filter) types.Statistics {
	stats := types.Statistics{}
	for _, marker := range s.Read(filter) {
		switch marker.Severity {
		case types.SeverityError:
			stats.Errors++
		case types.SeverityWarning:
			stats.Warnings++
		case types.SeverityInfo:
			stats.Infos++
		case types.SeverityHint:
			stats.Hints++
		default:
			stats.Unknown++
		}
		stats.Total++
	}
	return stats
}

// Subscribe registers a change handler and returns its unsubscribe func.
func (s *DefaultMarkerService) Subscribe(handler ChangeHandler) func() {
	return s.bus.subscribe(handler)
}

// Dispose clears all stored markers and subscriptions. Writes arriving after
// disposal are dropped; the composition root constructs a fresh instance on
// the next access.
func (s *DefaultMarkerService) Dispose() {
	s.mutex.Lock()
	s.byOwner = make(map[owner.Owner]diagnosticsByResource)
	s.disposed = true
	s.mutex.Unlock()
	s.bus.clear()
	s.c.Logger().Debug().Str("method", "Dispose").Msg("marker service disposed")
}

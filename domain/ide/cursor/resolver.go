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

package cursor

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/slices"

	"github.com/halcyon-ide/marker-service/application/config"
	"github.com/halcyon-ide/marker-service/domain/markers"
	"github.com/halcyon-ide/marker-service/internal/debounce"
	"github.com/halcyon-ide/marker-service/internal/types"
)

// cursor events arrive on every keystroke, coalesce them before scanning
const debounceInterval = 100 * time.Millisecond

// Resolver tracks the cursor and resolves the most relevant marker whose
// range contains it, for the status-bar current-problem indicator. The whole
// component is gated by the show-problem-in-status-bar setting: when
// disabled it subscribes to nothing and resolves nothing.
type Resolver struct {
	c         *config.Config
	store     markers.Service
	onChange  func(marker *types.Marker)
	enabled   bool
	debouncer *debounce.Debouncer

	mutex            sync.RWMutex
	resource         types.Resource
	position         types.Position
	current          *types.Marker
	unsubscribeStore func()
}

// NewResolver wires the resolver to the store. onChange is invoked with the
// newly resolved marker, or nil when the cursor leaves all markers; it is
// never invoked twice in a row for the same marker.
func NewResolver(c *config.Config, store markers.Service, onChange func(marker *types.Marker)) *Resolver {
	r := &Resolver{
		c:        c,
		store:    store,
		onChange: onChange,
		enabled:  c.IsShowProblemInStatusBarEnabled(),
	}
	if !r.enabled {
		return r
	}
	r.debouncer = debounce.NewDebouncer(debounceInterval, r.resolve)
	r.unsubscribeStore = store.Subscribe(r.handleStoreChange)
	return r
}

// UpdateCursorPosition records the new cursor target and schedules a
// debounced re-resolve. Each call cancels the previously pending one.
func (r *Resolver) UpdateCursorPosition(resource types.Resource, position types.Position) {
	if !r.enabled {
		return
	}
	r.mutex.Lock()
	r.resource = resource
	r.position = position
	r.mutex.Unlock()

	r.debouncer.Debounce()
}

func (r *Resolver) handleStoreChange(changedResources []types.Resource) {
	r.mutex.RLock()
	resource := r.resource
	r.mutex.RUnlock()
	if resource == "" {
		return
	}
	for _, changed := range changedResources {
		if changed == resource {
			r.resolve()
			return
		}
	}
}

func (r *Resolver) resolve() {
	r.mutex.Lock()
	resource := r.resource
	position := r.position
	r.mutex.Unlock()
	if resource == "" {
		return
	}

	resolved := r.markerAtPosition(resource, position)

	r.mutex.Lock()
	changed := !sameMarker(r.current, resolved)
	r.current = resolved
	r.mutex.Unlock()

	if changed && r.onChange != nil {
		r.onChange(resolved)
	}
}

// markerAtPosition returns the most relevant marker containing the position:
// most severe first, then earliest range start, then owner name, so the
// status bar shows a stable pick when markers overlap.
func (r *Resolver) markerAtPosition(resource types.Resource, position types.Position) *types.Marker {
	candidates := []types.Marker{}
	for _, marker := range r.store.Read(markers.Filter{Resource: resource}) {
		if marker.Range.ContainsPosition(position) {
			candidates = append(candidates, marker)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	slices.SortStableFunc(candidates, func(a, b types.Marker) int {
		if a.Severity != b.Severity {
			return int(b.Severity) - int(a.Severity)
		}
		if a.Range.Start != b.Range.Start {
			if a.Range.Start.Before(b.Range.Start) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Owner.String(), b.Owner.String())
	})

	r.c.Logger().Trace().Str("method", "markerAtPosition").
		Str("resource", string(resource)).
		Int("candidates", len(candidates)).
		Msgf("resolved %s", candidates[0])
	return &candidates[0]
}

// Current returns the last resolved marker, or nil.
func (r *Resolver) Current() *types.Marker {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.current
}

// Dispose cancels any pending debounced run and drops the store
// subscription.
func (r *Resolver) Dispose() {
	if !r.enabled {
		return
	}
	r.debouncer.Stop()
	if r.unsubscribeStore != nil {
		r.unsubscribeStore()
	}
}

func sameMarker(a *types.Marker, b *types.Marker) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Owner == b.Owner &&
		a.Resource == b.Resource &&
		a.Range == b.Range &&
		a.Severity == b.Severity &&
		a.Message == b.Message
}

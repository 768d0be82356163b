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
	"github.com/erni27/imcache"

	"github.com/halcyon-ide/marker-service/application/config"
	"github.com/halcyon-ide/marker-service/domain/markers"
	"github.com/halcyon-ide/marker-service/internal/types"
)

// CachedView memoizes per-resource problem lists between store mutations.
// Change notifications invalidate exactly the touched resources, so an idle
// panel re-renders without re-scanning the store.
type CachedView struct {
	view        *View
	cache       *imcache.Cache[types.Resource, []types.Marker]
	unsubscribe func()
}

func NewCachedView(c *config.Config, store markers.Service) *CachedView {
	cv := &CachedView{
		view:  NewView(c, store),
		cache: imcache.New[types.Resource, []types.Marker](),
	}
	cv.unsubscribe = store.Subscribe(cv.invalidate)
	return cv
}

// Problems delegates to the underlying view; full-panel reads are not
// memoized since every option combination would need its own entry.
func (cv *CachedView) Problems(opts Options) []types.Marker {
	return cv.view.Problems(opts)
}

func (cv *CachedView) ForResource(resource types.Resource) []types.Marker {
	cached, present := cv.cache.Get(resource)
	if !present {
		cached = cv.view.ForResource(resource)
		cv.cache.Set(resource, cached, imcache.WithNoExpiration())
	}
	// consumers re-sort freely, the cached entry must not see that
	result := make([]types.Marker, len(cached))
	copy(result, cached)
	return result
}

func (cv *CachedView) invalidate(changedResources []types.Resource) {
	for _, resource := range changedResources {
		cv.cache.Remove(resource)
	}
}

func (cv *CachedView) Dispose() {
	cv.unsubscribe()
	cv.cache.RemoveAll()
}

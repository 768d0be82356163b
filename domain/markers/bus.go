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
	"fmt"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"

	"github.com/halcyon-ide/marker-service/domain/observability/error_reporting"
	"github.com/halcyon-ide/marker-service/internal/types"
)

// ChangeHandler receives the resources touched by one store mutation. Each
// mutation produces exactly one call per subscriber, no matter how many
// resources it covered.
type ChangeHandler func(changedResources []types.Resource)

// changeBus fans a mutation's changed-resource set out to all subscribers.
// Handlers are isolated from each other: a panicking handler is captured and
// the remaining handlers still run. No ordering among subscribers is
// guaranteed.
type changeBus struct {
	subscribers   *xsync.MapOf[string, ChangeHandler]
	logger        *zerolog.Logger
	errorReporter error_reporting.ErrorReporter
}

func newChangeBus(logger *zerolog.Logger, errorReporter error_reporting.ErrorReporter) *changeBus {
	return &changeBus{
		subscribers:   xsync.NewMapOf[string, ChangeHandler](),
		logger:        logger,
		errorReporter: errorReporter,
	}
}

func (b *changeBus) subscribe(handler ChangeHandler) func() {
	id := uuid.NewString()
	b.subscribers.Store(id, handler)
	b.logger.Trace().Str("method", "changeBus.subscribe").Str("subscription", id).Msg("registered change handler")
	return func() {
		b.subscribers.Delete(id)
	}
}

func (b *changeBus) notify(changedResources []types.Resource) {
	// handlers get their own copy, the caller may reuse its slice
	changed := make([]types.Resource, len(changedResources))
	copy(changed, changedResources)

	b.subscribers.Range(func(id string, handler ChangeHandler) bool {
		b.dispatch(id, handler, changed)
		return true
	})
}

func (b *changeBus) dispatch(id string, handler ChangeHandler, changed []types.Resource) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("change handler %s panicked: %v", id, r)
			b.logger.Error().Str("method", "changeBus.dispatch").Err(err).Msg("recovered from change handler")
			if b.errorReporter != nil {
				b.errorReporter.CaptureError(err)
			}
		}
	}()
	handler(changed)
}

func (b *changeBus) clear() {
	b.subscribers.Range(func(id string, _ ChangeHandler) bool {
		b.subscribers.Delete(id)
		return true
	})
}

func (b *changeBus) size() int {
	return b.subscribers.Size()
}

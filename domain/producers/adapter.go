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
	"sync"

	"github.com/pkg/errors"

	"github.com/halcyon-ide/marker-service/application/config"
	"github.com/halcyon-ide/marker-service/domain/markers"
	"github.com/halcyon-ide/marker-service/domain/observability/error_reporting"
	"github.com/halcyon-ide/marker-service/internal/types"
)

// Adapter bridges exactly one producer into the marker store. On each native
// change event it pulls the producer's complete current list per touched
// resource and forwards the whole batch as one store mutation, so the store
// notifies its subscribers once per producer event. Multiple adapters
// coexist independently; the store keys by owner.
type Adapter struct {
	producer      Producer
	store         markers.Service
	errorReporter error_reporting.ErrorReporter
	c             *config.Config
	unsubscribe   func()
	disposeOnce   sync.Once
}

// NewAdapter subscribes to the producer's change event immediately.
func NewAdapter(c *config.Config, store markers.Service, producer Producer, errorReporter error_reporting.ErrorReporter) *Adapter {
	a := &Adapter{
		producer:      producer,
		store:         store,
		errorReporter: errorReporter,
		c:             c,
	}
	a.unsubscribe = producer.OnDiagnosticsChanged(a.handleChanged)
	c.Logger().Debug().Str("method", "NewAdapter").
		Str("owner", producer.Owner().String()).Msg("producer adapter attached")
	return a
}

func (a *Adapter) handleChanged(resources []types.Resource) {
	batch := make([]markers.ResourceDiagnostics, 0, len(resources))
	for _, resource := range resources {
		diagnostics, err := a.pull(resource)
		if err != nil {
			// skip the failing resource, it is retried on the next native event
			a.c.Logger().Error().Err(err).Str("method", "handleChanged").
				Str("owner", a.producer.Owner().String()).
				Str("resource", string(resource)).
				Msg("skipping resource after producer failure")
			a.errorReporter.CaptureError(err)
			continue
		}
		batch = append(batch, markers.ResourceDiagnostics{Resource: resource, Diagnostics: diagnostics})
	}
	if len(batch) > 0 {
		a.store.ReplaceMany(a.producer.Owner(), batch)
	}
}

func (a *Adapter) pull(resource types.Resource) (diagnostics []types.Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("producer %s panicked pulling diagnostics for %s: %v", a.producer.Owner(), resource, r)
		}
	}()
	return a.producer.DiagnosticsFor(resource), nil
}

// Dispose unsubscribes from the producer and performs no further writes.
// Safe to call more than once.
func (a *Adapter) Dispose() {
	a.disposeOnce.Do(func() {
		a.unsubscribe()
		a.c.Logger().Debug().Str("method", "Dispose").
			Str("owner", a.producer.Owner().String()).Msg("producer adapter detached")
	})
}

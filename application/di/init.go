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

// Package di is the composition root. The application holds one marker
// service per process; producers and consumers are wired against it here
// instead of reaching for hidden globals.
package di

import (
	"sync"

	"github.com/halcyon-ide/marker-service/application/config"
	"github.com/halcyon-ide/marker-service/domain/ide/cursor"
	"github.com/halcyon-ide/marker-service/domain/ide/problems"
	"github.com/halcyon-ide/marker-service/domain/markers"
	er "github.com/halcyon-ide/marker-service/domain/observability/error_reporting"
	"github.com/halcyon-ide/marker-service/domain/producers"
	"github.com/halcyon-ide/marker-service/infrastructure/sentry"
	"github.com/halcyon-ide/marker-service/internal/types"
)

var initMutex = &sync.Mutex{}

var errorReporter er.ErrorReporter
var markerService markers.Service
var problemsView *problems.CachedView
var cursorResolver *cursor.Resolver
var adapters []*producers.Adapter

func Init() {
	initMutex.Lock()
	defer initMutex.Unlock()
	initDomain()
}

func initDomain() {
	c := config.CurrentConfig()
	if errorReporter == nil {
		errorReporter = sentry.NewSentryErrorReporter()
	}
	markerService = markers.NewMarkerService(c, errorReporter)
	problemsView = problems.NewCachedView(c, markerService)
}

// AttachProducer bridges a producer into the marker service and tracks the
// adapter for disposal.
func AttachProducer(producer producers.Producer) *producers.Adapter {
	initMutex.Lock()
	defer initMutex.Unlock()
	if markerService == nil {
		initDomain()
	}
	adapter := producers.NewAdapter(config.CurrentConfig(), markerService, producer, errorReporter)
	adapters = append(adapters, adapter)
	return adapter
}

// CursorResolver returns the status-bar resolver, constructing it on first
// access. onChange is only used for that first construction.
func CursorResolver(onChange func(marker *types.Marker)) *cursor.Resolver {
	initMutex.Lock()
	defer initMutex.Unlock()
	if markerService == nil {
		initDomain()
	}
	if cursorResolver == nil {
		cursorResolver = cursor.NewResolver(config.CurrentConfig(), markerService, onChange)
	}
	return cursorResolver
}

// MarkerService returns the process-wide marker store, constructing a fresh
// one if the previous instance was disposed.
func MarkerService() markers.Service {
	initMutex.Lock()
	defer initMutex.Unlock()
	if markerService == nil {
		initDomain()
	}
	return markerService
}

func ProblemsView() *problems.CachedView {
	initMutex.Lock()
	defer initMutex.Unlock()
	if problemsView == nil {
		initDomain()
	}
	return problemsView
}

func ErrorReporter() er.ErrorReporter {
	initMutex.Lock()
	defer initMutex.Unlock()
	if errorReporter == nil {
		errorReporter = sentry.NewSentryErrorReporter()
	}
	return errorReporter
}

// Dispose releases producer subscriptions, clears all stored markers and
// consumer subscriptions, and invalidates the singleton handles. The next
// accessor call constructs a fresh instance.
func Dispose() {
	initMutex.Lock()
	defer initMutex.Unlock()

	for _, adapter := range adapters {
		adapter.Dispose()
	}
	adapters = nil
	if cursorResolver != nil {
		cursorResolver.Dispose()
		cursorResolver = nil
	}
	if problemsView != nil {
		problemsView.Dispose()
		problemsView = nil
	}
	if markerService != nil {
		markerService.Dispose()
		markerService = nil
	}
	if errorReporter != nil {
		errorReporter.FlushErrorReporting()
	}
}

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

	"github.com/halcyon-ide/marker-service/internal/owner"
	"github.com/halcyon-ide/marker-service/internal/types"
)

// FakeProducer is an in-memory producer for tests and wiring examples. It
// holds per-resource diagnostic lists and emits its change event on demand.
type FakeProducer struct {
	owner       owner.Owner
	mutex       sync.Mutex
	diagnostics map[types.Resource][]types.Diagnostic
	listeners   map[int]func(resources []types.Resource)
	nextID      int
	// PullPanics makes DiagnosticsFor panic for the given resources, to
	// exercise the adapter's failure isolation.
	PullPanics map[types.Resource]bool
}

func NewFakeProducer(o owner.Owner) *FakeProducer {
	return &FakeProducer{
		owner:       o,
		diagnostics: make(map[types.Resource][]types.Diagnostic),
		listeners:   make(map[int]func(resources []types.Resource)),
		PullPanics:  make(map[types.Resource]bool),
	}
}

func (p *FakeProducer) Owner() owner.Owner {
	return p.owner
}

func (p *FakeProducer) OnDiagnosticsChanged(listener func(resources []types.Resource)) func() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = listener
	return func() {
		p.mutex.Lock()
		defer p.mutex.Unlock()
		delete(p.listeners, id)
	}
}

func (p *FakeProducer) DiagnosticsFor(resource types.Resource) []types.Diagnostic {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.PullPanics[resource] {
		panic("analysis engine failure")
	}
	return p.diagnostics[resource]
}

// SetDiagnostics stores the producer's current list for a resource without
// emitting the change event.
func (p *FakeProducer) SetDiagnostics(resource types.Resource, diagnostics []types.Diagnostic) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.diagnostics[resource] = diagnostics
}

// EmitChanged fires the native change event for the given resources.
func (p *FakeProducer) EmitChanged(resources ...types.Resource) {
	p.mutex.Lock()
	listeners := make([]func(resources []types.Resource), 0, len(p.listeners))
	for _, listener := range p.listeners {
		listeners = append(listeners, listener)
	}
	p.mutex.Unlock()
	for _, listener := range listeners {
		listener(resources)
	}
}

func (p *FakeProducer) ListenerCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.listeners)
}

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

package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid-fire trigger calls into a single callback run
// after a quiet period.
type Debouncer struct {
	mutex    sync.Mutex
	timeout  time.Duration
	timer    *time.Timer
	callback func()
	stopped  bool
}

func NewDebouncer(timeout time.Duration, callback func()) *Debouncer {
	return &Debouncer{
		timeout:  timeout,
		callback: callback,
	}
}

// Debounce schedules the callback, cancelling any run still pending.
func (m *Debouncer) Debounce() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.stopped {
		return
	}
	if m.timer == nil {
		m.timer = time.AfterFunc(m.timeout, m.callback)
		return
	}
	m.timer.Stop()
	m.timer.Reset(m.timeout)
}

// Stop cancels any pending run and rejects further Debounce calls. A stale
// callback must never fire after the owning component is disposed.
func (m *Debouncer) Stop() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.stopped = true
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

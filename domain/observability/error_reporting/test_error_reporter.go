package error_reporting

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// TestErrorReporter records captured errors so tests can assert on them.
type TestErrorReporter struct {
	mutex    sync.Mutex
	captured []error
}

func NewTestErrorReporter() *TestErrorReporter {
	return &TestErrorReporter{}
}

func (s *TestErrorReporter) FlushErrorReporting() {
}

func (s *TestErrorReporter) CaptureError(err error) bool {
	log.Log().Err(err).Msg("An error has been captured by the testing error reporter")
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.captured = append(s.captured, err)
	return true
}

func (s *TestErrorReporter) CapturedErrors() []error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	captured := make([]error, len(s.captured))
	copy(captured, s.captured)
	return captured
}

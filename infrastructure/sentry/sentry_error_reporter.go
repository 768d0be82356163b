package sentry

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"

	"github.com/halcyon-ide/marker-service/application/config"
	"github.com/halcyon-ide/marker-service/domain/observability/error_reporting"
)

// A Sentry implementation of our error reporter that respects user
// preferences regarding tracking
type sentryErrorReporter struct{}

func NewSentryErrorReporter() error_reporting.ErrorReporter {
	initializeSentry()
	return &sentryErrorReporter{}
}

func (s *sentryErrorReporter) FlushErrorReporting() {
	// Set the timeout to the maximum duration the program can afford to wait
	defer sentry.Flush(2 * time.Second)
}

func (s *sentryErrorReporter) CaptureError(err error) bool {
	if config.CurrentConfig().IsErrorReportingEnabled() {
		eventId := sentry.CaptureException(err)
		log.Info().Err(err).Str("method", "CaptureError").Msgf("Sent error to Sentry (ID: %v)", eventId)
		return true
	}
	log.Debug().Err(err).Str("method", "CaptureError").Msg("Error reporting disabled, not sending")
	return false
}

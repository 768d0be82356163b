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

package sentry

import (
	"os"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"

	"github.com/halcyon-ide/marker-service/application/config"
)

const sentryDsnEnvVar = "HALCYON_SENTRY_DSN"

var initOnce sync.Once

func initializeSentry() {
	initOnce.Do(func() {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              os.Getenv(sentryDsnEnvVar),
			Environment:      sentryEnvironment(),
			Release:          config.Version,
			BeforeSend:       beforeSend,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Error().Str("method", "initializeSentry").Msg(err.Error())
		} else {
			log.Info().Msg("Error reporting initialized")
		}
	})
}

func beforeSend(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if config.CurrentConfig().IsErrorReportingEnabled() {
		return event
	}
	return nil
}

func sentryEnvironment() string {
	if config.IsDevelopment() {
		return "development"
	}
	return "production"
}

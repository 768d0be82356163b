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

package config

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/subosito/gotenv"
)

// ProblemsSortOrder selects how the problems panel orders its list. The sort
// happens client-side; the marker store itself never sorts.
type ProblemsSortOrder string

const (
	SortBySeverity ProblemsSortOrder = "severity"
	SortByPosition ProblemsSortOrder = "position"
	SortByFileName ProblemsSortOrder = "filename"
)

const (
	logLevelEnvVar               = "HALCYON_LOG_LEVEL"
	logToFileEnvVar              = "HALCYON_LOG_TO_FILE"
	logPathEnvVar                = "HALCYON_LOG_PATH"
	showProblemInStatusBarEnvVar = "HALCYON_SHOW_PROBLEM_IN_STATUS_BAR"
	problemsSortOrderEnvVar      = "HALCYON_PROBLEMS_SORT_ORDER"
	errorReportingEnvVar         = "HALCYON_ERROR_REPORTING"
	developmentEnvVar            = "HALCYON_DEV"
)

// Version is set via ldflags at release build time.
var Version = "dev"

func IsDevelopment() bool {
	return Version == "dev" || os.Getenv(developmentEnvVar) == "true"
}

var (
	mutex         sync.Mutex
	currentConfig *Config
)

// CurrentConfig returns the process-wide configuration, creating it lazily on
// first access.
func CurrentConfig() *Config {
	mutex.Lock()
	defer mutex.Unlock()
	if currentConfig == nil {
		currentConfig = New()
	}
	return currentConfig
}

func SetCurrentConfig(config *Config) {
	mutex.Lock()
	defer mutex.Unlock()
	currentConfig = config
}

type Config struct {
	m                      sync.RWMutex
	logger                 *zerolog.Logger
	logLevel               zerolog.Level
	logPath                string
	logFile                *os.File
	showProblemInStatusBar bool
	problemsSortOrder      ProblemsSortOrder
	errorReportingEnabled  bool
	configLoaded           bool
}

func New() *Config {
	c := &Config{}
	c.logLevel = zerolog.InfoLevel
	c.problemsSortOrder = SortBySeverity
	c.clientSettingsFromEnv()
	c.configureLogging()
	return c
}

func consoleWriter() io.Writer {
	return zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
		w.NoColor = true
		w.PartsOrder = []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			"method",
			zerolog.MessageFieldName,
		}
	})
}

// configureLogging rebuilds the logger. When a log path is set the log file
// receives every event in addition to the console; a path that cannot be
// opened degrades to console-only logging. Callers racing with readers hold
// c.m.
func (c *Config) configureLogging() {
	if c.logFile != nil {
		_ = c.logFile.Close()
		c.logFile = nil
	}

	writers := []io.Writer{consoleWriter()}
	if c.logPath != "" {
		err := os.MkdirAll(filepath.Dir(c.logPath), 0o755)
		if err == nil {
			c.logFile, err = os.OpenFile(c.logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
		}
		if err != nil {
			_, _ = os.Stderr.WriteString("couldn't open logfile " + c.logPath + "\n")
		} else {
			writers = append(writers, c.logFile)
		}
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Str("method", "").Logger().Level(c.logLevel)
	c.logger = &logger
}

func (c *Config) Logger() *zerolog.Logger {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.logger
}

// clientSettingsFromEnv loads overrides from the environment, including any
// .env file next to the working directory.
func (c *Config) clientSettingsFromEnv() {
	if !c.configLoaded {
		_ = gotenv.Load()
		c.configLoaded = true
	}
	if level, err := zerolog.ParseLevel(os.Getenv(logLevelEnvVar)); err == nil && os.Getenv(logLevelEnvVar) != "" {
		c.logLevel = level
	}
	if os.Getenv(logToFileEnvVar) == "true" {
		c.logPath = os.Getenv(logPathEnvVar)
		if c.logPath == "" {
			c.logPath = filepath.Join(xdg.StateHome, "halcyon", "marker-service.log")
		}
	}
	if os.Getenv(showProblemInStatusBarEnvVar) == "true" {
		c.showProblemInStatusBar = true
	}
	if os.Getenv(errorReportingEnvVar) == "true" {
		c.errorReportingEnabled = true
	}
	switch ProblemsSortOrder(os.Getenv(problemsSortOrderEnvVar)) {
	case SortBySeverity:
		c.problemsSortOrder = SortBySeverity
	case SortByPosition:
		c.problemsSortOrder = SortByPosition
	case SortByFileName:
		c.problemsSortOrder = SortByFileName
	}
}

// IsShowProblemInStatusBarEnabled gates the cursor-diagnostic resolver. When
// disabled the resolver performs no subscriptions and resolves nothing.
func (c *Config) IsShowProblemInStatusBarEnabled() bool {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.showProblemInStatusBar
}

func (c *Config) SetShowProblemInStatusBar(enabled bool) {
	c.m.Lock()
	defer c.m.Unlock()
	c.showProblemInStatusBar = enabled
}

func (c *Config) ProblemsSortOrder() ProblemsSortOrder {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.problemsSortOrder
}

func (c *Config) SetProblemsSortOrder(order ProblemsSortOrder) {
	c.m.Lock()
	defer c.m.Unlock()
	c.problemsSortOrder = order
}

func (c *Config) IsErrorReportingEnabled() bool {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.errorReportingEnabled
}

func (c *Config) SetErrorReportingEnabled(enabled bool) {
	c.m.Lock()
	defer c.m.Unlock()
	c.errorReportingEnabled = enabled
}

func (c *Config) LogPath() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.logPath
}

// SetLogPath switches file logging to the given path, or disables it when
// empty.
func (c *Config) SetLogPath(path string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.logPath = path
	c.configureLogging()
}

func (c *Config) SetLogLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		c.Logger().Warn().Str("method", "SetLogLevel").Msgf("can't parse log level %s, ignoring", level)
		return
	}
	c.m.Lock()
	defer c.m.Unlock()
	c.logLevel = parsed
	logger := c.logger.Level(parsed)
	c.logger = &logger
}

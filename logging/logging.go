/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package logging

import (
	"io"
	stdlog "log"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Log source tags used in structured logger contexts.
const (
	SourceApp        = "app"
	SourceWeb        = "web"
	SourceWebRequest = "web_request"
	SourceDB         = "db"
	SourceAnalytics  = "analytics"
)

const levelEnvVar = "HEALTHLENS_LOG_LEVEL"

var (
	initOnce   sync.Once
	baseLogger *log.Logger
	output     = &switchWriter{w: os.Stdout}
)

// switchWriter lets SetOutput redirect loggers that were derived before
// the switch.
type switchWriter struct {
	mu sync.RWMutex
	w  io.Writer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.w.Write(p)
}

// SetOutput redirects all log output, including loggers created earlier.
func SetOutput(w io.Writer) {
	output.mu.Lock()
	defer output.mu.Unlock()

	output.w = w
}

// Init configures the base logger and stdlib log output. The level comes
// from HEALTHLENS_LOG_LEVEL and defaults to debug.
func Init() {
	initOnce.Do(func() {
		level := log.DebugLevel
		if raw := os.Getenv(levelEnvVar); raw != "" {
			if parsed, err := log.ParseLevel(raw); err == nil {
				level = parsed
			}
		}

		baseLogger = log.NewWithOptions(output, log.Options{
			TimeFunction:    log.NowUTC,
			TimeFormat:      time.RFC3339Nano,
			Level:           level,
			ReportTimestamp: true,
			Formatter:       log.LogfmtFormatter,
		})

		stdLogger := baseLogger.With("source", SourceApp).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})

		stdlog.SetFlags(0)
		stdlog.SetOutput(stdLogger.Writer())
	})
}

// Logger returns a logfmt logger tagged with the provided source.
func Logger(source string) *log.Logger {
	Init()
	return baseLogger.With("source", source)
}

// StdLogger returns a stdlib logger that writes logfmt output with a source.
func StdLogger(source string) *stdlog.Logger {
	Init()
	return baseLogger.With("source", source).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})
}

// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLoggerInitializers(t *testing.T) {
	t.Parallel()

	Init()
	if l := Logger(SourceApp); l == nil {
		t.Fatal("Logger returned nil")
	}
	if l := Logger(SourceAnalytics); l == nil {
		t.Fatal("Logger returned nil for analytics source")
	}
	if l := StdLogger(SourceWeb); l == nil {
		t.Fatal("StdLogger returned nil")
	}
}

func TestSetOutputRedirectsExistingLoggers(t *testing.T) {
	l := Logger(SourceDB)

	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	l.Info("redirected", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "source=db") || !strings.Contains(out, "key=value") {
		t.Fatalf("expected logfmt output with source, got %q", out)
	}
}

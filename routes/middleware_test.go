// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flamego/flamego"
)

func TestNoStoreHeadersAppliesToPost(t *testing.T) {
	t.Parallel()

	f := flamego.New()
	f.Use(NoStoreHeaders())
	f.Post("/report", func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/report", nil)
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	if got := rec.Header().Get("Cache-Control"); got != "no-store, max-age=0" {
		t.Fatalf("expected no-store cache control, got %q", got)
	}

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff, got %q", got)
	}
}

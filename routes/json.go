/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"net/http"

	"github.com/flamego/flamego"

	"github.com/humaidq/healthlens/logging"
)

var logger = logging.Logger(logging.SourceWeb)

// addCORSHeaders allows browser clients on any origin to call the API.
func addCORSHeaders(c flamego.Context) {
	c.ResponseWriter().Header().Set("Access-Control-Allow-Origin", "*")
	c.ResponseWriter().Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.ResponseWriter().Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
}

// handlePreflight answers OPTIONS requests. It reports whether the request
// was handled.
func handlePreflight(c flamego.Context) bool {
	if c.Request().Method != http.MethodOptions {
		return false
	}

	c.ResponseWriter().WriteHeader(http.StatusNoContent)

	return true
}

func writeJSON(c flamego.Context, status int, payload any) {
	c.ResponseWriter().Header().Set("Content-Type", "application/json")
	c.ResponseWriter().WriteHeader(status)

	if err := json.NewEncoder(c.ResponseWriter()).Encode(payload); err != nil {
		logger.Error("Error encoding JSON response", "error", err)
	}
}

func writeJSONError(c flamego.Context, status int, err error) {
	writeJSON(c, status, map[string]string{"error": err.Error()})
}

// NotFound responds with a JSON 404.
func NotFound(c flamego.Context) {
	addCORSHeaders(c)
	writeJSONError(c, http.StatusNotFound, errNotFound)
}

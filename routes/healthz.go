/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/flamego/flamego"
)

const healthzTimeout = 2 * time.Second

// Healthz reports liveness. When ping is set the database must answer too.
func Healthz(ping func(ctx context.Context) error) flamego.Handler {
	return func(c flamego.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), healthzTimeout)
			defer cancel()

			if err := ping(ctx); err != nil {
				logger.Warn("Health check failed", "error", err)
				writeJSON(c, http.StatusServiceUnavailable, map[string]string{
					"status": "unavailable",
					"error":  errDatabaseUnavailable.Error(),
				})

				return
			}
		}

		writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
	}
}

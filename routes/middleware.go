/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "github.com/flamego/flamego"

// NoStoreHeaders keeps health reports out of shared caches and search
// indexes. It applies to every method since reports are also returned
// from POST.
func NoStoreHeaders() flamego.Handler {
	return func(c flamego.Context) {
		header := c.ResponseWriter().Header()
		header.Set("X-Robots-Tag", "noindex, nofollow, noarchive, nosnippet")
		header.Set("X-Content-Type-Options", "nosniff")
		header.Set("Cache-Control", "no-store, max-age=0")
		header.Set("Pragma", "no-cache")

		c.Next()
	}
}

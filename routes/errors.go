/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errMalformedRequest    = errors.New("malformed request body")
	errInternal            = errors.New("failed to generate health analytics")
	errTooManyRequests     = errors.New("too many requests")
	errDatabaseUnavailable = errors.New("database unavailable")
	errNotFound            = errors.New("not found")
	errInvalidDateOfBirth  = errors.New("invalid dateOfBirth, expected YYYY-MM-DD")
)

/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "errors"

var (
	// ErrDatabaseURLEnvVarNotSet is returned when DATABASE_URL is empty.
	ErrDatabaseURLEnvVarNotSet = errors.New("DATABASE_URL environment variable is not set")
	// ErrDatabaseNameNotSpecified is returned when the connection string has no database name.
	ErrDatabaseNameNotSpecified = errors.New("database name not specified in connection string")
	// ErrDatabaseConnectionNotInitialized is returned when the pool has not been created.
	ErrDatabaseConnectionNotInitialized = errors.New("database connection not initialized")
	// ErrInvalidUserID is returned for user ids that are not UUIDs.
	ErrInvalidUserID = errors.New("invalid user id")
	// ErrProfileNotFound is returned when a profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInvalidGender is returned when a gender is neither male nor female.
	ErrInvalidGender = errors.New("invalid gender")
)

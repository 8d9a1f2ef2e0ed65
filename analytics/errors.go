/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analytics

import "errors"

var (
	// ErrEmptyKeywordTable is returned when a keyword table defines no categories.
	ErrEmptyKeywordTable = errors.New("keyword table defines no categories")
	// ErrUnnamedCategory is returned when a keyword table category has no name.
	ErrUnnamedCategory = errors.New("keyword table category without name")
)

/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/humaidq/healthlens/analytics"
)

// parseUserID validates a user id as a UUID.
func parseUserID(userID string) (uuid.UUID, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidUserID, userID)
	}

	return id, nil
}

// normalizeGender stores genders in their canonical form.
func normalizeGender(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}

	g, ok := analytics.ParseGender(*raw)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGender, *raw)
	}

	s := string(g)

	return &s, nil
}

// CreateProfile inserts a profile and returns its id.
func CreateProfile(ctx context.Context, input CreateProfileInput) (string, error) {
	if pool == nil {
		return "", ErrDatabaseConnectionNotInitialized
	}

	gender, err := normalizeGender(input.Gender)
	if err != nil {
		return "", err
	}

	id := uuid.New()

	_, err = pool.Exec(ctx, `
		INSERT INTO profiles (id, full_name, date_of_birth, gender)
		VALUES ($1, $2, $3, $4)
	`, id, input.FullName, input.DateOfBirth, gender)
	if err != nil {
		return "", fmt.Errorf("failed to create profile: %w", err)
	}

	return id.String(), nil
}

// GetProfile returns a profile row by id.
func GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	var p Profile

	err = pool.QueryRow(ctx, `
		SELECT id, full_name, date_of_birth, gender, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`, id).Scan(&p.ID, &p.FullName, &p.DateOfBirth, &p.Gender, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}

		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

// UpdateProfileDemographics sets the fields the rule engine reads.
func UpdateProfileDemographics(ctx context.Context, userID string, input CreateProfileInput) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	id, err := parseUserID(userID)
	if err != nil {
		return err
	}

	gender, err := normalizeGender(input.Gender)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, `
		UPDATE profiles
		SET full_name = $2, date_of_birth = $3, gender = $4
		WHERE id = $1
	`, id, input.FullName, input.DateOfBirth, gender)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	// The trigger bumps updated_at, which already changes the source
	// version. Dropping the snapshot also frees the row.
	return DeleteReportSnapshot(ctx, userID)
}

// profileUpdatedAt returns when the profile last changed, or the zero time
// when it does not exist.
func profileUpdatedAt(ctx context.Context, id uuid.UUID) (time.Time, error) {
	var updatedAt time.Time

	err := pool.QueryRow(ctx, `SELECT updated_at FROM profiles WHERE id = $1`, id).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, nil
		}

		return time.Time{}, fmt.Errorf("failed to get profile version: %w", err)
	}

	return updatedAt, nil
}

// DeleteProfile removes a profile together with its analyses and snapshot.
func DeleteProfile(ctx context.Context, userID string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	id, err := parseUserID(userID)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// ProfileStore serves profiles to the analytics aggregator.
type ProfileStore struct{}

// GetProfile implements analytics.ProfileStore. A missing profile or a
// malformed id is reported as no profile.
func (ProfileStore) GetProfile(ctx context.Context, userID string) (*analytics.Profile, error) {
	p, err := GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) || errors.Is(err, ErrInvalidUserID) {
			return nil, nil
		}

		return nil, err
	}

	return p.Analytics(), nil
}

var _ analytics.ProfileStore = ProfileStore{}

// Package services – VerificationService
//
// This file implements the VerificationService, which governs the age
// verification flow: validating a submitted birthdate, applying the exact
// calendar-anniversary age check, and persisting at most one verification
// record per user. Service-level errors (ErrInvalidBirthdate, ErrUnderage,
// ErrDuplicateRecord) are returned for predictable cases so handlers can map
// them to user-facing responses consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ravlin/guildwarden/internal/domain"
	"github.com/ravlin/guildwarden/internal/policy"
	"github.com/ravlin/guildwarden/internal/repo"
)

// VerificationService implements the use-cases around age verification.
// Records are keyed by user snowflake and are global across guilds: age is a
// property of the person, not of any one community.
type VerificationService struct {
	// DB is the database handle used for all verification operations.
	DB *gorm.DB

	// Now supplies the current time for age calculations. When nil,
	// time.Now (UTC) is used; tests inject a fixed clock here.
	Now func() time.Time
}

// Verify validates the submitted birthdate components, applies the age
// check, and persists a verification record for userID.
//
// Semantics and validation:
//   - day/month/year must form a real calendar date; impossible dates such
//     as 30 February yield ErrInvalidBirthdate.
//   - The exact calendar-anniversary age must be at least policy.MinimumAge;
//     otherwise ErrUnderage is returned and no record is created. The
//     rejected birthdate is carried back alongside the error so the caller
//     can log the attempt.
//   - At most one record may exist per user; a duplicate attempt yields
//     ErrDuplicateRecord. The store never silently overwrites.
//
// Errors:
//   - Returns the service-level sentinel errors above for the validation
//     cases, and the underlying DB error for unexpected failures.
func (s *VerificationService) Verify(ctx context.Context, userID, username string, day, month, year int) (*domain.VerificationRecord, error) {
	birthdate, ok := makeDate(day, month, year)
	if !ok {
		return nil, ErrInvalidBirthdate
	}
	if !policy.IsOfAge(birthdate, s.now()) {
		return nil, ErrUnderage
	}

	rec, err := repo.CreateVerification(ctx, s.DB, userID, username, &birthdate)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
			return nil, ErrDuplicateRecord
		}
		return nil, err
	}
	return rec, nil
}

// Status returns the user's verification record, or repo.ErrNotFound when the
// user has never verified. An absent record is a valid state, not a failure.
func (s *VerificationService) Status(ctx context.Context, userID string) (*domain.VerificationRecord, error) {
	return repo.GetVerification(ctx, s.DB, userID)
}

// Clear deletes the user's verification record and reports whether one
// existed. Clearing an already-absent record is an idempotent no-op.
func (s *VerificationService) Clear(ctx context.Context, userID string) (bool, error) {
	return repo.DeleteVerification(ctx, s.DB, userID)
}

// AgeOf computes the calendar-anniversary age of a birthdate at the service
// clock's "today". Exposed for log annotations on rejected attempts.
func (s *VerificationService) AgeOf(birthdate time.Time) int {
	return policy.Age(birthdate, s.now())
}

// Birthdate validates raw day/month/year components into a date. It is used
// by the modal handler before calling Verify so the two never disagree.
func Birthdate(day, month, year int) (time.Time, error) {
	d, ok := makeDate(day, month, year)
	if !ok {
		return time.Time{}, ErrInvalidBirthdate
	}
	return d, nil
}

func (s *VerificationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// makeDate builds a UTC date from components and rejects values that
// time.Date would silently normalize (e.g. 30 February becoming 2 March).
func makeDate(day, month, year int) (time.Time, bool) {
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

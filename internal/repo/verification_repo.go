// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// VerificationRecord model.
//
// Error semantics:
//   - A duplicate insert (same user_id) relies on the database unique
//     constraint and is returned as a raw DB error. The service layer
//     translates that into a domain error (services.ErrDuplicateRecord);
//     the repository never silently overwrites.
//   - Lookups for missing users return ErrNotFound.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ravlin/guildwarden/internal/domain"
)

// GetVerification fetches a user's verification record by user snowflake.
// It returns ErrNotFound if the user has never verified.
func GetVerification(ctx context.Context, db *gorm.DB, userID string) (*domain.VerificationRecord, error) {
	var rec domain.VerificationRecord
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateVerification inserts a verification record for userID. The user_id
// column carries a unique index, so a second insert for the same user fails
// with a duplicate-key error rather than overwriting the first record.
//
// On success, it returns the persisted record with Verified set.
func CreateVerification(ctx context.Context, db *gorm.DB, userID, username string, birthdate *time.Time) (*domain.VerificationRecord, error) {
	rec := &domain.VerificationRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		Verified:  true,
		Birthdate: birthdate,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteVerification removes a user's verification record. It reports whether
// a record existed: deleting an absent record is an idempotent no-op, not an
// error. DB failures are returned as-is.
func DeleteVerification(ctx context.Context, db *gorm.DB, userID string) (bool, error) {
	res := db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.VerificationRecord{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

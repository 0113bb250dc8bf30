// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Warning
// model (the warning ledger) and for ModerationConfig.
//
// The ledger is append-only per (guild, user): inserts allocate a fresh
// globally unique id from the database, so concurrent adds can never
// race-overwrite each other. Deletions are always guild-scoped; the
// unscoped-delete path of earlier revisions is intentionally gone.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ravlin/guildwarden/internal/domain"
)

// GetModerationConfig fetches the moderation configuration for a guild,
// or ErrNotFound if the guild has never been configured.
func GetModerationConfig(ctx context.Context, db *gorm.DB, guildID int64) (*domain.ModerationConfig, error) {
	var c domain.ModerationConfig
	if err := db.WithContext(ctx).Where("guild_id = ?", guildID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertModerationLogChannel creates or updates the moderation log channel
// for a guild. The read-modify-write runs in a transaction so concurrent
// writes for the same guild serialize (last writer wins).
func UpsertModerationLogChannel(ctx context.Context, db *gorm.DB, guildID int64, logChannelID *int64) (*domain.ModerationConfig, error) {
	out := &domain.ModerationConfig{
		GuildID:      guildID,
		LogChannelID: logChannelID,
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.ModerationConfig
		err := tx.Where("guild_id = ?", guildID).First(&existing).Error
		switch {
		case err == nil:
			out.CreatedAt = existing.CreatedAt
			out.UpdatedAt = time.Now().UTC()
			return tx.Save(out).Error
		case err == gorm.ErrRecordNotFound:
			out.CreatedAt = time.Now().UTC()
			out.UpdatedAt = out.CreatedAt
			return tx.Create(out).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateWarning appends a warning to the ledger and returns the persisted row
// with its database-allocated id. Reason validation belongs to the service
// layer; the repository stores what it is given.
func CreateWarning(ctx context.Context, db *gorm.DB, guildID, userID, moderatorID int64, reason string) (*domain.Warning, error) {
	w := &domain.Warning{
		GuildID:     guildID,
		UserID:      userID,
		ModeratorID: moderatorID,
		Reason:      reason,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// ListWarnings returns all warnings for a member in a guild, newest first.
// Ties on the creation timestamp are broken by id, so the ordering is
// deterministic and matches insertion order among same-instant writes.
// It returns an empty slice when the member has no warnings.
func ListWarnings(ctx context.Context, db *gorm.DB, guildID, userID int64) ([]domain.Warning, error) {
	var out []domain.Warning
	err := db.WithContext(ctx).
		Where("guild_id = ? AND user_id = ?", guildID, userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// CountWarnings returns the number of warnings on record for a member.
func CountWarnings(ctx context.Context, db *gorm.DB, guildID, userID int64) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Warning{}).
		Where("guild_id = ? AND user_id = ?", guildID, userID).
		Count(&total).Error
	return total, err
}

// GetWarning fetches a single warning by its global id, or ErrNotFound.
func GetWarning(ctx context.Context, db *gorm.DB, id int64) (*domain.Warning, error) {
	var w domain.Warning
	if err := db.WithContext(ctx).Where("id = ?", id).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// DeleteWarning removes a warning by id, but only if it belongs to guildID.
// It reports whether a row was deleted; a missing or foreign-guild id is an
// idempotent false, not an error.
func DeleteWarning(ctx context.Context, db *gorm.DB, guildID, id int64) (bool, error) {
	res := db.WithContext(ctx).
		Where("id = ? AND guild_id = ?", id, guildID).
		Delete(&domain.Warning{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ClearWarnings removes every warning for a member in a guild and returns
// how many rows were deleted (0 when the ledger was already empty).
func ClearWarnings(ctx context.Context, db *gorm.DB, guildID, userID int64) (int64, error) {
	res := db.WithContext(ctx).
		Where("guild_id = ? AND user_id = ?", guildID, userID).
		Delete(&domain.Warning{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the GuildConfig
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a config is not found, GetGuildConfig returns gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated. Callers treat these as persistence
//     failures, never as "absent".
//
// Functions:
//
//   - GetGuildConfig(ctx, db, guildID) -> *domain.GuildConfig, error
//     Point lookup by guild snowflake, no side effects.
//
//   - UpsertGuildConfig(ctx, db, guildID, verificationChannelID, logChannelID, verifiedRoleID)
//     -> *domain.GuildConfig, error
//     Full-replace upsert: all three settings are overwritten, including with
//     nils. The read-modify-write runs in a transaction so concurrent upserts
//     for the same guild serialize (last writer wins).
//
// Usage:
//
//	cfg, err := repo.GetGuildConfig(ctx, db, guildID)
//	if errors.Is(err, repo.ErrNotFound) {
//	    // guild not configured yet
//	} else if err != nil {
//	    // persistence failure
//	}
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ravlin/guildwarden/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// GetGuildConfig fetches the verification configuration for a guild.
// If the guild has never been configured, it returns ErrNotFound.
func GetGuildConfig(ctx context.Context, db *gorm.DB, guildID int64) (*domain.GuildConfig, error) {
	var c domain.GuildConfig
	if err := db.WithContext(ctx).Where("guild_id = ?", guildID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertGuildConfig creates or fully replaces the verification configuration
// for a guild. Every settable field is overwritten, nil included; this is a
// replace, not a patch. The returned value reflects the persisted row.
func UpsertGuildConfig(ctx context.Context, db *gorm.DB, guildID int64, verificationChannelID, logChannelID, verifiedRoleID *int64) (*domain.GuildConfig, error) {
	out := &domain.GuildConfig{
		GuildID:               guildID,
		VerificationChannelID: verificationChannelID,
		LogChannelID:          logChannelID,
		VerifiedRoleID:        verifiedRoleID,
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.GuildConfig
		err := tx.Where("guild_id = ?", guildID).First(&existing).Error
		switch {
		case err == nil:
			out.CreatedAt = existing.CreatedAt
			out.UpdatedAt = time.Now().UTC()
			// Save writes zero/nil fields too, giving full-replace semantics.
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

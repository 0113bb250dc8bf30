// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// SelfRoleConfig model (named, multi-message self-role configurations).
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ravlin/guildwarden/internal/domain"
)

// GetSelfRoleConfig fetches the self-role configuration identified by
// (guildID, messageName), or ErrNotFound if no such configuration exists.
func GetSelfRoleConfig(ctx context.Context, db *gorm.DB, guildID int64, messageName string) (*domain.SelfRoleConfig, error) {
	var c domain.SelfRoleConfig
	err := db.WithContext(ctx).
		Where("guild_id = ? AND message_name = ?", guildID, messageName).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertSelfRoleConfig creates or replaces the configuration for
// (guildID, messageName). All presentation fields are overwritten. The
// read-modify-write runs in a transaction so concurrent upserts for the same
// message serialize (last writer wins).
func UpsertSelfRoleConfig(ctx context.Context, db *gorm.DB, guildID int64, messageName string, roleLabels map[string]string, buttonStyle, embedTitle, embedDescription string) (*domain.SelfRoleConfig, error) {
	out := &domain.SelfRoleConfig{
		GuildID:          guildID,
		MessageName:      messageName,
		RoleLabels:       roleLabels,
		ButtonStyle:      buttonStyle,
		EmbedTitle:       embedTitle,
		EmbedDescription: embedDescription,
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.SelfRoleConfig
		err := tx.Where("guild_id = ? AND message_name = ?", guildID, messageName).First(&existing).Error
		switch {
		case err == nil:
			out.ID = existing.ID
			out.CreatedAt = existing.CreatedAt
			out.UpdatedAt = time.Now().UTC()
			return tx.Save(out).Error
		case err == gorm.ErrRecordNotFound:
			out.ID = uuid.NewString()
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

// ListSelfRoleConfigs returns every self-role configuration for a guild,
// ordered by message name for stable rendering.
func ListSelfRoleConfigs(ctx context.Context, db *gorm.DB, guildID int64) ([]domain.SelfRoleConfig, error) {
	var out []domain.SelfRoleConfig
	err := db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Order("message_name ASC").
		Find(&out).Error
	return out, err
}

// DeleteSelfRoleConfig removes the configuration for (guildID, messageName)
// and reports whether one existed. A missing configuration is an idempotent
// false, not an error.
func DeleteSelfRoleConfig(ctx context.Context, db *gorm.DB, guildID int64, messageName string) (bool, error) {
	res := db.WithContext(ctx).
		Where("guild_id = ? AND message_name = ?", guildID, messageName).
		Delete(&domain.SelfRoleConfig{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

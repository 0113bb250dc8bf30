// Package services – SettingsService
//
// This file implements the SettingsService, a thin wrapper over the guild
// verification configuration store. Writes are full replacements: /set_channels
// always supplies all three settings, and an omitted one really does mean
// "unset", so partial patching would be wrong here.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/ravlin/guildwarden/internal/domain"
	"github.com/ravlin/guildwarden/internal/repo"
)

// SettingsService manages the per-guild verification settings row.
type SettingsService struct {
	// DB is the database handle used for all settings operations.
	DB *gorm.DB
}

// Get returns the guild's verification configuration, or repo.ErrNotFound
// when the guild has never been configured. Absence is a valid state.
func (s *SettingsService) Get(ctx context.Context, guildID int64) (*domain.GuildConfig, error) {
	return repo.GetGuildConfig(ctx, s.DB, guildID)
}

// Set creates or fully replaces the guild's verification configuration.
// Calling Set twice with identical arguments leaves the stored row unchanged.
func (s *SettingsService) Set(ctx context.Context, guildID int64, verificationChannelID, logChannelID, verifiedRoleID *int64) (*domain.GuildConfig, error) {
	return repo.UpsertGuildConfig(ctx, s.DB, guildID, verificationChannelID, logChannelID, verifiedRoleID)
}

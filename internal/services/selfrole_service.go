// Package services – SelfRoleService
//
// This file implements the SelfRoleService, which manages named self-role
// configurations and the toggle decision applied when a member clicks a role
// button. Validation (non-empty name, at least one role/label pair, known
// button style) lives here; the store beneath accepts whatever it is given.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/ravlin/guildwarden/internal/domain"
	"github.com/ravlin/guildwarden/internal/policy"
	"github.com/ravlin/guildwarden/internal/repo"
)

// Default embed copy applied when a configuration omits it.
const (
	DefaultSelfRoleTitle       = "Self-Assignable Roles"
	DefaultSelfRoleDescription = "Click the buttons below to assign or remove roles."
	DefaultButtonStyle         = "primary"
)

// validButtonStyles is the set of accepted presentation styles, matching the
// four Discord button styles.
var validButtonStyles = map[string]bool{
	"primary":   true,
	"secondary": true,
	"success":   true,
	"danger":    true,
}

// SelfRoleService implements the use-cases around self-assignable roles.
type SelfRoleService struct {
	// DB is the database handle used for all self-role operations.
	DB *gorm.DB
}

// Define creates or replaces the named self-role configuration for a guild.
//
// Semantics and validation:
//   - messageName must be non-empty; otherwise ErrEmptyMessageName.
//   - roleLabels must contain at least one entry; otherwise ErrNoRoles.
//     Empty maps are rejected here rather than persisted.
//   - buttonStyle must be one of primary, secondary, success, danger; the
//     empty string selects the default. Anything else yields
//     ErrInvalidButtonStyle.
//   - Empty embed title/description fall back to the package defaults.
func (s *SelfRoleService) Define(ctx context.Context, guildID int64, messageName string, roleLabels map[string]string, buttonStyle, embedTitle, embedDescription string) (*domain.SelfRoleConfig, error) {
	if messageName == "" {
		return nil, ErrEmptyMessageName
	}
	if len(roleLabels) == 0 {
		return nil, ErrNoRoles
	}
	if buttonStyle == "" {
		buttonStyle = DefaultButtonStyle
	}
	if !validButtonStyles[buttonStyle] {
		return nil, ErrInvalidButtonStyle
	}
	if embedTitle == "" {
		embedTitle = DefaultSelfRoleTitle
	}
	if embedDescription == "" {
		embedDescription = DefaultSelfRoleDescription
	}
	return repo.UpsertSelfRoleConfig(ctx, s.DB, guildID, messageName, roleLabels, buttonStyle, embedTitle, embedDescription)
}

// Get returns the named configuration, or repo.ErrNotFound.
func (s *SelfRoleService) Get(ctx context.Context, guildID int64, messageName string) (*domain.SelfRoleConfig, error) {
	return repo.GetSelfRoleConfig(ctx, s.DB, guildID, messageName)
}

// List returns every self-role configuration for the guild.
func (s *SelfRoleService) List(ctx context.Context, guildID int64) ([]domain.SelfRoleConfig, error) {
	return repo.ListSelfRoleConfigs(ctx, s.DB, guildID)
}

// Remove deletes the named configuration and reports whether it existed.
func (s *SelfRoleService) Remove(ctx context.Context, guildID int64, messageName string) (bool, error) {
	return repo.DeleteSelfRoleConfig(ctx, s.DB, guildID, messageName)
}

// Toggle decides whether a click grants or revokes roleID for a member,
// given the member's current role set. The caller must read the role set at
// click time; see policy.ToggleRole.
func (s *SelfRoleService) Toggle(currentRoles []string, roleID string) policy.ToggleOp {
	return policy.ToggleRole(currentRoles, roleID)
}

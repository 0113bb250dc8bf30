// Package services – ModerationService
//
// This file implements the ModerationService, which owns the warning ledger
// and the moderation configuration. It enforces reason validation, guild
// scoping on every removal path, and the auto-ban threshold semantics: the
// ban side effect fires exactly once, on the transition from below the
// threshold to at-or-above it, never again on later adds.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ravlin/guildwarden/internal/domain"
	"github.com/ravlin/guildwarden/internal/policy"
	"github.com/ravlin/guildwarden/internal/repo"
)

// ModerationService implements the use-cases around warnings and moderation
// configuration. All ledger mutations for a given (guild, user) run inside a
// transaction so counts and threshold decisions are derived from a consistent
// snapshot.
type ModerationService struct {
	// DB is the database handle used for all moderation operations.
	DB *gorm.DB
}

// HierarchySnapshot captures the identity and role-rank information for one
// moderation request, read from the platform at request time. The service
// consumes it as plain data; fetching it is the Discord layer's job.
type HierarchySnapshot struct {
	ActorID       int64
	TargetID      int64
	ActorTopRole  int
	TargetTopRole int
	BotTopRole    int
	ActorIsOwner  bool
}

// WarnResult describes the outcome of issuing a warning.
type WarnResult struct {
	// Warning is the persisted ledger entry with its allocated id.
	Warning *domain.Warning
	// Count is the member's warning count after this add.
	Count int64
	// AutoBan is true iff this add crossed the auto-ban threshold. It is
	// the caller's signal to execute the ban; it never fires for adds on an
	// already-eligible count.
	AutoBan bool
}

// RemovalResult describes the outcome of removing a single warning.
type RemovalResult struct {
	// Warning is the entry that was removed.
	Warning *domain.Warning
	// Count is the member's warning count after the removal.
	Count int64
	// AutoBanPrevented is true iff the count had reached the threshold
	// before the removal. Informational only; it reverses nothing.
	AutoBanPrevented bool
}

// ClearResult describes the outcome of a bulk clear.
type ClearResult struct {
	// Removed is how many warnings were deleted (0 when none existed).
	Removed int64
	// AutoBanPrevented is true iff the count had reached the threshold
	// before the clear.
	AutoBanPrevented bool
}

// Authorize applies the self-target and role-hierarchy checks for a
// moderation action. It returns nil when the action may proceed, or one of
// ErrSelfTarget, ErrBotOutranked, ErrPermissionDenied. The checks are ordered
// so that self-targeting is rejected before any rank is consulted.
func (s *ModerationService) Authorize(snap HierarchySnapshot) error {
	if snap.ActorID == snap.TargetID {
		return ErrSelfTarget
	}
	if !policy.BotCanModerate(snap.BotTopRole, snap.TargetTopRole) {
		return ErrBotOutranked
	}
	if !policy.CanModerate(snap.ActorTopRole, snap.TargetTopRole, snap.ActorIsOwner) {
		return ErrPermissionDenied
	}
	return nil
}

// SetLogChannel creates or updates the guild's moderation log channel.
func (s *ModerationService) SetLogChannel(ctx context.Context, guildID, channelID int64) (*domain.ModerationConfig, error) {
	return repo.UpsertModerationLogChannel(ctx, s.DB, guildID, &channelID)
}

// Config returns the guild's moderation configuration, or repo.ErrNotFound
// when the guild has never been configured.
func (s *ModerationService) Config(ctx context.Context, guildID int64) (*domain.ModerationConfig, error) {
	return repo.GetModerationConfig(ctx, s.DB, guildID)
}

// Warn appends a warning to the member's ledger and evaluates the auto-ban
// threshold against the resulting count.
//
// Semantics and validation:
//   - reason is trimmed and must be non-empty; otherwise ErrEmptyReason.
//   - The insert and both counts run in one transaction, so a concurrent add
//     can neither lose this warning nor observe a torn count.
//   - AutoBan is set only when the count crosses from below the threshold to
//     at-or-above it (see policy.CrossedAutoBanThreshold).
func (s *ModerationService) Warn(ctx context.Context, guildID, userID, moderatorID int64, reason string) (*WarnResult, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyReason
	}

	var out WarnResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		before, err := repo.CountWarnings(ctx, tx, guildID, userID)
		if err != nil {
			return err
		}
		w, err := repo.CreateWarning(ctx, tx, guildID, userID, moderatorID, reason)
		if err != nil {
			return err
		}
		out.Warning = w
		out.Count = before + 1
		out.AutoBan = policy.CrossedAutoBanThreshold(before, out.Count)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Warnings lists a member's warnings in the guild, newest first with id as
// the tiebreak. The result is small and fully materialized.
func (s *ModerationService) Warnings(ctx context.Context, guildID, userID int64) ([]domain.Warning, error) {
	return repo.ListWarnings(ctx, s.DB, guildID, userID)
}

// Warning fetches a warning by id, verifying it belongs to guildID. It
// returns ErrWarningNotFound for a missing id and ErrForeignWarning for an
// id issued in a different guild, so callers never act on foreign entries.
func (s *ModerationService) Warning(ctx context.Context, guildID, id int64) (*domain.Warning, error) {
	w, err := repo.GetWarning(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrWarningNotFound
		}
		return nil, err
	}
	if w.GuildID != guildID {
		return nil, ErrForeignWarning
	}
	return w, nil
}

// RemoveWarning deletes a single warning by id, scoped to guildID. When
// targetUserID is non-nil the warning must additionally belong to that
// member (the /remove_warning form); a mismatch yields ErrWarningUserMismatch
// and deletes nothing.
//
// The ownership check and the delete run in one transaction, so the entry
// examined is the entry removed.
func (s *ModerationService) RemoveWarning(ctx context.Context, guildID, id int64, targetUserID *int64) (*RemovalResult, error) {
	var out RemovalResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := repo.GetWarning(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrWarningNotFound
			}
			return err
		}
		if w.GuildID != guildID {
			return ErrForeignWarning
		}
		if targetUserID != nil && w.UserID != *targetUserID {
			return ErrWarningUserMismatch
		}

		before, err := repo.CountWarnings(ctx, tx, guildID, w.UserID)
		if err != nil {
			return err
		}
		deleted, err := repo.DeleteWarning(ctx, tx, guildID, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrWarningNotFound
		}
		out.Warning = w
		out.Count = before - 1
		out.AutoBanPrevented = policy.AutoBanPrevented(before)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearWarnings deletes every warning for the member in the guild and
// reports how many were removed. Clearing an empty ledger returns a zero
// result, not an error.
func (s *ModerationService) ClearWarnings(ctx context.Context, guildID, userID int64) (*ClearResult, error) {
	var out ClearResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		before, err := repo.CountWarnings(ctx, tx, guildID, userID)
		if err != nil {
			return err
		}
		removed, err := repo.ClearWarnings(ctx, tx, guildID, userID)
		if err != nil {
			return err
		}
		out.Removed = removed
		out.AutoBanPrevented = policy.AutoBanPrevented(before)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

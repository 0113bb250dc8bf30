// Package services defines the business logic for verification, moderation,
// and self-roles. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages (embeds, ephemeral replies) is performed at the
// Discord handler layer.
package services

import "errors"

// Verification errors.
var (
	// ErrDuplicateRecord is returned when a verification record already exists
	// for the user. Duplicate inserts are a caller bug and are surfaced, never
	// masked by overwriting.
	ErrDuplicateRecord = errors.New("verification record already exists")

	// ErrInvalidBirthdate is returned when the submitted day/month/year do not
	// form a real calendar date.
	ErrInvalidBirthdate = errors.New("birthdate is not a valid date")

	// ErrUnderage is returned when the submitted birthdate fails the minimum
	// age check. No record is created in this case.
	ErrUnderage = errors.New("member is under the minimum verification age")
)

// Moderation errors.
var (
	// ErrEmptyReason is returned when a warning is issued without a reason.
	ErrEmptyReason = errors.New("reason must not be empty")

	// ErrWarningNotFound indicates that the referenced warning id does not
	// exist.
	ErrWarningNotFound = errors.New("warning not found")

	// ErrForeignWarning is returned when a warning id exists but belongs to a
	// different guild than the one the caller is acting in.
	ErrForeignWarning = errors.New("warning belongs to another guild")

	// ErrWarningUserMismatch is returned when a warning id exists in the
	// guild but was issued against a different member than the one named.
	ErrWarningUserMismatch = errors.New("warning belongs to another member")

	// ErrSelfTarget is returned when an actor attempts a moderation action
	// against themselves, regardless of rank.
	ErrSelfTarget = errors.New("cannot moderate yourself")

	// ErrPermissionDenied is returned when the acting member does not outrank
	// the target and is not the guild owner.
	ErrPermissionDenied = errors.New("target outranks the acting member")

	// ErrBotOutranked is returned when the bot's own top role does not outrank
	// the target, so the platform action would be refused anyway.
	ErrBotOutranked = errors.New("target outranks the bot")
)

// Self-role errors.
var (
	// ErrEmptyMessageName is returned when a self-role configuration is
	// written or referenced without a message name.
	ErrEmptyMessageName = errors.New("message name must not be empty")

	// ErrNoRoles is returned when a self-role configuration contains no
	// role/label pairs.
	ErrNoRoles = errors.New("at least one role and label pair is required")

	// ErrInvalidButtonStyle is returned when the requested button style is not
	// one of primary, secondary, success, danger.
	ErrInvalidButtonStyle = errors.New("button style must be primary, secondary, success, or danger")
)

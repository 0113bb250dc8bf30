// Package domain defines the persistence models for guild configuration,
// age verification, moderation, and self-assignable roles. These types are
// mapped with GORM and form the core data layer of the bot.
package domain

import (
	"time"
)

// GuildConfig holds the per-guild verification settings: where the
// verification prompt lives, where verification events are logged, and which
// role verified members receive. There is at most one row per guild and
// writes are full replacements (upsert), never partial patches.
//
// Fields:
//   - GuildID: Discord guild snowflake, primary key (no autoincrement).
//   - VerificationChannelID: channel that hosts the verification prompt (nullable).
//   - LogChannelID: channel that receives verification log embeds (nullable).
//   - VerifiedRoleID: role granted after a successful age check (nullable).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type GuildConfig struct {
	GuildID               int64     `json:"guild_id"                gorm:"primaryKey;autoIncrement:false"`
	VerificationChannelID *int64    `json:"verification_channel_id"`
	LogChannelID          *int64    `json:"log_channel_id"`
	VerifiedRoleID        *int64    `json:"verified_role_id"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// TableName returns the database table name for GuildConfig.
func (GuildConfig) TableName() string { return "guild_configs" }

// VerificationRecord marks a user as age-verified. Records are keyed by the
// user snowflake (string form) and are global, not per guild: a member
// verified in one guild is considered verified everywhere the bot runs.
// A record is only ever created after the age check passes; re-verification
// requires deleting the record first.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - UserID: Discord user snowflake as a string; unique across the table.
//   - Username: display-name snapshot taken at verification time (not re-synced).
//   - Verified: always true for persisted rows; kept for schema compatibility.
//   - Birthdate: the submitted date of birth (nullable).
//   - CreatedAt: verification timestamp (UTC).
type VerificationRecord struct {
	ID        string     `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string     `json:"user_id"    gorm:"type:varchar(32);not null;uniqueIndex:ux_verification_user"`
	Username  string     `json:"username"   gorm:"type:varchar(128);not null"`
	Verified  bool       `json:"verified"   gorm:"not null;default:false"`
	Birthdate *time.Time `json:"birthdate"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName returns the database table name for VerificationRecord.
func (VerificationRecord) TableName() string { return "verifications" }

// ModerationConfig holds the per-guild moderation settings. It is a separate
// record space from GuildConfig on purpose: the two configs evolve
// independently and are never merged.
//
// Fields:
//   - GuildID: Discord guild snowflake, primary key.
//   - LogChannelID: channel that receives moderation log embeds (nullable).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type ModerationConfig struct {
	GuildID      int64     `json:"guild_id" gorm:"primaryKey;autoIncrement:false"`
	LogChannelID *int64    `json:"log_channel_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for ModerationConfig.
func (ModerationConfig) TableName() string { return "moderation_configs" }

// Warning is a single moderator-issued warning against a member. Warning IDs
// are allocated by the database and are unique across all guilds, which lets
// moderators reference them directly ("#42"). Removal must always be scoped
// to the issuing guild; see repo.DeleteWarning.
//
// Fields:
//   - ID: autoincrementing primary key, globally unique.
//   - GuildID / UserID: the guild and the warned member (composite index).
//   - ModeratorID: the member who issued the warning.
//   - Reason: non-empty free text (validated by the service layer).
//   - CreatedAt: issue timestamp (UTC).
type Warning struct {
	ID          int64     `json:"id"           gorm:"primaryKey;autoIncrement"`
	GuildID     int64     `json:"guild_id"     gorm:"not null;index:idx_warnings_guild_user,priority:1"`
	UserID      int64     `json:"user_id"      gorm:"not null;index:idx_warnings_guild_user,priority:2"`
	ModeratorID int64     `json:"moderator_id" gorm:"not null"`
	Reason      string    `json:"reason"       gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for Warning.
func (Warning) TableName() string { return "warnings" }

// SelfRoleConfig describes one self-role message: a named, per-guild set of
// role buttons plus the embed copy that frames them. A guild may have any
// number of configurations, distinguished by MessageName; the
// (guild_id, message_name) pair is unique.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - GuildID / MessageName: composite unique key identifying the message.
//   - RoleLabels: role snowflake (string) → button label, stored as JSON.
//   - ButtonStyle: one of "primary", "secondary", "success", "danger".
//   - EmbedTitle / EmbedDescription: copy for the rendered embed.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type SelfRoleConfig struct {
	ID               string            `json:"id"                gorm:"type:char(36);primaryKey"`
	GuildID          int64             `json:"guild_id"          gorm:"not null;uniqueIndex:ux_selfrole_guild_message,priority:1"`
	MessageName      string            `json:"message_name"      gorm:"type:varchar(64);not null;uniqueIndex:ux_selfrole_guild_message,priority:2"`
	RoleLabels       map[string]string `json:"role_labels"       gorm:"serializer:json;type:text;not null"`
	ButtonStyle      string            `json:"button_style"      gorm:"type:varchar(16);not null;default:'primary'"`
	EmbedTitle       string            `json:"embed_title"       gorm:"type:varchar(255);not null;default:'Self-Assignable Roles'"`
	EmbedDescription string            `json:"embed_description" gorm:"type:text;not null;default:'Click the buttons below to assign or remove roles.'"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// TableName returns the database table name for SelfRoleConfig.
func (SelfRoleConfig) TableName() string { return "selfrole_configs" }

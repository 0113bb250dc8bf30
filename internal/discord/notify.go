package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/ravlin/guildwarden/internal/repo"
)

// Notification paths are best-effort by contract: a failed DM or log send is
// reported (as a flag, or just logged) and must never unwind the primary
// action that preceded it.

// directMessage sends an embed to a user's DM channel and reports whether it
// was delivered. Closed DMs are the common failure and are not an error.
func (b *Bot) directMessage(userID string, embed *discordgo.MessageEmbed) bool {
	ch, err := b.session.UserChannelCreate(userID)
	if err != nil {
		b.log.Debug().Err(err).Str("user_id", userID).Msg("dm channel unavailable")
		return false
	}
	if _, err := b.session.ChannelMessageSendEmbed(ch.ID, embed); err != nil {
		b.log.Debug().Err(err).Str("user_id", userID).Msg("dm not delivered")
		return false
	}
	return true
}

// logVerification delivers an embed to the guild's configured verification
// log channel. Silently skipped when no channel is configured.
func (b *Bot) logVerification(ctx context.Context, guildID int64, embed *discordgo.MessageEmbed) {
	cfg, err := b.settings.Get(ctx, guildID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			b.log.Warn().Err(err).Int64("guild_id", guildID).Msg("load guild config for logging")
		}
		return
	}
	b.sendLog(cfg.LogChannelID, guildID, embed)
}

// logModeration delivers an embed to the guild's configured moderation log
// channel. Silently skipped when no channel is configured.
func (b *Bot) logModeration(ctx context.Context, guildID int64, embed *discordgo.MessageEmbed) {
	cfg, err := b.moderation.Config(ctx, guildID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			b.log.Warn().Err(err).Int64("guild_id", guildID).Msg("load moderation config for logging")
		}
		return
	}
	b.sendLog(cfg.LogChannelID, guildID, embed)
}

func (b *Bot) sendLog(channelID *int64, guildID int64, embed *discordgo.MessageEmbed) {
	if channelID == nil {
		return
	}
	if _, err := b.session.ChannelMessageSendEmbed(formatSnowflake(*channelID), embed); err != nil {
		b.log.Warn().Err(err).Int64("guild_id", guildID).Int64("channel_id", *channelID).Msg("log channel send failed")
	}
}

package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/ravlin/guildwarden/internal/metrics"
	"github.com/ravlin/guildwarden/internal/repo"
	"github.com/ravlin/guildwarden/internal/services"
)

func (b *Bot) handleSetModerationLogChannel(ctx context.Context, i *discordgo.InteractionCreate) {
	guildID := parseSnowflake(i.GuildID)
	channel := optionMap(i)["channel"].ChannelValue(nil)

	if _, err := b.moderation.SetLogChannel(ctx, guildID, parseSnowflake(channel.ID)); err != nil {
		b.log.Error().Err(err).Int64("guild_id", guildID).Msg("set moderation log channel")
		b.replyError(i, "Could not save the configuration. Please try again later.")
		return
	}
	b.reply(i, successEmbed("Success", fmt.Sprintf("Log channel set: %s", chanRef(parseSnowflake(channel.ID)))))
}

func (b *Bot) handleShowModerationConfig(ctx context.Context, i *discordgo.InteractionCreate) {
	guildID := parseSnowflake(i.GuildID)

	embed := infoEmbed("Mod Config", "Server moderation settings")
	cfg, err := b.moderation.Config(ctx, guildID)
	switch {
	case err == nil && cfg.LogChannelID != nil:
		embed.Fields = append(embed.Fields, field("Log Channel", chanRef(*cfg.LogChannelID)))
	case err == nil || errors.Is(err, repo.ErrNotFound):
		embed.Fields = append(embed.Fields, field("Log Channel", "Not Set - Use `/set_moderation_log_channel`"))
	default:
		b.log.Error().Err(err).Int64("guild_id", guildID).Msg("load moderation config")
		b.replyError(i, "Could not load the configuration. Please try again later.")
		return
	}
	embed.Fields = append(embed.Fields, field("Auto-Ban", "3 warnings = ban"))
	b.reply(i, embed)
}

// authorizeAction runs the self-target and hierarchy checks for a moderation
// action against targetID. On denial it replies to the interaction and
// returns false.
func (b *Bot) authorizeAction(i *discordgo.InteractionCreate, targetID, verb string) bool {
	if i.Member.User.ID == targetID {
		b.replyError(i, fmt.Sprintf("Cannot %s yourself", verb))
		return false
	}
	snap, err := b.snapshotHierarchy(i.GuildID, i.Member, targetID)
	if err != nil {
		b.log.Error().Err(err).Str("guild_id", i.GuildID).Msg("hierarchy snapshot")
		b.replyError(i, "Could not verify role hierarchy. Please try again later.")
		return false
	}
	switch err := b.moderation.Authorize(snap); {
	case errors.Is(err, services.ErrBotOutranked):
		b.replyError(i, "Target has higher role than bot")
		return false
	case errors.Is(err, services.ErrPermissionDenied):
		b.replyError(i, "Target has higher role than you")
		return false
	case err != nil:
		b.replyError(i, "You cannot moderate this member.")
		return false
	}
	return true
}

func (b *Bot) guildName(guildID string) string {
	if g, err := b.session.State.Guild(guildID); err == nil && g.Name != "" {
		return g.Name
	}
	if g, err := b.session.Guild(guildID); err == nil {
		return g.Name
	}
	return "this server"
}

func (b *Bot) handleBan(ctx context.Context, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	target := opts["member"].UserValue(b.session)
	reason := opts["reason"].StringValue()

	if !b.authorizeAction(i, target.ID, "ban") {
		return
	}

	// DM before the ban lands; afterwards the member may share no guild
	// with the bot and the DM would be refused.
	dmSent := b.directMessage(target.ID, &discordgo.MessageEmbed{
		Title:       "Banned",
		Description: fmt.Sprintf("You were banned from %s", b.guildName(i.GuildID)),
		Color:       colorRed,
		Fields:      []*discordgo.MessageEmbedField{field("Reason", reason)},
	})

	if err := b.session.GuildBanCreateWithReason(i.GuildID, target.ID, reason, 0); err != nil {
		b.log.Error().Err(err).Str("target_id", target.ID).Msg("ban failed")
		b.replyError(i, "Could not ban the member. Check the bot's permissions.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Ban",
		Description: fmt.Sprintf("%s banned", mention(target.ID)),
		Color:       colorRed,
		Fields: []*discordgo.MessageEmbedField{
			field("By", mention(i.Member.User.ID)),
			field("Reason", reason),
		},
	}
	dmNotice(embed, dmSent)
	b.logModeration(ctx, parseSnowflake(i.GuildID), embed)
	b.reply(i, embed)
}

func (b *Bot) handleKick(ctx context.Context, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	target := opts["member"].UserValue(b.session)
	reason := opts["reason"].StringValue()

	if !b.authorizeAction(i, target.ID, "kick") {
		return
	}

	dmSent := b.directMessage(target.ID, &discordgo.MessageEmbed{
		Title:       "Kicked",
		Description: fmt.Sprintf("You were kicked from %s", b.guildName(i.GuildID)),
		Color:       colorOrange,
		Fields:      []*discordgo.MessageEmbedField{field("Reason", reason)},
	})

	if err := b.session.GuildMemberDeleteWithReason(i.GuildID, target.ID, reason); err != nil {
		b.log.Error().Err(err).Str("target_id", target.ID).Msg("kick failed")
		b.replyError(i, "Could not kick the member. Check the bot's permissions.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Kick",
		Description: fmt.Sprintf("%s kicked", mention(target.ID)),
		Color:       colorOrange,
		Fields: []*discordgo.MessageEmbedField{
			field("By", mention(i.Member.User.ID)),
			field("Reason", reason),
		},
	}
	dmNotice(embed, dmSent)
	b.logModeration(ctx, parseSnowflake(i.GuildID), embed)
	b.reply(i, embed)
}

func (b *Bot) handleWarn(ctx context.Context, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	target := opts["member"].UserValue(b.session)
	reason := opts["reason"].StringValue()
	guildID := parseSnowflake(i.GuildID)

	if !b.authorizeAction(i, target.ID, "warn") {
		return
	}

	res, err := b.moderation.Warn(ctx, guildID, parseSnowflake(target.ID), parseSnowflake(i.Member.User.ID), reason)
	if errors.Is(err, services.ErrEmptyReason) {
		b.replyError(i, "A reason is required.")
		return
	}
	if err != nil {
		b.log.Error().Err(err).Str("target_id", target.ID).Msg("warn failed")
		b.replyError(i, "Could not record the warning. Please try again later.")
		return
	}
	metrics.WarningsIssued.Inc()

	// Moderator confirmation first; the log copy additionally names the
	// moderator.
	modEmbed := &discordgo.MessageEmbed{
		Title:       "Warning",
		Description: fmt.Sprintf("User warned: %s", mention(target.ID)),
		Color:       colorYellow,
		Fields: []*discordgo.MessageEmbedField{
			field("ID", fmt.Sprintf("#%d", res.Warning.ID)),
			field("Reason", reason),
			warnCountField(res.Count),
		},
	}
	b.reply(i, modEmbed)

	userEmbed := &discordgo.MessageEmbed{
		Title:       "Warning",
		Description: fmt.Sprintf("You were warned in %s", b.guildName(i.GuildID)),
		Color:       colorYellow,
		Fields: []*discordgo.MessageEmbedField{
			field("Reason", reason),
			warnCountField(res.Count),
		},
	}
	if res.AutoBan {
		userEmbed.Fields = append(userEmbed.Fields, wideField("Auto-Ban", "3 warnings = automatic ban"))
	}
	dmSent := b.directMessage(target.ID, userEmbed)

	logEmbed := &discordgo.MessageEmbed{
		Title:       "Warning",
		Description: fmt.Sprintf("User warned: %s", mention(target.ID)),
		Color:       colorYellow,
		Fields: []*discordgo.MessageEmbedField{
			field("ID", fmt.Sprintf("#%d", res.Warning.ID)),
			field("Reason", reason),
			warnCountField(res.Count),
			field("Moderator", mention(i.Member.User.ID)),
		},
	}
	dmNotice(logEmbed, dmSent)
	b.logModeration(ctx, guildID, logEmbed)

	if res.AutoBan {
		b.executeAutoBan(ctx, i, target.ID, reason, res.Warning.ID)
	}
}

// executeAutoBan performs the threshold ban that a warn crossed into. The
// warning itself is already recorded; a ban failure is reported but does not
// unwind it.
func (b *Bot) executeAutoBan(ctx context.Context, i *discordgo.InteractionCreate, targetID, lastReason string, warningID int64) {
	guildID := parseSnowflake(i.GuildID)
	banReason := fmt.Sprintf("Automatic ban after 3 warnings. Last warning: %s", lastReason)

	dmSent := b.directMessage(targetID, &discordgo.MessageEmbed{
		Title:       "Auto-Ban",
		Description: fmt.Sprintf("Banned from %s: 3 warnings reached", b.guildName(i.GuildID)),
		Color:       colorRed,
		Fields:      []*discordgo.MessageEmbedField{field("Reason", lastReason)},
	})

	if err := b.session.GuildBanCreateWithReason(i.GuildID, targetID, banReason, 0); err != nil {
		b.log.Error().Err(err).Str("target_id", targetID).Msg("auto-ban failed")
		b.followup(i, errorEmbed("Cannot auto-ban: missing permissions"))
		return
	}
	metrics.AutoBansTotal.Inc()

	logEmbed := &discordgo.MessageEmbed{
		Title:       "Auto-Ban",
		Description: fmt.Sprintf("%s: 3 warnings reached", mention(targetID)),
		Color:       colorRed,
		Fields: []*discordgo.MessageEmbedField{
			field("Reason", banReason),
			field("Mod", mention(i.Member.User.ID)),
		},
	}
	dmNotice(logEmbed, dmSent)
	b.logModeration(ctx, guildID, logEmbed)

	b.followup(i, &discordgo.MessageEmbed{
		Title:       "Auto-Ban",
		Description: fmt.Sprintf("%s banned: 3 warnings", mention(targetID)),
		Color:       colorRed,
		Fields:      []*discordgo.MessageEmbedField{field("Warning ID", fmt.Sprintf("#%d", warningID))},
	})
}

func (b *Bot) handleWarnings(ctx context.Context, i *discordgo.InteractionCreate) {
	target := optionMap(i)["member"].UserValue(b.session)
	guildID := parseSnowflake(i.GuildID)

	warnings, err := b.moderation.Warnings(ctx, guildID, parseSnowflake(target.ID))
	if err != nil {
		b.log.Error().Err(err).Str("target_id", target.ID).Msg("list warnings")
		b.replyError(i, "Could not load warnings. Please try again later.")
		return
	}
	if len(warnings) == 0 {
		b.reply(i, successEmbed("Warnings", fmt.Sprintf("%s: No warnings", mention(target.ID))))
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Warnings",
		Description: fmt.Sprintf("%s: %d/3 warnings", mention(target.ID), len(warnings)),
		Color:       colorYellow,
	}
	for _, w := range warnings {
		embed.Fields = append(embed.Fields, wideField(
			fmt.Sprintf("Warning #%d", w.ID),
			fmt.Sprintf("**Reason:** %s\n**Moderator:** %s\n**Date:** %s",
				w.Reason, mention(formatSnowflake(w.ModeratorID)), w.CreatedAt.Format("2006-01-02 15:04:05")),
		))
	}
	b.reply(i, embed)
}

func (b *Bot) handleRemoveWarning(ctx context.Context, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	target := opts["member"].UserValue(b.session)
	warningID := opts["warning_id"].IntValue()
	guildID := parseSnowflake(i.GuildID)

	if target.ID == i.Member.User.ID {
		b.replyError(i, "You cannot remove your own warning.")
		return
	}

	targetID := parseSnowflake(target.ID)
	res, err := b.moderation.RemoveWarning(ctx, guildID, warningID, &targetID)
	switch {
	case errors.Is(err, services.ErrWarningNotFound), errors.Is(err, services.ErrForeignWarning):
		b.replyError(i, "Warning not found.")
		return
	case errors.Is(err, services.ErrWarningUserMismatch):
		b.replyError(i, "This warning does not belong to the specified member.")
		return
	case err != nil:
		b.log.Error().Err(err).Int64("warning_id", warningID).Msg("remove warning")
		b.replyError(i, "Failed to remove the warning. Please try again.")
		return
	}

	embed := successEmbed("Warning Removed", fmt.Sprintf(
		"Warning #%d was removed from %s by %s", warningID, mention(target.ID), mention(i.Member.User.ID)))
	if res.AutoBanPrevented {
		embed.Fields = append(embed.Fields, wideField("Note", "Auto-ban prevented"))
	}
	b.logModeration(ctx, guildID, embed)
	b.reply(i, embed)
}

func (b *Bot) handleUnwarn(ctx context.Context, i *discordgo.InteractionCreate) {
	warningID := optionMap(i)["warning_id"].IntValue()
	guildID := parseSnowflake(i.GuildID)

	res, err := b.moderation.RemoveWarning(ctx, guildID, warningID, nil)
	switch {
	case errors.Is(err, services.ErrWarningNotFound):
		b.replyError(i, fmt.Sprintf("Warning #%d not found", warningID))
		return
	case errors.Is(err, services.ErrForeignWarning):
		b.replyError(i, "Warning not from this server")
		return
	case err != nil:
		b.log.Error().Err(err).Int64("warning_id", warningID).Msg("unwarn")
		b.replyError(i, "Failed to remove the warning. Please try again.")
		return
	}

	b.reply(i, removalEmbed(res, false, ""))

	userID := formatSnowflake(res.Warning.UserID)
	dmSent := b.directMessage(userID, &discordgo.MessageEmbed{
		Title:       "Warning Removed",
		Description: fmt.Sprintf("Warning removed in %s", b.guildName(i.GuildID)),
		Color:       colorGreen,
		Fields:      []*discordgo.MessageEmbedField{field("Reason", res.Warning.Reason)},
	})

	logEmbed := removalEmbed(res, true, i.Member.User.ID)
	dmNotice(logEmbed, dmSent)
	b.logModeration(ctx, guildID, logEmbed)
}

// removalEmbed renders an unwarn outcome; the log variant names the
// moderator.
func removalEmbed(res *services.RemovalResult, withModerator bool, moderatorID string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Warning Removed",
		Description: fmt.Sprintf("#%d from %s", res.Warning.ID, mention(formatSnowflake(res.Warning.UserID))),
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			field("Reason", res.Warning.Reason),
			warnCountField(res.Count),
		},
	}
	if withModerator {
		embed.Fields = append(embed.Fields, field("Moderator", mention(moderatorID)))
	}
	if res.AutoBanPrevented {
		embed.Fields = append(embed.Fields, wideField("Note", "Auto-ban prevented"))
	}
	return embed
}

func (b *Bot) handleClearWarnings(ctx context.Context, i *discordgo.InteractionCreate) {
	target := optionMap(i)["member"].UserValue(b.session)
	guildID := parseSnowflake(i.GuildID)

	res, err := b.moderation.ClearWarnings(ctx, guildID, parseSnowflake(target.ID))
	if err != nil {
		b.log.Error().Err(err).Str("target_id", target.ID).Msg("clear warnings")
		b.replyError(i, "Could not clear warnings. Please try again later.")
		return
	}
	if res.Removed == 0 {
		b.reply(i, infoEmbed("Notice", fmt.Sprintf("%s: No warnings to clear", mention(target.ID))))
		return
	}

	b.reply(i, clearedEmbed(target.ID, i.Member.User.ID, res))

	dmSent := b.directMessage(target.ID, successEmbed("Warnings Cleared",
		fmt.Sprintf("%d warnings removed in %s", res.Removed, b.guildName(i.GuildID))))

	// The log copy is built fresh; the DM notice belongs on it, not on the
	// reply already sent to the moderator.
	logEmbed := clearedEmbed(target.ID, i.Member.User.ID, res)
	dmNotice(logEmbed, dmSent)
	b.logModeration(ctx, guildID, logEmbed)
}

// clearedEmbed renders a clear-warnings outcome. Reply and log copies are
// separate embeds so later annotations never leak between them.
func clearedEmbed(targetID, moderatorID string, res *services.ClearResult) *discordgo.MessageEmbed {
	embed := successEmbed("Warnings Cleared", fmt.Sprintf("%s: %d warnings removed", mention(targetID), res.Removed))
	embed.Fields = append(embed.Fields, field("By", mention(moderatorID)))
	if res.AutoBanPrevented {
		embed.Fields = append(embed.Fields, field("Note", "Auto-ban prevented"))
	}
	return embed
}

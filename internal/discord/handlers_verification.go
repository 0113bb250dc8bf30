package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ravlin/guildwarden/internal/metrics"
	"github.com/ravlin/guildwarden/internal/repo"
	"github.com/ravlin/guildwarden/internal/services"
)

func (b *Bot) handleSetChannels(ctx context.Context, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	guildID := parseSnowflake(i.GuildID)

	verCh := parseSnowflake(opts["verification_channel"].ChannelValue(nil).ID)
	logCh := parseSnowflake(opts["log_channel"].ChannelValue(nil).ID)
	role := parseSnowflake(opts["verified_role"].RoleValue(nil, i.GuildID).ID)

	cfg, err := b.settings.Set(ctx, guildID, &verCh, &logCh, &role)
	if err != nil {
		b.log.Error().Err(err).Int64("guild_id", guildID).Msg("set channels")
		b.replyError(i, "Could not save the configuration. Please try again later.")
		return
	}

	b.reply(i, successEmbed("Configuration Updated", fmt.Sprintf(
		"Verification Channel: %s\nLog Channel: %s\nVerified Role: %s",
		chanRef(*cfg.VerificationChannelID), chanRef(*cfg.LogChannelID), roleRef(*cfg.VerifiedRoleID))))
}

func (b *Bot) handleSendVerification(ctx context.Context, i *discordgo.InteractionCreate) {
	guildID := parseSnowflake(i.GuildID)

	cfg, err := b.settings.Get(ctx, guildID)
	if errors.Is(err, repo.ErrNotFound) {
		b.replyError(i, "Configuration not found. Please set it up using `/set_channels`.")
		return
	}
	if err != nil {
		b.log.Error().Err(err).Int64("guild_id", guildID).Msg("load guild config")
		b.replyError(i, "Could not load the configuration. Please try again later.")
		return
	}
	if cfg.VerificationChannelID == nil {
		b.replyError(i, "Verification channel is not configured. Please set it up using `/set_channels`.")
		return
	}

	_, err = b.session.ChannelMessageSendComplex(formatSnowflake(*cfg.VerificationChannelID), &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Verification Required",
			Description: "Please verify with the button below.",
			Color:       colorBlue,
		}},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Verify",
					Style:    discordgo.SuccessButton,
					CustomID: verifyButtonID,
				},
			}},
		},
	})
	if err != nil {
		b.log.Error().Err(err).Int64("guild_id", guildID).Msg("send verification prompt")
		b.replyError(i, "Verification channel is invalid or inaccessible.")
		return
	}
	b.reply(i, successEmbed("Done", "Verification button sent!"))
}

func (b *Bot) handleClearVerification(ctx context.Context, i *discordgo.InteractionCreate) {
	user := optionMap(i)["user"].UserValue(b.session)

	removed, err := b.verification.Clear(ctx, user.ID)
	if err != nil {
		b.log.Error().Err(err).Str("user_id", user.ID).Msg("clear verification")
		b.replyError(i, "Could not clear the verification record. Please try again later.")
		return
	}
	if !removed {
		b.reply(i, infoEmbed("Not Found", fmt.Sprintf("No verification record found for %s.", mention(user.ID))))
		return
	}
	b.reply(i, successEmbed("Cleared", fmt.Sprintf("Verification record for %s has been cleared.", mention(user.ID))))
}

// handleVerifyButton opens the birthdate modal, unless the clicker is
// already verified.
func (b *Bot) handleVerifyButton(ctx context.Context, i *discordgo.InteractionCreate) {
	userID := i.Member.User.ID

	if _, err := b.verification.Status(ctx, userID); err == nil {
		b.reply(i, infoEmbed("Already Verified", "You are already verified."))
		return
	} else if !errors.Is(err, repo.ErrNotFound) {
		b.log.Error().Err(err).Str("user_id", userID).Msg("verification status")
		b.replyError(i, "An error occurred during verification. Please try again later.")
		return
	}

	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: verifyModalID,
			Title:    "Verification Form",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: fieldDay, Label: "Day (DD)", Style: discordgo.TextInputShort, Placeholder: "DD", Required: true, MaxLength: 2},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: fieldMonth, Label: "Month (MM)", Style: discordgo.TextInputShort, Placeholder: "MM", Required: true, MaxLength: 2},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: fieldYear, Label: "Year (YYYY)", Style: discordgo.TextInputShort, Placeholder: "YYYY", Required: true, MaxLength: 4},
				}},
			},
		},
	})
	if err != nil {
		b.log.Warn().Err(err).Msg("open verification modal")
	}
}

// handleVerifyModal runs the age check on the submitted birthdate and, when
// it passes, records the verification and grants the configured role. The
// role grant is best-effort: a failed grant leaves a valid state (record
// exists, grant can be retried by an admin).
func (b *Bot) handleVerifyModal(ctx context.Context, i *discordgo.InteractionCreate) {
	userID := i.Member.User.ID
	username := i.Member.User.Username
	guildID := parseSnowflake(i.GuildID)

	day, errD := modalInt(i, fieldDay)
	month, errM := modalInt(i, fieldMonth)
	year, errY := modalInt(i, fieldYear)
	if errD != nil || errM != nil || errY != nil {
		metrics.VerificationsTotal.WithLabelValues("invalid").Inc()
		b.replyError(i, "Invalid date. Please ensure all fields are filled correctly.")
		return
	}

	rec, err := b.verification.Verify(ctx, userID, username, day, month, year)
	switch {
	case errors.Is(err, services.ErrInvalidBirthdate):
		metrics.VerificationsTotal.WithLabelValues("invalid").Inc()
		b.replyError(i, "Invalid date. Please ensure all fields are filled correctly.")
		return
	case errors.Is(err, services.ErrUnderage):
		metrics.VerificationsTotal.WithLabelValues("underage").Inc()
		birthdate, _ := services.Birthdate(day, month, year)
		b.logVerification(ctx, guildID, underageEmbed(userID, username, birthdate, b.verification.AgeOf(birthdate)))
		b.replyError(i, "You must be at least 18 years old to verify.")
		return
	case errors.Is(err, services.ErrDuplicateRecord):
		metrics.VerificationsTotal.WithLabelValues("duplicate").Inc()
		b.reply(i, infoEmbed("Already Verified", "You are already verified."))
		return
	case err != nil:
		metrics.VerificationsTotal.WithLabelValues("error").Inc()
		b.log.Error().Err(err).Str("user_id", userID).Msg("verify")
		b.replyError(i, "An error occurred. Please try again later.")
		return
	}
	metrics.VerificationsTotal.WithLabelValues("verified").Inc()

	if cfg, err := b.settings.Get(ctx, guildID); err == nil && cfg.VerifiedRoleID != nil {
		if err := b.session.GuildMemberRoleAdd(i.GuildID, userID, formatSnowflake(*cfg.VerifiedRoleID)); err != nil {
			b.log.Warn().Err(err).Int64("guild_id", guildID).Int64("role_id", *cfg.VerifiedRoleID).Msg("verified role grant failed")
		}
	}

	b.reply(i, successEmbed("Verified", "You have been verified successfully!"))
	b.logVerification(ctx, guildID, verifiedEmbed(userID, username, *rec.Birthdate))
}

// modalInt extracts a text-input value from a modal submission and parses it
// as a base-10 integer.
func modalInt(i *discordgo.InteractionCreate, customID string) (int, error) {
	for _, row := range i.ModalSubmitData().Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range ar.Components {
			in, ok := c.(*discordgo.TextInput)
			if !ok || in.CustomID != customID {
				continue
			}
			return strconv.Atoi(strings.TrimSpace(in.Value))
		}
	}
	return 0, fmt.Errorf("missing field %s", customID)
}

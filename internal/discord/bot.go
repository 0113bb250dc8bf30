// Package discord – Bot
//
// This file owns the gateway session lifecycle and the interaction router.
// Slash commands dispatch by name; message components and modals dispatch by
// the stable custom ids defined in customid.go, so no handler registration
// survives in memory only.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ravlin/guildwarden/internal/metrics"
	"github.com/ravlin/guildwarden/internal/services"
)

// Bot bundles the gateway session with the services behind every command.
type Bot struct {
	session *discordgo.Session
	log     zerolog.Logger

	settings     *services.SettingsService
	verification *services.VerificationService
	moderation   *services.ModerationService
	selfroles    *services.SelfRoleService

	commandHandlers map[string]func(context.Context, *discordgo.InteractionCreate)
}

// New builds a Bot over the given token and database handle. The session is
// configured but not opened; call Open to connect.
func New(token string, db *gorm.DB, log zerolog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages

	b := &Bot{
		session:      session,
		log:          log,
		settings:     &services.SettingsService{DB: db},
		verification: &services.VerificationService{DB: db},
		moderation:   &services.ModerationService{DB: db},
		selfroles:    &services.SelfRoleService{DB: db},
	}
	b.commandHandlers = map[string]func(context.Context, *discordgo.InteractionCreate){
		"set_channels":               b.handleSetChannels,
		"send_verification":          b.handleSendVerification,
		"clear_verification":         b.handleClearVerification,
		"set_moderation_log_channel": b.handleSetModerationLogChannel,
		"show_moderation_config":     b.handleShowModerationConfig,
		"ban":                        b.handleBan,
		"kick":                       b.handleKick,
		"warn":                       b.handleWarn,
		"warnings":                   b.handleWarnings,
		"remove_warning":             b.handleRemoveWarning,
		"unwarn":                     b.handleUnwarn,
		"clearwarnings":              b.handleClearWarnings,
		"set_selfroles":              b.handleSetSelfRoles,
		"remove_selfroles":           b.handleRemoveSelfRoles,
		"show_selfroles_config":      b.handleShowSelfRolesConfig,
		"list_selfroles":             b.handleListSelfRoles,
		"send_selfroles":             b.handleSendSelfRoles,
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Open connects to the gateway and overwrites the global slash-command set.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	appID := b.session.State.User.ID
	if _, err := b.session.ApplicationCommandBulkOverwrite(appID, "", commands); err != nil {
		b.session.Close()
		return fmt.Errorf("register commands: %w", err)
	}
	return nil
}

// Close shuts the gateway connection down.
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info().
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Msg("gateway ready")
}

// onInteraction is the single entry point for every command, button click,
// and modal submission. Each interaction is one independent unit of work.
func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	// DM interactions carry no member. Registration already disables DM use,
	// but an interaction that slips through must not reach the handlers:
	// every one of them authorizes against i.Member.
	if i.Member == nil {
		b.replyError(i, "This command can only be used in a server.")
		return
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		metrics.InteractionsTotal.WithLabelValues("command", name).Inc()
		if h, ok := b.commandHandlers[name]; ok {
			h(ctx, i)
			return
		}
		b.log.Warn().Str("command", name).Msg("no handler for command")

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case customID == verifyButtonID:
			metrics.InteractionsTotal.WithLabelValues("component", "verify").Inc()
			b.handleVerifyButton(ctx, i)
		default:
			if roleID, ok := parseSelfRoleCustomID(customID); ok {
				metrics.InteractionsTotal.WithLabelValues("component", "selfrole").Inc()
				b.handleSelfRoleToggle(ctx, i, roleID)
				return
			}
			b.log.Warn().Str("custom_id", customID).Msg("unknown component")
		}

	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID == verifyModalID {
			metrics.InteractionsTotal.WithLabelValues("modal", "verify").Inc()
			b.handleVerifyModal(ctx, i)
		}
	}
}

// reply sends an ephemeral embed response to an interaction.
func (b *Bot) reply(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.log.Warn().Err(err).Msg("interaction respond failed")
	}
}

// followup sends an additional ephemeral embed after the initial response.
func (b *Bot) followup(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	_, err := b.session.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		b.log.Warn().Err(err).Msg("interaction followup failed")
	}
}

// replyError is shorthand for an ephemeral red error embed.
func (b *Bot) replyError(i *discordgo.InteractionCreate, description string) {
	b.reply(i, errorEmbed(description))
}

// optionMap flattens command options for lookup by name.
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		out[o.Name] = o
	}
	return out
}

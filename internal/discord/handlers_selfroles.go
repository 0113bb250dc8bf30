package discord

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"

	"github.com/ravlin/guildwarden/internal/domain"
	"github.com/ravlin/guildwarden/internal/metrics"
	"github.com/ravlin/guildwarden/internal/policy"
	"github.com/ravlin/guildwarden/internal/repo"
	"github.com/ravlin/guildwarden/internal/services"
)

func (b *Bot) handleSetSelfRoles(ctx context.Context, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	guildID := parseSnowflake(i.GuildID)
	messageName := opts["message_name"].StringValue()

	pairs, err := parseRolePairs(opts["roles_and_labels"].StringValue())
	if err != nil {
		b.replyError(i, fmt.Sprintf("Invalid format: %v. Use `role_id:label` pairs separated by spaces.", err))
		return
	}
	// Reject role ids that do not exist in this guild before persisting.
	roles, err := b.guildRoles(i.GuildID)
	if err != nil {
		b.log.Error().Err(err).Int64("guild_id", guildID).Msg("load guild roles")
		b.replyError(i, "Could not load the server's roles. Please try again later.")
		return
	}
	if roleID, ok := firstUnknownRole(roles, pairs); ok {
		b.replyError(i, fmt.Sprintf("Role with ID %s not found in this server.", roleID))
		return
	}

	var style, title, description string
	if o, ok := opts["button_color"]; ok {
		style = o.StringValue()
	}
	if o, ok := opts["embed_title"]; ok {
		title = o.StringValue()
	}
	if o, ok := opts["embed_description"]; ok {
		description = o.StringValue()
	}

	cfg, err := b.selfroles.Define(ctx, guildID, messageName, pairs, style, title, description)
	switch {
	case errors.Is(err, services.ErrNoRoles):
		b.replyError(i, "No valid roles and labels provided.")
		return
	case errors.Is(err, services.ErrInvalidButtonStyle):
		b.replyError(i, "Button color must be primary, secondary, success, or danger.")
		return
	case err != nil:
		b.log.Error().Err(err).Int64("guild_id", guildID).Str("message_name", messageName).Msg("define selfroles")
		b.replyError(i, "Could not save the configuration. Please try again later.")
		return
	}

	embed := successEmbed("Configuration Updated",
		fmt.Sprintf("The self-roles configuration for `%s` has been updated successfully.", messageName))
	for _, roleID := range sortedRoleIDs(cfg.RoleLabels) {
		embed.Fields = append(embed.Fields, wideField(cfg.RoleLabels[roleID],
			fmt.Sprintf("Role: %s (ID: %s)", roleRef(parseSnowflake(roleID)), roleID)))
	}
	b.reply(i, embed)
}

func (b *Bot) handleRemoveSelfRoles(ctx context.Context, i *discordgo.InteractionCreate) {
	guildID := parseSnowflake(i.GuildID)
	messageName := optionMap(i)["message_name"].StringValue()

	removed, err := b.selfroles.Remove(ctx, guildID, messageName)
	if err != nil {
		b.log.Error().Err(err).Int64("guild_id", guildID).Str("message_name", messageName).Msg("remove selfroles")
		b.replyError(i, "Could not remove the configuration. Please try again later.")
		return
	}
	if !removed {
		b.replyError(i, fmt.Sprintf("No self-roles configuration found for `%s`.", messageName))
		return
	}
	b.reply(i, successEmbed("Configuration Removed",
		fmt.Sprintf("The self-roles configuration for `%s` has been removed successfully.", messageName)))
}

func (b *Bot) handleShowSelfRolesConfig(ctx context.Context, i *discordgo.InteractionCreate) {
	guildID := parseSnowflake(i.GuildID)
	messageName := optionMap(i)["message_name"].StringValue()

	cfg, err := b.selfroles.Get(ctx, guildID, messageName)
	if errors.Is(err, repo.ErrNotFound) {
		b.replyError(i, fmt.Sprintf("No self-roles configuration found for `%s`.", messageName))
		return
	}
	if err != nil {
		b.log.Error().Err(err).Int64("guild_id", guildID).Str("message_name", messageName).Msg("load selfroles")
		b.replyError(i, "Could not load the configuration. Please try again later.")
		return
	}

	embed := infoEmbed(fmt.Sprintf("Configuration for `%s`", messageName),
		"Here are the details of the self-role configuration:")
	embed.Fields = append(embed.Fields,
		wideField("Embed Title", cfg.EmbedTitle),
		wideField("Embed Description", cfg.EmbedDescription),
		wideField("Button Color", cfg.ButtonStyle),
	)
	for _, roleID := range sortedRoleIDs(cfg.RoleLabels) {
		embed.Fields = append(embed.Fields, wideField(cfg.RoleLabels[roleID],
			fmt.Sprintf("Role: %s (ID: %s)", roleRef(parseSnowflake(roleID)), roleID)))
	}
	b.reply(i, embed)
}

func (b *Bot) handleListSelfRoles(ctx context.Context, i *discordgo.InteractionCreate) {
	guildID := parseSnowflake(i.GuildID)

	configs, err := b.selfroles.List(ctx, guildID)
	if err != nil {
		b.log.Error().Err(err).Int64("guild_id", guildID).Msg("list selfroles")
		b.replyError(i, "Could not load the configurations. Please try again later.")
		return
	}
	if len(configs) == 0 {
		b.replyError(i, "There are no self-role configurations for this server.")
		return
	}

	embed := infoEmbed("Self-Role Configurations",
		"Here are all the self-role messages configured for this server:")
	for _, cfg := range configs {
		embed.Fields = append(embed.Fields, wideField(cfg.MessageName,
			fmt.Sprintf("Embed Title: %s\nButton Color: %s", cfg.EmbedTitle, cfg.ButtonStyle)))
	}
	b.reply(i, embed)
}

func (b *Bot) handleSendSelfRoles(ctx context.Context, i *discordgo.InteractionCreate) {
	guildID := parseSnowflake(i.GuildID)
	messageName := optionMap(i)["message_name"].StringValue()

	cfg, err := b.selfroles.Get(ctx, guildID, messageName)
	if errors.Is(err, repo.ErrNotFound) {
		b.replyError(i, fmt.Sprintf("No self-roles configuration found for `%s`.", messageName))
		return
	}
	if err != nil {
		b.log.Error().Err(err).Int64("guild_id", guildID).Str("message_name", messageName).Msg("load selfroles")
		b.replyError(i, "Could not load the configuration. Please try again later.")
		return
	}

	if _, err := b.session.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       cfg.EmbedTitle,
			Description: cfg.EmbedDescription,
			Color:       colorBlue,
		}},
		Components: selfRoleComponents(cfg),
	}); err != nil {
		b.log.Error().Err(err).Int64("guild_id", guildID).Msg("send selfroles message")
		b.replyError(i, "Could not send the self-roles message in this channel.")
		return
	}
	b.reply(i, successEmbed("Done", fmt.Sprintf("Self-roles message `%s` sent!", messageName)))
}

// handleSelfRoleToggle grants or revokes the clicked role based on the
// member's role set at click time, never a cached snapshot.
func (b *Bot) handleSelfRoleToggle(ctx context.Context, i *discordgo.InteractionCreate, roleID string) {
	member, err := b.session.GuildMember(i.GuildID, i.Member.User.ID)
	if err != nil {
		b.log.Error().Err(err).Str("user_id", i.Member.User.ID).Msg("fetch member for toggle")
		b.replyError(i, "An unexpected error occurred. Please try again later.")
		return
	}

	roleName := roleID
	if r, err := b.session.State.Role(i.GuildID, roleID); err == nil {
		roleName = r.Name
	}

	switch b.selfroles.Toggle(member.Roles, roleID) {
	case policy.RevokeRole:
		if err := b.session.GuildMemberRoleRemove(i.GuildID, i.Member.User.ID, roleID); err != nil {
			b.log.Warn().Err(err).Str("role_id", roleID).Msg("selfrole revoke failed")
			b.replyError(i, "Missing permission: Manage Roles.")
			return
		}
		metrics.SelfRoleToggles.WithLabelValues("revoke").Inc()
		b.reply(i, &discordgo.MessageEmbed{
			Title:       "Role Removed",
			Description: fmt.Sprintf("Removed **%s** from you.", roleName),
			Color:       colorRed,
		})
	case policy.GrantRole:
		if err := b.session.GuildMemberRoleAdd(i.GuildID, i.Member.User.ID, roleID); err != nil {
			b.log.Warn().Err(err).Str("role_id", roleID).Msg("selfrole grant failed")
			b.replyError(i, "Missing permission: Manage Roles.")
			return
		}
		metrics.SelfRoleToggles.WithLabelValues("grant").Inc()
		b.reply(i, successEmbed("Role Assigned", fmt.Sprintf("Assigned **%s** to you.", roleName)))
	}
}

// selfRoleComponents renders a configuration's role buttons in rows of five
// (the platform's per-row limit), in stable role-id order.
func selfRoleComponents(cfg *domain.SelfRoleConfig) []discordgo.MessageComponent {
	style := buttonStyle(cfg.ButtonStyle)

	var rows []discordgo.MessageComponent
	var row []discordgo.MessageComponent
	for _, roleID := range sortedRoleIDs(cfg.RoleLabels) {
		row = append(row, discordgo.Button{
			Label:    cfg.RoleLabels[roleID],
			Style:    style,
			CustomID: selfRoleCustomID(roleID),
		})
		if len(row) == 5 {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}
	return rows
}

// firstUnknownRole reports the first configured role id (in stable order)
// that does not exist in the guild's role list.
func firstUnknownRole(guildRoles []*discordgo.Role, pairs map[string]string) (string, bool) {
	known := make(map[string]bool, len(guildRoles))
	for _, r := range guildRoles {
		known[r.ID] = true
	}
	for _, roleID := range sortedRoleIDs(pairs) {
		if !known[roleID] {
			return roleID, true
		}
	}
	return "", false
}

// sortedRoleIDs gives map iteration a stable order for rendering.
func sortedRoleIDs(labels map[string]string) []string {
	ids := make([]string, 0, len(labels))
	for id := range labels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

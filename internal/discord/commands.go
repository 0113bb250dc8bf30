package discord

import "github.com/bwmarrin/discordgo"

// adminOnly and modOnly gate commands by Discord permission at registration
// time; Discord hides gated commands from members who lack the permission.
// Handlers re-check hierarchy before acting, these are not the only guard.
var (
	adminOnly = int64(discordgo.PermissionAdministrator)
	modOnly   = int64(discordgo.PermissionKickMembers)

	// Every command is guild-scoped; none of them make sense in a DM, and a
	// DM interaction carries no member to authorize against.
	dmDisabled = false
)

// commands is the full slash-command surface, registered as a bulk overwrite
// on startup so removed commands disappear from guilds.
var commands = []*discordgo.ApplicationCommand{
	{
		Name:                     "set_channels",
		Description:              "Set the verification channel, log channel, and verified role for the server.",
		DefaultMemberPermissions: &adminOnly,
		DMPermission:             &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionChannel, Name: "verification_channel", Description: "The channel for verification messages", Required: true},
			{Type: discordgo.ApplicationCommandOptionChannel, Name: "log_channel", Description: "The channel for logging verification events", Required: true},
			{Type: discordgo.ApplicationCommandOptionRole, Name: "verified_role", Description: "The role to assign to verified users", Required: true},
		},
	},
	{
		Name:                     "send_verification",
		Description:              "Send the verification button in the configured channel.",
		DefaultMemberPermissions: &adminOnly,
		DMPermission:             &dmDisabled,
	},
	{
		Name:                     "clear_verification",
		Description:              "Clear a user's verification record.",
		DefaultMemberPermissions: &adminOnly,
		DMPermission:             &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "The user whose verification record should be cleared", Required: true},
		},
	},
	{
		Name:                     "set_moderation_log_channel",
		Description:              "Set the moderation log channel.",
		DefaultMemberPermissions: &adminOnly,
		DMPermission:             &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "The channel to log moderation actions", Required: true},
		},
	},
	{
		Name:                     "show_moderation_config",
		Description:              "Show the current moderation configuration for the server.",
		DefaultMemberPermissions: &modOnly,
		DMPermission:             &dmDisabled,
	},
	{
		Name:                     "ban",
		Description:              "Ban a member. Requires a reason.",
		DefaultMemberPermissions: &modOnly,
		DMPermission:             &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "The member to ban", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "The reason for the ban", Required: true},
		},
	},
	{
		Name:                     "kick",
		Description:              "Kick a member. Requires a reason.",
		DefaultMemberPermissions: &modOnly,
		DMPermission:             &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "The member to kick", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "The reason for the kick", Required: true},
		},
	},
	{
		Name:                     "warn",
		Description:              "Warn a member. Requires a reason. 3 warnings will result in an automatic ban.",
		DefaultMemberPermissions: &modOnly,
		DMPermission:             &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "The member to warn", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "The reason for the warning", Required: true},
		},
	},
	{
		Name:                     "warnings",
		Description:              "List all warnings for a member. Staff only.",
		DefaultMemberPermissions: &modOnly,
		DMPermission:             &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "The member to check warnings for", Required: true},
		},
	},
	{
		Name:                     "remove_warning",
		Description:              "Remove a warning from a member.",
		DefaultMemberPermissions: &modOnly,
		DMPermission:             &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "The member to remove the warning from", Required: true},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "warning_id", Description: "The ID of the warning to remove", Required: true},
		},
	},
	{
		Name:                     "unwarn",
		Description:              "Remove a warning by warning ID.",
		DefaultMemberPermissions: &modOnly,
		DMPermission:             &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "warning_id", Description: "The ID of the warning to remove", Required: true},
		},
	},
	{
		Name:                     "clearwarnings",
		Description:              "Clear all warnings for a member.",
		DefaultMemberPermissions: &modOnly,
		DMPermission:             &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "The member to clear warnings for", Required: true},
		},
	},
	{
		Name:                     "set_selfroles",
		Description:              "Configure a self-assignable role message for the server.",
		DefaultMemberPermissions: &adminOnly,
		DMPermission:             &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "message_name", Description: "A unique name for this self-role message", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "roles_and_labels", Description: "Role IDs and button labels as role_id:label pairs, separated by spaces", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "button_color", Description: "Button color (primary, secondary, success, danger)", Required: false},
			{Type: discordgo.ApplicationCommandOptionString, Name: "embed_title", Description: "The title of the embed message", Required: false},
			{Type: discordgo.ApplicationCommandOptionString, Name: "embed_description", Description: "The description of the embed message", Required: false},
		},
	},
	{
		Name:                     "remove_selfroles",
		Description:              "Remove a self-role configuration.",
		DefaultMemberPermissions: &adminOnly,
		DMPermission:             &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "message_name", Description: "The name of the self-role message to remove", Required: true},
		},
	},
	{
		Name:                     "show_selfroles_config",
		Description:              "Show the configuration for a self-role message.",
		DefaultMemberPermissions: &adminOnly,
		DMPermission:             &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "message_name", Description: "The name of the self-role message to show", Required: true},
		},
	},
	{
		Name:                     "list_selfroles",
		Description:              "List all self-role messages configured for this server.",
		DefaultMemberPermissions: &adminOnly,
		DMPermission:             &dmDisabled,
	},
	{
		Name:                     "send_selfroles",
		Description:              "Send a configured self-role message in the current channel.",
		DefaultMemberPermissions: &adminOnly,
		DMPermission:             &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "message_name", Description: "The name of the self-role message to send", Required: true},
		},
	},
}

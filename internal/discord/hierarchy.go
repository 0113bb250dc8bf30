package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/ravlin/guildwarden/internal/services"
)

// topRolePosition returns the highest role position a member holds. Members
// with no roles sit at the @everyone position (0 by convention).
func topRolePosition(guildRoles []*discordgo.Role, memberRoleIDs []string) int {
	top := 0
	for _, roleID := range memberRoleIDs {
		for _, r := range guildRoles {
			if r.ID == roleID && r.Position > top {
				top = r.Position
			}
		}
	}
	return top
}

// guildRoles returns the guild's role list, preferring the state cache and
// falling back to the API when the cache is cold or empty.
func (b *Bot) guildRoles(guildID string) ([]*discordgo.Role, error) {
	if g, err := b.session.State.Guild(guildID); err == nil && len(g.Roles) > 0 {
		return g.Roles, nil
	}
	roles, err := b.session.GuildRoles(guildID)
	if err != nil {
		return nil, fmt.Errorf("fetch roles for guild %s: %w", guildID, err)
	}
	return roles, nil
}

// snapshotHierarchy reads the per-request identity and rank information the
// moderation service needs: actor and target ranks, the bot's own rank, and
// guild ownership. It is read fresh for every request; ranks are never cached
// across interactions.
func (b *Bot) snapshotHierarchy(guildID string, actor *discordgo.Member, targetID string) (services.HierarchySnapshot, error) {
	var snap services.HierarchySnapshot

	guild, err := b.session.State.Guild(guildID)
	if err != nil || len(guild.Roles) == 0 {
		guild, err = b.session.Guild(guildID)
		if err != nil {
			return snap, fmt.Errorf("fetch guild %s: %w", guildID, err)
		}
	}

	target, err := b.session.GuildMember(guildID, targetID)
	if err != nil {
		return snap, fmt.Errorf("fetch member %s: %w", targetID, err)
	}
	bot, err := b.session.GuildMember(guildID, b.session.State.User.ID)
	if err != nil {
		return snap, fmt.Errorf("fetch bot member: %w", err)
	}

	snap.ActorID = parseSnowflake(actor.User.ID)
	snap.TargetID = parseSnowflake(targetID)
	snap.ActorTopRole = topRolePosition(guild.Roles, actor.Roles)
	snap.TargetTopRole = topRolePosition(guild.Roles, target.Roles)
	snap.BotTopRole = topRolePosition(guild.Roles, bot.Roles)
	snap.ActorIsOwner = guild.OwnerID == actor.User.ID
	return snap, nil
}

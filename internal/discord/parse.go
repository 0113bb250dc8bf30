package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// parseRolePairs parses the /set_selfroles role list, a space-separated
// sequence of role_id:label pairs. Labels may not contain spaces (Discord
// option values are a single string; this matches the command's help text).
func parseRolePairs(raw string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Fields(raw) {
		id, label, ok := strings.Cut(pair, ":")
		if !ok || id == "" || label == "" {
			return nil, fmt.Errorf("invalid pair %q, expected role_id:label", pair)
		}
		if _, err := strconv.ParseInt(id, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid role id %q", id)
		}
		out[id] = label
	}
	return out, nil
}

// parseSnowflake converts a Discord snowflake string to int64. Snowflakes
// from the gateway are always numeric; a failure here means a caller bug.
func parseSnowflake(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

// formatSnowflake renders an int64 snowflake back to its wire form.
func formatSnowflake(id int64) string {
	return strconv.FormatInt(id, 10)
}

// buttonStyle maps a stored style name to the discordgo button style.
// Unknown names fall back to primary; the service layer validates styles on
// write, so the fallback only covers rows predating validation.
func buttonStyle(name string) discordgo.ButtonStyle {
	switch name {
	case "secondary":
		return discordgo.SecondaryButton
	case "success":
		return discordgo.SuccessButton
	case "danger":
		return discordgo.DangerButton
	default:
		return discordgo.PrimaryButton
	}
}

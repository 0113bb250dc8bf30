// Package discord wires the bot's stores and services to the Discord
// gateway: slash commands, persistent message components, modals, and the
// best-effort notification paths.
//
// This file is the interactive control registry. Every component the bot
// ever sends carries a custom id derived from stable data (the control kind
// plus the role it acts on), so clicks arriving after a process restart
// resolve against the configuration stores instead of any in-memory state.
package discord

import "strings"

// Custom id scheme. A prefix names the control kind; the remainder, when
// present, is the payload the handler needs to act.
const (
	// verifyButtonID identifies the persistent "Verify" button.
	verifyButtonID = "verify:button"
	// verifyModalID identifies the birthdate modal submission.
	verifyModalID = "verify:modal"
	// selfRolePrefix prefixes self-role toggle buttons; the payload is the
	// role snowflake.
	selfRolePrefix = "selfrole:"
)

// Modal field ids for the birthdate form.
const (
	fieldDay   = "birthdate_day"
	fieldMonth = "birthdate_month"
	fieldYear  = "birthdate_year"
)

// selfRoleCustomID builds the toggle-button id for a role.
func selfRoleCustomID(roleID string) string {
	return selfRolePrefix + roleID
}

// parseSelfRoleCustomID extracts the role snowflake from a toggle-button id.
// It reports false for ids minted by other controls.
func parseSelfRoleCustomID(customID string) (string, bool) {
	if !strings.HasPrefix(customID, selfRolePrefix) {
		return "", false
	}
	roleID := strings.TrimPrefix(customID, selfRolePrefix)
	if roleID == "" {
		return "", false
	}
	return roleID, true
}

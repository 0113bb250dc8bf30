// Package policy contains the pure moderation and verification decision
// logic. Nothing in this package performs I/O: every function is total over
// its documented inputs, so callers never need to handle errors from it.
// Inputs such as warning counts are store-derived and never negative.
package policy

import "time"

// AutoBanThreshold is the warning count at which a member is banned
// automatically.
const AutoBanThreshold = 3

// MinimumAge is the age (in whole years) required to pass verification.
const MinimumAge = 18

// CanModerate reports whether an actor may take a moderation action against
// a target, based on role-hierarchy ranks. The guild owner may act on
// anyone; everyone else must strictly outrank the target. Self-targeting is
// rejected by the caller before ranks are ever compared.
func CanModerate(actorTopRole, targetTopRole int, actorIsOwner bool) bool {
	return actorIsOwner || actorTopRole > targetTopRole
}

// BotCanModerate reports whether the bot itself outranks the target. Actions
// the bot cannot perform must be refused up front rather than attempted and
// left to fail at the platform.
func BotCanModerate(botTopRole, targetTopRole int) bool {
	return botTopRole > targetTopRole
}

// ShouldAutoBan reports whether a warning count meets the auto-ban threshold.
// It is evaluated once, immediately after a successful add; historical counts
// are never re-evaluated.
func ShouldAutoBan(warningCount int64) bool {
	return warningCount >= AutoBanThreshold
}

// CrossedAutoBanThreshold reports whether an add moved the count from below
// the threshold to at or above it. This is the single transition that fires
// the auto-ban side effect; adds on top of an already-eligible count do not
// re-trigger it.
func CrossedAutoBanThreshold(countBefore, countAfter int64) bool {
	return !ShouldAutoBan(countBefore) && ShouldAutoBan(countAfter)
}

// AutoBanPrevented reports whether a removal or clear acted on a count that
// had already reached the threshold. The result is informational only, for
// log annotations; it never reverses a ban already executed.
func AutoBanPrevented(countBefore int64) bool {
	return countBefore >= AutoBanThreshold
}

// ToggleOp is the action a self-role click resolves to.
type ToggleOp int

const (
	// GrantRole means the member does not hold the role yet and it should be
	// added.
	GrantRole ToggleOp = iota
	// RevokeRole means the member already holds the role and it should be
	// removed.
	RevokeRole
)

// ToggleRole decides what a self-role click does, given the member's current
// role set. The role set must be read at invocation time, not from a cached
// snapshot: roles may have changed between control render and click.
func ToggleRole(currentRoles []string, roleID string) ToggleOp {
	for _, r := range currentRoles {
		if r == roleID {
			return RevokeRole
		}
	}
	return GrantRole
}

// Age returns the exact calendar-anniversary age at "today" for the given
// birthdate: the year difference, minus one if the anniversary has not yet
// occurred this year. Only the year, month, and day components participate.
func Age(birthdate, today time.Time) int {
	age := today.Year() - birthdate.Year()
	if today.Month() < birthdate.Month() ||
		(today.Month() == birthdate.Month() && today.Day() < birthdate.Day()) {
		age--
	}
	return age
}

// IsOfAge reports whether a birthdate satisfies the minimum verification age
// at "today". A member turning exactly MinimumAge today passes.
func IsOfAge(birthdate, today time.Time) bool {
	return Age(birthdate, today) >= MinimumAge
}

// Package metrics exposes Prometheus collectors for the bot's domain events.
// Label cardinality is kept bounded: interaction names come from the fixed
// command set, outcomes from small enums.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InteractionsTotal counts gateway interactions by kind (command,
	// component, modal) and name.
	InteractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_interactions_total",
			Help: "Total number of Discord interactions handled.",
		},
		[]string{"kind", "name"},
	)

	// VerificationsTotal counts verification attempts by outcome
	// (verified, underage, duplicate, invalid, error).
	VerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_verifications_total",
			Help: "Total number of verification attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// WarningsIssued counts warnings successfully appended to the ledger.
	WarningsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_warnings_issued_total",
			Help: "Total number of warnings issued.",
		},
	)

	// AutoBansTotal counts bans triggered by the warning threshold.
	AutoBansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_auto_bans_total",
			Help: "Total number of automatic bans executed.",
		},
	)

	// SelfRoleToggles counts self-role button clicks by resulting operation
	// (grant, revoke).
	SelfRoleToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_selfrole_toggles_total",
			Help: "Total number of self-role toggles by operation.",
		},
		[]string{"op"},
	)
)

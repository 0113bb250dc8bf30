package discord

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/ravlin/guildwarden/internal/domain"
)

func TestSortedRoleIDs(t *testing.T) {
	labels := map[string]string{"300": "c", "100": "a", "200": "b"}
	if got := sortedRoleIDs(labels); !reflect.DeepEqual(got, []string{"100", "200", "300"}) {
		t.Fatalf("unexpected order: %v", got)
	}
	if got := sortedRoleIDs(nil); len(got) != 0 {
		t.Fatalf("expected empty slice for nil map, got %v", got)
	}
}

func TestSelfRoleComponents_RowsOfFive(t *testing.T) {
	labels := make(map[string]string, 7)
	for i := 0; i < 7; i++ {
		labels[fmt.Sprintf("10%d", i)] = fmt.Sprintf("Role %d", i)
	}
	cfg := &domain.SelfRoleConfig{RoleLabels: labels, ButtonStyle: "danger"}

	rows := selfRoleComponents(cfg)
	if len(rows) != 2 {
		t.Fatalf("expected 2 action rows for 7 buttons, got %d", len(rows))
	}

	first, ok := rows[0].(discordgo.ActionsRow)
	if !ok || len(first.Components) != 5 {
		t.Fatalf("first row should hold 5 buttons, got %#v", rows[0])
	}
	second, ok := rows[1].(discordgo.ActionsRow)
	if !ok || len(second.Components) != 2 {
		t.Fatalf("second row should hold 2 buttons, got %#v", rows[1])
	}

	btn, ok := first.Components[0].(discordgo.Button)
	if !ok {
		t.Fatalf("expected button, got %#v", first.Components[0])
	}
	if btn.Style != discordgo.DangerButton {
		t.Fatalf("button style not applied: %v", btn.Style)
	}
	if btn.CustomID != selfRoleCustomID("100") || btn.Label != "Role 0" {
		t.Fatalf("unexpected first button: %+v", btn)
	}
}

func TestSelfRoleComponents_SingleRow(t *testing.T) {
	cfg := &domain.SelfRoleConfig{
		RoleLabels:  map[string]string{"1": "One", "2": "Two"},
		ButtonStyle: "primary",
	}
	rows := selfRoleComponents(cfg)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0].(discordgo.ActionsRow)
	if len(row.Components) != 2 {
		t.Fatalf("expected 2 buttons, got %d", len(row.Components))
	}
}

func TestFirstUnknownRole(t *testing.T) {
	guildRoles := []*discordgo.Role{{ID: "100"}, {ID: "200"}}

	if id, ok := firstUnknownRole(guildRoles, map[string]string{"100": "a", "200": "b"}); ok {
		t.Fatalf("all roles known, got unknown %q", id)
	}
	id, ok := firstUnknownRole(guildRoles, map[string]string{"100": "a", "999": "x", "300": "y"})
	if !ok || id != "300" {
		t.Fatalf("expected first unknown in stable order (300), got %q ok=%v", id, ok)
	}
	if _, ok := firstUnknownRole(nil, map[string]string{"100": "a"}); !ok {
		t.Fatalf("empty guild role list must reject every id")
	}
}

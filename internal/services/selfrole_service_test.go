package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ravlin/guildwarden/internal/domain"
	"github.com/ravlin/guildwarden/internal/policy"
)

func TestDefine_Validation(t *testing.T) {
	svc := &SelfRoleService{DB: newServiceDB(t, &domain.SelfRoleConfig{})}
	ctx := context.Background()
	labels := map[string]string{"100": "Red"}

	cases := []struct {
		name    string
		msgName string
		labels  map[string]string
		style   string
		want    error
	}{
		{"empty message name", "", labels, "primary", ErrEmptyMessageName},
		{"nil labels", "colors", nil, "primary", ErrNoRoles},
		{"empty labels", "colors", map[string]string{}, "primary", ErrNoRoles},
		{"unknown style", "colors", labels, "sparkly", ErrInvalidButtonStyle},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := svc.Define(ctx, 1, tc.msgName, tc.labels, tc.style, "", "")
			if cfg != nil || !errors.Is(err, tc.want) {
				t.Fatalf("Define = cfg=%v err=%v; want %v", cfg, err, tc.want)
			}
		})
	}
}

func TestDefine_AppliesDefaults(t *testing.T) {
	svc := &SelfRoleService{DB: newServiceDB(t, &domain.SelfRoleConfig{})}

	cfg, err := svc.Define(context.Background(), 1, "colors", map[string]string{"100": "Red"}, "", "", "")
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	if cfg.ButtonStyle != DefaultButtonStyle {
		t.Fatalf("style default not applied: %q", cfg.ButtonStyle)
	}
	if cfg.EmbedTitle != DefaultSelfRoleTitle || cfg.EmbedDescription != DefaultSelfRoleDescription {
		t.Fatalf("embed defaults not applied: %+v", cfg)
	}
}

func TestDefine_ReplacesExisting(t *testing.T) {
	svc := &SelfRoleService{DB: newServiceDB(t, &domain.SelfRoleConfig{})}
	ctx := context.Background()

	first, err := svc.Define(ctx, 1, "colors", map[string]string{"100": "Red"}, "primary", "A", "B")
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	second, err := svc.Define(ctx, 1, "colors", map[string]string{"200": "Blue"}, "danger", "C", "D")
	if err != nil {
		t.Fatalf("Define (replace): %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("replace must keep the same ID")
	}

	got, err := svc.Get(ctx, 1, "colors")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ButtonStyle != "danger" || got.RoleLabels["200"] != "Blue" || len(got.RoleLabels) != 1 {
		t.Fatalf("replace not persisted: %+v", got)
	}
}

func TestList_And_Remove(t *testing.T) {
	svc := &SelfRoleService{DB: newServiceDB(t, &domain.SelfRoleConfig{})}
	ctx := context.Background()

	for _, name := range []string{"colors", "games"} {
		if _, err := svc.Define(ctx, 1, name, map[string]string{"1": "x"}, "primary", "", ""); err != nil {
			t.Fatalf("Define %q: %v", name, err)
		}
	}

	got, err := svc.List(ctx, 1)
	if err != nil || len(got) != 2 {
		t.Fatalf("List: got=%v err=%v", got, err)
	}

	existed, err := svc.Remove(ctx, 1, "colors")
	if err != nil || !existed {
		t.Fatalf("Remove: existed=%v err=%v", existed, err)
	}
	existed, err = svc.Remove(ctx, 1, "colors")
	if err != nil || existed {
		t.Fatalf("second Remove must be an idempotent false, got existed=%v err=%v", existed, err)
	}
}

func TestToggle(t *testing.T) {
	svc := &SelfRoleService{}

	if op := svc.Toggle([]string{"1", "2"}, "2"); op != policy.RevokeRole {
		t.Fatalf("held role should revoke, got %v", op)
	}
	if op := svc.Toggle([]string{"1", "2"}, "3"); op != policy.GrantRole {
		t.Fatalf("missing role should grant, got %v", op)
	}
}

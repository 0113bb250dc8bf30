package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ravlin/guildwarden/internal/domain"
	"github.com/ravlin/guildwarden/internal/repo"
)

func TestAuthorize(t *testing.T) {
	svc := &ModerationService{}

	cases := []struct {
		name string
		snap HierarchySnapshot
		want error
	}{
		{
			"self target",
			HierarchySnapshot{ActorID: 1, TargetID: 1, ActorTopRole: 10, BotTopRole: 10},
			ErrSelfTarget,
		},
		{
			"bot outranked",
			HierarchySnapshot{ActorID: 1, TargetID: 2, ActorTopRole: 10, TargetTopRole: 5, BotTopRole: 5},
			ErrBotOutranked,
		},
		{
			"actor outranked",
			HierarchySnapshot{ActorID: 1, TargetID: 2, ActorTopRole: 5, TargetTopRole: 5, BotTopRole: 10},
			ErrPermissionDenied,
		},
		{
			"owner bypasses rank",
			HierarchySnapshot{ActorID: 1, TargetID: 2, ActorTopRole: 0, TargetTopRole: 5, BotTopRole: 10, ActorIsOwner: true},
			nil,
		},
		{
			"plain allow",
			HierarchySnapshot{ActorID: 1, TargetID: 2, ActorTopRole: 9, TargetTopRole: 5, BotTopRole: 10},
			nil,
		},
		{
			// Self-targeting wins even for the owner.
			"owner self target",
			HierarchySnapshot{ActorID: 1, TargetID: 1, ActorIsOwner: true, BotTopRole: 10},
			ErrSelfTarget,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Authorize(tc.snap); !errors.Is(err, tc.want) {
				t.Fatalf("Authorize = %v; want %v", err, tc.want)
			}
		})
	}
}

func TestWarn_EmptyReason(t *testing.T) {
	svc := &ModerationService{DB: newServiceDB(t, &domain.Warning{})}

	res, err := svc.Warn(context.Background(), 1, 2, 3, "   ")
	if res != nil || !errors.Is(err, ErrEmptyReason) {
		t.Fatalf("expected ErrEmptyReason, got res=%v err=%v", res, err)
	}
}

func TestWarn_AutoBanFiresExactlyOnce(t *testing.T) {
	svc := &ModerationService{DB: newServiceDB(t, &domain.Warning{})}
	ctx := context.Background()

	wantAutoBan := []bool{false, false, true, false}
	for i, want := range wantAutoBan {
		res, err := svc.Warn(ctx, 1, 2, 3, "reason")
		if err != nil {
			t.Fatalf("Warn #%d: %v", i+1, err)
		}
		if res.Count != int64(i+1) {
			t.Fatalf("Warn #%d count = %d; want %d", i+1, res.Count, i+1)
		}
		if res.AutoBan != want {
			t.Fatalf("Warn #%d AutoBan = %v; want %v", i+1, res.AutoBan, want)
		}
	}
}

func TestWarn_TrimsReason(t *testing.T) {
	svc := &ModerationService{DB: newServiceDB(t, &domain.Warning{})}

	res, err := svc.Warn(context.Background(), 1, 2, 3, "  spam  ")
	if err != nil {
		t.Fatalf("Warn: %v", err)
	}
	if res.Warning.Reason != "spam" {
		t.Fatalf("reason not trimmed: %q", res.Warning.Reason)
	}
}

func TestWarning_ScopeChecks(t *testing.T) {
	svc := &ModerationService{DB: newServiceDB(t, &domain.Warning{})}
	ctx := context.Background()

	res, err := svc.Warn(ctx, 1, 2, 3, "spam")
	if err != nil {
		t.Fatalf("Warn: %v", err)
	}

	if _, err := svc.Warning(ctx, 1, res.Warning.ID); err != nil {
		t.Fatalf("Warning in own guild: %v", err)
	}
	if _, err := svc.Warning(ctx, 77, res.Warning.ID); !errors.Is(err, ErrForeignWarning) {
		t.Fatalf("expected ErrForeignWarning, got %v", err)
	}
	if _, err := svc.Warning(ctx, 1, 99999); !errors.Is(err, ErrWarningNotFound) {
		t.Fatalf("expected ErrWarningNotFound, got %v", err)
	}
}

func TestRemoveWarning(t *testing.T) {
	svc := &ModerationService{DB: newServiceDB(t, &domain.Warning{})}
	ctx := context.Background()

	var last *WarnResult
	for i := 0; i < 3; i++ {
		var err error
		last, err = svc.Warn(ctx, 1, 2, 3, "spam")
		if err != nil {
			t.Fatalf("Warn: %v", err)
		}
	}

	t.Run("foreign guild", func(t *testing.T) {
		res, err := svc.RemoveWarning(ctx, 77, last.Warning.ID, nil)
		if res != nil || !errors.Is(err, ErrForeignWarning) {
			t.Fatalf("expected ErrForeignWarning, got res=%v err=%v", res, err)
		}
	})
	t.Run("user mismatch", func(t *testing.T) {
		wrongUser := int64(999)
		res, err := svc.RemoveWarning(ctx, 1, last.Warning.ID, &wrongUser)
		if res != nil || !errors.Is(err, ErrWarningUserMismatch) {
			t.Fatalf("expected ErrWarningUserMismatch, got res=%v err=%v", res, err)
		}
	})
	t.Run("missing id", func(t *testing.T) {
		res, err := svc.RemoveWarning(ctx, 1, 99999, nil)
		if res != nil || !errors.Is(err, ErrWarningNotFound) {
			t.Fatalf("expected ErrWarningNotFound, got res=%v err=%v", res, err)
		}
	})
	t.Run("success at threshold", func(t *testing.T) {
		user := int64(2)
		res, err := svc.RemoveWarning(ctx, 1, last.Warning.ID, &user)
		if err != nil {
			t.Fatalf("RemoveWarning: %v", err)
		}
		if res.Count != 2 || !res.AutoBanPrevented {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
	t.Run("success below threshold", func(t *testing.T) {
		ws, err := svc.Warnings(ctx, 1, 2)
		if err != nil || len(ws) != 2 {
			t.Fatalf("Warnings: ws=%v err=%v", ws, err)
		}
		res, err := svc.RemoveWarning(ctx, 1, ws[0].ID, nil)
		if err != nil {
			t.Fatalf("RemoveWarning: %v", err)
		}
		if res.Count != 1 || res.AutoBanPrevented {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestClearWarnings(t *testing.T) {
	svc := &ModerationService{DB: newServiceDB(t, &domain.Warning{})}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Warn(ctx, 1, 2, 3, "spam"); err != nil {
			t.Fatalf("Warn: %v", err)
		}
	}

	res, err := svc.ClearWarnings(ctx, 1, 2)
	if err != nil {
		t.Fatalf("ClearWarnings: %v", err)
	}
	if res.Removed != 3 || !res.AutoBanPrevented {
		t.Fatalf("unexpected result: %+v", res)
	}

	// Clearing an empty ledger is a zero result, not an error.
	res, err = svc.ClearWarnings(ctx, 1, 2)
	if err != nil {
		t.Fatalf("ClearWarnings (empty): %v", err)
	}
	if res.Removed != 0 || res.AutoBanPrevented {
		t.Fatalf("unexpected empty-ledger result: %+v", res)
	}
}

func TestSetLogChannel_And_Config(t *testing.T) {
	svc := &ModerationService{DB: newServiceDB(t, &domain.ModerationConfig{})}
	ctx := context.Background()

	if _, err := svc.Config(ctx, 1); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before configuration, got %v", err)
	}

	cfg, err := svc.SetLogChannel(ctx, 1, 500)
	if err != nil {
		t.Fatalf("SetLogChannel: %v", err)
	}
	if cfg.LogChannelID == nil || *cfg.LogChannelID != 500 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	got, err := svc.Config(ctx, 1)
	if err != nil || got.LogChannelID == nil || *got.LogChannelID != 500 {
		t.Fatalf("Config after set: got=%+v err=%v", got, err)
	}
}

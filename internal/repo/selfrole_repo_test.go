package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ravlin/guildwarden/internal/domain"
)

func newSelfRoleRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("selfrole_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestUpsertSelfRoleConfig_CreateThenReplace(t *testing.T) {
	db := newSelfRoleRepoDB(t, &domain.SelfRoleConfig{})
	ctx := context.Background()

	labels := map[string]string{"100": "Red", "200": "Blue"}
	created, err := UpsertSelfRoleConfig(ctx, db, 1, "colors", labels, "primary", "Pick a color", "Click a button")
	if err != nil {
		t.Fatalf("UpsertSelfRoleConfig (create): %v", err)
	}
	if created.ID == "" || created.GuildID != 1 || created.MessageName != "colors" {
		t.Fatalf("unexpected created config: %+v", created)
	}

	// Replace keeps identity, overwrites presentation.
	replaced, err := UpsertSelfRoleConfig(ctx, db, 1, "colors", map[string]string{"300": "Green"}, "success", "Colors", "")
	if err != nil {
		t.Fatalf("UpsertSelfRoleConfig (replace): %v", err)
	}
	if replaced.ID != created.ID {
		t.Fatalf("replace must preserve ID: %q vs %q", replaced.ID, created.ID)
	}
	if !replaced.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("replace must preserve CreatedAt")
	}

	got, err := GetSelfRoleConfig(ctx, db, 1, "colors")
	if err != nil {
		t.Fatalf("GetSelfRoleConfig: %v", err)
	}
	if got.ButtonStyle != "success" || !reflect.DeepEqual(got.RoleLabels, map[string]string{"300": "Green"}) {
		t.Fatalf("persisted row does not reflect replace: %+v", got)
	}
}

func TestGetSelfRoleConfig_NotFound(t *testing.T) {
	db := newSelfRoleRepoDB(t, &domain.SelfRoleConfig{})

	cfg, err := GetSelfRoleConfig(context.Background(), db, 1, "missing")
	if cfg != nil || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got cfg=%v err=%v", cfg, err)
	}
}

func TestListSelfRoleConfigs_OrderedByName_GuildScoped(t *testing.T) {
	db := newSelfRoleRepoDB(t, &domain.SelfRoleConfig{})
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := UpsertSelfRoleConfig(ctx, db, 1, name, map[string]string{"1": "x"}, "primary", "", ""); err != nil {
			t.Fatalf("seed %q: %v", name, err)
		}
	}
	if _, err := UpsertSelfRoleConfig(ctx, db, 2, "other-guild", map[string]string{"1": "x"}, "primary", "", ""); err != nil {
		t.Fatalf("seed other guild: %v", err)
	}

	got, err := ListSelfRoleConfigs(ctx, db, 1)
	if err != nil {
		t.Fatalf("ListSelfRoleConfigs: %v", err)
	}
	if len(got) != 3 || got[0].MessageName != "alpha" || got[1].MessageName != "mid" || got[2].MessageName != "zeta" {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestDeleteSelfRoleConfig_ReportsExistence(t *testing.T) {
	db := newSelfRoleRepoDB(t, &domain.SelfRoleConfig{})
	ctx := context.Background()

	if _, err := UpsertSelfRoleConfig(ctx, db, 1, "colors", map[string]string{"1": "x"}, "primary", "", ""); err != nil {
		t.Fatalf("seed: %v", err)
	}

	existed, err := DeleteSelfRoleConfig(ctx, db, 1, "colors")
	if err != nil || !existed {
		t.Fatalf("expected existed=true, got existed=%v err=%v", existed, err)
	}
	existed, err = DeleteSelfRoleConfig(ctx, db, 1, "colors")
	if err != nil || existed {
		t.Fatalf("second delete must be an idempotent false, got existed=%v err=%v", existed, err)
	}
}

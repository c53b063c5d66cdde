package cmd

import (
	"path/filepath"
	"testing"

	"train_station/database"
	"train_station/helper"
	"train_station/repository"

	"github.com/glebarez/sqlite"
)

func TestCreateSuperuser(t *testing.T) {
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "cmd.db") + "?_pragma=foreign_keys(1)"))
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { sqlDB.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	store := repository.New(db)

	if err := createSuperuser(t.Context(), store, "Root@Example.com", "first-pass"); err != nil {
		t.Fatal(err)
	}
	if err := createSuperuser(t.Context(), store, "root@example.com", "second-pass"); err != nil {
		t.Fatal(err)
	}

	user, err := store.GetUserByEmail(t.Context(), "root@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if !user.IsStaff || !user.IsActive {
		t.Errorf("superuser flags: %+v", user)
	}
	if !helper.CheckPasswordHash("second-pass", user.Password) {
		t.Error("password not replaced on promotion")
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "migrate", "createsuperuser"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered: %v", name, err)
		}
	}
	if rootCmd.PersistentFlags().Lookup("env-file") == nil {
		t.Error("--env-file flag missing")
	}
}

package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	m := NewMigrationManager(conn, Migrations)
	if err := m.RunMigrations(); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := m.RunMigrations(); err != nil {
		t.Fatalf("second run: %v", err)
	}

	applied, err := m.GetAppliedMigrations()
	if err != nil {
		t.Fatal(err)
	}
	if !applied[1] {
		t.Errorf("migration 1 not recorded: %v", applied)
	}

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM trip_carbon").Scan(&n); err != nil {
		t.Fatalf("trip_carbon table missing: %v", err)
	}
}

func TestLoadMigrationsSortsAndSkipsInvalid(t *testing.T) {
	fsys := fstest.MapFS{
		"010_late.sql":  {Data: []byte("SELECT 1;")},
		"002_early.sql": {Data: []byte("SELECT 1;")},
		"notes.txt":     {Data: []byte("ignored")},
		"bad_name.sql":  {Data: []byte("SELECT 1;")},
	}
	migrations, err := NewMigrationManager(nil, fsys).LoadMigrations()
	if err != nil {
		t.Fatal(err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 2 || migrations[1].Version != 10 {
		t.Errorf("unexpected order: %+v", migrations)
	}
	if migrations[0].Name != "002_early" {
		t.Errorf("unexpected name %q", migrations[0].Name)
	}
}

package core

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"districtportal/internal/infra/medium/postgres"
	"districtportal/internal/infra/medium/postgres/testutil"
	"districtportal/internal/medium"
)

func TestOpenMediumDrivers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cases := []struct {
		cfg  StorageConfig
		want medium.Driver
	}{
		{StorageConfig{Driver: "memory"}, medium.DriverMemory},
		{StorageConfig{Driver: "fs", FSRoot: filepath.Join(dir, "fs")}, medium.DriverFilesystem},
	}
	for _, tc := range cases {
		m, err := OpenMedium(ctx, tc.cfg)
		if err != nil {
			t.Fatalf("open %s: %v", tc.cfg.Driver, err)
		}
		if m.Driver() != tc.want {
			t.Fatalf("expected driver %s, got %s", tc.want, m.Driver())
		}
		_ = medium.Close(m)
	}
}

func TestOpenMediumDefaultsToSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.db")
	m, err := OpenMedium(context.Background(), StorageConfig{SQLitePath: path})
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	defer func() { _ = medium.Close(m) }()
	if m.Driver() != medium.DriverSQLite {
		t.Fatalf("expected sqlite default, got %s", m.Driver())
	}
}

func TestOpenMediumPostgresUsesOverride(t *testing.T) {
	db, _ := testutil.NewStubDB()
	restore := postgres.OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	svc, err := Open(context.Background(), StorageConfig{Driver: "postgres", PostgresDSN: "postgres://stub"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if svc.Medium().Driver() != medium.DriverPostgres {
		t.Fatalf("expected postgres medium")
	}
	created, err := svc.Announcements().Create(context.Background(), Announcement{Title: "Stub persisted"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	raw, found, err := svc.Medium().GetItem(context.Background(), "announcements_data")
	if err != nil || !found || raw == "" {
		t.Fatalf("expected persisted payload, found=%v err=%v", found, err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestOpenMediumErrors(t *testing.T) {
	ctx := context.Background()
	for _, cfg := range []StorageConfig{
		{Driver: "floppy"},
		{Driver: "s3"},
		{Driver: "mongo"},
	} {
		if _, err := OpenMedium(ctx, cfg); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
	if _, err := Open(ctx, StorageConfig{Driver: "floppy"}); err == nil {
		t.Fatalf("expected Open to propagate medium errors")
	}
}

package sqlitemigrate

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "migrate.db")
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestApplyMigrationsRunsOnce(t *testing.T) {
	migrationFS := fstest.MapFS{
		"0001_example.sql": &fstest.MapFile{Data: []byte(`
-- +migrate Up
CREATE TABLE example (id TEXT PRIMARY KEY);
-- +migrate Down
DROP TABLE example;
`)},
	}

	sqlDB := openTestDB(t)
	if err := ApplyMigrations(sqlDB, migrationFS); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	// Second application must be a no-op.
	if err := ApplyMigrations(sqlDB, migrationFS); err != nil {
		t.Fatalf("re-apply migrations: %v", err)
	}

	var count int
	if err := sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count applied migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 applied migration, got %d", count)
	}
}

func TestApplyMigrationsOrdersFiles(t *testing.T) {
	migrationFS := fstest.MapFS{
		"0002_insert.sql": &fstest.MapFile{Data: []byte(`
-- +migrate Up
INSERT INTO ordered (id) VALUES ('a');
`)},
		"0001_create.sql": &fstest.MapFile{Data: []byte(`
-- +migrate Up
CREATE TABLE ordered (id TEXT PRIMARY KEY);
`)},
	}

	sqlDB := openTestDB(t)
	if err := ApplyMigrations(sqlDB, migrationFS); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	var count int
	if err := sqlDB.QueryRow("SELECT COUNT(*) FROM ordered").Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestExtractUpMigration(t *testing.T) {
	content := `
-- +migrate Up
CREATE TABLE t (id TEXT);
-- +migrate Down
DROP TABLE t;
`
	up := ExtractUpMigration(content)
	if up == content {
		t.Fatal("expected up section only")
	}
	if got := ExtractUpMigration("CREATE TABLE t (id TEXT);"); got != "CREATE TABLE t (id TEXT);" {
		t.Fatalf("expected untagged content unchanged, got %q", got)
	}
}

package migration

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestReadDir_OrdersAndFilters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V2__add_jobs.sql", "CREATE TABLE jobs (id INT);")
	writeFile(t, dir, "V1__init.sql", "CREATE TABLE users (id INT);")
	writeFile(t, dir, "notes.txt", "not a migration")
	writeFile(t, dir, "V3_bad_separator.sql", "SELECT 1;")

	migs, err := readDir(dir)
	if err != nil {
		t.Fatalf("readDir: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[0].Name != "init" {
		t.Fatalf("expected V1 init first, got %+v", migs[0])
	}
	if migs[1].Version != 2 || migs[1].Name != "add_jobs" {
		t.Fatalf("expected V2 add_jobs second, got %+v", migs[1])
	}
	if migs[0].Checksum == "" || migs[0].Checksum == migs[1].Checksum {
		t.Fatalf("checksums must be present and content-derived")
	}
}

func TestReadDir_RejectsDuplicatesAndEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V1__a.sql", "SELECT 1;")
	writeFile(t, dir, "V1__b.sql", "SELECT 2;")
	if _, err := readDir(dir); err == nil {
		t.Fatalf("expected an error for duplicate versions")
	}

	dir = t.TempDir()
	writeFile(t, dir, "V1__empty.sql", "   \n")
	if _, err := readDir(dir); err == nil {
		t.Fatalf("expected an error for an empty migration")
	}
}

func TestReadDir_MissingDirectoryIsNotAnError(t *testing.T) {
	migs, err := readDir(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("missing dir: %v", err)
	}
	if len(migs) != 0 {
		t.Fatalf("expected no migrations, got %d", len(migs))
	}
}

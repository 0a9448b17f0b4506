package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadOrDefaultMissing(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Repositories) != 0 {
		t.Fatalf("expected no repositories, got %v", cfg.Repositories)
	}
	if cfg.StorageDir != DefaultStorageDir {
		t.Fatalf("expected default storage dir, got %s", cfg.StorageDir)
	}
	if cfg.ReportsDir != DefaultReportsDir {
		t.Fatalf("expected default reports dir, got %s", cfg.ReportsDir)
	}
}

func TestLoadDropsBlankEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `repositories:
  - acme/widgets
  - ""
  - acme/gadgets
storage_dir: mirror
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Repositories) != 2 {
		t.Fatalf("expected 2 repositories, got %v", cfg.Repositories)
	}
	if cfg.StorageDir != "mirror" {
		t.Fatalf("expected storage dir mirror, got %s", cfg.StorageDir)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("repositories: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestAddRepositories(t *testing.T) {
	cfg := &Config{Repositories: []string{"b/b", "a/a"}}
	cfg.AddRepositories("c/c", "a/a", "")

	want := []string{"a/a", "b/b", "c/c"}
	if len(cfg.Repositories) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.Repositories)
	}
	for i := range want {
		if cfg.Repositories[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, cfg.Repositories)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := &Config{Repositories: []string{"acme/widgets"}, StorageDir: "mirror"}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Repositories) != 1 || got.Repositories[0] != "acme/widgets" {
		t.Fatalf("unexpected repositories: %v", got.Repositories)
	}
	if got.StorageDir != "mirror" {
		t.Fatalf("unexpected storage dir: %s", got.StorageDir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# ghkeep configuration") {
		t.Fatal("saved config missing header comment")
	}
}

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "PORT", "DB_PATH", "LOG_PATH", "DEBUG", "IMPORT_MAX_BYTES")
	// no .env in the working directory is fine
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.DBPath != "vivero.db" || cfg.Debug || len(cfg.EnvFiles) != 0 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ImportMaxBytes != 5<<20 {
		t.Fatalf("import max bytes = %d", cfg.ImportMaxBytes)
	}
}

func TestLoadMissingExplicitEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadEnvFileAndOverride(t *testing.T) {
	clearEnv(t, "PORT", "DB_PATH", "DEBUG")
	env := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(env, []byte("DB_PATH=/tmp/from-file.db\nDEBUG=true\nPORT=7000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "9090")

	cfg, err := Load(env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("process env should win, got port %q", cfg.Port)
	}
	if cfg.DBPath != "/tmp/from-file.db" || !cfg.Debug || len(cfg.EnvFiles) != 1 {
		t.Fatalf(".env not applied: %+v", cfg)
	}
	// godotenv sets these on the process; clear them for other tests.
	os.Unsetenv("DB_PATH")
	os.Unsetenv("DEBUG")
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LISTEN_ADDR", "DATA_DIR", "LAYOUT_PATH", "INPUT_MODE", "DEBUG", "SEND_BUFFER"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// TestLoadFrom_Defaults verifies defaults apply without a file or environment.
func TestLoadFrom_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.ListenAddr != defaultListenAddr || cfg.InputMode != InputAuto || cfg.SendBuffer != defaultSendBuffer || cfg.Debug {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LayoutPath != filepath.Join(defaultDataDir, "layout.yaml") {
		t.Fatalf("unexpected layout path %q", cfg.LayoutPath)
	}
}

// TestLoadFrom_EnvFileAndOverrides verifies the .env file is read and the environment wins.
func TestLoadFrom_EnvFileAndOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	body := "# comment\nINPUT_MODE=touch\nDATA_DIR=/srv/pad\nDEBUG=true\nLISTEN_ADDR=127.0.0.1:9000\n"
	if err := os.WriteFile(envFile, []byte(body), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	t.Setenv("LISTEN_ADDR", "127.0.0.1:9100")

	cfg, err := LoadFrom(envFile)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.InputMode != InputTouch || !cfg.Debug || cfg.DataDir != "/srv/pad" {
		t.Fatalf("expected file values, got %+v", cfg)
	}
	if cfg.ListenAddr != "127.0.0.1:9100" {
		t.Fatalf("expected environment override, got %q", cfg.ListenAddr)
	}
	if cfg.LayoutPath != filepath.Join("/srv/pad", "layout.yaml") {
		t.Fatalf("expected layout under data dir, got %q", cfg.LayoutPath)
	}
}

// TestLoadFrom_ValidatesInput verifies invalid values are rejected.
func TestLoadFrom_ValidatesInput(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")

	t.Setenv("INPUT_MODE", "mouse")
	if _, err := LoadFrom(envFile); err == nil {
		t.Fatalf("expected INPUT_MODE error")
	}

	t.Setenv("INPUT_MODE", "pointer")
	t.Setenv("SEND_BUFFER", "0")
	if _, err := LoadFrom(envFile); err == nil {
		t.Fatalf("expected SEND_BUFFER error")
	}
}

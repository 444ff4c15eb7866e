package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/showcase/internal/errors"
	"github.com/vango-dev/showcase/pkg/router"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Name != DefaultName {
		t.Errorf("Name = %q, want %q", cfg.Name, DefaultName)
	}
	if cfg.Base != DefaultBase {
		t.Errorf("Base = %q, want %q", cfg.Base, DefaultBase)
	}
	if cfg.HistoryMode() != router.ModeWeb {
		t.Errorf("HistoryMode() = %q, want web", cfg.HistoryMode())
	}
	if cfg.Metrics.Namespace != DefaultName || cfg.Tracing.TracerName != DefaultName {
		t.Errorf("Metrics/Tracing defaults = %+v %+v", cfg.Metrics, cfg.Tracing)
	}
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("Level() = %v", cfg.Level())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	assertCode(t, err, "E141")

	configJSON := `{
  "name": "demo",
  "base": "/ui/",
  "history": "hash",
  "logLevel": "debug",
  "metrics": {"enabled": true}
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, JSONFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Name != "demo" || cfg.Base != "/ui/" {
		t.Errorf("Name/Base = %q %q", cfg.Name, cfg.Base)
	}
	if cfg.HistoryMode() != router.ModeHash {
		t.Errorf("HistoryMode() = %q", cfg.HistoryMode())
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v", cfg.Level())
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != "demo" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Path() != filepath.Join(tmpDir, JSONFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configTOML := `base = "/docs"
history = "memory"
log_level = "warn"

[tracing]
enabled = true
tracer_name = "docs"
`
	if err := os.WriteFile(filepath.Join(tmpDir, TOMLFileName), []byte(configTOML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Base != "/docs" || cfg.HistoryMode() != router.ModeMemory {
		t.Errorf("Base/History = %q %q", cfg.Base, cfg.History)
	}
	if cfg.Level() != slog.LevelWarn {
		t.Errorf("Level() = %v", cfg.Level())
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.TracerName != "docs" {
		t.Errorf("Tracing = %+v", cfg.Tracing)
	}
}

func TestLoadPrefersJSON(t *testing.T) {
	tmpDir := t.TempDir()
	os.WriteFile(filepath.Join(tmpDir, JSONFileName), []byte(`{"base": "/json"}`), 0644)
	os.WriteFile(filepath.Join(tmpDir, TOMLFileName), []byte(`base = "/toml"`), 0644)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Base != "/json" {
		t.Errorf("Base = %q, want /json", cfg.Base)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := LoadFile(filepath.Join(tmpDir, "missing.json"))
	assertCode(t, err, "E141")

	bad := filepath.Join(tmpDir, JSONFileName)
	os.WriteFile(bad, []byte(`{"base": `), 0644)
	_, err = LoadFile(bad)
	assertCode(t, err, "E120")

	badTOML := filepath.Join(tmpDir, TOMLFileName)
	os.WriteFile(badTOML, []byte(`base = `), 0644)
	_, err = LoadFile(badTOML)
	assertCode(t, err, "E120")

	yaml := filepath.Join(tmpDir, "showcase.yaml")
	os.WriteFile(yaml, []byte(`base: /`), 0644)
	_, err = LoadFile(yaml)
	assertCode(t, err, "E120")
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "/app/")
	t.Setenv(EnvHistory, "hash")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.Base != "/app/" || cfg.HistoryMode() != router.ModeHash || cfg.Level() != slog.LevelError {
		t.Errorf("cfg = %+v", cfg)
	}

	h := cfg.NewHistory()
	if h.Base() != "/app" || h.Mode() != router.ModeHash {
		t.Errorf("NewHistory() base=%q mode=%q", h.Base(), h.Mode())
	}
}

func TestFromEnvInvalid(t *testing.T) {
	t.Setenv(EnvHistory, "abstract")
	_, err := FromEnv()
	assertCode(t, err, "E121")
}

func TestValidate(t *testing.T) {
	cfg := New()
	cfg.LogLevel = "loud"
	err := cfg.Validate()
	assertCode(t, err, "E121")
	var se *errors.ShowcaseError
	if stderrors.As(err, &se) && !strings.Contains(se.Suggestion, "debug, info, warn or error") {
		t.Errorf("Suggestion = %q", se.Suggestion)
	}

	cfg = New()
	cfg.History = "HASH"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, mode names are case-insensitive", err)
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var se *errors.ShowcaseError
	if !stderrors.As(err, &se) {
		t.Fatalf("error = %v, want ShowcaseError %s", err, code)
	}
	if se.Code != code {
		t.Errorf("Code = %q, want %q", se.Code, code)
	}
}

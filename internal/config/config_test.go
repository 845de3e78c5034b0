package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoad_FileNotFound(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() returned error for missing file: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `self_app: dev.exergate
launchers:
  - gnome-shell
overlays:
  - notification-shade
debounce_millis: 250
block_terminal:
  - x-terminal-emulator
  - -e
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SelfApp != "dev.exergate" {
		t.Errorf("SelfApp = %q, want dev.exergate", cfg.SelfApp)
	}
	if !reflect.DeepEqual(cfg.Launchers, []string{"gnome-shell"}) {
		t.Errorf("Launchers = %v, want [gnome-shell]", cfg.Launchers)
	}
	if !reflect.DeepEqual(cfg.Overlays, []string{"notification-shade"}) {
		t.Errorf("Overlays = %v, want [notification-shade]", cfg.Overlays)
	}
	if cfg.Debounce() != 250*time.Millisecond {
		t.Errorf("Debounce() = %v, want 250ms", cfg.Debounce())
	}
	// Unset fields keep their defaults.
	if cfg.PollIntervalMillis != Default().PollIntervalMillis {
		t.Errorf("PollIntervalMillis = %d, want default %d", cfg.PollIntervalMillis, Default().PollIntervalMillis)
	}
	if !reflect.DeepEqual(cfg.BlockTerminal, []string{"x-terminal-emulator", "-e"}) {
		t.Errorf("BlockTerminal = %v, want wrapped terminal", cfg.BlockTerminal)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("self_app: [unterminated"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EXERGATE_SELF_APP", "env.exergate")
	t.Setenv("EXERGATE_OVERLAYS", "shade, quick-settings ,")
	t.Setenv("EXERGATE_DEBOUNCE_MS", "750")
	t.Setenv("EXERGATE_POLL_INTERVAL_MS", "bogus")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SelfApp != "env.exergate" {
		t.Errorf("SelfApp = %q, want env.exergate", cfg.SelfApp)
	}
	if !reflect.DeepEqual(cfg.Overlays, []string{"shade", "quick-settings"}) {
		t.Errorf("Overlays = %v, want trimmed list", cfg.Overlays)
	}
	if cfg.DebounceMillis != 750 {
		t.Errorf("DebounceMillis = %d, want 750", cfg.DebounceMillis)
	}
	// Unparseable numeric overrides are ignored.
	if cfg.PollIntervalMillis != Default().PollIntervalMillis {
		t.Errorf("PollIntervalMillis = %d, want default", cfg.PollIntervalMillis)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("EXERGATE_SELF_APP=dotenv.exergate\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// godotenv writes into the process environment.
	defer os.Unsetenv("EXERGATE_SELF_APP")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.SelfApp != "dotenv.exergate" {
		t.Errorf("SelfApp = %q, want dotenv.exergate", cfg.SelfApp)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := Default()
	want.SelfApp = "dev.exergate"
	want.Launchers = []string{"plasmashell"}

	if err := Save(dir, want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

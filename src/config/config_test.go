package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "config.json")

	cfg, err := LoadWithOptions(LoadOptions{ConfigPathOverride: path})
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("Expected APIURL %q, got %q", DefaultAPIURL, cfg.APIURL)
	}
	if cfg.APIKey != "" {
		t.Errorf("Expected empty APIKey, got %q", cfg.APIKey)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Expected Model %q, got %q", DefaultModel, cfg.Model)
	}
	if cfg.Prompt != DefaultPrompt {
		t.Errorf("Expected default prompt, got %q", cfg.Prompt)
	}
	if cfg.Path != path {
		t.Errorf("Expected Path %q, got %q", path, cfg.Path)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"api_url":"http://localhost:8080/v1","api_key":"sk-test","model":"m1","prompt":"Translate."}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWithOptions(LoadOptions{ConfigPathOverride: path})
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	want := Config{APIURL: "http://localhost:8080/v1", APIKey: "sk-test", Model: "m1", Prompt: "Translate.", Path: path}
	if *cfg != want {
		t.Errorf("Expected %+v, got %+v", want, *cfg)
	}
}

func TestLoadUsesEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.json")
	if err := os.WriteFile(path, []byte(`{"model":"from-env"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Model != "from-env" {
		t.Errorf("Expected Model 'from-env', got %q", cfg.Model)
	}
	if cfg.Path != path {
		t.Errorf("Expected Path %q, got %q", path, cfg.Path)
	}
}

func TestParsePerFieldDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Config
	}{
		{
			name: "empty object",
			in:   `{}`,
			want: Default(),
		},
		{
			name: "partial",
			in:   `{"model":"gpt"}`,
			want: Config{APIURL: DefaultAPIURL, Model: "gpt", Prompt: DefaultPrompt},
		},
		{
			name: "wrong types fall back per field",
			in:   `{"api_url":42,"api_key":"k","model":null,"prompt":["x"]}`,
			want: Config{APIURL: DefaultAPIURL, APIKey: "k", Model: DefaultModel, Prompt: DefaultPrompt},
		},
		{
			name: "explicit empty string is kept",
			in:   `{"prompt":""}`,
			want: Config{APIURL: DefaultAPIURL, Model: DefaultModel, Prompt: ""},
		},
		{
			name: "malformed document",
			in:   `{"api_url": "http://x"`,
			want: Default(),
		},
		{
			name: "not an object",
			in:   `["api_url"]`,
			want: Default(),
		},
		{
			name: "unknown fields ignored",
			in:   `{"api_url":"http://a/v1","extra":true}`,
			want: Config{APIURL: "http://a/v1", Model: DefaultModel, Prompt: DefaultPrompt},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse([]byte(tt.in))
			if got != tt.want {
				t.Errorf("Parse(%s) = %+v, expected %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := Default()
	cfg.APIKey = "secret"
	cfg.Path = path

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadWithOptions(LoadOptions{ConfigPathOverride: path})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != cfg {
		t.Errorf("Expected %+v after round trip, got %+v", cfg, *loaded)
	}
}

func TestEnsureFileDoesNotOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Default()
	cfg.Path = path

	created, err := cfg.EnsureFile()
	if err != nil {
		t.Fatalf("EnsureFile failed: %v", err)
	}
	if !created {
		t.Error("Expected file to be created")
	}

	// A broken file the user is editing must survive.
	if err := os.WriteFile(path, []byte(`{"model": `), 0o600); err != nil {
		t.Fatal(err)
	}
	created, err = cfg.EnsureFile()
	if err != nil {
		t.Fatalf("EnsureFile failed: %v", err)
	}
	if created {
		t.Error("Expected existing file to be left alone")
	}
	data, _ := os.ReadFile(path)
	if string(data) != `{"model": ` {
		t.Errorf("File was overwritten: %q", data)
	}
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("HOTKEY", "Ctrl+Alt+T")
	t.Setenv("HOTKEY_BACKEND", "HOOK")
	t.Setenv("CHORD_MODIFIER", "command")
	t.Setenv("CAPTURE_COPY_DELAY", "250ms")
	t.Setenv("ENABLE_FILE_LOGGING", "true")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	if s.Hotkey != "Ctrl+Alt+T" {
		t.Errorf("Expected Hotkey 'Ctrl+Alt+T', got %q", s.Hotkey)
	}
	if s.HotkeyBackend != HotkeyBackendHook {
		t.Errorf("Expected hook backend, got %q", s.HotkeyBackend)
	}
	if s.ChordModifier != ChordModifierCmd {
		t.Errorf("Expected cmd chord modifier, got %q", s.ChordModifier)
	}
	if s.CaptureCopyDelay != 250*time.Millisecond {
		t.Errorf("Expected CaptureCopyDelay 250ms, got %v", s.CaptureCopyDelay)
	}
	if s.CaptureSettleDelay != 50*time.Millisecond {
		t.Errorf("Expected CaptureSettleDelay 50ms, got %v", s.CaptureSettleDelay)
	}
	if !s.EnableFileLogging {
		t.Error("Expected EnableFileLogging to be true")
	}
}

func TestLoadSettingsInvalidFallsBack(t *testing.T) {
	t.Setenv("PASTE_DELAY", "soon")

	s, err := LoadSettings()
	if err == nil {
		t.Fatal("Expected parse error for invalid duration")
	}
	if s == nil {
		t.Fatal("Expected default settings alongside the error")
	}
	if s.PasteDelay != 50*time.Millisecond {
		t.Errorf("Expected default PasteDelay 50ms, got %v", s.PasteDelay)
	}
	if s.Hotkey != "Ctrl+Shift+Q" {
		t.Errorf("Expected default hotkey, got %q", s.Hotkey)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.HotkeyBackend != HotkeyBackendRegister {
		t.Errorf("Expected register backend, got %q", s.HotkeyBackend)
	}
	if s.HTTPTimeout != 0 {
		t.Errorf("Expected no HTTP timeout by default, got %v", s.HTTPTimeout)
	}
	if s.SingleInstancePort != 49600 {
		t.Errorf("Expected port 49600, got %d", s.SingleInstancePort)
	}
}

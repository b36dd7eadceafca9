package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	HotkeyBackendRegister = "register"
	HotkeyBackendHook     = "hook"

	ChordModifierCtrl = "ctrl"
	ChordModifierCmd  = "cmd"

	EnvFileEnvVar = "TRANSLATE_TOOL_ENV"
)

// Settings are process-level knobs read from the environment (and an optional
// .env file). They never travel to the translation endpoint.
type Settings struct {
	Hotkey        string `env:"HOTKEY" envDefault:"Ctrl+Shift+Q"`
	HotkeyBackend string `env:"HOTKEY_BACKEND" envDefault:"register"`
	ChordModifier string `env:"CHORD_MODIFIER" envDefault:"ctrl"`

	CaptureSettleDelay time.Duration `env:"CAPTURE_SETTLE_DELAY" envDefault:"50ms"`
	CaptureCopyDelay   time.Duration `env:"CAPTURE_COPY_DELAY" envDefault:"100ms"`
	PasteDelay         time.Duration `env:"PASTE_DELAY" envDefault:"50ms"`
	HTTPTimeout        time.Duration `env:"HTTP_TIMEOUT" envDefault:"0s"`

	EnableFileLogging bool   `env:"ENABLE_FILE_LOGGING" envDefault:"false"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile           string `env:"LOG_FILE" envDefault:"translate_tool.log"`

	SingleInstancePort int `env:"SINGLEINSTANCE_PORT" envDefault:"49600"`

	// EnvPath is the .env file that was applied, if any.
	EnvPath string
}

// LoadSettings applies the .env file (if one is found) and parses the
// environment. On a malformed value it returns the defaults together with the
// parse error so the caller can log it and keep running.
func LoadSettings() (*Settings, error) {
	envPath := resolveEnvPath()
	if envPath != "" {
		_ = godotenv.Load(envPath)
	}

	s := &Settings{}
	if err := env.Parse(s); err != nil {
		d := DefaultSettings()
		d.EnvPath = envPath
		return d, err
	}
	s.normalize()
	s.EnvPath = envPath
	return s, nil
}

// DefaultSettings returns the settings with every field at its envDefault.
func DefaultSettings() *Settings {
	s := &Settings{}
	_ = env.Parse(s, env.Options{Environment: map[string]string{}})
	return s
}

func (s *Settings) normalize() {
	switch strings.ToLower(strings.TrimSpace(s.HotkeyBackend)) {
	case HotkeyBackendHook:
		s.HotkeyBackend = HotkeyBackendHook
	default:
		s.HotkeyBackend = HotkeyBackendRegister
	}

	switch strings.ToLower(strings.TrimSpace(s.ChordModifier)) {
	case "cmd", "command", "meta", "super", "win":
		s.ChordModifier = ChordModifierCmd
	default:
		s.ChordModifier = ChordModifierCtrl
	}

	if strings.TrimSpace(s.Hotkey) == "" {
		s.Hotkey = "Ctrl+Shift+Q"
	}
	if s.CaptureSettleDelay < 0 {
		s.CaptureSettleDelay = 0
	}
	if s.CaptureCopyDelay < 0 {
		s.CaptureCopyDelay = 0
	}
	if s.PasteDelay < 0 {
		s.PasteDelay = 0
	}
	if s.HTTPTimeout < 0 {
		s.HTTPTimeout = 0
	}
	if s.SingleInstancePort < 1024 || s.SingleInstancePort > 65535 {
		s.SingleInstancePort = 49600
	}
}

// resolveEnvPath looks for .env next to the executable first, then at the
// path named by TRANSLATE_TOOL_ENV.
func resolveEnvPath() string {
	if execPath, err := os.Executable(); err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}

	if alt := os.Getenv(EnvFileEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

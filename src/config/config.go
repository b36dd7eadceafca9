package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	DefaultAPIURL = "http://llm-api.fixstars.com/v1"
	DefaultModel  = "latest-chat"
	DefaultPrompt = "If the text is in English, translate to Japanese. If in Japanese, translate to English.\nOnly output the translation."

	ConfigPathEnvVar = "TRANSLATE_TOOL_CONFIG"

	appDirName     = "translate_tool"
	configFileName = "config.json"
)

type LoadOptions struct {
	ConfigPathOverride string
}

// Config is the translation endpoint configuration. It is read once at startup
// and never mutated afterwards; edits take effect on the next start.
type Config struct {
	APIURL string `json:"api_url"`
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
	Prompt string `json:"prompt"`

	// Path is where the config was loaded from (or would be saved to).
	Path string `json:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL: DefaultAPIURL,
		APIKey: "",
		Model:  DefaultModel,
		Prompt: DefaultPrompt,
	}
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions resolves the config path and reads it. A missing or unreadable
// file yields defaults; only a failure to resolve a path at all is an error.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	path, err := ResolvePath(opts)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if data, err := os.ReadFile(path); err == nil {
		cfg = Parse(data)
	}
	cfg.Path = path
	return &cfg, nil
}

// Parse decodes a config document. Fields that are absent or not JSON strings
// keep their default; a document that is not a JSON object yields all defaults.
func Parse(data []byte) Config {
	cfg := Default()
	if !gjson.ValidBytes(data) {
		return cfg
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return cfg
	}

	setString(root, "api_url", &cfg.APIURL)
	setString(root, "api_key", &cfg.APIKey)
	setString(root, "model", &cfg.Model)
	setString(root, "prompt", &cfg.Prompt)
	return cfg
}

func setString(root gjson.Result, key string, dst *string) {
	if v := root.Get(key); v.Type == gjson.String {
		*dst = v.String()
	}
}

// ResolvePath returns the config file location: override, then
// TRANSLATE_TOOL_CONFIG, then <user config dir>/translate_tool/config.json.
func ResolvePath(opts LoadOptions) (string, error) {
	if p := strings.TrimSpace(opts.ConfigPathOverride); p != "" {
		return p, nil
	}
	if p := strings.TrimSpace(os.Getenv(ConfigPathEnvVar)); p != "" {
		return p, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}
	return filepath.Join(dir, appDirName, configFileName), nil
}

// Save writes cfg as indented JSON to cfg.Path, creating the directory if needed.
func (c Config) Save() error {
	if c.Path == "" {
		return errors.New("config path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(c.Path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// EnsureFile saves c only when nothing exists at c.Path yet, so a file the user
// is still fixing is never overwritten. It reports whether a file was written.
func (c Config) EnsureFile() (bool, error) {
	if c.Path == "" {
		return false, errors.New("config path is empty")
	}
	if _, err := os.Stat(c.Path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config: %w", err)
	}
	if err := c.Save(); err != nil {
		return false, err
	}
	return true, nil
}

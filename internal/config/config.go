// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/morganforge/ownertag/internal/tag"
	"github.com/morganforge/ownertag/internal/util"
)

// CurrentVersion is the config file format version written by Save.
const CurrentVersion = "1"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete ownertag configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Display  DisplayConfig  `toml:"display" json:"display"`
	Snapshot SnapshotConfig `toml:"snapshot" json:"snapshot"`
	UI       UIConfig       `toml:"ui" json:"ui"`
	Log      LogConfig      `toml:"log" json:"log"`
}

// DisplayConfig holds the badge toggles.
type DisplayConfig struct {
	// Messages shows badges in message headers.
	Messages bool `toml:"messages" json:"messages"`
	// Members shows badges in the member list.
	Members bool `toml:"members" json:"members"`
}

// SnapshotConfig locates the host snapshot.
type SnapshotConfig struct {
	Path string `toml:"path" json:"path"`
	// Format is "json", "sqlite" or empty to detect from the extension.
	Format     string `toml:"format" json:"format"`
	Watch      bool   `toml:"watch" json:"watch"`
	DebounceMs int    `toml:"debounce_ms" json:"debounce_ms"`
}

// UIConfig contains viewer settings.
type UIConfig struct {
	Theme           string `toml:"theme" json:"theme"`
	Markdown        bool   `toml:"markdown" json:"markdown"`
	MemberListWidth int    `toml:"member_list_width" json:"member_list_width"`
	// Locale orders the member list (BCP 47, e.g. "en", "sv").
	Locale string `toml:"locale" json:"locale"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `toml:"level" json:"level"`
	Format string `toml:"format" json:"format"`
	// File is the viewer's log file. Empty means ownertag.log in the config
	// directory.
	File string `toml:"file" json:"file"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	snapshotPath := "snapshot.json"
	if dir, err := ConfigDir(); err == nil {
		snapshotPath = filepath.Join(dir, "snapshot.json")
	}

	return &Config{
		Version: CurrentVersion,
		Display: DisplayConfig{
			Messages: true,
			Members:  true,
		},
		Snapshot: SnapshotConfig{
			Path:       snapshotPath,
			Watch:      true,
			DebounceMs: 250,
		},
		UI: UIConfig{
			Theme:           "auto",
			Markdown:        true,
			MemberListWidth: 28,
			Locale:          "und",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DisplaySettings returns the badge toggles.
func (c *Config) DisplaySettings() tag.Settings {
	return tag.Settings{
		DisplayMessages: c.Display.Messages,
		DisplayMembers:  c.Display.Members,
	}
}

// SetDisplaySettings stores the badge toggles.
func (c *Config) SetDisplaySettings(s tag.Settings) {
	c.Display.Messages = s.DisplayMessages
	c.Display.Members = s.DisplayMembers
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the ownertag configuration directory. OWNERTAG_HOME
// overrides the default ~/.ownertag.
func ConfigDir() (string, error) {
	if dir := os.Getenv("OWNERTAG_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".ownertag"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// ResolvePath returns the config file Load reads: config.toml when it exists,
// else an existing config.json, else the config.toml that Save would create.
func ResolvePath() (string, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ResolvePath()
	if err != nil {
		cfg := Default()
		if err := cfg.finish(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadTOML decodes a TOML file over cfg. Keys missing from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file with full
// validation. A missing file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readFile decodes path over the defaults. Environment overrides are not
// applied.
func readFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if strings.HasSuffix(path, ".json") {
			if err := LoadJSON(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
			}
		} else {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
			}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) finish() error {
	c.ApplyEnvOverrides()
	c.Migrate()
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML atomically writes the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# ownertag configuration file\n")
	buf.WriteString("# Generated by ownertag - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON atomically writes the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Update applies fn to the configuration stored at path and writes it back.
// Only what fn changes reaches the file: environment overrides and any
// in-memory edits to a loaded Config are not persisted.
func Update(path string, fn func(*Config) error) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	raw := cfg.Snapshot.Path
	cfg.Migrate()
	cfg.SetDefaults()
	normalized := cfg.Snapshot.Path
	if err := fn(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// Keep a hand-written "~/" path as written.
	if raw != "" && cfg.Snapshot.Path == normalized {
		cfg.Snapshot.Path = raw
	}
	if err := SaveTo(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes cfg to path, choosing the format from the extension.
func SaveTo(cfg *Config, path string) error {
	if strings.HasSuffix(path, ".json") {
		return SaveJSON(cfg, path)
	}
	return SaveTOML(cfg, path)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Snapshot.Path) == "" {
		errs = append(errs, ValidationError{
			Field:   "snapshot.path",
			Message: "must not be empty",
		})
	}

	switch c.Snapshot.Format {
	case "", "json", "sqlite":
	default:
		errs = append(errs, ValidationError{
			Field:   "snapshot.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: json, sqlite", c.Snapshot.Format),
		})
	}

	if c.Snapshot.DebounceMs < 0 || c.Snapshot.DebounceMs > 60000 {
		errs = append(errs, ValidationError{
			Field:   "snapshot.debounce_ms",
			Message: fmt.Sprintf("must be between 0 and 60000, got %d", c.Snapshot.DebounceMs),
		})
	}

	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[c.UI.Theme] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}

	if c.UI.MemberListWidth != 0 && (c.UI.MemberListWidth < 12 || c.UI.MemberListWidth > 80) {
		errs = append(errs, ValidationError{
			Field:   "ui.member_list_width",
			Message: fmt.Sprintf("must be 0 (hidden) or between 12 and 80, got %d", c.UI.MemberListWidth),
		})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: text, json", c.Log.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills empty string settings with their defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Snapshot.Path == "" {
		c.Snapshot.Path = defaults.Snapshot.Path
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.Locale == "" {
		c.UI.Locale = defaults.UI.Locale
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
}

// Migrate normalizes values written by hand or by older versions.
func (c *Config) Migrate() {
	c.Snapshot.Format = strings.ToLower(strings.TrimSpace(c.Snapshot.Format))
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))

	switch c.Snapshot.Format {
	case "db", "sqlite3":
		c.Snapshot.Format = "sqlite"
	}
	if c.Log.Level == "warning" {
		c.Log.Level = "warn"
	}
	if strings.HasPrefix(c.Snapshot.Path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			c.Snapshot.Path = filepath.Join(home, c.Snapshot.Path[2:])
		}
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - OWNERTAG_SNAPSHOT: overrides snapshot.path
//   - OWNERTAG_SNAPSHOT_FORMAT: overrides snapshot.format
//   - OWNERTAG_WATCH: "1"/"true" or "0"/"false"
//   - OWNERTAG_DISPLAY_MESSAGES, OWNERTAG_DISPLAY_MEMBERS: badge toggles
//   - OWNERTAG_THEME: overrides ui.theme
//   - OWNERTAG_LOG_LEVEL, OWNERTAG_LOG_FORMAT, OWNERTAG_LOG_FILE
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("OWNERTAG_SNAPSHOT"); v != "" {
		c.Snapshot.Path = v
	}
	if v := os.Getenv("OWNERTAG_SNAPSHOT_FORMAT"); v != "" {
		c.Snapshot.Format = v
	}
	envBool("OWNERTAG_WATCH", &c.Snapshot.Watch)
	envBool("OWNERTAG_DISPLAY_MESSAGES", &c.Display.Messages)
	envBool("OWNERTAG_DISPLAY_MEMBERS", &c.Display.Members)
	if v := os.Getenv("OWNERTAG_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("OWNERTAG_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("OWNERTAG_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("OWNERTAG_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

func envBool(name string, dst *bool) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*dst = parseBool(v)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "display.members").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "display.members").
// String values are converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			field.SetBool(parseBool(strVal))
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"display.messages",
		"display.members",
		"snapshot.path",
		"snapshot.format",
		"snapshot.watch",
		"snapshot.debounce_ms",
		"ui.theme",
		"ui.markdown",
		"ui.member_list_width",
		"ui.locale",
		"log.level",
		"log.format",
		"log.file",
	}
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the configuration as indented JSON for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

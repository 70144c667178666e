// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for careerdesk.
//
// Configuration file locations (in order of precedence):
//   - ~/.careerdesk/config.toml
//   - ~/.careerdesk/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/jeranaias/careerdesk-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// CurrentVersion is written into freshly generated config files.
const CurrentVersion = "1"

// StageCount is the number of pipeline stages the animation drives.
const StageCount = 5

// Config represents the complete careerdesk configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	API       APIConfig       `toml:"api" json:"api"`
	Animation AnimationConfig `toml:"animation" json:"animation"`
	UI        UIConfig        `toml:"ui" json:"ui"`
	Log       LogConfig       `toml:"log" json:"log"`
	Telemetry TelemetryConfig `toml:"telemetry" json:"telemetry"`
	Stub      StubConfig      `toml:"stub" json:"stub"`
}

// APIConfig locates the evaluation service.
type APIConfig struct {
	// BaseURL is the service root; paths like /api/message are appended.
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs bounds every request. Zero means the default.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// AnimationConfig drives the simulated pipeline progress.
type AnimationConfig struct {
	// StageDelaysMs[i] is when stage i becomes active, relative to submit.
	StageDelaysMs []int `toml:"stage_delays_ms" json:"stage_delays_ms"`
	// StageDoneDelaysMs[i] is when stage i is marked done.
	StageDoneDelaysMs []int `toml:"stage_done_delays_ms" json:"stage_done_delays_ms"`
	GaugeDelayMs      int   `toml:"gauge_delay_ms" json:"gauge_delay_ms"`
	BarDelayMs        int   `toml:"bar_delay_ms" json:"bar_delay_ms"`
}

// UIConfig holds presentation preferences.
type UIConfig struct {
	Theme         string `toml:"theme" json:"theme"` // auto, dark, light
	AgentName     string `toml:"agent_name" json:"agent_name"`
	SnippetLength int    `toml:"snippet_length" json:"snippet_length"`
	ThreadHeight  int    `toml:"thread_height" json:"thread_height"`
	ExportDir     string `toml:"export_dir" json:"export_dir"`
}

// LogConfig configures the diagnostic log.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	// File defaults to ~/.careerdesk/careerdesk.log when empty.
	File string `toml:"file" json:"file"`
}

// TelemetryConfig configures request tracing.
type TelemetryConfig struct {
	Enabled bool `toml:"enabled" json:"enabled"`
	// File defaults to ~/.careerdesk/traces.jsonl when empty.
	File string `toml:"file" json:"file"`
}

// StubConfig configures the local stub evaluation service.
type StubConfig struct {
	Addr           string  `toml:"addr" json:"addr"`
	RateLimitRPS   float64 `toml:"rate_limit_rps" json:"rate_limit_rps"`
	RateLimitBurst int     `toml:"rate_limit_burst" json:"rate_limit_burst"`
}

// Default returns a new Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		API: APIConfig{
			BaseURL:     "http://127.0.0.1:8000",
			TimeoutSecs: 90,
		},
		Animation: AnimationConfig{
			StageDelaysMs:     []int{300, 1500, 3000, 5000, 7000},
			StageDoneDelaysMs: []int{1400, 2900, 4900, 6900, 9000},
			GaugeDelayMs:      100,
			BarDelayMs:        200,
		},
		UI: UIConfig{
			Theme:         "auto",
			AgentName:     "Career Agent",
			SnippetLength: 80,
			ThreadHeight:  12,
			ExportDir:     ".",
		},
		Log: LogConfig{
			Level: "info",
		},
		Stub: StubConfig{
			Addr:           "127.0.0.1:8000",
			RateLimitRPS:   5,
			RateLimitBurst: 10,
		},
	}
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// ActivateOffsets returns the per-stage activation offsets.
func (a AnimationConfig) ActivateOffsets() []time.Duration {
	return millis(a.StageDelaysMs)
}

// CompleteOffsets returns the per-stage completion offsets.
func (a AnimationConfig) CompleteOffsets() []time.Duration {
	return millis(a.StageDoneDelaysMs)
}

// GaugeDelay returns how long the gauge waits before drawing its arc.
func (a AnimationConfig) GaugeDelay() time.Duration {
	return time.Duration(a.GaugeDelayMs) * time.Millisecond
}

// BarDelay returns how long score bars wait before filling.
func (a AnimationConfig) BarDelay() time.Duration {
	return time.Duration(a.BarDelayMs) * time.Millisecond
}

func millis(ms []int) []time.Duration {
	out := make([]time.Duration, len(ms))
	for i, v := range ms {
		out[i] = time.Duration(v) * time.Millisecond
	}
	return out
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the careerdesk configuration directory.
// CAREERDESK_HOME overrides the default of ~/.careerdesk.
func ConfigDir() (string, error) {
	if dir := os.Getenv("CAREERDESK_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".careerdesk"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	return inConfigDir("config.toml")
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	return inConfigDir("config.json")
}

// SendHistoryPath returns the line-editing history file used by `send`.
func SendHistoryPath() (string, error) {
	return inConfigDir("send_history")
}

// LogFilePath resolves the diagnostic log location.
func (c *Config) LogFilePath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	return inConfigDir("careerdesk.log")
}

// TelemetryFilePath resolves the trace output location.
func (c *Config) TelemetryFilePath() (string, error) {
	if c.Telemetry.File != "" {
		return c.Telemetry.File, nil
	}
	return inConfigDir("traces.jsonl")
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

func inConfigDir(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ./.env)
// into the process environment. Variables that are already set win.
// Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			return LoadFromPath(tomlPath)
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			return LoadFromPath(jsonPath)
		}
	}

	return finish(Default())
}

// LoadFromPath loads configuration from a specific file. The format is
// chosen by extension (.json, anything else is TOML).
//
// A file that fails to decode yields the defaults together with the decode
// error so callers can warn and carry on.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var loadErr error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		loadErr = LoadJSON(cfg, path)
	} else {
		loadErr = LoadTOML(cfg, path)
	}
	if loadErr != nil {
		cfg, err := finish(Default())
		if err != nil {
			return nil, err
		}
		return cfg, loadErr
	}
	return finish(cfg)
}

// LoadTOML decodes a TOML file over cfg.
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

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
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

// SaveTOML writes the configuration as TOML with a short header.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# careerdesk configuration file")
	fmt.Fprintln(&buf, "# Generated by careerdesk - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes the configuration as indented JSON.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
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
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// API
	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		add("api.base_url", "invalid URL '%s', must be absolute (e.g. http://127.0.0.1:8000)", c.API.BaseURL)
	} else if u.Scheme != "http" && u.Scheme != "https" {
		add("api.base_url", "unsupported scheme '%s', must be http or https", u.Scheme)
	}
	if c.API.TimeoutSecs < 1 || c.API.TimeoutSecs > 3600 {
		add("api.timeout_secs", "must be between 1 and 3600, got %d", c.API.TimeoutSecs)
	}

	// Animation
	a := c.Animation
	if len(a.StageDelaysMs) != StageCount {
		add("animation.stage_delays_ms", "must list %d offsets, got %d", StageCount, len(a.StageDelaysMs))
	}
	if len(a.StageDoneDelaysMs) != StageCount {
		add("animation.stage_done_delays_ms", "must list %d offsets, got %d", StageCount, len(a.StageDoneDelaysMs))
	}
	if len(a.StageDelaysMs) == StageCount && len(a.StageDoneDelaysMs) == StageCount {
		for i := 0; i < StageCount; i++ {
			if a.StageDelaysMs[i] < 0 || a.StageDoneDelaysMs[i] < 0 {
				add("animation", "stage %d has a negative offset", i+1)
				continue
			}
			if a.StageDoneDelaysMs[i] < a.StageDelaysMs[i] {
				add("animation", "stage %d completes (%dms) before it activates (%dms)",
					i+1, a.StageDoneDelaysMs[i], a.StageDelaysMs[i])
			}
		}
	}
	if a.GaugeDelayMs < 0 {
		add("animation.gauge_delay_ms", "must not be negative")
	}
	if a.BarDelayMs < 0 {
		add("animation.bar_delay_ms", "must not be negative")
	}

	// UI
	switch strings.ToLower(c.UI.Theme) {
	case "auto", "dark", "light":
	default:
		add("ui.theme", "invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme)
	}
	if c.UI.SnippetLength < 10 || c.UI.SnippetLength > 1000 {
		add("ui.snippet_length", "must be between 10 and 1000, got %d", c.UI.SnippetLength)
	}
	if c.UI.ThreadHeight < 3 || c.UI.ThreadHeight > 200 {
		add("ui.thread_height", "must be between 3 and 200, got %d", c.UI.ThreadHeight)
	}

	// Log
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		add("log.level", "invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level)
	}

	// Stub
	if c.Stub.RateLimitRPS <= 0 {
		add("stub.rate_limit_rps", "must be positive")
	}
	if c.Stub.RateLimitBurst < 1 {
		add("stub.rate_limit_burst", "must be at least 1")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values left by partial config files.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.TimeoutSecs == 0 {
		c.API.TimeoutSecs = d.API.TimeoutSecs
	}
	if len(c.Animation.StageDelaysMs) == 0 {
		c.Animation.StageDelaysMs = d.Animation.StageDelaysMs
	}
	if len(c.Animation.StageDoneDelaysMs) == 0 {
		c.Animation.StageDoneDelaysMs = d.Animation.StageDoneDelaysMs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.AgentName == "" {
		c.UI.AgentName = d.UI.AgentName
	}
	if c.UI.SnippetLength == 0 {
		c.UI.SnippetLength = d.UI.SnippetLength
	}
	if c.UI.ThreadHeight == 0 {
		c.UI.ThreadHeight = d.UI.ThreadHeight
	}
	if c.UI.ExportDir == "" {
		c.UI.ExportDir = d.UI.ExportDir
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Stub.Addr == "" {
		c.Stub.Addr = d.Stub.Addr
	}
	if c.Stub.RateLimitRPS == 0 {
		c.Stub.RateLimitRPS = d.Stub.RateLimitRPS
	}
	if c.Stub.RateLimitBurst == 0 {
		c.Stub.RateLimitBurst = d.Stub.RateLimitBurst
	}
}

// ApplyEnvOverrides applies CAREERDESK_* environment variables.
// Unparseable numeric values are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CAREERDESK_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("CAREERDESK_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("CAREERDESK_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("CAREERDESK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("CAREERDESK_TELEMETRY"); v != "" {
		c.Telemetry.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("CAREERDESK_STUB_ADDR"); v != "" {
		c.Stub.Addr = v
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Animation.StageDelaysMs = append([]int(nil), c.Animation.StageDelaysMs...)
	clone.Animation.StageDoneDelaysMs = append([]int(nil), c.Animation.StageDoneDelaysMs...)
	return &clone
}

// String renders the configuration as TOML, as `careerdesk config show` prints it.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return buf.String()
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access and falls back to defaults when the
// file is unusable. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}

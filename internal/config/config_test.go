// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CAREERDESK_HOME", dir)
	for _, k := range []string{
		"CAREERDESK_API_URL", "CAREERDESK_TIMEOUT_SECS", "CAREERDESK_LOG_LEVEL",
		"CAREERDESK_LOG_FILE", "CAREERDESK_TELEMETRY", "CAREERDESK_STUB_ADDR",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []int{300, 1500, 3000, 5000, 7000}, cfg.Animation.StageDelaysMs)
	assert.Equal(t, []int{1400, 2900, 4900, 6900, 9000}, cfg.Animation.StageDoneDelaysMs)
	assert.Equal(t, 100*time.Millisecond, cfg.Animation.GaugeDelay())
	assert.Equal(t, 200*time.Millisecond, cfg.Animation.BarDelay())
	assert.Equal(t, 90*time.Second, cfg.API.Timeout())
	assert.Equal(t, 80, cfg.UI.SnippetLength)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().API.BaseURL, cfg.API.BaseURL)
}

func TestLoad_PartialTOMLKeepsDefaults(t *testing.T) {
	dir := isolate(t)
	data := "[api]\nbase_url = \"https://eval.example.com/\"\n\n[ui]\nagent_name = \"Deniz\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://eval.example.com", cfg.API.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, "Deniz", cfg.UI.AgentName)
	assert.Equal(t, 90, cfg.API.TimeoutSecs)
	assert.Len(t, cfg.Animation.StageDelaysMs, StageCount)
}

func TestLoad_JSONFallback(t *testing.T) {
	dir := isolate(t)
	data := `{"api": {"base_url": "http://10.0.0.5:9000", "timeout_secs": 30}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(data), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout())
}

func TestLoadFromPath_BrokenFileFallsBack(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api\nbase_url = "), 0600))

	cfg, err := LoadFromPath(path)
	require.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, Default().API.BaseURL, cfg.API.BaseURL)
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "not a url"
	cfg.UI.Theme = "neon"
	cfg.Animation.StageDoneDelaysMs = []int{1400, 1000, 4900, 6900, 9000}

	err := cfg.Validate()
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	assert.Contains(t, fields, "api.base_url")
	assert.Contains(t, fields, "ui.theme")
	assert.Contains(t, fields, "animation")
}

func TestValidate_TimelineLength(t *testing.T) {
	cfg := Default()
	cfg.Animation.StageDelaysMs = []int{300, 1500}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "animation.stage_delays_ms")
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CAREERDESK_API_URL", "http://override:1234")
	t.Setenv("CAREERDESK_TIMEOUT_SECS", "15")
	t.Setenv("CAREERDESK_LOG_LEVEL", "DEBUG")
	t.Setenv("CAREERDESK_TELEMETRY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://override:1234", cfg.API.BaseURL)
	assert.Equal(t, 15, cfg.API.TimeoutSecs)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	os.Unsetenv("CAREERDESK_API_URL")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CAREERDESK_API_URL=http://from-dotenv:8000\n"), 0600))

	require.NoError(t, LoadDotEnv(envFile, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "http://from-dotenv:8000", os.Getenv("CAREERDESK_API_URL"))
}

func TestSaveTOML_ThenLoad(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.UI.AgentName = "Deniz (AI Agent)"
	cfg.Animation.GaugeDelayMs = 50
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "Deniz (AI Agent)", loaded.UI.AgentName)
	assert.Equal(t, 50, loaded.Animation.GaugeDelayMs)
}

func TestClone_IsDeep(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.Animation.StageDelaysMs[0] = 1
	assert.Equal(t, 300, cfg.Animation.StageDelaysMs[0])
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\nagent_name = \"One\"\n"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	errc := make(chan error, 1)
	go func() {
		errc <- WatchWithDebounce(ctx, path, 20*time.Millisecond, func(cfg *Config, err error) {
			if err == nil {
				reloaded <- cfg
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("[ui]\nagent_name = \"Two\"\n"), 0600))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "Two", cfg.UI.AgentName)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload observed")
	}

	cancel()
	require.NoError(t, <-errc)
}

// TestConfig_ConcurrentAccess checks Global and SetGlobal under -race.
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// careerdesk - a terminal client for the message evaluation pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/cli"
	"github.com/jeranaias/careerdesk-tui/internal/config"
	"github.com/jeranaias/careerdesk-tui/internal/logging"
	"github.com/jeranaias/careerdesk-tui/internal/telemetry"
	"github.com/jeranaias/careerdesk-tui/internal/ui/app"
	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()
	os.Exit(run(cmd, args))
}

func run(cmd cli.Command, args cli.Args) int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cfg, cfgPath := loadConfig(args)
	if args.APIURL != "" {
		cfg.API.BaseURL = args.APIURL
	}
	if args.Verbose {
		cfg.Log.Level = "debug"
	}
	config.SetGlobal(cfg)

	if args.NoColor || styles.NoColorRequested() {
		cli.ForceColorsEnabled(false)
	}
	cli.ApplyColorProfile()

	logger := newLogger(cmd, cfg)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracePath, err := cfg.TelemetryFilePath()
	if err == nil {
		shutdown, terr := telemetry.InitFile(cfg.Telemetry.Enabled, "careerdesk", Version, tracePath, logger)
		if terr != nil {
			logger.Warn("telemetry disabled", zap.Error(terr))
		} else {
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				shutdown(sctx)
			}()
		}
	}

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout(),
		UserAgent: "careerdesk/" + Version,
		Logger:    logger,
	})

	if cmd == cli.CmdTUI {
		if err := runTUI(ctx, cfg, cfgPath, client, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return cli.ExitGeneralError
		}
		return cli.ExitSuccess
	}

	env := cli.NewEnv(cfg, client, logger)
	env.ConfigPath = cfgPath
	if err := cli.Run(ctx, cmd, args, env); err != nil {
		cli.DisplayError(os.Stderr, err, args.JSON)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

// loadConfig loads --config or the default file. Unusable files fall back
// to defaults with a warning.
func loadConfig(args cli.Args) (*config.Config, string) {
	path := args.ConfigPath
	var (
		cfg *config.Config
		err error
	)

	if path == "" {
		path, _ = config.ConfigPathTOML()
		cfg, err = config.Load()
	} else if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		cfg = config.Default()
		cfg.ApplyEnvOverrides()
	} else {
		cfg, err = config.LoadFromPath(path)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return cfg, path
}

// newLogger writes to stdout for the stub server and to the log file
// otherwise, since stdout belongs to the UI and command output.
func newLogger(cmd cli.Command, cfg *config.Config) *zap.Logger {
	output := logging.Stdout
	if cmd != cli.CmdStub {
		path, err := cfg.LogFilePath()
		if err != nil {
			return zap.NewNop()
		}
		output = path
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Output: output})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

// runTUI runs the interactive client and reloads settings when the config
// file changes.
func runTUI(ctx context.Context, cfg *config.Config, cfgPath string, client *api.Client, logger *zap.Logger) error {
	model := app.New(app.Options{
		Client:  client,
		Config:  cfg,
		Theme:   styles.NewThemeFor(cfg.UI.Theme),
		Logger:  logger,
		Context: ctx,
		BaseURL: cfg.API.BaseURL,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if cfgPath != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			err := config.Watch(watchCtx, cfgPath, func(next *config.Config, err error) {
				if err == nil {
					config.SetGlobal(next)
				}
				p.Send(app.ConfigReloadedMsg{Config: next, Err: err})
			})
			if err != nil {
				logger.Warn("config watch disabled", zap.String("path", cfgPath), zap.Error(err))
			}
		}()
	}

	logger.Info("tui starting", zap.String("base_url", cfg.API.BaseURL), zap.String("version", Version))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

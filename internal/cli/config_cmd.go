// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - The config command.

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/careerdesk-tui/internal/config"
)

// HandleConfig handles "config show|path|init". No subcommand means show.
func HandleConfig(env *Env, args Args) error {
	path, err := configPath(env)
	if err != nil {
		return &ConfigError{Path: "(unknown)", Err: err}
	}

	switch args.Subcommand {
	case "", "show":
		cfg := env.config()
		if args.JSON {
			return NewJSONResponse("config", cfg).Print(env.Out)
		}
		fmt.Fprintf(env.Out, "%s\n\n", DimStyle.Render("# "+path))
		fmt.Fprint(env.Out, cfg.String())
		return nil

	case "path":
		_, statErr := os.Stat(path)
		if args.JSON {
			return NewJSONResponse("config", ConfigPathData{Path: path, Exists: statErr == nil}).Print(env.Out)
		}
		fmt.Fprintln(env.Out, path)
		return nil

	case "init":
		force := NewArgParser(args.Raw, "force").BoolFlag("force")
		if _, statErr := os.Stat(path); statErr == nil && !force {
			return &ConfigError{Path: path, Err: errors.New("file exists (use --force to overwrite)")}
		} else if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
			return &ConfigError{Path: path, Err: statErr}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return &ConfigError{Path: path, Err: err}
		}

		save := config.SaveTOML
		if strings.EqualFold(filepath.Ext(path), ".json") {
			save = config.SaveJSON
		}
		if err := save(config.Default(), path); err != nil {
			return &ConfigError{Path: path, Err: err}
		}
		env.logger().Info("config file written", zap.String("path", path))

		if args.JSON {
			return NewJSONResponse("config", ConfigPathData{Path: path, Exists: true}).Print(env.Out)
		}
		fmt.Fprintf(env.Out, "%s %s\n", SuccessStyle.Render("Wrote"), path)
		return nil

	default:
		return &ValidationError{
			Field:   "config subcommand",
			Value:   args.Subcommand,
			Reason:  "expected show, path or init",
			Example: "careerdesk config init",
		}
	}
}

func configPath(env *Env) (string, error) {
	if env.ConfigPath != "" {
		return env.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// stub.go - Run the local stub evaluation service.

package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jeranaias/careerdesk-tui/internal/stubserver"
)

// StubConfig derives the stub server configuration from the loaded config
// and an optional --addr override.
func StubConfig(env *Env, args Args) stubserver.Config {
	cfg := env.config()
	sc := stubserver.DefaultConfig()
	if cfg.Stub.Addr != "" {
		sc.Addr = cfg.Stub.Addr
	}
	sc.RateLimitRPS = cfg.Stub.RateLimitRPS
	sc.RateLimitBurst = cfg.Stub.RateLimitBurst
	if cfg.UI.AgentName != "" {
		sc.AgentName = cfg.UI.AgentName
	}
	if args.Addr != "" {
		sc.Addr = args.Addr
	}
	return sc
}

// HandleStub handles the "stub" command. It serves until ctx is cancelled.
func HandleStub(ctx context.Context, env *Env, args Args) error {
	sc := StubConfig(env, args)
	log := env.logger()

	fmt.Fprintf(env.Err, "Stub evaluation service listening on http://%s (ctrl+c to stop)\n", sc.Addr)
	log.Info("stub server starting",
		zap.String("addr", sc.Addr),
		zap.Float64("rate_limit_rps", sc.RateLimitRPS),
		zap.Int("rate_limit_burst", sc.RateLimitBurst),
	)

	if err := stubserver.New(sc, log).ListenAndServe(ctx); err != nil {
		return NewCommandError("stub", "serve", "server stopped", err)
	}
	log.Info("stub server stopped")
	return nil
}

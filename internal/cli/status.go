// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Health check against the evaluation service.

package cli

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// baseURLer is implemented by *api.Client.
type baseURLer interface {
	BaseURL() string
}

// HandleStatus handles the "status" command. An unreachable service is
// reported and returned as an error so the exit code reflects it.
func HandleStatus(ctx context.Context, env *Env, args Args) error {
	data := StatusData{BaseURL: env.config().API.BaseURL}
	if b, ok := env.Client.(baseURLer); ok {
		data.BaseURL = b.BaseURL()
	}

	start := time.Now()
	resp, err := env.Client.Health(ctx)
	elapsed := time.Since(start)
	data.LatencyMs = elapsed.Milliseconds()

	if err != nil {
		env.logger().Warn("health check failed", zap.String("base_url", data.BaseURL), zap.Error(err))
		if args.JSON {
			if perr := NewJSONErrorResponse("status", err, data).Print(env.Out); perr != nil {
				return perr
			}
			return &reportedError{err: err}
		}
		fmt.Fprintf(env.Out, "%s %s %s\n", RenderStatus(false), RenderLabel("Service"), ValueStyle.Render(data.BaseURL))
		fmt.Fprintf(env.Out, "     %s %s\n", RenderLabel("Error"), err.Error())
		return &reportedError{err: err}
	}

	data.Reachable = true
	data.Status = resp.Status
	data.Service = resp.Service
	if args.JSON {
		return NewJSONResponse("status", data).Print(env.Out)
	}

	fmt.Fprintf(env.Out, "%s %s %s\n", RenderStatus(true), RenderLabel("Service"), ValueStyle.Render(data.BaseURL))
	if resp.Service != "" {
		fmt.Fprintf(env.Out, "     %s %s\n", RenderLabel("Name"), resp.Service)
	}
	fmt.Fprintf(env.Out, "     %s %s\n", RenderLabel("Status"), resp.Status)
	fmt.Fprintf(env.Out, "     %s %s\n", RenderLabel("Latency"), formatDurationShort(elapsed))
	return nil
}

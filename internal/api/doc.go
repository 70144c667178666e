// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the HTTP/JSON boundary between careerdesk and the remote
// evaluation service.
//
// The service screens an employer message, drafts a reply, critiques it and
// either emails the reply or flags the message for a human. This package only
// moves data: it never interprets a payload beyond decoding it. Mapping a
// payload onto what the user sees lives in package verdict.
//
// # Key Types
//
//   - Client: Thread-safe client for every endpoint
//   - Submission: The four required form fields
//   - ResponsePayload: Structured verdict for one submission
//   - Exchange / LogEntry: Server-owned history records
//   - ClientError: Categorised failure (transport, server, timeout, invalid response)
//
// # Usage
//
//	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: cfg.API.BaseURL})
//	payload, err := client.SubmitMessage(ctx, sub)
//	if err != nil {
//	    fmt.Println(api.UserMessage(err))
//	}
//
// Requests are never retried. Each one carries a context deadline and an
// X-Request-ID header.
package api

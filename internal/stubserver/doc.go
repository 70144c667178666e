// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stubserver is a local stand-in for the evaluation service.
//
// It serves the same HTTP/JSON endpoints as the real pipeline, backed by an
// in-memory store. Messages are screened with a fixed keyword list instead
// of a model: salary, legal, sensitive, out-of-domain and suspicious
// messages are flagged, very short ones are flagged for low confidence, and
// everything else gets a templated reply with deterministic critic scores.
//
// # Middleware
//
//   - X-Request-ID propagation (google/uuid)
//   - zap request logging
//   - panic recovery (chi)
//   - a server-wide token bucket (golang.org/x/time/rate)
//   - OpenTelemetry server spans (otelhttp)
package stubserver

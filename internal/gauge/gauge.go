// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gauge computes the confidence gauge and critic score bars from a
// response payload. It holds geometry and banding only; drawing happens in
// the terminal components and the HTML export.
package gauge

import (
	"fmt"
	"math"
	"strings"

	"github.com/jeranaias/careerdesk-tui/internal/api"
)

// ArcLength is the length of the semicircular gauge track (r=80, so
// 80*pi, rounded the way the reference artwork does).
const ArcLength = 251.2

// Needle sweep, in degrees: -90 is empty, +90 is full.
const (
	NeedleMin = -90.0
	NeedleMax = 90.0
)

// UnknownCategory is shown when the service omits the category.
const UnknownCategory = "unknown"

// =============================================================================
// BAND
// =============================================================================

// Band is the color band of the confidence gauge.
type Band int

const (
	BandNone Band = iota
	BandPositive
	BandWarning
	BandDanger
)

// String returns the band name.
func (b Band) String() string {
	switch b {
	case BandPositive:
		return "positive"
	case BandWarning:
		return "warning"
	case BandDanger:
		return "danger"
	default:
		return "none"
	}
}

// BandFor maps a screening category to its band: safe is positive,
// ambiguous and out_of_domain warn, anything else is danger.
func BandFor(category string) Band {
	switch strings.ToLower(category) {
	case "safe":
		return BandPositive
	case "ambiguous", "out_of_domain":
		return BandWarning
	default:
		return BandDanger
	}
}

var defaultLabels = map[string]string{
	"safe":          "Message classified as safe",
	"ambiguous":     "Message intent is ambiguous",
	"out_of_domain": "Outside the supported domain",
}

const flaggedLabel = "Flagged for human review"

// =============================================================================
// GAUGE
// =============================================================================

// Gauge is the computed confidence dial.
type Gauge struct {
	// Value is the clamped confidence in [0,1].
	Value float64
	// Percent is round(Value*100).
	Percent int
	// Fill is the stroked length of the arc, Value*ArcLength.
	Fill float64
	// Needle is the needle angle in degrees, -90 + Value*180.
	Needle   float64
	Label    string
	Category string
	Band     Band
}

// Zero returns the reset gauge: 0%, empty arc, needle at -90.
func Zero() Gauge {
	return Gauge{Needle: NeedleMin}
}

// FromConfidence computes the gauge for a payload's confidence section.
func FromConfidence(c api.Confidence) Gauge {
	v := clamp(c.Confidence, 0, 1)
	category := c.Category
	if category == "" {
		category = UnknownCategory
	}
	return Gauge{
		Value:    v,
		Percent:  int(math.Round(v * 100)),
		Fill:     v * ArcLength,
		Needle:   NeedleMin + v*(NeedleMax-NeedleMin),
		Label:    labelFor(c, category),
		Category: category,
		Band:     BandFor(category),
	}
}

// labelFor prefers the service's reason, then a category default.
func labelFor(c api.Confidence, category string) string {
	if reason := strings.TrimSpace(c.Reason); reason != "" {
		return reason
	}
	if c.IsUnknown {
		return flaggedLabel
	}
	if l, ok := defaultLabels[strings.ToLower(category)]; ok {
		return l
	}
	return flaggedLabel
}

// DashArray renders the arc as an SVG stroke-dasharray ("<fill> 251.2").
func (g Gauge) DashArray() string {
	return fmt.Sprintf("%s %s", trimFloat(g.Fill), trimFloat(ArcLength))
}

// PercentText renders the percentage label.
func (g Gauge) PercentText() string {
	return fmt.Sprintf("%d%%", g.Percent)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

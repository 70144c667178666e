// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gauge computes the confidence gauge and critic score bars.
package gauge

import (
	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/util"
)

// Placeholder is shown in place of a score after a reset.
const Placeholder = "-"

// BarCount is the number of critic sub-scores.
const BarCount = 5

// BarNames are the sub-score labels, in display order.
var BarNames = [BarCount]string{"Tone", "Clarity", "Completeness", "Safety", "Relevance"}

// ScoreBand is the color band of one score bar.
type ScoreBand int

const (
	ScoreNone ScoreBand = iota
	ScoreSuccess
	ScoreNeutral
	ScoreDanger
)

// String returns the band name.
func (b ScoreBand) String() string {
	switch b {
	case ScoreSuccess:
		return "success"
	case ScoreNeutral:
		return "neutral"
	case ScoreDanger:
		return "danger"
	default:
		return "none"
	}
}

// ScoreBandFor bands a 0-10 score: >=8 success, >=6 neutral, else danger.
func ScoreBandFor(score float64) ScoreBand {
	switch {
	case score >= 8:
		return ScoreSuccess
	case score >= 6:
		return ScoreNeutral
	default:
		return ScoreDanger
	}
}

// Bar is one critic sub-score.
type Bar struct {
	Name  string
	Score float64
	// Width is the fill percentage, score*10 clamped to [0,100].
	Width float64
	// Label is "<score>/10", or Placeholder after a reset.
	Label string
	Band  ScoreBand
}

// Scorecard is the critic's evaluation as rendered.
type Scorecard struct {
	Bars     [BarCount]Bar
	Overall  string
	Feedback string
}

// ZeroScorecard returns the reset state: empty bars and placeholder labels.
func ZeroScorecard() Scorecard {
	var sc Scorecard
	for i := range sc.Bars {
		sc.Bars[i] = Bar{Name: BarNames[i], Label: Placeholder}
	}
	sc.Overall = Placeholder
	return sc
}

// FromEvaluation computes the scorecard for a payload's evaluation section.
func FromEvaluation(e api.Evaluation) Scorecard {
	scores := [BarCount]float64{
		e.ToneScore,
		e.ClarityScore,
		e.CompletenessScore,
		e.SafetyScore,
		e.RelevanceScore,
	}
	var sc Scorecard
	for i, s := range scores {
		sc.Bars[i] = NewBar(BarNames[i], s)
	}
	sc.Overall = util.FormatTenths(e.OverallScore) + "/10"
	sc.Feedback = e.Feedback
	return sc
}

// NewBar computes one score bar.
func NewBar(name string, score float64) Bar {
	s := clamp(score, 0, 10)
	return Bar{
		Name:  name,
		Score: s,
		Width: s * 10,
		Label: util.FormatScore(score) + "/10",
		Band:  ScoreBandFor(s),
	}
}

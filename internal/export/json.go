// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/verdict"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// Document is the JSON shape of an exported verdict.
type Document struct {
	Verdict    string          `json:"verdict"`
	Title      string          `json:"title"`
	Subtitle   string          `json:"subtitle,omitempty"`
	Submission api.Submission  `json:"submission"`
	Response   string          `json:"response,omitempty"`
	Revisions  *int            `json:"revision_count,omitempty"`
	Email      *EmailDocument  `json:"email,omitempty"`
	Reason     string          `json:"reason,omitempty"`
	Category   string          `json:"category,omitempty"`
	Error      string          `json:"error,omitempty"`
	Confidence *GaugeDocument  `json:"confidence,omitempty"`
	Scores     *ScoresDocument `json:"scores,omitempty"`
	ExportedAt time.Time       `json:"exported_at"`
}

// EmailDocument reports the email delivery attempt.
type EmailDocument struct {
	Sent   bool   `json:"sent"`
	Detail string `json:"detail,omitempty"`
}

// GaugeDocument is the confidence gauge.
type GaugeDocument struct {
	Value    float64 `json:"value"`
	Percent  int     `json:"percent"`
	Label    string  `json:"label"`
	Category string  `json:"category"`
	Band     string  `json:"band"`
}

// ScoresDocument is the critic scorecard.
type ScoresDocument struct {
	Bars     map[string]float64 `json:"bars"`
	Overall  string             `json:"overall"`
	Feedback string             `json:"feedback,omitempty"`
}

// JSONExporter exports a verdict summary as indented JSON. The thread is not
// included; it is available from the conversations endpoint.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts a verdict to JSON.
func (e *JSONExporter) Export(s verdict.State) ([]byte, error) {
	doc, err := NewDocument(s, e.options.now())
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}

// NewDocument summarises a terminal verdict.
func NewDocument(s verdict.State, at time.Time) (*Document, error) {
	if !s.Phase.Terminal() {
		return nil, ErrNotTerminal
	}
	title, subtitle := s.Headline()
	doc := &Document{
		Verdict:    phaseSlug(s.Phase),
		Title:      title,
		Subtitle:   subtitle,
		Submission: s.Submission,
		ExportedAt: at,
	}

	switch {
	case s.Approved != nil:
		doc.Response = s.Approved.ResponseText
		n := s.Approved.RevisionCount
		doc.Revisions = &n
		if em := s.Approved.Email; em != nil {
			doc.Email = &EmailDocument{Sent: em.Sent, Detail: em.Detail}
		}
	case s.Flagged != nil:
		doc.Reason = s.Flagged.Reason
		doc.Category = s.Flagged.Category
	case s.Failure != nil:
		doc.Error = s.Failure.Message
	}

	if s.ShowGauge {
		g := s.Gauge
		doc.Confidence = &GaugeDocument{
			Value:    g.Value,
			Percent:  g.Percent,
			Label:    g.Label,
			Category: g.Category,
			Band:     g.Band.String(),
		}
	}
	if s.ShowScores {
		sd := &ScoresDocument{
			Bars:     make(map[string]float64, len(s.Scores.Bars)),
			Overall:  s.Scores.Overall,
			Feedback: s.Scores.Feedback,
		}
		for _, b := range s.Scores.Bars {
			sd.Bars[b.Name] = b.Score
		}
		doc.Scores = sd
	}
	return doc, nil
}

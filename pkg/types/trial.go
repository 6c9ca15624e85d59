// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the canonical records the normalization layer
// produces from upstream registry payloads, plus shared configuration and
// the upstream error taxonomy.
package types

import "strings"

// Trial is the canonical clinical-trial record produced from one
// trial-registry study. Every field carries the registry's value when
// present or the normalizer's documented default when absent.
type Trial struct {
	// NCTID is the registry's public study identifier ("NCT" + digits).
	NCTID string `json:"nct_id" yaml:"nct_id"`

	// Title is the study's brief title.
	Title string `json:"title" yaml:"title"`

	// Description is the study's brief summary.
	Description string `json:"description" yaml:"description"`

	// Phase is the trial phase as reported upstream (e.g. "PHASE2").
	Phase string `json:"phase" yaml:"phase"`

	// Status is the upstream overall status enum (e.g. "RECRUITING").
	Status string `json:"status" yaml:"status"`

	// Sponsor is the lead sponsor's name.
	Sponsor string `json:"sponsor" yaml:"sponsor"`

	// Conditions lists the studied conditions in upstream order.
	Conditions []string `json:"conditions" yaml:"conditions"`

	// Locations holds at most five human-readable site strings
	// ("City, State, Country" with empty components dropped).
	Locations []string `json:"locations" yaml:"locations"`

	// Enrollment is the reported participant count, 0 when unreported.
	Enrollment int `json:"enrollment,omitempty" yaml:"enrollment,omitempty"`

	// StartDate and CompletionDate are free-form upstream date strings,
	// passed through unparsed.
	StartDate      string `json:"start_date" yaml:"start_date"`
	CompletionDate string `json:"completion_date" yaml:"completion_date"`

	// Eligibility is the eligibility criteria text, truncated to 500
	// characters with a trailing "..." when truncation occurred.
	Eligibility string `json:"eligibility" yaml:"eligibility"`

	MinAge string `json:"min_age" yaml:"min_age"`
	MaxAge string `json:"max_age" yaml:"max_age"`
	Sex    string `json:"sex" yaml:"sex"`

	// Recruiting reports whether the status indicates open or upcoming
	// recruitment.
	Recruiting bool `json:"recruiting" yaml:"recruiting"`

	// URL is the study's public registry page.
	URL string `json:"url" yaml:"url"`
}

// ConditionsDisplay returns the conditions comma-joined for display.
func (t Trial) ConditionsDisplay() string {
	return strings.Join(t.Conditions, ", ")
}

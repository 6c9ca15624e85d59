// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PatientProfile carries the patient attributes the synthesizer matches
// against. All fields are optional.
type PatientProfile struct {
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
	Country   string `json:"country,omitempty" yaml:"country,omitempty"`
	Location  string `json:"location,omitempty" yaml:"location,omitempty"`
}

// CandidateKind identifies the list a recommendation candidate belongs to.
type CandidateKind string

const (
	CandidateTrial       CandidateKind = "trial"
	CandidatePublication CandidateKind = "publication"
	CandidateExpert      CandidateKind = "expert"
)

// Candidate is one scored recommendation entry.
type Candidate struct {
	Kind    CandidateKind `json:"kind" yaml:"kind"`
	ID      string        `json:"id,omitempty" yaml:"id,omitempty"`
	Title   string        `json:"title" yaml:"title"`
	Summary string        `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Score is the position-derived match score (higher is better).
	Score int `json:"score" yaml:"score"`

	// Rating and Reviews are presentation filler for expert candidates
	// only; they carry no matching semantics.
	Rating  float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	Reviews int     `json:"reviews,omitempty" yaml:"reviews,omitempty"`

	// Synthetic marks placeholder candidates produced when no real match
	// exists for the patient's condition.
	Synthetic bool `json:"synthetic,omitempty" yaml:"synthetic,omitempty"`
}

// Recommendations groups the three candidate lists for one request.
type Recommendations struct {
	Trials       []Candidate `json:"trials" yaml:"trials"`
	Publications []Candidate `json:"publications" yaml:"publications"`
	Experts      []Candidate `json:"experts" yaml:"experts"`
}

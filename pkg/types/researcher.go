// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Affiliation is one employment or education entry from a researcher's
// identity record. Dates are rendered partial dates ("2020", "2020-05",
// "2020-05-17") or empty when the registry reports none.
type Affiliation struct {
	Organization string `json:"organization" yaml:"organization"`
	Role         string `json:"role,omitempty" yaml:"role,omitempty"`
	Department   string `json:"department,omitempty" yaml:"department,omitempty"`
	StartDate    string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
}

// WorkSummary is one publication entry from a researcher's works section.
type WorkSummary struct {
	Title   string `json:"title" yaml:"title"`
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
}

// ResearcherProfile is the canonical record for one identity-registry
// entry. Search-derived profiles may be stub-level (name and affiliation
// summary only); full profiles add biography, keywords, affiliation and
// education histories, and recent works.
type ResearcherProfile struct {
	// ORCID is the registry identifier (hyphenated digit/check-digit path).
	ORCID string `json:"orcid" yaml:"orcid"`

	// Name is the display name after precedence resolution; "Name not
	// public" or "Unknown" when the registry exposes none.
	Name string `json:"name" yaml:"name"`

	Biography string   `json:"biography,omitempty" yaml:"biography,omitempty"`
	Keywords  []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Affiliations and Educations preserve upstream order.
	Affiliations []Affiliation `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
	Educations   []Affiliation `json:"educations,omitempty" yaml:"educations,omitempty"`

	// Works holds at most ten entries, most recent first as delivered by
	// the registry; never re-sorted here.
	Works []WorkSummary `json:"works,omitempty" yaml:"works,omitempty"`

	// AffiliationSummary is the first non-empty of employment organization,
	// education organization, or "Not specified".
	AffiliationSummary string `json:"affiliation_summary" yaml:"affiliation_summary"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// NoAbstract is the sentinel abstract text for records whose upstream
// document carries no abstract fragments.
const NoAbstract = "No abstract available"

// Publication is the canonical bibliographic record produced from the
// literature engine's summary and abstract endpoints.
type Publication struct {
	// PMID is the engine's numeric record identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title. Records without a title are dropped
	// during normalization, so this is never empty.
	Title string `json:"title" yaml:"title"`

	// Authors is the display string: the first three author names joined
	// by ", ", with " et al." appended when more exist.
	Authors string `json:"authors" yaml:"authors"`

	// Journal is the full journal name, falling back to the short source
	// name when the full name is absent.
	Journal string `json:"journal" yaml:"journal"`

	// PubDate is the upstream publication date string, passed through
	// unparsed.
	PubDate string `json:"pub_date" yaml:"pub_date"`

	// Abstract is the joined abstract text, or NoAbstract when the
	// upstream document has none for this record.
	Abstract string `json:"abstract" yaml:"abstract"`

	// DOI is the digital object identifier when reported.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// URL is the record's public page.
	URL string `json:"url" yaml:"url"`

	// RelevanceScore is in (0, 1], derived from the record's position in
	// the id-search result: 1.0 for the top hit, strictly decreasing with
	// rank within one result set.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trials

import (
	"fmt"
	"strings"

	"github.com/pdiddy/medbridge/pkg/types"
)

// eligibilityLimit is the maximum eligibility text length before the
// "..." marker is appended.
const eligibilityLimit = 500

// maxLocations caps the human-readable site list.
const maxLocations = 5

// Defaults applied when an optional module or field is absent.
const (
	defaultText   = "Not specified"
	defaultStatus = "Unknown"
	defaultSex    = "All"
)

// Registry record structures. Every module under protocolSection is
// optional; extraction helpers below supply one default each.
type RawStudy struct {
	ProtocolSection protocolSection `json:"protocolSection"`
}

type protocolSection struct {
	Identification    identificationModule    `json:"identificationModule"`
	Status            statusModule            `json:"statusModule"`
	Description       descriptionModule       `json:"descriptionModule"`
	Conditions        conditionsModule        `json:"conditionsModule"`
	Design            designModule            `json:"designModule"`
	Eligibility       eligibilityModule       `json:"eligibilityModule"`
	ContactsLocations contactsLocationsModule `json:"contactsLocationsModule"`
	Sponsor           sponsorModule           `json:"sponsorCollaboratorsModule"`
}

type identificationModule struct {
	NCTID      string `json:"nctId"`
	BriefTitle string `json:"briefTitle"`
}

type statusModule struct {
	OverallStatus       string     `json:"overallStatus"`
	EnrollmentInfo      enrollment `json:"enrollmentInfo"`
	StartDateStruct     dateStruct `json:"startDateStruct"`
	CompletionDateStruct dateStruct `json:"completionDateStruct"`
}

type enrollment struct {
	Count int `json:"count"`
}

type dateStruct struct {
	Date string `json:"date"`
}

type descriptionModule struct {
	BriefSummary string `json:"briefSummary"`
}

type conditionsModule struct {
	Conditions []string `json:"conditions"`
}

type designModule struct {
	Phases []string `json:"phases"`
}

type eligibilityModule struct {
	EligibilityCriteria string `json:"eligibilityCriteria"`
	MinimumAge          string `json:"minimumAge"`
	MaximumAge          string `json:"maximumAge"`
	Sex                 string `json:"sex"`
}

type contactsLocationsModule struct {
	Locations []rawLocation `json:"locations"`
}

type rawLocation struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type sponsorModule struct {
	LeadSponsor leadSponsor `json:"leadSponsor"`
}

type leadSponsor struct {
	Name string `json:"name"`
}

// Normalize maps one raw registry study to a canonical Trial. It fails
// only when the record carries no NCT id; every other absent field takes
// its documented default.
func Normalize(raw RawStudy) (types.Trial, error) {
	ps := raw.ProtocolSection

	nctID := strings.TrimSpace(ps.Identification.NCTID)
	if nctID == "" {
		return types.Trial{}, fmt.Errorf("study record has no nctId")
	}

	status := statusOf(ps.Status)

	return types.Trial{
		NCTID:          nctID,
		Title:          textOrDefault(ps.Identification.BriefTitle),
		Description:    textOrDefault(ps.Description.BriefSummary),
		Phase:          phaseOf(ps.Design),
		Status:         status,
		Sponsor:        textOrDefault(ps.Sponsor.LeadSponsor.Name),
		Conditions:     conditionsOf(ps.Conditions),
		Locations:      locationsOf(ps.ContactsLocations),
		Enrollment:     ps.Status.EnrollmentInfo.Count,
		StartDate:      ps.Status.StartDateStruct.Date,
		CompletionDate: ps.Status.CompletionDateStruct.Date,
		Eligibility:    eligibilityOf(ps.Eligibility),
		MinAge:         textOrDefault(ps.Eligibility.MinimumAge),
		MaxAge:         textOrDefault(ps.Eligibility.MaximumAge),
		Sex:            sexOf(ps.Eligibility),
		Recruiting:     isRecruiting(status),
		URL:            studyBase + nctID,
	}, nil
}

// textOrDefault returns s or "Not specified" when empty.
func textOrDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return defaultText
	}
	return s
}

// statusOf returns the upstream overall status, defaulting to "Unknown".
func statusOf(m statusModule) string {
	if m.OverallStatus == "" {
		return defaultStatus
	}
	return m.OverallStatus
}

// phaseOf returns the first reported phase, defaulting to "Not specified".
func phaseOf(m designModule) string {
	if len(m.Phases) == 0 {
		return defaultText
	}
	return m.Phases[0]
}

// conditionsOf returns the condition list, never nil.
func conditionsOf(m conditionsModule) []string {
	if m.Conditions == nil {
		return []string{}
	}
	return m.Conditions
}

// locationsOf builds at most five "City, State, Country" strings,
// dropping empty components. Sites that are empty on all three components
// are skipped entirely.
func locationsOf(m contactsLocationsModule) []string {
	locations := make([]string, 0, maxLocations)
	for _, loc := range m.Locations {
		if len(locations) == maxLocations {
			break
		}
		var parts []string
		for _, p := range []string{loc.City, loc.State, loc.Country} {
			if strings.TrimSpace(p) != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		locations = append(locations, strings.Join(parts, ", "))
	}
	return locations
}

// eligibilityOf returns the criteria text truncated to 500 characters,
// with "..." appended only when truncation occurred. Absent criteria
// default to "Not specified".
func eligibilityOf(m eligibilityModule) string {
	text := m.EligibilityCriteria
	if strings.TrimSpace(text) == "" {
		return defaultText
	}
	runes := []rune(text)
	if len(runes) <= eligibilityLimit {
		return text
	}
	return string(runes[:eligibilityLimit]) + "..."
}

// sexOf returns the eligibility sex field, defaulting to "All".
func sexOf(m eligibilityModule) string {
	if m.Sex == "" {
		return defaultSex
	}
	return m.Sex
}

// isRecruiting reports whether status is one of the upstream's two open
// recruitment values. The comparison is case-sensitive: these are exact
// upstream enum members, not free text.
func isRecruiting(status string) bool {
	return status == "RECRUITING" || status == "NOT_YET_RECRUITING"
}

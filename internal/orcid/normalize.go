// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orcid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/medbridge/pkg/types"
)

// maxWorks caps the publication summaries taken from a full record.
const maxWorks = 10

// Display fallbacks when the registry exposes no name. Search-derived
// stubs use the public-visibility wording; full profiles use "Unknown".
const (
	nameNotPublic      = "Name not public"
	nameUnknown        = "Unknown"
	defaultAffiliation = "Not specified"
)

// value wraps the registry's {"value": "..."} leaf objects.
type value struct {
	Value string `json:"value"`
}

// content wraps the registry's {"content": "..."} leaf objects.
type content struct {
	Content string `json:"content"`
}

type idPath struct {
	Path string `json:"path"`
}

// identityStub is one search hit. Newer payloads carry the name and
// affiliation fields at the root; older ones nest them under
// person-summary. Both shapes appear in the wild and both are handled.
type identityStub struct {
	OrcidIdentifier     idPath             `json:"orcid-identifier"`
	GivenNames          string             `json:"given-names"`
	FamilyNames         string             `json:"family-names"`
	CreditName          string             `json:"credit-name"`
	InstitutionNames    []string           `json:"institution-name"`
	EmploymentSummaries []stubEmployment   `json:"employment-summary"`
	PersonSummary       *stubPersonSummary `json:"person-summary"`
}

type stubEmployment struct {
	Organization orgName `json:"organization"`
}

type stubPersonSummary struct {
	GivenNames  value `json:"given-names"`
	FamilyNames value `json:"family-names"`
	CreditName  value `json:"credit-name"`
}

type orgName struct {
	Name string `json:"name"`
}

// record is the full registry record for one identity.
type record struct {
	OrcidIdentifier idPath            `json:"orcid-identifier"`
	Person          person            `json:"person"`
	Activities      activitiesSummary `json:"activities-summary"`
}

type person struct {
	Name      *personName `json:"name"`
	Biography *content    `json:"biography"`
	Keywords  keywordList `json:"keywords"`
}

type personName struct {
	GivenNames *value `json:"given-names"`
	FamilyName *value `json:"family-name"`
	CreditName *value `json:"credit-name"`
}

type keywordList struct {
	Keyword []content `json:"keyword"`
}

type activitiesSummary struct {
	Employments affiliationGroups `json:"employments"`
	Educations  affiliationGroups `json:"educations"`
	Works       worksList         `json:"works"`
}

type affiliationGroups struct {
	Groups []affiliationGroup `json:"affiliation-group"`
}

type affiliationGroup struct {
	Summaries []affiliationSummaryWrap `json:"summaries"`
}

type affiliationSummaryWrap struct {
	Employment *affiliationSummary `json:"employment-summary"`
	Education  *affiliationSummary `json:"education-summary"`
}

type affiliationSummary struct {
	Organization orgName      `json:"organization"`
	RoleTitle    string       `json:"role-title"`
	Department   string       `json:"department-name"`
	StartDate    *PartialDate `json:"start-date"`
	EndDate      *PartialDate `json:"end-date"`
}

type worksList struct {
	Groups []workGroup `json:"group"`
}

type workGroup struct {
	Summaries []workSummary `json:"work-summary"`
}

type workSummary struct {
	Title           *workTitle   `json:"title"`
	JournalTitle    *value       `json:"journal-title"`
	PublicationDate *PartialDate `json:"publication-date"`
	URL             *value       `json:"url"`
}

type workTitle struct {
	Title value `json:"title"`
}

// PartialDate is the registry's year/month/day triple; any component may
// be absent.
type PartialDate struct {
	Year  *value `json:"year"`
	Month *value `json:"month"`
	Day   *value `json:"day"`
}

// FormatPartialDate renders the highest precision the date supports:
// "YYYY-MM-DD" when all three components are present, "YYYY-MM" with
// year and month, "YYYY" with year alone, and "" otherwise. Components
// are zero-padded.
func FormatPartialDate(d *PartialDate) string {
	if d == nil {
		return ""
	}
	year, okY := dateComponent(d.Year)
	if !okY {
		return ""
	}
	month, okM := dateComponent(d.Month)
	if !okM {
		return fmt.Sprintf("%04d", year)
	}
	day, okD := dateComponent(d.Day)
	if !okD {
		return fmt.Sprintf("%04d-%02d", year, month)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func dateComponent(v *value) (int, bool) {
	if v == nil || v.Value == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v.Value)
	if err != nil {
		return 0, false
	}
	return n, true
}

// normalizeStub builds a profile from a search hit alone. Name
// precedence: root given+family, root credit name, legacy nested
// given+family, legacy nested credit name, then the not-public fallback.
// Affiliation precedence: first institution name, then first
// employment-summary organization.
func normalizeStub(stub identityStub) types.ResearcherProfile {
	return types.ResearcherProfile{
		ORCID:              stub.OrcidIdentifier.Path,
		Name:               stubName(stub),
		AffiliationSummary: stubAffiliation(stub),
	}
}

func stubName(stub identityStub) string {
	if full := joinName(stub.GivenNames, stub.FamilyNames); full != "" {
		return full
	}
	if stub.CreditName != "" {
		return stub.CreditName
	}
	if ps := stub.PersonSummary; ps != nil {
		if full := joinName(ps.GivenNames.Value, ps.FamilyNames.Value); full != "" {
			return full
		}
		if ps.CreditName.Value != "" {
			return ps.CreditName.Value
		}
	}
	return nameNotPublic
}

func stubAffiliation(stub identityStub) string {
	for _, name := range stub.InstitutionNames {
		if name != "" {
			return name
		}
	}
	for _, e := range stub.EmploymentSummaries {
		if e.Organization.Name != "" {
			return e.Organization.Name
		}
	}
	return defaultAffiliation
}

func joinName(given, family string) string {
	return strings.TrimSpace(strings.TrimSpace(given) + " " + strings.TrimSpace(family))
}

// normalizeRecord builds a full profile from the registry record.
func normalizeRecord(rec record) types.ResearcherProfile {
	employments := affiliationsOf(rec.Activities.Employments, func(w affiliationSummaryWrap) *affiliationSummary {
		return w.Employment
	})
	educations := affiliationsOf(rec.Activities.Educations, func(w affiliationSummaryWrap) *affiliationSummary {
		return w.Education
	})

	return types.ResearcherProfile{
		ORCID:              rec.OrcidIdentifier.Path,
		Name:               recordName(rec.Person),
		Biography:          biographyOf(rec.Person),
		Keywords:           keywordsOf(rec.Person),
		Affiliations:       employments,
		Educations:         educations,
		Works:              worksOf(rec.Activities.Works),
		AffiliationSummary: affiliationSummaryOf(employments, educations),
	}
}

// recordName applies the full-profile name precedence: given+family,
// credit name, then "Unknown".
func recordName(p person) string {
	if p.Name != nil {
		if full := joinName(valueOf(p.Name.GivenNames), valueOf(p.Name.FamilyName)); full != "" {
			return full
		}
		if credit := valueOf(p.Name.CreditName); credit != "" {
			return credit
		}
	}
	return nameUnknown
}

func biographyOf(p person) string {
	if p.Biography == nil {
		return ""
	}
	return p.Biography.Content
}

func keywordsOf(p person) []string {
	var keywords []string
	for _, k := range p.Keywords.Keyword {
		if k.Content != "" {
			keywords = append(keywords, k.Content)
		}
	}
	return keywords
}

// affiliationsOf flattens affiliation groups in upstream order, picking
// each wrap's summary via pick (employment or education).
func affiliationsOf(groups affiliationGroups, pick func(affiliationSummaryWrap) *affiliationSummary) []types.Affiliation {
	var out []types.Affiliation
	for _, g := range groups.Groups {
		for _, wrap := range g.Summaries {
			s := pick(wrap)
			if s == nil {
				continue
			}
			out = append(out, types.Affiliation{
				Organization: s.Organization.Name,
				Role:         s.RoleTitle,
				Department:   s.Department,
				StartDate:    FormatPartialDate(s.StartDate),
				EndDate:      FormatPartialDate(s.EndDate),
			})
		}
	}
	return out
}

// affiliationSummaryOf picks the first non-empty employment organization,
// then the first education organization, then the default.
func affiliationSummaryOf(employments, educations []types.Affiliation) string {
	for _, a := range employments {
		if a.Organization != "" {
			return a.Organization
		}
	}
	for _, a := range educations {
		if a.Organization != "" {
			return a.Organization
		}
	}
	return defaultAffiliation
}

// worksOf takes the first work-summary of each of the first ten groups,
// preserving the registry's most-recent-first ordering.
func worksOf(works worksList) []types.WorkSummary {
	var out []types.WorkSummary
	for _, g := range works.Groups {
		if len(out) == maxWorks {
			break
		}
		if len(g.Summaries) == 0 {
			continue
		}
		s := g.Summaries[0]
		w := types.WorkSummary{
			Journal: valueOf(s.JournalTitle),
			Date:    FormatPartialDate(s.PublicationDate),
			URL:     valueOf(s.URL),
		}
		if s.Title != nil {
			w.Title = s.Title.Title.Value
		}
		if w.Title == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}

func valueOf(v *value) string {
	if v == nil {
		return ""
	}
	return v.Value
}

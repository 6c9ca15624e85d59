// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recommend builds ranked candidate lists for a patient profile
// out of the three search backends. It is request-scoped computation
// with no persistence; scores are positional, not model-derived.
package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/medbridge/pkg/types"
)

// maxCandidates caps each real candidate list so the lowest positional
// score stays meaningful.
const maxCandidates = 5

// Expert presentation filler ranges. These numbers decorate the list
// and carry no matching semantics.
const (
	ratingFloor  = 4.5
	ratingSpread = 0.5
	reviewsFloor = 10
	reviewsSpan  = 40
)

// TrialSearcher is the trial registry's condition search.
type TrialSearcher interface {
	Search(ctx context.Context, condition, location string, maxResults int) ([]types.Trial, error)
}

// PublicationSearcher is the literature engine's relevance search.
type PublicationSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]types.Publication, error)
}

// ResearcherSearcher is the identity registry's expertise search.
type ResearcherSearcher interface {
	Search(ctx context.Context, query string, maxResults int, fetchDetails bool) ([]types.ResearcherProfile, error)
}

// Synthesizer assembles the three candidate lists.
type Synthesizer struct {
	trials       TrialSearcher
	publications PublicationSearcher
	researchers  ResearcherSearcher
	log          *zap.Logger
}

// NewSynthesizer wires the synthesizer to its search backends.
func NewSynthesizer(trials TrialSearcher, publications PublicationSearcher, researchers ResearcherSearcher, log *zap.Logger) *Synthesizer {
	return &Synthesizer{
		trials:       trials,
		publications: publications,
		researchers:  researchers,
		log:          log,
	}
}

// Recommend queries the three backends concurrently and returns scored
// candidate lists. A backend failure degrades that kind to the empty
// set; an empty set with a known condition is replaced by exactly two
// synthetic placeholders. With no condition every list is empty and no
// backend is queried.
func (s *Synthesizer) Recommend(ctx context.Context, profile types.PatientProfile) types.Recommendations {
	var recs types.Recommendations
	recs.Trials = []types.Candidate{}
	recs.Publications = []types.Candidate{}
	recs.Experts = []types.Candidate{}

	condition := strings.TrimSpace(profile.Condition)
	if condition == "" {
		return recs
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		recs.Trials = s.trialCandidates(ctx, condition, profile.Country)
	}()
	go func() {
		defer wg.Done()
		recs.Publications = s.publicationCandidates(ctx, condition)
	}()
	go func() {
		defer wg.Done()
		recs.Experts = s.expertCandidates(ctx, condition)
	}()

	wg.Wait()
	return recs
}

func (s *Synthesizer) trialCandidates(ctx context.Context, condition, country string) []types.Candidate {
	found, err := s.trials.Search(ctx, condition, country, maxCandidates)
	if err != nil {
		s.log.Warn("trial search failed, recommending without real trials",
			zap.String("condition", condition), zap.Error(err))
		found = nil
	}

	candidates := make([]types.Candidate, 0, len(found))
	for _, trial := range found {
		if country != "" && !inCountry(trial, country) {
			continue
		}
		i := len(candidates)
		candidates = append(candidates, types.Candidate{
			Kind:    types.CandidateTrial,
			ID:      trial.NCTID,
			Title:   trial.Title,
			Summary: trial.ConditionsDisplay(),
			Score:   85 - 5*i,
		})
	}
	if len(candidates) == 0 {
		return syntheticTrials(condition)
	}
	return candidates
}

func (s *Synthesizer) publicationCandidates(ctx context.Context, condition string) []types.Candidate {
	found, err := s.publications.Search(ctx, condition, maxCandidates)
	if err != nil {
		s.log.Warn("publication search failed, recommending without real publications",
			zap.String("condition", condition), zap.Error(err))
		found = nil
	}

	candidates := make([]types.Candidate, 0, len(found))
	for i, pub := range found {
		candidates = append(candidates, types.Candidate{
			Kind:    types.CandidatePublication,
			ID:      pub.PMID,
			Title:   pub.Title,
			Summary: pub.Journal,
			Score:   90 - 5*i,
		})
	}
	if len(candidates) == 0 {
		return syntheticPublications(condition)
	}
	return candidates
}

func (s *Synthesizer) expertCandidates(ctx context.Context, condition string) []types.Candidate {
	found, err := s.researchers.Search(ctx, condition, maxCandidates, false)
	if err != nil {
		s.log.Warn("researcher search failed, recommending without real experts",
			zap.String("condition", condition), zap.Error(err))
		found = nil
	}

	candidates := make([]types.Candidate, 0, len(found))
	for i, profile := range found {
		candidates = append(candidates, types.Candidate{
			Kind:    types.CandidateExpert,
			ID:      profile.ORCID,
			Title:   profile.Name,
			Summary: profile.AffiliationSummary,
			Score:   92 - 4*i,
			Rating:  fillerRating(),
			Reviews: fillerReviews(),
		})
	}
	if len(candidates) == 0 {
		return syntheticExperts(condition)
	}
	return candidates
}

// inCountry reports whether any trial site sits in the given country.
// Site strings end with the country component, so the match is exact on
// the final comma-separated segment.
func inCountry(trial types.Trial, country string) bool {
	for _, loc := range trial.Locations {
		parts := strings.Split(loc, ",")
		last := strings.TrimSpace(parts[len(parts)-1])
		if strings.EqualFold(last, country) {
			return true
		}
	}
	return false
}

func fillerRating() float64 {
	return ratingFloor + rand.Float64()*ratingSpread
}

func fillerReviews() int {
	return reviewsFloor + rand.Intn(reviewsSpan)
}

func syntheticTrials(condition string) []types.Candidate {
	return []types.Candidate{
		{
			Kind:      types.CandidateTrial,
			Title:     fmt.Sprintf("Phase 2 Study of Investigational Treatment for %s", condition),
			Summary:   fmt.Sprintf("Evaluating a novel therapeutic approach in adults with %s.", condition),
			Score:     88,
			Synthetic: true,
		},
		{
			Kind:      types.CandidateTrial,
			Title:     fmt.Sprintf("Observational Outcomes Registry for %s", condition),
			Summary:   fmt.Sprintf("Long-term follow-up of patients diagnosed with %s.", condition),
			Score:     82,
			Synthetic: true,
		},
	}
}

func syntheticPublications(condition string) []types.Candidate {
	return []types.Candidate{
		{
			Kind:      types.CandidatePublication,
			Title:     fmt.Sprintf("Recent Advances in %s Management: A Systematic Review", condition),
			Summary:   "Journal of Clinical Investigation",
			Score:     92,
			Synthetic: true,
		},
		{
			Kind:      types.CandidatePublication,
			Title:     fmt.Sprintf("Clinical Outcomes in %s: A Multicenter Cohort Study", condition),
			Summary:   "The Lancet",
			Score:     87,
			Synthetic: true,
		},
	}
}

func syntheticExperts(condition string) []types.Candidate {
	return []types.Candidate{
		{
			Kind:      types.CandidateExpert,
			Title:     "Dr. Elena Vasquez",
			Summary:   fmt.Sprintf("Leading specialist in %s research and treatment.", condition),
			Score:     94,
			Rating:    fillerRating(),
			Reviews:   fillerReviews(),
			Synthetic: true,
		},
		{
			Kind:      types.CandidateExpert,
			Title:     "Dr. Samuel Okafor",
			Summary:   fmt.Sprintf("Clinician-researcher focused on %s patient outcomes.", condition),
			Score:     89,
			Rating:    fillerRating(),
			Reviews:   fillerReviews(),
			Synthetic: true,
		},
	}
}

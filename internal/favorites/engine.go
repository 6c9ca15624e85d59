// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package favorites resolves stored (type, id) references to detail
// records: local store first, then a type-specific external fetch when
// the id matches that type's external shape. Resolution is read-only;
// externally fetched records are never written back, so repeat requests
// repeat the fetch cost. That tradeoff is deliberate.
package favorites

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/medbridge/internal/parallel"
	"github.com/pdiddy/medbridge/internal/pubmed"
	"github.com/pdiddy/medbridge/internal/trials"
	"github.com/pdiddy/medbridge/pkg/types"
)

// TrialFetcher is the trial registry's single-record lookup.
type TrialFetcher interface {
	Get(ctx context.Context, nctID string) (types.Trial, error)
}

// PublicationFetcher is the literature engine's single-record lookup.
type PublicationFetcher interface {
	GetByPMID(ctx context.Context, pmid string) (types.Publication, error)
}

// Engine resolves favorite references.
type Engine struct {
	store        LocalStore
	trials       TrialFetcher
	publications PublicationFetcher
	log          *zap.Logger
}

// NewEngine wires the engine to its store and external fallbacks.
func NewEngine(store LocalStore, trialFetcher TrialFetcher, publicationFetcher PublicationFetcher, log *zap.Logger) *Engine {
	return &Engine{
		store:        store,
		trials:       trialFetcher,
		publications: publicationFetcher,
		log:          log,
	}
}

// Resolve runs one reference through the state machine: local lookup,
// then at most one external fetch when the id matches the type's
// external shape. It always produces a result; failures along either
// path degrade to a miss with nil details.
func (e *Engine) Resolve(ctx context.Context, fav types.Favorite) types.ResolvedFavorite {
	resolved := types.ResolvedFavorite{Favorite: fav, State: types.ResolutionMiss}

	details, found, err := e.store.Lookup(ctx, fav.Type, fav.ItemID)
	if err != nil {
		// A store failure must not sink the reference; the external
		// path still gets its chance.
		e.log.Warn("local lookup failed, trying external path",
			zap.String("item_type", string(fav.Type)),
			zap.String("item_id", fav.ItemID),
			zap.Error(err))
	}
	if found {
		resolved.Details = details
		resolved.State = types.ResolutionLocal
		return resolved
	}

	switch fav.Type {
	case types.FavoriteTrial:
		if !trials.IsNCTID(fav.ItemID) {
			return resolved
		}
		trial, err := e.trials.Get(ctx, fav.ItemID)
		if err != nil {
			e.log.Warn("external trial fetch failed",
				zap.String("nct_id", fav.ItemID), zap.Error(err))
			return resolved
		}
		resolved.Details = trial
		resolved.State = types.ResolutionExternal

	case types.FavoritePublication:
		if !pubmed.IsPMID(fav.ItemID) {
			return resolved
		}
		pub, err := e.publications.GetByPMID(ctx, fav.ItemID)
		if err != nil {
			e.log.Warn("external publication fetch failed",
				zap.String("pmid", fav.ItemID), zap.Error(err))
			return resolved
		}
		resolved.Details = pub
		resolved.State = types.ResolutionExternal

	default:
		// Researcher and expert references are local-only.
	}

	return resolved
}

// ResolveAll resolves every reference concurrently and returns exactly
// one result per input, in input order. No reference's failure affects
// its siblings.
func (e *Engine) ResolveAll(ctx context.Context, favs []types.Favorite) []types.ResolvedFavorite {
	outcomes := parallel.Map(ctx, favs, func(ctx context.Context, fav types.Favorite) (types.ResolvedFavorite, error) {
		return e.Resolve(ctx, fav), nil
	})

	resolved := make([]types.ResolvedFavorite, len(outcomes))
	for i, outcome := range outcomes {
		resolved[i] = outcome.Value
	}
	return resolved
}

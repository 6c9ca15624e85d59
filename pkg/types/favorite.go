// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FavoriteType identifies which kind of record a favorite points at.
type FavoriteType string

const (
	FavoriteTrial       FavoriteType = "trial"
	FavoritePublication FavoriteType = "publication"
	FavoriteResearcher  FavoriteType = "researcher"
	FavoriteExpert      FavoriteType = "expert"
)

// Favorite is a stored reference owned by the persistence layer and only
// read here.
type Favorite struct {
	OwnerID string       `json:"owner_id" yaml:"owner_id"`
	Type    FavoriteType `json:"type" yaml:"type"`
	ItemID  string       `json:"item_id" yaml:"item_id"`
}

// ResolutionState records which path produced (or failed to produce) a
// favorite's detail record.
type ResolutionState string

const (
	// ResolutionLocal means the local store held the record.
	ResolutionLocal ResolutionState = "local_hit"

	// ResolutionExternal means the record came from a live upstream fetch.
	ResolutionExternal ResolutionState = "external_hit"

	// ResolutionMiss means neither path produced a record. A failed
	// external fetch terminates here with nil details.
	ResolutionMiss ResolutionState = "miss"
)

// ResolvedFavorite pairs a favorite with its resolved detail record.
// Details is nil on a miss; otherwise it holds the local store's decoded
// row or a canonical record (Trial, Publication).
type ResolvedFavorite struct {
	Favorite `yaml:",inline"`

	Details any             `json:"details,omitempty" yaml:"details,omitempty"`
	State   ResolutionState `json:"state" yaml:"state"`
}

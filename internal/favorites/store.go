// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package favorites

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/medbridge/pkg/types"
)

// LocalStore is the read-only point lookup the resolution engine needs.
// The underlying rows are owned by the persistence layer; this core never
// writes them.
type LocalStore interface {
	// Lookup returns the decoded detail row for (itemType, itemID), or
	// found=false when no row exists.
	Lookup(ctx context.Context, itemType types.FavoriteType, itemID string) (details map[string]any, found bool, err error)
}

// Store is the SQLite-backed LocalStore over the collaborator-owned
// favorite_items table.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// OpenStore opens the favorites database read-only.
func OpenStore(path string, log *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening favorites database: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Lookup reads one row by (type, id). The data column holds a JSON
// object and specialties a JSON string array; either one failing to
// decode degrades to an empty collection with a warning, never an error.
func (s *Store) Lookup(ctx context.Context, itemType types.FavoriteType, itemID string) (map[string]any, bool, error) {
	var (
		title       sql.NullString
		data        sql.NullString
		specialties sql.NullString
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT title, data, specialties FROM favorite_items WHERE item_type = ? AND item_id = ?`,
		string(itemType), itemID)
	if err := row.Scan(&title, &data, &specialties); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("favorites lookup (%s, %s): %w", itemType, itemID, err)
	}

	details := make(map[string]any)
	if data.Valid && data.String != "" {
		if err := json.Unmarshal([]byte(data.String), &details); err != nil {
			s.log.Warn("undecodable data column, using empty object",
				zap.String("item_type", string(itemType)),
				zap.String("item_id", itemID),
				zap.Error(err))
			details = make(map[string]any)
		}
	}
	if title.Valid && title.String != "" {
		details["title"] = title.String
	}
	if specialties.Valid && specialties.String != "" {
		var list []string
		if err := json.Unmarshal([]byte(specialties.String), &list); err != nil {
			s.log.Warn("undecodable specialties column, using empty list",
				zap.String("item_type", string(itemType)),
				zap.String("item_id", itemID),
				zap.Error(err))
			list = []string{}
		}
		details["specialties"] = list
	}

	return details, true, nil
}

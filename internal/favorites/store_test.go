// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package favorites

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/medbridge/pkg/types"
)

func seedStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "favorites.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE favorite_items (
		item_type   TEXT NOT NULL,
		item_id     TEXT NOT NULL,
		title       TEXT,
		data        TEXT,
		specialties TEXT,
		PRIMARY KEY (item_type, item_id)
	)`)
	require.NoError(t, err)

	rows := []struct {
		itemType, itemID, title, data, specialties string
	}{
		{"trial", "NCT04280705", "Adaptive COVID-19 Treatment Trial",
			`{"phase": "Phase 3", "status": "Completed"}`, ""},
		{"expert", "exp-17", "Dr. Rivera",
			`{"city": "Boston"}`, `["oncology", "immunotherapy"]`},
		{"expert", "exp-18", "Dr. Chen", `{"city": "Seattle"}`, `not-json`},
		{"publication", "pub-weird", "", `{broken json`, ""},
	}
	for _, r := range rows {
		_, err = db.Exec(
			`INSERT INTO favorite_items (item_type, item_id, title, data, specialties) VALUES (?, ?, ?, ?, ?)`,
			r.itemType, r.itemID, r.title, r.data, r.specialties)
		require.NoError(t, err)
	}

	store, err := OpenStore(path, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreLookupFound(t *testing.T) {
	store := seedStore(t)

	details, found, err := store.Lookup(context.Background(), types.FavoriteTrial, "NCT04280705")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "Adaptive COVID-19 Treatment Trial", details["title"])
	assert.Equal(t, "Phase 3", details["phase"])
	assert.Equal(t, "Completed", details["status"])
	assert.NotContains(t, details, "specialties")
}

func TestStoreLookupSpecialties(t *testing.T) {
	store := seedStore(t)

	details, found, err := store.Lookup(context.Background(), types.FavoriteExpert, "exp-17")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"oncology", "immunotherapy"}, details["specialties"])
}

func TestStoreLookupNotFound(t *testing.T) {
	store := seedStore(t)

	details, found, err := store.Lookup(context.Background(), types.FavoriteTrial, "NCT99999999")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, details)

	// Same id under another type is a distinct key.
	_, found, err = store.Lookup(context.Background(), types.FavoritePublication, "NCT04280705")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStoreLookupDegradesOnBadColumns(t *testing.T) {
	store := seedStore(t)

	// Undecodable specialties degrade to an empty list, never an error.
	details, found, err := store.Lookup(context.Background(), types.FavoriteExpert, "exp-18")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{}, details["specialties"])
	assert.Equal(t, "Dr. Chen", details["title"])

	// Undecodable data degrades to an empty object.
	details, found, err = store.Lookup(context.Background(), types.FavoritePublication, "pub-weird")
	require.NoError(t, err)
	require.True(t, found)
	assert.NotContains(t, details, "phase")
}

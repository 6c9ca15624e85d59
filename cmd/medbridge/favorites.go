// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/medbridge/internal/favorites"
	"github.com/pdiddy/medbridge/internal/pubmed"
	"github.com/pdiddy/medbridge/internal/trials"
	"github.com/pdiddy/medbridge/pkg/types"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Resolve stored favorite references to detail records",
}

var favoritesResolveCmd = &cobra.Command{
	Use:   "resolve <type:id>...",
	Short: "Resolve favorite references, local store first",
	Long: `Resolve looks each reference up in the local favorites store, then
falls back to a live upstream fetch for trial and publication references
whose id matches the upstream shape. References are given as type:id
pairs, e.g.

  medbridge favorites resolve trial:NCT04280705 publication:33301246

Every reference produces exactly one result; a failed external fetch
yields a miss with no details, never an error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFavoritesResolve,
}

func init() {
	favoritesResolveCmd.Flags().String("owner", "", "owner id recorded on the results")
	favoritesResolveCmd.Flags().String("db", "", "path to the favorites SQLite database")
	addOutputFlags(favoritesResolveCmd)

	favoritesCmd.AddCommand(favoritesResolveCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func parseFavoriteArg(owner, arg string) (types.Favorite, error) {
	kind, id, ok := strings.Cut(arg, ":")
	if !ok || id == "" {
		return types.Favorite{}, fmt.Errorf("invalid reference %q: use type:id", arg)
	}
	switch types.FavoriteType(kind) {
	case types.FavoriteTrial, types.FavoritePublication, types.FavoriteResearcher, types.FavoriteExpert:
	default:
		return types.Favorite{}, fmt.Errorf("unknown favorite type %q: use trial, publication, researcher, or expert", kind)
	}
	return types.Favorite{OwnerID: owner, Type: types.FavoriteType(kind), ItemID: id}, nil
}

func runFavoritesResolve(cmd *cobra.Command, args []string) error {
	owner, _ := cmd.Flags().GetString("owner")

	favs := make([]types.Favorite, 0, len(args))
	for _, arg := range args {
		fav, err := parseFavoriteArg(owner, arg)
		if err != nil {
			return err
		}
		favs = append(favs, fav)
	}

	cfg := loadConfig(cmd)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.Favorites.DBPath
	}
	if dbPath == "" {
		return fmt.Errorf("provide the favorites database with --db or favorites.db_path")
	}

	store, err := favorites.OpenStore(dbPath, log)
	if err != nil {
		return err
	}
	defer store.Close()

	httpClient := newHTTPClient(cfg)
	engine := favorites.NewEngine(
		store,
		trials.NewClient(httpClient, log, cfg.Trials),
		pubmed.NewClient(httpClient, log, cfg.Publications),
		log,
	)

	resolved := engine.ResolveAll(cmd.Context(), favs)

	if done, err := emitStructured(cmd, resolved); done {
		return err
	}

	for _, r := range resolved {
		title := resolvedTitle(r)
		fmt.Printf("%-13s %-13s %-22s %s\n", r.State, r.Type, r.ItemID, truncate(title, 60))
	}
	return nil
}

func resolvedTitle(r types.ResolvedFavorite) string {
	switch d := r.Details.(type) {
	case types.Trial:
		return d.Title
	case types.Publication:
		return d.Title
	case map[string]any:
		if t, ok := d["title"].(string); ok {
			return t
		}
	}
	return ""
}

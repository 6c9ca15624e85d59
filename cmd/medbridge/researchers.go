// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/medbridge/internal/orcid"
	"github.com/pdiddy/medbridge/pkg/types"
)

var researchersCmd = &cobra.Command{
	Use:   "researchers",
	Short: "Search and fetch researcher identity records",
}

var researchersSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the identity registry",
	Long: `Search queries the identity registry and prints normalized researcher
profiles. With --details each hit is enriched with a full-record fetch;
a hit whose detail fetch fails degrades to its search-stub profile
instead of dropping out.`,
	RunE: runResearchersSearch,
}

var researchersGetCmd = &cobra.Command{
	Use:   "get <orcid>",
	Short: "Fetch one full researcher profile by ORCID iD",
	Args:  cobra.ExactArgs(1),
	RunE:  runResearchersGet,
}

func init() {
	researchersSearchCmd.Flags().String("query", "", "free-text search query")
	researchersSearchCmd.Flags().Int("max-results", defaultMaxResults, "maximum number of profiles to return")
	researchersSearchCmd.Flags().Bool("details", false, "fetch the full record for each hit")
	addOutputFlags(researchersSearchCmd)
	addOutputFlags(researchersGetCmd)

	researchersCmd.AddCommand(researchersSearchCmd)
	researchersCmd.AddCommand(researchersGetCmd)
	rootCmd.AddCommand(researchersCmd)
}

func runResearchersSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	if query == "" {
		return fmt.Errorf("provide a search query")
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	details, _ := cmd.Flags().GetBool("details")

	cfg := loadConfig(cmd)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	client := orcid.NewClient(newHTTPClient(cfg), log, cfg.Researchers)
	profiles, err := client.Search(cmd.Context(), query, maxResults, details || cfg.Researchers.FetchDetails)
	if err != nil {
		return err
	}

	if done, err := emitStructured(cmd, profiles); done {
		return err
	}

	if len(profiles) == 0 {
		fmt.Println("No profiles found.")
		return nil
	}
	for _, p := range profiles {
		fmt.Printf("%-19s %-30s %s\n", p.ORCID, truncate(p.Name, 30), truncate(p.AffiliationSummary, 50))
	}
	fmt.Printf("\n%d profiles\n", len(profiles))
	return nil
}

func runResearchersGet(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	client := orcid.NewClient(newHTTPClient(cfg), log, cfg.Researchers)
	profile, err := client.GetProfile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if done, err := emitStructured(cmd, profile); done {
		return err
	}

	printResearcher(profile)
	return nil
}

func printResearcher(p types.ResearcherProfile) {
	printField("ORCID", p.ORCID)
	printField("Name", p.Name)
	printField("Affiliation", p.AffiliationSummary)
	printField("Keywords", strings.Join(p.Keywords, ", "))
	if p.Biography != "" {
		fmt.Printf("\n%s\n", p.Biography)
	}
	if len(p.Works) > 0 {
		fmt.Println("\nRecent works:")
		for _, w := range p.Works {
			line := "  - " + w.Title
			if w.Date != "" {
				line += " (" + w.Date + ")"
			}
			fmt.Println(line)
		}
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/medbridge/internal/pubmed"
)

var publicationsCmd = &cobra.Command{
	Use:   "publications",
	Short: "Search and fetch bibliographic records from the literature engine",
}

var publicationsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the literature engine by relevance",
	Long: `Search runs the three-stage pipeline: an id search ranked by relevance,
then a summary fetch and an abstract fetch in parallel, merged into
normalized records. Records without a title are dropped.`,
	RunE: runPublicationsSearch,
}

var publicationsGetCmd = &cobra.Command{
	Use:   "get <pmid>",
	Short: "Fetch one record by PMID",
	Args:  cobra.ExactArgs(1),
	RunE:  runPublicationsGet,
}

func init() {
	publicationsSearchCmd.Flags().String("query", "", "free-text search query")
	publicationsSearchCmd.Flags().Int("max-results", defaultMaxResults, "maximum number of records to return")
	addOutputFlags(publicationsSearchCmd)
	addOutputFlags(publicationsGetCmd)

	publicationsCmd.AddCommand(publicationsSearchCmd)
	publicationsCmd.AddCommand(publicationsGetCmd)
	rootCmd.AddCommand(publicationsCmd)
}

func runPublicationsSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	if query == "" {
		return fmt.Errorf("provide a search query")
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	cfg := loadConfig(cmd)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	client := pubmed.NewClient(newHTTPClient(cfg), log, cfg.Publications)
	found, err := client.Search(cmd.Context(), query, maxResults)
	if err != nil {
		return err
	}

	if done, err := emitStructured(cmd, found); done {
		return err
	}

	if len(found) == 0 {
		fmt.Println("No records found.")
		return nil
	}
	for _, pub := range found {
		fmt.Printf("%.2f  %-10s %-60s %s\n",
			pub.RelevanceScore, pub.PMID, truncate(pub.Title, 60), truncate(pub.Journal, 30))
	}
	fmt.Printf("\n%d records\n", len(found))
	return nil
}

func runPublicationsGet(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	client := pubmed.NewClient(newHTTPClient(cfg), log, cfg.Publications)
	pub, err := client.GetByPMID(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if done, err := emitStructured(cmd, pub); done {
		return err
	}

	printField("PMID", pub.PMID)
	printField("Title", pub.Title)
	printField("Authors", pub.Authors)
	printField("Journal", pub.Journal)
	printField("Published", pub.PubDate)
	printField("DOI", pub.DOI)
	printField("URL", pub.URL)
	fmt.Printf("\n%s\n", pub.Abstract)
	return nil
}

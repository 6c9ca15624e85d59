// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/medbridge/internal/orcid"
	"github.com/pdiddy/medbridge/internal/pubmed"
	"github.com/pdiddy/medbridge/internal/recommend"
	"github.com/pdiddy/medbridge/internal/trials"
	"github.com/pdiddy/medbridge/pkg/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Build ranked trial, publication, and expert recommendations",
	Long: `Recommend queries the three registries for a patient profile and prints
scored candidate lists. When a registry has no real match for the
condition, two clearly marked synthetic placeholders stand in. Without a
condition every list is empty.`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().String("condition", "", "patient's medical condition")
	recommendCmd.Flags().String("country", "", "restrict trials to sites in this country")
	recommendCmd.Flags().String("location", "", "free-form patient location")
	addOutputFlags(recommendCmd)

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	condition, _ := cmd.Flags().GetString("condition")
	country, _ := cmd.Flags().GetString("country")
	location, _ := cmd.Flags().GetString("location")

	cfg := loadConfig(cmd)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	httpClient := newHTTPClient(cfg)
	synth := recommend.NewSynthesizer(
		trials.NewClient(httpClient, log, cfg.Trials),
		pubmed.NewClient(httpClient, log, cfg.Publications),
		orcid.NewClient(httpClient, log, cfg.Researchers),
		log,
	)

	recs := synth.Recommend(cmd.Context(), types.PatientProfile{
		Condition: condition,
		Country:   country,
		Location:  location,
	})

	if done, err := emitStructured(cmd, recs); done {
		return err
	}

	printCandidates("Trials", recs.Trials)
	printCandidates("Publications", recs.Publications)
	printCandidates("Experts", recs.Experts)
	return nil
}

func printCandidates(heading string, candidates []types.Candidate) {
	fmt.Printf("%s:\n", heading)
	if len(candidates) == 0 {
		fmt.Println("  (none)")
		fmt.Println()
		return
	}
	for _, c := range candidates {
		marker := " "
		if c.Synthetic {
			marker = "*"
		}
		line := fmt.Sprintf("%s %3d  %s", marker, c.Score, truncate(c.Title, 70))
		if c.Kind == types.CandidateExpert && c.Rating > 0 {
			line += fmt.Sprintf("  (%.1f, %d reviews)", c.Rating, c.Reviews)
		}
		fmt.Println(line)
	}
	fmt.Println()
}

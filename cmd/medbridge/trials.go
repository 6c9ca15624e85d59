// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/medbridge/internal/trials"
	"github.com/pdiddy/medbridge/pkg/types"
)

var trialsCmd = &cobra.Command{
	Use:   "trials",
	Short: "Search and fetch clinical trial registry studies",
}

var trialsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the trial registry by condition and location",
	Long: `Search queries the public trial registry and prints normalized study
records. Records the registry returns without a study identifier are
skipped, never fatal.`,
	RunE: runTrialsSearch,
}

var trialsGetCmd = &cobra.Command{
	Use:   "get <nct-id>",
	Short: "Fetch one study by NCT identifier",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrialsGet,
}

func init() {
	trialsSearchCmd.Flags().String("condition", "", "medical condition to search for")
	trialsSearchCmd.Flags().String("location", "", "location filter (city, state, or country)")
	trialsSearchCmd.Flags().Int("max-results", defaultMaxResults, "maximum number of studies to return")
	addOutputFlags(trialsSearchCmd)
	addOutputFlags(trialsGetCmd)

	trialsCmd.AddCommand(trialsSearchCmd)
	trialsCmd.AddCommand(trialsGetCmd)
	rootCmd.AddCommand(trialsCmd)
}

func runTrialsSearch(cmd *cobra.Command, args []string) error {
	condition, _ := cmd.Flags().GetString("condition")
	location, _ := cmd.Flags().GetString("location")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if condition == "" {
		return fmt.Errorf("provide a condition with --condition")
	}

	cfg := loadConfig(cmd)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	client := trials.NewClient(newHTTPClient(cfg), log, cfg.Trials)
	found, err := client.Search(cmd.Context(), condition, location, maxResults)
	if err != nil {
		return err
	}

	if done, err := emitStructured(cmd, found); done {
		return err
	}

	if len(found) == 0 {
		fmt.Println("No studies found.")
		return nil
	}
	for _, trial := range found {
		printTrialRow(trial)
	}
	fmt.Printf("\n%d studies\n", len(found))
	return nil
}

func runTrialsGet(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	client := trials.NewClient(newHTTPClient(cfg), log, cfg.Trials)
	trial, err := client.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if done, err := emitStructured(cmd, trial); done {
		return err
	}

	printField("NCT ID", trial.NCTID)
	printField("Title", trial.Title)
	printField("Status", trial.Status)
	printField("Phase", trial.Phase)
	printField("Sponsor", trial.Sponsor)
	printField("Conditions", trial.ConditionsDisplay())
	if trial.Enrollment > 0 {
		printField("Enrollment", strconv.Itoa(trial.Enrollment))
	}
	for _, loc := range trial.Locations {
		printField("Location", loc)
	}
	printField("Recruiting", strconv.FormatBool(trial.Recruiting))
	printField("URL", trial.URL)
	return nil
}

func printTrialRow(trial types.Trial) {
	marker := " "
	if trial.Recruiting {
		marker = "R"
	}
	fmt.Printf("%s %-13s %-8s %-60s %s\n",
		marker, trial.NCTID, trial.Phase, truncate(trial.Title, 60), truncate(trial.ConditionsDisplay(), 40))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

// addOutputFlags registers the machine-readable output switches shared
// by every query subcommand.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "output as JSON")
	cmd.Flags().Bool("yaml", false, "output as YAML")
}

// emitStructured writes v as JSON or YAML when the matching flag is set
// and reports whether it did.
func emitStructured(cmd *cobra.Command, v any) (bool, error) {
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	}
	if yamlOut, _ := cmd.Flags().GetBool("yaml"); yamlOut {
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return true, enc.Encode(v)
	}
	return false, nil
}

// truncate shortens s for single-line table cells.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func printField(label, value string) {
	if value != "" {
		fmt.Printf("%-14s %s\n", label+":", value)
	}
}

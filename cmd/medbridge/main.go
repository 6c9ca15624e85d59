// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the medbridge CLI, the command
// surface over the external medical-data normalization layer.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/medbridge/internal/logging"
	"github.com/pdiddy/medbridge/internal/secrets"
	"github.com/pdiddy/medbridge/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout    = 10 * time.Second
	defaultUserAgent  = "medbridge/0.1"
	defaultMaxResults = 10
)

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, otherwise the secret value
// for key, otherwise "".
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the medbridge CLI.
var rootCmd = &cobra.Command{
	Use:   "medbridge",
	Short: "Normalized access to clinical trial, literature, and researcher registries",
	Long: `medbridge queries three public medical registries and normalizes their
payloads into stable canonical records: clinical trial studies, PubMed
bibliographic records, and ORCID researcher identities.

On top of the normalizers it resolves stored favorite references
(local store first, live upstream fallback) and synthesizes ranked
recommendation lists for a patient profile.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./medbridge.yaml or ~/.config/medbridge/config.yaml)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout for all upstreams (default 10s)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default info)")
	rootCmd.PersistentFlags().String("log-format", "", "log format: json or console (default console)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("medbridge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "medbridge"))
		}
	}

	viper.SetEnvPrefix("MEDBRIDGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration: flags beat the config
// file, which beats built-in defaults. One timeout covers all upstreams.
func loadConfig(cmd *cobra.Command) types.Config {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("http.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	userAgent := viper.GetString("http.user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	httpCfg := types.HTTPConfig{Timeout: timeout, UserAgent: userAgent}

	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		level = viper.GetString("log.level")
	}
	format, _ := cmd.Flags().GetString("log-format")
	if format == "" {
		format = viper.GetString("log.format")
	}

	cfg := types.Config{
		HTTP: httpCfg,
		Trials: types.TrialsConfig{
			HTTPConfig: httpCfg,
			MaxResults: defaultMaxResults,
		},
		Publications: types.PublicationsConfig{
			HTTPConfig: httpCfg,
			MaxResults: defaultMaxResults,
			APIKey:     secretDefault("ncbi-api-key", viper.GetString("publications.api_key")),
			Email:      secretDefault("contact-email", viper.GetString("publications.email")),
		},
		Researchers: types.ResearchersConfig{
			HTTPConfig:   httpCfg,
			MaxResults:   defaultMaxResults,
			FetchDetails: viper.GetBool("researchers.fetch_details"),
		},
		Favorites: types.FavoritesConfig{
			DBPath: viper.GetString("favorites.db_path"),
		},
		Log: types.LogConfig{Level: level, Format: format},
	}
	return cfg
}

// newLogger builds the zap logger for one command invocation.
func newLogger(cfg types.Config) (*zap.Logger, error) {
	format := cfg.Log.Format
	if format == "" {
		format = "console"
	}
	return logging.New(cfg.Log.Level, format)
}

// newHTTPClient builds the shared outbound client. Every upstream call
// goes through it, so the uniform timeout holds everywhere.
func newHTTPClient(cfg types.Config) *http.Client {
	return &http.Client{Timeout: cfg.HTTP.Timeout}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

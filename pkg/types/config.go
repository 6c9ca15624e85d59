// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for outbound upstream requests.
// One timeout applies uniformly to all three upstreams.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "medbridge/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// TrialsConfig holds settings for the trial-registry client.
type TrialsConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the default page size for registry searches (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PublicationsConfig holds settings for the literature-engine client.
type PublicationsConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the default id-search size (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// APIKey is an optional E-utilities key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email is an optional contact address sent with requests.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// ResearchersConfig holds settings for the identity-registry client.
type ResearchersConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the default search size (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// FetchDetails controls whether searches fan out one full-record
	// fetch per hit (slower, complete) or normalize from stubs.
	FetchDetails bool `json:"fetch_details" yaml:"fetch_details"`
}

// FavoritesConfig holds settings for the local favorites store.
type FavoritesConfig struct {
	// DBPath is the SQLite database file owned by the persistence layer.
	DBPath string `json:"db_path" yaml:"db_path"`
}

// LogConfig holds logger construction parameters.
type LogConfig struct {
	// Level is the minimum severity: "debug", "info", "warn", "error"
	// (default "info").
	Level string `json:"level" yaml:"level"`

	// Format selects "json" or "console" output (default "json").
	Format string `json:"format" yaml:"format"`
}

// Config groups all component configurations.
type Config struct {
	HTTP         HTTPConfig         `json:"http" yaml:"http"`
	Trials       TrialsConfig       `json:"trials" yaml:"trials"`
	Publications PublicationsConfig `json:"publications" yaml:"publications"`
	Researchers  ResearchersConfig  `json:"researchers" yaml:"researchers"`
	Favorites    FavoritesConfig    `json:"favorites" yaml:"favorites"`
	Log          LogConfig          `json:"log" yaml:"log"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "grant-reporter/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// QueryConfig holds settings for a single funding-search query.
type QueryConfig struct {
	HTTPConfig `yaml:",inline"`

	// Limit is the maximum number of fiscal-year records requested per
	// investigator (default 50, capped at 500 by the client).
	Limit int `json:"limit" yaml:"limit"`
}

// FetchConfig holds settings for a full roster fetch run.
type FetchConfig struct {
	QueryConfig `yaml:",inline"`

	// QueryDelay is the pause between consecutive investigator queries
	// (default 1s).
	QueryDelay time.Duration `json:"query_delay" yaml:"query_delay"`
}

// StoreConfig holds settings for the report store.
type StoreConfig struct {
	// ReportDir is the base directory for report artifacts
	// (contains index/ with the database and exports).
	ReportDir string `json:"report_dir" yaml:"report_dir"`

	// MaxResults is the default maximum number of query results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

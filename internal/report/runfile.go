// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/grant-reporter/internal/grants"
)

// RunFile is the on-disk record of one fetch run: the parameters that
// produced the report plus counters and diagnostics, so a refresh can be
// audited later without re-querying the API.
type RunFile struct {
	Params  RunParams  `yaml:"params"`
	Summary RunSummary `yaml:"summary"`
}

// RunParams stores the fetch parameters in a serializable form.
type RunParams struct {
	RosterSize int    `yaml:"roster_size"`
	Cutoff     string `yaml:"cutoff"`
	Today      string `yaml:"today"`
	Limit      int    `yaml:"limit"`
}

// RunSummary stores run counters, diagnostics, and a timestamp.
type RunSummary struct {
	Queried   int       `yaml:"queried"`
	Failed    int       `yaml:"failed"`
	Fetched   int       `yaml:"fetched"`
	Active    int       `yaml:"active"`
	Warnings  []string  `yaml:"warnings,omitempty"`
	Timestamp time.Time `yaml:"timestamp"`
}

const dateFmt = "2006-01-02"

// WriteRunFile saves the parameters and outcome of a fetch run as YAML.
func WriteRunFile(path string, rosterSize, limit int, today, cutoff time.Time, result grants.RunResult) error {
	rf := RunFile{
		Params: RunParams{
			RosterSize: rosterSize,
			Cutoff:     cutoff.Format(dateFmt),
			Today:      today.Format(dateFmt),
			Limit:      limit,
		},
		Summary: RunSummary{
			Queried:   result.Queried,
			Failed:    result.Failed,
			Fetched:   result.Fetched,
			Active:    result.Active,
			Warnings:  result.Warnings,
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run file from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}

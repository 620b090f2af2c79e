// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/grant-reporter/internal/report"
	"github.com/pdiddy/grant-reporter/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes the report store to reportDir/index/export.yaml.
// It supports the same filters as Retrieve.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.reportDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the report store to reportDir/index/export.json.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.reportDir, indexDir, "export.json")
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportCSV writes the report store to reportDir/index/export.csv using
// the standard report column layout.
func (s *Store) ExportCSV(ctx context.Context, opts QueryOptions) error {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return err
	}

	rows := make([]types.ReportRecord, len(records))
	for i, r := range records {
		rows[i] = r.ReportRecord
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, rows); err != nil {
		return err
	}

	path := filepath.Join(s.reportDir, indexDir, "export.csv")
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func (s *Store) exportRecords(ctx context.Context, opts QueryOptions) ([]StoredRecord, error) {
	opts.MaxResults = exportLimit
	records, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return records, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report exports the aggregated funding report as CSV and
// persists per-run summaries.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pdiddy/grant-reporter/pkg/types"
)

// csvHeader is the report file header row, in export column order.
var csvHeader = []string{
	"grant_num", "pi_name", "title", "org_name", "fy",
	"award_amount", "start_date", "end_date", "budget_start", "budget_end",
}

// WriteCSV writes the report with a header row and one row per record,
// in aggregator order.
func WriteCSV(w io.Writer, records []types.ReportRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.GrantNum, r.PIName, r.Title, r.OrgName, r.FiscalYear,
			r.AwardAmount, r.StartDate, r.EndDate, r.BudgetStart, r.BudgetEnd,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing report row for %s: %w", r.GrantNum, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

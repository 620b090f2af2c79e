// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/grant-reporter/pkg/types"
)

// QueryOptions holds filters for report store queries. Zero values mean
// "no filter".
type QueryOptions struct {
	// PILast filters by the last name the grant was queried under.
	PILast string

	// FiscalYear filters by the formatted fiscal year (e.g. "2025").
	FiscalYear string

	// TitleLike filters by a case-insensitive title substring.
	TitleLike string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// StoredRecord is a report row with the name it was queried under and
// the fetch timestamp.
type StoredRecord struct {
	types.ReportRecord `yaml:",inline"`

	QueriedLast  string `json:"queried_last" yaml:"queried_last"`
	QueriedFirst string `json:"queried_first" yaml:"queried_first"`
	FetchedAt    string `json:"fetched_at" yaml:"fetched_at"`
}

// Retrieve queries the store with optional filters, ordered by queried
// last name, then fiscal year descending.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]StoredRecord, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT grant_num, pi_name, title, org_name, fy, award_amount,
			start_date, end_date, budget_start, budget_end,
			queried_last, queried_first, fetched_at
		FROM grants
		WHERE 1=1`)

	if opts.PILast != "" {
		qb.WriteString(` AND queried_last = ?`)
		args = append(args, opts.PILast)
	}
	if opts.FiscalYear != "" {
		qb.WriteString(` AND fy = ?`)
		args = append(args, opts.FiscalYear)
	}
	if opts.TitleLike != "" {
		qb.WriteString(` AND title LIKE ? COLLATE NOCASE`)
		args = append(args, "%"+opts.TitleLike+"%")
	}

	qb.WriteString(` ORDER BY queried_last, queried_first, fy DESC LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying report store: %w", err)
	}
	defer rows.Close()

	var results []StoredRecord
	for rows.Next() {
		var r StoredRecord
		if err := rows.Scan(
			&r.GrantNum, &r.PIName, &r.Title, &r.OrgName, &r.FiscalYear,
			&r.AwardAmount, &r.StartDate, &r.EndDate, &r.BudgetStart, &r.BudgetEnd,
			&r.QueriedLast, &r.QueriedFirst, &r.FetchedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

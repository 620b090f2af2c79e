// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package grants

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/grant-reporter/pkg/types"
)

// Searcher issues one funding query per investigator. The RePORTER
// client implements it; tests substitute a fake.
type Searcher interface {
	Search(ctx context.Context, name types.Name, cfg types.QueryConfig) ([]types.GrantRecord, error)
}

// Contribution is one investigator's share of a run: the report rows
// produced under their name, possibly none.
type Contribution struct {
	Name    types.Name
	Records []types.ReportRecord
}

// RunResult holds the aggregated report and the counters from one fetch
// run over a roster.
type RunResult struct {
	// Records is the report in roster order; within one investigator,
	// rows keep the query's fiscal-year-descending order.
	Records []types.ReportRecord

	// Contributions breaks Records down per successfully queried name,
	// including names that contributed zero rows. Failed queries do not
	// appear here.
	Contributions []Contribution

	Queried int // names whose query succeeded
	Failed  int // names whose query failed (empty contribution)
	Fetched int // raw records returned across all names
	Active  int // records that passed the active-grant filter

	// Warnings collects per-name and per-record diagnostics for the run
	// summary file.
	Warnings []string
}

// Total returns the number of roster entries processed.
func (r RunResult) Total() int {
	return r.Queried + r.Failed
}

// Run processes the roster strictly sequentially: each investigator's
// query completes (or fails) before the next begins, with an optional
// delay in between. A failed query is a warning, not a batch failure —
// that name simply contributes nothing. Per-record filter errors likewise
// exclude only the offending record.
//
// Records are appended in roster order and never reordered or merged
// across names: a grant is attributed to the name it was queried under,
// even when a co-investigator elsewhere in the roster would match it too.
func Run(ctx context.Context, s Searcher, names []types.Name, cfg types.FetchConfig, today, cutoff time.Time, w io.Writer) (RunResult, error) {
	var result RunResult

	for i, name := range names {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if i > 0 && cfg.QueryDelay > 0 {
			time.Sleep(cfg.QueryDelay)
		}

		fmt.Fprintf(w, "querying: %s\n", name)

		records, err := s.Search(ctx, name, cfg.QueryConfig)
		if err != nil {
			msg := fmt.Sprintf("%s: %v", name, err)
			fmt.Fprintf(w, "failed:  %s\n", msg)
			result.Warnings = append(result.Warnings, msg)
			result.Failed++
			continue
		}
		result.Queried++
		result.Fetched += len(records)

		contribution := Contribution{Name: name}
		for _, rec := range records {
			active, err := IsActive(rec, today, cutoff)
			if err != nil {
				msg := fmt.Sprintf("%s: %v", name, err)
				fmt.Fprintf(w, "warning: %s\n", msg)
				result.Warnings = append(result.Warnings, msg)
				continue
			}
			if !active {
				continue
			}
			contribution.Records = append(contribution.Records, Project(rec))
		}
		result.Records = append(result.Records, contribution.Records...)
		result.Contributions = append(result.Contributions, contribution)
		result.Active += len(contribution.Records)

		fmt.Fprintf(w, "  %d records, %d active\n", len(records), len(contribution.Records))
	}

	fmt.Fprintf(w, "\nRun summary: %d queried, %d failed, %d records fetched, %d active (roster: %d)\n",
		result.Queried, result.Failed, result.Fetched, result.Active, result.Total())

	return result, nil
}

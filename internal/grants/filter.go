// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package grants decides which fiscal-year funding records are still
// active, projects them into report rows, and runs the sequential
// per-investigator fetch pipeline.
package grants

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/grant-reporter/pkg/types"
)

const dateFmt = "2006-01-02"

// sentinelProjectEnd substitutes for an absent project end date. It is
// deliberately stale: a record without a project end normally fails the
// cutoff test and drops out without a dedicated branch.
const sentinelProjectEnd = "2020-01-01"

// IsActive reports whether a fiscal-year record counts as active:
// its budget period must end after today AND its overall project end must
// be on or after the cutoff. All comparisons are calendar-date only.
//
// A missing or unparsable budget end is an error, as is a project end
// that is present but unparsable; callers log the error and exclude the
// record. An absent project end is not an error — the sentinel stands in.
// The two fields are intentionally treated asymmetrically.
func IsActive(rec types.GrantRecord, today, cutoff time.Time) (bool, error) {
	if strings.TrimSpace(rec.BudgetEnd) == "" {
		return false, fmt.Errorf("grant %s: missing budget end date", grantNum(rec))
	}
	budgetEnd, err := ParseAPIDate(rec.BudgetEnd)
	if err != nil {
		return false, fmt.Errorf("grant %s: budget end: %w", grantNum(rec), err)
	}

	projectEndStr := rec.ProjectEndDate
	if strings.TrimSpace(projectEndStr) == "" {
		projectEndStr = sentinelProjectEnd
	}
	projectEnd, err := ParseAPIDate(projectEndStr)
	if err != nil {
		return false, fmt.Errorf("grant %s: project end: %w", grantNum(rec), err)
	}

	return budgetEnd.After(DateOnly(today)) && !projectEnd.Before(DateOnly(cutoff)), nil
}

// ParseAPIDate parses the calendar-date portion of a RePORTER date-time
// string ("YYYY-MM-DDTHH:mm:ssZ"), discarding anything after the first
// "T". A bare "YYYY-MM-DD" also parses.
func ParseAPIDate(s string) (time.Time, error) {
	datePart, _, _ := strings.Cut(s, "T")
	t, err := time.Parse(dateFmt, datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// DateOnly truncates t to a calendar date in UTC so comparisons ignore
// time of day and zone.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func grantNum(rec types.GrantRecord) string {
	if rec.ProjectNum == "" {
		return "N/A"
	}
	return rec.ProjectNum
}

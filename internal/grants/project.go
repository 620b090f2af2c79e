// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package grants

import (
	"math"
	"strconv"

	"github.com/pdiddy/grant-reporter/pkg/types"
)

const notAvailable = "N/A"

// Project maps a raw funding record onto a formatted report row. It is a
// total function: dates that fail to parse pass through unchanged, and
// any missing field renders as "N/A".
func Project(rec types.GrantRecord) types.ReportRecord {
	return types.ReportRecord{
		GrantNum:    orNA(rec.ProjectNum),
		PIName:      orNA(rec.ContactPIName),
		Title:       orNA(rec.ProjectTitle),
		OrgName:     orNA(rec.Organization.OrgName),
		FiscalYear:  formatFiscalYear(rec.FiscalYear),
		AwardAmount: formatCurrency(rec.AwardAmount),
		StartDate:   formatDate(rec.ProjectStartDate),
		EndDate:     formatDate(rec.ProjectEndDate),
		BudgetStart: formatDate(rec.BudgetStart),
		BudgetEnd:   formatDate(rec.BudgetEnd),
	}
}

// formatDate re-renders the date portion of an API date-time string as
// MM/DD/YYYY. An empty value renders "N/A"; an unparsable one passes
// through unchanged rather than failing the projection.
func formatDate(s string) string {
	if s == "" {
		return notAvailable
	}
	t, err := ParseAPIDate(s)
	if err != nil {
		return s
	}
	return t.Format("01/02/2006")
}

// formatCurrency renders an award amount with a dollar sign, thousands
// separators, and no decimal places. A nil amount renders "N/A".
func formatCurrency(amount *float64) string {
	if amount == nil {
		return notAvailable
	}
	v := int64(math.Round(*amount))
	neg := v < 0
	if neg {
		v = -v
	}

	digits := strconv.FormatInt(v, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}

	if neg {
		return "-$" + string(out)
	}
	return "$" + string(out)
}

func formatFiscalYear(fy int) string {
	if fy == 0 {
		return notAvailable
	}
	return strconv.Itoa(fy)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

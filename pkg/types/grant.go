// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the grant-reporter
// pipeline: investigator names, raw NIH RePORTER records, and the
// normalized report rows exported to researchers.
package types

// Name is one investigator as a (last, first) pair. Equality is exact
// string equality on both fields after trimming; no case or diacritic
// folding is applied, so "al’Absi" and "Al'Absi" are distinct.
type Name struct {
	Last  string `json:"last_name" yaml:"last_name"`
	First string `json:"first_name" yaml:"first_name"`
}

// String renders the name in "Last, First" form.
func (n Name) String() string {
	return n.Last + ", " + n.First
}

// GrantRecord is one fiscal-year funding record as returned by the NIH
// RePORTER projects-search API. Date fields are the API's raw
// "YYYY-MM-DDTHH:mm:ssZ" strings; any of them may be empty. AwardAmount
// is a pointer because the API returns null for records without a
// published amount.
type GrantRecord struct {
	ProjectNum       string       `json:"project_num"`
	ContactPIName    string       `json:"contact_pi_name"`
	ProjectTitle     string       `json:"project_title"`
	AwardAmount      *float64     `json:"award_amount"`
	ProjectStartDate string       `json:"project_start_date"`
	ProjectEndDate   string       `json:"project_end_date"`
	BudgetStart      string       `json:"budget_start"`
	BudgetEnd        string       `json:"budget_end"`
	FiscalYear       int          `json:"fiscal_year"`
	Organization     Organization `json:"organization"`
}

// Organization is the awardee institution block nested in a GrantRecord.
type Organization struct {
	OrgName string `json:"org_name"`
}

// ReportRecord is one normalized report row. All fields are already
// formatted for display: dates as MM/DD/YYYY, the award amount as a
// currency string, and "N/A" for anything missing.
type ReportRecord struct {
	GrantNum     string `json:"grant_num" yaml:"grant_num"`
	PIName       string `json:"pi_name" yaml:"pi_name"`
	Title        string `json:"title" yaml:"title"`
	OrgName      string `json:"org_name" yaml:"org_name"`
	FiscalYear   string `json:"fy" yaml:"fy"`
	AwardAmount  string `json:"award_amount" yaml:"award_amount"`
	StartDate    string `json:"start_date" yaml:"start_date"`
	EndDate      string `json:"end_date" yaml:"end_date"`
	BudgetStart  string `json:"budget_start" yaml:"budget_start"`
	BudgetEnd    string `json:"budget_end" yaml:"budget_end"`
}

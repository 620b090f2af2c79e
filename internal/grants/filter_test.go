// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package grants

import (
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/grant-reporter/pkg/types"
)

var (
	testToday  = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	testCutoff = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
)

func TestIsActive(t *testing.T) {
	tests := []struct {
		name string
		rec  types.GrantRecord
		want bool
	}{
		{
			name: "budget open and project end on cutoff",
			rec: types.GrantRecord{
				BudgetEnd:      "2025-12-31T12:00:00Z",
				ProjectEndDate: "2026-01-01T12:00:00Z",
			},
			want: true,
		},
		{
			name: "project end one day before cutoff",
			rec: types.GrantRecord{
				BudgetEnd:      "2025-12-31T12:00:00Z",
				ProjectEndDate: "2025-12-31T12:00:00Z",
			},
			want: false,
		},
		{
			name: "budget already lapsed",
			rec: types.GrantRecord{
				BudgetEnd:      "2025-05-01T12:00:00Z",
				ProjectEndDate: "2030-01-01T12:00:00Z",
			},
			want: false,
		},
		{
			name: "budget end equal to today is not active",
			rec: types.GrantRecord{
				BudgetEnd:      "2025-06-01T12:00:00Z",
				ProjectEndDate: "2027-01-01T12:00:00Z",
			},
			want: false,
		},
		{
			name: "budget end one day after today",
			rec: types.GrantRecord{
				BudgetEnd:      "2025-06-02T12:00:00Z",
				ProjectEndDate: "2027-01-01T12:00:00Z",
			},
			want: true,
		},
		{
			name: "missing project end falls back to stale sentinel",
			rec: types.GrantRecord{
				BudgetEnd: "2025-12-31T12:00:00Z",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsActive(tt.rec, testToday, testCutoff)
			if err != nil {
				t.Fatalf("IsActive: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsActive = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsActiveErrors(t *testing.T) {
	tests := []struct {
		name       string
		rec        types.GrantRecord
		wantSubstr string
	}{
		{
			name: "missing budget end",
			rec: types.GrantRecord{
				ProjectNum:     "5R01MH000001-02",
				ProjectEndDate: "2027-01-01T12:00:00Z",
			},
			wantSubstr: "missing budget end",
		},
		{
			name: "unparsable budget end",
			rec: types.GrantRecord{
				BudgetEnd:      "not-a-date",
				ProjectEndDate: "2027-01-01T12:00:00Z",
			},
			wantSubstr: "budget end",
		},
		{
			name: "unparsable project end",
			rec: types.GrantRecord{
				BudgetEnd:      "2025-12-31T12:00:00Z",
				ProjectEndDate: "01/01/2027",
			},
			wantSubstr: "project end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active, err := IsActive(tt.rec, testToday, testCutoff)
			if err == nil {
				t.Fatal("expected error")
			}
			if active {
				t.Error("record with a date error must not be active")
			}
			if !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("error = %q, should contain %q", err.Error(), tt.wantSubstr)
			}
		})
	}
}

// Time of day and zone never influence the decision.
func TestIsActiveIgnoresTimeOfDay(t *testing.T) {
	rec := types.GrantRecord{
		BudgetEnd:      "2025-06-02T00:00:00Z",
		ProjectEndDate: "2026-01-01T23:59:59Z",
	}
	lateToday := time.Date(2025, 6, 1, 23, 59, 59, 0, time.FixedZone("CST", -6*3600))

	active, err := IsActive(rec, lateToday, testCutoff)
	if err != nil {
		t.Fatalf("IsActive: %v", err)
	}
	if !active {
		t.Error("record should be active regardless of time of day")
	}
}

func TestParseAPIDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2025-12-31T12:00:00Z", want: "2025-12-31"},
		{in: "2025-12-31", want: "2025-12-31"},
		{in: "12/31/2025", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAPIDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAPIDate(%q): expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAPIDate(%q): %v", tt.in, err)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseAPIDate(%q) = %v, want %s", tt.in, got, tt.want)
			}
		})
	}
}

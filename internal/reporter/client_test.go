// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/grant-reporter/pkg/types"
)

func testCfg() types.QueryConfig {
	return types.QueryConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "grant-reporter-test/0.1"},
		Limit:      50,
	}
}

const sampleReporterJSON = `{
  "meta": {"total": 2, "offset": 0, "limit": 50},
  "results": [
    {
      "project_num": "5R01DA000001-03",
      "contact_pi_name": "CARROLL, DANA",
      "project_title": "Neural mechanisms of decision making",
      "award_amount": 423750,
      "project_start_date": "2023-09-01T12:09:00Z",
      "project_end_date": "2027-08-31T12:08:00Z",
      "budget_start": "2025-09-01T12:09:00Z",
      "budget_end": "2026-08-31T12:08:00Z",
      "fiscal_year": 2025,
      "organization": {"org_name": "UNIVERSITY OF MINNESOTA"}
    },
    {
      "project_num": "1R21MH000002-01",
      "contact_pi_name": "CARROLL, DANA",
      "project_title": "Pilot study",
      "award_amount": null,
      "project_start_date": "2024-04-01T12:04:00Z",
      "budget_start": "2024-04-01T12:04:00Z",
      "budget_end": "2025-03-31T12:03:00Z",
      "fiscal_year": 2024,
      "organization": {"org_name": "UNIVERSITY OF MINNESOTA"}
    }
  ]
}`

func reporterTestServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

func swapBase(t *testing.T, url string) {
	t.Helper()
	old := reporterSearchBase
	reporterSearchBase = url
	t.Cleanup(func() { reporterSearchBase = old })
}

var testName = types.Name{Last: "Carroll", First: "Dana"}

func TestClientSearch(t *testing.T) {
	ts := reporterTestServer(http.StatusOK, sampleReporterJSON)
	defer ts.Close()
	swapBase(t, ts.URL)

	c := &Client{HTTP: ts.Client()}
	results, err := c.Search(context.Background(), testName, testCfg())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	r0 := results[0]
	if r0.ProjectNum != "5R01DA000001-03" {
		t.Errorf("ProjectNum = %q", r0.ProjectNum)
	}
	if r0.AwardAmount == nil || *r0.AwardAmount != 423750 {
		t.Errorf("AwardAmount = %v, want 423750", r0.AwardAmount)
	}
	if r0.FiscalYear != 2025 {
		t.Errorf("FiscalYear = %d, want 2025", r0.FiscalYear)
	}
	if r0.Organization.OrgName != "UNIVERSITY OF MINNESOTA" {
		t.Errorf("OrgName = %q", r0.Organization.OrgName)
	}

	r1 := results[1]
	if r1.AwardAmount != nil {
		t.Errorf("AwardAmount = %v, want nil for null", r1.AwardAmount)
	}
	if r1.ProjectEndDate != "" {
		t.Errorf("ProjectEndDate = %q, want empty for absent field", r1.ProjectEndDate)
	}
}

func TestClientSearchRequestShape(t *testing.T) {
	var (
		gotMethod  string
		gotCT      string
		gotAccept  string
		gotUA      string
		gotPayload map[string]any
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCT = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotPayload)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"meta":{},"results":[]}`)
	}))
	defer ts.Close()
	swapBase(t, ts.URL)

	c := &Client{HTTP: ts.Client()}
	if _, err := c.Search(context.Background(), testName, testCfg()); err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotCT != "application/json" || gotAccept != "application/json" {
		t.Errorf("headers = %q/%q, want application/json", gotCT, gotAccept)
	}
	if gotUA != "grant-reporter-test/0.1" {
		t.Errorf("User-Agent = %q", gotUA)
	}

	criteria, _ := gotPayload["criteria"].(map[string]any)
	piNames, _ := criteria["pi_names"].([]any)
	if len(piNames) != 1 {
		t.Fatalf("pi_names = %v, want one entry", piNames)
	}
	pi := piNames[0].(map[string]any)
	if pi["last_name"] != "Carroll" || pi["first_name"] != "Dana" {
		t.Errorf("pi_names[0] = %v", pi)
	}

	if gotPayload["sort_field"] != "fiscal_year" || gotPayload["sort_order"] != "desc" {
		t.Errorf("sort = %v/%v, want fiscal_year/desc", gotPayload["sort_field"], gotPayload["sort_order"])
	}
	if gotPayload["limit"] != float64(50) || gotPayload["offset"] != float64(0) {
		t.Errorf("limit/offset = %v/%v, want 50/0", gotPayload["limit"], gotPayload["offset"])
	}

	fields, _ := gotPayload["include_fields"].([]any)
	if len(fields) != len(includeFields) {
		t.Errorf("include_fields = %v, want %v", fields, includeFields)
	}
}

func TestClientSearchLimitBounds(t *testing.T) {
	var gotLimit float64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		json.NewDecoder(r.Body).Decode(&payload)
		gotLimit, _ = payload["limit"].(float64)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"meta":{},"results":[]}`)
	}))
	defer ts.Close()
	swapBase(t, ts.URL)

	c := &Client{HTTP: ts.Client()}

	cfg := testCfg()
	cfg.Limit = 0
	c.Search(context.Background(), testName, cfg)
	if gotLimit != 50 {
		t.Errorf("limit = %v, want default 50", gotLimit)
	}

	cfg.Limit = 9999
	c.Search(context.Background(), testName, cfg)
	if gotLimit != 500 {
		t.Errorf("limit = %v, want cap 500", gotLimit)
	}
}

func TestClientSearchIncompleteName(t *testing.T) {
	c := &Client{HTTP: &http.Client{}}
	if _, err := c.Search(context.Background(), types.Name{Last: "Carroll"}, testCfg()); err == nil {
		t.Error("expected error for missing first name")
	}
	if _, err := c.Search(context.Background(), types.Name{First: "Dana"}, testCfg()); err == nil {
		t.Error("expected error for missing last name")
	}
}

func TestClientSearchRateLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()
	swapBase(t, ts.URL)

	c := &Client{HTTP: ts.Client()}
	_, err := c.Search(context.Background(), testName, testCfg())
	if err == nil {
		t.Fatal("expected rate limit error")
	}
	if !strings.Contains(err.Error(), "30") {
		t.Errorf("error = %q, should include Retry-After value", err.Error())
	}
}

func TestClientSearchHTTPErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantSubstr string
	}{
		{"bad request", http.StatusBadRequest, "HTTP 400"},
		{"server error", http.StatusInternalServerError, "HTTP 500"},
		{"bad gateway", http.StatusBadGateway, "HTTP 502"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := reporterTestServer(tt.statusCode, "")
			defer ts.Close()
			swapBase(t, ts.URL)

			c := &Client{HTTP: ts.Client()}
			_, err := c.Search(context.Background(), testName, testCfg())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("error = %q, should contain %q", err.Error(), tt.wantSubstr)
			}
		})
	}
}

func TestClientSearchMalformedJSON(t *testing.T) {
	ts := reporterTestServer(http.StatusOK, `{not valid json`)
	defer ts.Close()
	swapBase(t, ts.URL)

	c := &Client{HTTP: ts.Client()}
	_, err := c.Search(context.Background(), testName, testCfg())
	if err == nil {
		t.Fatal("expected JSON parse error")
	}
	if !strings.Contains(err.Error(), "parsing") {
		t.Errorf("error = %q, should mention parsing", err.Error())
	}
}

func TestClientSearchEmptyResults(t *testing.T) {
	ts := reporterTestServer(http.StatusOK, `{"meta":{"total":0},"results":[]}`)
	defer ts.Close()
	swapBase(t, ts.URL)

	c := &Client{HTTP: ts.Client()}
	results, err := c.Search(context.Background(), testName, testCfg())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

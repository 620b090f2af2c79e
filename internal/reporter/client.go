// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reporter queries the NIH RePORTER v2 projects-search API for
// the funding records of a single investigator.
package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/grant-reporter/pkg/types"
)

// reporterSearchBase is the NIH RePORTER projects-search endpoint.
// Declared as a var so tests can substitute an httptest server.
var reporterSearchBase = "https://api.reporter.nih.gov/v2/projects/search"

// includeFields lists the record fields requested from the API. Asking
// for exactly what the report needs keeps responses small.
var includeFields = []string{
	"ProjectNum",
	"AwardAmount",
	"ProjectStartDate",
	"ProjectEndDate",
	"BudgetStart",
	"BudgetEnd",
	"ContactPiName",
	"ProjectTitle",
	"Organization",
	"FiscalYear",
}

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Client issues funding-search requests against the RePORTER API.
type Client struct {
	HTTP *http.Client
}

// Search fetches the funding records for one investigator, most recent
// fiscal year first. One call issues exactly one request; failures are
// returned to the caller, which treats them as an empty contribution for
// that name. There is no retry.
func (c *Client) Search(ctx context.Context, name types.Name, cfg types.QueryConfig) ([]types.GrantRecord, error) {
	if name.Last == "" || name.First == "" {
		return nil, fmt.Errorf("incomplete investigator name %q", name)
	}

	limit := cfg.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	payload := searchRequest{
		Criteria: searchCriteria{
			PINames: []piName{{FirstName: name.First, LastName: name.Last}},
		},
		IncludeFields: includeFields,
		Offset:        0,
		Limit:         limit,
		SortField:     "fiscal_year",
		SortOrder:     "desc",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reporterSearchBase, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("RePORTER API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := resp.Header.Get("Retry-After")
		if retryAfter != "" {
			return nil, fmt.Errorf("RePORTER rate limit exceeded, retry after %s seconds", retryAfter)
		}
		return nil, fmt.Errorf("RePORTER rate limit exceeded (HTTP 429)")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("RePORTER API returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing RePORTER response: %w", err)
	}

	return sr.Results, nil
}

// RePORTER API JSON structures.
type searchRequest struct {
	Criteria      searchCriteria `json:"criteria"`
	IncludeFields []string       `json:"include_fields"`
	Offset        int            `json:"offset"`
	Limit         int            `json:"limit"`
	SortField     string         `json:"sort_field"`
	SortOrder     string         `json:"sort_order"`
}

type searchCriteria struct {
	PINames []piName `json:"pi_names"`
}

type piName struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type searchResponse struct {
	Meta    searchMeta          `json:"meta"`
	Results []types.GrantRecord `json:"results"`
}

type searchMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

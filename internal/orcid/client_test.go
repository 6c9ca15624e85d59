// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orcid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/medbridge/pkg/types"
)

func newTestClient(ts *httptest.Server) *Client {
	return NewClient(ts.Client(), zap.NewNop(), types.ResearchersConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1"},
		MaxResults: 10,
	})
}

const stubSearchBody = `{"result": [
  {"orcid-identifier": {"path": "0000-0001-0000-0001"}, "given-names": "Ada", "family-names": "Lovelace", "institution-name": ["Analytical Engines Ltd"]},
  {"orcid-identifier": {"path": "0000-0001-0000-0002"}, "credit-name": "G. Hopper"},
  {"orcid-identifier": {"path": "0000-0001-0000-0003"}}
]}`

func recordBody(orcid, given, family string) string {
	return fmt.Sprintf(`{
	  "orcid-identifier": {"path": %q},
	  "person": {"name": {"given-names": {"value": %q}, "family-name": {"value": %q}}},
	  "activities-summary": {
	    "employments": {"affiliation-group": [{"summaries": [
	      {"employment-summary": {"organization": {"name": "Navy"}}}
	    ]}]}
	  }
	}`, orcid, given, family)
}

func TestSearchStubMode(t *testing.T) {
	var recordCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/search/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(stubSearchBody))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/record") {
			recordCalls++
		}
		http.NotFound(w, r)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()
	orcidAPIBase = ts.URL

	profiles, err := newTestClient(ts).Search(context.Background(), "lovelace", 10, false)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("len(profiles) = %d, want 3", len(profiles))
	}
	if profiles[0].Name != "Ada Lovelace" {
		t.Errorf("Name[0] = %q", profiles[0].Name)
	}
	if profiles[0].AffiliationSummary != "Analytical Engines Ltd" {
		t.Errorf("AffiliationSummary[0] = %q", profiles[0].AffiliationSummary)
	}
	if profiles[1].Name != "G. Hopper" {
		t.Errorf("Name[1] = %q", profiles[1].Name)
	}
	if profiles[2].Name != "Name not public" {
		t.Errorf("Name[2] = %q", profiles[2].Name)
	}
	if recordCalls != 0 {
		t.Errorf("record endpoint called %d times in stub mode", recordCalls)
	}
}

func TestSearchDetailModeDegradesPerItem(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(stubSearchBody))
	})
	mux.HandleFunc("/0000-0001-0000-0001/record", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(recordBody("0000-0001-0000-0001", "Augusta Ada", "Lovelace")))
	})
	// Second identity's detail fetch fails.
	mux.HandleFunc("/0000-0001-0000-0002/record", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/0000-0001-0000-0003/record", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(recordBody("0000-0001-0000-0003", "Grace", "Hopper")))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()
	orcidAPIBase = ts.URL

	profiles, err := newTestClient(ts).Search(context.Background(), "pioneers", 10, true)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("len(profiles) = %d, want 3 (no drops on detail failure)", len(profiles))
	}

	// Detail-level profile for the first.
	if profiles[0].Name != "Augusta Ada Lovelace" {
		t.Errorf("Name[0] = %q, want detail-level name", profiles[0].Name)
	}
	if profiles[0].AffiliationSummary != "Navy" {
		t.Errorf("AffiliationSummary[0] = %q", profiles[0].AffiliationSummary)
	}
	// Stub-level degradation for the second.
	if profiles[1].Name != "G. Hopper" {
		t.Errorf("Name[1] = %q, want stub fallback", profiles[1].Name)
	}
	// Order matches stub order.
	if profiles[2].ORCID != "0000-0001-0000-0003" {
		t.Errorf("ORCID[2] = %q", profiles[2].ORCID)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()
	orcidAPIBase = ts.URL

	_, err := newTestClient(ts).GetProfile(context.Background(), "0000-0000-0000-0000")
	if !errors.Is(err, types.ErrNotFound) {
		t.Errorf("GetProfile() error = %v, want ErrNotFound", err)
	}
}

func TestGetProfileTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()
	orcidAPIBase = ts.URL

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestClient(ts).GetProfile(ctx, "0000-0000-0000-0000")
	if !errors.Is(err, types.ErrUpstreamTimeout) {
		t.Errorf("GetProfile() error = %v, want ErrUpstreamTimeout", err)
	}
}

package registry

import (
	"errors"
	"testing"
)

func TestResolveTeamExact(t *testing.T) {
	r := New("")
	m, err := r.ResolveTeam("mens", "Kansas", 2025)
	if err != nil {
		t.Fatalf("ResolveTeam: %v", err)
	}
	if !m.Exact || m.Score != 1 {
		t.Errorf("match = %+v, want exact score 1", m)
	}
	if m.Name != "Kansas" || m.ID != "2305" {
		t.Errorf("match = %s/%s, want Kansas/2305", m.Name, m.ID)
	}

	// Case differences still count as exact.
	m, err = r.ResolveTeam("mens", "noRTH caROLina", 2025)
	if err != nil {
		t.Fatalf("ResolveTeam: %v", err)
	}
	if !m.Exact || m.ID != "153" {
		t.Errorf("match = %+v, want exact North Carolina", m)
	}
}

func TestResolveTeamFuzzy(t *testing.T) {
	r := New("")
	m, err := r.ResolveTeam("mens", "Kanas", 2025)
	if err != nil {
		t.Fatalf("ResolveTeam: %v", err)
	}
	if m.Exact {
		t.Error("typo matched exactly")
	}
	if m.Name != "Kansas" || m.ID != "2305" {
		t.Errorf("match = %s/%s, want Kansas/2305", m.Name, m.ID)
	}
	if m.Score < acceptScore || m.Score >= 1 {
		t.Errorf("score = %.2f, want within [%.2f, 1)", m.Score, acceptScore)
	}
}

func TestResolveTeamNotFound(t *testing.T) {
	r := New("")
	_, err := r.ResolveTeam("mens", "qqqqqqqqqqqq", 2025)
	if err == nil {
		t.Fatal("expected no match for gibberish")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error type = %T, want *NotFoundError", err)
	}
	if nf.Kind != "team" || nf.Query != "qqqqqqqqqqqq" {
		t.Errorf("NotFoundError = %+v", nf)
	}
}

func TestResolveConference(t *testing.T) {
	r := New("")

	m, err := r.ResolveConference("mens", "big 12 conference", 2025)
	if err != nil {
		t.Fatalf("ResolveConference: %v", err)
	}
	if !m.Exact || m.Name != "Big 12 Conference" {
		t.Errorf("match = %+v", m)
	}

	// Abbreviations swap for the name they stand for.
	m, err = r.ResolveConference("mens", "ACC", 2025)
	if err != nil {
		t.Fatalf("ResolveConference: %v", err)
	}
	if !m.Exact || m.Name != "Atlantic Coast Conference" {
		t.Errorf("abbreviation match = %+v, want Atlantic Coast Conference", m)
	}

	// Near misses resolve through the fuzzy pass.
	m, err = r.ResolveConference("mens", "Big 12 Conferense", 2025)
	if err != nil {
		t.Fatalf("ResolveConference: %v", err)
	}
	if m.Exact || m.Name != "Big 12 Conference" {
		t.Errorf("fuzzy match = %+v, want Big 12 Conference", m)
	}

	_, err = r.ResolveConference("mens", "zzzzzzzzzzzz", 2025)
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "conference" {
		t.Errorf("err = %v, want conference NotFoundError", err)
	}
}

func TestResolveConferenceShortName(t *testing.T) {
	r := New("")

	// A truncated name scores against the token windows of the canonical
	// form, not just the whole string.
	m, err := r.ResolveConference("mens", "am east", 2025)
	if err != nil {
		t.Fatalf("ResolveConference: %v", err)
	}
	if m.Exact {
		t.Error("partial name matched exactly")
	}
	if m.Name != "America East Conference" {
		t.Errorf("match = %+v, want America East Conference", m)
	}
	if m.Score < acceptScore {
		t.Errorf("score = %.2f, want at least %.2f", m.Score, acceptScore)
	}

	teams, err := r.ConferenceTeams("mens", "am east", 2025)
	if err != nil {
		t.Fatalf("ConferenceTeams: %v", err)
	}
	if len(teams) != 9 {
		t.Errorf("len(teams) = %d, want 9", len(teams))
	}
}

func TestConferenceTeams(t *testing.T) {
	r := New("")
	teams, err := r.ConferenceTeams("mens", "AE", 2025)
	if err != nil {
		t.Fatalf("ConferenceTeams: %v", err)
	}
	if len(teams) != 9 {
		t.Fatalf("len(teams) = %d, want 9", len(teams))
	}

	found := false
	for _, team := range teams {
		if team.Conference != "America East Conference" {
			t.Errorf("member %s in conference %q", team.Location, team.Conference)
		}
		if team.Location == "Vermont" && team.ID == "261" {
			found = true
		}
	}
	if !found {
		t.Error("Vermont/261 missing from America East members")
	}
}

func TestSeasonFallback(t *testing.T) {
	r := New("")
	// The snapshot has no 1999 rows; the nearest covered season serves.
	m, err := r.ResolveTeam("mens", "Kansas", 1999)
	if err != nil {
		t.Fatalf("ResolveTeam: %v", err)
	}
	if m.ID != "2305" {
		t.Errorf("match = %+v", m)
	}
}

func TestUnknownLeague(t *testing.T) {
	r := New("")
	if _, err := r.ResolveTeam("minor", "Kansas", 2025); err == nil {
		t.Fatal("expected error for a league with no reference data")
	}
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"St. John's", "st john s"},
		{"  Texas   A&M  ", "texas a m"},
		{"UMass Lowell", "umass lowell"},
		{"BIG 12 (ALL):", "big 12 all"},
	}
	for _, tc := range cases {
		if got := normalizeName(tc.in); got != tc.want {
			t.Errorf("normalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

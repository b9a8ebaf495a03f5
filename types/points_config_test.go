package types

import "testing"

func TestReportPoints(t *testing.T) {
	cases := []struct {
		severity string
		want     int
	}{
		{"low", 10},
		{"moderate", 15},
		{"severe", 20},
		{"bogus", 10},
		{"", 10},
	}
	for _, tc := range cases {
		if got := ReportPoints(tc.severity); got != tc.want {
			t.Errorf("ReportPoints(%q) = %d, want %d", tc.severity, got, tc.want)
		}
	}
}

func TestCleanupPoints(t *testing.T) {
	if got := CleanupPoints(3); got != 15 {
		t.Errorf("CleanupPoints(3) = %d, want 15", got)
	}
	// A zero or negative duration still counts as one hour of effort.
	if got := CleanupPoints(0); got != 5 {
		t.Errorf("CleanupPoints(0) = %d, want 5", got)
	}
}

func TestVolunteerPoints(t *testing.T) {
	if got := VolunteerPoints(4); got != 12 {
		t.Errorf("VolunteerPoints(4) = %d, want 12", got)
	}
	if got := VolunteerPoints(-2); got != 0 {
		t.Errorf("VolunteerPoints(-2) = %d, want 0", got)
	}
}

func TestEcoHeroLevel(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "Beginner"},
		{49, "Beginner"},
		{50, "Contributor"},
		{199, "Contributor"},
		{200, "Eco Warrior"},
		{500, "Eco Hero"},
		{999, "Eco Hero"},
		{1000, "Eco Legend"},
	}
	for _, tc := range cases {
		if got := EcoHeroLevel(tc.score); got != tc.want {
			t.Errorf("EcoHeroLevel(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

package domain

import "testing"

func TestScoreTierForThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  ScoreTier
	}{
		{0, TierRed},
		{49, TierRed},
		{50, TierYellow},
		{69, TierYellow},
		{70, TierBlue},
		{89, TierBlue},
		{90, TierGreen},
		{100, TierGreen},
	}
	for _, tc := range cases {
		if got := ScoreTierFor(tc.score); got != tc.want {
			t.Fatalf("score %d: expected %s, got %s", tc.score, tc.want, got)
		}
	}
}

func TestLevelForScore(t *testing.T) {
	if got := LevelForScore(30); got != "Beginner" {
		t.Fatalf("expected Beginner, got %s", got)
	}
	if got := LevelForScore(65); got != "Intermediate" {
		t.Fatalf("expected Intermediate, got %s", got)
	}
	if got := LevelForScore(75); got != "Pro" {
		t.Fatalf("expected Pro, got %s", got)
	}
	if got := LevelForScore(95); got != "Expert" {
		t.Fatalf("expected Expert, got %s", got)
	}
}

func TestClampScore(t *testing.T) {
	if ClampScore(-3) != 0 || ClampScore(140) != 100 || ClampScore(42) != 42 {
		t.Fatalf("unexpected clamp results")
	}
}

func TestNormalizeFillsNilSequences(t *testing.T) {
	var resp AnalysisResponse
	resp.Normalize()
	if resp.GrammarFeedback.Issues == nil || resp.ATSFeedback.Sections == nil ||
		resp.KeywordFeedback.FoundKeywords == nil || resp.Recommendations == nil ||
		resp.EarnedBadges == nil || resp.ATSFeedback.Recommendations == nil ||
		resp.KeywordFeedback.MissingKeywords == nil {
		t.Fatalf("expected all sequences to be non-nil after Normalize")
	}
}

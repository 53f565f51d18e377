package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recommendation(id, category string, min, max int, priority Priority) Recommendation {
	return Recommendation{
		ID:             id,
		AssessmentType: "stress",
		Category:       category,
		Title:          "t",
		Description:    "d",
		MinScore:       min,
		MaxScore:       max,
		Priority:       priority,
	}
}

func TestMatchRecommendationsBandContainsScore(t *testing.T) {
	candidates := []Recommendation{
		recommendation("r1", "stress", 0, 30, PriorityHigh),
	}

	matched := MatchRecommendations(candidates, map[string]int{"stress": 25}, 0)
	require.Len(t, matched, 1)
	assert.Equal(t, "r1", matched[0].ID)

	matched = MatchRecommendations(candidates, map[string]int{"stress": 31}, 0)
	assert.Empty(t, matched)
}

func TestMatchRecommendationsInclusiveBoundaries(t *testing.T) {
	candidates := []Recommendation{
		recommendation("r1", "stress", 30, 60, PriorityMedium),
	}

	for _, score := range []int{30, 60} {
		matched := MatchRecommendations(candidates, map[string]int{"stress": score}, 0)
		assert.Len(t, matched, 1, "score=%d", score)
	}
	for _, score := range []int{29, 61} {
		matched := MatchRecommendations(candidates, map[string]int{"stress": score}, 0)
		assert.Empty(t, matched, "score=%d", score)
	}
}

func TestMatchRecommendationsStablePriorityOrder(t *testing.T) {
	candidates := []Recommendation{
		recommendation("low", "stress", 0, 100, PriorityLow),
		recommendation("high-1", "stress", 0, 100, PriorityHigh),
		recommendation("medium", "stress", 0, 100, PriorityMedium),
		recommendation("high-2", "stress", 0, 100, PriorityHigh),
	}

	matched := MatchRecommendations(candidates, map[string]int{"stress": 50}, 0)
	require.Len(t, matched, 4)

	ids := []string{matched[0].ID, matched[1].ID, matched[2].ID, matched[3].ID}
	assert.Equal(t, []string{"high-1", "high-2", "medium", "low"}, ids)
}

func TestMatchRecommendationsCategoryExactMatch(t *testing.T) {
	candidates := []Recommendation{
		recommendation("r1", "stress", 0, 100, PriorityHigh),
		recommendation("r2", "Stress", 0, 100, PriorityHigh),
	}

	// Matching is exact and case-sensitive against the stored label.
	matched := MatchRecommendations(candidates, map[string]int{"stress": 50}, 0)
	require.Len(t, matched, 1)
	assert.Equal(t, "r1", matched[0].ID)
}

func TestMatchRecommendationsUnionAcrossCategories(t *testing.T) {
	candidates := []Recommendation{
		recommendation("sleep-low", "sleep quality", 0, 40, PriorityLow),
		recommendation("work-high", "work pressure", 0, 40, PriorityHigh),
	}
	scores := map[string]int{
		"work pressure": 20,
		"sleep quality": 35,
	}

	matched := MatchRecommendations(candidates, scores, 0)
	require.Len(t, matched, 2)
	assert.Equal(t, "work-high", matched[0].ID)
	assert.Equal(t, "sleep-low", matched[1].ID)
}

func TestMatchRecommendationsLimit(t *testing.T) {
	candidates := []Recommendation{
		recommendation("r1", "stress", 0, 100, PriorityHigh),
		recommendation("r2", "stress", 0, 100, PriorityMedium),
		recommendation("r3", "stress", 0, 100, PriorityLow),
	}

	matched := MatchRecommendations(candidates, map[string]int{"stress": 50}, 2)
	require.Len(t, matched, 2)
	assert.Equal(t, "r1", matched[0].ID)
	assert.Equal(t, "r2", matched[1].ID)

	// A non-positive limit means no truncation.
	assert.Len(t, MatchRecommendations(candidates, map[string]int{"stress": 50}, 0), 3)
	assert.Len(t, MatchRecommendations(candidates, map[string]int{"stress": 50}, -1), 3)
}

func TestMatchRecommendationsEmptyInputs(t *testing.T) {
	assert.Empty(t, MatchRecommendations(nil, map[string]int{"stress": 50}, 0))
	assert.Empty(t, MatchRecommendations([]Recommendation{
		recommendation("r1", "stress", 0, 100, PriorityHigh),
	}, nil, 0))
}

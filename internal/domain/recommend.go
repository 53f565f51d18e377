package domain

import (
	"sort"
)

// MatchRecommendations selects every candidate whose category equals a
// scored category (exact match against the stored label) and whose
// [MinScore, MaxScore] band contains that category's score, inclusive at
// both ends. Matches are unioned across categories without de-duplication,
// then stable-sorted by priority rank so High entries come first and ties
// keep their source order.
//
// Categories are visited in sorted key order, which makes the output
// deterministic for a given input map. limit truncates the sorted result;
// limit <= 0 means no truncation. An empty result is a normal outcome.
func MatchRecommendations(candidates []Recommendation, categoryScores map[string]int, limit int) []Recommendation {
	cats := make([]string, 0, len(categoryScores))
	for cat := range categoryScores {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	matched := make([]Recommendation, 0)
	for _, cat := range cats {
		score := categoryScores[cat]
		for _, rec := range candidates {
			if rec.Category == cat && score >= rec.MinScore && score <= rec.MaxScore {
				matched = append(matched, rec)
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Priority.Rank() < matched[j].Priority.Rank()
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

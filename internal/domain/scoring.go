package domain

import (
	"fmt"
	"math"
	"strings"
)

// Scale describes how submitted answer values map onto a question's
// options. Origin is the value of the first option: 1 for 1..N input,
// 0 for 0..N-1 input. The width of the scale is always derived from the
// question's own option count, never assumed.
type Scale struct {
	Origin int
}

// DefaultScale matches the submit endpoint, which accepts 1-based answers.
var DefaultScale = Scale{Origin: 1}

// ScoreResult is the output of ComputeScore: an overall normalized score
// and one normalized score per category, all integers in [0,100].
type ScoreResult struct {
	Score      int
	Categories map[string]int
}

// NormalizeCategory canonicalizes a category label: trims whitespace,
// lowercases, and strips a trailing run of digits so seed-data variants
// like "Physical1" and "physical " collapse to the same key. Idempotent.
func NormalizeCategory(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimRight(s, "0123456789")
	return strings.TrimSpace(s)
}

// ValidateAnswers checks an answer vector against the question list before
// scoring: the lengths must match and every value must lie within the
// option range of its positionally aligned question. This is the caller-side
// validation ComputeScore itself trusts.
func ValidateAnswers(questions []Question, answers []int, scale Scale) error {
	if len(answers) == 0 {
		return NewInvalidAnswersError("no answers submitted")
	}
	if len(questions) != len(answers) {
		return NewInvalidAnswersError(fmt.Sprintf(
			"invalid number of answers: expected %d, got %d", len(questions), len(answers)))
	}
	for i, q := range questions {
		if len(q.Options) < 2 {
			return NewInternalError(fmt.Sprintf("question %d has fewer than two options", q.Order), nil)
		}
		min := scale.Origin
		max := scale.Origin + len(q.Options) - 1
		if answers[i] < min || answers[i] > max {
			return NewInvalidAnswersError(fmt.Sprintf(
				"answer %d out of range: got %d, want %d..%d", i+1, answers[i], min, max))
		}
	}
	return nil
}

// ComputeScore normalizes each answer onto a 0-100 scale, then returns the
// rounded mean over all questions and per normalized category. It is a pure
// function: identical inputs always produce identical outputs.
//
// Each answer is scaled as round((value-origin)/(optionCount-1)*100); the
// denominator comes from the question's own option list, so mixed option
// widths within one assessment score correctly. Answers align with questions
// by position. A category with no questions never appears in the output.
func ComputeScore(questions []Question, answers []int, scale Scale) (*ScoreResult, error) {
	if len(answers) == 0 || len(questions) == 0 {
		return nil, NewInvalidAnswersError("cannot score an empty answer vector")
	}
	if len(questions) != len(answers) {
		return nil, NewInvalidAnswersError(fmt.Sprintf(
			"invalid number of answers: expected %d, got %d", len(questions), len(answers)))
	}

	total := 0
	grouped := make(map[string][]int)
	for i, q := range questions {
		width := len(q.Options) - 1
		if width < 1 {
			return nil, NewInternalError(fmt.Sprintf("question %d has fewer than two options", q.Order), nil)
		}
		scaled := roundRatio(answers[i]-scale.Origin, width)
		total += scaled

		cat := NormalizeCategory(q.Category)
		grouped[cat] = append(grouped[cat], scaled)
	}

	categories := make(map[string]int, len(grouped))
	for cat, scaledValues := range grouped {
		sum := 0
		for _, v := range scaledValues {
			sum += v
		}
		categories[cat] = roundMean(sum, len(scaledValues))
	}

	return &ScoreResult{
		Score:      roundMean(total, len(answers)),
		Categories: categories,
	}, nil
}

// roundRatio scales num/den onto 0-100 with half-up rounding.
func roundRatio(num, den int) int {
	return int(math.Round(float64(num) / float64(den) * 100))
}

func roundMean(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}

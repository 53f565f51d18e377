package validation

import (
	"regexp"
	"strings"

	"wellspring/internal/domain"
)

var (
	// ULIDs are 26 characters of Crockford's Base32.
	validULID = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

	// Assessment types are short lowercase slugs like "stress" or "digital".
	validAssessmentType = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAssessmentType checks the path or body assessment type before it
// reaches the database.
func (v *Validator) ValidateAssessmentType(assessmentType string) error {
	if strings.TrimSpace(assessmentType) == "" {
		return domain.NewInvalidInputError("assessment type is required")
	}
	if len(assessmentType) > 50 || !validAssessmentType.MatchString(assessmentType) {
		return domain.NewInvalidInputError("assessment type must be a lowercase slug")
	}
	return nil
}

// ValidateResultID checks that a result ID has the ULID shape.
func (v *Validator) ValidateResultID(resultID string) error {
	if strings.TrimSpace(resultID) == "" {
		return domain.NewInvalidInputError("result id is required")
	}
	if !validULID.MatchString(resultID) {
		return domain.NewInvalidInputError("result id is not a valid identifier")
	}
	return nil
}

// ValidateSubmission checks the shape of a quiz submission; per-question
// range checks happen in the scoring engine once the questions are loaded.
func (v *Validator) ValidateSubmission(assessmentType string, answers []int) error {
	if err := v.ValidateAssessmentType(assessmentType); err != nil {
		return err
	}
	if len(answers) == 0 {
		return domain.NewInvalidAnswersError("answers must not be empty")
	}
	if len(answers) > 100 {
		return domain.NewInvalidAnswersError("too many answers")
	}
	return nil
}

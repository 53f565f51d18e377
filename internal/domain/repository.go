package domain

import (
	"context"
)

// AssessmentRepository supplies the assessment catalog.
type AssessmentRepository interface {
	GetAssessments(ctx context.Context) ([]Assessment, error)
	// GetAssessmentByType returns nil when the type is unknown.
	GetAssessmentByType(ctx context.Context, assessmentType string) (*Assessment, error)
	SaveAssessment(ctx context.Context, assessment *Assessment) error
}

// QuestionRepository supplies the ordered question list per assessment type.
type QuestionRepository interface {
	// GetQuestionsByAssessmentType returns questions ordered by their
	// 1-based position; an empty slice means the type is unknown.
	GetQuestionsByAssessmentType(ctx context.Context, assessmentType string) ([]Question, error)
	SaveQuestion(ctx context.Context, question *Question) error
}

// ResultRepository persists completed assessments. Results are insert-only.
type ResultRepository interface {
	SaveResult(ctx context.Context, result *Result) error
	// GetResultByID returns nil when the result does not exist.
	GetResultByID(ctx context.Context, id string) (*Result, error)
	// GetResultsByUserID returns the user's results, newest first.
	GetResultsByUserID(ctx context.Context, userID string) ([]Result, error)
}

// RecommendationRepository supplies the static recommendation table.
type RecommendationRepository interface {
	GetRecommendationsByAssessmentType(ctx context.Context, assessmentType string) ([]Recommendation, error)
	SaveRecommendation(ctx context.Context, rec *Recommendation) error
}

// UserRepository manages user accounts.
type UserRepository interface {
	// Lookups return nil when no user matches.
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
}

// JournalRepository persists per-user journal entries.
type JournalRepository interface {
	SaveEntry(ctx context.Context, entry *JournalEntry) error
	// GetEntriesByUserID returns the user's entries, newest first.
	GetEntriesByUserID(ctx context.Context, userID string) ([]JournalEntry, error)
}

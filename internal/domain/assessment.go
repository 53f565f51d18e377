package domain

import (
	"time"
)

// Assessment represents a named quiz with a fixed question set.
type Assessment struct {
	ID          string
	Type        string
	Title       string
	Description string
	Duration    string
	Icon        string
}

// Validate validates the assessment
func (a *Assessment) Validate() error {
	if a.Type == "" {
		return NewInvalidInputError("assessment type is required")
	}
	if a.Title == "" {
		return NewInvalidInputError("title is required")
	}
	return nil
}

// Question represents a single Likert item within an assessment.
// Order is the 1-based position that aligns it with a submitted
// answer vector; answers are matched by position, never by ID.
type Question struct {
	ID             string
	AssessmentType string
	Text           string
	Options        []string
	Order          int
	Category       string
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.AssessmentType == "" {
		return NewInvalidInputError("assessment type is required")
	}
	if q.Text == "" {
		return NewInvalidInputError("question text is required")
	}
	if len(q.Options) < 2 {
		return NewInvalidInputError("a question needs at least two options")
	}
	if q.Order < 1 {
		return NewInvalidInputError("question order must be 1-based")
	}
	return nil
}

// Result represents one completed assessment. UserID is empty for
// anonymous submissions. Results are immutable after creation.
type Result struct {
	ID             string
	UserID         string
	AssessmentType string
	Score          int
	Answers        []int
	Categories     map[string]int
	CompletedAt    time.Time
}

// NewResult creates a new Result instance
func NewResult(userID, assessmentType string, score *ScoreResult, answers []int) *Result {
	return &Result{
		UserID:         userID,
		AssessmentType: assessmentType,
		Score:          score.Score,
		Answers:        answers,
		Categories:     score.Categories,
		CompletedAt:    time.Now(),
	}
}

// Validate validates the result
func (r *Result) Validate() error {
	if r.AssessmentType == "" {
		return NewInvalidInputError("assessment type is required")
	}
	if len(r.Answers) == 0 {
		return NewInvalidInputError("answers are required")
	}
	if r.Score < 0 || r.Score > 100 {
		return NewInvalidInputError("score must be within [0,100]")
	}
	return nil
}

// Priority orders recommendations; High sorts before Medium before Low.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Rank returns the sort rank of the priority. Unknown priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Recommendation is static advice bound to a [MinScore, MaxScore] band
// (inclusive at both ends) over the normalized 0-100 scale of one category.
type Recommendation struct {
	ID             string
	AssessmentType string
	Category       string
	Title          string
	Description    string
	Tips           []string
	MinScore       int
	MaxScore       int
	Priority       Priority
}

// Validate validates the recommendation
func (r *Recommendation) Validate() error {
	if r.AssessmentType == "" {
		return NewInvalidInputError("assessment type is required")
	}
	if r.Category == "" {
		return NewInvalidInputError("category is required")
	}
	if r.MinScore < 0 || r.MaxScore > 100 || r.MinScore > r.MaxScore {
		return NewInvalidInputError("score band must satisfy 0 <= min <= max <= 100")
	}
	if r.Priority.Rank() > 2 {
		return NewInvalidInputError("priority must be High, Medium or Low")
	}
	return nil
}

// JournalEntry is a free-text note a user attaches to their wellbeing history.
type JournalEntry struct {
	ID        string
	UserID    string
	Entry     string
	CreatedAt time.Time
}

// NewJournalEntry creates a new JournalEntry instance
func NewJournalEntry(userID, entry string) *JournalEntry {
	return &JournalEntry{
		UserID:    userID,
		Entry:     entry,
		CreatedAt: time.Now(),
	}
}

// Validate validates the journal entry
func (j *JournalEntry) Validate() error {
	if j.UserID == "" {
		return NewInvalidInputError("user ID is required")
	}
	if j.Entry == "" {
		return NewInvalidInputError("entry cannot be empty")
	}
	if len(j.Entry) > 5000 {
		return NewInvalidInputError("entry exceeds the 5000 character limit")
	}
	return nil
}

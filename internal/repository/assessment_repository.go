package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wellspring/internal/domain"
	"wellspring/internal/repository/models"
	"wellspring/internal/util"

	"github.com/jmoiron/sqlx"
)

// AssessmentDatabaseAdapter implements domain.AssessmentRepository and
// domain.QuestionRepository using sqlx.DB
type AssessmentDatabaseAdapter struct {
	db *sqlx.DB
}

// NewAssessmentDatabaseAdapter creates a new instance of AssessmentDatabaseAdapter
func NewAssessmentDatabaseAdapter(db *sqlx.DB) *AssessmentDatabaseAdapter {
	return &AssessmentDatabaseAdapter{db: db}
}

// GetAssessments implements domain.AssessmentRepository
func (a *AssessmentDatabaseAdapter) GetAssessments(ctx context.Context) ([]domain.Assessment, error) {
	var modelAssessments []models.Assessment
	query := `SELECT id, type, title, description, duration, icon, created_at
		FROM assessments
		ORDER BY created_at, id`

	if err := a.db.SelectContext(ctx, &modelAssessments, query); err != nil {
		return nil, fmt.Errorf("failed to get assessments: %w", err)
	}

	assessments := make([]domain.Assessment, 0, len(modelAssessments))
	for i := range modelAssessments {
		assessments = append(assessments, *toDomainAssessment(&modelAssessments[i]))
	}
	return assessments, nil
}

// GetAssessmentByType implements domain.AssessmentRepository
func (a *AssessmentDatabaseAdapter) GetAssessmentByType(ctx context.Context, assessmentType string) (*domain.Assessment, error) {
	var modelAssessment models.Assessment
	query := `SELECT id, type, title, description, duration, icon, created_at
		FROM assessments
		WHERE type = $1
		ORDER BY created_at, id
		LIMIT 1`

	err := a.db.GetContext(ctx, &modelAssessment, query, assessmentType)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assessment by type %s: %w", assessmentType, err)
	}
	return toDomainAssessment(&modelAssessment), nil
}

// SaveAssessment implements domain.AssessmentRepository
func (a *AssessmentDatabaseAdapter) SaveAssessment(ctx context.Context, assessment *domain.Assessment) error {
	if assessment == nil {
		return fmt.Errorf("cannot save nil assessment")
	}
	if err := assessment.Validate(); err != nil {
		return err
	}
	assessment.ID = util.NewULID()

	query := `INSERT INTO assessments (id, type, title, description, duration, icon, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := a.db.ExecContext(ctx, query,
		assessment.ID,
		assessment.Type,
		assessment.Title,
		assessment.Description,
		nullString(assessment.Duration),
		nullString(assessment.Icon),
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

// GetQuestionsByAssessmentType implements domain.QuestionRepository
func (a *AssessmentDatabaseAdapter) GetQuestionsByAssessmentType(ctx context.Context, assessmentType string) ([]domain.Question, error) {
	var modelQuestions []models.Question
	query := `SELECT id, assessment_type, text, options, position, category, created_at
		FROM questions
		WHERE assessment_type = $1
		ORDER BY position`

	if err := a.db.SelectContext(ctx, &modelQuestions, query, assessmentType); err != nil {
		return nil, fmt.Errorf("failed to get questions for %s: %w", assessmentType, err)
	}

	questions := make([]domain.Question, 0, len(modelQuestions))
	for i := range modelQuestions {
		questions = append(questions, *toDomainQuestion(&modelQuestions[i]))
	}
	return questions, nil
}

// SaveQuestion implements domain.QuestionRepository
func (a *AssessmentDatabaseAdapter) SaveQuestion(ctx context.Context, question *domain.Question) error {
	if question == nil {
		return fmt.Errorf("cannot save nil question")
	}
	if err := question.Validate(); err != nil {
		return err
	}
	question.ID = util.NewULID()

	query := `INSERT INTO questions (id, assessment_type, text, options, position, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := a.db.ExecContext(ctx, query,
		question.ID,
		question.AssessmentType,
		question.Text,
		models.StringSlice(question.Options),
		question.Order,
		question.Category,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	return nil
}

func toDomainAssessment(m *models.Assessment) *domain.Assessment {
	if m == nil {
		return nil
	}
	return &domain.Assessment{
		ID:          m.ID,
		Type:        m.Type,
		Title:       m.Title,
		Description: m.Description,
		Duration:    m.Duration.String,
		Icon:        m.Icon.String,
	}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:             m.ID,
		AssessmentType: m.AssessmentType,
		Text:           m.Text,
		Options:        []string(m.Options),
		Order:          m.Position,
		Category:       m.Category,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"wellspring/internal/domain"
	"wellspring/internal/repository/models"
	"wellspring/internal/util"

	"github.com/jmoiron/sqlx"
)

// ResultDatabaseAdapter implements domain.ResultRepository using sqlx.DB
type ResultDatabaseAdapter struct {
	db *sqlx.DB
}

// NewResultDatabaseAdapter creates a new instance of ResultDatabaseAdapter
func NewResultDatabaseAdapter(db *sqlx.DB) domain.ResultRepository {
	return &ResultDatabaseAdapter{db: db}
}

// SaveResult implements domain.ResultRepository. Results are insert-only;
// the generated ID is written back onto the domain object.
func (a *ResultDatabaseAdapter) SaveResult(ctx context.Context, result *domain.Result) error {
	if result == nil {
		return fmt.Errorf("cannot save nil result")
	}
	if err := result.Validate(); err != nil {
		return err
	}
	result.ID = util.NewULID()

	query := `INSERT INTO results (id, user_id, assessment_type, score, answers, categories, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := a.db.ExecContext(ctx, query,
		result.ID,
		nullString(result.UserID),
		result.AssessmentType,
		result.Score,
		models.IntSlice(result.Answers),
		models.ScoreMap(result.Categories),
		result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// GetResultByID implements domain.ResultRepository
func (a *ResultDatabaseAdapter) GetResultByID(ctx context.Context, id string) (*domain.Result, error) {
	var modelResult models.Result
	query := `SELECT id, user_id, assessment_type, score, answers, categories, completed_at
		FROM results
		WHERE id = $1`

	err := a.db.GetContext(ctx, &modelResult, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get result by ID %s: %w", id, err)
	}
	return toDomainResult(&modelResult), nil
}

// GetResultsByUserID implements domain.ResultRepository
func (a *ResultDatabaseAdapter) GetResultsByUserID(ctx context.Context, userID string) ([]domain.Result, error) {
	var modelResults []models.Result
	query := `SELECT id, user_id, assessment_type, score, answers, categories, completed_at
		FROM results
		WHERE user_id = $1
		ORDER BY completed_at DESC`

	if err := a.db.SelectContext(ctx, &modelResults, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get results for user %s: %w", userID, err)
	}

	results := make([]domain.Result, 0, len(modelResults))
	for i := range modelResults {
		results = append(results, *toDomainResult(&modelResults[i]))
	}
	return results, nil
}

func toDomainResult(m *models.Result) *domain.Result {
	if m == nil {
		return nil
	}
	return &domain.Result{
		ID:             m.ID,
		UserID:         m.UserID.String,
		AssessmentType: m.AssessmentType,
		Score:          m.Score,
		Answers:        []int(m.Answers),
		Categories:     map[string]int(m.Categories),
		CompletedAt:    m.CompletedAt,
	}
}

package repository

import (
	"context"
	"fmt"

	"wellspring/internal/domain"
	"wellspring/internal/repository/models"
	"wellspring/internal/util"

	"github.com/jmoiron/sqlx"
)

// RecommendationDatabaseAdapter implements domain.RecommendationRepository using sqlx.DB
type RecommendationDatabaseAdapter struct {
	db *sqlx.DB
}

// NewRecommendationDatabaseAdapter creates a new instance of RecommendationDatabaseAdapter
func NewRecommendationDatabaseAdapter(db *sqlx.DB) domain.RecommendationRepository {
	return &RecommendationDatabaseAdapter{db: db}
}

// GetRecommendationsByAssessmentType implements domain.RecommendationRepository.
// Rows come back in insertion order so the matcher's stable sort is meaningful.
func (a *RecommendationDatabaseAdapter) GetRecommendationsByAssessmentType(ctx context.Context, assessmentType string) ([]domain.Recommendation, error) {
	var modelRecs []models.Recommendation
	query := `SELECT id, assessment_type, category, title, description, tips, min_score, max_score, priority
		FROM recommendations
		WHERE assessment_type = $1
		ORDER BY id`

	if err := a.db.SelectContext(ctx, &modelRecs, query, assessmentType); err != nil {
		return nil, fmt.Errorf("failed to get recommendations for %s: %w", assessmentType, err)
	}

	recs := make([]domain.Recommendation, 0, len(modelRecs))
	for i := range modelRecs {
		recs = append(recs, *toDomainRecommendation(&modelRecs[i]))
	}
	return recs, nil
}

// SaveRecommendation implements domain.RecommendationRepository
func (a *RecommendationDatabaseAdapter) SaveRecommendation(ctx context.Context, rec *domain.Recommendation) error {
	if rec == nil {
		return fmt.Errorf("cannot save nil recommendation")
	}
	if err := rec.Validate(); err != nil {
		return err
	}
	rec.ID = util.NewULID()

	query := `INSERT INTO recommendations (id, assessment_type, category, title, description, tips, min_score, max_score, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := a.db.ExecContext(ctx, query,
		rec.ID,
		rec.AssessmentType,
		rec.Category,
		rec.Title,
		rec.Description,
		models.StringSlice(rec.Tips),
		rec.MinScore,
		rec.MaxScore,
		string(rec.Priority),
	)
	if err != nil {
		return fmt.Errorf("failed to save recommendation: %w", err)
	}
	return nil
}

func toDomainRecommendation(m *models.Recommendation) *domain.Recommendation {
	if m == nil {
		return nil
	}
	return &domain.Recommendation{
		ID:             m.ID,
		AssessmentType: m.AssessmentType,
		Category:       m.Category,
		Title:          m.Title,
		Description:    m.Description,
		Tips:           []string(m.Tips),
		MinScore:       m.MinScore,
		MaxScore:       m.MaxScore,
		Priority:       domain.Priority(m.Priority),
	}
}

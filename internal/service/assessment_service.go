package service

import (
	"context"
	"sort"

	"wellspring/internal/domain"
	"wellspring/internal/dto"
	"wellspring/internal/logger"

	"go.uber.org/zap"
)

// topRecommendationsLimit caps the dashboard's cross-assessment list; the
// per-result recommendation lists are never truncated.
const topRecommendationsLimit = 5

// AssessmentService defines the interface for assessment-related operations
type AssessmentService interface {
	GetAssessments(ctx context.Context) ([]dto.AssessmentResponse, error)
	GetAssessmentByType(ctx context.Context, assessmentType string) (*dto.AssessmentResponse, error)
	GetQuestions(ctx context.Context, assessmentType string) ([]dto.QuestionResponse, error)
	SubmitQuiz(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	GetResult(ctx context.Context, resultID string) (*dto.SubmitQuizResponse, error)
	GetResultsByUser(ctx context.Context, userID string) ([]dto.ResultResponse, error)
	GetLatestResults(ctx context.Context, userID string) ([]dto.ResultResponse, error)
	GetTopRecommendations(ctx context.Context, userID string) ([]dto.RecommendationResponse, error)
}

// assessmentService implements AssessmentService
type assessmentService struct {
	assessmentRepo domain.AssessmentRepository
	resultRepo     domain.ResultRepository
	reference      ReferenceCacheService
	scale          domain.Scale
}

// NewAssessmentService creates a new instance of assessmentService
func NewAssessmentService(
	assessmentRepo domain.AssessmentRepository,
	resultRepo domain.ResultRepository,
	reference ReferenceCacheService,
) AssessmentService {
	return &assessmentService{
		assessmentRepo: assessmentRepo,
		resultRepo:     resultRepo,
		reference:      reference,
		scale:          domain.DefaultScale,
	}
}

// GetAssessments implements AssessmentService. The catalog may contain
// duplicate rows per type from repeated seeding; the first row per type wins.
func (s *assessmentService) GetAssessments(ctx context.Context) ([]dto.AssessmentResponse, error) {
	assessments, err := s.assessmentRepo.GetAssessments(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get assessments", err)
	}

	seen := make(map[string]bool, len(assessments))
	responses := make([]dto.AssessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		if seen[a.Type] {
			continue
		}
		seen[a.Type] = true
		responses = append(responses, toAssessmentResponse(&a))
	}
	return responses, nil
}

// GetAssessmentByType implements AssessmentService
func (s *assessmentService) GetAssessmentByType(ctx context.Context, assessmentType string) (*dto.AssessmentResponse, error) {
	assessment, err := s.assessmentRepo.GetAssessmentByType(ctx, assessmentType)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get assessment", err)
	}
	if assessment == nil {
		return nil, domain.NewAssessmentNotFoundError(assessmentType)
	}
	resp := toAssessmentResponse(assessment)
	return &resp, nil
}

// GetQuestions implements AssessmentService
func (s *assessmentService) GetQuestions(ctx context.Context, assessmentType string) ([]dto.QuestionResponse, error) {
	questions, err := s.reference.Questions(ctx, assessmentType)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get questions", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewAssessmentNotFoundError(assessmentType)
	}

	responses := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		responses = append(responses, dto.QuestionResponse{
			ID:             q.ID,
			AssessmentType: q.AssessmentType,
			Text:           q.Text,
			Options:        q.Options,
			Order:          q.Order,
			Category:       q.Category,
		})
	}
	return responses, nil
}

// SubmitQuiz implements AssessmentService. It validates the answer vector
// against the question list, scores it, persists the result and returns it
// together with the matched recommendations.
func (s *assessmentService) SubmitQuiz(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	questions, err := s.reference.Questions(ctx, req.AssessmentType)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get questions", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewAssessmentNotFoundError(req.AssessmentType)
	}

	if err := domain.ValidateAnswers(questions, req.Answers, s.scale); err != nil {
		return nil, err
	}

	scoreResult, err := domain.ComputeScore(questions, req.Answers, s.scale)
	if err != nil {
		return nil, err
	}

	result := domain.NewResult(req.UserID, req.AssessmentType, scoreResult, req.Answers)
	if err := s.resultRepo.SaveResult(ctx, result); err != nil {
		return nil, domain.NewInternalError("Failed to save result", err)
	}

	logger.Get().Info("Quiz submitted",
		zap.String("assessment_type", req.AssessmentType),
		zap.String("result_id", result.ID),
		zap.Int("score", result.Score),
		zap.Bool("anonymous", req.UserID == ""),
	)

	recs, err := s.matchForResult(ctx, result)
	if err != nil {
		return nil, err
	}

	return &dto.SubmitQuizResponse{
		Result:          dto.ToResultResponse(result),
		Recommendations: dto.ToRecommendationResponses(recs),
	}, nil
}

// GetResult implements AssessmentService. Recommendations are recomputed
// from the stored category scores on every read.
func (s *assessmentService) GetResult(ctx context.Context, resultID string) (*dto.SubmitQuizResponse, error) {
	result, err := s.resultRepo.GetResultByID(ctx, resultID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get result", err)
	}
	if result == nil {
		return nil, domain.NewResultNotFoundError(resultID)
	}

	recs, err := s.matchForResult(ctx, result)
	if err != nil {
		return nil, err
	}

	return &dto.SubmitQuizResponse{
		Result:          dto.ToResultResponse(result),
		Recommendations: dto.ToRecommendationResponses(recs),
	}, nil
}

// GetResultsByUser implements AssessmentService
func (s *assessmentService) GetResultsByUser(ctx context.Context, userID string) ([]dto.ResultResponse, error) {
	results, err := s.resultRepo.GetResultsByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get results", err)
	}

	responses := make([]dto.ResultResponse, 0, len(results))
	for i := range results {
		responses = append(responses, dto.ToResultResponse(&results[i]))
	}
	return responses, nil
}

// GetLatestResults implements AssessmentService. Results arrive newest
// first, so the first result seen per assessment type is the latest one.
func (s *assessmentService) GetLatestResults(ctx context.Context, userID string) ([]dto.ResultResponse, error) {
	results, err := s.resultRepo.GetResultsByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get results", err)
	}

	seen := make(map[string]bool)
	responses := make([]dto.ResultResponse, 0)
	for i := range results {
		if seen[results[i].AssessmentType] {
			continue
		}
		seen[results[i].AssessmentType] = true
		responses = append(responses, dto.ToResultResponse(&results[i]))
	}
	return responses, nil
}

// GetTopRecommendations implements AssessmentService. It unions the matched
// recommendations over every result the user has, then keeps the five
// highest-priority entries.
func (s *assessmentService) GetTopRecommendations(ctx context.Context, userID string) ([]dto.RecommendationResponse, error) {
	results, err := s.resultRepo.GetResultsByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get results", err)
	}
	if len(results) == 0 {
		return []dto.RecommendationResponse{}, nil
	}

	var all []domain.Recommendation
	for i := range results {
		recs, err := s.matchForResult(ctx, &results[i])
		if err != nil {
			return nil, err
		}
		all = append(all, recs...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Priority.Rank() < all[j].Priority.Rank()
	})
	if len(all) > topRecommendationsLimit {
		all = all[:topRecommendationsLimit]
	}
	return dto.ToRecommendationResponses(all), nil
}

func (s *assessmentService) matchForResult(ctx context.Context, result *domain.Result) ([]domain.Recommendation, error) {
	candidates, err := s.reference.Recommendations(ctx, result.AssessmentType)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get recommendations", err)
	}
	return domain.MatchRecommendations(candidates, result.Categories, 0), nil
}

func toAssessmentResponse(a *domain.Assessment) dto.AssessmentResponse {
	return dto.AssessmentResponse{
		ID:          a.ID,
		Type:        a.Type,
		Title:       a.Title,
		Description: a.Description,
		Duration:    a.Duration,
		Icon:        a.Icon,
	}
}

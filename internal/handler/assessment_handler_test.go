package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"wellspring/internal/config"
	"wellspring/internal/domain"
	"wellspring/internal/dto"
	"wellspring/internal/handler"
	"wellspring/internal/logger"
	"wellspring/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func init() {
	_ = logger.Initialize(config.LoggerConfig{Level: "debug", Env: "test"})
}

// Manual mock of service.AssessmentService
type MockAssessmentService struct {
	GetAssessmentsFunc        func(ctx context.Context) ([]dto.AssessmentResponse, error)
	GetAssessmentByTypeFunc   func(ctx context.Context, assessmentType string) (*dto.AssessmentResponse, error)
	GetQuestionsFunc          func(ctx context.Context, assessmentType string) ([]dto.QuestionResponse, error)
	SubmitQuizFunc            func(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	GetResultFunc             func(ctx context.Context, resultID string) (*dto.SubmitQuizResponse, error)
	GetResultsByUserFunc      func(ctx context.Context, userID string) ([]dto.ResultResponse, error)
	GetLatestResultsFunc      func(ctx context.Context, userID string) ([]dto.ResultResponse, error)
	GetTopRecommendationsFunc func(ctx context.Context, userID string) ([]dto.RecommendationResponse, error)
}

func (m *MockAssessmentService) GetAssessments(ctx context.Context) ([]dto.AssessmentResponse, error) {
	if m.GetAssessmentsFunc != nil {
		return m.GetAssessmentsFunc(ctx)
	}
	panic("MockAssessmentService.GetAssessmentsFunc not implemented")
}
func (m *MockAssessmentService) GetAssessmentByType(ctx context.Context, assessmentType string) (*dto.AssessmentResponse, error) {
	if m.GetAssessmentByTypeFunc != nil {
		return m.GetAssessmentByTypeFunc(ctx, assessmentType)
	}
	panic("MockAssessmentService.GetAssessmentByTypeFunc not implemented")
}
func (m *MockAssessmentService) GetQuestions(ctx context.Context, assessmentType string) ([]dto.QuestionResponse, error) {
	if m.GetQuestionsFunc != nil {
		return m.GetQuestionsFunc(ctx, assessmentType)
	}
	panic("MockAssessmentService.GetQuestionsFunc not implemented")
}
func (m *MockAssessmentService) SubmitQuiz(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	if m.SubmitQuizFunc != nil {
		return m.SubmitQuizFunc(ctx, req)
	}
	panic("MockAssessmentService.SubmitQuizFunc not implemented")
}
func (m *MockAssessmentService) GetResult(ctx context.Context, resultID string) (*dto.SubmitQuizResponse, error) {
	if m.GetResultFunc != nil {
		return m.GetResultFunc(ctx, resultID)
	}
	panic("MockAssessmentService.GetResultFunc not implemented")
}
func (m *MockAssessmentService) GetResultsByUser(ctx context.Context, userID string) ([]dto.ResultResponse, error) {
	if m.GetResultsByUserFunc != nil {
		return m.GetResultsByUserFunc(ctx, userID)
	}
	panic("MockAssessmentService.GetResultsByUserFunc not implemented")
}
func (m *MockAssessmentService) GetLatestResults(ctx context.Context, userID string) ([]dto.ResultResponse, error) {
	if m.GetLatestResultsFunc != nil {
		return m.GetLatestResultsFunc(ctx, userID)
	}
	panic("MockAssessmentService.GetLatestResultsFunc not implemented")
}
func (m *MockAssessmentService) GetTopRecommendations(ctx context.Context, userID string) ([]dto.RecommendationResponse, error) {
	if m.GetTopRecommendationsFunc != nil {
		return m.GetTopRecommendationsFunc(ctx, userID)
	}
	panic("MockAssessmentService.GetTopRecommendationsFunc not implemented")
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
}

func TestGetAssessmentsHandler(t *testing.T) {
	mockSvc := &MockAssessmentService{
		GetAssessmentsFunc: func(ctx context.Context) ([]dto.AssessmentResponse, error) {
			return []dto.AssessmentResponse{
				{ID: "a1", Type: "stress", Title: "Stress Check"},
			}, nil
		},
	}

	app := newTestApp()
	h := handler.NewAssessmentHandler(mockSvc)
	app.Get("/api/assessments", h.GetAssessments)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/assessments", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []dto.AssessmentResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body, 1)
	assert.Equal(t, "stress", body[0].Type)
}

func TestGetQuestionsHandler_NotFound(t *testing.T) {
	mockSvc := &MockAssessmentService{
		GetQuestionsFunc: func(ctx context.Context, assessmentType string) ([]dto.QuestionResponse, error) {
			return nil, domain.NewAssessmentNotFoundError(assessmentType)
		},
	}

	app := newTestApp()
	h := handler.NewAssessmentHandler(mockSvc)
	app.Get("/api/questions/:type", h.GetQuestions)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/questions/unknown", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body middleware.ErrorResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(domain.ErrAssessmentNotFound), body.Code)
}

func TestSubmitQuizHandler(t *testing.T) {
	var captured *dto.SubmitQuizRequest
	mockSvc := &MockAssessmentService{
		SubmitQuizFunc: func(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
			captured = req
			return &dto.SubmitQuizResponse{
				Result:          dto.ResultResponse{ID: "result-1", AssessmentType: req.AssessmentType, Score: 50},
				Recommendations: []dto.RecommendationResponse{},
			}, nil
		},
	}

	app := newTestApp()
	h := handler.NewAssessmentHandler(mockSvc)
	app.Post("/api/submit-quiz", h.SubmitQuiz)

	payload, _ := json.Marshal(dto.SubmitQuizRequest{
		AssessmentType: "stress",
		Answers:        []int{3, 3, 3, 3},
	})
	req := httptest.NewRequest("POST", "/api/submit-quiz", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "stress", captured.AssessmentType)
	assert.Empty(t, captured.UserID)

	var body dto.SubmitQuizResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "result-1", body.Result.ID)
}

func TestSubmitQuizHandler_AuthenticatedUserOverridesBody(t *testing.T) {
	var captured *dto.SubmitQuizRequest
	mockSvc := &MockAssessmentService{
		SubmitQuizFunc: func(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
			captured = req
			return &dto.SubmitQuizResponse{Result: dto.ResultResponse{ID: "result-1"}}, nil
		},
	}

	app := newTestApp()
	h := handler.NewAssessmentHandler(mockSvc)
	app.Post("/api/submit-quiz", func(c *fiber.Ctx) error {
		// Stand-in for OptionalAuth having validated a token.
		c.Locals(middleware.UserIDKey, "authed-user")
		return c.Next()
	}, h.SubmitQuiz)

	payload, _ := json.Marshal(dto.SubmitQuizRequest{
		AssessmentType: "stress",
		Answers:        []int{3},
		UserID:         "someone-else",
	})
	req := httptest.NewRequest("POST", "/api/submit-quiz", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "authed-user", captured.UserID)
}

func TestSubmitQuizHandler_MissingType(t *testing.T) {
	app := newTestApp()
	h := handler.NewAssessmentHandler(&MockAssessmentService{})
	app.Post("/api/submit-quiz", h.SubmitQuiz)

	payload, _ := json.Marshal(dto.SubmitQuizRequest{Answers: []int{1}})
	req := httptest.NewRequest("POST", "/api/submit-quiz", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetUserResultsHandler_Ownership(t *testing.T) {
	mockSvc := &MockAssessmentService{
		GetResultsByUserFunc: func(ctx context.Context, userID string) ([]dto.ResultResponse, error) {
			return []dto.ResultResponse{{ID: "r1", UserID: userID}}, nil
		},
	}

	app := newTestApp()
	h := handler.NewAssessmentHandler(mockSvc)
	app.Get("/api/results/:userId", func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDKey, "user-1")
		return c.Next()
	}, h.GetUserResults)

	// Own data is allowed.
	resp, err := app.Test(httptest.NewRequest("GET", "/api/results/user-1", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Someone else's data is not.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/results/user-2", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

package handler

import (
	"wellspring/internal/domain"
	"wellspring/internal/dto"
	"wellspring/internal/middleware"
	"wellspring/internal/service"
	"wellspring/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AssessmentHandler handles assessment-related HTTP requests
type AssessmentHandler struct {
	service   service.AssessmentService
	validator *validation.Validator
}

// NewAssessmentHandler creates a new AssessmentHandler instance
func NewAssessmentHandler(service service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GetAssessments godoc
// @Summary List assessments
// @Description Returns the assessment catalog
// @Tags assessments
// @Produce json
// @Success 200 {array} dto.AssessmentResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /assessments [get]
func (h *AssessmentHandler) GetAssessments(c *fiber.Ctx) error {
	assessments, err := h.service.GetAssessments(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(assessments)
}

// GetAssessmentByType godoc
// @Summary Get one assessment
// @Description Returns the assessment with the given type
// @Tags assessments
// @Produce json
// @Param type path string true "Assessment type"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /assessments/{type} [get]
func (h *AssessmentHandler) GetAssessmentByType(c *fiber.Ctx) error {
	assessment, err := h.service.GetAssessmentByType(c.Context(), c.Params("type"))
	if err != nil {
		return err
	}
	return c.JSON(assessment)
}

// GetQuestions godoc
// @Summary Get questions for an assessment
// @Description Returns the ordered question list for the given assessment type
// @Tags assessments
// @Produce json
// @Param type path string true "Assessment type"
// @Success 200 {array} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{type} [get]
func (h *AssessmentHandler) GetQuestions(c *fiber.Ctx) error {
	if err := h.validator.ValidateAssessmentType(c.Params("type")); err != nil {
		return err
	}
	questions, err := h.service.GetQuestions(c.Context(), c.Params("type"))
	if err != nil {
		return err
	}
	return c.JSON(questions)
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Scores a completed answer vector, saves the result and returns it with matched recommendations. Anonymous submissions are allowed; with a valid token the result is attributed to the caller.
// @Tags assessments
// @Accept json
// @Produce json
// @Param request body dto.SubmitQuizRequest true "Quiz submission"
// @Success 201 {object} dto.SubmitQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /submit-quiz [post]
func (h *AssessmentHandler) SubmitQuiz(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if err := h.validator.ValidateSubmission(req.AssessmentType, req.Answers); err != nil {
		return err
	}

	// An authenticated caller always owns the result, whatever the body says.
	if userID, ok := c.Locals(middleware.UserIDKey).(string); ok && userID != "" {
		req.UserID = userID
	}

	resp, err := h.service.SubmitQuiz(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetResult godoc
// @Summary Get a result
// @Description Returns a stored result with freshly matched recommendations
// @Tags results
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} dto.SubmitQuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /result/{id} [get]
func (h *AssessmentHandler) GetResult(c *fiber.Ctx) error {
	if err := h.validator.ValidateResultID(c.Params("id")); err != nil {
		return err
	}
	resp, err := h.service.GetResult(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetUserResults godoc
// @Summary List a user's results
// @Description Returns all of the user's results, newest first
// @Tags results
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} dto.ResultResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /results/{userId} [get]
func (h *AssessmentHandler) GetUserResults(c *fiber.Ctx) error {
	userID, err := requireOwnUser(c)
	if err != nil {
		return err
	}
	results, err := h.service.GetResultsByUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(results)
}

// GetLatestResults godoc
// @Summary Latest result per assessment
// @Description Returns the user's most recent result for each assessment type
// @Tags results
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} dto.ResultResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /latest-results/{userId} [get]
func (h *AssessmentHandler) GetLatestResults(c *fiber.Ctx) error {
	userID, err := requireOwnUser(c)
	if err != nil {
		return err
	}
	results, err := h.service.GetLatestResults(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(results)
}

// GetTopRecommendations godoc
// @Summary Top recommendations across assessments
// @Description Returns the five highest-priority recommendations matched over all of the user's results
// @Tags recommendations
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} dto.RecommendationResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /top-recommendations/{userId} [get]
func (h *AssessmentHandler) GetTopRecommendations(c *fiber.Ctx) error {
	userID, err := requireOwnUser(c)
	if err != nil {
		return err
	}
	recs, err := h.service.GetTopRecommendations(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(recs)
}

// requireOwnUser checks that the authenticated caller is the user named in
// the path. Results and recommendations are private to their owner.
func requireOwnUser(c *fiber.Ctx) (string, error) {
	authedID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || authedID == "" {
		return "", domain.NewUnauthorizedError("authentication required")
	}
	pathID := c.Params("userId")
	if pathID != authedID {
		return "", domain.NewForbiddenError("you can only access your own data")
	}
	return authedID, nil
}

package dto

import (
	"time"

	"wellspring/internal/domain"
)

// AssessmentResponse represents an assessment in the API response
// @Description Assessment catalog entry
type AssessmentResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// QuestionResponse represents a question in the API response
// @Description Likert question with its ordered option labels
type QuestionResponse struct {
	ID             string   `json:"id"`
	AssessmentType string   `json:"assessment_type"`
	Text           string   `json:"text"`
	Options        []string `json:"options"`
	Order          int      `json:"order"`
	Category       string   `json:"category"`
}

// SubmitQuizRequest represents a quiz submission in the API request
// @Description Request body for submitting quiz answers. Answers are
// @Description 1-based and positionally aligned with the question order.
type SubmitQuizRequest struct {
	AssessmentType string `json:"assessmentType"`
	Answers        []int  `json:"answers"`
	UserID         string `json:"userId,omitempty"`
}

// ResultResponse represents a persisted assessment result
type ResultResponse struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId,omitempty"`
	AssessmentType string         `json:"assessmentType"`
	Score          int            `json:"score"`
	Answers        []int          `json:"answers"`
	Categories     map[string]int `json:"categories"`
	CompletedAt    time.Time      `json:"completedAt"`
}

// RecommendationResponse represents a matched recommendation
type RecommendationResponse struct {
	ID             string   `json:"id"`
	AssessmentType string   `json:"assessmentType"`
	Category       string   `json:"category"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Tips           []string `json:"tips"`
	MinScore       int      `json:"minScore"`
	MaxScore       int      `json:"maxScore"`
	Priority       string   `json:"priority"`
}

// SubmitQuizResponse pairs a result with its matched recommendations
type SubmitQuizResponse struct {
	Result          ResultResponse           `json:"result"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToResultResponse converts a domain result into its API shape
func ToResultResponse(result *domain.Result) ResultResponse {
	return ResultResponse{
		ID:             result.ID,
		UserID:         result.UserID,
		AssessmentType: result.AssessmentType,
		Score:          result.Score,
		Answers:        result.Answers,
		Categories:     result.Categories,
		CompletedAt:    result.CompletedAt,
	}
}

// ToRecommendationResponses converts domain recommendations into their API shape
func ToRecommendationResponses(recs []domain.Recommendation) []RecommendationResponse {
	responses := make([]RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		responses = append(responses, RecommendationResponse{
			ID:             rec.ID,
			AssessmentType: rec.AssessmentType,
			Category:       rec.Category,
			Title:          rec.Title,
			Description:    rec.Description,
			Tips:           rec.Tips,
			MinScore:       rec.MinScore,
			MaxScore:       rec.MaxScore,
			Priority:       string(rec.Priority),
		})
	}
	return responses
}

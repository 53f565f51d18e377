package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"wellspring/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReferenceQuestions_CacheMissFallsThroughAndPopulates(t *testing.T) {
	mockCache := new(MockCache)
	mockQuestionRepo := new(MockQuestionRepository)
	mockRecRepo := new(MockRecommendationRepository)

	questions := likertQuestions("stress", "Sleep")
	key := questionsKey("stress")

	mockCache.On("Get", mock.Anything, key).Return("", domain.ErrCacheMiss)
	mockQuestionRepo.On("GetQuestionsByAssessmentType", mock.Anything, "stress").Return(questions, nil)
	mockCache.On("Set", mock.Anything, key, mock.AnythingOfType("string"), 10*time.Minute).Return(nil)

	svc := NewReferenceCacheService(mockCache, mockQuestionRepo, mockRecRepo, 10*time.Minute)
	got, err := svc.Questions(context.Background(), "stress")

	assert.NoError(t, err)
	assert.Equal(t, questions, got)
	mockCache.AssertExpectations(t)
	mockQuestionRepo.AssertExpectations(t)
}

func TestReferenceQuestions_CacheHitSkipsRepository(t *testing.T) {
	mockCache := new(MockCache)
	mockQuestionRepo := new(MockQuestionRepository)
	mockRecRepo := new(MockRecommendationRepository)

	questions := likertQuestions("stress", "Sleep", "Anxiety")
	cached, err := json.Marshal(questions)
	assert.NoError(t, err)

	mockCache.On("Get", mock.Anything, questionsKey("stress")).Return(string(cached), nil)

	svc := NewReferenceCacheService(mockCache, mockQuestionRepo, mockRecRepo, 10*time.Minute)
	got, err := svc.Questions(context.Background(), "stress")

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "Sleep", got[0].Category)
	mockQuestionRepo.AssertNotCalled(t, "GetQuestionsByAssessmentType", mock.Anything, mock.Anything)
}

func TestReferenceQuestions_CorruptCacheEntryIsAMiss(t *testing.T) {
	mockCache := new(MockCache)
	mockQuestionRepo := new(MockQuestionRepository)
	mockRecRepo := new(MockRecommendationRepository)

	questions := likertQuestions("stress", "Sleep")
	mockCache.On("Get", mock.Anything, questionsKey("stress")).Return("{not json", nil)
	mockQuestionRepo.On("GetQuestionsByAssessmentType", mock.Anything, "stress").Return(questions, nil)
	mockCache.On("Set", mock.Anything, questionsKey("stress"), mock.AnythingOfType("string"), mock.Anything).Return(nil)

	svc := NewReferenceCacheService(mockCache, mockQuestionRepo, mockRecRepo, 10*time.Minute)
	got, err := svc.Questions(context.Background(), "stress")

	assert.NoError(t, err)
	assert.Equal(t, questions, got)
}

func TestReferenceQuestions_ConcurrentMissesLoadOnce(t *testing.T) {
	mockCache := new(MockCache)
	mockQuestionRepo := new(MockQuestionRepository)
	mockRecRepo := new(MockRecommendationRepository)

	questions := likertQuestions("stress", "Sleep")
	key := questionsKey("stress")

	mockCache.On("Get", mock.Anything, key).Return("", domain.ErrCacheMiss)
	mockCache.On("Set", mock.Anything, key, mock.AnythingOfType("string"), mock.Anything).Return(nil)
	// The repository load is slow enough for every caller to pile up behind
	// the first one, and the single in-flight load must serve them all.
	mockQuestionRepo.On("GetQuestionsByAssessmentType", mock.Anything, "stress").
		Run(func(mock.Arguments) { time.Sleep(100 * time.Millisecond) }).
		Return(questions, nil).Once()

	svc := NewReferenceCacheService(mockCache, mockQuestionRepo, mockRecRepo, 10*time.Minute)

	const callers = 8
	var wg sync.WaitGroup
	results := make([][]domain.Question, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Questions(context.Background(), "stress")
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		assert.NoError(t, errs[i])
		assert.Equal(t, questions, results[i])
	}
	mockQuestionRepo.AssertNumberOfCalls(t, "GetQuestionsByAssessmentType", 1)
}

func TestReferenceRecommendations_NilCachePassesThrough(t *testing.T) {
	mockQuestionRepo := new(MockQuestionRepository)
	mockRecRepo := new(MockRecommendationRepository)

	recs := []domain.Recommendation{{ID: "r1", AssessmentType: "stress", Category: "sleep", MaxScore: 100, Priority: domain.PriorityHigh}}
	mockRecRepo.On("GetRecommendationsByAssessmentType", mock.Anything, "stress").Return(recs, nil)

	svc := NewReferenceCacheService(nil, mockQuestionRepo, mockRecRepo, 10*time.Minute)
	got, err := svc.Recommendations(context.Background(), "stress")

	assert.NoError(t, err)
	assert.Equal(t, recs, got)
}

func TestReferenceInvalidate_DeletesBothKeys(t *testing.T) {
	mockCache := new(MockCache)
	mockQuestionRepo := new(MockQuestionRepository)
	mockRecRepo := new(MockRecommendationRepository)

	mockCache.On("Delete", mock.Anything, questionsKey("stress")).Return(nil)
	mockCache.On("Delete", mock.Anything, recommendationsKey("stress")).Return(nil)

	svc := NewReferenceCacheService(mockCache, mockQuestionRepo, mockRecRepo, 10*time.Minute)
	assert.NoError(t, svc.Invalidate(context.Background(), "stress"))
	mockCache.AssertExpectations(t)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"wellspring/internal/cache"
	"wellspring/internal/domain"
	"wellspring/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ReferenceCacheService serves the static reference data (question lists
// and recommendation tables) through a cache-aside layer, falling back to
// the repositories on a miss. A stale entry is only ever a TTL behind a
// reseed, which is acceptable for data that changes at deploy time.
type ReferenceCacheService interface {
	Questions(ctx context.Context, assessmentType string) ([]domain.Question, error)
	Recommendations(ctx context.Context, assessmentType string) ([]domain.Recommendation, error)
	Invalidate(ctx context.Context, assessmentType string) error
}

type referenceCacheServiceImpl struct {
	cache        domain.Cache
	questionRepo domain.QuestionRepository
	recRepo      domain.RecommendationRepository
	ttl          time.Duration
	sfGroup      singleflight.Group
}

// NewReferenceCacheService creates a new instance of referenceCacheServiceImpl.
// A nil cache degrades to repository passthrough so the service keeps working
// without Redis.
func NewReferenceCacheService(
	c domain.Cache,
	questionRepo domain.QuestionRepository,
	recRepo domain.RecommendationRepository,
	ttl time.Duration,
) ReferenceCacheService {
	if c == nil {
		logger.Get().Warn("ReferenceCacheService initialized with nil cache. Reads go straight to the database.")
	}
	return &referenceCacheServiceImpl{
		cache:        c,
		questionRepo: questionRepo,
		recRepo:      recRepo,
		ttl:          ttl,
	}
}

func questionsKey(assessmentType string) string {
	return cache.GenerateCacheKey("reference", "questions", assessmentType)
}

func recommendationsKey(assessmentType string) string {
	return cache.GenerateCacheKey("reference", "recommendations", assessmentType)
}

// Questions implements ReferenceCacheService
func (s *referenceCacheServiceImpl) Questions(ctx context.Context, assessmentType string) ([]domain.Question, error) {
	key := questionsKey(assessmentType)
	var questions []domain.Question
	if hit := s.tryGet(ctx, key, &questions); hit {
		return questions, nil
	}

	// Cache miss: collapse concurrent loads for the same key into one
	// repository call.
	res, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		loaded, loadErr := s.questionRepo.GetQuestionsByAssessmentType(ctx, assessmentType)
		if loadErr != nil {
			return nil, loadErr
		}
		s.tryPut(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return res.([]domain.Question), nil
}

// Recommendations implements ReferenceCacheService
func (s *referenceCacheServiceImpl) Recommendations(ctx context.Context, assessmentType string) ([]domain.Recommendation, error) {
	key := recommendationsKey(assessmentType)
	var recs []domain.Recommendation
	if hit := s.tryGet(ctx, key, &recs); hit {
		return recs, nil
	}

	res, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		loaded, loadErr := s.recRepo.GetRecommendationsByAssessmentType(ctx, assessmentType)
		if loadErr != nil {
			return nil, loadErr
		}
		s.tryPut(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return res.([]domain.Recommendation), nil
}

// Invalidate implements ReferenceCacheService
func (s *referenceCacheServiceImpl) Invalidate(ctx context.Context, assessmentType string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, questionsKey(assessmentType)); err != nil {
		return domain.NewInternalError("failed to invalidate question cache", err)
	}
	if err := s.cache.Delete(ctx, recommendationsKey(assessmentType)); err != nil {
		return domain.NewInternalError("failed to invalidate recommendation cache", err)
	}
	return nil
}

// tryGet reports whether the key was found and decoded. Cache failures are
// logged and treated as misses; the database remains the source of truth.
func (s *referenceCacheServiceImpl) tryGet(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Error("Failed to read reference data from cache", zap.Error(err), zap.String("key", key))
		}
		return false
	}
	if data == "" {
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		logger.Get().Error("Failed to unmarshal cached reference data", zap.Error(err), zap.String("key", key))
		return false
	}
	logger.Get().Debug("Reference cache hit", zap.String("key", key))
	return true
}

func (s *referenceCacheServiceImpl) tryPut(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		logger.Get().Error("Failed to marshal reference data for caching", zap.Error(err), zap.String("key", key))
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to cache reference data", zap.Error(err), zap.String("key", key))
	}
}

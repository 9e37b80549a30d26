package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lms-quiz/internal/adapter"
	"lms-quiz/internal/cache"
	"lms-quiz/internal/domain"
	"lms-quiz/internal/dto"
	"lms-quiz/internal/logger"

	"go.uber.org/zap"
)

// AttemptService persists finished attempts and serves their results.
type AttemptService interface {
	// RecordAttempt stores a sealed attempt for userID, caches its graded
	// result and announces it. The returned result includes any advisory
	// feedback.
	RecordAttempt(ctx context.Context, userID string, quiz *domain.Quiz, attempt domain.Attempt) (*dto.AttemptResultResponse, error)
	ListAttempts(ctx context.Context, userID string, pagination domain.Pagination) ([]domain.AttemptRecord, int, error)
	// GetResult returns a cached result owned by userID.
	GetResult(ctx context.Context, userID, attemptID string) (*dto.AttemptResultResponse, error)
}

type cachedResult struct {
	UserID string                    `json:"user_id"`
	Result dto.AttemptResultResponse `json:"result"`
}

type attemptServiceImpl struct {
	repo      domain.AttemptRepository
	cache     domain.Cache
	publisher domain.EventPublisher
	advisor   domain.FeedbackAdvisor
	ttl       time.Duration
}

// NewAttemptService creates the attempt service. cache, publisher and advisor
// may be nil.
func NewAttemptService(
	repo domain.AttemptRepository,
	cache domain.Cache,
	publisher domain.EventPublisher,
	advisor domain.FeedbackAdvisor,
	resultTTL time.Duration,
) AttemptService {
	return &attemptServiceImpl{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		advisor:   advisor,
		ttl:       resultTTL,
	}
}

func (s *attemptServiceImpl) RecordAttempt(ctx context.Context, userID string, quiz *domain.Quiz, attempt domain.Attempt) (*dto.AttemptResultResponse, error) {
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(attempt.QuizID)
	}
	if attempt.QuizID != quiz.ID {
		return nil, domain.NewInvalidInputError("attempt does not belong to the given quiz")
	}
	appLogger := logger.Get().With(
		zap.String("userID", userID),
		zap.String("attemptID", attempt.ID),
		zap.String("quizID", quiz.ID))

	record := &domain.AttemptRecord{Attempt: attempt, UserID: userID}
	if err := s.repo.UpsertAttempt(ctx, record); err != nil {
		appLogger.Error("Failed to save quiz attempt", zap.Error(err))
		return nil, domain.NewInternalError("failed to save quiz attempt", err)
	}

	domainResult := domain.BuildResult(quiz, &attempt)
	result := dto.ToAttemptResult(domainResult)
	s.addFeedback(ctx, quiz, result)

	if s.cache != nil {
		entry := cachedResult{UserID: userID, Result: *result}
		if err := adapter.SetJSON(ctx, s.cache, cache.ResultKey(attempt.ID), entry, s.ttl); err != nil {
			appLogger.Warn("Failed to cache attempt result", zap.Error(err))
		}
	}

	if s.publisher != nil {
		event := dto.AttemptCompletedEvent{
			AttemptID:   attempt.ID,
			UserID:      userID,
			QuizID:      quiz.ID,
			ModuleID:    quiz.ModuleID,
			Score:       attempt.Score,
			TotalPoints: attempt.TotalPoints,
			Percentage:  domainResult.Percentage,
			Passed:      attempt.Passed,
			Completion:  string(attempt.Completion),
			CompletedAt: attempt.CompletedAt,
		}
		if err := s.publisher.Publish(ctx, domain.EventAttemptCompleted, event); err != nil {
			appLogger.Warn("Failed to publish attempt completed event", zap.Error(err))
		}
	}

	appLogger.Info("Quiz attempt recorded",
		zap.Float64("score", attempt.Score),
		zap.Float64("total", attempt.TotalPoints),
		zap.Bool("passed", attempt.Passed),
		zap.String("completion", string(attempt.Completion)))
	return result, nil
}

// addFeedback asks the advisor about wrong free-text answers. Failures only
// leave the note empty.
func (s *attemptServiceImpl) addFeedback(ctx context.Context, quiz *domain.Quiz, result *dto.AttemptResultResponse) {
	if s.advisor == nil {
		return
	}
	for i := range result.Questions {
		review := &result.Questions[i]
		if review.IsCorrect || review.Type != string(domain.KindShortAnswer) {
			continue
		}
		q, ok := quiz.Question(review.QuestionID)
		if !ok || review.UserAnswerDisplay == domain.NoAnswerMarker {
			continue
		}
		note, err := s.advisor.Feedback(ctx, q, review.UserAnswerDisplay)
		if err != nil {
			logger.Get().Warn("Feedback advisor failed",
				zap.String("questionID", q.ID),
				zap.Error(err))
			continue
		}
		review.Feedback = note
	}
}

func (s *attemptServiceImpl) ListAttempts(ctx context.Context, userID string, pagination domain.Pagination) ([]domain.AttemptRecord, int, error) {
	records, total, err := s.repo.GetAttemptsByUserID(ctx, userID, pagination)
	if err != nil {
		logger.Get().Error("Failed to list quiz attempts", zap.String("userID", userID), zap.Error(err))
		return nil, 0, domain.NewInternalError("failed to list quiz attempts", err)
	}
	return records, total, nil
}

func (s *attemptServiceImpl) GetResult(ctx context.Context, userID, attemptID string) (*dto.AttemptResultResponse, error) {
	if s.cache == nil {
		return nil, domain.NewResultNotFoundError(attemptID)
	}
	var entry cachedResult
	err := adapter.GetJSON(ctx, s.cache, cache.ResultKey(attemptID), &entry)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewResultNotFoundError(attemptID)
		}
		return nil, domain.NewInternalError(fmt.Sprintf("failed to read result %s", attemptID), err)
	}
	if entry.UserID != userID {
		return nil, domain.NewResultNotFoundError(attemptID)
	}
	return &entry.Result, nil
}

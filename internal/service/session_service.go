package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"lms-quiz/internal/config"
	"lms-quiz/internal/domain"
	"lms-quiz/internal/dto"
	"lms-quiz/internal/engine"
	"lms-quiz/internal/logger"
	"lms-quiz/internal/util"

	"go.uber.org/zap"
)

// Direction is a navigation step within a session.
type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
)

const persistTimeout = 10 * time.Second

// SessionService owns one quiz engine per learner session.
type SessionService interface {
	Create(ctx context.Context, userID, moduleID string) (*dto.SessionResponse, error)
	Get(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error)
	Start(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error)
	RecordAnswer(ctx context.Context, userID, sessionID, questionID string, answer domain.Answer) (*dto.SessionResponse, error)
	Navigate(ctx context.Context, userID, sessionID string, direction Direction) (*dto.SessionResponse, error)
	Submit(ctx context.Context, userID, sessionID string) (*dto.AttemptResultResponse, error)
	Retake(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error)
	Result(ctx context.Context, userID, sessionID string) (*dto.AttemptResultResponse, error)
	Abandon(ctx context.Context, userID, sessionID string) error

	// Run closes idle sessions until ctx is done.
	Run(ctx context.Context) error
	// Shutdown closes every session.
	Shutdown()
}

type session struct {
	id       string
	userID   string
	engine   *engine.Engine
	lastSeen atomic.Int64
}

func (s *session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

type sessionServiceImpl struct {
	catalog  CatalogService
	attempts AttemptService
	cfg      config.SessionConfig
	now      func() time.Time
	opts     []engine.Option

	mu       sync.Mutex
	sessions map[string]*session
}

// NewSessionService creates the session service. opts are applied to every
// engine it builds.
func NewSessionService(catalog CatalogService, attempts AttemptService, cfg config.SessionConfig, opts ...engine.Option) SessionService {
	return &sessionServiceImpl{
		catalog:  catalog,
		attempts: attempts,
		cfg:      cfg,
		now:      time.Now,
		opts:     opts,
		sessions: make(map[string]*session),
	}
}

func (s *sessionServiceImpl) Create(ctx context.Context, userID, moduleID string) (*dto.SessionResponse, error) {
	quizzes, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	sess := &session{id: util.NewULID(), userID: userID}
	opts := append([]engine.Option{engine.WithCompletionCallback(s.onComplete(sess))}, s.opts...)
	sess.engine = engine.New(quizzes, moduleID, opts...)
	sess.touch(s.now())

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	logger.Get().Info("Quiz session created",
		zap.String("sessionID", sess.id),
		zap.String("userID", userID),
		zap.String("moduleID", moduleID),
		zap.Bool("available", sess.engine.HasQuiz()))
	return s.view(sess), nil
}

// onComplete persists a finished attempt. It may run on the timer goroutine,
// so it uses its own context.
func (s *sessionServiceImpl) onComplete(sess *session) engine.CompletionFunc {
	return func(attempt domain.Attempt) {
		sess.touch(s.now())
		if s.attempts == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if _, err := s.attempts.RecordAttempt(ctx, sess.userID, sess.engine.Quiz(), attempt); err != nil {
			logger.Get().Error("Failed to record completed attempt",
				zap.String("sessionID", sess.id),
				zap.String("attemptID", attempt.ID),
				zap.Error(err))
		}
	}
}

func (s *sessionServiceImpl) lookup(userID, sessionID string) (*session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok || sess.userID != userID {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	sess.touch(s.now())
	return sess, nil
}

func (s *sessionServiceImpl) view(sess *session) *dto.SessionResponse {
	resp := dto.ToSessionResponse(sess.id, sess.engine.Snapshot())
	return &resp
}

func (s *sessionServiceImpl) Get(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error) {
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *sessionServiceImpl) Start(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error) {
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.engine.Start(); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *sessionServiceImpl) RecordAnswer(ctx context.Context, userID, sessionID, questionID string, answer domain.Answer) (*dto.SessionResponse, error) {
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.engine.RecordAnswer(questionID, answer); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *sessionServiceImpl) Navigate(ctx context.Context, userID, sessionID string, direction Direction) (*dto.SessionResponse, error) {
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	switch direction {
	case DirectionNext:
		err = sess.engine.Next()
	case DirectionPrevious:
		err = sess.engine.Previous()
	default:
		return nil, domain.NewInvalidInputError("direction must be next or previous")
	}
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *sessionServiceImpl) Submit(ctx context.Context, userID, sessionID string) (*dto.AttemptResultResponse, error) {
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.engine.Submit(); err != nil {
		return nil, err
	}
	return s.result(ctx, sess)
}

func (s *sessionServiceImpl) Retake(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error) {
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.engine.Retake(); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *sessionServiceImpl) Result(ctx context.Context, userID, sessionID string) (*dto.AttemptResultResponse, error) {
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.result(ctx, sess)
}

// result prefers the recorded result, which carries advisory feedback, and
// falls back to grading from the engine.
func (s *sessionServiceImpl) result(ctx context.Context, sess *session) (*dto.AttemptResultResponse, error) {
	res, err := sess.engine.Result()
	if err != nil {
		return nil, err
	}
	if s.attempts != nil {
		if recorded, err := s.attempts.GetResult(ctx, sess.userID, res.AttemptID); err == nil {
			return recorded, nil
		}
	}
	return dto.ToAttemptResult(res), nil
}

func (s *sessionServiceImpl) Abandon(ctx context.Context, userID, sessionID string) error {
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	sess.engine.Close()

	logger.Get().Info("Quiz session abandoned", zap.String("sessionID", sessionID), zap.String("userID", userID))
	return nil
}

func (s *sessionServiceImpl) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep closes sessions idle for longer than the configured timeout. A timed
// attempt still counting down is left for its timer to submit.
func (s *sessionServiceImpl) sweep() int {
	cutoff := s.now().Add(-s.cfg.IdleTimeout).UnixNano()

	var idle []*session
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.lastSeen.Load() < cutoff && !sess.engine.CountingDown() {
			idle = append(idle, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range idle {
		sess.engine.Close()
	}
	if len(idle) > 0 {
		logger.Get().Info("Closed idle quiz sessions", zap.Int("count", len(idle)))
	}
	return len(idle)
}

func (s *sessionServiceImpl) Shutdown() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range all {
		sess.engine.Close()
	}
}

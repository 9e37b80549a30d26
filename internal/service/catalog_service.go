package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"lms-quiz/internal/adapter"
	"lms-quiz/internal/cache"
	"lms-quiz/internal/domain"
	"lms-quiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CatalogService holds the validated quiz catalog.
type CatalogService interface {
	// Load reads the catalog from its source, validates every quiz, and
	// replaces the in-memory catalog. It returns the ids of rejected quizzes.
	Load(ctx context.Context) (LoadReport, error)
	// Quizzes returns the catalog, optionally filtered by module.
	Quizzes(ctx context.Context, moduleID string) ([]*domain.Quiz, error)
	// QuizForModule returns the first quiz owned by moduleID, or (nil, false).
	QuizForModule(ctx context.Context, moduleID string) (*domain.Quiz, bool, error)
	// Catalog returns the whole catalog for building engines.
	Catalog(ctx context.Context) ([]*domain.Quiz, error)
}

// LoadReport summarizes a catalog load.
type LoadReport struct {
	Loaded   int
	Rejected []string
}

type catalogServiceImpl struct {
	source domain.QuizCatalog
	cache  domain.Cache
	ttl    time.Duration
	strict bool

	mu      sync.RWMutex
	quizzes []*domain.Quiz
	loaded  bool

	fill singleflight.Group
}

// NewCatalogService creates the catalog service. cache may be nil.
func NewCatalogService(source domain.QuizCatalog, cache domain.Cache, ttl time.Duration, strict bool) CatalogService {
	return &catalogServiceImpl{
		source: source,
		cache:  cache,
		ttl:    ttl,
		strict: strict,
	}
}

func (s *catalogServiceImpl) Load(ctx context.Context) (LoadReport, error) {
	raw, err := s.source.LoadQuizCatalog(ctx)
	if err != nil {
		return LoadReport{}, domain.NewInternalError("failed to load quiz catalog", err)
	}

	valid, report, err := s.validate(raw)
	if err != nil {
		return report, err
	}

	s.mu.Lock()
	s.quizzes = valid
	s.loaded = true
	s.mu.Unlock()

	s.store(ctx, valid)
	logger.Get().Info("Quiz catalog loaded",
		zap.Int("loaded", report.Loaded),
		zap.Int("rejected", len(report.Rejected)))
	return report, nil
}

func (s *catalogServiceImpl) validate(raw []*domain.Quiz) ([]*domain.Quiz, LoadReport, error) {
	var report LoadReport
	valid := make([]*domain.Quiz, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, q := range raw {
		if q == nil {
			continue
		}
		q.ApplyDefaults()
		err := q.Validate()
		if err == nil {
			if _, dup := seen[q.ID]; dup {
				err = fmt.Errorf("duplicate quiz id %s", q.ID)
			}
		}
		if err != nil {
			invalid := domain.NewInvalidQuizError(q.ID, err)
			logger.Get().Warn("Rejected invalid quiz",
				zap.String("quizID", q.ID),
				zap.String("moduleID", q.ModuleID),
				zap.Error(err))
			if s.strict {
				return nil, report, invalid
			}
			report.Rejected = append(report.Rejected, q.ID)
			continue
		}
		seen[q.ID] = struct{}{}
		valid = append(valid, q)
	}
	report.Loaded = len(valid)
	return valid, report, nil
}

func (s *catalogServiceImpl) store(ctx context.Context, quizzes []*domain.Quiz) {
	if s.cache == nil {
		return
	}
	if err := adapter.SetJSON(ctx, s.cache, cache.CatalogKey(), quizzes, s.ttl); err != nil {
		logger.Get().Warn("Failed to cache quiz catalog", zap.Error(err))
	}
}

// Catalog returns the in-memory catalog, falling back to the cache and then
// the source when nothing has been loaded yet. Concurrent cold reads share
// one fill.
func (s *catalogServiceImpl) Catalog(ctx context.Context) ([]*domain.Quiz, error) {
	s.mu.RLock()
	if s.loaded {
		quizzes := s.quizzes
		s.mu.RUnlock()
		return quizzes, nil
	}
	s.mu.RUnlock()

	v, err, shared := s.fill.Do(cache.CatalogKey(), func() (interface{}, error) {
		return s.coldLoad(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("Quiz catalog fill shared with a concurrent request")
	}
	return v.([]*domain.Quiz), nil
}

func (s *catalogServiceImpl) coldLoad(ctx context.Context) ([]*domain.Quiz, error) {
	if s.cache != nil {
		var cached []*domain.Quiz
		err := adapter.GetJSON(ctx, s.cache, cache.CatalogKey(), &cached)
		switch {
		case err == nil:
			s.mu.Lock()
			s.quizzes = cached
			s.loaded = true
			s.mu.Unlock()
			logger.Get().Debug("Quiz catalog served from cache", zap.Int("count", len(cached)))
			return cached, nil
		case !errors.Is(err, domain.ErrCacheMiss):
			logger.Get().Warn("Failed to read cached quiz catalog", zap.Error(err))
		}
	}

	if _, err := s.Load(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quizzes, nil
}

func (s *catalogServiceImpl) Quizzes(ctx context.Context, moduleID string) ([]*domain.Quiz, error) {
	all, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	if moduleID == "" {
		return all, nil
	}
	filtered := make([]*domain.Quiz, 0, 1)
	for _, q := range all {
		if q.ModuleID == moduleID {
			filtered = append(filtered, q)
		}
	}
	return filtered, nil
}

func (s *catalogServiceImpl) QuizForModule(ctx context.Context, moduleID string) (*domain.Quiz, bool, error) {
	all, err := s.Catalog(ctx)
	if err != nil {
		return nil, false, err
	}
	q, ok := domain.FindQuizForModule(all, moduleID)
	return q, ok, nil
}

package main

import (
	"context"
	"errors"
	"testing"

	"lms-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeWriter struct {
	saved []*domain.Quiz
	err   error
}

func (w *fakeWriter) SaveQuiz(_ context.Context, quiz *domain.Quiz) error {
	if w.err != nil {
		return w.err
	}
	w.saved = append(w.saved, quiz)
	return nil
}

func seedFixture() *domain.Quiz {
	return &domain.Quiz{
		ID:           "quiz-1",
		ModuleID:     "1",
		Title:        "Design Thinking",
		PassingScore: 70,
		Questions: []domain.Question{
			{ID: "q1", Text: "Pick B", Kind: domain.KindMultipleChoice, Options: []string{"A", "B"}, Correct: domain.SingleAnswer("B"), Points: 1},
		},
	}
}

func TestSeedQuiz(t *testing.T) {
	tx := &fakeTxManager{}
	writer := &fakeWriter{}

	require.NoError(t, seedQuiz(context.Background(), tx, writer, seedFixture()))
	assert.Equal(t, 1, tx.calls)
	require.Len(t, writer.saved, 1)
	assert.Equal(t, "quiz-1", writer.saved[0].ID)
}

func TestSeedQuiz_InvalidQuizSkipsTransaction(t *testing.T) {
	tx := &fakeTxManager{}
	writer := &fakeWriter{}
	quiz := seedFixture()
	quiz.Title = ""

	err := seedQuiz(context.Background(), tx, writer, quiz)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeInvalidQuiz))
	assert.Zero(t, tx.calls)
	assert.Empty(t, writer.saved)
}

func TestSeedQuiz_WriterError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("ORA-00001: unique constraint violated")}

	err := seedQuiz(context.Background(), &fakeTxManager{}, writer, seedFixture())
	assert.ErrorContains(t, err, "ORA-00001")
}

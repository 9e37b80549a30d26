package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lms-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
quizzes:
  - id: "1"
    module_id: "1"
    title: Basics
    passing_score: 70
    time_limit_minutes: 5
    questions:
      - id: q1
        text: Pick B
        type: multiple-choice
        options: [A, B, C]
        correct_answer: B
        points: 10
      - id: q2
        text: Pick A and C
        type: multiple-choice
        options: [A, B, C]
        correct_answer: [A, C, A]
        points: 5
      - id: q3
        text: Is water wet?
        type: true-false
        correct_answer: "True"
        points: 5
`

func TestParse(t *testing.T) {
	quizzes, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, quizzes, 1)

	q := quizzes[0]
	assert.Equal(t, "1", q.ModuleID)
	assert.Equal(t, 5, q.TimeLimitMinutes)
	assert.Equal(t, 70.0, q.PassingScore)
	require.Len(t, q.Questions, 3)
	assert.Equal(t, domain.SingleAnswer("B"), q.Questions[0].Correct)
	assert.Equal(t, domain.MultiAnswer{"A", "C"}, q.Questions[1].Correct)
	assert.Equal(t, domain.KindTrueFalse, q.Questions[2].Kind)
	assert.Empty(t, q.Questions[2].Options)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("quizzes:\n  - id: x\n    titel: typo\n"))
	assert.ErrorContains(t, err, "failed to decode YAML")

	_, err = Parse([]byte("quizzes:\n  - id: x\n    questions:\n      - id: q1\n        correct_answer: {a: b}\n"))
	assert.ErrorContains(t, err, "quiz x: question q1")

	quizzes, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, quizzes)
}

func TestFileCatalog_LoadQuizCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizzes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	quizzes, err := NewFileCatalog(path).LoadQuizCatalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, quizzes, 1)

	_, err = NewFileCatalog(filepath.Join(t.TempDir(), "missing.yaml")).LoadQuizCatalog(context.Background())
	assert.ErrorContains(t, err, "failed to read quiz catalog")
}

func TestSeedCatalogIsValid(t *testing.T) {
	quizzes, err := NewFileCatalog("../../configs/seed_data/quizzes.yaml").LoadQuizCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, quizzes, 2)

	for _, q := range quizzes {
		q.ApplyDefaults()
		assert.NoError(t, q.Validate(), q.ID)
	}
	assert.Equal(t, 50.0, quizzes[0].TotalPoints())
	assert.Equal(t, 25.0, quizzes[1].TotalPoints())
	assert.False(t, quizzes[0].HasTimeLimit())
	assert.Equal(t, 10, quizzes[1].TimeLimitMinutes)
}

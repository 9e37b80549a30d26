package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoQuestionQuiz(passing float64) *Quiz {
	return &Quiz{
		ID:           "quiz-1",
		ModuleID:     "1",
		Title:        "Basics",
		PassingScore: passing,
		Questions: []Question{
			{ID: "q1", Text: "Pick B", Kind: KindMultipleChoice, Options: []string{"A", "B", "C"}, Correct: SingleAnswer("B"), Points: 10},
			{ID: "q2", Text: "The sky is green", Kind: KindTrueFalse, Options: []string{"True", "False"}, Correct: SingleAnswer("False"), Points: 5},
		},
	}
}

func TestGradeAnswers_ZeroQuestions(t *testing.T) {
	quiz := &Quiz{ID: "empty", ModuleID: "1", Title: "Empty", PassingScore: 0}

	g := GradeAnswers(quiz, AnswerMap{})

	assert.Equal(t, 0.0, g.Score)
	assert.Equal(t, 0.0, g.TotalPoints)
	assert.Equal(t, 0, g.RoundedPercentage())
	assert.False(t, g.Passed)
}

func TestGradeAnswers_ConcreteScenario(t *testing.T) {
	answers := AnswerMap{"q1": SingleAnswer("B"), "q2": SingleAnswer("True")}

	tests := []struct {
		name       string
		passing    float64
		wantPassed bool
	}{
		{"fails at 70", 70, false},
		{"passes at 60", 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := GradeAnswers(twoQuestionQuiz(tt.passing), answers)
			assert.Equal(t, 10.0, g.Score)
			assert.Equal(t, 15.0, g.TotalPoints)
			assert.Equal(t, 67, g.RoundedPercentage())
			assert.Equal(t, tt.wantPassed, g.Passed)
		})
	}
}

func TestGradeAnswers_Unanswered(t *testing.T) {
	quiz := twoQuestionQuiz(70)

	g := GradeAnswers(quiz, AnswerMap{"q1": SingleAnswer("")})

	assert.Equal(t, 0.0, g.Score)
	assert.Equal(t, 15.0, g.TotalPoints)
	assert.False(t, g.Passed)
}

func TestGradeAnswers_Idempotent(t *testing.T) {
	quiz := twoQuestionQuiz(70)
	answers := AnswerMap{"q1": SingleAnswer("B"), "q2": SingleAnswer("False")}

	first := GradeAnswers(quiz, answers)
	second := GradeAnswers(quiz, answers)

	assert.Equal(t, first, second)
	assert.Len(t, answers, 2)
	assert.Equal(t, SingleAnswer("B"), answers["q1"])
}

func TestIsCorrect_MultiAnswerSize(t *testing.T) {
	q := &Question{
		ID: "m1", Text: "Pick A and B", Kind: KindMultipleChoice,
		Options: []string{"A", "B", "C"}, Correct: NewMultiAnswer("A", "B"), Points: 1,
	}

	tests := []struct {
		name   string
		answer Answer
		want   bool
	}{
		{"subset", NewMultiAnswer("A"), false},
		{"superset", NewMultiAnswer("A", "B", "C"), false},
		{"reordered", NewMultiAnswer("B", "A"), true},
		{"duplicates collapse", NewMultiAnswer("A", "B", "A"), true},
		{"raw duplicates do not fill the set", MultiAnswer{"A", "A"}, false},
		{"raw duplicates of the full set", MultiAnswer{"B", "A", "B"}, true},
		{"single against set", SingleAnswer("A"), false},
		{"empty set", NewMultiAnswer(), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCorrect(q, tt.answer))
		})
	}
}

func TestIsCorrect_SingleIsCaseSensitive(t *testing.T) {
	q := &Question{ID: "s1", Text: "Capital of France", Kind: KindShortAnswer, Correct: SingleAnswer("Paris"), Points: 1}

	assert.True(t, IsCorrect(q, SingleAnswer("Paris")))
	assert.False(t, IsCorrect(q, SingleAnswer("paris")))
	assert.False(t, IsCorrect(q, SingleAnswer(" Paris")))
	assert.False(t, IsCorrect(q, NewMultiAnswer("Paris")))
}

func TestGradeAnswers_PassBoundary(t *testing.T) {
	exact := &Quiz{
		ID: "b", ModuleID: "1", Title: "Boundary", PassingScore: 70,
		Questions: []Question{
			{ID: "hit", Text: "x", Kind: KindShortAnswer, Correct: SingleAnswer("x"), Points: 7},
			{ID: "miss", Text: "y", Kind: KindShortAnswer, Correct: SingleAnswer("y"), Points: 3},
		},
	}
	g := GradeAnswers(exact, AnswerMap{"hit": SingleAnswer("x")})
	assert.Equal(t, 70, g.RoundedPercentage())
	assert.True(t, g.Passed)

	below := &Quiz{
		ID: "b2", ModuleID: "1", Title: "Boundary", PassingScore: 70,
		Questions: []Question{
			{ID: "hit", Text: "x", Kind: KindShortAnswer, Correct: SingleAnswer("x"), Points: 69999},
			{ID: "miss", Text: "y", Kind: KindShortAnswer, Correct: SingleAnswer("y"), Points: 30001},
		},
	}
	g = GradeAnswers(below, AnswerMap{"hit": SingleAnswer("x")})
	assert.Equal(t, 70, g.RoundedPercentage(), "display rounds up")
	assert.False(t, g.Passed, "pass is decided before rounding")
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 67, RoundHalfUp(66.6667))
	assert.Equal(t, 1, RoundHalfUp(0.5))
	assert.Equal(t, 0, RoundHalfUp(0.49))
	assert.Equal(t, 100, RoundHalfUp(100))
}

func TestReviewAnswers(t *testing.T) {
	quiz := twoQuestionQuiz(70)

	reviews := ReviewAnswers(quiz, AnswerMap{"q1": SingleAnswer("B"), "q2": SingleAnswer("")})

	assert.Len(t, reviews, 2)
	assert.True(t, reviews[0].Correct)
	assert.True(t, reviews[0].Answered())
	assert.Equal(t, 10.0, reviews[0].Awarded)

	assert.False(t, reviews[1].Correct)
	assert.False(t, reviews[1].Answered())
	assert.Nil(t, reviews[1].UserAnswer)
	assert.Equal(t, 0.0, reviews[1].Awarded)
	assert.Equal(t, NoAnswerMarker, DisplayAnswer(reviews[1].UserAnswer))
}

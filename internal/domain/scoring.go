package domain

import "math"

// Grade is the outcome of scoring one set of answers against a quiz.
type Grade struct {
	Score       float64
	TotalPoints float64
	Passed      bool
}

// Percentage is score/total*100, or 0 for a quiz worth no points.
func (g Grade) Percentage() float64 {
	if g.TotalPoints <= 0 {
		return 0
	}
	return g.Score / g.TotalPoints * 100
}

// RoundedPercentage is the display value, rounded half up.
func (g Grade) RoundedPercentage() int {
	return RoundHalfUp(g.Percentage())
}

// RoundHalfUp rounds to the nearest integer with .5 going up.
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// IsCorrect applies the equality rule used for scoring:
// a single key needs an identical SingleAnswer, a set key needs a MultiAnswer
// of the same size whose every member is in the key.
func IsCorrect(q *Question, answer Answer) bool {
	if answer == nil || answer.IsEmpty() {
		return false
	}
	switch key := q.Correct.(type) {
	case SingleAnswer:
		given, ok := answer.(SingleAnswer)
		return ok && given == key
	case MultiAnswer:
		raw, ok := answer.(MultiAnswer)
		if !ok {
			return false
		}
		given, key := NewMultiAnswer(raw...), NewMultiAnswer(key...)
		if len(given) != len(key) {
			return false
		}
		for _, v := range given {
			if !key.Contains(v) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// GradeAnswers scores answers against quiz. It does not modify either argument.
func GradeAnswers(quiz *Quiz, answers AnswerMap) Grade {
	var g Grade
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		g.TotalPoints += q.Points
		if IsCorrect(q, answers[q.ID]) {
			g.Score += q.Points
		}
	}
	// score/total*100 >= passing, compared without dividing
	g.Passed = g.TotalPoints > 0 && g.Score*100 >= quiz.PassingScore*g.TotalPoints
	return g
}

// QuestionReview is one row of the result view.
type QuestionReview struct {
	QuestionID    string
	Text          string
	Kind          QuestionKind
	UserAnswer    Answer // nil when unanswered
	CorrectAnswer Answer
	Correct       bool
	Explanation   string
	Points        float64
	Awarded       float64
}

// Answered reports whether the user recorded a non-empty answer.
func (r QuestionReview) Answered() bool {
	return r.UserAnswer != nil && !r.UserAnswer.IsEmpty()
}

// ReviewAnswers builds the per-question review in quiz order.
func ReviewAnswers(quiz *Quiz, answers AnswerMap) []QuestionReview {
	reviews := make([]QuestionReview, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		given := answers[q.ID]
		if given != nil && given.IsEmpty() {
			given = nil
		}
		correct := IsCorrect(q, given)
		r := QuestionReview{
			QuestionID:    q.ID,
			Text:          q.Text,
			Kind:          q.Kind,
			UserAnswer:    given,
			CorrectAnswer: q.Correct,
			Correct:       correct,
			Explanation:   q.Explanation,
			Points:        q.Points,
		}
		if correct {
			r.Awarded = q.Points
		}
		reviews = append(reviews, r)
	}
	return reviews
}

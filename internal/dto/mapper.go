package dto

import (
	"encoding/json"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/engine"
)

// AnswerJSON encodes an answer for a response body; nil becomes JSON null.
func AnswerJSON(a domain.Answer) json.RawMessage {
	data, err := domain.MarshalAnswer(a)
	if err != nil {
		return json.RawMessage("null")
	}
	return data
}

func ToQuizSummary(q *domain.Quiz) QuizSummaryResponse {
	return QuizSummaryResponse{
		ID:               q.ID,
		ModuleID:         q.ModuleID,
		Title:            q.Title,
		Description:      q.Description,
		QuestionCount:    len(q.Questions),
		TotalPoints:      q.TotalPoints(),
		PassingScore:     q.PassingScore,
		TimeLimitMinutes: q.TimeLimitMinutes,
	}
}

// ToSessionResponse maps an engine snapshot. Quiz metadata is omitted when
// the module has no quiz.
func ToSessionResponse(sessionID string, s engine.Snapshot) SessionResponse {
	resp := SessionResponse{
		SessionID:        sessionID,
		Available:        s.Available,
		ModuleID:         s.ModuleID,
		State:            s.State.String(),
		AttemptID:        s.AttemptID,
		CurrentIndex:     s.CurrentIndex,
		AnsweredCount:    s.AnsweredCount,
		Progress:         s.Progress,
		SecondsRemaining: s.SecondsRemaining,
		Clock:            s.Clock,
	}
	if !s.Available {
		return resp
	}
	resp.Quiz = &QuizSummaryResponse{
		ID:               s.QuizID,
		ModuleID:         s.ModuleID,
		Title:            s.Title,
		Description:      s.Description,
		QuestionCount:    s.QuestionCount,
		TotalPoints:      s.TotalPoints,
		PassingScore:     s.PassingScore,
		TimeLimitMinutes: s.TimeLimitMinutes,
	}
	if s.Current != nil {
		resp.CurrentQuestion = &QuestionResponse{
			ID:      s.Current.ID,
			Text:    s.Current.Text,
			Type:    string(s.Current.Kind),
			Options: s.Current.Options,
			Points:  s.Current.Points,
		}
		if s.CurrentAnswer != nil {
			resp.CurrentAnswer = AnswerJSON(s.CurrentAnswer)
		}
	}
	return resp
}

func ToAttemptResult(r *domain.Result) *AttemptResultResponse {
	resp := &AttemptResultResponse{
		AttemptID:   r.AttemptID,
		QuizID:      r.QuizID,
		QuizTitle:   r.QuizTitle,
		Score:       r.Score,
		TotalPoints: r.TotalPoints,
		Percentage:  r.Percentage,
		Passed:      r.Passed,
		CompletedAt: r.CompletedAt,
		Completion:  string(r.Completion),
		Questions:   make([]QuestionReviewResponse, 0, len(r.Questions)),
	}
	for _, q := range r.Questions {
		resp.Questions = append(resp.Questions, QuestionReviewResponse{
			QuestionID:           q.QuestionID,
			Text:                 q.Text,
			Type:                 string(q.Kind),
			UserAnswer:           AnswerJSON(q.UserAnswer),
			UserAnswerDisplay:    domain.DisplayAnswer(q.UserAnswer),
			CorrectAnswer:        AnswerJSON(q.CorrectAnswer),
			CorrectAnswerDisplay: domain.DisplayAnswer(q.CorrectAnswer),
			IsCorrect:            q.Correct,
			Explanation:          q.Explanation,
			Points:               q.Points,
			Awarded:              q.Awarded,
		})
	}
	return resp
}

func ToAttemptItem(rec domain.AttemptRecord) UserQuizAttemptItem {
	return UserQuizAttemptItem{
		AttemptID:   rec.ID,
		QuizID:      rec.QuizID,
		Score:       rec.Score,
		TotalPoints: rec.TotalPoints,
		Percentage:  rec.Grade().RoundedPercentage(),
		Passed:      rec.Passed,
		Completion:  string(rec.Completion),
		CompletedAt: rec.CompletedAt,
	}
}

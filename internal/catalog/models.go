package catalog

import (
	"fmt"

	"lms-quiz/internal/domain"
)

// Document is the root of a quiz catalog YAML file.
type Document struct {
	Quizzes []QuizEntry `yaml:"quizzes"`
}

// QuizEntry is one quiz in the YAML file.
type QuizEntry struct {
	ID               string          `yaml:"id"`
	ModuleID         string          `yaml:"module_id"`
	Title            string          `yaml:"title"`
	Description      string          `yaml:"description"`
	TimeLimitMinutes int             `yaml:"time_limit_minutes"`
	PassingScore     float64         `yaml:"passing_score"`
	Questions        []QuestionEntry `yaml:"questions"`
}

// QuestionEntry is one question. CorrectAnswer is a string or a list of strings.
type QuestionEntry struct {
	ID            string      `yaml:"id"`
	Text          string      `yaml:"text"`
	Type          string      `yaml:"type"`
	Options       []string    `yaml:"options"`
	CorrectAnswer interface{} `yaml:"correct_answer"`
	Explanation   string      `yaml:"explanation"`
	Points        float64     `yaml:"points"`
}

// ToDomain converts the entry. Structural checks are left to Quiz.Validate.
func (e QuizEntry) ToDomain() (*domain.Quiz, error) {
	quiz := &domain.Quiz{
		ID:               e.ID,
		ModuleID:         e.ModuleID,
		Title:            e.Title,
		Description:      e.Description,
		TimeLimitMinutes: e.TimeLimitMinutes,
		PassingScore:     e.PassingScore,
		Questions:        make([]domain.Question, 0, len(e.Questions)),
	}
	for _, qe := range e.Questions {
		correct, err := domain.AnswerFromValue(qe.CorrectAnswer)
		if err != nil {
			return nil, fmt.Errorf("quiz %s: question %s: %w", e.ID, qe.ID, err)
		}
		quiz.Questions = append(quiz.Questions, domain.Question{
			ID:          qe.ID,
			Text:        qe.Text,
			Kind:        domain.QuestionKind(qe.Type),
			Options:     qe.Options,
			Correct:     correct,
			Explanation: qe.Explanation,
			Points:      qe.Points,
		})
	}
	return quiz, nil
}

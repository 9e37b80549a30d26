package domain

import (
	"encoding/json"
	"fmt"
)

// QuestionKind is the way a question is answered.
type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "multiple-choice"
	KindTrueFalse      QuestionKind = "true-false"
	KindShortAnswer    QuestionKind = "short-answer"
)

// DefaultTrueFalseOptions are used when a true/false question declares no options.
var DefaultTrueFalseOptions = []string{"True", "False"}

// IsChoice reports whether answers are picked from the option list.
func (k QuestionKind) IsChoice() bool {
	return k == KindMultipleChoice || k == KindTrueFalse
}

// Valid reports whether k is a known kind.
func (k QuestionKind) Valid() bool {
	switch k {
	case KindMultipleChoice, KindTrueFalse, KindShortAnswer:
		return true
	}
	return false
}

// Question is a single quiz item with its answer key.
type Question struct {
	ID          string
	Text        string
	Kind        QuestionKind
	Options     []string
	Correct     Answer
	Explanation string
	Points      float64
}

// Validate checks the question's invariants.
func (q *Question) Validate() error {
	if q.ID == "" {
		return NewValidationError("question id is required")
	}
	if q.Text == "" {
		return NewValidationError(fmt.Sprintf("question %s: text is required", q.ID))
	}
	if !q.Kind.Valid() {
		return NewValidationError(fmt.Sprintf("question %s: unknown kind %q", q.ID, q.Kind))
	}
	if q.Points <= 0 {
		return NewValidationError(fmt.Sprintf("question %s: points must be greater than 0", q.ID))
	}
	if q.Correct == nil || q.Correct.IsEmpty() {
		return NewValidationError(fmt.Sprintf("question %s: correct answer is required", q.ID))
	}

	if !q.Kind.IsChoice() {
		if _, ok := q.Correct.(SingleAnswer); !ok {
			return NewValidationError(fmt.Sprintf("question %s: short-answer questions take a single correct answer", q.ID))
		}
		return nil
	}

	if len(q.Options) == 0 {
		return NewValidationError(fmt.Sprintf("question %s: options are required for %s questions", q.ID, q.Kind))
	}
	switch key := q.Correct.(type) {
	case SingleAnswer:
		if !containsString(q.Options, string(key)) {
			return NewValidationError(fmt.Sprintf("question %s: correct answer %q is not one of the options", q.ID, string(key)))
		}
	case MultiAnswer:
		for _, v := range key {
			if !containsString(q.Options, v) {
				return NewValidationError(fmt.Sprintf("question %s: correct answer %q is not one of the options", q.ID, v))
			}
		}
	}
	return nil
}

// Quiz is an ordered set of questions owned by a course module.
type Quiz struct {
	ID               string     `json:"id"`
	ModuleID         string     `json:"module_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Questions        []Question `json:"questions"`
	TimeLimitMinutes int        `json:"time_limit_minutes"` // 0 means untimed
	PassingScore     float64    `json:"passing_score"`      // percentage, 0-100
}

// HasTimeLimit reports whether attempts are timed.
func (q *Quiz) HasTimeLimit() bool {
	return q.TimeLimitMinutes > 0
}

// TimeLimitSeconds is the countdown length for a timed attempt.
func (q *Quiz) TimeLimitSeconds() int {
	return q.TimeLimitMinutes * 60
}

// TotalPoints is the sum of all question weights.
func (q *Quiz) TotalPoints() float64 {
	var total float64
	for i := range q.Questions {
		total += q.Questions[i].Points
	}
	return total
}

// Question looks a question up by id.
func (q *Quiz) Question(id string) (*Question, bool) {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i], true
		}
	}
	return nil, false
}

// ApplyDefaults fills in true/false options left empty by the catalog.
func (q *Quiz) ApplyDefaults() {
	for i := range q.Questions {
		if q.Questions[i].Kind == KindTrueFalse && len(q.Questions[i].Options) == 0 {
			q.Questions[i].Options = append([]string(nil), DefaultTrueFalseOptions...)
		}
	}
}

// Validate checks the quiz and every question. The returned error names the
// quiz and the first offending question.
func (q *Quiz) Validate() error {
	if q.ID == "" {
		return NewValidationError("quiz id is required")
	}
	if q.ModuleID == "" {
		return NewValidationError(fmt.Sprintf("quiz %s: module id is required", q.ID))
	}
	if q.Title == "" {
		return NewValidationError(fmt.Sprintf("quiz %s: title is required", q.ID))
	}
	if q.PassingScore < 0 || q.PassingScore > 100 {
		return NewValidationError(fmt.Sprintf("quiz %s: passing score must be between 0 and 100", q.ID))
	}
	if q.TimeLimitMinutes < 0 {
		return NewValidationError(fmt.Sprintf("quiz %s: time limit cannot be negative", q.ID))
	}

	seen := make(map[string]struct{}, len(q.Questions))
	for i := range q.Questions {
		question := &q.Questions[i]
		if _, dup := seen[question.ID]; dup {
			return NewValidationError(fmt.Sprintf("quiz %s: duplicate question id %s", q.ID, question.ID))
		}
		seen[question.ID] = struct{}{}
		if err := question.Validate(); err != nil {
			return NewValidationError(fmt.Sprintf("quiz %s: %s", q.ID, err.Error()))
		}
	}
	return nil
}

// FindQuizForModule returns the first quiz in catalog owned by moduleID.
func FindQuizForModule(catalog []*Quiz, moduleID string) (*Quiz, bool) {
	if moduleID == "" {
		return nil, false
	}
	for _, q := range catalog {
		if q != nil && q.ModuleID == moduleID {
			return q, true
		}
	}
	return nil, false
}

type questionJSON struct {
	ID          string          `json:"id"`
	Text        string          `json:"text"`
	Kind        QuestionKind    `json:"type"`
	Options     []string        `json:"options,omitempty"`
	Correct     json.RawMessage `json:"correct_answer"`
	Explanation string          `json:"explanation"`
	Points      float64         `json:"points"`
}

// MarshalJSON implements json.Marshaler
func (q Question) MarshalJSON() ([]byte, error) {
	correct, err := MarshalAnswer(q.Correct)
	if err != nil {
		return nil, err
	}
	return json.Marshal(questionJSON{
		ID:          q.ID,
		Text:        q.Text,
		Kind:        q.Kind,
		Options:     q.Options,
		Correct:     correct,
		Explanation: q.Explanation,
		Points:      q.Points,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (q *Question) UnmarshalJSON(data []byte) error {
	var raw questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	correct, err := UnmarshalAnswer(raw.Correct)
	if err != nil {
		return fmt.Errorf("question %s: %w", raw.ID, err)
	}
	*q = Question{
		ID:          raw.ID,
		Text:        raw.Text,
		Kind:        raw.Kind,
		Options:     raw.Options,
		Correct:     correct,
		Explanation: raw.Explanation,
		Points:      raw.Points,
	}
	return nil
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

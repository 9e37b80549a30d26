package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// NoAnswerMarker is shown in result views for questions left unanswered.
const NoAnswerMarker = "No answer provided"

// Answer is either a SingleAnswer or a MultiAnswer. It is used for both the
// canonical answer key of a question and the answer a user recorded.
type Answer interface {
	// IsEmpty reports whether the answer counts as "not answered".
	IsEmpty() bool
	// Display renders the answer for result views.
	Display() string
	isAnswer()
}

// SingleAnswer is one option, or a free-text value.
type SingleAnswer string

func (SingleAnswer) isAnswer() {}

// IsEmpty implements Answer
func (a SingleAnswer) IsEmpty() bool { return a == "" }

// Display implements Answer
func (a SingleAnswer) Display() string { return string(a) }

// MultiAnswer is a set of options. Use NewMultiAnswer to build one so that
// duplicates are removed.
type MultiAnswer []string

func (MultiAnswer) isAnswer() {}

// NewMultiAnswer builds a set from values, keeping first-seen order.
func NewMultiAnswer(values ...string) MultiAnswer {
	seen := make(map[string]struct{}, len(values))
	set := make(MultiAnswer, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		set = append(set, v)
	}
	return set
}

// IsEmpty implements Answer
func (a MultiAnswer) IsEmpty() bool { return len(a) == 0 }

// Display implements Answer
func (a MultiAnswer) Display() string { return strings.Join(a, ", ") }

// Contains reports whether v is a member of the set.
func (a MultiAnswer) Contains(v string) bool {
	for _, member := range a {
		if member == v {
			return true
		}
	}
	return false
}

// DisplayAnswer renders a possibly missing answer, using NoAnswerMarker when
// nothing was recorded.
func DisplayAnswer(a Answer) string {
	if a == nil || a.IsEmpty() {
		return NoAnswerMarker
	}
	return a.Display()
}

// MarshalAnswer encodes an answer as a JSON string or array of strings.
func MarshalAnswer(a Answer) ([]byte, error) {
	switch v := a.(type) {
	case nil:
		return []byte("null"), nil
	case SingleAnswer:
		return json.Marshal(string(v))
	case MultiAnswer:
		if v == nil {
			v = MultiAnswer{}
		}
		return json.Marshal([]string(v))
	default:
		return nil, fmt.Errorf("unsupported answer type %T", a)
	}
}

// UnmarshalAnswer decodes a JSON string into a SingleAnswer and a JSON array
// into a MultiAnswer. JSON null decodes to a nil Answer.
func UnmarshalAnswer(data []byte) (Answer, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return SingleAnswer(s), nil
	case '[':
		var values []string
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return nil, err
		}
		return NewMultiAnswer(values...), nil
	default:
		return nil, fmt.Errorf("answer must be a string or an array of strings")
	}
}

// AnswerFromValue converts a decoded YAML/JSON value (string or list) into an Answer.
func AnswerFromValue(v interface{}) (Answer, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return SingleAnswer(t), nil
	case []string:
		return NewMultiAnswer(t...), nil
	case []interface{}:
		values := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("answer list items must be strings, got %T", item)
			}
			values = append(values, s)
		}
		return NewMultiAnswer(values...), nil
	default:
		return nil, fmt.Errorf("answer must be a string or a list of strings, got %T", v)
	}
}

// AnswerMap is a question id → answer mapping with a JSON form of
// {"q1": "B", "q2": ["A", "C"]}.
type AnswerMap map[string]Answer

// Clone returns a shallow copy; MultiAnswer slices are copied too.
func (m AnswerMap) Clone() AnswerMap {
	out := make(AnswerMap, len(m))
	for k, v := range m {
		if multi, ok := v.(MultiAnswer); ok {
			v = append(MultiAnswer(nil), multi...)
		}
		out[k] = v
	}
	return out
}

// MarshalJSON implements json.Marshaler
func (m AnswerMap) MarshalJSON() ([]byte, error) {
	raw := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		b, err := MarshalAnswer(v)
		if err != nil {
			return nil, fmt.Errorf("answer for %s: %w", k, err)
		}
		raw[k] = b
	}
	return json.Marshal(raw)
}

// UnmarshalJSON implements json.Unmarshaler
func (m *AnswerMap) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(AnswerMap, len(raw))
	for k, v := range raw {
		a, err := UnmarshalAnswer(v)
		if err != nil {
			return fmt.Errorf("answer for %s: %w", k, err)
		}
		if a != nil {
			out[k] = a
		}
	}
	*m = out
	return nil
}

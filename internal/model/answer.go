package model

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/rotisserie/eris"
)

// AnswerKind identifies the shape of a questionnaire answer.
type AnswerKind int

const (
	// AnswerText holds free text, a single option tag, or a scenario choice.
	AnswerText AnswerKind = iota + 1
	// AnswerNumber holds a slider value.
	AnswerNumber
	// AnswerChoices holds a set of option tags.
	AnswerChoices
)

func (k AnswerKind) String() string {
	switch k {
	case AnswerText:
		return "text"
	case AnswerNumber:
		return "number"
	case AnswerChoices:
		return "choices"
	default:
		return "unknown"
	}
}

// Answer is a single questionnaire answer. Exactly one of Text, Number or
// Choices is meaningful, selected by Kind.
type Answer struct {
	Kind    AnswerKind
	Text    string
	Number  float64
	Choices []string
}

// TextAnswer builds a text answer.
func TextAnswer(s string) Answer { return Answer{Kind: AnswerText, Text: s} }

// NumberAnswer builds a numeric answer.
func NumberAnswer(v float64) Answer { return Answer{Kind: AnswerNumber, Number: v} }

// ChoicesAnswer builds a multi-select answer.
func ChoicesAnswer(tags ...string) Answer {
	return Answer{Kind: AnswerChoices, Choices: slices.Clone(tags)}
}

// MarshalJSON encodes the answer as a bare JSON string, number or array.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerText:
		return json.Marshal(a.Text)
	case AnswerNumber:
		return json.Marshal(a.Number)
	case AnswerChoices:
		if a.Choices == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Choices)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a bare JSON string, number or string array.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Answer{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return eris.Wrap(err, "answer: decode text")
		}
		*a = TextAnswer(s)
	case '[':
		var tags []string
		if err := json.Unmarshal(data, &tags); err != nil {
			return eris.Wrap(err, "answer: decode choices")
		}
		if tags == nil {
			tags = []string{}
		}
		*a = Answer{Kind: AnswerChoices, Choices: tags}
	default:
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return eris.Wrapf(err, "answer: unsupported value %s", string(data))
		}
		*a = NumberAnswer(v)
	}
	return nil
}

// IsZero reports whether the answer carries no value.
func (a Answer) IsZero() bool { return a.Kind == 0 }

// ResponseMap maps question ids to answers.
type ResponseMap map[string]Answer

// Has reports whether id has a non-empty answer.
func (r ResponseMap) Has(id string) bool {
	a, ok := r[id]
	return ok && !a.IsZero()
}

// Text returns the text answer for id.
func (r ResponseMap) Text(id string) (string, bool) {
	a, ok := r[id]
	if !ok || a.Kind != AnswerText {
		return "", false
	}
	return a.Text, true
}

// Number returns the numeric answer for id.
func (r ResponseMap) Number(id string) (float64, bool) {
	a, ok := r[id]
	if !ok || a.Kind != AnswerNumber {
		return 0, false
	}
	return a.Number, true
}

// Choices returns the multi-select answer for id.
func (r ResponseMap) Choices(id string) ([]string, bool) {
	a, ok := r[id]
	if !ok || a.Kind != AnswerChoices {
		return nil, false
	}
	return a.Choices, true
}

// Set stores an answer, overwriting any previous value.
func (r ResponseMap) Set(id string, a Answer) {
	if a.Kind == AnswerChoices {
		a.Choices = slices.Clone(a.Choices)
	}
	r[id] = a
}

// Clone returns a deep copy.
func (r ResponseMap) Clone() ResponseMap {
	out := make(ResponseMap, len(r))
	for id, a := range r {
		out.Set(id, a)
	}
	return out
}

// Package questionnaire holds the state of one guided questionnaire run.
package questionnaire

import (
	"math"
	"slices"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/investor-profile/internal/catalog"
	"github.com/sells-group/investor-profile/internal/model"
	"github.com/sells-group/investor-profile/internal/scorer"
)

// Sentinel errors returned (wrapped) by Answer and SubmitPage.
var (
	ErrUnknownQuestion = eris.New("questionnaire: unknown question")
	ErrInvalidAnswer   = eris.New("questionnaire: invalid answer")
)

// Page is one step of the wizard: every question of a section, in catalogue order.
type Page struct {
	Section   model.Section
	Questions []model.Question
}

// Progress counts answered questions.
type Progress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// Percent returns the answered share as an integer percentage.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Answered * 100 / p.Total
}

// Session accumulates validated answers. Answers are overwritten on
// resubmission and never removed. A Session is not safe for concurrent use.
type Session struct {
	responses model.ResponseMap
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{responses: model.ResponseMap{}}
}

// Resume returns a session seeded with previously validated responses.
// Entries that fail validation are skipped.
func Resume(responses model.ResponseMap) *Session {
	s := NewSession()
	for id, a := range responses {
		_ = s.Answer(id, a)
	}
	return s
}

// Pages returns one page per section that has questions.
func (s *Session) Pages() []Page {
	all := catalog.Questions()
	var pages []Page
	for _, sec := range model.AllSections() {
		qs := model.FilterBySection(all, sec)
		if len(qs) == 0 {
			continue
		}
		pages = append(pages, Page{Section: sec, Questions: qs})
	}
	return pages
}

// Answer validates a against question id and records it.
func (s *Session) Answer(id string, a model.Answer) error {
	q, ok := catalog.Lookup(id)
	if !ok {
		return eris.Wrapf(ErrUnknownQuestion, "id %q", id)
	}
	normalized, err := validate(q, a)
	if err != nil {
		return err
	}
	s.responses.Set(id, normalized)
	return nil
}

// SubmitPage validates every answer for section and records them together.
// If any answer is rejected nothing is recorded.
func (s *Session) SubmitPage(section model.Section, answers model.ResponseMap) error {
	staged := make(model.ResponseMap, len(answers))

	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		q, ok := catalog.Lookup(id)
		if !ok {
			return eris.Wrapf(ErrUnknownQuestion, "id %q", id)
		}
		if q.QuestionSection() != section {
			return eris.Wrapf(ErrUnknownQuestion, "question %q is not on page %q", id, section)
		}
		normalized, err := validate(q, answers[id])
		if err != nil {
			return err
		}
		staged[id] = normalized
	}

	for id, a := range staged {
		s.responses.Set(id, a)
	}
	return nil
}

// Progress reports how many catalogue questions have an answer.
func (s *Session) Progress() Progress {
	all := catalog.Questions()
	p := Progress{Total: len(all)}
	for _, q := range all {
		if s.responses.Has(q.QuestionID()) {
			p.Answered++
		}
	}
	return p
}

// Responses returns a deep copy of the recorded answers.
func (s *Session) Responses() model.ResponseMap {
	return s.responses.Clone()
}

func validate(q model.Question, a model.Answer) (model.Answer, error) {
	id := q.QuestionID()
	switch q := q.(type) {
	case model.TextQuestion:
		if a.Kind != model.AnswerText {
			return model.Answer{}, invalid(id, "expected text, got %s", a.Kind)
		}
		return a, nil

	case model.ChoiceQuestion:
		if a.Kind != model.AnswerText {
			return model.Answer{}, invalid(id, "expected a single option, got %s", a.Kind)
		}
		if !model.HasOption(q.Options, a.Text) {
			return model.Answer{}, invalid(id, "unknown option %q", a.Text)
		}
		return a, nil

	case model.SliderQuestion:
		return validateSlider(q, a)

	case model.MultiChoiceQuestion:
		if a.Kind != model.AnswerChoices {
			return model.Answer{}, invalid(id, "expected a list of options, got %s", a.Kind)
		}
		var tags []string
		for _, tag := range a.Choices {
			if !model.HasOption(q.Options, tag) {
				return model.Answer{}, invalid(id, "unknown option %q", tag)
			}
			if !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
		}
		return model.ChoicesAnswer(tags...), nil

	case model.ScenarioQuestion:
		if a.Kind != model.AnswerText {
			return model.Answer{}, invalid(id, "expected A or B, got %s", a.Kind)
		}
		choice, ok := q.Choice(strings.TrimSpace(a.Text))
		if !ok {
			return model.Answer{}, invalid(id, "expected A or B, got %q", a.Text)
		}
		return model.TextAnswer(choice.Tag), nil
	}
	return model.Answer{}, invalid(id, "unsupported question kind %s", model.Kind(q))
}

func validateSlider(q model.SliderQuestion, a model.Answer) (model.Answer, error) {
	var v float64
	switch a.Kind {
	case model.AnswerNumber:
		v = a.Number
	case model.AnswerText:
		parsed, ok := scorer.ParseAmount(a.Text)
		if !ok {
			return model.Answer{}, invalid(q.ID, "%q is not a number", a.Text)
		}
		v = parsed
	default:
		return model.Answer{}, invalid(q.ID, "expected a number, got %s", a.Kind)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return model.Answer{}, invalid(q.ID, "value must be finite")
	}
	if v < q.Min || v > q.Max {
		return model.Answer{}, invalid(q.ID, "%g is outside [%g, %g]", v, q.Min, q.Max)
	}
	return model.NumberAnswer(v), nil
}

func invalid(id, format string, args ...any) error {
	return eris.Wrapf(ErrInvalidAnswer, "%s: "+format, append([]any{id}, args...)...)
}

// ValidateAll checks every answer in responses and returns the normalised
// map. Ids are visited in sorted order and the first rejection is returned.
func ValidateAll(responses model.ResponseMap) (model.ResponseMap, error) {
	ids := make([]string, 0, len(responses))
	for id := range responses {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	s := NewSession()
	for _, id := range ids {
		if err := s.Answer(id, responses[id]); err != nil {
			return nil, err
		}
	}
	return s.Responses(), nil
}

package model

// Section groups questions onto one wizard page.
type Section string

// Questionnaire sections in page order.
const (
	SectionGoals       Section = "goals"
	SectionSituation   Section = "situation"
	SectionRisk        Section = "risk"
	SectionExperience  Section = "experience"
	SectionPersonality Section = "personality"
	SectionInterests   Section = "interests"
)

// AllSections returns the sections in page order.
func AllSections() []Section {
	return []Section{
		SectionGoals,
		SectionSituation,
		SectionRisk,
		SectionExperience,
		SectionPersonality,
		SectionInterests,
	}
}

// Question is a catalogue entry. The set of implementations is closed:
// TextQuestion, ChoiceQuestion, SliderQuestion, MultiChoiceQuestion and
// ScenarioQuestion.
type Question interface {
	QuestionID() string
	QuestionSection() Section
	Prompt() string
	isQuestion()
}

// Base carries the fields shared by every question kind.
type Base struct {
	ID      string  `json:"id" yaml:"id"`
	Section Section `json:"section" yaml:"section"`
	Text    string  `json:"text" yaml:"text"`
}

// QuestionID returns the question id.
func (b Base) QuestionID() string { return b.ID }

// QuestionSection returns the section the question belongs to.
func (b Base) QuestionSection() Section { return b.Section }

// Prompt returns the question text.
func (b Base) Prompt() string { return b.Text }

// Option is one selectable answer of a choice question.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
	// Score is the additive risk-score contribution, when the option has one.
	Score *int `json:"score,omitempty" yaml:"score,omitempty"`
}

// TextQuestion accepts free text.
type TextQuestion struct {
	Base `yaml:",inline"`

	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// ChoiceQuestion accepts exactly one option.
type ChoiceQuestion struct {
	Base `yaml:",inline"`

	Options []Option `json:"options" yaml:"options"`
}

// SliderQuestion accepts a number in [Min, Max]. When Stops is set the
// slider snaps to those values instead of Step increments.
type SliderQuestion struct {
	Base `yaml:",inline"`

	Min     float64   `json:"min" yaml:"min"`
	Max     float64   `json:"max" yaml:"max"`
	Step    float64   `json:"step" yaml:"step"`
	Default float64   `json:"default" yaml:"default"`
	Unit    string    `json:"unit" yaml:"unit"`
	Stops   []float64 `json:"stops,omitempty" yaml:"stops,omitempty"`
}

// MultiChoiceQuestion accepts any subset of its options.
type MultiChoiceQuestion struct {
	Base `yaml:",inline"`

	Options []Option `json:"options" yaml:"options"`
}

// Dimension names one investor personality axis.
type Dimension string

// Investor personality axes.
const (
	DimensionRisk     Dimension = "risk"
	DimensionDecision Dimension = "decision"
	DimensionTime     Dimension = "time"
	DimensionFocus    Dimension = "focus"
)

// ScenarioChoice is one side of a forced-choice vignette.
type ScenarioChoice struct {
	Tag    string            `json:"tag" yaml:"tag"`
	Label  string            `json:"label" yaml:"label"`
	Deltas map[Dimension]int `json:"deltas" yaml:"deltas"`
}

// ScenarioQuestion is a binary A/B vignette feeding the personality axes.
type ScenarioQuestion struct {
	Base `yaml:",inline"`

	A ScenarioChoice `json:"a" yaml:"a"`
	B ScenarioChoice `json:"b" yaml:"b"`
}

// Choice returns the scenario side matching tag ("A" or "B").
func (q ScenarioQuestion) Choice(tag string) (ScenarioChoice, bool) {
	switch tag {
	case "A", "a":
		return q.A, true
	case "B", "b":
		return q.B, true
	default:
		return ScenarioChoice{}, false
	}
}

func (TextQuestion) isQuestion()        {}
func (ChoiceQuestion) isQuestion()      {}
func (SliderQuestion) isQuestion()      {}
func (MultiChoiceQuestion) isQuestion() {}
func (ScenarioQuestion) isQuestion()    {}

// Kind returns a short tag for the question's type.
func Kind(q Question) string {
	switch q.(type) {
	case TextQuestion:
		return "text"
	case ChoiceQuestion:
		return "choice"
	case SliderQuestion:
		return "slider"
	case MultiChoiceQuestion:
		return "multi"
	case ScenarioQuestion:
		return "scenario"
	default:
		return "unknown"
	}
}

// HasOption reports whether value is one of options.
func HasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// FilterBySection returns the questions in section, preserving order.
func FilterBySection(questions []Question, section Section) []Question {
	var result []Question
	for _, q := range questions {
		if q.QuestionSection() == section {
			result = append(result, q)
		}
	}
	return result
}

// QuestionView is the flat, serializable rendering of a Question used by
// the API and the questions command.
type QuestionView struct {
	ID      string          `json:"id" yaml:"id"`
	Section Section         `json:"section" yaml:"section"`
	Kind    string          `json:"kind" yaml:"kind"`
	Text    string          `json:"text" yaml:"text"`
	Options []Option        `json:"options,omitempty" yaml:"options,omitempty"`
	Slider  *SliderQuestion `json:"slider,omitempty" yaml:"slider,omitempty"`
	A       *ScenarioChoice `json:"a,omitempty" yaml:"a,omitempty"`
	B       *ScenarioChoice `json:"b,omitempty" yaml:"b,omitempty"`
}

// View flattens q into a QuestionView.
func View(q Question) QuestionView {
	v := QuestionView{
		ID:      q.QuestionID(),
		Section: q.QuestionSection(),
		Kind:    Kind(q),
		Text:    q.Prompt(),
	}
	switch q := q.(type) {
	case ChoiceQuestion:
		v.Options = q.Options
	case MultiChoiceQuestion:
		v.Options = q.Options
	case SliderQuestion:
		s := q
		v.Slider = &s
	case ScenarioQuestion:
		a, b := q.A, q.B
		v.A, v.B = &a, &b
	case TextQuestion:
	}
	return v
}

// Package quiz holds the read-only question-set model consumed by the lobby
// engine. Loading and schema validation beyond what is enforced here is an
// external concern (question-file loader, CLI).
package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxNicknameLength is the longest nickname a player may register.
	MaxNicknameLength = 20
	// MaxQuestionLength is the longest a question's prompt text may be.
	MaxQuestionLength = 200
	// MaxChoiceLength is the longest a single choice's text may be.
	MaxChoiceLength = 200
	// MaxCodeLength is the longest a code block's source may be.
	MaxCodeLength = 400
	// MinChoices is the fewest choices a question may have.
	MinChoices = 1
	// MaxChoices is the most choices a question may have.
	MaxChoices = 4
	// DefaultQuizName is used when a QuestionSet does not name itself.
	DefaultQuizName = "Quiz"
	// DefaultPort is the default bind port for the acceptor.
	DefaultPort = 8080
)

// Color is one of the seven named colors a player may be assigned.
type Color string

// The fixed palette of player colors, matching the original terminal UI's
// seven-color scheme.
const (
	ColorRed     Color = "red"
	ColorBlue    Color = "blue"
	ColorGreen   Color = "green"
	ColorYellow  Color = "yellow"
	ColorMagenta Color = "magenta"
	ColorCyan    Color = "cyan"
	ColorGray    Color = "gray"
)

// Colors lists every valid Color, in the fixed order new players are offered them.
var Colors = []Color{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorMagenta, ColorCyan, ColorGray}

// Valid reports whether c is one of the seven named colors.
func (c Color) Valid() bool {
	for _, v := range Colors {
		if v == c {
			return true
		}
	}
	return false
}

// CodeBlock is an optional syntax-highlighted snippet attached to a question.
type CodeBlock struct {
	Language string `json:"language" yaml:"language"`
	Code     string `json:"code" yaml:"code"`
}

// Choice is one answer option. Id is assigned at load time so that clients
// may shuffle choices without losing the server's ability to identify them.
type Choice struct {
	ID        uuid.UUID `json:"id" yaml:"-"`
	Text      string    `json:"text" yaml:"text"`
	IsCorrect bool       `json:"is_correct" yaml:"is_correct"`
}

// ChoiceCensored is a Choice with is_correct stripped, sent while a question
// is active so students cannot inspect the answer key from the wire payload.
type ChoiceCensored struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

// Question is one multiple-choice prompt, with a stable ordered choice list.
type Question struct {
	Text         string     `json:"text" yaml:"text"`
	CodeBlock    *CodeBlock `json:"code_block,omitempty" yaml:"code_block,omitempty"`
	TimeSeconds  int        `json:"time_seconds" yaml:"time_seconds"`
	IsMultichoice bool      `json:"is_multichoice" yaml:"is_multichoice"`
	Choices      []Choice   `json:"choices" yaml:"choices"`
}

// QuestionCensored is a Question with is_correct stripped from every choice.
// This is what students receive while a question is active (NextQuestion).
type QuestionCensored struct {
	Text          string     `json:"text"`
	CodeBlock     *CodeBlock `json:"code_block,omitempty"`
	TimeSeconds   int        `json:"time_seconds"`
	IsMultichoice bool       `json:"is_multichoice"`
	Choices       []ChoiceCensored `json:"choices"`
}

// Censor strips is_correct from every choice.
func (q Question) Censor() QuestionCensored {
	choices := make([]ChoiceCensored, len(q.Choices))
	for i, c := range q.Choices {
		choices[i] = ChoiceCensored{ID: c.ID, Text: c.Text}
	}
	return QuestionCensored{
		Text:          q.Text,
		CodeBlock:     q.CodeBlock,
		TimeSeconds:   q.TimeSeconds,
		IsMultichoice: q.IsMultichoice,
		Choices:       choices,
	}
}

// CorrectChoiceIDs returns the set of choice ids marked is_correct.
func (q Question) CorrectChoiceIDs() map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]struct{}, len(q.Choices))
	for _, c := range q.Choices {
		if c.IsCorrect {
			out[c.ID] = struct{}{}
		}
	}
	return out
}

// ReadingTimeEstimate returns how long, in seconds, a student should be
// given to read the question before choices become selectable: max(1, (w*6)/20)
// seconds (a pace of 200 words per minute), where w is the whitespace-split word count of the
// question text plus the code block's source, if any.
func (q Question) ReadingTimeEstimate() int {
	words := len(strings.Fields(q.Text))
	if q.CodeBlock != nil {
		words += len(strings.Fields(q.CodeBlock.Code))
	}
	estimate := words * 6 / 20
	if estimate <= 0 {
		return 1
	}
	return estimate
}

// Validate checks the invariants a Question must hold: text/choice-text
// length limits, 1..4 choices, and at least one correct choice.
func (q Question) Validate() error {
	if len(q.Text) > MaxQuestionLength {
		return fmt.Errorf("question text must be at most %d chars", MaxQuestionLength)
	}
	if q.CodeBlock != nil && len(q.CodeBlock.Code) > MaxCodeLength {
		return fmt.Errorf("code block must be at most %d chars", MaxCodeLength)
	}
	if len(q.Choices) < MinChoices || len(q.Choices) > MaxChoices {
		return fmt.Errorf("question must have %d to %d choices, got %d", MinChoices, MaxChoices, len(q.Choices))
	}
	if q.TimeSeconds <= 0 {
		return errors.New("question time_seconds must be positive")
	}
	hasCorrect := false
	for _, c := range q.Choices {
		if len(c.Text) > MaxChoiceLength {
			return fmt.Errorf("choice text must be at most %d chars", MaxChoiceLength)
		}
		if c.IsCorrect {
			hasCorrect = true
		}
	}
	if !hasCorrect {
		return errors.New("question must have at least one correct choice")
	}
	return nil
}

// QuestionSet is the fixed, ordered list of questions for one quiz session,
// plus the randomization flags applied once at construction.
type QuestionSet struct {
	QuizName           string
	Questions          []Question
	RandomizeQuestions bool
	RandomizeAnswers   bool
}

// Len returns the number of questions in the set.
func (qs QuestionSet) Len() int {
	return len(qs.Questions)
}

// LastIndex returns the index of the final question.
func (qs QuestionSet) LastIndex() int {
	return len(qs.Questions) - 1
}

// At returns the question at index, and whether it exists.
func (qs QuestionSet) At(index int) (Question, bool) {
	if index < 0 || index >= len(qs.Questions) {
		return Question{}, false
	}
	return qs.Questions[index], true
}

// Validate checks every question in the set and that the set is non-empty.
func (qs QuestionSet) Validate() error {
	if len(qs.Questions) == 0 {
		return errors.New("question set must have at least one question")
	}
	for i, q := range qs.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

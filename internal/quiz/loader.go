package quiz

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// rawChoice and rawQuestion mirror the on-disk YAML schema before ids are
// assigned. Full schema validation is an external concern; this loader only
// does enough to produce a QuestionSet the engine can consume.
type rawChoice struct {
	Text      string `yaml:"text"`
	IsCorrect bool   `yaml:"is_correct"`
}

type rawQuestion struct {
	Text          string     `yaml:"text"`
	CodeBlock     *CodeBlock `yaml:"code_block"`
	TimeSeconds   int        `yaml:"time_seconds"`
	IsMultichoice bool       `yaml:"is_multichoice"`
	Choices       []rawChoice `yaml:"choices"`
}

type rawQuestionSet struct {
	QuizName           string        `yaml:"quiz_name"`
	RandomizeQuestions bool          `yaml:"randomize_questions"`
	RandomizeAnswers   bool          `yaml:"randomize_answers"`
	Questions          []rawQuestion `yaml:"questions"`
}

// LoadFromFile reads a YAML quiz definition, assigns a server-side Choice id
// to every answer option, and applies randomization exactly once: shuffling
// question order when RandomizeQuestions is set, and each question's choice
// order independently when RandomizeAnswers is set. The returned QuestionSet
// is safe to share; its order is immutable thereafter.
func LoadFromFile(path string) (QuestionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return QuestionSet{}, fmt.Errorf("reading quiz file %q: %w", path, err)
	}

	var raw rawQuestionSet
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return QuestionSet{}, fmt.Errorf("parsing quiz file %q: %w", path, err)
	}

	quizName := raw.QuizName
	if quizName == "" {
		quizName = DefaultQuizName
	}

	qs := QuestionSet{
		QuizName:           quizName,
		RandomizeQuestions: raw.RandomizeQuestions,
		RandomizeAnswers:   raw.RandomizeAnswers,
		Questions:          make([]Question, len(raw.Questions)),
	}

	for i, rq := range raw.Questions {
		choices := make([]Choice, len(rq.Choices))
		for j, rc := range rq.Choices {
			choices[j] = Choice{ID: uuid.New(), Text: rc.Text, IsCorrect: rc.IsCorrect}
		}
		qs.Questions[i] = Question{
			Text:          rq.Text,
			CodeBlock:     rq.CodeBlock,
			TimeSeconds:   rq.TimeSeconds,
			IsMultichoice: rq.IsMultichoice,
			Choices:       choices,
		}
	}

	if err := qs.Validate(); err != nil {
		return QuestionSet{}, fmt.Errorf("quiz file %q: %w", path, err)
	}

	applyRandomization(&qs, rand.New(rand.NewSource(rand.Int63())))

	return qs, nil
}

// New builds a QuestionSet directly from in-memory questions (for callers
// that already have a question list instead of a file), validating it and
// applying randomization deterministically from seed.
func New(quizName string, questions []Question, randomizeQuestions, randomizeAnswers bool, seed int64) (QuestionSet, error) {
	if quizName == "" {
		quizName = DefaultQuizName
	}
	qs := QuestionSet{
		QuizName:           quizName,
		Questions:          questions,
		RandomizeQuestions: randomizeQuestions,
		RandomizeAnswers:   randomizeAnswers,
	}
	if err := qs.Validate(); err != nil {
		return QuestionSet{}, err
	}
	applyRandomization(&qs, rand.New(rand.NewSource(seed)))
	return qs, nil
}

// applyRandomization shuffles question order and, independently, each
// question's own choice order, according to the set's flags. It is
// idempotent-free: call exactly once, at construction.
func applyRandomization(qs *QuestionSet, rng *rand.Rand) {
	if qs.RandomizeQuestions {
		rng.Shuffle(len(qs.Questions), func(i, j int) {
			qs.Questions[i], qs.Questions[j] = qs.Questions[j], qs.Questions[i]
		})
	}
	if qs.RandomizeAnswers {
		for qi := range qs.Questions {
			choices := qs.Questions[qi].Choices
			rng.Shuffle(len(choices), func(i, j int) {
				choices[i], choices[j] = choices[j], choices[i]
			})
		}
	}
}

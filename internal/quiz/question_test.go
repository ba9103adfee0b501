package quiz

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestion() Question {
	return Question{
		Text:        "What is the answer to life, the universe, and everything?",
		TimeSeconds: 10,
		Choices: []Choice{
			{ID: uuid.New(), Text: "42", IsCorrect: true},
			{ID: uuid.New(), Text: "43", IsCorrect: false},
		},
	}
}

func TestQuestion_Censor_StripsIsCorrect(t *testing.T) {
	q := sampleQuestion()

	censored := q.Censor()

	data, err := json.Marshal(censored)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "is_correct")
	assert.Len(t, censored.Choices, len(q.Choices))
}

func TestQuestion_CorrectChoiceIDs(t *testing.T) {
	q := sampleQuestion()

	ids := q.CorrectChoiceIDs()

	require.Len(t, ids, 1)
	_, ok := ids[q.Choices[0].ID]
	assert.True(t, ok)
}

func TestQuestion_ReadingTimeEstimate_MinimumOfOne(t *testing.T) {
	q := Question{Text: "Hi", TimeSeconds: 5, Choices: []Choice{{ID: uuid.New(), IsCorrect: true}}}

	assert.Equal(t, 1, q.ReadingTimeEstimate())
}

func TestQuestion_ReadingTimeEstimate_IncludesCodeBlock(t *testing.T) {
	withoutCode := Question{Text: "short", TimeSeconds: 5}
	withCode := withoutCode
	withCode.CodeBlock = &CodeBlock{Language: "go", Code: "func main() { fmt Println hello world again and again many times over"}

	assert.Greater(t, withCode.ReadingTimeEstimate(), withoutCode.ReadingTimeEstimate())
}

func TestQuestion_Validate_RequiresAtLeastOneCorrectChoice(t *testing.T) {
	q := Question{
		Text:        "no correct answer",
		TimeSeconds: 5,
		Choices: []Choice{
			{ID: uuid.New(), Text: "a", IsCorrect: false},
		},
	}

	err := q.Validate()

	assert.Error(t, err)
}

func TestQuestion_Validate_RejectsTooManyChoices(t *testing.T) {
	choices := make([]Choice, MaxChoices+1)
	for i := range choices {
		choices[i] = Choice{ID: uuid.New(), Text: "x", IsCorrect: i == 0}
	}
	q := Question{Text: "too many", TimeSeconds: 5, Choices: choices}

	err := q.Validate()

	assert.Error(t, err)
}

func TestQuestionSet_At_OutOfRange(t *testing.T) {
	qs := QuestionSet{Questions: []Question{sampleQuestion()}}

	_, ok := qs.At(1)

	assert.False(t, ok)
}

func TestQuestionSet_Validate_RejectsEmpty(t *testing.T) {
	qs := QuestionSet{}

	err := qs.Validate()

	assert.Error(t, err)
}

package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPoints_AllCorrectFirstToAnswer(t *testing.T) {
	correct1, correct2 := uuid.New(), uuid.New()
	wrong := uuid.New()
	correct := map[uuid.UUID]struct{}{correct1: {}, correct2: {}}
	selected := map[uuid.UUID]struct{}{correct1: {}, correct2: {}}

	points := Points(4, 1, selected, correct)

	// speed = (4-1+1)+9 = 13, base = 10*2 = 20, points = 260
	assert.Equal(t, 260, points)
	_ = wrong
}

func TestPoints_MixedAnswerStillPositive(t *testing.T) {
	correct1, wrong1 := uuid.New(), uuid.New()
	correct := map[uuid.UUID]struct{}{correct1: {}}
	selected := map[uuid.UUID]struct{}{correct1: {}, wrong1: {}}

	points := Points(4, 1, selected, correct)

	// base = 10*1 - 5*1 = 5, speed = 13, points = 65
	assert.Equal(t, 65, points)
}

func TestPoints_AllWrongIsZero(t *testing.T) {
	correct1 := uuid.New()
	wrong1, wrong2 := uuid.New(), uuid.New()
	correct := map[uuid.UUID]struct{}{correct1: {}}
	selected := map[uuid.UUID]struct{}{wrong1: {}, wrong2: {}}

	points := Points(4, 1, selected, correct)

	assert.Equal(t, 0, points)
}

func TestPoints_LaterAnswerOrderScoresLess(t *testing.T) {
	correctID := uuid.New()
	correct := map[uuid.UUID]struct{}{correctID: {}}
	selected := map[uuid.UUID]struct{}{correctID: {}}

	first := Points(4, 1, selected, correct)
	last := Points(4, 4, selected, correct)

	assert.Greater(t, first, last)
}

func TestReadingTimeEstimate_NeverBelowOne(t *testing.T) {
	assert.Equal(t, 1, ReadingTimeEstimate(0))
	assert.Equal(t, 1, ReadingTimeEstimate(1))
}

func TestReadingTimeEstimate_ScalesWithWordCount(t *testing.T) {
	assert.Equal(t, 30, ReadingTimeEstimate(100))
}

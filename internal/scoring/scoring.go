// Package scoring computes points for a single answer event. It is pure:
// given the same inputs it always returns the same result, and it performs
// no I/O.
package scoring

import "github.com/google/uuid"

// speedOffset is the magic constant from the original point calculator,
// preserved for wire-compatible ordering: it guarantees the last respondent
// in a full lobby still earns a nonzero speed multiplier.
const speedOffset = 9

// Points computes the points a player earns for one answer.
//
//   - totalPlayers is the number of joined players at the moment of answering.
//   - answerOrder is the 1-based position of this player among respondents
//     to the question (1 for the first to answer).
//   - selected is the set of choice ids the player picked.
//   - correct is the set of choice ids that are actually correct.
//
// correct/wrong selections are counted, base := saturating_sub(10*correct,
// 5*wrong) (never negative), speed := (totalPlayers - answerOrder + 1) + 9,
// and points := speed * base.
func Points(totalPlayers, answerOrder int, selected, correct map[uuid.UUID]struct{}) int {
	numCorrect := 0
	numWrong := 0
	for id := range selected {
		if _, ok := correct[id]; ok {
			numCorrect++
		} else {
			numWrong++
		}
	}

	base := 10*numCorrect - 5*numWrong
	if base < 0 {
		base = 0
	}

	speed := (totalPlayers - answerOrder + 1) + speedOffset

	return speed * base
}

// ReadingTimeEstimate mirrors quiz.Question.ReadingTimeEstimate's formula,
// exposed here too so scoring-adjacent callers (tests, simulators) don't
// need to import the quiz package just to replicate the arithmetic.
func ReadingTimeEstimate(wordCount int) int {
	estimate := wordCount * 6 / 20
	if estimate <= 0 {
		return 1
	}
	return estimate
}

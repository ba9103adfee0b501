package lobby

import (
	"time"

	"github.com/google/uuid"
	"github.com/joinquiz/server/internal/quiz"
	"github.com/joinquiz/server/internal/wire"
)

// handleStartQuestion advances to the next question, announces it to every
// joined player and the teacher, and arms a timer that ends the question
// automatically once its reading time plus answer time elapses.
func (e *Engine) handleStartQuestion(l *Lobby, ev startQuestionEvent) {
	index, err := l.nextQuestionIndex()
	if err != nil {
		ev.reply <- err
		return
	}

	question, ok := l.questions.At(index)
	if !ok {
		ev.reply <- ErrGameEnded
		return
	}

	l.phase = activeQuestion(index)

	readingTime := question.ReadingTimeEstimate()
	payload := wire.NextQuestionPayload{
		QuestionIndex:    index,
		QuestionsCount:   l.questions.Len(),
		Question:         question.Censor(),
		ShowChoicesAfter: readingTime,
	}
	e.broadcastToAll(l, wire.ServerNextQuestion, payload)

	totalSeconds := readingTime + question.TimeSeconds
	e.scheduleEndQuestion(index, time.Duration(totalSeconds)*time.Second)

	e.logger.Debug().Int("question", index).Int("seconds", totalSeconds).Msg("question started")
	ev.reply <- nil
}

// handleEndQuestion ends the named question, whether its timer fired or a
// teacher (or the last respondent) ended it early. A stale timer firing
// after the phase already moved on is ignored, not an error: the player-
// complete path and the timer path race harmlessly.
func (e *Engine) handleEndQuestion(l *Lobby, ev endQuestionEvent) {
	if l.phase.Kind != ActiveQuestion || l.phase.Index != ev.index {
		e.logger.Debug().Int("question", ev.index).Msg("EndQuestion received outside ActiveQuestion phase, ignoring")
		if ev.reply != nil {
			ev.reply <- nil
		}
		return
	}

	e.endQuestionNow(l, ev.index)
	if ev.reply != nil {
		ev.reply <- nil
	}
}

// endQuestionNow performs the phase transition and QuestionEnded broadcast
// shared by the timer path and the "last player answered" fast path.
func (e *Engine) endQuestionNow(l *Lobby, index int) {
	l.phase = afterQuestion(index)
	e.sendQuestionEnded(l, index)
	e.logger.Debug().Int("question", index).Msg("question ended")
}

func (e *Engine) sendQuestionEnded(l *Lobby, index int) {
	question, _ := l.questions.At(index)
	stats := l.questionStats(index, question)

	for id, p := range l.joined {
		payload := wire.QuestionEndedPayload{
			QuestionIndex: index,
			Question:      question,
			PlayerAnswer:  l.playerAnswer(index, id),
			Stats:         stats,
		}
		e.sendTo(p.Handle, wire.ServerQuestionEnded, payload)
	}

	if l.teacher != nil {
		payload := wire.QuestionEndedPayload{
			QuestionIndex: index,
			Question:      question,
			Stats:         stats,
		}
		e.sendTo(l.teacher, wire.ServerQuestionEnded, payload)
	}
}

// questionStats tallies how many players picked each choice of the question
// at index, seeding every choice at zero so clients can render options no
// one picked.
func (l *Lobby) questionStats(index int, question quiz.Question) map[uuid.UUID]wire.ChoiceStats {
	stats := make(map[uuid.UUID]wire.ChoiceStats, len(question.Choices))
	for _, c := range question.Choices {
		stats[c.ID] = wire.ChoiceStats{}
	}

	for _, record := range l.results[index] {
		for _, answer := range record.SelectedAnswers {
			s := stats[answer]
			s.PlayersAnsweredCount++
			stats[answer] = s
		}
	}

	return stats
}

func (l *Lobby) playerAnswer(index int, playerID uuid.UUID) []uuid.UUID {
	records, ok := l.results[index]
	if !ok {
		return nil
	}
	record, ok := records[playerID]
	if !ok {
		return nil
	}
	return record.SelectedAnswers
}

package lobby

import (
	"time"

	"github.com/google/uuid"
	"github.com/joinquiz/server/internal/scoring"
	"github.com/joinquiz/server/internal/wire"
)

// handleAnswerSelected records a player's answer to a question, scores it,
// and either ends the question immediately (if this was the last player
// still to answer) or broadcasts an updated answered-count.
func (e *Engine) handleAnswerSelected(l *Lobby, ev answerSelectedEvent) {
	if _, ok := l.joined[ev.playerID]; !ok {
		ev.reply <- ErrPlayerNotJoined
		return
	}

	switch l.phase.Kind {
	case ActiveQuestion:
		if l.phase.Index != ev.questionIndex {
			ev.reply <- ErrWrongQuestionIndex
			return
		}
	case AfterQuestion:
		if l.phase.Index == ev.questionIndex {
			// The question already ended but this answer was in flight.
			// Not cheating, just a race; silently ignore it.
			e.logger.Debug().Str("player", ev.playerID.String()).Msg("answer arrived after question ended, ignoring")
			ev.reply <- nil
			return
		}
		ev.reply <- ErrWrongPhaseForAnswer
		return
	default:
		ev.reply <- ErrWrongPhaseForAnswer
		return
	}

	question, ok := l.questions.At(ev.questionIndex)
	if !ok {
		ev.reply <- ErrWrongQuestionIndex
		return
	}

	records := l.results[ev.questionIndex]
	if records == nil {
		records = make(map[uuid.UUID]PlayerQuestionRecord)
		l.results[ev.questionIndex] = records
	}

	if _, already := records[ev.playerID]; already {
		ev.reply <- ErrAlreadyAnswered
		return
	}

	if len(ev.answers) > 1 && !question.IsMultichoice {
		ev.reply <- ErrTooManyAnswers
		return
	}

	answerOrder := len(records) + 1

	selected := make(map[uuid.UUID]struct{}, len(ev.answers))
	for _, a := range ev.answers {
		selected[a] = struct{}{}
	}
	points := scoring.Points(len(l.joined), answerOrder, selected, question.CorrectChoiceIDs())

	records[ev.playerID] = PlayerQuestionRecord{
		AnswerOrder:     answerOrder,
		Timestamp:       time.Now(),
		SelectedAnswers: ev.answers,
		PointsAwarded:   points,
	}
	e.logger.Debug().Str("player", ev.playerID.String()).Int("points", points).Msg("answer recorded")

	ev.reply <- nil

	if len(records) == len(l.joined) {
		// Every joined player has answered; end the question now instead
		// of waiting for its timer.
		e.endQuestionNow(l, ev.questionIndex)
		return
	}

	e.sendQuestionUpdate(l, ev.questionIndex)
}

func (e *Engine) sendQuestionUpdate(l *Lobby, index int) {
	payload := wire.QuestionUpdatePayload{
		QuestionIndex:        index,
		PlayersAnsweredCount: len(l.results[index]),
	}
	e.broadcastToAll(l, wire.ServerQuestionUpdate, payload)
}

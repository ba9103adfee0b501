package lobby

import "errors"

// Sentinel errors returned by engine operations, for callers to match with
// errors.Is. The student socket handler logs a rejected answer and keeps the
// connection open.
var (
	ErrPlayerNotJoined     = errors.New("lobby: player not joined")
	ErrWrongPhaseForAnswer = errors.New("lobby: question is not accepting answers")
	ErrAlreadyAnswered     = errors.New("lobby: player already answered this question")
	ErrTooManyAnswers      = errors.New("lobby: question is not multichoice, only one answer allowed")
	ErrCannotShowNext      = errors.New("lobby: cannot show next question in this phase")
	ErrGameEnded           = errors.New("lobby: game has ended")
	ErrNotAfterQuestion    = errors.New("lobby: not in AfterQuestion phase")
	ErrWrongQuestionIndex  = errors.New("lobby: question index does not match the active question")
)

package lobby

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joinquiz/server/internal/quiz"
	"github.com/joinquiz/server/internal/wire"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// inboxSize bounds how many pending events the engine will buffer before a
// sender blocks. Generous because events are small and handled quickly; the
// bound exists only to surface a stuck engine as backpressure instead of an
// unbounded goroutine leak.
const inboxSize = 64

// Engine runs one Lobby's state machine on a single goroutine. All mutation
// of Lobby happens inside Run; every other method only ever sends an event
// and, where a reply is needed, waits on a channel for it.
type Engine struct {
	inbox     chan event
	done      chan struct{}
	questions quiz.QuestionSet
	logger    zerolog.Logger
	cancel    context.CancelFunc
}

// New creates an Engine for the given fixed question set. Call Run in its
// own goroutine to start processing events.
func New(questions quiz.QuestionSet) *Engine {
	return &Engine{
		inbox:     make(chan event, inboxSize),
		done:      make(chan struct{}),
		questions: questions,
		logger:    log.With().Str("component", "lobby").Logger(),
	}
}

// Run processes events until ctx is canceled or a HardStop event arrives.
// It owns the only *Lobby value that ever exists; nothing outside this loop
// reads or writes lobby state. Run never performs blocking network I/O: all
// outbound sends go through SessionHandle.Send, which must itself be
// non-blocking (a queued channel, not a socket write).
func (e *Engine) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	defer cancel()

	l := newLobby(e.questions)
	defer close(e.done)

	for {
		select {
		case ev := <-e.inbox:
			ev.handle(l, e)
			if ctx.Err() != nil {
				// HardStop canceled the context; handle nothing after it.
				return
			}
		case <-ctx.Done():
			e.logger.Debug().Msg("engine context canceled, stopping")
			return
		}
	}
}

// Done reports when the run loop has exited.
func (e *Engine) Done() <-chan struct{} { return e.done }

// send enqueues ev on the inbox. It never needs to time out: the inbox is
// sized generously and the run loop only ever blocks briefly inside a
// handler, never on I/O, so back-pressure here would indicate a bug rather
// than a normal condition worth a timeout.
func (e *Engine) send(ev event) {
	e.inbox <- ev
}

// RegisterTeacher binds the control connection and unlocks the lobby.
func (e *Engine) RegisterTeacher(handle SessionHandle) {
	e.send(registerTeacherEvent{handle: handle})
}

// SetLock toggles whether new players may TryJoin.
func (e *Engine) SetLock(locked bool) {
	e.send(setLockEvent{locked: locked})
}

// TryJoin reserves id into the waiting set, if the lobby is unlocked.
func (e *Engine) TryJoin(id uuid.UUID) wire.TryJoinResponsePayload {
	reply := make(chan wire.TryJoinResponsePayload, 1)
	e.send(tryJoinEvent{uuid: id, reply: reply})
	return <-reply
}

// Join commits a waiting player's nickname/color and attaches their session.
func (e *Engine) Join(data wire.PlayerData, handle SessionHandle) wire.JoinResponsePayload {
	reply := make(chan wire.JoinResponsePayload, 1)
	e.send(joinEvent{data: data, handle: handle, reply: reply})
	return <-reply
}

// AnswerSelected records a player's answer to a question.
func (e *Engine) AnswerSelected(playerID uuid.UUID, questionIndex int, answers []uuid.UUID) error {
	reply := make(chan error, 1)
	e.send(answerSelectedEvent{playerID: playerID, questionIndex: questionIndex, answers: answers, reply: reply})
	return <-reply
}

// StartQuestion advances to and announces the next question.
func (e *Engine) StartQuestion() error {
	reply := make(chan error, 1)
	e.send(startQuestionEvent{reply: reply})
	return <-reply
}

// EndQuestion ends the named question early (or on its own timer).
func (e *Engine) EndQuestion(index int) error {
	reply := make(chan error, 1)
	e.send(endQuestionEvent{index: index, reply: reply})
	return <-reply
}

// SwitchToLeaderboard reveals the leaderboard for the question just ended.
func (e *Engine) SwitchToLeaderboard() error {
	reply := make(chan error, 1)
	e.send(switchToLeaderboardEvent{reply: reply})
	return <-reply
}

// Kick removes a joined player, closing their session with reason.
func (e *Engine) Kick(playerID uuid.UUID, reason string) error {
	reply := make(chan error, 1)
	e.send(kickEvent{playerID: playerID, reason: reason, reply: reply})
	return <-reply
}

// Disconnect removes a player whose session ended on its own.
func (e *Engine) Disconnect(playerID uuid.UUID) {
	e.send(disconnectEvent{playerID: playerID})
}

// DisconnectTeacher clears the control connection when it ends on its own
// (as opposed to an explicit HardStop command) and tells every joined
// player the teacher is gone.
func (e *Engine) DisconnectTeacher(handle SessionHandle) {
	e.send(teacherDisconnectEvent{handle: handle})
}

// HardStop tells the engine to close every session and exit its run loop.
func (e *Engine) HardStop() {
	e.send(hardStopEvent{})
}

// scheduleEndQuestion arranges for EndQuestion(index) to fire automatically
// after duration, unless the question already ended early (e.g. every
// player answered). The timer fires into the same inbox as any other event,
// so it never races with a concurrent early end.
func (e *Engine) scheduleEndQuestion(index int, duration time.Duration) {
	time.AfterFunc(duration, func() {
		reply := make(chan error, 1)
		e.send(endQuestionEvent{index: index, reply: reply})
	})
}

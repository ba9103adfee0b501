package lobby

import (
	"github.com/google/uuid"
	"github.com/joinquiz/server/internal/wire"
)

// event is the closed set of messages the engine's run loop accepts on its
// inbox. Each carries whatever reply channel its sender needs; handlers that
// have nothing to report back carry none.
type event interface {
	handle(l *Lobby, e *Engine)
}

// registerTeacherEvent binds the control connection and unlocks the lobby,
// mirroring the original's "only now actually start the server" comment:
// nobody can join until a teacher is present to run the session.
type registerTeacherEvent struct {
	handle SessionHandle
}

// setLockEvent toggles whether TryJoin accepts new players.
type setLockEvent struct {
	locked bool
}

// tryJoinEvent reserves a player id into the waiting set.
type tryJoinEvent struct {
	uuid  uuid.UUID
	reply chan wire.TryJoinResponsePayload
}

// joinEvent commits a waiting player's nickname/color.
type joinEvent struct {
	data   wire.PlayerData
	handle SessionHandle
	reply  chan wire.JoinResponsePayload
}

// answerSelectedEvent records one player's answer to the active question.
type answerSelectedEvent struct {
	playerID      uuid.UUID
	questionIndex int
	answers       []uuid.UUID
	reply         chan error
}

// startQuestionEvent advances to the next question and begins its timer.
type startQuestionEvent struct {
	reply chan error
}

// endQuestionEvent ends a specific question, either because its timer fired
// or because the teacher ended it early. (When every joined player has
// answered, handleAnswerSelected ends the question directly.)
type endQuestionEvent struct {
	index int
	reply chan error
}

// switchToLeaderboardEvent reveals cumulative scores for the just-ended
// question and advances the phase.
type switchToLeaderboardEvent struct {
	reply chan error
}

// kickEvent removes a joined player and tells their session to close.
type kickEvent struct {
	playerID uuid.UUID
	reason   string
	reply    chan error
}

// disconnectEvent removes a player whose session ended on its own (network
// drop, tab close) rather than being kicked.
type disconnectEvent struct {
	playerID uuid.UUID
}

// teacherDisconnectEvent clears the control connection when it ends on its
// own, rather than via an explicit TeacherHardStop command.
type teacherDisconnectEvent struct {
	handle SessionHandle
}

// hardStopEvent tells every connected session (players and teacher) to close
// and signals the engine to exit its run loop.
type hardStopEvent struct{}

func (ev registerTeacherEvent) handle(l *Lobby, e *Engine)     { e.handleRegisterTeacher(l, ev) }
func (ev setLockEvent) handle(l *Lobby, e *Engine)             { e.handleSetLock(l, ev) }
func (ev tryJoinEvent) handle(l *Lobby, e *Engine)             { e.handleTryJoin(l, ev) }
func (ev joinEvent) handle(l *Lobby, e *Engine)                { e.handleJoin(l, ev) }
func (ev answerSelectedEvent) handle(l *Lobby, e *Engine)      { e.handleAnswerSelected(l, ev) }
func (ev startQuestionEvent) handle(l *Lobby, e *Engine)       { e.handleStartQuestion(l, ev) }
func (ev endQuestionEvent) handle(l *Lobby, e *Engine)         { e.handleEndQuestion(l, ev) }
func (ev switchToLeaderboardEvent) handle(l *Lobby, e *Engine) { e.handleSwitchToLeaderboard(l, ev) }
func (ev kickEvent) handle(l *Lobby, e *Engine)                { e.handleKick(l, ev) }
func (ev disconnectEvent) handle(l *Lobby, e *Engine)          { e.handleDisconnect(l, ev) }
func (ev teacherDisconnectEvent) handle(l *Lobby, e *Engine)   { e.handleTeacherDisconnect(l, ev) }
func (ev hardStopEvent) handle(l *Lobby, e *Engine)            { e.handleHardStop(l, ev) }

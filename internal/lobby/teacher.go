package lobby

import "github.com/joinquiz/server/internal/wire"

// handleRegisterTeacher binds the control connection and unlocks the lobby:
// nobody can join until a teacher is present to run the session.
func (e *Engine) handleRegisterTeacher(l *Lobby, ev registerTeacherEvent) {
	l.teacher = ev.handle
	l.locked = false
	e.logger.Debug().Msg("teacher registered, lobby unlocked")
}

// handleSetLock toggles whether TryJoin accepts new players.
func (e *Engine) handleSetLock(l *Lobby, ev setLockEvent) {
	l.locked = ev.locked
	e.logger.Debug().Bool("locked", ev.locked).Msg("lock state changed")
}

// handleKick removes a joined player and tells their session to close with
// the given reason, then updates everyone else's roster.
func (e *Engine) handleKick(l *Lobby, ev kickEvent) {
	player, ok := l.joined[ev.playerID]
	if !ok {
		ev.reply <- nil
		return
	}

	delete(l.joined, ev.playerID)
	player.Handle.GracefulStop(ev.reason)
	e.logger.Info().Str("player", ev.playerID.String()).Msg("player kicked by teacher")

	except := ev.playerID
	e.sendPlayersUpdate(l, &except)
	ev.reply <- nil
}

// handleDisconnect removes a player whose session ended on its own.
func (e *Engine) handleDisconnect(l *Lobby, ev disconnectEvent) {
	if _, ok := l.joined[ev.playerID]; !ok {
		return
	}
	delete(l.joined, ev.playerID)
	e.logger.Info().Str("player", ev.playerID.String()).Msg("player disconnected")

	except := ev.playerID
	e.sendPlayersUpdate(l, &except)
}

// handleTeacherDisconnect clears the control connection when it drops on its
// own (as opposed to a HardStop command) and tells every joined player, the
// way handleKick tells the roster after removing a player. A stale
// disconnect from a teacher handle that has since been replaced by a new
// registration is ignored.
func (e *Engine) handleTeacherDisconnect(l *Lobby, ev teacherDisconnectEvent) {
	if l.teacher == nil || l.teacher != ev.handle {
		return
	}
	l.teacher = nil
	e.logger.Info().Msg("teacher disconnected")

	e.broadcastToAll(l, wire.ServerTeacherDisconnect, wire.TeacherDisconnectedPayload{})
}

// handleHardStop tells every connected session to close, then cancels the
// engine's own context so Run returns.
func (e *Engine) handleHardStop(l *Lobby, ev hardStopEvent) {
	e.logger.Info().Msg("hard stop requested, closing all sessions")
	for _, p := range l.joined {
		p.Handle.GracefulStop(wire.ReasonGoodbye)
	}
	if l.teacher != nil {
		l.teacher.GracefulStop(wire.ReasonGoodbye)
	}
	if e.cancel != nil {
		e.cancel()
	}
}

package lobby

import (
	"time"

	"github.com/joinquiz/server/internal/quiz"
	"github.com/joinquiz/server/internal/wire"
)

// handleTryJoin reserves a player id into the waiting set, the first half of
// the two-step join handshake (spec.md §4.1.3): a player must TryJoin before
// they may Join, which lets the client collect nickname/color input while
// the server has already validated that a slot is available.
func (e *Engine) handleTryJoin(l *Lobby, ev tryJoinEvent) {
	response := wire.TryJoinResponsePayload{
		UUID:     ev.uuid,
		QuizName: l.questions.QuizName,
	}

	if l.locked {
		response.CanJoin = wire.Refused(wire.ReasonLobbyLocked)
		ev.reply <- response
		return
	}

	l.waiting[ev.uuid] = struct{}{}
	response.CanJoin = wire.Accepted()
	ev.reply <- response
}

// handleJoin commits a waiting player's nickname/color and attaches their
// session handle, completing the join handshake.
func (e *Engine) handleJoin(l *Lobby, ev joinEvent) {
	response := wire.JoinResponsePayload{
		UUID:     ev.data.UUID,
		QuizName: l.questions.QuizName,
		Players:  toWirePlayers(l.players()),
	}

	if l.locked {
		response.CanJoin = wire.Refused(wire.ReasonLobbyLocked)
		ev.reply <- response
		return
	}

	id := ev.data.UUID
	if _, waiting := l.waiting[id]; !waiting {
		response.CanJoin = wire.Refused(wire.ReasonNotInWaitingList)
		ev.reply <- response
		return
	}

	if l.nicknameTaken(ev.data.Nickname) {
		response.CanJoin = wire.Refused(wire.ReasonNicknameTaken)
		ev.reply <- response
		return
	}

	delete(l.waiting, id)
	l.joined[id] = &JoinedPlayer{
		PlayerData: PlayerData{
			UUID:     id,
			Nickname: ev.data.Nickname,
			Color:    quiz.Color(ev.data.Color),
		},
		Handle:   ev.handle,
		JoinedAt: time.Now(),
	}

	// Do not send the update to the player that just joined; their own
	// JoinResponse already carries the full roster.
	e.sendPlayersUpdate(l, &id)

	response.CanJoin = wire.Accepted()
	response.Players = toWirePlayers(l.players())
	ev.reply <- response
}

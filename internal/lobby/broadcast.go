package lobby

import (
	"github.com/google/uuid"
	"github.com/joinquiz/server/internal/wire"
)

// sendTo marshals payload under messageType and hands it to handle. Marshal
// errors are logged and swallowed: a malformed outbound payload is a bug in
// this package, never something the recipient can act on.
func (e *Engine) sendTo(handle SessionHandle, messageType wire.ServerMessageType, payload any) {
	if handle == nil {
		return
	}
	data, err := wire.Marshal(messageType, payload)
	if err != nil {
		e.logger.Error().Err(err).Str("type", string(messageType)).Msg("failed to marshal outbound message")
		return
	}
	handle.Send(data)
}

// broadcastToAll sends payload to every joined player, and to the teacher if
// registered.
func (e *Engine) broadcastToAll(l *Lobby, messageType wire.ServerMessageType, payload any) {
	for _, p := range l.joined {
		e.sendTo(p.Handle, messageType, payload)
	}
	e.sendTo(l.teacher, messageType, payload)
}

// broadcastToOthers sends payload to every joined player except except, and
// to the teacher. Used for PlayersUpdate, where the joining player already
// receives their roster in the JoinResponse itself.
func (e *Engine) broadcastToOthers(l *Lobby, except uuid.UUID, messageType wire.ServerMessageType, payload any) {
	for id, p := range l.joined {
		if id == except {
			continue
		}
		e.sendTo(p.Handle, messageType, payload)
	}
	e.sendTo(l.teacher, messageType, payload)
}

func toWirePlayers(players []PlayerData) []wire.PlayerData {
	out := make([]wire.PlayerData, len(players))
	for i, p := range players {
		out[i] = wire.PlayerData{UUID: p.UUID, Nickname: p.Nickname, Color: string(p.Color)}
	}
	return out
}

// sendPlayersUpdate broadcasts the current roster. If except is non-nil, that
// player's own session does not receive it (it already has the roster from
// its own JoinResponse).
func (e *Engine) sendPlayersUpdate(l *Lobby, except *uuid.UUID) {
	payload := wire.PlayersUpdatePayload{Players: toWirePlayers(l.players())}
	if except != nil {
		e.broadcastToOthers(l, *except, wire.ServerPlayersUpdate, payload)
		return
	}
	e.broadcastToAll(l, wire.ServerPlayersUpdate, payload)
}

package lobby

import "github.com/joinquiz/server/internal/wire"

// handleSwitchToLeaderboard reveals cumulative scores through the question
// just ended and advances the phase to ShowingLeaderboard, or to GameEnded
// if that was the final question.
func (e *Engine) handleSwitchToLeaderboard(l *Lobby, ev switchToLeaderboardEvent) {
	if l.phase.Kind != AfterQuestion {
		ev.reply <- ErrNotAfterQuestion
		return
	}
	index := l.phase.Index

	isFinal := index == l.questions.LastIndex()

	entries := make([]wire.LeaderboardEntry, 0, len(l.joined))
	for _, p := range l.players() {
		entries = append(entries, wire.LeaderboardEntry{
			Player: wire.PlayerData{UUID: p.UUID, Nickname: p.Nickname, Color: string(p.Color)},
			Score:  l.scoreThrough(index, p.UUID),
		})
	}

	payload := wire.ShowLeaderboardPayload{Players: entries, WasFinalRound: isFinal}
	e.broadcastToAll(l, wire.ServerShowLeaderboard, payload)

	if isFinal {
		l.phase = gameEnded()
	} else {
		l.phase = showingLeaderboard(index)
	}

	e.logger.Debug().Int("question", index).Bool("final", isFinal).Msg("leaderboard shown")
	ev.reply <- nil
}

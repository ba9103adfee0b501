// Package lobby implements the single-writer game engine described in
// SPEC_FULL.md: one goroutine owns every mutation of a quiz session's state
// and never blocks on network I/O while holding it. Callers talk to it only
// through typed events sent on its inbox channel (events.go), mirroring the
// actor-handler structure of the system this was distilled from while
// replacing the actor framework with a plain goroutine + channel select.
package lobby

import (
	"time"

	"github.com/google/uuid"
	"github.com/joinquiz/server/internal/quiz"
)

// SessionHandle is the engine's view of a connected session: enough to push
// outbound frames and to sever the connection, without knowing anything
// about WebSockets or the transport below it.
type SessionHandle interface {
	// Send enqueues a pre-encoded frame. It must never block for long; a
	// session with a full outbound queue is considered unresponsive and is
	// the session layer's responsibility to drop, not the engine's.
	Send(data []byte)
	// GracefulStop asks the session to close with a reason visible to the
	// client (e.g. being kicked, or a lobby-wide shutdown).
	GracefulStop(reason string)
}

// PlayerData is the public identity of one player, used both on the wire and
// internally for roster snapshots.
type PlayerData struct {
	UUID     uuid.UUID
	Nickname string
	Color    quiz.Color
}

// JoinedPlayer is a player who completed the join handshake.
type JoinedPlayer struct {
	PlayerData
	Handle   SessionHandle
	JoinedAt time.Time
}

// PlayerQuestionRecord is one player's recorded answer to one question.
type PlayerQuestionRecord struct {
	AnswerOrder     int // 1-based position among respondents
	Timestamp       time.Time
	SelectedAnswers []uuid.UUID
	PointsAwarded   int
}

// QuestionRecords maps question index -> player id -> that player's record.
type QuestionRecords map[int]map[uuid.UUID]PlayerQuestionRecord

// Lobby holds a single quiz session's entire mutable state. It is only ever
// touched from inside the Engine's run loop; nothing else may read or write
// its fields directly.
type Lobby struct {
	teacher SessionHandle
	phase   Phase
	locked  bool

	questions quiz.QuestionSet

	joined  map[uuid.UUID]*JoinedPlayer
	waiting map[uuid.UUID]struct{}

	results QuestionRecords
}

// newLobby constructs a freshly started lobby: locked until a teacher
// registers, in WaitingForPlayers, with the given fixed question set.
func newLobby(questions quiz.QuestionSet) *Lobby {
	return &Lobby{
		phase:     waitingForPlayers(),
		locked:    true,
		questions: questions,
		joined:    make(map[uuid.UUID]*JoinedPlayer),
		waiting:   make(map[uuid.UUID]struct{}),
		results:   make(QuestionRecords),
	}
}

// players returns the joined roster ordered by join time, matching the order
// new players see in every PlayersUpdate broadcast.
func (l *Lobby) players() []PlayerData {
	joined := make([]*JoinedPlayer, 0, len(l.joined))
	for _, p := range l.joined {
		joined = append(joined, p)
	}
	sortByJoinedAt(joined)

	out := make([]PlayerData, len(joined))
	for i, p := range joined {
		out[i] = p.PlayerData
	}
	return out
}

func sortByJoinedAt(players []*JoinedPlayer) {
	for i := 1; i < len(players); i++ {
		for j := i; j > 0 && players[j].JoinedAt.Before(players[j-1].JoinedAt); j-- {
			players[j], players[j-1] = players[j-1], players[j]
		}
	}
}

func (l *Lobby) nicknameTaken(nickname string) bool {
	for _, p := range l.joined {
		if p.Nickname == nickname {
			return true
		}
	}
	return false
}

func (l *Lobby) scoreThrough(index int, player uuid.UUID) int {
	total := 0
	for q := 0; q <= index; q++ {
		if records, ok := l.results[q]; ok {
			if record, ok := records[player]; ok {
				total += record.PointsAwarded
			}
		}
	}
	return total
}

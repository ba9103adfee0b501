package wire

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/joinquiz/server/internal/quiz"
)

// ServerMessageType tags the variant of an outgoing server->client message.
type ServerMessageType string

const (
	ServerTryJoinResponse   ServerMessageType = "TryJoinResponse"
	ServerJoinResponse      ServerMessageType = "JoinResponse"
	ServerPlayersUpdate     ServerMessageType = "PlayersUpdate"
	ServerNextQuestion      ServerMessageType = "NextQuestion"
	ServerQuestionUpdate    ServerMessageType = "QuestionUpdate"
	ServerQuestionEnded     ServerMessageType = "QuestionEnded"
	ServerShowLeaderboard   ServerMessageType = "ShowLeaderboard"
	ServerTeacherDisconnect ServerMessageType = "TeacherDisconnected"
)

// Reserved, stable refusal reasons (spec.md §6).
const (
	ReasonLobbyLocked        = "The lobby is locked"
	ReasonNotInWaitingList   = "Player not in waiting list"
	ReasonNicknameTaken      = "Nickname already taken"
	ReasonGoodbye            = "Goodbye"
)

// ServerEnvelope is the outer shape of every server->client frame.
type ServerEnvelope struct {
	Type    ServerMessageType `json:"type"`
	Payload any               `json:"payload"`
}

// CanJoin flattens the original Yes|No(reason) enum into a bool plus an
// optional reason string, matching the teacher's preference for flat JSON
// structs over tagged enums (see SPEC_FULL.md §3).
type CanJoin struct {
	Yes    bool   `json:"can_join"`
	Reason string `json:"reason,omitempty"`
}

// Accepted is a convenience constructor for an affirmative CanJoin.
func Accepted() CanJoin { return CanJoin{Yes: true} }

// Refused is a convenience constructor for a negative CanJoin with reason.
func Refused(reason string) CanJoin { return CanJoin{Yes: false, Reason: reason} }

// TryJoinResponsePayload replies to a TryJoinRequest.
type TryJoinResponsePayload struct {
	UUID     uuid.UUID `json:"uuid"`
	CanJoin  CanJoin   `json:"can_join"`
	QuizName string    `json:"quiz_name"`
}

// JoinResponsePayload replies to a JoinRequest.
type JoinResponsePayload struct {
	UUID     uuid.UUID    `json:"uuid"`
	CanJoin  CanJoin      `json:"can_join"`
	QuizName string       `json:"quiz_name"`
	Players  []PlayerData `json:"players"`
}

// PlayersUpdatePayload is broadcast whenever the joined roster changes.
type PlayersUpdatePayload struct {
	Players []PlayerData `json:"players"`
}

// NextQuestionPayload announces a newly active question.
type NextQuestionPayload struct {
	QuestionIndex    int                    `json:"question_index"`
	QuestionsCount   int                    `json:"questions_count"`
	Question         quiz.QuestionCensored  `json:"question"`
	ShowChoicesAfter int                    `json:"show_choices_after"`
}

// QuestionUpdatePayload reports how many players have answered so far.
type QuestionUpdatePayload struct {
	QuestionIndex       int `json:"question_index"`
	PlayersAnsweredCount int `json:"players_answered_count"`
}

// ChoiceStats is the per-choice answered-count for a concluded question.
type ChoiceStats struct {
	PlayersAnsweredCount int `json:"players_answered_count"`
}

// QuestionEndedPayload reveals the full question (including is_correct),
// this recipient's own answer (if any), and per-choice stats.
type QuestionEndedPayload struct {
	QuestionIndex int                      `json:"question_index"`
	Question      quiz.Question            `json:"question"`
	PlayerAnswer   []uuid.UUID             `json:"player_answer,omitempty"`
	Stats          map[uuid.UUID]ChoiceStats `json:"stats"`
}

// LeaderboardEntry pairs a player with their cumulative score.
type LeaderboardEntry struct {
	Player PlayerData `json:"player"`
	Score  int        `json:"score"`
}

// ShowLeaderboardPayload is sent when the teacher switches to the leaderboard.
type ShowLeaderboardPayload struct {
	Players       []LeaderboardEntry `json:"players"`
	WasFinalRound bool               `json:"was_final_round"`
}

// TeacherDisconnectedPayload is sent to every joined player when the
// teacher's control connection drops.
type TeacherDisconnectedPayload struct{}

// Marshal serializes a ServerEnvelope for an outbound text frame.
func Marshal(t ServerMessageType, payload any) ([]byte, error) {
	return json.Marshal(ServerEnvelope{Type: t, Payload: payload})
}

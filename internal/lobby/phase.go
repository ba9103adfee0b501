package lobby

import "fmt"

// PhaseKind tags which variant of Phase is active. Only ActiveQuestion,
// AfterQuestion and ShowingLeaderboard carry a question index.
type PhaseKind int

const (
	WaitingForPlayers PhaseKind = iota
	ActiveQuestion
	AfterQuestion
	ShowingLeaderboard
	GameEnded
)

func (k PhaseKind) String() string {
	switch k {
	case WaitingForPlayers:
		return "WaitingForPlayers"
	case ActiveQuestion:
		return "ActiveQuestion"
	case AfterQuestion:
		return "AfterQuestion"
	case ShowingLeaderboard:
		return "ShowingLeaderboard"
	case GameEnded:
		return "GameEnded"
	default:
		return "Unknown"
	}
}

// Phase is the lobby's game-state machine position. The zero value is
// WaitingForPlayers, matching the initial state of a freshly created lobby.
type Phase struct {
	Kind  PhaseKind
	Index int
}

func (p Phase) String() string {
	switch p.Kind {
	case ActiveQuestion, AfterQuestion, ShowingLeaderboard:
		return fmt.Sprintf("%s(%d)", p.Kind, p.Index)
	default:
		return p.Kind.String()
	}
}

func waitingForPlayers() Phase       { return Phase{Kind: WaitingForPlayers} }
func activeQuestion(i int) Phase     { return Phase{Kind: ActiveQuestion, Index: i} }
func afterQuestion(i int) Phase      { return Phase{Kind: AfterQuestion, Index: i} }
func showingLeaderboard(i int) Phase { return Phase{Kind: ShowingLeaderboard, Index: i} }
func gameEnded() Phase               { return Phase{Kind: GameEnded} }

// canShowNextQuestion reports whether the engine may advance to the next
// question from the current phase: only from WaitingForPlayers, or from
// ShowingLeaderboard when the current question is not the last one.
func (l *Lobby) canShowNextQuestion() bool {
	switch l.phase.Kind {
	case WaitingForPlayers:
		return true
	case ShowingLeaderboard:
		return l.phase.Index < l.questions.LastIndex()
	default:
		return false
	}
}

// nextQuestionIndex returns the index StartQuestion should advance to.
func (l *Lobby) nextQuestionIndex() (int, error) {
	if !l.canShowNextQuestion() {
		return 0, ErrCannotShowNext
	}
	switch l.phase.Kind {
	case WaitingForPlayers:
		return 0, nil
	case ActiveQuestion, AfterQuestion, ShowingLeaderboard:
		return l.phase.Index + 1, nil
	default:
		return 0, ErrGameEnded
	}
}

package lobby

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joinquiz/server/internal/quiz"
	"github.com/joinquiz/server/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession is an in-memory SessionHandle double that records every frame
// pushed to it, so tests can assert on what a real client would have
// received without standing up an actual WebSocket connection.
type fakeSession struct {
	mu       sync.Mutex
	frames   [][]byte
	stopped  bool
	stopWhy  string
}

func (f *fakeSession) Send(data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, data)
}

func (f *fakeSession) GracefulStop(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	f.stopWhy = reason
}

func (f *fakeSession) frameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func twoQuestionSet() quiz.QuestionSet {
	correctA, wrongA := uuid.New(), uuid.New()
	correctB, wrongB := uuid.New(), uuid.New()
	return quiz.QuestionSet{
		QuizName: "Go Trivia",
		Questions: []quiz.Question{
			{
				Text:        "Which keyword declares a constant?",
				TimeSeconds: 1,
				Choices: []quiz.Choice{
					{ID: correctA, Text: "const", IsCorrect: true},
					{ID: wrongA, Text: "var", IsCorrect: false},
				},
			},
			{
				Text:        "Which package formats strings?",
				TimeSeconds: 1,
				Choices: []quiz.Choice{
					{ID: correctB, Text: "fmt", IsCorrect: true},
					{ID: wrongB, Text: "os", IsCorrect: false},
				},
			},
		},
	}
}

// startEngine runs an Engine on its own goroutine and returns it, registering
// a test cleanup that cancels its context and waits for Run to exit.
func startEngine(t *testing.T, questions quiz.QuestionSet) *Engine {
	t.Helper()
	engine := New(questions)
	ctx, cancel := context.WithCancel(context.Background())
	go engine.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-engine.Done()
	})
	return engine
}

func joinAs(t *testing.T, engine *Engine, nickname string) (uuid.UUID, *fakeSession) {
	t.Helper()
	id := uuid.New()

	tryResp := engine.TryJoin(id)
	require.True(t, tryResp.CanJoin.Yes, "TryJoin refused: %s", tryResp.CanJoin.Reason)

	sess := &fakeSession{}
	joinResp := engine.Join(wire.PlayerData{UUID: id, Nickname: nickname, Color: string(quiz.ColorBlue)}, sess)
	require.True(t, joinResp.CanJoin.Yes, "Join refused: %s", joinResp.CanJoin.Reason)

	return id, sess
}

func TestJoinHandshake_Success(t *testing.T) {
	engine := startEngine(t, twoQuestionSet())
	teacher := &fakeSession{}
	engine.RegisterTeacher(teacher)

	id, _ := joinAs(t, engine, "ada")

	_ = id
}

func TestJoin_RejectsNicknameCollision(t *testing.T) {
	engine := startEngine(t, twoQuestionSet())
	engine.RegisterTeacher(&fakeSession{})

	joinAs(t, engine, "ada")

	secondID := uuid.New()
	tryResp := engine.TryJoin(secondID)
	require.True(t, tryResp.CanJoin.Yes)

	joinResp := engine.Join(wire.PlayerData{UUID: secondID, Nickname: "ada", Color: string(quiz.ColorRed)}, &fakeSession{})

	assert.False(t, joinResp.CanJoin.Yes)
	assert.Equal(t, wire.ReasonNicknameTaken, joinResp.CanJoin.Reason)
}

func TestJoin_RejectsWithoutTryJoinFirst(t *testing.T) {
	engine := startEngine(t, twoQuestionSet())
	engine.RegisterTeacher(&fakeSession{})

	id := uuid.New()
	joinResp := engine.Join(wire.PlayerData{UUID: id, Nickname: "skip-ahead", Color: string(quiz.ColorGreen)}, &fakeSession{})

	assert.False(t, joinResp.CanJoin.Yes)
	assert.Equal(t, wire.ReasonNotInWaitingList, joinResp.CanJoin.Reason)
}

func TestTryJoin_RejectedWhileLocked(t *testing.T) {
	engine := startEngine(t, twoQuestionSet())
	// No teacher registered yet: lobby starts locked.

	resp := engine.TryJoin(uuid.New())

	assert.False(t, resp.CanJoin.Yes)
	assert.Equal(t, wire.ReasonLobbyLocked, resp.CanJoin.Reason)
}

func TestAnswerSelected_LastRespondentEndsQuestionEarly(t *testing.T) {
	set := twoQuestionSet()
	engine := startEngine(t, set)
	engine.RegisterTeacher(&fakeSession{})

	id, sess := joinAs(t, engine, "ada")

	require.NoError(t, engine.StartQuestion())
	question, ok := set.At(0)
	require.True(t, ok)

	correctID := question.Choices[0].ID
	err := engine.AnswerSelected(id, 0, []uuid.UUID{correctID})
	require.NoError(t, err)

	// With a single joined player, the one answer received should end the
	// question immediately rather than waiting for its timer.
	require.Eventually(t, func() bool {
		return sess.frameCount() >= 2 // NextQuestion + QuestionEnded
	}, time.Second, 10*time.Millisecond)
}

func TestAnswerSelected_RejectsDoubleAnswer(t *testing.T) {
	set := twoQuestionSet()
	engine := startEngine(t, set)
	engine.RegisterTeacher(&fakeSession{})

	idA, _ := joinAs(t, engine, "ada")
	joinAs(t, engine, "grace") // second player so the question does not auto-end

	require.NoError(t, engine.StartQuestion())
	question, ok := set.At(0)
	require.True(t, ok)
	correctID := question.Choices[0].ID

	require.NoError(t, engine.AnswerSelected(idA, 0, []uuid.UUID{correctID}))

	err := engine.AnswerSelected(idA, 0, []uuid.UUID{correctID})
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
}

func TestAnswerSelected_RejectsWrongQuestionIndex(t *testing.T) {
	engine := startEngine(t, twoQuestionSet())
	engine.RegisterTeacher(&fakeSession{})

	id, _ := joinAs(t, engine, "ada")
	joinAs(t, engine, "grace")

	require.NoError(t, engine.StartQuestion())

	err := engine.AnswerSelected(id, 1, nil)
	assert.ErrorIs(t, err, ErrWrongQuestionIndex)
}

func TestKick_RemovesPlayerAndNotifiesSession(t *testing.T) {
	engine := startEngine(t, twoQuestionSet())
	engine.RegisterTeacher(&fakeSession{})

	id, sess := joinAs(t, engine, "ada")

	require.NoError(t, engine.Kick(id, "disruptive"))

	require.Eventually(t, func() bool {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		return sess.stopped
	}, time.Second, 10*time.Millisecond)
	sess.mu.Lock()
	assert.Equal(t, "disruptive", sess.stopWhy)
	sess.mu.Unlock()

	// Rejoining with the same id should now succeed again: kicking frees
	// the slot rather than leaving it permanently claimed.
	tryResp := engine.TryJoin(id)
	assert.True(t, tryResp.CanJoin.Yes)
}

func TestTeacherDisconnect_NotifiesJoinedPlayers(t *testing.T) {
	engine := startEngine(t, twoQuestionSet())
	teacher := &fakeSession{}
	engine.RegisterTeacher(teacher)

	_, sess := joinAs(t, engine, "ada")
	framesBeforeDisconnect := sess.frameCount()

	engine.DisconnectTeacher(teacher)

	require.Eventually(t, func() bool {
		return sess.frameCount() > framesBeforeDisconnect
	}, time.Second, 10*time.Millisecond)

	// A stale disconnect from a replaced teacher handle must not clear the
	// new registration or notify anyone again.
	newTeacher := &fakeSession{}
	engine.RegisterTeacher(newTeacher)
	framesAfterReregister := sess.frameCount()

	engine.DisconnectTeacher(teacher)
	tryResp := engine.TryJoin(uuid.New())

	assert.True(t, tryResp.CanJoin.Yes, "lobby should still be unlocked under the new teacher")
	assert.Equal(t, framesAfterReregister, sess.frameCount(), "stale disconnect must not re-broadcast")
}

func TestQuestionTimer_EndsQuestionWithoutAnyAnswer(t *testing.T) {
	engine := startEngine(t, twoQuestionSet())
	engine.RegisterTeacher(&fakeSession{})

	_, sess := joinAs(t, engine, "ada")

	require.NoError(t, engine.StartQuestion())

	// twoQuestionSet gives each question TimeSeconds=1 and a five-word
	// prompt, so ReadingTimeEstimate floors to 1s: total ~2s before the
	// timer fires EndQuestion on its own.
	require.Eventually(t, func() bool {
		return sess.frameCount() >= 2
	}, 5*time.Second, 50*time.Millisecond)
}

func TestSwitchToLeaderboard_RequiresAfterQuestionPhase(t *testing.T) {
	engine := startEngine(t, twoQuestionSet())
	engine.RegisterTeacher(&fakeSession{})
	joinAs(t, engine, "ada")

	err := engine.SwitchToLeaderboard()

	assert.ErrorIs(t, err, ErrNotAfterQuestion)
}

func TestSwitchToLeaderboard_MarksFinalRoundOnLastQuestion(t *testing.T) {
	set := quiz.QuestionSet{
		QuizName: "One Question",
		Questions: []quiz.Question{
			{
				Text:        "Only question",
				TimeSeconds: 1,
				Choices: []quiz.Choice{
					{ID: uuid.New(), Text: "right", IsCorrect: true},
				},
			},
		},
	}
	engine := startEngine(t, set)
	engine.RegisterTeacher(&fakeSession{})

	id, _ := joinAs(t, engine, "ada")
	require.NoError(t, engine.StartQuestion())
	question, _ := set.At(0)
	require.NoError(t, engine.AnswerSelected(id, 0, []uuid.UUID{question.Choices[0].ID}))

	require.NoError(t, engine.SwitchToLeaderboard())

	// A second question does not exist, so advancing past the leaderboard
	// should now refuse: the phase is GameEnded, not ShowingLeaderboard.
	err := engine.StartQuestion()
	assert.ErrorIs(t, err, ErrCannotShowNext)
}

func TestHardStop_ClosesSessionsAndStopsEngine(t *testing.T) {
	engine := New(twoQuestionSet())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go engine.Run(ctx)

	engine.RegisterTeacher(&fakeSession{})
	_, sess := joinAs(t, engine, "ada")

	engine.HardStop()

	select {
	case <-engine.Done():
	case <-time.After(time.Second):
		t.Fatal("engine did not stop after HardStop")
	}

	sess.mu.Lock()
	assert.True(t, sess.stopped)
	assert.Equal(t, wire.ReasonGoodbye, sess.stopWhy)
	sess.mu.Unlock()
}

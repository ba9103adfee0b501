package wire

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// TeacherCommandType tags the variant of an incoming teacher command. This
// union is not part of spec.md's wire schema (the Teacher channel is
// specified as in-process); it is the bridge that lets a real presenter
// connection drive that in-process channel (see SPEC_FULL.md).
type TeacherCommandType string

const (
	TeacherStartQuestion      TeacherCommandType = "StartQuestion"
	TeacherEndQuestion        TeacherCommandType = "EndQuestion"
	TeacherSwitchToLeaderboard TeacherCommandType = "SwitchToLeaderboard"
	TeacherKick               TeacherCommandType = "Kick"
	TeacherSetLock            TeacherCommandType = "SetLock"
	TeacherHardStop           TeacherCommandType = "HardStop"
)

// TeacherEnvelope is the outer shape of every teacher->server frame.
type TeacherEnvelope struct {
	Type    TeacherCommandType `json:"type"`
	Payload json.RawMessage    `json:"payload"`
}

// TeacherEndQuestionPayload names the question to end early.
type TeacherEndQuestionPayload struct {
	Index int `json:"index"`
}

// TeacherKickPayload names a player to remove and the reason shown in their
// close frame.
type TeacherKickPayload struct {
	PlayerUUID uuid.UUID `json:"player_uuid"`
	Reason     string    `json:"reason,omitempty"`
}

// TeacherSetLockPayload sets whether new players may join.
type TeacherSetLockPayload struct {
	Locked bool `json:"locked"`
}

// ParseTeacher decodes a raw teacher frame into its envelope.
func ParseTeacher(data []byte) (TeacherEnvelope, error) {
	var env TeacherEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return TeacherEnvelope{}, fmt.Errorf("decoding teacher frame: %w", err)
	}
	switch env.Type {
	case TeacherStartQuestion, TeacherEndQuestion, TeacherSwitchToLeaderboard,
		TeacherKick, TeacherSetLock, TeacherHardStop:
		return env, nil
	default:
		return TeacherEnvelope{}, fmt.Errorf("unrecognized teacher command type %q", env.Type)
	}
}

// DecodeEndQuestion decodes the envelope's payload as TeacherEndQuestionPayload.
func (e TeacherEnvelope) DecodeEndQuestion() (TeacherEndQuestionPayload, error) {
	var p TeacherEndQuestionPayload
	err := json.Unmarshal(e.Payload, &p)
	return p, err
}

// DecodeKick decodes the envelope's payload as TeacherKickPayload.
func (e TeacherEnvelope) DecodeKick() (TeacherKickPayload, error) {
	var p TeacherKickPayload
	err := json.Unmarshal(e.Payload, &p)
	return p, err
}

// DecodeSetLock decodes the envelope's payload as TeacherSetLockPayload.
func (e TeacherEnvelope) DecodeSetLock() (TeacherSetLockPayload, error) {
	var p TeacherSetLockPayload
	err := json.Unmarshal(e.Payload, &p)
	return p, err
}

// Package wire defines the JSON-over-WebSocket tagged unions exchanged
// between sessions and the outside world: student clients (spec.md §6) and
// the teacher control connection (an addition needed to drive the
// in-process Teacher channel over a real socket; see SPEC_FULL.md).
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ClientMessageType tags the variant of an incoming student message.
type ClientMessageType string

const (
	ClientTryJoinRequest    ClientMessageType = "TryJoinRequest"
	ClientJoinRequest       ClientMessageType = "JoinRequest"
	ClientAnswerSelected    ClientMessageType = "AnswerSelected"
	ClientDisconnected      ClientMessageType = "ClientDisconnected"
)

// ClientEnvelope is the outer shape of every student->server frame: a type
// tag plus a raw payload decoded once the tag is known.
type ClientEnvelope struct {
	Type    ClientMessageType `json:"type"`
	Payload json.RawMessage   `json:"payload"`
}

// TryJoinRequestPayload asks whether a player id may proceed to Join.
type TryJoinRequestPayload struct {
	UUID uuid.UUID `json:"uuid"`
}

// PlayerData is the public identity a player presents when joining.
type PlayerData struct {
	UUID     uuid.UUID `json:"uuid"`
	Nickname string    `json:"nickname"`
	Color    string    `json:"color"`
}

// JoinRequestPayload commits a player's nickname/color after a successful
// TryJoin.
type JoinRequestPayload struct {
	PlayerData PlayerData `json:"player_data"`
}

// AnswerSelectedPayload is one player's answer to one question.
type AnswerSelectedPayload struct {
	PlayerUUID    uuid.UUID   `json:"player_uuid"`
	QuestionIndex int         `json:"question_index"`
	Answers       []uuid.UUID `json:"answers"`
}

// ParseClient decodes a raw client frame into its envelope and rejects
// unknown type tags; the payload stays raw. The caller switches on
// envelope.Type and decodes the payload with the matching Decode* method;
// ClientDisconnected has no payload.
func ParseClient(data []byte) (ClientEnvelope, error) {
	var env ClientEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return ClientEnvelope{}, fmt.Errorf("decoding client frame: %w", err)
	}
	switch env.Type {
	case ClientTryJoinRequest, ClientJoinRequest, ClientAnswerSelected, ClientDisconnected:
		return env, nil
	default:
		return ClientEnvelope{}, fmt.Errorf("unrecognized client message type %q", env.Type)
	}
}

// DecodeTryJoinRequest decodes the envelope's payload as TryJoinRequestPayload.
func (e ClientEnvelope) DecodeTryJoinRequest() (TryJoinRequestPayload, error) {
	var p TryJoinRequestPayload
	err := json.Unmarshal(e.Payload, &p)
	return p, err
}

// DecodeJoinRequest decodes the envelope's payload as JoinRequestPayload.
func (e ClientEnvelope) DecodeJoinRequest() (JoinRequestPayload, error) {
	var p JoinRequestPayload
	err := json.Unmarshal(e.Payload, &p)
	return p, err
}

// DecodeAnswerSelected decodes the envelope's payload as AnswerSelectedPayload.
func (e ClientEnvelope) DecodeAnswerSelected() (AnswerSelectedPayload, error) {
	var p AnswerSelectedPayload
	err := json.Unmarshal(e.Payload, &p)
	return p, err
}

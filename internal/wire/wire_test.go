package wire

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClient_RoundTripsTryJoinRequest(t *testing.T) {
	id := uuid.New()
	payload, err := json.Marshal(TryJoinRequestPayload{UUID: id})
	require.NoError(t, err)
	raw, err := json.Marshal(ClientEnvelope{Type: ClientTryJoinRequest, Payload: payload})
	require.NoError(t, err)

	env, err := ParseClient(raw)
	require.NoError(t, err)
	assert.Equal(t, ClientTryJoinRequest, env.Type)

	decoded, err := env.DecodeTryJoinRequest()
	require.NoError(t, err)
	assert.Equal(t, id, decoded.UUID)
}

func TestParseClient_RejectsUnknownType(t *testing.T) {
	raw := []byte(`{"type":"NotARealType","payload":{}}`)

	_, err := ParseClient(raw)

	assert.Error(t, err)
}

func TestParseTeacher_RoundTripsKick(t *testing.T) {
	id := uuid.New()
	payload, err := json.Marshal(TeacherKickPayload{PlayerUUID: id, Reason: "cheating"})
	require.NoError(t, err)
	raw, err := json.Marshal(TeacherEnvelope{Type: TeacherKick, Payload: payload})
	require.NoError(t, err)

	env, err := ParseTeacher(raw)
	require.NoError(t, err)

	decoded, err := env.DecodeKick()
	require.NoError(t, err)
	assert.Equal(t, id, decoded.PlayerUUID)
	assert.Equal(t, "cheating", decoded.Reason)
}

func TestCanJoin_AcceptedAndRefused(t *testing.T) {
	assert.True(t, Accepted().Yes)
	refused := Refused(ReasonLobbyLocked)
	assert.False(t, refused.Yes)
	assert.Equal(t, ReasonLobbyLocked, refused.Reason)
}

func TestMarshal_ProducesTaggedEnvelope(t *testing.T) {
	data, err := Marshal(ServerPlayersUpdate, PlayersUpdatePayload{Players: nil})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, string(ServerPlayersUpdate), decoded["type"])
}

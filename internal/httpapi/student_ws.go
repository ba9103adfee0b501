package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/joinquiz/server/internal/session"
	"github.com/joinquiz/server/internal/wire"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleStudentUpgrade upgrades a student connection and runs its pumps
// until it disconnects. A student session binds its PlayerId on its first
// TryJoinRequest; a second TryJoinRequest on the same session is itself
// cheating, regardless of the id it asserts. Later JoinRequest/
// AnswerSelected messages are checked against the bound id instead, so only
// a mismatched id on those is treated as cheating. Either case cuts the
// connection without the usual graceful close frame.
func (rt *Router) handleStudentUpgrade(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		rt.logger.Warn().Err(err).Msg("student websocket upgrade failed")
		return
	}

	sess := session.New(conn, session.RoleStudent, rt.logger)
	go sess.WriteLoop()

	bound := session.NewBoundID()
	var joinedID uuid.UUID
	var hasJoined bool

	sess.ReadLoop(func(message []byte) bool {
		env, err := wire.ParseClient(message)
		if err != nil {
			rt.logger.Debug().Err(err).Msg("dropping malformed student frame")
			sess.GracefulStop("bad frame")
			return true
		}

		switch env.Type {
		case wire.ClientTryJoinRequest:
			payload, err := env.DecodeTryJoinRequest()
			if err != nil {
				sess.GracefulStop("bad frame")
				return true
			}
			if bound.Bound() {
				rt.logger.Warn().Str("player", payload.UUID.String()).Msg("second TryJoinRequest on bound session, treating as cheating")
				sess.HardStop()
				return true
			}
			bound.Bind(payload.UUID)
			resp := rt.engine.TryJoin(payload.UUID)
			rt.sendStudent(sess, wire.ServerTryJoinResponse, resp)

		case wire.ClientJoinRequest:
			payload, err := env.DecodeJoinRequest()
			if err != nil {
				sess.GracefulStop("bad frame")
				return true
			}
			if bound.Bind(payload.PlayerData.UUID) {
				rt.logger.Warn().Str("player", payload.PlayerData.UUID.String()).Msg("id mismatch on JoinRequest, treating as cheating")
				sess.HardStop()
				return true
			}
			resp := rt.engine.Join(payload.PlayerData, sess)
			if resp.CanJoin.Yes {
				joinedID = payload.PlayerData.UUID
				hasJoined = true
			}
			rt.sendStudent(sess, wire.ServerJoinResponse, resp)

		case wire.ClientAnswerSelected:
			payload, err := env.DecodeAnswerSelected()
			if err != nil {
				sess.GracefulStop("bad frame")
				return true
			}
			if bound.Bind(payload.PlayerUUID) {
				rt.logger.Warn().Str("player", payload.PlayerUUID.String()).Msg("id mismatch on AnswerSelected, treating as cheating")
				sess.HardStop()
				return true
			}
			if err := rt.engine.AnswerSelected(payload.PlayerUUID, payload.QuestionIndex, payload.Answers); err != nil {
				rt.logger.Debug().Err(err).Str("player", payload.PlayerUUID.String()).Msg("answer rejected")
			}

		case wire.ClientDisconnected:
			return true
		}

		return false
	})

	if hasJoined {
		rt.engine.Disconnect(joinedID)
	}
}

func (rt *Router) sendStudent(sess *session.Session, messageType wire.ServerMessageType, payload any) {
	data, err := wire.Marshal(messageType, payload)
	if err != nil {
		rt.logger.Error().Err(err).Msg("failed to marshal response")
		return
	}
	sess.Send(data)
}

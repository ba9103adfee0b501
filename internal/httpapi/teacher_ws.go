package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joinquiz/server/internal/session"
	"github.com/joinquiz/server/internal/wire"
)

// handleTeacherUpgrade validates the control-socket token (minted by
// /teacher/login) and, once upgraded, registers the session as the lobby's
// teacher and dispatches its commands.
func (rt *Router) handleTeacherUpgrade(c *gin.Context) {
	token := c.Query("token")
	if err := rt.gate.ValidateToken(token); err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		rt.logger.Warn().Err(err).Msg("teacher websocket upgrade failed")
		return
	}

	sess := session.New(conn, session.RoleTeacher, rt.logger)
	go sess.WriteLoop()

	rt.engine.RegisterTeacher(sess)

	sess.ReadLoop(func(message []byte) bool {
		env, err := wire.ParseTeacher(message)
		if err != nil {
			rt.logger.Debug().Err(err).Msg("dropping malformed teacher frame")
			sess.GracefulStop("bad frame")
			return true
		}

		switch env.Type {
		case wire.TeacherStartQuestion:
			if err := rt.engine.StartQuestion(); err != nil {
				rt.logger.Warn().Err(err).Msg("StartQuestion rejected")
			}

		case wire.TeacherEndQuestion:
			payload, err := env.DecodeEndQuestion()
			if err != nil {
				sess.GracefulStop("bad frame")
				return true
			}
			if err := rt.engine.EndQuestion(payload.Index); err != nil {
				rt.logger.Warn().Err(err).Msg("EndQuestion rejected")
			}

		case wire.TeacherSwitchToLeaderboard:
			if err := rt.engine.SwitchToLeaderboard(); err != nil {
				rt.logger.Warn().Err(err).Msg("SwitchToLeaderboard rejected")
			}

		case wire.TeacherKick:
			payload, err := env.DecodeKick()
			if err != nil {
				sess.GracefulStop("bad frame")
				return true
			}
			if err := rt.engine.Kick(payload.PlayerUUID, payload.Reason); err != nil {
				rt.logger.Warn().Err(err).Msg("Kick rejected")
			}

		case wire.TeacherSetLock:
			payload, err := env.DecodeSetLock()
			if err != nil {
				sess.GracefulStop("bad frame")
				return true
			}
			rt.engine.SetLock(payload.Locked)

		case wire.TeacherHardStop:
			rt.engine.HardStop()
			return true
		}

		return false
	})

	rt.engine.DisconnectTeacher(sess)
}

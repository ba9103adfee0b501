package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joinquiz/server/internal/teacherauth"
	"github.com/joinquiz/server/pkg/response"
)

type teacherLoginRequest struct {
	Passphrase string `json:"passphrase" binding:"required"`
}

type teacherLoginData struct {
	Token string `json:"token"`
}

// handleTeacherLogin exchanges the session passphrase for a control-socket
// JWT, the first leg of the teacher's two-step connection: login here, then
// present the token as a query parameter on the /ws/teacher upgrade.
func (rt *Router) handleTeacherLogin(c *gin.Context) {
	var req teacherLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WithError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	token, err := rt.gate.Authenticate(req.Passphrase)
	if err != nil {
		if errors.Is(err, teacherauth.ErrWrongPassphrase) {
			response.WithError(c, http.StatusUnauthorized, "Authentication failed", "wrong passphrase")
			return
		}
		response.WithError(c, http.StatusInternalServerError, "Authentication failed", err.Error())
		return
	}

	response.WithSuccess(c, http.StatusOK, response.MessageAuthenticated, teacherLoginData{Token: token})
}

// Package httpapi exposes the server's entire external surface: a teacher
// login endpoint and two WebSocket upgrade endpoints (student, teacher),
// wired the way the teacher's Gin + CORS router was, minus the REST CRUD
// surface a single fixed-quiz session has no use for.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joinquiz/server/internal/lobby"
	"github.com/joinquiz/server/internal/teacherauth"
	"github.com/rs/zerolog"
)

// Router builds the Gin engine serving /teacher/login, /ws/student and
// /ws/teacher.
type Router struct {
	engine *lobby.Engine
	gate   *teacherauth.Gate
	logger zerolog.Logger
}

// NewRouter wires a Router against a running lobby Engine and teacher gate.
func NewRouter(engine *lobby.Engine, gate *teacherauth.Gate, logger zerolog.Logger) *Router {
	return &Router{engine: engine, gate: gate, logger: logger}
}

// Handler returns the configured *gin.Engine ready to serve.
func (rt *Router) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.POST("/teacher/login", rt.handleTeacherLogin)
	r.GET("/ws/student", rt.handleStudentUpgrade)
	r.GET("/ws/teacher", rt.handleTeacherUpgrade)

	return r
}

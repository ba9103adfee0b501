// Package session adapts one WebSocket connection (student or teacher) to
// the lobby engine's SessionHandle interface: a ReadLoop/WriteLoop pair in
// the same shape as the teacher's hub/client split, but driving a single
// lobby.Engine instead of a multi-quiz Hub.
package session

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// writeWait bounds how long a single frame write may take.
	writeWait = 10 * time.Second
	// pongWait is how long we tolerate silence before considering a peer
	// dead. Any inbound frame (message or pong) resets this deadline.
	pongWait = 7 * time.Second
	// pingPeriod must stay below pongWait so a ping always has time to
	// provoke a pong before the read deadline expires.
	pingPeriod = 5 * time.Second
	// maxMessageSize caps a single inbound frame.
	maxMessageSize = 8192
	// sendBuffer bounds how many outbound frames queue before the session
	// is considered unresponsive and dropped.
	sendBuffer = 32
)

var newline = []byte{'\n'}

// Role distinguishes a student session from the single teacher session.
type Role int

const (
	RoleStudent Role = iota
	RoleTeacher
)

// Session owns one WebSocket connection's read and write pumps. It
// implements lobby.SessionHandle so the engine can address it without
// knowing about WebSockets.
type Session struct {
	conn   *websocket.Conn
	send   chan []byte
	role   Role
	logger zerolog.Logger

	closeOnce closer
	// closeFrame is the close payload WriteLoop sends once send is closed;
	// nil unless GracefulStop set it.
	closeFrame []byte
}

// closer guards against double-closing send, which would panic.
type closer struct {
	done bool
}

func (c *closer) closeOnceFunc(f func()) {
	if c.done {
		return
	}
	c.done = true
	f()
}

// New wraps an established WebSocket connection.
func New(conn *websocket.Conn, role Role, logger zerolog.Logger) *Session {
	return &Session{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		role:   role,
		logger: logger,
	}
}

// Send implements lobby.SessionHandle. It never blocks: a session whose
// outbound queue is already full is unresponsive, and gets its connection
// closed rather than stalling the engine that called Send.
func (s *Session) Send(data []byte) {
	select {
	case s.send <- data:
	default:
		s.logger.Warn().Msg("session outbound queue full, closing connection")
		s.closeSendChannel()
	}
}

// GracefulStop implements lobby.SessionHandle: it queues a close frame
// carrying reason and lets WriteLoop deliver it before tearing down.
func (s *Session) GracefulStop(reason string) {
	s.closeOnce.closeOnceFunc(func() {
		s.closeFrame = websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
		close(s.send)
	})
}

// HardStop closes the connection immediately without a graceful close frame,
// used when a session is caught cheating.
func (s *Session) HardStop() {
	s.closeSendChannel()
	_ = s.conn.Close()
}

func (s *Session) closeSendChannel() {
	s.closeOnce.closeOnceFunc(func() {
		close(s.send)
	})
}

// ReadLoop runs the inbound pump: it keeps reading frames and invoking
// handle for each one until the connection errs out or handle asks to stop.
// Callers run this in its own goroutine and should follow it with cleanup
// (e.g. telling the engine the player disconnected).
func (s *Session) ReadLoop(handle func(message []byte) (stop bool)) {
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			break
		}
		// Any inbound frame, not just pongs, disarms the liveness timer:
		// an actively chatty client is alive even between pings.
		s.conn.SetReadDeadline(time.Now().Add(pongWait))

		message = bytes.TrimSpace(message)
		if len(message) == 0 {
			continue
		}
		if handle(message) {
			break
		}
	}
}

// WriteLoop runs the outbound pump: it drains send onto the wire and pings
// on pingPeriod until send is closed or a write fails.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer s.conn.Close()

	for {
		select {
		case message, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, s.closeFrame)
				return
			}
			w, err := s.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = w.Write(message)

			n := len(s.send)
			for i := 0; i < n; i++ {
				_, _ = w.Write(newline)
				_, _ = w.Write(<-s.send)
			}
			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// BoundID tracks the PlayerId a student session first presented in
// TryJoinRequest, so later messages claiming a different id can be rejected
// as cheating rather than silently trusted.
type BoundID struct {
	id  uuid.UUID
	set bool
}

// NewBoundID returns a BoundID with nothing bound yet.
func NewBoundID() *BoundID {
	return &BoundID{}
}

// Bound reports whether an id has already been bound. A repeat
// TryJoinRequest on an already-bound session is a cheat regardless of
// whether the asserted id matches, unlike Bind's mismatch-only check used
// for later JoinRequest/AnswerSelected messages.
func (b *BoundID) Bound() bool {
	return b.set
}

// Bind binds id on the first call and reports whether a later call
// presents a different id.
func (b *BoundID) Bind(id uuid.UUID) (mismatch bool) {
	if !b.set {
		b.id = id
		b.set = true
		return false
	}
	return b.id != id
}

// Package teacherauth gates the teacher control connection: a shared
// passphrase (hashed with bcrypt, following the same cost-factor defaults
// the ecosystem's x/crypto users rely on) exchanged once for a JWT that
// authorizes the rest of the control session.
package teacherauth

import (
	"errors"

	"github.com/joinquiz/server/internal/config"
	"github.com/joinquiz/server/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

// ErrWrongPassphrase is returned when the supplied passphrase does not match
// the configured one.
var ErrWrongPassphrase = errors.New("teacherauth: wrong passphrase")

// Gate checks a presented passphrase against the configured one and, on
// success, mints a control-connection JWT.
type Gate struct {
	hash       []byte
	jwtManager *auth.JWTManager
}

// NewGate builds a Gate from config. If cfg.PassphraseIsHashed is false, the
// plaintext passphrase is hashed once here with bcrypt's default cost.
func NewGate(cfg config.TeacherConfig, jwtManager *auth.JWTManager) (*Gate, error) {
	var hash []byte
	if cfg.PassphraseIsHashed {
		hash = []byte(cfg.Passphrase)
	} else {
		h, err := bcrypt.GenerateFromPassword([]byte(cfg.Passphrase), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = h
	}
	return &Gate{hash: hash, jwtManager: jwtManager}, nil
}

// Authenticate checks passphrase and, if correct, returns a fresh token.
func (g *Gate) Authenticate(passphrase string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(passphrase)); err != nil {
		return "", ErrWrongPassphrase
	}
	return g.jwtManager.GenerateToken()
}

// ValidateToken checks a token presented on the control WebSocket upgrade.
func (g *Gate) ValidateToken(token string) error {
	_, err := g.jwtManager.ValidateToken(token)
	return err
}

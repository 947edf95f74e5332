// Package session persists the operator's tokens and user projection to a
// file and rehydrates them at startup. It is an injected store, not an
// ambient singleton, so tests can run isolated sessions.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/HerodesVe/fsr-go/internal/models"
)

// Session is the durable state written under the store's path.
type Session struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

// Store holds the current session and mirrors every change to disk.
// A zero path keeps the session in memory only.
type Store struct {
	mu   sync.Mutex
	path string
	cur  *Session
}

// Open rehydrates the session from path. A missing file yields an empty
// store. A session whose access token is malformed or already expired by
// its embedded expiry claim is discarded immediately, forcing a new login.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.removeFile()
		return s, nil
	}
	if !tokenAlive(sess.AccessToken) {
		s.removeFile()
		return s, nil
	}
	s.cur = &sess
	return s, nil
}

// Set stores the session after a successful login and persists it.
func (s *Store) Set(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = &sess
	return s.writeFile(&sess)
}

// Clear drops the session and removes the persisted file.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = nil
	s.removeFile()
}

// Current returns the active session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return nil
	}
	cp := *s.cur
	return &cp
}

// AccessToken implements api.TokenSource. It returns "" once the stored
// token has passed its expiry claim, so an expired session never reaches
// the wire.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return ""
	}
	if !tokenAlive(s.cur.AccessToken) {
		s.cur = nil
		s.removeFile()
		return ""
	}
	return s.cur.AccessToken
}

func (s *Store) writeFile(sess *Session) error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

func (s *Store) removeFile() {
	if s.path != "" {
		os.Remove(s.path)
	}
}

// tokenAlive parses the token without verifying its signature (the secret
// lives on the backend) and checks only the exp claim.
func tokenAlive(tokenStr string) bool {
	if tokenStr == "" {
		return false
	}
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenStr, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(time.Now())
}

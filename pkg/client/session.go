/*
 * Copyright 2025 Skye Pulse.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/skyepulse/buildmonitor/pkg/logger"
	"github.com/skyepulse/buildmonitor/pkg/models"
)

const (
	sessionFilePerms = 0o600
	sessionDirPerms  = 0o700
)

// SessionStore is the single process-wide holder for the authenticated
// session. It is created empty at startup, loaded once from disk, and
// mutated only by login, logout and the unauthorized-response teardown.
type SessionStore struct {
	mu      sync.RWMutex
	path    string
	current *models.Session
	logger  logger.Logger
}

// DefaultSessionPath places the session file under the user config dir.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve user config dir: %w", err)
	}

	return filepath.Join(dir, "buildmon", "session.json"), nil
}

// NewSessionStore creates a store backed by the given file path. The
// file is not touched until Load or Set is called.
func NewSessionStore(path string, log logger.Logger) *SessionStore {
	if log == nil {
		log = logger.NewNop()
	}

	return &SessionStore{path: path, logger: log}
}

// Load reads the persisted session, if any. A missing file just means
// no one is logged in.
func (s *SessionStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("failed to read session file: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A corrupt session file is treated as logged out.
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Discarding unreadable session file")
		return nil
	}

	if sess.Token == "" {
		return nil
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	return nil
}

// Current returns a copy of the held session, or nil when logged out.
func (s *SessionStore) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}

	copied := *s.current

	return &copied
}

// Token returns the bearer token, or "" when logged out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}

	return s.current.Token
}

// Set replaces the held session and persists it.
func (s *SessionStore) Set(sess *models.Session) error {
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), sessionDirPerms); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	if err := os.WriteFile(s.path, data, sessionFilePerms); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Clear drops the held session and removes the persisted copy. Clearing
// an already-empty store is harmless.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// SessionFromLogin builds a session from a login response. The token's
// exp and role claims are decoded without signature verification, purely
// to let the client show expiry locally; the backend still enforces
// everything.
func SessionFromLogin(resp *models.LoginResponse) *models.Session {
	sess := &models.Session{
		Token: resp.Token,
		Role:  resp.User.Role,
		User:  resp.User,
	}

	claims := jwt.MapClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(resp.Token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			sess.ExpiresAt = exp.Time
		}

		if sess.Role == "" {
			if role, ok := claims["role"].(string); ok {
				sess.Role = models.Role(role)
			}
		}
	}

	// Normalize the zero value so Expired stays meaningful.
	if sess.ExpiresAt.Equal(time.Unix(0, 0)) {
		sess.ExpiresAt = time.Time{}
	}

	return sess
}

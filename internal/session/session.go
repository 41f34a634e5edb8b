// Package session holds the authenticated user and persisted token.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/covtrace/tracetriage/internal/api"
	"github.com/covtrace/tracetriage/internal/model"
)

// tokenFile is the persisted shape of the bearer token. Plain JSON,
// versionless; a schema change invalidates the session and the user
// logs in again.
type tokenFile struct {
	AccessToken string `json:"access_token"`
}

// Store is the single source of truth for who is logged in. It owns the
// persisted token and the forced-logout channel; nothing else reads or
// writes either.
type Store struct {
	client    *api.Client
	tokenPath string
	log       *zap.Logger

	mu   sync.Mutex
	user *model.User

	forced chan struct{}
}

// New creates a session store bound to the given client. The store
// installs itself as the client's unauthorized hook, so any 401 on an
// authenticated call anywhere in the program clears the session.
func New(client *api.Client, tokenPath string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		client:    client,
		tokenPath: tokenPath,
		log:       log,
		forced:    make(chan struct{}, 1),
	}
	client.SetUnauthorizedHook(s.handleUnauthorized)
	return s
}

// Current returns the authenticated user, nil if logged out.
func (s *Store) Current() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Role returns the current role, RoleViewer when logged out.
func (s *Store) Role() model.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return model.RoleViewer
	}
	return s.user.Role
}

// IsAdmin reports whether the current user is an admin.
func (s *Store) IsAdmin() bool { return s.Role() == model.RoleAdmin }

// IsReviewer reports whether the current user is a reviewer.
func (s *Store) IsReviewer() bool { return s.Role() == model.RoleReviewer }

// ForcedLogout returns the channel signaled when the server invalidates
// the session mid-flight. The TUI selects on it to bail back to login.
func (s *Store) ForcedLogout() <-chan struct{} {
	return s.forced
}

// Login exchanges credentials for a token, persists it, and fetches the
// user. On any failure no token is retained.
func (s *Store) Login(ctx context.Context, email, password string) error {
	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.client.SetToken(token)
	user, err := s.client.Me(ctx)
	if err != nil {
		s.client.SetToken("")
		return err
	}

	if err := s.saveToken(token); err != nil {
		s.log.Warn("persisting token failed", zap.Error(err))
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.log.Info("logged in", zap.String("user", user.Email), zap.String("role", string(user.Role)))
	return nil
}

// Register creates an account and then performs the login flow.
// ValidationError from the server is returned as-is.
func (s *Store) Register(ctx context.Context, email, password, fullName string) error {
	if err := s.client.Register(ctx, email, password, fullName); err != nil {
		return err
	}
	return s.Login(ctx, email, password)
}

// Logout clears the persisted token and in-memory user synchronously.
// No server call is made.
func (s *Store) Logout() {
	s.client.SetToken("")
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	if err := os.Remove(s.tokenPath); err != nil && !os.IsNotExist(err) {
		s.log.Warn("removing token file failed", zap.Error(err))
	}
}

// Bootstrap restores a persisted session on startup. A stored token that
// the server rejects is discarded silently; this is the only path that
// invalidates a session without explicit user action.
func (s *Store) Bootstrap(ctx context.Context) error {
	token, err := s.loadToken()
	if err != nil || token == "" {
		return nil
	}

	s.client.SetToken(token)
	user, err := s.client.Me(ctx)
	if err != nil {
		s.client.SetToken("")
		if rmErr := os.Remove(s.tokenPath); rmErr != nil && !os.IsNotExist(rmErr) {
			s.log.Warn("removing stale token failed", zap.Error(rmErr))
		}
		var authErr *model.AuthError
		if errors.As(err, &authErr) {
			s.log.Info("stored token rejected, cleared session")
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// RequireLogin returns an error suitable for protected commands when no
// session exists.
func (s *Store) RequireLogin() error {
	if s.Current() == nil {
		return fmt.Errorf("not logged in; run 'tracetriage login' first")
	}
	return nil
}

func (s *Store) handleUnauthorized() {
	s.mu.Lock()
	hadUser := s.user != nil
	s.user = nil
	s.mu.Unlock()

	s.client.SetToken("")
	if err := os.Remove(s.tokenPath); err != nil && !os.IsNotExist(err) {
		s.log.Warn("removing token file failed", zap.Error(err))
	}

	if hadUser {
		s.log.Info("session invalidated by server")
		select {
		case s.forced <- struct{}{}:
		default:
		}
	}
}

func (s *Store) saveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.tokenPath), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(tokenFile{AccessToken: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.tokenPath, data, 0o600)
}

func (s *Store) loadToken() (string, error) {
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return "", err
	}
	return tf.AccessToken, nil
}

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/omnipos-terminal/internal/api"
	"github.com/fekuna/omnipos-terminal/internal/model"
	"github.com/fekuna/omnipos-terminal/internal/session"
	"github.com/fekuna/omnipos-terminal/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Fixed keys under which the session persists across restarts.
const (
	tokenKey = "token"
	userKey  = "user"
)

var ErrSessionExpired = errors.New("session expired")

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Service owns the login/logout lifecycle: it persists the credential and
// user profile locally and keeps the API client's bearer token in sync.
type Service struct {
	client *api.Client
	store  *session.Store
	logger logger.ZapLogger
	now    func() time.Time
}

func NewService(client *api.Client, store *session.Store, log logger.ZapLogger) *Service {
	return &Service{
		client: client,
		store:  store,
		logger: log,
		now:    time.Now,
	}
}

type loginPayload struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (s *Service) Login(ctx context.Context, creds Credentials) (*model.User, error) {
	var payload loginPayload
	if err := s.client.Post(ctx, "/auth/login", creds, &payload); err != nil {
		return nil, err
	}

	userJSON, err := json.Marshal(payload.User)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(tokenKey, payload.Token); err != nil {
		return nil, err
	}
	if err := s.store.Set(userKey, string(userJSON)); err != nil {
		return nil, err
	}
	s.client.SetToken(payload.Token)

	s.logger.Info("login successful", zap.String("user", payload.User.Username))
	return &payload.User, nil
}

// Logout tells the server best-effort and always clears local state: the
// terminal must come out logged out even with the server unreachable.
func (s *Service) Logout(ctx context.Context) {
	if err := s.client.Post(ctx, "/auth/logout", nil, nil); err != nil {
		s.logger.Warn("server logout failed, clearing local session anyway", zap.Error(err))
	}
	s.clearLocal()
}

func (s *Service) clearLocal() {
	if err := s.store.Delete(tokenKey); err != nil {
		s.logger.Error("failed to remove stored token", zap.Error(err))
	}
	if err := s.store.Delete(userKey); err != nil {
		s.logger.Error("failed to remove stored user", zap.Error(err))
	}
	s.client.ClearToken()
}

// IsAuthenticated restores the persisted session if one exists and its
// token has not expired. On success the client's bearer token is set.
func (s *Service) IsAuthenticated() bool {
	token, ok, err := s.store.Get(tokenKey)
	if err != nil || !ok || token == "" {
		return false
	}
	if _, uok, err := s.store.Get(userKey); err != nil || !uok {
		return false
	}

	if expired, err := tokenExpired(token, s.now()); err != nil || expired {
		s.logger.Info("stored token expired, clearing session")
		s.clearLocal()
		return false
	}

	s.client.SetToken(token)
	return true
}

// tokenExpired checks the JWT exp claim without verifying the signature;
// the server is the authority on validity, this only avoids presenting a
// token already known to be dead.
func tokenExpired(token string, now time.Time) (bool, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true, err
	}
	if exp == nil {
		return false, nil
	}
	return exp.Before(now), nil
}

func (s *Service) CurrentUser() (*model.User, bool) {
	raw, ok, err := s.store.Get(userKey)
	if err != nil || !ok {
		return nil, false
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, false
	}
	return &u, true
}

func (s *Service) Token() (string, bool) {
	token, ok, err := s.store.Get(tokenKey)
	if err != nil {
		return "", false
	}
	return token, ok
}

func (s *Service) ChangePassword(ctx context.Context, current, updated string) error {
	body := map[string]string{
		"current_password": current,
		"new_password":     updated,
	}
	return s.client.Post(ctx, "/auth/change-password", body, nil)
}

// Profile fetches the authoritative user record and refreshes the persisted
// copy. A 401 means the stored session is dead; it is cleared.
func (s *Service) Profile(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := s.client.Get(ctx, "/auth/profile", &u); err != nil {
		var appErr *api.ApplicationError
		if errors.As(err, &appErr) && appErr.Status == 401 {
			s.clearLocal()
			return nil, ErrSessionExpired
		}
		return nil, err
	}

	if userJSON, err := json.Marshal(u); err == nil {
		if err := s.store.Set(userKey, string(userJSON)); err != nil {
			s.logger.Error("failed to persist refreshed profile", zap.Error(err))
		}
	}
	return &u, nil
}

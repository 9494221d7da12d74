package user

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/kwyt0087/AI-employee-takes-leave/internal"
)

// SessionStore is the slice of the local store this container touches.
type SessionStore interface {
	SetToken(token string, userID int64) error
	SaveUser(userID int64, payload []byte) error
	User() ([]byte, bool)
	UserID() int64
	Destroy() error
}

// Service is the user state container: the cached profile plus the
// loading/error pair, and the actions that mutate them. Actions are not
// serialized against each other; the mutex only keeps snapshot reads safe.
type Service struct {
	api      API
	sessions SessionStore
	logger   *slog.Logger

	mu      sync.Mutex
	current *User
	loading bool
	err     string
}

func NewService(api API, sessions SessionStore, logger *slog.Logger) *Service {
	return &Service{api: api, sessions: sessions, logger: logger}
}

func (s *Service) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *Service) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Service) fail(err error, fallback string) error {
	s.mu.Lock()
	s.err = internal.ErrorDetail(err, fallback)
	s.mu.Unlock()
	return err
}

// Loading reports whether an action is in flight.
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last action's error message, "" when the last action
// succeeded.
func (s *Service) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Current returns the cached profile, nil when logged out.
func (s *Service) Current() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Login authenticates, persists the token, then pulls profile and
// annual-leave data and merges them into one persisted record. There is no
// compensation for the later steps: if the profile fetch fails after the
// token was stored, the token stays.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*LoginResult, error) {
	s.begin()
	defer s.finish()

	result, err := s.api.Login(ctx, dto)
	if err != nil {
		return nil, s.fail(err, "login failed")
	}

	if err := s.sessions.SetToken(result.AccessToken, result.UserID); err != nil {
		return nil, s.fail(err, "login failed")
	}

	if _, err := s.FetchUser(ctx, result.UserID); err != nil {
		return nil, err
	}

	return result, nil
}

// FetchUser loads the profile and the annual-leave record, merges them and
// persists the result as the cached user snapshot.
func (s *Service) FetchUser(ctx context.Context, userID int64) (*User, error) {
	s.begin()
	defer s.finish()

	if userID == 0 {
		userID = s.sessions.UserID()
	}

	profile, err := s.api.GetUser(ctx, userID)
	if err != nil {
		return nil, s.fail(err, "could not load user profile")
	}

	annualLeave, err := s.api.GetAnnualLeave(ctx, userID)
	if err != nil {
		return nil, s.fail(err, "could not load user profile")
	}
	profile.AnnualLeave = annualLeave

	payload, err := json.Marshal(profile)
	if err != nil {
		return nil, s.fail(err, "could not load user profile")
	}
	if err := s.sessions.SaveUser(userID, payload); err != nil {
		s.logger.Error("persist user snapshot", "error", err)
	}

	s.mu.Lock()
	s.current = profile
	s.mu.Unlock()
	return profile, nil
}

// Init restores the cached profile from the local store, discarding an
// unreadable snapshot.
func (s *Service) Init() {
	payload, ok := s.sessions.User()
	if !ok {
		return
	}
	var u User
	if err := json.Unmarshal(payload, &u); err != nil {
		s.logger.Error("parse cached user snapshot", "error", err)
		if err := s.sessions.Destroy(); err != nil {
			s.logger.Error("destroy session", "error", err)
		}
		return
	}
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()
}

// Logout destroys the persisted session and drops the cached profile.
func (s *Service) Logout() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return s.sessions.Destroy()
}

// UpdateProfile submits profile edits and refreshes the snapshot.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, dto UpdateProfileDTO) (*User, error) {
	s.begin()
	defer s.finish()

	if _, err := s.api.UpdateUser(ctx, userID, dto); err != nil {
		return nil, s.fail(err, "could not update profile")
	}
	return s.FetchUser(ctx, userID)
}

// ChangePassword submits a password change. The session is untouched.
func (s *Service) ChangePassword(ctx context.Context, userID int64, dto ChangePasswordDTO) error {
	s.begin()
	defer s.finish()

	if err := s.api.ChangePassword(ctx, userID, dto); err != nil {
		return s.fail(err, "could not change password")
	}
	return nil
}

// FetchLeaveStats loads the user's leave statistics.
func (s *Service) FetchLeaveStats(ctx context.Context, userID int64) (*LeaveStats, error) {
	s.begin()
	defer s.finish()

	stats, err := s.api.GetLeaveStats(ctx, userID)
	if err != nil {
		return nil, s.fail(err, "could not load leave statistics")
	}
	return stats, nil
}

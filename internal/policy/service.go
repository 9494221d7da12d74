package policy

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kwyt0087/AI-employee-takes-leave/internal"
)

// Service is the policy state container: cached list, current detail and
// the loading/error pair.
type Service struct {
	api    API
	logger *slog.Logger

	mu       sync.Mutex
	policies []Policy
	current  *Policy
	loading  bool
	err      string
}

func NewService(api API, logger *slog.Logger) *Service {
	return &Service{api: api, logger: logger}
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

func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Service) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Policies returns the cached list.
func (s *Service) Policies() []Policy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policies
}

// Current returns the policy detail last fetched.
func (s *Service) Current() *Policy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// FetchAll loads the policy list.
func (s *Service) FetchAll(ctx context.Context) ([]Policy, error) {
	s.begin()
	defer s.finish()

	policies, err := s.api.List(ctx)
	if err != nil {
		return nil, s.fail(err, "could not load policies")
	}

	s.mu.Lock()
	s.policies = policies
	s.mu.Unlock()
	return policies, nil
}

// FetchDetail loads one policy.
func (s *Service) FetchDetail(ctx context.Context, policyID int64) (*Policy, error) {
	s.begin()
	defer s.finish()

	p, err := s.api.Get(ctx, policyID)
	if err != nil {
		return nil, s.fail(err, "could not load policy")
	}

	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	return p, nil
}

// Upload sends a policy document, then refreshes the list.
func (s *Service) Upload(ctx context.Context, dto UploadDTO) (*UploadResult, error) {
	s.begin()
	defer s.finish()

	result, err := s.api.Upload(ctx, dto)
	if err != nil {
		return nil, s.fail(err, "could not upload policy")
	}

	if _, err := s.FetchAll(ctx); err != nil {
		s.logger.Warn("refresh policies after upload", "error", err)
	}
	return result, nil
}

// Update edits policy metadata, then refreshes the list.
func (s *Service) Update(ctx context.Context, policyID int64, dto UpdateDTO) (*Policy, error) {
	s.begin()
	defer s.finish()

	p, err := s.api.Update(ctx, policyID, dto)
	if err != nil {
		return nil, s.fail(err, "could not update policy")
	}

	s.mu.Lock()
	s.current = p
	s.mu.Unlock()

	if _, err := s.FetchAll(ctx); err != nil {
		s.logger.Warn("refresh policies after update", "error", err)
	}
	return p, nil
}

// Delete removes a policy, then refreshes the list.
func (s *Service) Delete(ctx context.Context, policyID int64) error {
	s.begin()
	defer s.finish()

	if err := s.api.Delete(ctx, policyID); err != nil {
		return s.fail(err, "could not delete policy")
	}

	if _, err := s.FetchAll(ctx); err != nil {
		s.logger.Warn("refresh policies after delete", "error", err)
	}
	return nil
}

package leave

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kwyt0087/AI-employee-takes-leave/internal"
)

// Service is the leave state container: types cache, request list, last
// recommendation and current detail, plus loading/error. Snapshot fields
// are mutex-guarded for safe reads; actions run unserialized and the last
// writer wins.
type Service struct {
	api    API
	logger *slog.Logger

	mu              sync.Mutex
	types           []LeaveType
	requests        []LeaveRequest
	recommendations *RecommendationResult
	current         *LeaveRequest
	loading         bool
	err             string
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

// Types returns the cached leave types.
func (s *Service) Types() []LeaveType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.types
}

// Requests returns the cached leave request list.
func (s *Service) Requests() []LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// Recommendations returns the last fetched recommendation, nil when none.
func (s *Service) Recommendations() *RecommendationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recommendations
}

// Current returns the leave request detail last fetched.
func (s *Service) Current() *LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// TypeName resolves a leave type id against the cache.
func (s *Service) TypeName(typeID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.types {
		if t.ID == typeID {
			return t.Name
		}
	}
	return "unknown type"
}

// FetchTypes loads the leave types, once per session: a warm cache is
// returned without a round trip.
func (s *Service) FetchTypes(ctx context.Context) ([]LeaveType, error) {
	s.mu.Lock()
	if len(s.types) > 0 {
		cached := s.types
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	s.begin()
	defer s.finish()

	types, err := s.api.GetLeaveTypes(ctx)
	if err != nil {
		return nil, s.fail(err, "could not load leave types")
	}

	s.mu.Lock()
	s.types = types
	s.mu.Unlock()
	return types, nil
}

// FetchRecommendations asks the backend for leave plans. The previous
// recommendation is cleared before the call, so a failure leaves none.
func (s *Service) FetchRecommendations(ctx context.Context, dto RecommendationDTO) (*RecommendationResult, error) {
	s.begin()
	defer s.finish()

	s.mu.Lock()
	s.recommendations = nil
	s.mu.Unlock()

	result, err := s.api.GetRecommendations(ctx, dto)
	if err != nil {
		return nil, s.fail(err, "could not load leave recommendations")
	}

	s.mu.Lock()
	s.recommendations = result
	s.mu.Unlock()
	return result, nil
}

// Apply submits a leave application. The request list is refreshed only
// when the response says "success" in so many words; any other body leaves
// the list stale.
func (s *Service) Apply(ctx context.Context, dto ApplyLeaveDTO) (*ApplyResult, error) {
	s.begin()
	defer s.finish()

	result, err := s.api.Apply(ctx, dto)
	if err != nil {
		return nil, s.fail(err, "could not submit leave application")
	}

	if result.Status == "success" {
		if _, err := s.FetchRequests(ctx, dto.UserID); err != nil {
			s.logger.Warn("refresh leave requests after apply", "error", err)
		}
	}
	return result, nil
}

// FetchRequests loads the user's leave records.
func (s *Service) FetchRequests(ctx context.Context, userID int64) ([]LeaveRequest, error) {
	s.begin()
	defer s.finish()

	requests, err := s.api.GetUserRequests(ctx, userID)
	if err != nil {
		return nil, s.fail(err, "could not load leave requests")
	}

	s.mu.Lock()
	s.requests = requests
	s.mu.Unlock()
	return requests, nil
}

// FetchDetail loads one leave request.
func (s *Service) FetchDetail(ctx context.Context, leaveID int64) (*LeaveRequest, error) {
	s.begin()
	defer s.finish()

	detail, err := s.api.GetDetail(ctx, leaveID)
	if err != nil {
		return nil, s.fail(err, "could not load leave detail")
	}

	s.mu.Lock()
	s.current = detail
	s.mu.Unlock()
	return detail, nil
}

// Cancel asks the backend to cancel a request, then re-fetches the detail:
// the status transition is the server's to compute.
func (s *Service) Cancel(ctx context.Context, leaveID int64) (*LeaveRequest, error) {
	s.begin()
	defer s.finish()

	if err := s.api.Cancel(ctx, leaveID); err != nil {
		return nil, s.fail(err, "could not cancel leave request")
	}
	return s.FetchDetail(ctx, leaveID)
}

// Approve submits an approval decision, then re-fetches the detail.
func (s *Service) Approve(ctx context.Context, leaveID int64, dto ApproveDTO) (*LeaveRequest, error) {
	s.begin()
	defer s.finish()

	if err := s.api.Approve(ctx, leaveID, dto); err != nil {
		return nil, s.fail(err, "could not approve leave request")
	}
	return s.FetchDetail(ctx, leaveID)
}

// ClearRecommendations drops the cached recommendation.
func (s *Service) ClearRecommendations() {
	s.mu.Lock()
	s.recommendations = nil
	s.mu.Unlock()
}

// ClearCurrent drops the cached detail.
func (s *Service) ClearCurrent() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

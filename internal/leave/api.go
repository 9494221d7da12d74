package leave

import (
	"context"
	"fmt"

	"github.com/kwyt0087/AI-employee-takes-leave/internal/transport"
)

// API is the leave resource surface.
type API interface {
	GetLeaveTypes(ctx context.Context) ([]LeaveType, error)
	GetRecommendations(ctx context.Context, dto RecommendationDTO) (*RecommendationResult, error)
	Apply(ctx context.Context, dto ApplyLeaveDTO) (*ApplyResult, error)
	GetUserRequests(ctx context.Context, userID int64) ([]LeaveRequest, error)
	GetDetail(ctx context.Context, leaveID int64) (*LeaveRequest, error)
	Cancel(ctx context.Context, leaveID int64) error
	Approve(ctx context.Context, leaveID int64, dto ApproveDTO) error
}

type apiClient struct {
	http *transport.Client
}

func NewAPI(http *transport.Client) API {
	return &apiClient{http: http}
}

func (c *apiClient) GetLeaveTypes(ctx context.Context) ([]LeaveType, error) {
	var types []LeaveType
	if err := c.http.Get(ctx, "/api/leaves/types", &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (c *apiClient) GetRecommendations(ctx context.Context, dto RecommendationDTO) (*RecommendationResult, error) {
	var result RecommendationResult
	if err := c.http.Post(ctx, "/api/leaves/recommendations", dto, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *apiClient) Apply(ctx context.Context, dto ApplyLeaveDTO) (*ApplyResult, error) {
	var result ApplyResult
	if err := c.http.Post(ctx, "/api/leaves/apply", dto, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *apiClient) GetUserRequests(ctx context.Context, userID int64) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	if err := c.http.Get(ctx, fmt.Sprintf("/api/leaves/user/%d", userID), &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (c *apiClient) GetDetail(ctx context.Context, leaveID int64) (*LeaveRequest, error) {
	var request LeaveRequest
	if err := c.http.Get(ctx, fmt.Sprintf("/api/leaves/%d", leaveID), &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (c *apiClient) Cancel(ctx context.Context, leaveID int64) error {
	return c.http.Post(ctx, fmt.Sprintf("/api/leaves/%d/cancel", leaveID), nil, nil)
}

func (c *apiClient) Approve(ctx context.Context, leaveID int64, dto ApproveDTO) error {
	return c.http.Post(ctx, fmt.Sprintf("/api/leaves/%d/approve", leaveID), dto, nil)
}

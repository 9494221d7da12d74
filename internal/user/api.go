package user

import (
	"context"
	"fmt"

	"github.com/kwyt0087/AI-employee-takes-leave/internal/transport"
)

// API is the user resource surface: one method per endpoint, typed in and
// out, no retries or caching.
type API interface {
	Login(ctx context.Context, dto LoginDTO) (*LoginResult, error)
	GetUser(ctx context.Context, userID int64) (*User, error)
	UpdateUser(ctx context.Context, userID int64, dto UpdateProfileDTO) (*User, error)
	ChangePassword(ctx context.Context, userID int64, dto ChangePasswordDTO) error
	GetLeaveStats(ctx context.Context, userID int64) (*LeaveStats, error)
	GetAnnualLeave(ctx context.Context, userID int64) (*AnnualLeaveInfo, error)
}

type apiClient struct {
	http *transport.Client
}

func NewAPI(http *transport.Client) API {
	return &apiClient{http: http}
}

func (c *apiClient) Login(ctx context.Context, dto LoginDTO) (*LoginResult, error) {
	var result LoginResult
	if err := c.http.Post(ctx, "/api/auth/login", dto, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *apiClient) GetUser(ctx context.Context, userID int64) (*User, error) {
	var u User
	if err := c.http.Get(ctx, fmt.Sprintf("/api/users/%d", userID), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *apiClient) UpdateUser(ctx context.Context, userID int64, dto UpdateProfileDTO) (*User, error) {
	var u User
	if err := c.http.Put(ctx, fmt.Sprintf("/api/users/%d", userID), dto, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *apiClient) ChangePassword(ctx context.Context, userID int64, dto ChangePasswordDTO) error {
	return c.http.Post(ctx, fmt.Sprintf("/api/users/%d/change-password", userID), dto, nil)
}

func (c *apiClient) GetLeaveStats(ctx context.Context, userID int64) (*LeaveStats, error) {
	var stats LeaveStats
	if err := c.http.Get(ctx, fmt.Sprintf("/api/users/%d/leave-stats", userID), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *apiClient) GetAnnualLeave(ctx context.Context, userID int64) (*AnnualLeaveInfo, error) {
	var info AnnualLeaveInfo
	if err := c.http.Get(ctx, fmt.Sprintf("/api/users/%d/annual-leave", userID), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

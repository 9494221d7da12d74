package chat

import (
	"context"
	"fmt"

	"github.com/kwyt0087/AI-employee-takes-leave/internal/transport"
)

// API is the chat resource surface.
type API interface {
	Send(ctx context.Context, dto SendDTO) (*SendResult, error)
	GetHistory(ctx context.Context, userID int64) ([]HistoryEntry, error)
	ClearHistory(ctx context.Context, userID int64) error
}

type apiClient struct {
	http *transport.Client
}

func NewAPI(http *transport.Client) API {
	return &apiClient{http: http}
}

func (c *apiClient) Send(ctx context.Context, dto SendDTO) (*SendResult, error) {
	var result SendResult
	if err := c.http.Post(ctx, "/api/chat/send", dto, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *apiClient) GetHistory(ctx context.Context, userID int64) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if err := c.http.Get(ctx, fmt.Sprintf("/api/chat/history/%d", userID), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *apiClient) ClearHistory(ctx context.Context, userID int64) error {
	return c.http.Post(ctx, fmt.Sprintf("/api/chat/history/%d/clear", userID), nil, nil)
}

package policy

import (
	"context"
	"fmt"

	"github.com/kwyt0087/AI-employee-takes-leave/internal/transport"
)

// API is the policy resource surface.
type API interface {
	List(ctx context.Context) ([]Policy, error)
	Get(ctx context.Context, policyID int64) (*Policy, error)
	Upload(ctx context.Context, dto UploadDTO) (*UploadResult, error)
	Update(ctx context.Context, policyID int64, dto UpdateDTO) (*Policy, error)
	Delete(ctx context.Context, policyID int64) error
}

type apiClient struct {
	http *transport.Client
}

func NewAPI(http *transport.Client) API {
	return &apiClient{http: http}
}

func (c *apiClient) List(ctx context.Context) ([]Policy, error) {
	var policies []Policy
	if err := c.http.Get(ctx, "/api/policies", &policies); err != nil {
		return nil, err
	}
	return policies, nil
}

func (c *apiClient) Get(ctx context.Context, policyID int64) (*Policy, error) {
	var p Policy
	if err := c.http.Get(ctx, fmt.Sprintf("/api/policies/%d", policyID), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *apiClient) Upload(ctx context.Context, dto UploadDTO) (*UploadResult, error) {
	fields := map[string]string{
		"title":       dto.Title,
		"description": dto.Description,
		"category":    dto.Category,
	}
	file := transport.FileUpload{
		FieldName: "file",
		FileName:  dto.FileName,
		Content:   dto.Content,
	}

	var result UploadResult
	if err := c.http.PostMultipart(ctx, "/api/policies/upload", fields, file, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *apiClient) Update(ctx context.Context, policyID int64, dto UpdateDTO) (*Policy, error) {
	var p Policy
	if err := c.http.Put(ctx, fmt.Sprintf("/api/policies/%d", policyID), dto, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *apiClient) Delete(ctx context.Context, policyID int64) error {
	return c.http.Delete(ctx, fmt.Sprintf("/api/policies/%d", policyID), nil)
}

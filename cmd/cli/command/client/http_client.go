package client

// http_client.go talks to the feedbackme HTTP API for the CLI.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"feedbackme/cmd/cli/dto"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	Details    []dto.FieldError
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
	for _, d := range e.Details {
		msg += fmt.Sprintf("\n  %s: %s", d.Field, d.Message)
	}
	return msg
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// set token for HTTP client
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do sends body as JSON and decodes the envelope's data into out.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	var envelope dto.Envelope
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("unexpected response (%s): %w", response.Status, err)
	}

	if response.StatusCode >= 300 || !envelope.Success {
		message := envelope.Error
		if message == "" {
			message = response.Status
		}
		return &APIError{StatusCode: response.StatusCode, Message: message, Details: envelope.Details}
	}

	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}

func (c *HTTPClient) Login(ctx context.Context, request *dto.LoginRequest) (*dto.LoginResponse, error) {
	var result dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ListProjects(ctx context.Context) (*dto.ProjectList, error) {
	var result dto.ProjectList
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) CreateProject(ctx context.Context, request *dto.CreateProjectRequest) (*dto.Project, error) {
	var result dto.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ProjectStats(ctx context.Context, projectID int64) (*dto.ProjectStats, error) {
	var result dto.ProjectStats
	path := fmt.Sprintf("/api/projects/%d/stats", projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ListFeedback(ctx context.Context, filter dto.FeedbackFilter) (*dto.FeedbackList, error) {
	query := url.Values{}
	query.Set("projectId", strconv.FormatInt(filter.ProjectID, 10))
	for key, value := range map[string]string{
		"type":   filter.Type,
		"status": filter.Status,
		"sort":   filter.Sort,
		"q":      filter.Search,
	} {
		if value != "" {
			query.Set(key, value)
		}
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	var result dto.FeedbackList
	if err := c.do(ctx, http.MethodGet, "/api/feedback?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) UpdateStatus(ctx context.Context, feedbackID int64, status string) (*dto.StatusResponse, error) {
	var result dto.StatusResponse
	path := fmt.Sprintf("/api/feedback/%d/status", feedbackID)
	if err := c.do(ctx, http.MethodPatch, path, map[string]string{"status": status}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) WaitlistStats(ctx context.Context) (*dto.WaitlistStats, error) {
	var result dto.WaitlistStats
	if err := c.do(ctx, http.MethodGet, "/api/waitlist", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

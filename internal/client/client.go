// Package client is a typed wrapper over the platform's REST API. Expected
// API failures (4xx/5xx) come back as *models.APIError; plain errors are
// reserved for transport-level problems.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

const DefaultBaseURL = "http://localhost:8000"

type Client struct {
	baseURL string
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + "/api/v1" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error.Code == "" {
			return &models.APIError{
				Code:    "HTTP_ERROR",
				Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
			}
		}
		apiErr := envelope.Error
		return &apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Authenticate logs in and stores the returned access token on the client.
func (c *Client) Authenticate(ctx context.Context, email, password, userType string) (*models.LoginResponse, error) {
	req := models.LoginRequest{Email: email, Password: password, UserType: userType}
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Tokens.AccessToken)
	return &resp, nil
}

// Logout revokes the refresh token and clears the stored access token.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, models.RefreshRequest{RefreshToken: refreshToken}, nil)
	c.SetToken("")
	return err
}

func (c *Client) ListStudents(ctx context.Context) ([]*models.Student, error) {
	var students []*models.Student
	if err := c.do(ctx, http.MethodGet, "/students", nil, nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

type LearningPathFilter struct {
	StudentID  *uuid.UUID
	ActiveOnly bool
}

func (c *Client) ListLearningPaths(ctx context.Context, filter LearningPathFilter) ([]*models.LearningPath, error) {
	query := url.Values{}
	if filter.StudentID != nil {
		query.Set("student_id", filter.StudentID.String())
	}
	if filter.ActiveOnly {
		query.Set("active", "true")
	}

	var paths []*models.LearningPath
	if err := c.do(ctx, http.MethodGet, "/learning-paths", query, nil, &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func (c *Client) CreateLearningPath(ctx context.Context, req models.CreateLearningPathRequest) (*models.LearningPath, error) {
	var path models.LearningPath
	if err := c.do(ctx, http.MethodPost, "/learning-paths", nil, req, &path); err != nil {
		return nil, err
	}
	return &path, nil
}

func (c *Client) ListSubjects(ctx context.Context) ([]*models.Subject, error) {
	var subjects []*models.Subject
	if err := c.do(ctx, http.MethodGet, "/subjects", nil, nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *Client) ListContent(ctx context.Context, filter models.ContentFilter) ([]*models.Content, error) {
	query := url.Values{}
	if filter.SubjectID != nil {
		query.Set("subject_id", filter.SubjectID.String())
	}
	if filter.Difficulty != "" {
		query.Set("difficulty", filter.Difficulty)
	}

	var items []*models.Content
	if err := c.do(ctx, http.MethodGet, "/content", query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetContent(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	var content models.Content
	if err := c.do(ctx, http.MethodGet, "/content/"+id.String(), nil, nil, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

func (c *Client) ListProgress(ctx context.Context, filter models.ProgressFilter) ([]*models.Progress, error) {
	query := url.Values{}
	if filter.StudentID != nil {
		query.Set("student_id", filter.StudentID.String())
	}
	if filter.LearningPathID != nil {
		query.Set("learning_path_id", filter.LearningPathID.String())
	}

	var records []*models.Progress
	if err := c.do(ctx, http.MethodGet, "/progress", query, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) UpdateProgress(ctx context.Context, id uuid.UUID, patch models.ProgressUpdate) (*models.Progress, error) {
	var progress models.Progress
	if err := c.do(ctx, http.MethodPut, "/progress/"+id.String(), nil, patch, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (c *Client) ChatWithMentor(ctx context.Context, req models.MentorChatRequest) (*models.MentorSession, error) {
	var session models.MentorSession
	if err := c.do(ctx, http.MethodPost, "/ai-mentor/chat", nil, req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) StudentDashboard(ctx context.Context, studentID uuid.UUID) (*models.StudentDashboard, error) {
	var dashboard models.StudentDashboard
	if err := c.do(ctx, http.MethodGet, "/dashboard/student/"+studentID.String(), nil, nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (c *Client) EducatorDashboard(ctx context.Context) (*models.EducatorDashboard, error) {
	var dashboard models.EducatorDashboard
	if err := c.do(ctx, http.MethodGet, "/dashboard/educator", nil, nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

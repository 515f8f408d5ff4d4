// Package apiclient talks to a running daysched daemon over its HTTP API.
// The TUI is a thin shell around this client.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sandeepkv93/daysched/internal/model"
)

// APIError carries the daemon's error payload alongside the HTTP status.
type APIError struct {
	StatusCode int
	Message    string
	Available  []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Health reports whether the daemon answers its health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	return c.get(ctx, "/health", &resp)
}

// Schedule fetches the task map for date, or for today when date is empty.
func (c *Client) Schedule(ctx context.Context, date string) (model.Schedule, error) {
	path := "/schedule"
	if date != "" {
		path = "/schedule/" + url.PathEscape(date)
	}
	var sched model.Schedule
	if err := c.get(ctx, path, &sched); err != nil {
		return nil, err
	}
	if sched == nil {
		sched = model.Schedule{}
	}
	return sched, nil
}

// Dates lists every date with a stored schedule, oldest first.
func (c *Client) Dates(ctx context.Context) ([]string, error) {
	var resp struct {
		Dates []string `json:"dates"`
	}
	if err := c.get(ctx, "/schedule/available_dates", &resp); err != nil {
		return nil, err
	}
	return resp.Dates, nil
}

type AddTaskRequest struct {
	Date         string                      `json:"date,omitempty"`
	Name         string                      `json:"name"`
	StartTime    string                      `json:"start_time"`
	EndTime      string                      `json:"end_time"`
	Subtasks     []string                    `json:"subtasks,omitempty"`
	Notification *model.NotificationSettings `json:"notification,omitempty"`
}

// AddTask creates a task and returns its assigned id.
func (c *Client) AddTask(ctx context.Context, req AddTaskRequest) (string, error) {
	var resp struct {
		TaskID string `json:"task_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/add_task", req, &resp); err != nil {
		return "", err
	}
	return resp.TaskID, nil
}

// DeleteTask removes the task by id; the owning date is encoded in the id.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/delete_task/"+url.PathEscape(taskID), nil, nil)
}

// CopyForward copies yesterday's schedule into today and returns the
// daemon's human-readable outcome message.
func (c *Client) CopyForward(ctx context.Context) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/schedule/copy", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	var payload struct {
		Error          string   `json:"error"`
		Message        string   `json:"message"`
		AvailableTasks []string `json:"available_tasks"`
	}
	msg := strings.TrimSpace(string(data))
	if err := json.Unmarshal(data, &payload); err == nil {
		switch {
		case payload.Error != "":
			msg = payload.Error
		case payload.Message != "":
			msg = payload.Message
		}
	}
	return &APIError{StatusCode: status, Message: msg, Available: payload.AvailableTasks}
}

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hay-kot/sprout/internal/habit"
	"github.com/hay-kot/sprout/internal/rowstore"
)

// Wire shapes shared with the sprout server's JSON API.
type initialDataResponse struct {
	Tasks []habit.Task `json:"tasks"`
	Logs  []habit.Log  `json:"logs"`
}

type taskRequest struct {
	Title string `json:"title"`
}

type toggleRequest struct {
	Date   string `json:"date"`
	TaskID string `json:"task_id"`
	Done   bool   `json:"done"`
}

type deleteResponse struct {
	Deleted     bool `json:"deleted"`
	LogsRemoved int  `json:"logs_removed"`
}

type apiError struct {
	Message string `json:"message"`
}

// Client talks to a sprout server. The HTTP method set is a closed
// enumeration; every call goes through the same request builder, and
// responses resolve to a value or an error with nothing in between.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ habit.Remote = (*Client)(nil)

// NewClient creates a client for the server at baseURL. A nil httpClient
// falls back to http.DefaultClient; inject one to control timeouts.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusNotFound {
			return rowstore.ErrNotFound
		}

		var apiErr apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) InitialData(ctx context.Context) ([]habit.Task, []habit.Log, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/data", nil)
	if err != nil {
		return nil, nil, err
	}

	var data initialDataResponse
	if err := c.do(req, &data); err != nil {
		return nil, nil, err
	}
	return data.Tasks, data.Logs, nil
}

func (c *Client) AddTask(ctx context.Context, title string) (habit.Task, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/tasks", taskRequest{Title: title})
	if err != nil {
		return habit.Task{}, err
	}

	var task habit.Task
	if err := c.do(req, &task); err != nil {
		return habit.Task{}, err
	}
	return task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id, title string) (habit.Task, error) {
	req, err := c.newRequest(ctx, http.MethodPatch, "/api/v1/tasks/"+id, taskRequest{Title: title})
	if err != nil {
		return habit.Task{}, err
	}

	var task habit.Task
	if err := c.do(req, &task); err != nil {
		return habit.Task{}, err
	}
	return task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/v1/tasks/"+id, nil)
	if err != nil {
		return err
	}

	var result deleteResponse
	if err := c.do(req, &result); err != nil {
		return err
	}
	if !result.Deleted {
		return rowstore.ErrNotFound
	}
	return nil
}

func (c *Client) ToggleLog(ctx context.Context, date, taskID string, done bool) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/logs/toggle", toggleRequest{
		Date:   date,
		TaskID: taskID,
		Done:   done,
	})
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

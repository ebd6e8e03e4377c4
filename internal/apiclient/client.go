// Package apiclient talks to the remote task store over its REST API.
// The sync controller never builds HTTP requests itself; everything goes
// through this client so failures arrive as typed errors.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taskpad/internal/model"
	"taskpad/internal/task"
)

// TransportError marks a failure to reach the remote store or to make
// sense of its answer. It is the only error kind the controller falls
// back to local state on.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) List(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	if err := c.do(ctx, "list", http.MethodGet, "/api/tasks", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Task{}
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, description string) (model.Task, error) {
	var out model.Task
	body := map[string]string{"description": description}
	if err := c.do(ctx, "create", http.MethodPost, "/api/tasks", body, http.StatusCreated, &out); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, id model.TaskID, p task.Patch) (model.Task, error) {
	var out model.Task
	if err := c.do(ctx, "update", http.MethodPut, "/api/tasks/"+string(id), p, http.StatusOK, &out); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, id model.TaskID) error {
	return c.do(ctx, "delete", http.MethodDelete, "/api/tasks/"+string(id), nil, http.StatusNoContent, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != want {
		return c.mapError(op, res)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

// mapError converts a non-success response into the shared error
// taxonomy: 400 is the server relaying a validation failure, 404 an
// unknown id. Anything else counts as transport trouble.
func (c *Client) mapError(op string, res *http.Response) error {
	msg := decodeMessage(res.Body)

	switch res.StatusCode {
	case http.StatusBadRequest:
		if msg == "" {
			return task.ErrEmptyDescription
		}
		return fmt.Errorf("%s: %w", msg, task.ErrEmptyDescription)
	case http.StatusNotFound:
		return task.ErrNotFound
	default:
		if msg == "" {
			msg = res.Status
		}
		return &TransportError{Op: op, Err: fmt.Errorf("unexpected response: %s", msg)}
	}
}

func decodeMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Message)
}

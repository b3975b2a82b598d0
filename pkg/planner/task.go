package planner

import (
	"context"
	"net/http"
	"net/url"
)

// CreateTask creates a new task with the given title.
func (c *Client) CreateTask(ctx context.Context, title string, opts ...TaskOption) (*Task, error) {
	body := taskInput{Title: title}
	for _, opt := range opts {
		opt(&body)
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, "/v1/tasks", body)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := c.do(req, http.StatusCreated, &task, "create task"); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask retrieves a task by ID.
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	req, err := c.newRequest(ctx, http.MethodGet, taskPath(id), nil)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := c.do(req, http.StatusOK, &task, "get task"); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks lists tasks with optional filtering and ordering.
func (c *Client) ListTasks(ctx context.Context, opts ...ListTasksOption) (*TaskList, error) {
	options := &listTasksOptions{}
	for _, opt := range opts {
		opt(options)
	}

	params := url.Values{}
	if options.status != "" {
		params.Set("status", string(options.status))
	}
	if options.search != "" {
		params.Set("q", options.search)
	}
	if options.sort != "" {
		params.Set("sort", string(options.sort))
	}

	path := "/v1/tasks"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var list TaskList
	if err := c.do(req, http.StatusOK, &list, "list tasks"); err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateTask changes the fields set by opts and keeps the others. It reads
// the current task first, since the API replaces every editable field.
func (c *Client) UpdateTask(ctx context.Context, id string, opts ...TaskOption) (*Task, error) {
	current, err := c.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	body := inputOf(current)
	for _, opt := range opts {
		opt(&body)
	}

	req, err := c.newJSONRequest(ctx, http.MethodPut, taskPath(id), body)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := c.do(req, http.StatusOK, &task, "update task"); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask deletes a task. Calling it is the confirmation.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, taskPath(id)+"?confirm=true", nil)
	if err != nil {
		return err
	}
	return c.do(req, http.StatusNoContent, nil, "delete task")
}

// ToggleTask flips a task between done and todo.
func (c *Client) ToggleTask(ctx context.Context, id string) (*Task, error) {
	req, err := c.newRequest(ctx, http.MethodPost, taskPath(id)+"/toggle", nil)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := c.do(req, http.StatusOK, &task, "toggle task"); err != nil {
		return nil, err
	}
	return &task, nil
}

func taskPath(id string) string {
	return "/v1/tasks/" + url.PathEscape(id)
}

package planner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Timeline returns the first eight dated tasks that are not done.
func (c *Client) Timeline(ctx context.Context) ([]TimelineItem, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/timeline", nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Data []TimelineItem `json:"data"`
	}
	if err := c.do(req, http.StatusOK, &body, "timeline"); err != nil {
		return nil, err
	}
	return body.Data, nil
}

// Progress returns how many tasks are done.
func (c *Client) Progress(ctx context.Context) (*Progress, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/progress", nil)
	if err != nil {
		return nil, err
	}

	var p Progress
	if err := c.do(req, http.StatusOK, &p, "progress"); err != nil {
		return nil, err
	}
	return &p, nil
}

// Export returns every task in the given format.
func (c *Client) Export(ctx context.Context, format Format) ([]byte, error) {
	path := "/v1/export?format=" + url.QueryEscape(string(format))
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isConnectionRefused(err) {
			return nil, ErrServerNotRunning
		}
		return nil, fmt.Errorf("export failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp)
	}
	return io.ReadAll(resp.Body)
}

// Import replaces every task with the JSON array in data and returns the
// number of tasks imported.
func (c *Client) Import(ctx context.Context, data []byte) (int, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/v1/import", bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	var body struct {
		Imported int `json:"imported"`
	}
	if err := c.do(req, http.StatusOK, &body, "import"); err != nil {
		return 0, err
	}
	return body.Imported, nil
}

// Reminders returns the reminders armed in the server process.
func (c *Client) Reminders(ctx context.Context) ([]Reminder, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/reminders", nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Data []Reminder `json:"data"`
	}
	if err := c.do(req, http.StatusOK, &body, "list reminders"); err != nil {
		return nil, err
	}
	return body.Data, nil
}

// RequestPermission asks the server process for notification permission.
func (c *Client) RequestPermission(ctx context.Context) (Permission, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/v1/reminders/permission", nil)
	if err != nil {
		return "", err
	}

	var body struct {
		Permission Permission `json:"permission"`
	}
	if err := c.do(req, http.StatusOK, &body, "request permission"); err != nil {
		return "", err
	}
	return body.Permission, nil
}

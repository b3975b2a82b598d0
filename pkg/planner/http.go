package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"syscall"
)

// timezoneHeader carries the zone the server interprets dates in.
const timezoneHeader = "X-Timezone"

// newRequest creates a new HTTP request with common headers.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.timezone != "" {
		req.Header.Set(timezoneHeader, c.timezone)
	}

	return req, nil
}

// newJSONRequest creates a new HTTP request with JSON body.
func (c *Client) newJSONRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, &buf)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// do sends req and decodes the response into out when the status matches
// want. out may be nil. op names the call in transport errors.
func (c *Client) do(req *http.Request, want int, out interface{}, op string) error {
	resp, err := c.http.Do(req)
	if err != nil {
		if isConnectionRefused(err) {
			return ErrServerNotRunning
		}
		return fmt.Errorf("%s failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return parseErrorResponse(resp)
	}
	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}

// parseErrorResponse parses an error response from the API and returns the
// appropriate error type.
func parseErrorResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read error response: %w", err)
	}

	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error.Code == "" {
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, string(body))
	}

	return &Error{
		Code:    ErrorCode(apiErr.Error.Code),
		Message: apiErr.Error.Message,
		Context: apiErr.Error.Context,
	}
}

// extractStringSlice extracts a string slice from a context map.
func extractStringSlice(ctx map[string]interface{}, key string) []string {
	val, ok := ctx[key]
	if !ok {
		return nil
	}

	// JSON unmarshals arrays as []interface{}
	slice, ok := val.([]interface{})
	if !ok {
		return nil
	}

	result := make([]string, 0, len(slice))
	for _, v := range slice {
		if s, ok := v.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// isConnectionRefused checks if the error is a connection refused error.
func isConnectionRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}

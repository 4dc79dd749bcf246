package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps HTTP calls to the Discana catalog REST API.
type Client struct {
	baseURL    string
	adminToken string
	httpClient *http.Client
}

// NewClient creates a new catalog client.
func NewClient(baseURL, adminToken string, timeout ...time.Duration) *Client {
	httpTimeout := 30 * time.Second
	if len(timeout) > 0 && timeout[0] > 0 {
		httpTimeout = timeout[0]
	}
	return &Client{
		baseURL:    baseURL,
		adminToken: adminToken,
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

// WithTimeout clones the client with a different HTTP timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	return NewClient(c.baseURL, c.adminToken, timeout)
}

// FindCollection asks the catalog whether an album is tracked. A body that is
// not valid JSON counts as "nothing found", not as an error.
func (c *Client) FindCollection(spotifyID string) (FindResult, error) {
	var result FindResult
	path := "/find_collection/?" + url.Values{"spotify_id": {spotifyID}}.Encode()

	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return result, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return result, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, fmt.Errorf("read response: %w", err)
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return FindResult{}, nil
	}
	return result, nil
}

// CreateAlbum creates a catalog entry. The returned status is surfaced to the
// user verbatim; only transport-level failures are errors.
func (c *Client) CreateAlbum(payload Submission) (int, error) {
	return c.mutate(http.MethodPost, "/albums/", payload)
}

// UpdateAlbum replaces an existing catalog entry.
func (c *Client) UpdateAlbum(albumID string, payload Submission) (int, error) {
	return c.mutate(http.MethodPut, "/albums/"+url.PathEscape(albumID)+"/", payload)
}

// MoveAlbum moves an entry between collections.
func (c *Client) MoveAlbum(origin, dest Membership, albumID string) (int, error) {
	return c.mutate(http.MethodPost, "/move/", MoveInput{
		OriginCollection: string(origin),
		DestCollection:   string(dest),
		AlbumID:          albumID,
	})
}

// mutate executes an authenticated write and returns the HTTP status.
func (c *Client) mutate(method, path string, body any) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.adminToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

package capacity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Load is the live project load reported by the resource-planning service.
type Load struct {
	ActiveProjects int `json:"active_projects"`
	Limit          int `json:"limit"`
}

type Client interface {
	GetLoad(ctx context.Context) (*Load, error)
}

type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) doReq(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("resource planner %s %s: %d %s", method, path, resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *HTTPClient) GetLoad(ctx context.Context) (*Load, error) {
	data, err := c.doReq(ctx, http.MethodGet, "/api/v1/load")
	if err != nil {
		return nil, err
	}
	var load Load
	if err := json.Unmarshal(data, &load); err != nil {
		return nil, fmt.Errorf("decode load: %w", err)
	}
	if load.ActiveProjects < 0 || load.Limit < 0 {
		return nil, fmt.Errorf("resource planner returned negative load %d/%d", load.ActiveProjects, load.Limit)
	}
	return &load, nil
}

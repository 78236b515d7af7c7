// Package client talks to a running httpmockd server's management API over
// HTTP, for tests that run their code-under-test against a server in a
// separate process rather than an in-process httpmock.Server.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a thin wrapper around the /__mocks management endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client targeting baseURL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: 10 * time.Second}}
}

// Create registers a mock definition and returns its assigned id.
func (c *Client) Create(def any) (int, error) {
	payload, err := json.Marshal(def)
	if err != nil {
		return 0, fmt.Errorf("httpmock client: encode definition: %w", err)
	}

	resp, err := c.http.Post(c.baseURL+"/__mocks", "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("httpmock client: create mock: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("httpmock client: create mock: server returned %d: %s", resp.StatusCode, body)
	}

	var id struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(body, &id); err != nil {
		return 0, fmt.Errorf("httpmock client: decode response: %w", err)
	}
	return id.ID, nil
}

// Fetch retrieves the current state of the mock with the given id.
func (c *Client) Fetch(id int) (json.RawMessage, error) {
	resp, err := c.http.Get(fmt.Sprintf("%s/__mocks/%d", c.baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("httpmock client: fetch mock: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("httpmock client: mock %d not found", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpmock client: fetch mock: server returned %d: %s", resp.StatusCode, body)
	}
	return body, nil
}

// Delete removes the mock with the given id.
func (c *Client) Delete(id int) error {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/__mocks/%d", c.baseURL, id), nil)
	if err != nil {
		return fmt.Errorf("httpmock client: build delete request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("httpmock client: delete mock: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("httpmock client: mock %d not found", id)
	}
	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("httpmock client: delete mock: server returned %d: %s", resp.StatusCode, body)
	}
	return nil
}

// DeleteAll removes every registered mock.
func (c *Client) DeleteAll() error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+"/__mocks", nil)
	if err != nil {
		return fmt.Errorf("httpmock client: build delete-all request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("httpmock client: delete all mocks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("httpmock client: delete all mocks: server returned %d: %s", resp.StatusCode, body)
	}
	return nil
}

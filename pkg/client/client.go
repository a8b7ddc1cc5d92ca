// Package client provides a Go client for the voice notes REST API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"voicenotes-server/internal/domain"
)

type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for a server base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Create(text string) (*domain.Note, error) {
	var note domain.Note
	if err := c.do(http.MethodPost, "/api/notes", domain.CreateNoteRequest{Text: text}, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) List() ([]*domain.Note, error) {
	var notes []*domain.Note
	if err := c.do(http.MethodGet, "/api/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) Summarize(id string) (*domain.Note, error) {
	var note domain.Note
	if err := c.do(http.MethodPost, "/api/notes/"+id+"/summary", nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) Update(id, text string) (*domain.Note, error) {
	var note domain.Note
	if err := c.do(http.MethodPut, "/api/notes/"+id, domain.UpdateNoteRequest{Text: text}, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) Delete(id string) error {
	return c.do(http.MethodDelete, "/api/notes/"+id, nil, nil)
}

func (c *Client) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

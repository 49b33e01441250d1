package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"musicreg/pkg/models"
)

// APIError is a non-2xx answer from the registration service.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks JSON to the registration service. It makes no retries.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Page is one page of GET /registrations.
type Page struct {
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
	Total  int                   `json:"total"`
	Items  []models.Registration `json:"items"`
}

// Save creates the registration, or replaces it when d already carries a
// registration id, and returns the id.
func (c *Client) Save(ctx context.Context, d models.Dossier) (int64, error) {
	var reg models.Registration
	var err error
	if d.RegistrationID > 0 {
		err = c.do(ctx, http.MethodPut, "/registrations/"+strconv.FormatInt(d.RegistrationID, 10), d, &reg)
	} else {
		err = c.do(ctx, http.MethodPost, "/registrations", d, &reg)
	}
	if err != nil {
		return 0, err
	}
	if reg.ID <= 0 {
		return 0, errors.New("registration service returned no id")
	}
	return reg.ID, nil
}

func (c *Client) List(ctx context.Context, genre string, limit, offset int) (Page, error) {
	q := url.Values{}
	if genre != "" {
		q.Set("genre", genre)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	path := "/registrations"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var page Page
	err := c.do(ctx, http.MethodGet, path, nil, &page)
	return page, err
}

// All pages through every registration of the caller.
func (c *Client) All(ctx context.Context, genre string) ([]models.Registration, error) {
	const pageSize = 100
	var out []models.Registration
	for offset := 0; ; offset += pageSize {
		page, err := c.List(ctx, genre, pageSize, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Items...)
		if len(page.Items) < pageSize || len(out) >= page.Total {
			return out, nil
		}
	}
}

func (c *Client) Get(ctx context.Context, id int64) (models.Registration, error) {
	var reg models.Registration
	err := c.do(ctx, http.MethodGet, "/registrations/"+strconv.FormatInt(id, 10), nil, &reg)
	return reg, err
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/registrations/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 300 {
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} or falls back to the raw body.
func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(data))
}

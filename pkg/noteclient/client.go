package noteclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	baseURL    string
	userAgent  string
}

type Option func(*Client)

// WithHTTPClient replaces the default transport. A nil client is ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithTimeout applies to this Client only; a client passed to WithHTTPClient is not modified.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.timeout = d
	}
}

// NewClient talks to the notes API under baseURL, e.g. "http://localhost:5000".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "notes-client/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var out []Note
	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListNotesByType(ctx context.Context, noteType NoteType) ([]Note, error) {
	if err := noteType.Validate(); err != nil {
		return nil, err
	}

	var out []Note
	if err := c.do(ctx, http.MethodGet, "/api/notes/type/"+url.PathEscape(string(noteType)), nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (*Note, error) {
	var out Note
	if err := c.do(ctx, http.MethodGet, "/api/notes/"+url.PathEscape(id), nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTextNote(ctx context.Context, title string, content *string) (*Note, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}

	body, err := json.Marshal(map[string]interface{}{
		"title":   title,
		"content": content,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var out Note
	if err := c.do(ctx, http.MethodPost, "/api/notes/text", bytes.NewReader(body), "application/json", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateAudioNote(ctx context.Context, title string, file File) (*Note, error) {
	return c.createMediaNote(ctx, "/api/notes/audio", "audio", title, nil, file)
}

func (c *Client) CreateImageNote(ctx context.Context, title string, content *string, file File) (*Note, error) {
	return c.createMediaNote(ctx, "/api/notes/image", "image", title, content, file)
}

func (c *Client) createMediaNote(ctx context.Context, path, field, title string, content *string, file File) (*Note, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if file.Reader == nil {
		return nil, ErrNoFile
	}

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	if err := w.WriteField("title", title); err != nil {
		return nil, err
	}
	if content != nil {
		if err := w.WriteField("content", *content); err != nil {
			return nil, err
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, file.Name))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		return nil, fmt.Errorf("read %s: %w", file.Name, err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var out Note
	if err := c.do(ctx, http.MethodPost, path, buf, w.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, in UpdateInput) (*Note, error) {
	payload := map[string]interface{}{}
	if in.Title != nil {
		payload["title"] = *in.Title
	}
	switch {
	case in.ClearContent:
		payload["content"] = nil
	case in.Content != nil:
		payload["content"] = *in.Content
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var out Note
	if err := c.do(ctx, http.MethodPut, "/api/notes/"+url.PathEscape(id), bytes.NewReader(body), "application/json", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil, "", &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	return parseResponse(resp, out)
}

func parseResponse(resp *http.Response, out interface{}) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &body) == nil && body.Message != "" {
			apiErr.Message = body.Message
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

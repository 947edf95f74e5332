// Package api provides the single configured HTTP client every resource
// service goes through.
//
// All requests carry a bearer token when the token source has one. The
// backend responds with JSON; errors arrive as {"detail": "..."} bodies and
// surface as *Error. No caching and no retries happen at this layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty string means no Authorization header is sent.
type TokenSource interface {
	AccessToken() string
}

// File is one file to be uploaded, already read into memory. Uploads in
// this system are small supporting documents, not streams.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Client issues REST calls against the platform backend.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	log     *zap.Logger
}

// New creates a client for the given base URL. tokens may be nil for
// unauthenticated use; log may be nil to disable request logging.
func New(baseURL string, tokens TokenSource, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("api: marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(data), out)
}

// Patch issues a PATCH with a JSON body and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("api: marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPatch, path, "application/json", bytes.NewReader(data), out)
}

// Delete issues a DELETE. The response body, if any, is discarded.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, nil)
}

// PostForm issues a POST with a form-encoded body (used by /auth/token).
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	body := strings.NewReader(form.Encode())
	return c.do(ctx, http.MethodPost, path, "application/x-www-form-urlencoded", body, out)
}

// Upload issues a multipart POST. files and keys are parallel sequences:
// keys[i] names the destination slot for files[i].
func (c *Client) Upload(ctx context.Context, path string, files []File, keys []string, out any) error {
	if len(files) != len(keys) {
		return fmt.Errorf("api: %d files for %d keys", len(files), len(keys))
	}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for i, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return fmt.Errorf("api: multipart: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("api: multipart: %w", err)
		}
		if err := mw.WriteField("keys", keys[i]); err != nil {
			return fmt.Errorf("api: multipart: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("api: multipart: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, mw.FormDataContentType(), &buf, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if tok := c.tokens.AccessToken(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

// decodeError pulls the most specific message out of an error body.
// Backends in this platform answer {"detail": "..."}; some older endpoints
// use {"message": "..."} or {"error": "..."}.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	detail := ""
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Detail != "":
			detail = body.Detail
		case body.Message != "":
			detail = body.Message
		case body.Err != "":
			detail = body.Err
		}
	}
	return &Error{Status: resp.StatusCode, Detail: detail}
}

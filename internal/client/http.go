package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/factorg/internal/common"
	"github.com/dmitrijs2005/factorg/internal/logging"
)

// HTTPClient implements Client over the backend REST API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

func NewHTTPClient(baseURL string, httpClient *http.Client, logger logging.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger.With("component", "client"),
	}
}

var _ Client = (*HTTPClient)(nil)

type payload struct {
	contentType string
	data        []byte
}

func jsonPayload(v any) (*payload, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &payload{contentType: "application/json", data: b}, nil
}

func filePayload(field, filename string, content []byte) (*payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return &payload{contentType: w.FormDataContentType(), data: buf.Bytes()}, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, body *payload) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body.data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", body.contentType)
	}
	req.Header.Set("Accept", "application/json")

	if creds := credentialsFrom(ctx); creds != nil {
		token, email := creds.Current()
		if token != "" {
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
		}
		if email != "" {
			req.Header.Set(common.UserEmailHeader, email)
		}
	}
	if id := logging.RequestID(ctx); id != "" {
		req.Header.Set(logging.RequestIDHeader, id)
	}
	return req, nil
}

// send performs the call and returns the 2xx response; the caller closes its
// body. A 401 triggers one credentials refresh and one retry.
func (c *HTTPClient) send(ctx context.Context, method, path string, query url.Values, body *payload) (*http.Response, error) {
	resp, sent, err := c.attempt(ctx, method, path, query, body)
	if err == nil || !errors.Is(err, ErrUnauthorized) {
		return resp, err
	}

	creds := credentialsFrom(ctx)
	if creds == nil {
		return nil, err
	}
	if rerr := creds.Refresh(ctx, sent); rerr != nil {
		c.logger.Warn(ctx, "token refresh failed", "path", path, "error", rerr)
		return nil, fmt.Errorf("%w: refresh: %v", ErrUnauthorized, rerr)
	}

	// tokens refreshed, retrying with the new access token
	resp, _, err = c.attempt(ctx, method, path, query, body)
	return resp, err
}

// attempt performs one call. It also reports the access token the request
// carried, so a refresh can tell whether that token is still current.
func (c *HTTPClient) attempt(ctx context.Context, method, path string, query url.Values, body *payload) (*http.Response, string, error) {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, "", err
	}
	sent := strings.TrimPrefix(req.Header.Get(common.AuthorizationHeader), common.BearerPrefix)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, sent, ctx.Err()
		}
		return nil, sent, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.logger.Debug(ctx, "backend call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, sent, nil
	}

	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return nil, sent, decodeAPIError(resp.StatusCode, raw)
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body *payload
	if in != nil {
		p, err := jsonPayload(in)
		if err != nil {
			return err
		}
		body = p
	}

	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	return nil
}

func idPath(format string, id int) string {
	return fmt.Sprintf(format, id)
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samterminal/samclient/internal/common"
	"github.com/samterminal/samclient/internal/logging"
	"github.com/samterminal/samclient/internal/netx"
)

const errorBodyLimit = 8 << 10

// HTTPClient talks to the backend's JSON API. It holds no session state:
// the bearer token is passed to each call. Safe for concurrent use.
type HTTPClient struct {
	base string
	http *http.Client
	log  logging.Logger
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a gateway for the backend at base, for example
// "http://localhost:8081". A trailing slash is dropped.
func NewHTTPClient(base string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
		log:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) BaseURL() string {
	return c.base
}

// NormalizeURL resolves u against the client's base. See the package
// level NormalizeURL.
func (c *HTTPClient) NormalizeURL(u string) string {
	return NormalizeURL(c.base, u)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}
	req.Header.Set(common.RequestIDHeader, uuid.NewString())
	req.Header.Set("Accept", common.JSONContentType)
	return req, nil
}

// doJSON sends in (when non-nil) as a JSON body and decodes the response
// into out (when non-nil). Any failure comes back as *OpError of kind.
func (c *HTTPClient) doJSON(ctx context.Context, kind error, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &OpError{Kind: kind, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return &OpError{Kind: kind, Err: err}
	}
	req.Header.Set(common.ContentTypeHeader, common.JSONContentType)

	return c.send(ctx, kind, req, out)
}

// doMultipart uploads data as the single file field of a multipart form.
// No JSON content type is set; the multipart boundary type is.
func (c *HTTPClient) doMultipart(ctx context.Context, kind error, path, token, field, filename string, data []byte, out any) error {
	body, contentType, err := netx.MultipartFile(field, filename, data)
	if err != nil {
		return &OpError{Kind: kind, Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, token, body)
	if err != nil {
		return &OpError{Kind: kind, Err: err}
	}
	req.Header.Set(common.ContentTypeHeader, contentType)

	return c.send(ctx, kind, req, out)
}

func (c *HTTPClient) send(ctx context.Context, kind error, req *http.Request, out any) error {
	start := time.Now()
	log := c.log.With("method", req.Method, "path", req.URL.Path, "request_id", req.Header.Get(common.RequestIDHeader))

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return &OpError{Kind: kind, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}
	defer netx.Drain(resp)

	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(start))

	if !netx.IsSuccess(resp) {
		return newStatusError(kind, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &OpError{Kind: kind, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func newStatusError(kind error, resp *http.Response) *OpError {
	opErr := &OpError{Kind: kind, Status: resp.StatusCode}

	raw := netx.ReadLimited(resp, errorBodyLimit)
	var eb errorBody
	if len(raw) > 0 && json.Unmarshal(raw, &eb) == nil {
		opErr.ServerMessage = eb.Error
		opErr.Code = eb.Code
		opErr.ResendAvailableAt = eb.ResendAvailableAt.ptr()
	}
	return opErr
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

package vinylhound

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/five82/crate/internal/catalog"
)

const (
	defaultBaseURL   = "http://127.0.0.1:8080/api"
	defaultUserAgent = "crate/0.1"
	defaultTimeout   = 15 * time.Second
)

var versionSegment = regexp.MustCompile(`^v[0-9]+$`)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	Logger     logrus.FieldLogger
	HTTPClient *http.Client
}

// Client talks to the Vinylhound HTTP API.
type Client struct {
	origin    string
	basePath  string
	http      *http.Client
	userAgent string
	log       logrus.FieldLogger
}

// RequestOptions carries the per-call parts of a request. Body is sent as-is
// and must already be JSON.
type RequestOptions struct {
	Body   []byte
	Token  string
	Query  url.Values
	Header http.Header
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	origin, basePath, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Client{
		origin:    origin,
		basePath:  basePath,
		http:      httpClient,
		userAgent: userAgent,
		log:       log,
	}, nil
}

// Request performs one HTTP call and returns the decoded body. A 204 or an
// empty body yields null; a body that is not JSON comes back as a string.
func (c *Client) Request(ctx context.Context, method, path string, opts RequestOptions) (catalog.Value, error) {
	if c == nil {
		return catalog.Null(), fmt.Errorf("client is nil")
	}
	reqURL := c.resolve(path, opts.Query)

	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return catalog.Null(), fmt.Errorf("create request: %w", err)
	}
	for key, values := range opts.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := strings.TrimSpace(opts.Token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	entry := c.log.WithFields(logrus.Fields{
		"method":     method,
		"url":        reqURL,
		"request_id": requestID,
	})
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Debug("request failed")
		return catalog.Null(), &TransportError{Method: method, URL: reqURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return catalog.Null(), &TransportError{Method: method, URL: reqURL, Err: fmt.Errorf("read body: %w", err)}
	}
	entry.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(started).Round(time.Millisecond),
	}).Debug("request complete")

	parsed := catalog.ParseText(string(raw))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return catalog.Null(), &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, parsed),
			Body:       parsed,
		}
	}
	if resp.StatusCode == http.StatusNoContent {
		return catalog.Null(), nil
	}
	return parsed, nil
}

// resolve joins the base path with path and merges any query it carries
// with extra.
func (c *Client) resolve(path string, extra url.Values) string {
	rawQuery := ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, rawQuery = path[:i], path[i+1:]
	}
	query, _ := url.ParseQuery(rawQuery)
	for key, values := range extra {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	out := c.origin + joinPath(c.basePath, path)
	if encoded := query.Encode(); encoded != "" {
		out += "?" + encoded
	}
	return out
}

// joinPath appends path to base, collapsing repeated slashes and dropping a
// version segment that both sides carry ("/api/v1" + "/v1/albums").
func joinPath(base, path string) string {
	baseSegs := splitSegments(base)
	pathSegs := splitSegments(path)
	if len(baseSegs) > 0 && len(pathSegs) > 0 {
		last := baseSegs[len(baseSegs)-1]
		if versionSegment.MatchString(last) && last == pathSegs[0] {
			pathSegs = pathSegs[1:]
		}
	}
	joined := "/" + strings.Join(append(baseSegs, pathSegs...), "/")
	if strings.HasSuffix(path, "/") && len(pathSegs) > 0 {
		joined += "/"
	}
	return joined
}

func splitSegments(p string) []string {
	parts := strings.Split(p, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseBaseURL splits a configured base into origin and path. A bare path
// ("/api") is resolved against the default origin.
func parseBaseURL(raw string) (string, string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if strings.HasPrefix(trimmed, "/") {
		def, _ := url.Parse(defaultBaseURL)
		trimmed = def.Scheme + "://" + def.Host + trimmed
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", "", fmt.Errorf("parse api_base_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("parse api_base_url %q: missing host", raw)
	}
	basePath := "/" + strings.Join(splitSegments(u.Path), "/")
	if basePath == "/" {
		basePath = ""
	}
	return u.Scheme + "://" + u.Host, basePath, nil
}

// marshalBody encodes a request payload.
func marshalBody(payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return data, nil
}

func requireToken(token, action string) error {
	if strings.TrimSpace(token) == "" {
		return invalid("token", "auth token is required to "+action)
	}
	return nil
}

func requireID(id, field string) error {
	if strings.TrimSpace(id) == "" {
		return invalid(field, "must not be empty")
	}
	return nil
}

func escape(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}

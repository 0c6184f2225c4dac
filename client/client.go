package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/totegamma/nameless-go/apierror"
)

const (
	Version          = "0.4.0"
	DefaultUserAgent = "nameless-go/" + Version

	defaultTimeout = 5 * time.Second
	maxBodySize    = 8 << 20
	routeParam     = "route"
)

var tracer = otel.Tracer("client")

// Config is shared by every request a Client issues and is not modified after
// New returns.
type Config struct {
	// URL is the API base, either https://example.com/api/v2 or the
	// query-routed form https://example.com/index.php?route=/api/v2.
	URL       string
	APIKey    string
	UserAgent string
	Timeout   time.Duration
	// Transport defaults to http.DefaultTransport.
	Transport http.RoundTripper
	Logger    *slog.Logger
}

type Client struct {
	client    *http.Client
	transport http.RoundTripper
	base      *url.URL
	route     string
	apiKey    string
	userAgent string
	logger    *slog.Logger
}

func New(conf Config) (*Client, error) {
	if conf.URL == "" {
		return nil, fmt.Errorf("api url cannot be empty")
	}
	base, err := url.Parse(conf.URL)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to parse api url")
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("unsupported api url scheme %q", base.Scheme)
	}

	c := &Client{
		base:      base,
		route:     strings.TrimSuffix(base.Query().Get(routeParam), "/"),
		apiKey:    conf.APIKey,
		userAgent: conf.UserAgent,
		transport: conf.Transport,
		logger:    conf.Logger,
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.transport == nil {
		c.transport = http.DefaultTransport
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c.client = &http.Client{
		Timeout:   timeout,
		Transport: c,
	}
	return c, nil
}

// RoundTrip attaches the identification and authorization headers.
func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return c.transport.RoundTrip(req)
}

func (c *Client) UserAgent() string { return c.userAgent }

func (c *Client) BaseURL() string { return c.base.String() }

// Execute sends one request and decodes the response envelope. No retries are
// made.
func (c *Client) Execute(ctx context.Context, r Request) (Document, error) {
	ctx, span := tracer.Start(ctx, "Client.Execute", trace.WithAttributes(
		attribute.String("nameless.method", r.method),
		attribute.String("nameless.route", r.path),
	))
	defer span.End()

	doc, status, err := c.execute(ctx, r)
	span.SetAttributes(attribute.Int("http.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.DebugContext(ctx, "nameless request failed", "method", r.method, "route", r.path, "status", status, "error", err)
		return Document{}, err
	}
	c.logger.DebugContext(ctx, "nameless request", "method", r.method, "route", r.path, "status", status)
	return doc, nil
}

func (c *Client) execute(ctx context.Context, r Request) (Document, int, error) {
	if err := r.validate(); err != nil {
		return Document{}, 0, err
	}

	target, err := c.endpoint(r)
	if err != nil {
		return Document{}, 0, err
	}

	var body io.Reader
	if r.method == http.MethodPost {
		payload := r.body
		if payload == nil {
			payload = struct{}{}
		}
		b, err := json.Marshal(payload)
		if err != nil {
			return Document{}, 0, pkgerrors.Wrap(err, "failed to encode request body")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return Document{}, 0, pkgerrors.Wrap(err, "failed to create request")
	}
	if r.method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Document{}, 0, &TransportError{Method: r.method, Route: r.path, Err: pkgerrors.Wrap(err, "failed to perform request")}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return Document{}, resp.StatusCode, &TransportError{Method: r.method, Route: r.path, Err: pkgerrors.Wrap(err, "failed to read response body")}
	}
	if len(raw) > maxBodySize {
		return Document{}, resp.StatusCode, &ProtocolViolation{
			Status: resp.StatusCode,
			Route:  r.path,
			Reason: fmt.Sprintf("response body exceeds %d bytes", maxBodySize),
		}
	}

	doc, err := Decode(resp.StatusCode, raw)
	if err != nil {
		var pv *ProtocolViolation
		if errors.As(err, &pv) {
			pv.Route = r.path
		}
		var re *apierror.ResponseError
		if errors.As(err, &re) {
			re.Route = r.path
		}
		return Document{}, resp.StatusCode, err
	}
	return doc, resp.StatusCode, nil
}

// endpoint builds the request URL. r.path is already escaped, segment by
// segment, by Path.
func (c *Client) endpoint(r Request) (string, error) {
	u := *c.base
	u.RawQuery = ""
	u.Fragment = ""

	var query []string
	if c.route != "" {
		query = append(query, routeParam+"="+url.QueryEscape(c.route+"/"+r.path))
		extra := c.base.Query()
		extra.Del(routeParam)
		if len(extra) > 0 {
			query = append(query, extra.Encode())
		}
	} else {
		rawPath := strings.TrimSuffix(c.base.EscapedPath(), "/") + "/" + r.path
		path, err := url.PathUnescape(rawPath)
		if err != nil {
			return "", fmt.Errorf("%w: bad path %q", ErrInvalidRequest, r.path)
		}
		u.Path = path
		u.RawPath = rawPath
	}

	if len(r.query) > 0 {
		query = append(query, r.query.Encode())
	}
	u.RawQuery = strings.Join(query, "&")
	return u.String(), nil
}

// Get issues a GET and decodes the success document into out when out is
// non-nil.
func (c *Client) Get(ctx context.Context, path string, query Params, out any) error {
	doc, err := c.Execute(ctx, NewGet(path, query))
	if err != nil {
		return err
	}
	return decodeInto(doc, path, out)
}

// Post issues a POST and decodes the success document into out when out is
// non-nil.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	doc, err := c.Execute(ctx, NewPost(path, body))
	if err != nil {
		return err
	}
	return decodeInto(doc, path, out)
}

func decodeInto(doc Document, path string, out any) error {
	if out == nil {
		return nil
	}
	if err := doc.Decode(out); err != nil {
		return &ProtocolViolation{Status: http.StatusOK, Route: path, Reason: "unexpected payload shape", Err: err}
	}
	return nil
}

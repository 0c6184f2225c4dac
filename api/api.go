// Package api is the typed entry point to the website API. It hands out lazily
// resolved user handles and wraps the module endpoints.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/totegamma/nameless-go"
	"github.com/totegamma/nameless-go/cachestore"
	"github.com/totegamma/nameless-go/client"
	"github.com/totegamma/nameless-go/policy"
)

var tracer = otel.Tracer("api")

const DefaultResponseTTL = time.Minute

// InvalidationHook runs after a write operation cleared a handle's cache.
type InvalidationHook func(ctx context.Context, id nameless.Identifier, op policy.Operation) error

type API struct {
	client   *client.Client
	logger   *slog.Logger
	strict   bool
	hook     InvalidationHook
	cache    cachestore.Store
	cacheTTL time.Duration
}

type Option func(*API)

func WithLogger(logger *slog.Logger) Option {
	return func(a *API) { a.logger = logger }
}

// WithStrictIdentifiers makes NewUser verify, on first resolution, that every
// supplied identifier names the resolved user.
func WithStrictIdentifiers() Option {
	return func(a *API) { a.strict = true }
}

func WithInvalidationHook(hook InvalidationHook) Option {
	return func(a *API) { a.hook = hook }
}

// WithResponseCache caches site-wide responses (info, groups, announcements)
// in store. A nil store disables caching.
func WithResponseCache(store cachestore.Store, ttl time.Duration) Option {
	return func(a *API) {
		a.cache = store
		a.cacheTTL = ttl
	}
}

func New(cl *client.Client, opts ...Option) *API {
	a := &API{
		client:   cl,
		logger:   slog.Default(),
		cache:    cachestore.NewMemory(DefaultResponseTTL, 2*DefaultResponseTTL),
		cacheTTL: DefaultResponseTTL,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func NewFromConfig(conf client.Config, opts ...Option) (*API, error) {
	cl, err := client.New(conf)
	if err != nil {
		return nil, err
	}
	return New(cl, opts...), nil
}

func (a *API) Client() *client.Client { return a.client }

func (a *API) Info(ctx context.Context) (nameless.Info, error) {
	var info nameless.Info
	if err := a.cachedGet(ctx, "info", nil, &info); err != nil {
		return nameless.Info{}, err
	}
	return info, nil
}

func (a *API) Groups(ctx context.Context) ([]nameless.Group, error) {
	var listing struct {
		Groups []nameless.Group `json:"groups"`
	}
	if err := a.cachedGet(ctx, "groups", nil, &listing); err != nil {
		return nil, err
	}
	return listing.Groups, nil
}

// Group returns the group with the given id, or a NotFoundError.
func (a *API) Group(ctx context.Context, id int64) (nameless.Group, error) {
	groups, err := a.Groups(ctx)
	if err != nil {
		return nameless.Group{}, err
	}
	for _, g := range groups {
		if g.ID == id {
			return g, nil
		}
	}
	return nameless.Group{}, NotFoundError{Resource: "group", Identifier: formatID(id)}
}

func (a *API) Announcements(ctx context.Context) ([]nameless.Announcement, error) {
	var listing struct {
		Announcements []nameless.Announcement `json:"announcements"`
	}
	if err := a.cachedGet(ctx, "announcements", nil, &listing); err != nil {
		return nil, err
	}
	return listing.Announcements, nil
}

// PurgeResponseCache drops cached site-wide responses.
func (a *API) PurgeResponseCache(ctx context.Context) error {
	if a.cache == nil {
		return nil
	}
	for _, path := range []string{"info", "groups", "announcements"} {
		if err := a.cache.Delete(ctx, a.cacheKey(path, nil)); err != nil {
			return err
		}
	}
	return nil
}

func (a *API) cacheKey(path string, params client.Params) string {
	return cachestore.Key(a.client.BaseURL(), http.MethodGet, path, params.Encode())
}

func (a *API) cachedGet(ctx context.Context, path string, params client.Params, out any) error {
	if a.cache == nil {
		return a.client.Get(ctx, path, params, out)
	}

	key := a.cacheKey(path, params)
	raw, ok, err := a.cache.Get(ctx, key)
	if err != nil {
		a.logger.WarnContext(ctx, "response cache read failed", "path", path, "error", err)
	}
	if ok && json.Unmarshal(raw, out) == nil {
		a.logger.DebugContext(ctx, "response cache hit", "path", path)
		return nil
	}

	doc, err := a.client.Execute(ctx, client.NewGet(path, params))
	if err != nil {
		return err
	}
	if err := doc.Decode(out); err != nil {
		return &client.ProtocolViolation{Status: http.StatusOK, Route: path, Reason: "unexpected payload shape", Err: err}
	}
	if err := a.cache.Set(ctx, key, doc.Raw(), a.cacheTTL); err != nil {
		a.logger.WarnContext(ctx, "response cache write failed", "path", path, "error", err)
	}
	return nil
}

func (a *API) notifyInvalidated(ctx context.Context, id nameless.Identifier, op policy.Operation) {
	a.logger.DebugContext(ctx, "user cache invalidated", "identifier", id.String(), "operation", string(op))
	if a.hook == nil {
		return
	}
	if err := a.hook(ctx, id, op); err != nil {
		a.logger.WarnContext(ctx, "invalidation hook failed", "identifier", id.String(), "error", err)
	}
}

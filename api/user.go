package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/totegamma/nameless-go"
	"github.com/totegamma/nameless-go/apierror"
	"github.com/totegamma/nameless-go/client"
	"github.com/totegamma/nameless-go/policy"
)

// Attributes is one fetched user document. It is immutable.
type Attributes struct {
	doc          client.Document
	info         nameless.UserInfo
	integrations map[string]nameless.Integration
}

func newAttributes(doc client.Document) (*Attributes, error) {
	var info nameless.UserInfo
	if err := doc.Decode(&info); err != nil {
		return nil, &client.ProtocolViolation{Status: http.StatusOK, Route: "users", Reason: "unexpected user document", Err: err}
	}
	if info.ID <= 0 {
		return nil, &client.ProtocolViolation{Status: http.StatusOK, Route: "users", Reason: "user document without id"}
	}

	integrations := make(map[string]nameless.Integration, len(info.Integrations))
	for _, in := range info.Integrations {
		integrations[strings.ToLower(in.Integration)] = in
	}
	return &Attributes{doc: doc, info: info, integrations: integrations}, nil
}

// Raw returns the document bytes as received.
func (a *Attributes) Raw() []byte {
	raw := a.doc.Raw()
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}

func (a *Attributes) Info() nameless.UserInfo { return a.info }

func (a *Attributes) ID() int64 { return a.info.ID }

// Field returns one top-level field of the document.
func (a *Attributes) Field(key string) (json.RawMessage, bool) {
	return a.doc.Field(key)
}

// Integration looks an integration up by type, case-insensitively.
func (a *Attributes) Integration(integration string) (nameless.Integration, bool) {
	in, ok := a.integrations[strings.ToLower(integration)]
	return in, ok
}

func (a *Attributes) Integrations() map[string]nameless.Integration {
	out := make(map[string]nameless.Integration, len(a.integrations))
	for k, v := range a.integrations {
		out[k] = v
	}
	return out
}

// userState is swapped as a whole. Before the first successful resolution it
// holds the identifier the handle was built from (plus aliases in strict
// mode); afterwards id is canonical and attrs is the cache, nil when empty.
type userState struct {
	id      nameless.Identifier
	aliases []nameless.Identifier
	attrs   *Attributes
}

// User is a handle to one remote user. Creating it makes no request; the
// first attribute access resolves and caches the user document.
//
// Concurrent use is safe, but two cold resolves may both hit the network.
type User struct {
	api   *API
	state atomic.Pointer[userState]
}

func (a *API) newUser(st *userState) *User {
	u := &User{api: a}
	u.state.Store(st)
	return u
}

// User returns a handle for id without contacting the website.
func (a *API) User(id nameless.Identifier) *User {
	return a.newUser(&userState{id: id})
}

func (a *API) UserByID(id int64) *User { return a.User(nameless.ID(id)) }

func (a *API) UserByUsername(username string) *User { return a.User(nameless.Username(username)) }

func (a *API) UserByIntegrationID(integration, identifier string) *User {
	return a.User(nameless.IntegrationID(integration, identifier))
}

func (a *API) UserByIntegrationName(integration, username string) *User {
	return a.User(nameless.IntegrationName(integration, username))
}

// NewUser builds a handle from several identifiers asserted to name the same
// user. The id wins, then the username, then integration identifiers. The
// others are dropped unless the API was built WithStrictIdentifiers, in which
// case they are checked against the first resolved document.
func (a *API) NewUser(ids ...nameless.Identifier) (*User, error) {
	best, rest, err := nameless.Preferred(ids...)
	if err != nil {
		return nil, err
	}
	st := &userState{id: best}
	if a.strict {
		st.aliases = rest
	}
	return a.newUser(st), nil
}

// seeded returns a handle whose cache is already filled, as produced by
// listings.
func (a *API) seeded(attrs *Attributes) *User {
	return a.newUser(&userState{id: nameless.ID(attrs.ID()), attrs: attrs})
}

// LookupUser resolves id eagerly. A missing user yields ErrNotFound.
func (a *API) LookupUser(ctx context.Context, id nameless.Identifier) (*User, error) {
	u := a.User(id)
	if _, err := u.Resolve(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

// Identifier is the identifier requests are currently addressed with; id:<n>
// once the handle has been resolved.
func (u *User) Identifier() nameless.Identifier {
	return u.state.Load().id
}

// Cached reports whether attributes are held locally.
func (u *User) Cached() bool {
	return u.state.Load().attrs != nil
}

// Invalidate empties the cache; the next access fetches again.
func (u *User) Invalidate() {
	for {
		cur := u.state.Load()
		if cur.attrs == nil {
			return
		}
		next := &userState{id: cur.id, aliases: cur.aliases}
		if u.state.CompareAndSwap(cur, next) {
			return
		}
	}
}

// Resolve returns the cached attributes or fetches them. A user the website
// reports as missing yields a NotFoundError.
func (u *User) Resolve(ctx context.Context) (*Attributes, error) {
	st := u.state.Load()
	if st.attrs != nil {
		return st.attrs, nil
	}
	if !st.id.Valid() {
		return nil, fmt.Errorf("%w: %q", nameless.ErrInvalidIdentifier, st.id.String())
	}

	ctx, span := tracer.Start(ctx, "User.Resolve", trace.WithAttributes(
		attribute.String("nameless.operation", string(policy.OpResolve)),
		attribute.String("nameless.identifier", st.id.String()),
	))
	defer span.End()

	doc, err := u.api.client.Execute(ctx, client.NewGet(client.Path("users", st.id.String()), nil))
	if err != nil {
		err = apierror.WithContext(err, "identifier", st.id.String())
		span.RecordError(err)
		return nil, err
	}

	var exists bool
	if err := doc.DecodeField("exists", &exists); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !exists {
		return nil, NotFoundError{Resource: "user", Identifier: st.id.String()}
	}

	attrs, err := newAttributes(doc)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := checkAliases(attrs, st.aliases); err != nil {
		span.RecordError(err)
		return nil, err
	}

	id := st.id
	if !id.IsCanonical() {
		id = nameless.ID(attrs.ID())
	}
	u.state.Store(&userState{id: id, attrs: attrs})
	return attrs, nil
}

func checkAliases(attrs *Attributes, aliases []nameless.Identifier) error {
	resolved := nameless.ID(attrs.ID())
	for _, alias := range aliases {
		if !matches(attrs, alias) {
			return &MismatchError{Resolved: resolved, Alias: alias}
		}
	}
	return nil
}

func matches(attrs *Attributes, id nameless.Identifier) bool {
	switch id.Kind() {
	case nameless.KindID:
		n, _ := id.NumericID()
		return n == attrs.ID()
	case nameless.KindUsername:
		return strings.EqualFold(attrs.info.Username, id.Value())
	case nameless.KindIntegrationID:
		in, ok := attrs.Integration(id.Integration())
		return ok && in.Identifier == id.Value()
	case nameless.KindIntegrationName:
		in, ok := attrs.Integration(id.Integration())
		return ok && strings.EqualFold(in.Username, id.Value())
	default:
		return false
	}
}

// Attribute resolves the user and returns one raw document field. A field the
// document does not carry is reported as ErrMissingAttribute.
func (u *User) Attribute(ctx context.Context, key string) (json.RawMessage, error) {
	attrs, err := u.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	v, ok := attrs.Field(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingAttribute, key)
	}
	return v, nil
}

func (u *User) Info(ctx context.Context) (nameless.UserInfo, error) {
	attrs, err := u.Resolve(ctx)
	if err != nil {
		return nameless.UserInfo{}, err
	}
	return attrs.Info(), nil
}

func (u *User) ID(ctx context.Context) (int64, error) {
	if n, ok := u.Identifier().NumericID(); ok {
		return n, nil
	}
	attrs, err := u.Resolve(ctx)
	if err != nil {
		return 0, err
	}
	return attrs.ID(), nil
}

func (u *User) Username(ctx context.Context) (string, error) {
	info, err := u.Info(ctx)
	return info.Username, err
}

func (u *User) DisplayName(ctx context.Context) (string, error) {
	info, err := u.Info(ctx)
	return info.DisplayName, err
}

func (u *User) Groups(ctx context.Context) ([]nameless.Group, error) {
	info, err := u.Info(ctx)
	return info.Groups, err
}

// PrimaryGroup is the group with the lowest order, if the user has any.
func (u *User) PrimaryGroup(ctx context.Context) (nameless.Group, bool, error) {
	groups, err := u.Groups(ctx)
	if err != nil || len(groups) == 0 {
		return nameless.Group{}, false, err
	}
	primary := groups[0]
	for _, g := range groups[1:] {
		if g.Order < primary.Order {
			primary = g
		}
	}
	return primary, true, nil
}

func (u *User) Integrations(ctx context.Context) (map[string]nameless.Integration, error) {
	attrs, err := u.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return attrs.Integrations(), nil
}

func (u *User) Integration(ctx context.Context, integration string) (nameless.Integration, bool, error) {
	attrs, err := u.Resolve(ctx)
	if err != nil {
		return nameless.Integration{}, false, err
	}
	in, ok := attrs.Integration(integration)
	return in, ok, nil
}

func (u *User) IsBanned(ctx context.Context) (bool, error) {
	info, err := u.Info(ctx)
	return info.Banned, err
}

func (u *User) IsVerified(ctx context.Context) (bool, error) {
	info, err := u.Info(ctx)
	return info.Verified, err
}

// Notifications is not cached.
func (u *User) Notifications(ctx context.Context) ([]nameless.Notification, error) {
	var out struct {
		Notifications []nameless.Notification `json:"notifications"`
	}
	req := client.NewGet(u.route("notifications"), nil)
	if err := u.call(ctx, policy.OpNotifications, req, &out); err != nil {
		return nil, err
	}
	return out.Notifications, nil
}

func (u *User) AddGroups(ctx context.Context, groupIDs ...int64) error {
	body := client.Params{}.Add("groups", groupIDs)
	return u.call(ctx, policy.OpAddGroups, client.NewPost(u.route("groups", "add"), body), nil)
}

func (u *User) RemoveGroups(ctx context.Context, groupIDs ...int64) error {
	body := client.Params{}.Add("groups", groupIDs)
	return u.call(ctx, policy.OpRemoveGroups, client.NewPost(u.route("groups", "remove"), body), nil)
}

// Verify activates a user whose email has not been validated.
func (u *User) Verify(ctx context.Context) error {
	return u.call(ctx, policy.OpVerify, client.NewPost(u.route("verify"), nil), nil)
}

func (u *User) UpdateDiscordRoles(ctx context.Context, add, remove []string) error {
	if add == nil {
		add = []string{}
	}
	if remove == nil {
		remove = []string{}
	}
	body := client.Params{}.Add("add", add).Add("remove", remove)
	return u.call(ctx, policy.OpUpdateDiscordRoles, client.NewPost(u.route("discord-roles"), body), nil)
}

func (u *User) AddCredits(ctx context.Context, cents int64) error {
	body := client.Params{}.Add("credits", cents)
	return u.call(ctx, policy.OpAddCredits, client.NewPost(u.route("add-credits"), body), nil)
}

func (u *User) RemoveCredits(ctx context.Context, cents int64) error {
	body := client.Params{}.Add("credits", cents)
	return u.call(ctx, policy.OpRemoveCredits, client.NewPost(u.route("remove-credits"), body), nil)
}

func (u *User) route(parts ...string) string {
	return client.Path(append([]string{"users", u.Identifier().String()}, parts...)...)
}

// call executes a user-scoped request and applies the invalidation policy to
// this handle on success. Failures leave the cache untouched.
func (u *User) call(ctx context.Context, op policy.Operation, req client.Request, out any) error {
	id := u.Identifier()
	if !id.Valid() {
		return fmt.Errorf("%w: %q", nameless.ErrInvalidIdentifier, id.String())
	}
	ctx, span := tracer.Start(ctx, "User.Call", trace.WithAttributes(
		attribute.String("nameless.operation", string(op)),
		attribute.String("nameless.identifier", id.String()),
	))
	defer span.End()

	doc, err := u.api.client.Execute(ctx, req)
	if err != nil {
		err = apierror.WithContext(err, "identifier", id.String())
		span.RecordError(err)
		return err
	}

	if policy.Invalidates(op) {
		u.Invalidate()
		u.api.notifyInvalidated(ctx, u.Identifier(), op)
	}

	if out != nil {
		if err := doc.Decode(out); err != nil {
			return &client.ProtocolViolation{Status: http.StatusOK, Route: req.Path(), Reason: "unexpected payload shape", Err: err}
		}
	}
	return nil
}

package api

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/totegamma/nameless-go"
	"github.com/totegamma/nameless-go/client"
)

// UserFilter narrows a user listing. Filters are sent in the order given.
type UserFilter func(client.Params) client.Params

type Operator string

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
)

func FilterBanned(banned bool) UserFilter {
	return func(p client.Params) client.Params { return p.Add("banned", banned) }
}

func FilterVerified(verified bool) UserFilter {
	return func(p client.Params) client.Params { return p.Add("verified", verified) }
}

func FilterGroup(groupID int64) UserFilter {
	return func(p client.Params) client.Params { return p.Add("group_id", groupID) }
}

// FilterIntegration keeps users that linked the given integration.
func FilterIntegration(integration string) UserFilter {
	return func(p client.Params) client.Params { return p.Add("integration", integration) }
}

// WithOperator sets how multiple filters are combined.
func WithOperator(op Operator) UserFilter {
	return func(p client.Params) client.Params { return p.Add("operator", string(op)) }
}

func Limit(n int) UserFilter {
	return func(p client.Params) client.Params { return p.Add("limit", n) }
}

// Users lists users matching filters. Each handle carries the attributes
// returned by the listing and does not fetch again until invalidated.
func (a *API) Users(ctx context.Context, filters ...UserFilter) ([]*User, error) {
	var params client.Params
	for _, f := range filters {
		params = f(params)
	}

	ctx, span := tracer.Start(ctx, "API.Users", trace.WithAttributes(
		attribute.String("nameless.filters", params.Encode()),
	))
	defer span.End()

	doc, err := a.client.Execute(ctx, client.NewGet("users", params))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var entries []json.RawMessage
	if err := doc.DecodeField("users", &entries); err != nil {
		span.RecordError(err)
		return nil, err
	}

	users := make([]*User, 0, len(entries))
	for _, raw := range entries {
		entry, err := client.NewDocument(raw)
		if err != nil {
			return nil, &client.ProtocolViolation{Status: http.StatusOK, Route: "users", Reason: "listing entry is not an object", Err: err}
		}
		attrs, err := newAttributes(entry)
		if err != nil {
			return nil, err
		}
		users = append(users, a.seeded(attrs))
	}
	return users, nil
}

// RegistrationResult is returned by RegisterUser. Link is set when the
// website requires the user to finish registration via email.
type RegistrationResult struct {
	User *User
	Link string
}

func (a *API) RegisterUser(ctx context.Context, reg nameless.Registration) (RegistrationResult, error) {
	var out struct {
		UserID int64  `json:"user_id"`
		Link   string `json:"link"`
	}
	if err := a.client.Post(ctx, "users/register", reg, &out); err != nil {
		return RegistrationResult{}, err
	}
	res := RegistrationResult{Link: out.Link}
	if out.UserID > 0 {
		res.User = a.UserByID(out.UserID)
	}
	return res, nil
}

// VerifyIntegration completes linking an external account using the code the
// user obtained on the website.
func (a *API) VerifyIntegration(ctx context.Context, integration, identifier, username, code string) error {
	body := client.Params{}.
		Add("integration", integration).
		Add("identifier", identifier).
		Add("username", username).
		Add("code", code)
	return a.client.Post(ctx, "integration/verify", body, nil)
}

// CreateReport files a report against reported on behalf of reporter.
func (a *API) CreateReport(ctx context.Context, reporter, reported *User, content string) error {
	body := client.Params{}.
		Add("reporter", reporter.Identifier().String()).
		Add("reported", reported.Identifier().String()).
		Add("content", content)
	return a.client.Post(ctx, "reports/create", body, nil)
}

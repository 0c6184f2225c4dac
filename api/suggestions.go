package api

import (
	"context"

	"github.com/totegamma/nameless-go"
	"github.com/totegamma/nameless-go/client"
	"github.com/totegamma/nameless-go/policy"
)

type Suggestions struct {
	api *API
}

func (a *API) Suggestions() Suggestions { return Suggestions{api: a} }

func (s Suggestions) List(ctx context.Context) ([]nameless.Suggestion, error) {
	var out struct {
		Suggestions []nameless.Suggestion `json:"suggestions"`
	}
	if err := s.api.client.Get(ctx, "suggestions", nil, &out); err != nil {
		return nil, err
	}
	return out.Suggestions, nil
}

func (s Suggestions) Get(ctx context.Context, id int64) (nameless.Suggestion, error) {
	var out nameless.Suggestion
	if err := s.api.client.Get(ctx, client.Path("suggestions", formatID(id)), nil, &out); err != nil {
		return nameless.Suggestion{}, err
	}
	return out, nil
}

// Like records user's vote. Votes do not touch the user document, so the
// handle keeps its cache.
func (s Suggestions) Like(ctx context.Context, id int64, user *User) error {
	return s.vote(ctx, policy.OpLikeSuggestion, id, "like", user)
}

func (s Suggestions) Dislike(ctx context.Context, id int64, user *User) error {
	return s.vote(ctx, policy.OpDislikeSuggestion, id, "dislike", user)
}

func (s Suggestions) vote(ctx context.Context, op policy.Operation, id int64, action string, user *User) error {
	body := client.Params{}.Add("user", user.Identifier().String())
	return user.call(ctx, op, client.NewPost(client.Path("suggestions", formatID(id), action), body), nil)
}

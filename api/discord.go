package api

import (
	"context"

	"github.com/totegamma/nameless-go"
	"github.com/totegamma/nameless-go/client"
)

type Discord struct {
	api *API
}

func (a *API) Discord() Discord { return Discord{api: a} }

// UpdateBotSettings tells the website where the bot runs. Empty fields are
// left unchanged.
func (d Discord) UpdateBotSettings(ctx context.Context, settings nameless.DiscordBotSettings) error {
	return d.api.client.Post(ctx, "discord/update-bot-settings", settings, nil)
}

func (d Discord) SubmitRoleList(ctx context.Context, roles []nameless.DiscordRole) error {
	if roles == nil {
		roles = []nameless.DiscordRole{}
	}
	return d.api.client.Post(ctx, "discord/submit-role-list", client.Params{}.Add("roles", roles), nil)
}

package api

import (
	"context"
	"strings"

	"github.com/totegamma/nameless-go"
	"github.com/totegamma/nameless-go/client"
)

// Websend talks to the websend module, which relays commands between the
// website and game servers.
type Websend struct {
	api *API
}

func (a *API) Websend() Websend { return Websend{api: a} }

// Commands returns the commands queued for serverID.
func (w Websend) Commands(ctx context.Context, serverID int64) ([]nameless.WebsendCommand, error) {
	var out struct {
		Commands []nameless.WebsendCommand `json:"commands"`
	}
	params := client.Params{}.Add("server_id", serverID)
	if err := w.api.client.Get(ctx, "websend/commands", params, &out); err != nil {
		return nil, err
	}
	return out.Commands, nil
}

// SendConsole uploads console lines for display on the website.
func (w Websend) SendConsole(ctx context.Context, serverID int64, lines []string) error {
	body := client.Params{}.
		Add("server_id", serverID).
		Add("content", strings.Join(lines, "\n"))
	return w.api.client.Post(ctx, "websend/console", body, nil)
}

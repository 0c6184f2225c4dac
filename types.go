package nameless

import (
	"time"
)

const (
	IntegrationMinecraft = "Minecraft"
	IntegrationDiscord   = "Discord"
)

// UserInfo is the attribute document returned by a user lookup.
type UserInfo struct {
	Exists       bool                    `json:"exists"`
	ID           int64                   `json:"id"`
	Username     string                  `json:"username"`
	DisplayName  string                  `json:"displayname"`
	Email        string                  `json:"email,omitempty"`
	Locale       string                  `json:"locale,omitempty"`
	AvatarURL    string                  `json:"avatar_url,omitempty"`
	Joined       UnixTime                `json:"joined"`
	LastOnline   UnixTime                `json:"last_online"`
	ProfileViews int64                   `json:"profile_views"`
	Banned       bool                    `json:"banned"`
	Verified     bool                    `json:"verified"`
	Groups       []Group                 `json:"groups"`
	Integrations []Integration           `json:"integrations"`
	Fields       map[string]ProfileField `json:"profile_fields,omitempty"`
}

type Group struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Staff bool   `json:"staff"`
	Order int    `json:"order"`
}

type Integration struct {
	Integration  string   `json:"integration"`
	Identifier   string   `json:"identifier"`
	Username     string   `json:"username"`
	Verified     bool     `json:"verified"`
	LinkedDate   UnixTime `json:"linked_date"`
	ShowPublicly bool     `json:"show_publicly"`
}

type ProfileField struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        int    `json:"type"`
	Public      bool   `json:"public"`
	Required    bool   `json:"required"`
	Description string `json:"description"`
	Value       string `json:"value"`
}

// Info describes the remote website.
type Info struct {
	NamelessVersion string            `json:"nameless_version"`
	Locale          string            `json:"locale"`
	Modules         []string          `json:"modules"`
	Version         map[string]string `json:"version_update,omitempty"`
}

type Announcement struct {
	ID         int64    `json:"id"`
	Header     string   `json:"header"`
	Message    string   `json:"message"`
	Pages      []string `json:"pages"`
	AllowedIDs []int64  `json:"groups"`
}

type Notification struct {
	Type    string `json:"type"`
	Message string `json:"message_short"`
	URL     string `json:"url"`
}

type Registration struct {
	Username     string                   `json:"username"`
	Email        string                   `json:"email"`
	Integrations map[string]LinkedAccount `json:"integrations,omitempty"`
}

type LinkedAccount struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
}

type WebsendCommand struct {
	ID       int64  `json:"id"`
	Command  string `json:"command_line"`
	ServerID int64  `json:"server_id"`
}

type DiscordRole struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DiscordBotSettings struct {
	URL      string `json:"url,omitempty"`
	GuildID  string `json:"guild_id,omitempty"`
	Username string `json:"bot_username,omitempty"`
	UserID   string `json:"bot_user_id,omitempty"`
}

type StoreProduct struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"price_cents"`
	Hidden      bool   `json:"hidden"`
	Disabled    bool   `json:"disabled"`
	Description string `json:"description"`
}

type StorePayment struct {
	ID          int64    `json:"id"`
	OrderID     int64    `json:"order_id"`
	Gateway     string   `json:"gateway_id"`
	Transaction string   `json:"transaction"`
	Amount      string   `json:"amount"`
	Currency    string   `json:"currency"`
	Status      int      `json:"status_id"`
	Created     UnixTime `json:"created"`
}

type Suggestion struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Author   int64    `json:"author_id"`
	Status   string   `json:"status"`
	Likes    int64    `json:"likes_count"`
	Dislikes int64    `json:"dislikes_count"`
	Created  UnixTime `json:"created"`
}

// UnixTime decodes the integer epoch seconds the API uses for timestamps.
type UnixTime struct {
	time.Time
}

func (t UnixTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(formatInt(t.Unix())), nil
}

func (t *UnixTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` || s == "0" {
		t.Time = time.Time{}
		return nil
	}
	sec, err := parseEpoch(s)
	if err != nil {
		return err
	}
	t.Time = time.Unix(sec, 0).UTC()
	return nil
}

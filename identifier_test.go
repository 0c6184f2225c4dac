package nameless

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifierRoundTrip(t *testing.T) {
	tests := []struct {
		id   Identifier
		text string
		kind IdentifierKind
	}{
		{ID(42), "id:42", KindID},
		{Username("Alice"), "username:Alice", KindUsername},
		{Username("with:colon"), "username:with:colon", KindUsername},
		{IntegrationID(IntegrationMinecraft, "069a79f4-44e9"), "integration_id:Minecraft:069a79f4-44e9", KindIntegrationID},
		{IntegrationName(IntegrationDiscord, "alice#0001"), "integration_name:Discord:alice#0001", KindIntegrationName},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.text, tc.id.String())

			parsed, err := ParseIdentifier(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.id, parsed)
			assert.Equal(t, tc.kind, parsed.Kind())
		})
	}
}

func TestParseIdentifierRejects(t *testing.T) {
	for _, s := range []string{
		"",
		"42",
		"id:",
		"id:abc",
		"id:0",
		"id:-3",
		"username:",
		"integration_id:Minecraft",
		"integration_id::abc",
		"integration_name:Discord:",
		"email:a@example.com",
	} {
		_, err := ParseIdentifier(s)
		assert.ErrorIs(t, err, ErrInvalidIdentifier, "input %q", s)
	}
}

func TestIdentifierText(t *testing.T) {
	var holder struct {
		User Identifier `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"user":"integration_id:Minecraft:abc"}`), &holder))
	assert.Equal(t, IntegrationID("Minecraft", "abc"), holder.User)

	b, err := json.Marshal(holder)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":"integration_id:Minecraft:abc"}`, string(b))

	_, err = Identifier{}.MarshalText()
	assert.Error(t, err)
}

func TestPreferred(t *testing.T) {
	best, rest, err := Preferred(
		IntegrationName(IntegrationDiscord, "alice"),
		Username("alice"),
		IntegrationID(IntegrationMinecraft, "abc"),
	)
	require.NoError(t, err)
	assert.Equal(t, Username("alice"), best)
	assert.Equal(t, []Identifier{IntegrationName(IntegrationDiscord, "alice"), IntegrationID(IntegrationMinecraft, "abc")}, rest)

	best, rest, err = Preferred(Username("alice"), ID(4))
	require.NoError(t, err)
	assert.True(t, best.IsCanonical())
	assert.Len(t, rest, 1)

	_, _, err = Preferred(Identifier{})
	assert.Error(t, err)

	best, _, err = Preferred(Identifier{}, Username("alice"))
	require.NoError(t, err)
	assert.Equal(t, Username("alice"), best)
}

func TestPreferredRejectsInvalid(t *testing.T) {
	for _, ids := range [][]Identifier{
		{ID(0), Username("alice")},
		{ID(-3)},
		{Username("alice"), Username("")},
		{IntegrationID(IntegrationMinecraft, "")},
	} {
		_, _, err := Preferred(ids...)
		assert.True(t, errors.Is(err, ErrInvalidIdentifier), "input %v: %v", ids, err)
	}
}

func TestIdentifierValid(t *testing.T) {
	tests := []struct {
		id   Identifier
		want bool
	}{
		{ID(1), true},
		{ID(0), false},
		{ID(-3), false},
		{Username("alice"), true},
		{Username(""), false},
		{IntegrationName(IntegrationDiscord, "alice"), true},
		{IntegrationName("", "alice"), false},
		{IntegrationID(IntegrationMinecraft, ""), false},
		{Identifier{}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.id.Valid(), "identifier %q", tt.id.String())
	}

	_, err := ID(0).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestUnixTime(t *testing.T) {
	var v struct {
		Joined UnixTime `json:"joined"`
		Seen   UnixTime `json:"seen"`
		Never  UnixTime `json:"never"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"joined":1700000000,"seen":"1700000100","never":null}`), &v))

	assert.True(t, v.Joined.Equal(time.Unix(1700000000, 0)))
	assert.True(t, v.Seen.Equal(time.Unix(1700000100, 0)))
	assert.True(t, v.Never.IsZero())

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"joined":1700000000,"seen":1700000100,"never":null}`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`{"joined":"soon"}`), &v))
}

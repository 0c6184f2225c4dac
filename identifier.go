// Package nameless holds the identifier encoding and value types shared by
// the nameless-go client packages.
package nameless

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidIdentifier = errors.New("invalid identifier")

// IdentifierKind tags which form of user reference an Identifier holds.
type IdentifierKind int

const (
	KindUnknown IdentifierKind = iota
	KindID
	KindUsername
	KindIntegrationID
	KindIntegrationName
)

const (
	prefixID              = "id"
	prefixUsername        = "username"
	prefixIntegrationID   = "integration_id"
	prefixIntegrationName = "integration_name"
)

func (k IdentifierKind) String() string {
	switch k {
	case KindID:
		return prefixID
	case KindUsername:
		return prefixUsername
	case KindIntegrationID:
		return prefixIntegrationID
	case KindIntegrationName:
		return prefixIntegrationName
	default:
		return "unknown"
	}
}

// Identifier references one remote user by exactly one of several
// equivalent forms. The zero value is not a valid identifier.
type Identifier struct {
	kind        IdentifierKind
	id          int64
	integration string
	value       string
}

// ID references a user by numeric website id. This is the canonical form.
func ID(id int64) Identifier {
	return Identifier{kind: KindID, id: id}
}

// Username references a user by website username.
func Username(name string) Identifier {
	return Identifier{kind: KindUsername, value: name}
}

// IntegrationID references a user by the identifier an integration (for
// example "minecraft" or "discord") knows them by.
func IntegrationID(integration, identifier string) Identifier {
	return Identifier{kind: KindIntegrationID, integration: integration, value: identifier}
}

// IntegrationName references a user by their username within an integration.
func IntegrationName(integration, username string) Identifier {
	return Identifier{kind: KindIntegrationName, integration: integration, value: username}
}

func (i Identifier) Kind() IdentifierKind { return i.kind }

func (i Identifier) IsZero() bool { return i.kind == KindUnknown }

// Valid reports whether the identifier could have come out of
// ParseIdentifier: ids are positive and every value is non-empty.
func (i Identifier) Valid() bool {
	switch i.kind {
	case KindID:
		return i.id > 0
	case KindUsername:
		return i.value != ""
	case KindIntegrationID, KindIntegrationName:
		return i.integration != "" && i.value != ""
	default:
		return false
	}
}

// IsCanonical reports whether the identifier is in id:<n> form.
func (i Identifier) IsCanonical() bool { return i.kind == KindID }

// NumericID returns the website id for KindID identifiers.
func (i Identifier) NumericID() (int64, bool) {
	if i.kind != KindID {
		return 0, false
	}
	return i.id, true
}

// Integration returns the integration type for integration identifiers.
func (i Identifier) Integration() string { return i.integration }

// Value returns the username or integration value.
func (i Identifier) Value() string { return i.value }

// String encodes the identifier in the opaque form the API accepts.
func (i Identifier) String() string {
	switch i.kind {
	case KindID:
		return prefixID + ":" + strconv.FormatInt(i.id, 10)
	case KindUsername:
		return prefixUsername + ":" + i.value
	case KindIntegrationID:
		return prefixIntegrationID + ":" + i.integration + ":" + i.value
	case KindIntegrationName:
		return prefixIntegrationName + ":" + i.integration + ":" + i.value
	default:
		return ""
	}
}

func (i Identifier) MarshalText() ([]byte, error) {
	if !i.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, i.String())
	}
	return []byte(i.String()), nil
}

func (i *Identifier) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentifier(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// ParseIdentifier decodes the opaque string form produced by String.
func ParseIdentifier(s string) (Identifier, error) {
	prefix, rest, ok := strings.Cut(s, ":")
	if !ok || rest == "" {
		return Identifier{}, fmt.Errorf("%w %q", ErrInvalidIdentifier, s)
	}

	switch prefix {
	case prefixID:
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil || id <= 0 {
			return Identifier{}, fmt.Errorf("%w: bad user id in %q", ErrInvalidIdentifier, s)
		}
		return ID(id), nil
	case prefixUsername:
		return Username(rest), nil
	case prefixIntegrationID, prefixIntegrationName:
		integration, value, ok := strings.Cut(rest, ":")
		if !ok || integration == "" || value == "" {
			return Identifier{}, fmt.Errorf("%w: bad integration identifier %q", ErrInvalidIdentifier, s)
		}
		if prefix == prefixIntegrationID {
			return IntegrationID(integration, value), nil
		}
		return IntegrationName(integration, value), nil
	default:
		return Identifier{}, fmt.Errorf("%w: unsupported kind %q", ErrInvalidIdentifier, prefix)
	}
}

// Preferred picks the authoritative identifier out of several that are
// asserted to name the same user: id first, then username, then integration
// id, then integration name. The remaining identifiers are returned in input
// order. Zero values are skipped; any other invalid identifier is an error.
func Preferred(ids ...Identifier) (Identifier, []Identifier, error) {
	best := -1
	for i, id := range ids {
		if id.IsZero() {
			continue
		}
		if !id.Valid() {
			return Identifier{}, nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id.String())
		}
		if best < 0 || id.kind < ids[best].kind {
			best = i
		}
	}
	if best < 0 {
		return Identifier{}, nil, fmt.Errorf("%w: none supplied", ErrInvalidIdentifier)
	}

	rest := make([]Identifier, 0, len(ids)-1)
	for i, id := range ids {
		if i == best || id.IsZero() {
			continue
		}
		rest = append(rest, id)
	}
	return ids[best], rest, nil
}

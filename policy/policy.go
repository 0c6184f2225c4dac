// Package policy classifies user operations by their effect on a handle's
// cached attributes.
package policy

import "strings"

type Effect int

const (
	// Read never invalidates.
	Read Effect = iota + 1
	// Write invalidates the invoking handle after a successful response.
	Write
)

func (e Effect) String() string {
	switch e {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return "unset"
	}
}

func ParseEffect(s string) Effect {
	switch strings.ToLower(s) {
	case "read":
		return Read
	case "write":
		return Write
	default:
		return 0
	}
}

// Operation names one user-scoped API call.
type Operation string

const (
	OpResolve            Operation = "user.resolve"
	OpNotifications      Operation = "user.notifications"
	OpAddGroups          Operation = "user.groups.add"
	OpRemoveGroups       Operation = "user.groups.remove"
	OpVerify             Operation = "user.verify"
	OpUpdateDiscordRoles Operation = "user.discord.roles"
	OpAddCredits         Operation = "user.store.credits.add"
	OpRemoveCredits      Operation = "user.store.credits.remove"
	OpLikeSuggestion     Operation = "user.suggestions.like"
	OpDislikeSuggestion  Operation = "user.suggestions.dislike"
)

var effects = map[Operation]Effect{
	OpResolve:            Read,
	OpNotifications:      Read,
	OpLikeSuggestion:     Read,
	OpDislikeSuggestion:  Read,
	OpAddGroups:          Write,
	OpRemoveGroups:       Write,
	OpVerify:             Write,
	OpUpdateDiscordRoles: Write,
	OpAddCredits:         Write,
	OpRemoveCredits:      Write,
}

// EffectOf returns the classification of op. Operations missing from the
// table are treated as writes.
func EffectOf(op Operation) Effect {
	if e, ok := effects[op]; ok {
		return e
	}
	return Write
}

// Invalidates reports whether a successful op must clear the cache.
func Invalidates(op Operation) bool {
	return EffectOf(op) == Write
}

// Operations lists every classified operation.
func Operations() []Operation {
	ops := make([]Operation, 0, len(effects))
	for op := range effects {
		ops = append(ops, op)
	}
	return ops
}

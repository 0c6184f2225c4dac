package policy

import (
	"testing"
)

func TestEffectOf(t *testing.T) {
	reads := []Operation{OpResolve, OpNotifications, OpLikeSuggestion, OpDislikeSuggestion}
	writes := []Operation{OpAddGroups, OpRemoveGroups, OpVerify, OpUpdateDiscordRoles, OpAddCredits, OpRemoveCredits}

	for _, op := range reads {
		if EffectOf(op) != Read || Invalidates(op) {
			t.Fatalf("%s should be a read", op)
		}
	}
	for _, op := range writes {
		if EffectOf(op) != Write || !Invalidates(op) {
			t.Fatalf("%s should be a write", op)
		}
	}
	if len(Operations()) != len(reads)+len(writes) {
		t.Fatalf("table and test out of sync: %d operations", len(Operations()))
	}
}

func TestUnknownOperationIsWrite(t *testing.T) {
	if EffectOf(Operation("user.something.new")) != Write {
		t.Fatalf("unknown operations must invalidate")
	}
}

func TestParseEffect(t *testing.T) {
	if ParseEffect("READ") != Read || ParseEffect("write") != Write || ParseEffect("x") != 0 {
		t.Fatalf("unexpected parse result")
	}
	if Write.String() != "write" || Effect(0).String() != "unset" {
		t.Fatalf("unexpected string form")
	}
}

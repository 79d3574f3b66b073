package main

import (
	"testing"

	"github.com/vovakirdan/tui-physics/internal/core"
)

func TestParseActions(t *testing.T) {
	got, err := parseActions([]string{"right", " Jump ", "up", "left", "down"})
	if err != nil {
		t.Fatalf("parseActions() failed: %v", err)
	}
	want := []core.Action{core.ActionRight, core.ActionJump, core.ActionJump, core.ActionLeft, core.ActionDown}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("action %d = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := parseActions([]string{"fly"}); err == nil {
		t.Error("unknown action should be rejected")
	}
}

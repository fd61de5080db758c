package actor

import "testing"

func TestResolve_FlagWins(t *testing.T) {
	t.Setenv(EnvVar, "env-agent")
	got := Resolve("alice", "config-default")
	if got != "alice" {
		t.Fatalf("expected alice, got %q", got)
	}
}

func TestResolve_EnvBeatsConfig(t *testing.T) {
	t.Setenv(EnvVar, "planner-bot")
	got := Resolve("", "config-default")
	if got != "planner-bot" {
		t.Fatalf("expected planner-bot, got %q", got)
	}
}

func TestResolve_ConfigDefault(t *testing.T) {
	t.Setenv(EnvVar, "")
	got := Resolve("", "team-shared")
	if got != "team-shared" {
		t.Fatalf("expected team-shared, got %q", got)
	}
}

func TestResolve_TrimsWhitespace(t *testing.T) {
	got := Resolve("  bob  ", "")
	if got != "bob" {
		t.Fatalf("expected bob, got %q", got)
	}
}

func TestResolve_NeverEmpty(t *testing.T) {
	t.Setenv(EnvVar, "")
	got := Resolve("", "")
	if got == "" {
		t.Fatal("expected a non-empty fallback identity")
	}
}

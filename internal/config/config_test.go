package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Valid(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, FileName)
	data := `version: 1
default_actor: alice
require_claim: true
list_limit: 25
urgency:
  base: 1.0
  high: 6.0
  medium: 3.0
  low: 1.0
  overdue: 5.0
  overdue_per_day: 0.5
  due_today: 4.0
  due_soon: 3.0
  tag_bonus: 0.5
  age_per_day: 0.05
  claim_penalty: 2.0
  block_penalty: 3.0
`
	os.WriteFile(p, []byte(data), 0644)

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultActor != "alice" {
		t.Fatalf("expected alice, got %q", cfg.DefaultActor)
	}
	if !cfg.RequireClaim {
		t.Fatal("expected require_claim to be true")
	}
	if cfg.ListLimit != 25 {
		t.Fatalf("expected list_limit 25, got %d", cfg.ListLimit)
	}
	if cfg.Urgency.High != 6.0 {
		t.Fatalf("expected high weight 6.0, got %v", cfg.Urgency.High)
	}
}

func TestLoad_PartialFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, FileName)
	data := `version: 1
default_actor: bob
`
	os.WriteFile(p, []byte(data), 0644)

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := DefaultConfig().Urgency
	if cfg.Urgency != want {
		t.Fatalf("expected default urgency weights, got %+v", cfg.Urgency)
	}
}

func TestLoad_BadVersion(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, FileName)
	os.WriteFile(p, []byte("version: 99\n"), 0644)

	if _, err := Load(p); err == nil {
		t.Fatal("expected validation error for unsupported version")
	}
}

func TestLoad_InvertedPriorityWeights(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, FileName)
	data := `version: 1
urgency:
  high: 1.0
  medium: 3.0
  low: 6.0
`
	os.WriteFile(p, []byte(data), 0644)

	if _, err := Load(p); err == nil {
		t.Fatal("expected validation error for inverted priority weights")
	}
}

func TestLoad_NegativeListLimit(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, FileName)
	os.WriteFile(p, []byte("version: 1\nlist_limit: -5\n"), 0644)

	if _, err := Load(p); err == nil {
		t.Fatal("expected validation error for negative list_limit")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSave_And_Reload(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, FileName)

	cfg := DefaultConfig()
	cfg.DefaultActor = "carol"
	cfg.RequireClaim = true
	cfg.Urgency.BlockPenalty = 4.5

	if err := Save(p, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(p)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.DefaultActor != "carol" {
		t.Fatalf("default_actor lost after round-trip: %q", loaded.DefaultActor)
	}
	if !loaded.RequireClaim {
		t.Fatal("require_claim lost after round-trip")
	}
	if loaded.Urgency.BlockPenalty != 4.5 {
		t.Fatalf("block_penalty lost after round-trip: %v", loaded.Urgency.BlockPenalty)
	}
}

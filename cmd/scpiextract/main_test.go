package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/abnasim/TekAutomate/internal/config"
)

func TestProfileFromConfigOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.HeaderFont = "Helvetica"
	cfg.SyntaxFonts = []string{"Consolas"}

	profile := profileFromConfig(cfg)

	if profile.HeaderFont != "Helvetica" {
		t.Errorf("Expected header font override, got %q", profile.HeaderFont)
	}
	if len(profile.SyntaxFonts) != 1 || profile.SyntaxFonts[0] != "Consolas" {
		t.Errorf("Expected syntax font override, got %v", profile.SyntaxFonts)
	}
	// Untouched fields keep their defaults.
	if profile.HeaderStyle != "Heading 4" {
		t.Errorf("Expected default header style, got %q", profile.HeaderStyle)
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := writeJSON(path, map[string]int{"total": 3}); err != nil {
		t.Fatalf("writeJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	var got map[string]int
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got["total"] != 3 {
		t.Errorf("Expected total 3, got %d", got["total"])
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCmd()

	want := map[string]bool{"extract": false, "inspect": false, "version": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Expected subcommand %q to be registered", name)
		}
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/textrank/pkg/textrank/internalerr"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultSettingsValid(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if s.Window != 5 || s.TopN != nil || !s.SelfLoops {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.Damping != 0.85 || s.Tolerance != 1e-6 || s.MaxIterations != 100 {
		t.Errorf("unexpected solver defaults: %+v", s.PageRank())
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `window: 3
top_n: 10
self_loops: false
pos_tags: [NN, NNS]
stoplist: stoplist.yaml
dict: /etc/textrank/dict.txt
`)

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Window != 3 {
		t.Errorf("Window = %d, want 3", s.Window)
	}
	if s.TopN == nil || *s.TopN != 10 {
		t.Errorf("TopN = %v, want 10", s.TopN)
	}
	if s.SelfLoops {
		t.Error("SelfLoops should be false")
	}
	if len(s.PosTags) != 2 {
		t.Errorf("PosTags = %v", s.PosTags)
	}
	// Unset keys keep their defaults.
	if s.Damping != 0.85 || s.MaxIterations != 100 {
		t.Errorf("defaults lost: %+v", s)
	}
	if s.Stoplist != filepath.Join(dir, "stoplist.yaml") {
		t.Errorf("Stoplist = %q, want path relative to settings file", s.Stoplist)
	}
	if s.Dict != "/etc/textrank/dict.txt" {
		t.Errorf("Dict = %q", s.Dict)
	}
	if s.Lexicon != "" {
		t.Errorf("Lexicon = %q, want empty", s.Lexicon)
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"zero window", "window: 0\n", internalerr.ErrInvalidConfig},
		{"damping", "damping: 1.5\n", internalerr.ErrInvalidConfig},
		{"tolerance", "tolerance: 0\n", internalerr.ErrInvalidConfig},
		{"iterations", "max_iterations: -1\n", internalerr.ErrInvalidConfig},
		{"min length", "min_length: -2\n", internalerr.ErrInvalidConfig},
		{"empty tags", "pos_tags: []\n", internalerr.ErrInvalidConfig},
		{"bad yaml", "window: [\n", internalerr.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "config.yaml", tt.content)
			if _, err := LoadSettings(path); !errors.Is(err, tt.want) {
				t.Errorf("LoadSettings error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := LoadSettings(filepath.Join(dir, "missing.yaml")); !errors.Is(err, internalerr.ErrIO) {
		t.Errorf("missing file error = %v, want ErrIO", err)
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	s := DefaultSettings()
	s.Window = -1
	s.Damping = 2
	err := s.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, internalerr.ErrInvalidConfig) || !errors.Is(err, internalerr.ErrInvalidParameter) {
		t.Errorf("error should wrap both sentinels: %v", err)
	}
}

func TestLoadDict(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dict.txt", `# Comment
machine learning|ml|ai
neural network|nn|ai

open source|tech
`)

	dict, err := LoadDict(path)
	if err != nil {
		t.Fatalf("Failed to load dict: %v", err)
	}

	if len(dict.Entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(dict.Entries))
	}

	entry := dict.Entries[0]
	if entry.Canonical != "machine learning" {
		t.Errorf("Expected 'machine learning', got '%s'", entry.Canonical)
	}
	if len(entry.Variants) != 1 || entry.Variants[0] != "ml" {
		t.Error("Expected variant 'ml'")
	}
	if entry.Category != "ai" {
		t.Errorf("Expected category 'ai', got '%s'", entry.Category)
	}

	last := dict.Entries[2]
	if len(last.Variants) != 0 || last.Category != "tech" {
		t.Errorf("unexpected entry without variants: %+v", last)
	}
}

func TestLoadDictMalformed(t *testing.T) {
	dir := t.TempDir()
	for _, content := range []string{"just a phrase\n", "|ml|ai\n"} {
		path := writeFile(t, dir, "dict.txt", content)
		if _, err := LoadDict(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("LoadDict(%q) error = %v, want ErrInvalidConfig", content, err)
		}
	}
}

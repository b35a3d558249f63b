package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/textrank/pkg/textrank/graph"
	"github.com/cognicore/textrank/pkg/textrank/ingest"
	"github.com/cognicore/textrank/pkg/textrank/internalerr"
	"github.com/cognicore/textrank/pkg/textrank/pagerank"
)

// Settings is the extraction configuration read from config.yaml.
//
// Keys missing from the file keep the values of DefaultSettings.
type Settings struct {
	Window        int      `yaml:"window"`
	TopN          *int     `yaml:"top_n"` // nil ranks every node
	Damping       float64  `yaml:"damping"`
	Tolerance     float64  `yaml:"tolerance"`
	MaxIterations int      `yaml:"max_iterations"`
	SelfLoops     bool     `yaml:"self_loops"`
	PosTags       []string `yaml:"pos_tags"`
	MinLength     int      `yaml:"min_length"`
	AllowHyphens  bool     `yaml:"allow_hyphens"`
	Encoding      string   `yaml:"encoding"`

	// Paths to auxiliary files, relative to the settings file.
	Stoplist string `yaml:"stoplist"`
	Lexicon  string `yaml:"lexicon"`
	Dict     string `yaml:"dict"`
}

// DefaultSettings returns the stock configuration: window 5, all
// keywords, damping 0.85, tolerance 1e-6, 100 iterations, self-loops on.
func DefaultSettings() Settings {
	pr := pagerank.DefaultOptions()
	in := ingest.DefaultOptions()
	return Settings{
		Window:        graph.DefaultWindow,
		Damping:       pr.Damping,
		Tolerance:     pr.Tolerance,
		MaxIterations: pr.MaxIterations,
		SelfLoops:     true,
		PosTags:       in.Tags,
		MinLength:     in.MinLength,
		AllowHyphens:  in.AllowHyphens,
		Encoding:      "utf-8",
	}
}

// LoadSettings reads a YAML settings file on top of DefaultSettings and
// validates the result.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings %s: %w: %w", path, internalerr.ErrIO, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w: %w", path, internalerr.ErrInvalidConfig, err)
	}

	dir := filepath.Dir(path)
	s.Stoplist = resolve(dir, s.Stoplist)
	s.Lexicon = resolve(dir, s.Lexicon)
	s.Dict = resolve(dir, s.Dict)

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Validate reports every invalid field, wrapped in ErrInvalidConfig.
func (s Settings) Validate() error {
	var errs []error
	if s.Window <= 0 {
		errs = append(errs, fmt.Errorf("window %d must be positive", s.Window))
	}
	if err := s.PageRank().Validate(); err != nil {
		errs = append(errs, err)
	}
	if s.MinLength < 0 {
		errs = append(errs, fmt.Errorf("min_length %d must not be negative", s.MinLength))
	}
	if len(s.PosTags) == 0 {
		errs = append(errs, errors.New("pos_tags must not be empty"))
	}
	for _, t := range s.PosTags {
		if strings.TrimSpace(t) == "" {
			errs = append(errs, errors.New("pos_tags contains an empty tag"))
			break
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", internalerr.ErrInvalidConfig, errors.Join(errs...))
}

// PageRank returns the solver options of s.
func (s Settings) PageRank() pagerank.Options {
	return pagerank.Options{
		Damping:       s.Damping,
		Tolerance:     s.Tolerance,
		MaxIterations: s.MaxIterations,
	}
}

// Ingest returns the candidate filter options of s.
func (s Settings) Ingest() ingest.Options {
	return ingest.Options{
		Tags:         append([]string(nil), s.PosTags...),
		MinLength:    s.MinLength,
		AllowHyphens: s.AllowHyphens,
	}
}

// Loader returns a Loader for the auxiliary files named in s.
func (s Settings) Loader() Loader {
	return Loader{
		StoplistPath: s.Stoplist,
		LexiconPath:  s.Lexicon,
		DictPath:     s.Dict,
		Options:      s.Ingest(),
	}
}

// Dict represents the multi-token dictionary
type Dict struct {
	Entries []ingest.DictEntry
}

// LoadDict loads the multi-token dictionary from a file.
// Format: canonical|variant1|variant2|category, '#' starts a comment.
func LoadDict(path string) (*Dict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w: %w", path, internalerr.ErrIO, err)
	}

	dict := &Dict{Entries: []ingest.DictEntry{}}
	for n, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < 2 {
			return nil, fmt.Errorf("dictionary %s line %d: want canonical|...|category: %w", path, n+1, internalerr.ErrInvalidConfig)
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if parts[0] == "" {
			return nil, fmt.Errorf("dictionary %s line %d: empty canonical form: %w", path, n+1, internalerr.ErrInvalidConfig)
		}

		dict.Entries = append(dict.Entries, ingest.DictEntry{
			Canonical: parts[0],
			Variants:  parts[1 : len(parts)-1],
			Category:  parts[len(parts)-1],
		})
	}

	return dict, nil
}

package lexicon

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon maps word variants to a canonical form so that inflections
// and synonyms of one concept collapse into a single graph node:
// "graphs" -> "graph", "ranking" -> "rank".
type Lexicon struct {
	// canonical -> all variants, canonical first
	groups map[string][]string
	// variant -> canonical
	reverse map[string]string
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		groups:  make(map[string][]string),
		reverse: make(map[string]string),
	}
}

// LoadFromYAML loads synonym groups from a YAML file.
//
// Expected format:
//
//	synonyms:
//	  - canonical: graph
//	    variants: [graphs, network, networks]
//	  - canonical: rank
//	    variants: [ranking, ranks, ranked]
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config struct {
		Synonyms []struct {
			Canonical string   `yaml:"canonical"`
			Variants  []string `yaml:"variants"`
		} `yaml:"synonyms"`
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}

	lex := New()
	for i, entry := range config.Synonyms {
		if strings.TrimSpace(entry.Canonical) == "" {
			return nil, fmt.Errorf("lexicon %s: entry %d has no canonical form", path, i)
		}
		lex.AddSynonymGroup(entry.Canonical, entry.Variants)
	}
	return lex, nil
}

// AddSynonymGroup registers variants of canonical. Re-adding a canonical
// form replaces its previous group.
func (l *Lexicon) AddSynonymGroup(canonical string, variants []string) {
	canonical = strings.ToLower(strings.TrimSpace(canonical))

	if old, exists := l.groups[canonical]; exists {
		for _, v := range old {
			delete(l.reverse, v)
		}
	}

	group := []string{canonical}
	seen := map[string]bool{canonical: true}
	for _, v := range variants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		group = append(group, v)
	}

	l.groups[canonical] = group
	for _, v := range group {
		l.reverse[v] = canonical
	}
}

// Normalize returns the canonical form of a token, or the lower-cased
// token itself when it is unknown.
func (l *Lexicon) Normalize(token string) string {
	token = strings.ToLower(token)
	if canonical, ok := l.reverse[token]; ok {
		return canonical
	}
	return token
}

// Variants returns every known form of token, canonical first.
func (l *Lexicon) Variants(token string) []string {
	token = strings.ToLower(token)
	if canonical, ok := l.reverse[token]; ok {
		return l.groups[canonical]
	}
	return []string{token}
}

// HasSynonyms reports whether token belongs to any group.
func (l *Lexicon) HasSynonyms(token string) bool {
	_, ok := l.reverse[strings.ToLower(token)]
	return ok
}

// Canonicals lists the canonical forms in lexical order.
func (l *Lexicon) Canonicals() []string {
	out := make([]string, 0, len(l.groups))
	for c := range l.groups {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() Stats {
	total := 0
	for _, g := range l.groups {
		total += len(g)
	}
	return Stats{
		SynonymGroups: len(l.groups),
		TotalVariants: total,
	}
}

// Stats holds statistics about lexicon contents.
type Stats struct {
	SynonymGroups int // canonical forms
	TotalVariants int // variants across all groups, canonicals included
}

package stoplist

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manager holds the stopwords excluded from candidate words.
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a stoplist from the given words, lower-cased.
func NewManager(initialStops []string) *Manager {
	m := &Manager{stops: make(map[string]struct{}, len(initialStops))}
	for _, s := range initialStops {
		m.Add(s)
	}
	return m
}

// English returns a manager seeded with the standard English list.
func English() *Manager {
	return NewManager(english)
}

// File is the YAML layout of a stoplist file.
type File struct {
	// Extends names a built-in list to start from ("english" or "").
	Extends string   `yaml:"extends"`
	Terms   []string `yaml:"terms"`
}

// Load reads a stoplist YAML file:
//
//	extends: english
//	terms: [figure, table, et, al]
func Load(path string) (*Manager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse stoplist %s: %w", path, err)
	}

	var m *Manager
	switch strings.ToLower(strings.TrimSpace(f.Extends)) {
	case "":
		m = NewManager(nil)
	case "english":
		m = English()
	default:
		return nil, fmt.Errorf("stoplist %s: unknown base list %q", path, f.Extends)
	}
	for _, t := range f.Terms {
		m.Add(t)
	}
	return m, nil
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[strings.ToLower(token)]
	return ok
}

// Add adds a token to the stoplist
func (m *Manager) Add(token string) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return
	}
	m.stops[token] = struct{}{}
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, strings.ToLower(token))
}

// Len returns the number of stopwords.
func (m *Manager) Len() int { return len(m.stops) }

// All returns all stopwords in lexical order.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// english mirrors the NLTK English stopword corpus.
var english = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you",
	"you're", "you've", "you'll", "you'd", "your", "yours", "yourself",
	"yourselves", "he", "him", "his", "himself", "she", "she's", "her",
	"hers", "herself", "it", "it's", "its", "itself", "they", "them",
	"their", "theirs", "themselves", "what", "which", "who", "whom",
	"this", "that", "that'll", "these", "those", "am", "is", "are", "was",
	"were", "be", "been", "being", "have", "has", "had", "having", "do",
	"does", "did", "doing", "a", "an", "the", "and", "but", "if", "or",
	"because", "as", "until", "while", "of", "at", "by", "for", "with",
	"about", "against", "between", "into", "through", "during", "before",
	"after", "above", "below", "to", "from", "up", "down", "in", "out",
	"on", "off", "over", "under", "again", "further", "then", "once",
	"here", "there", "when", "where", "why", "how", "all", "any", "both",
	"each", "few", "more", "most", "other", "some", "such", "no", "nor",
	"not", "only", "own", "same", "so", "than", "too", "very", "s", "t",
	"can", "will", "just", "don", "don't", "should", "should've", "now",
	"d", "ll", "m", "o", "re", "ve", "y", "ain", "aren", "aren't",
	"couldn", "couldn't", "didn", "didn't", "doesn", "doesn't", "hadn",
	"hadn't", "hasn", "hasn't", "haven", "haven't", "isn", "isn't", "ma",
	"mightn", "mightn't", "mustn", "mustn't", "needn", "needn't", "shan",
	"shan't", "shouldn", "shouldn't", "wasn", "wasn't", "weren",
	"weren't", "won", "won't", "wouldn", "wouldn't",
}

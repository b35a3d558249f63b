package config

import (
	"fmt"

	"github.com/cognicore/textrank/pkg/textrank/ingest"
	"github.com/cognicore/textrank/pkg/textrank/lexicon"
	"github.com/cognicore/textrank/pkg/textrank/stoplist"
)

// Loader loads the auxiliary files and constructs the candidate filter.
type Loader struct {
	StoplistPath string // empty uses the built-in English list
	LexiconPath  string
	DictPath     string
	Options      ingest.Options // zero value uses ingest.DefaultOptions
}

// Components holds all loaded configuration components
type Components struct {
	Stoplist *stoplist.Manager
	Lexicon  *lexicon.Lexicon // nil without a lexicon file
	Phrases  *ingest.PhraseParser
	Pipeline *ingest.Pipeline
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.StoplistPath != "" {
		stops, err := stoplist.Load(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Stoplist = stops
	} else {
		comp.Stoplist = stoplist.English()
	}

	if l.LexiconPath != "" {
		lex, err := lexicon.LoadFromYAML(l.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Lexicon = lex
	}

	if l.DictPath != "" {
		dict, err := LoadDict(l.DictPath)
		if err != nil {
			return nil, fmt.Errorf("load dictionary: %w", err)
		}
		comp.Phrases = ingest.NewPhraseParser(dict.Entries)
	} else {
		comp.Phrases = ingest.NewPhraseParser(nil)
	}

	opts := l.Options
	if len(opts.Tags) == 0 {
		opts = ingest.DefaultOptions()
	}
	comp.Pipeline = ingest.NewPipeline(ingest.NewTokenizer(), ingest.NewRuleTagger(), comp.Stoplist, opts)
	if comp.Lexicon != nil {
		comp.Pipeline.SetLexicon(comp.Lexicon)
	}
	if comp.Phrases.Len() > 0 {
		comp.Pipeline.SetPhrases(comp.Phrases)
	}

	return comp, nil
}

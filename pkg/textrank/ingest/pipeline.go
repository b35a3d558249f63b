package ingest

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/textrank/pkg/textrank/stoplist"
)

// StopChecker reports whether a lower-cased word is a stopword.
type StopChecker interface {
	IsStop(word string) bool
}

// Normalizer maps a lower-cased word to its canonical form.
type Normalizer interface {
	Normalize(word string) string
}

// Options controls which tokens survive as candidates.
type Options struct {
	Tags         []string // part-of-speech tags to keep
	MinLength    int      // minimum rune length of a candidate
	AllowHyphens bool     // keep hyphenated compounds such as "long-term"
}

// DefaultOptions keeps nouns and adjectives of any length, hyphenated
// compounds included.
func DefaultOptions() Options {
	return Options{
		Tags:         append([]string(nil), DefaultTags...),
		MinLength:    1,
		AllowHyphens: true,
	}
}

// Pipeline orchestrates the candidate flow:
// text → tokenization → tagging → filtering → normalization → phrase merging
type Pipeline struct {
	tokenizer *Tokenizer
	tagger    Tagger
	stops     StopChecker
	lexicon   Normalizer
	phrases   *PhraseParser
	allowed   map[string]struct{}
	minLength int
	hyphens   bool
}

// NewPipeline creates a candidate pipeline. A nil stops keeps every word.
func NewPipeline(tokenizer *Tokenizer, tagger Tagger, stops StopChecker, opts Options) *Pipeline {
	allowed := make(map[string]struct{}, len(opts.Tags))
	for _, t := range opts.Tags {
		allowed[strings.ToUpper(strings.TrimSpace(t))] = struct{}{}
	}
	return &Pipeline{
		tokenizer: tokenizer,
		tagger:    tagger,
		stops:     stops,
		allowed:   allowed,
		minLength: opts.MinLength,
		hyphens:   opts.AllowHyphens,
	}
}

// Default returns an English pipeline with the built-in stoplist and tagger.
func Default() *Pipeline {
	return NewPipeline(NewTokenizer(), NewRuleTagger(), stoplist.English(), DefaultOptions())
}

// SetLexicon assigns a lexicon for synonym normalization.
func (p *Pipeline) SetLexicon(lex Normalizer) {
	p.lexicon = lex
}

// SetPhrases assigns a multi-word phrase dictionary.
func (p *Pipeline) SetPhrases(parser *PhraseParser) {
	p.phrases = parser
}

// TaggedToken is a token with its part-of-speech tag and whether it
// was kept as a candidate.
type TaggedToken struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
	Kept bool   `json:"kept"`
}

// Processed holds the intermediate and final results for one text.
type Processed struct {
	Tokens     []TaggedToken
	Candidates []string
}

// Candidates returns the ordered candidate words of text.
func (p *Pipeline) Candidates(text string) []string {
	return p.Process(text).Candidates
}

// Process runs text through the full pipeline.
func (p *Pipeline) Process(text string) Processed {
	tokens := p.tokenizer.Tokenize(norm.NFC.String(text))
	tags := p.tagger.Tag(tokens)

	out := Processed{Tokens: make([]TaggedToken, len(tokens))}
	words := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		word, ok := p.accept(tok, tags[i])
		out.Tokens[i] = TaggedToken{Text: tok, Tag: tags[i], Kept: ok}
		if ok {
			words = append(words, word)
		}
	}

	if p.phrases != nil {
		words = p.phrases.Parse(words)
	}
	out.Candidates = words
	return out
}

// accept applies tag, shape and stopword filtering, returning the
// normalized word.
func (p *Pipeline) accept(tok, tag string) (string, bool) {
	if _, ok := p.allowed[tag]; !ok {
		return "", false
	}
	if !IsAlnum(tok, p.hyphens) || isNumericOnly(tok) {
		return "", false
	}
	word := strings.ToLower(tok)
	if utf8.RuneCountInString(word) < p.minLength {
		return "", false
	}
	if p.isStop(word) {
		return "", false
	}
	if p.lexicon != nil {
		word = p.lexicon.Normalize(word)
		if p.isStop(word) {
			return "", false
		}
	}
	return word, true
}

func (p *Pipeline) isStop(word string) bool {
	return p.stops != nil && p.stops.IsStop(word)
}

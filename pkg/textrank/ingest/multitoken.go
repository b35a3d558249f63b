package ingest

import "strings"

// PhraseParser merges adjacent candidate words that form a known
// multi-word term into a single candidate ("machine", "learning" ->
// "machine learning").
type PhraseParser struct {
	dict   map[string]DictEntry // phrase -> entry
	maxLen int
}

// DictEntry represents a dictionary entry for a multi-token phrase
type DictEntry struct {
	Canonical string
	Category  string
	Variants  []string
}

// NewPhraseParser creates a parser with the given dictionary
func NewPhraseParser(entries []DictEntry) *PhraseParser {
	dict := make(map[string]DictEntry)
	maxLen := 1
	add := func(phrase string, e DictEntry) {
		phrase = strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
		if phrase == "" {
			return
		}
		dict[phrase] = e
		if l := len(strings.Fields(phrase)); l > maxLen {
			maxLen = l
		}
	}
	for _, e := range entries {
		e.Canonical = strings.Join(strings.Fields(strings.ToLower(e.Canonical)), " ")
		add(e.Canonical, e)
		for _, v := range e.Variants {
			add(v, e)
		}
	}
	return &PhraseParser{dict: dict, maxLen: maxLen}
}

// Len returns the number of phrases known to the parser.
func (p *PhraseParser) Len() int { return len(p.dict) }

// Parse applies greedy longest-match; single tokens that are listed
// variants are replaced with their canonical form.
func (p *PhraseParser) Parse(tokens []string) []string {
	if len(p.dict) == 0 {
		return tokens
	}
	result := make([]string, 0, len(tokens))
	i := 0

	for i < len(tokens) {
		matched := ""
		matchLen := 1

		maxPhrase := min(p.maxLen, len(tokens)-i)
		for n := maxPhrase; n >= 2; n-- {
			phrase := strings.Join(tokens[i:i+n], " ")
			if entry, ok := p.dict[phrase]; ok {
				matched = entry.Canonical
				matchLen = n
				break
			}
		}

		if matched != "" {
			result = append(result, matched)
			i += matchLen
			continue
		}
		if entry, ok := p.dict[tokens[i]]; ok {
			result = append(result, entry.Canonical)
		} else {
			result = append(result, tokens[i])
		}
		i++
	}

	return result
}

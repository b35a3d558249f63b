package ingest

import (
	"strings"
	"unicode"
)

// Tokenizer splits raw text into word and punctuation tokens in the
// manner of the Penn Treebank conventions: words keep their case,
// internal hyphens and apostrophes; clitics such as "n't" and "'s" are
// split off; every other punctuation rune is its own token.
type Tokenizer struct{}

// NewTokenizer creates a tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize splits text into tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	emit := func() {
		if current.Len() == 0 {
			return
		}
		tokens = append(tokens, splitClitics(strings.Trim(current.String(), "-'’"))...)
		current.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		switch {
		case isWordRune(r):
			current.WriteRune(r)
		case (r == '-' || r == '\'' || r == '’') && current.Len() > 0 && i+1 < len(runes) && isWordRune(runes[i+1]):
			// joiner between word runes
			if r == '’' {
				r = '\''
			}
			current.WriteRune(r)
		case unicode.IsSpace(r):
			emit()
		default:
			emit()
			if unicode.IsPunct(r) || unicode.IsSymbol(r) {
				tokens = append(tokens, string(r))
			}
		}
	}
	emit()

	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Mn, r)
}

var clitics = []string{"n't", "'s", "'re", "'ve", "'ll", "'d", "'m"}

// splitClitics separates a trailing English clitic: "don't" -> "do", "n't".
func splitClitics(word string) []string {
	if word == "" {
		return nil
	}
	lower := strings.ToLower(word)
	for _, c := range clitics {
		if strings.HasSuffix(lower, c) && len(word) > len(c) {
			cut := len(word) - len(c)
			return []string{word[:cut], word[cut:]}
		}
	}
	return []string{word}
}

// IsAlnum reports whether token consists only of letters and digits.
// With allowHyphens, single hyphens between alphanumeric runs are
// accepted too ("state-of-the-art").
func IsAlnum(token string, allowHyphens bool) bool {
	if token == "" {
		return false
	}
	prevHyphen := true
	for _, r := range token {
		if r == '-' && allowHyphens {
			if prevHyphen {
				return false
			}
			prevHyphen = true
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.Is(unicode.Mn, r) {
			return false
		}
		prevHyphen = false
	}
	return !prevHyphen
}

// isNumericOnly returns true if the token contains only digits and hyphens.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

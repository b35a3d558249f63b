package ingest

import (
	"strings"
	"unicode"
)

// Tagger assigns a Penn Treebank part-of-speech tag to each token.
type Tagger interface {
	Tag(tokens []string) []string
}

// DefaultTags are the categories kept as candidate words: common nouns
// and adjectives in all degrees.
var DefaultTags = []string{"NN", "NNS", "JJ", "JJR", "JJS"}

// RuleTagger is a lexicon-and-suffix tagger. Closed-class words come
// from a fixed table; open-class words are guessed from their suffix,
// capitalisation and the previous tag. Unknown words default to NN.
type RuleTagger struct {
	lexicon map[string]string
}

// NewRuleTagger creates a tagger with the built-in English tables.
func NewRuleTagger() *RuleTagger {
	lex := make(map[string]string, 512)
	for tag, words := range closedClass {
		for _, w := range strings.Fields(words) {
			lex[w] = tag
		}
	}
	return &RuleTagger{lexicon: lex}
}

// Override forces word to be tagged as tag.
func (t *RuleTagger) Override(word, tag string) {
	t.lexicon[strings.ToLower(word)] = tag
}

// Tag implements Tagger.
func (t *RuleTagger) Tag(tokens []string) []string {
	tags := make([]string, len(tokens))
	sentenceStart := true
	prev := ""
	for i, tok := range tokens {
		tag := t.tagOne(tok, prev, sentenceStart)
		tags[i] = tag
		sentenceStart = tag == "."
		if tag != "''" && tag != "," {
			prev = tag
		}
	}
	return tags
}

func (t *RuleTagger) tagOne(tok, prev string, sentenceStart bool) string {
	if tok == "" {
		return "NN"
	}
	r := []rune(tok)
	if len(r) == 1 && !unicode.IsLetter(r[0]) && !unicode.IsNumber(r[0]) {
		switch r[0] {
		case '.', '!', '?':
			return "."
		case ',', ';':
			return ","
		case ':':
			return ":"
		case '"', '\'', '`':
			return "''"
		}
		return "SYM"
	}

	lower := strings.ToLower(tok)
	if tag, ok := t.lexicon[lower]; ok {
		return tag
	}
	if isNumericOnly(lower) {
		return "CD"
	}

	if unicode.IsUpper(r[0]) && !sentenceStart {
		if strings.HasSuffix(lower, "s") && len(lower) > 3 {
			return "NNPS"
		}
		return "NNP"
	}

	// Bare verb form after a modal or infinitival "to".
	if prev == "MD" || prev == "TO" {
		if isVerbStem(lower) {
			return "VB"
		}
	}

	return guessOpenClass(lower, prev)
}

func isDeterminerLike(tag string) bool {
	switch tag {
	case "DT", "PRP$", "JJ", "JJR", "JJS", "POS", "CD", "IN":
		return true
	}
	return false
}

// guessOpenClass tags a lower-cased word that is not in the closed-class table.
func guessOpenClass(w, prev string) string {
	if _, ok := comparatives[w]; ok {
		return "JJR"
	}
	if _, ok := superlatives[w]; ok {
		return "JJS"
	}
	if _, ok := adjectives[w]; ok {
		return "JJ"
	}
	if isVerbStem(w) && (prev == "PRP" || prev == "NNS" || prev == "WDT" || prev == "WP") {
		return "VBP"
	}

	n := len(w)
	switch {
	case n > 4 && strings.HasSuffix(w, "ly"):
		if _, ok := lyNouns[w]; ok {
			return "NN"
		}
		return "RB"
	case n > 4 && strings.HasSuffix(w, "ing"):
		if isDeterminerLike(prev) {
			return "NN"
		}
		return "VBG"
	case n > 4 && strings.HasSuffix(w, "ed") && !strings.HasSuffix(w, "eed"):
		switch prev {
		case "VBZ", "VBD", "VBP", "VB", "RB":
			return "VBN"
		case "DT", "PRP$", "RBR", "RBS":
			return "JJ"
		}
		return "VBD"
	}

	for _, suf := range adjSuffixes {
		if n > len(suf)+2 && strings.HasSuffix(w, suf) {
			return "JJ"
		}
	}
	if n > 5 && strings.HasSuffix(w, "iest") {
		return "JJS"
	}

	if n > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") &&
		!strings.HasSuffix(w, "us") && !strings.HasSuffix(w, "is") {
		if (prev == "PRP" || prev == "NN" || prev == "NNP") && isThirdPerson(w) {
			return "VBZ"
		}
		return "NNS"
	}
	return "NN"
}

func isVerbStem(w string) bool {
	_, ok := commonVerbs[w]
	return ok
}

// isThirdPerson reports whether w is the -s form of a known verb.
func isThirdPerson(w string) bool {
	n := len(w)
	switch {
	case strings.HasSuffix(w, "ies"):
		return isVerbStem(w[:n-3] + "y")
	case strings.HasSuffix(w, "es") && isVerbStem(w[:n-2]):
		return true
	}
	return isVerbStem(w[:n-1])
}

var adjSuffixes = []string{"ous", "ful", "ive", "able", "ible", "ical", "ial", "less", "ish", "ary"}

var closedClass = map[string]string{
	"DT": "the a an this that these those every each some any no all both either neither another such " +
		"half",
	"PRP":  "i you he she it we they me him her us them myself yourself himself herself itself ourselves themselves one",
	"PRP$": "my your his its our their",
	"IN": "of in on at by for with about against between into through during before after above below " +
		"from up down over under than since until while because if although though whether as like per via " +
		"within without upon among across toward towards behind beyond near out off around despite throughout " +
		"onto unlike except",
	"TO":  "to",
	"CC":  "and or but nor yet plus",
	"MD":  "can could may might must shall should will would",
	"VB":  "be",
	"VBZ": "is has does",
	"VBP": "are am have do",
	"VBD": "was were had did said made went got took came knew saw",
	"VBN": "been done gone known seen taken given",
	"VBG": "being having doing",
	"RB": "not very also often always never here there now then too quite just only even still already soon " +
		"again once almost perhaps rather however thus therefore instead ever far well",
	"RBR": "more less",
	"RBS": "most least",
	"WDT": "which whatever",
	"WP":  "who whom what whoever",
	"WP$": "whose",
	"WRB": "where when why how",
	"CD":  "zero two three four five six seven eight nine ten hundred thousand million billion",
	"POS": "'s '",
	"RP":  "n't",
	"UH":  "oh yes hello ok",
}

var lyNouns = wordSet("family supply assembly anomaly butterfly monopoly rally reply ally belly jelly")

var comparatives = wordSet("better worse larger smaller bigger higher lower greater faster slower longer shorter " +
	"stronger weaker easier harder newer older deeper wider richer simpler cheaper closer earlier later")

var superlatives = wordSet("best worst largest smallest biggest highest lowest greatest fastest slowest longest " +
	"shortest strongest weakest easiest hardest newest oldest deepest widest simplest cheapest closest earliest latest")

var adjectives = wordSet("good new first last long great little own other old right big high different small " +
	"large next early young important few public bad same free real full simple strong complex main major " +
	"modern natural human social local general common recent similar specific key short low hard easy fast slow " +
	"clear whole open certain several various useful efficient effective random linear global final single " +
	"basic central current entire total possible available popular standard typical unique unsupervised " +
	"supervised semantic statistical numerical weighted undirected directed")

var commonVerbs = wordSet("use make get go see know take give find think tell become show leave feel put bring " +
	"begin keep hold write stand provide allow run build rank extract compute need want help work call try ask " +
	"seem move live believe happen include continue set learn change lead understand follow stop create speak " +
	"read spend grow open walk win offer remember love consider appear buy wait serve die send expect stay fall " +
	"cut reach kill remain suggest raise pass sell require report decide pull describe produce represent " +
	"study apply teach focus")

func wordSet(words string) map[string]struct{} {
	fields := strings.Fields(words)
	set := make(map[string]struct{}, len(fields))
	for _, w := range fields {
		set[w] = struct{}{}
	}
	return set
}

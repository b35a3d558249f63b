package rank

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cognicore/textrank/pkg/textrank/internalerr"
)

// TieTolerance is the score difference under which two keywords are
// considered tied and ordered by first occurrence instead. Ties are
// measured from the highest score of each tied run, so they do not chain.
const TieTolerance = 1e-12

// Keyword is a ranked candidate word.
type Keyword struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// Rank orders scores descending and keeps at most topN entries.
//
// order lists words by first occurrence in the candidate sequence and
// breaks ties. Words absent from order sort after those present, by
// label. A nil topN returns everything; topN <= 0 returns an empty list.
func Rank(scores map[string]float64, order []string, topN *int) []Keyword {
	if topN != nil && *topN <= 0 {
		return []Keyword{}
	}

	pos := make(map[string]int, len(order))
	for i, w := range order {
		if _, ok := pos[w]; !ok {
			pos[w] = i
		}
	}

	type entry struct {
		Keyword
		pos int
	}
	entries := make([]entry, 0, len(scores))
	for w, s := range scores {
		p, ok := pos[w]
		if !ok {
			p = math.MaxInt
		}
		entries = append(entries, entry{Keyword: Keyword{Word: w, Score: s}, pos: p})
	}

	byPos := func(a, b entry) bool {
		if a.pos != b.pos {
			return a.pos < b.pos
		}
		return a.Word < b.Word
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return byPos(a, b)
	})

	// Entries within TieTolerance of the highest score of their run are
	// tied and reordered by first occurrence.
	for i := 0; i < len(entries); {
		j := i + 1
		for j < len(entries) && entries[i].Score-entries[j].Score <= TieTolerance {
			j++
		}
		tied := entries[i:j]
		sort.Slice(tied, func(a, b int) bool { return byPos(tied[a], tied[b]) })
		i = j
	}

	n := len(entries)
	if topN != nil && *topN < n {
		n = *topN
	}
	out := make([]Keyword, n)
	for i := range out {
		out[i] = entries[i].Keyword
	}
	return out
}

// Top returns a pointer to n, for passing a limit to Rank.
func Top(n int) *int { return &n }

// ParseTopN parses a user-supplied keyword count. An empty string means
// no limit; anything that is not an integer is rejected.
func ParseTopN(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("top-n %q is not a valid number: %w", s, internalerr.ErrInvalidParameter)
	}
	return &n, nil
}

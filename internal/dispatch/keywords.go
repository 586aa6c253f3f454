package dispatch

import (
	"strings"
	"unicode"

	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/roach88/hotelite/internal/grammar"
)

// Keyword binds a command phrase to its command kind.
type Keyword struct {
	Phrase  string
	Command grammar.Command
}

// Keywords is the command vocabulary. Phrases are lower case with single spaces.
var Keywords = []Keyword{
	{"bye", grammar.CmdBye},
	{"add housekeeper", grammar.CmdAddHousekeeper},
	{"delete housekeeper", grammar.CmdDeleteHousekeeper},
	{"view recorded housekeeper", grammar.CmdViewHousekeepers},
	{"availability", grammar.CmdSetAvailability},
	{"get available on", grammar.CmdAvailableOn},
	{"is a new week", grammar.CmdResetAvailability},
	{"is a new year", grammar.CmdNewYear},
	{"add housekeeper performance", grammar.CmdAddPerformance},
	{"view housekeeper performances", grammar.CmdViewPerformances},
	{"assign", grammar.CmdAssign},
	{"unassign", grammar.CmdUnassign},
	{"check in", grammar.CmdCheckIn},
	{"check out", grammar.CmdCheckOut},
	{"check room", grammar.CmdCheckRoom},
	{"check level", grammar.CmdCheckLevel},
	{"check category", grammar.CmdCheckCategory},
	{"check all", grammar.CmdCheckAll},
	{"add item", grammar.CmdAddItem},
	{"update item pax", grammar.CmdUpdateItemPax},
	{"update item name", grammar.CmdUpdateItemName},
	{"delete item", grammar.CmdDeleteItem},
	{"search item", grammar.CmdSearchItem},
	{"view all items", grammar.CmdViewItems},
	{"view items with zero pax", grammar.CmdViewZeroPax},
	{"add satisfaction", grammar.CmdAddSatisfaction},
	{"view satisfactions", grammar.CmdViewSatisfactions},
	{"average satisfaction", grammar.CmdAverageSatisfaction},
	{"add event", grammar.CmdAddEvent},
	{"list events", grammar.CmdListEvents},
	{"delete event", grammar.CmdDeleteEvent},
}

// maxSuggestionDistance bounds the edit distance of a "did you mean" hint.
const maxSuggestionDistance = 3

// keywordTable resolves the leading words of a line to a command.
type keywordTable struct {
	byPhrase map[string]grammar.Command
	maxWords int
	phrases  []string
	matcher  *closestmatch.ClosestMatch
}

func newKeywordTable(keywords []Keyword) *keywordTable {
	t := &keywordTable{byPhrase: make(map[string]grammar.Command, len(keywords))}
	for _, k := range keywords {
		t.byPhrase[k.Phrase] = k.Command
		t.phrases = append(t.phrases, k.Phrase)
		if n := len(strings.Fields(k.Phrase)); n > t.maxWords {
			t.maxWords = n
		}
	}
	t.matcher = closestmatch.New(t.phrases, []int{2, 3})
	return t
}

// span is the byte range of one word.
type span struct{ start, end int }

// leadingWords returns the spans of up to max whitespace-separated words.
func leadingWords(s string, max int) []span {
	var out []span
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				out = append(out, span{start, i})
				start = -1
				if len(out) == max {
					return out
				}
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 && len(out) < max {
		out = append(out, span{start, len(s)})
	}
	return out
}

func joinWords(s string, words []span) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = s[w.start:w.end]
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// lookup finds the longest phrase that equals the leading words of line.
// The remainder keeps its original case and spacing.
func (t *keywordTable) lookup(line string) (grammar.Command, string, bool) {
	words := leadingWords(line, t.maxWords)
	for n := len(words); n > 0; n-- {
		if cmd, ok := t.byPhrase[joinWords(line, words[:n])]; ok {
			return cmd, line[words[n-1].end:], true
		}
	}
	return "", "", false
}

// suggest returns the phrase closest to the start of line, or "" when
// nothing is near enough.
func (t *keywordTable) suggest(line string) string {
	words := leadingWords(line, t.maxWords)
	if len(words) == 0 {
		return ""
	}
	candidate := t.matcher.Closest(joinWords(line, words))
	if candidate == "" {
		return ""
	}
	n := min(len(strings.Fields(candidate)), len(words))
	typed := joinWords(line, words[:n])
	if levenshtein.DistanceForStrings([]rune(typed), []rune(candidate), levenshtein.DefaultOptions) > maxSuggestionDistance {
		return ""
	}
	return candidate
}

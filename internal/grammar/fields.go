package grammar

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/roach88/hotelite/internal/domain"
)

var namePattern = regexp.MustCompile(`^[A-Za-z ]+$`)

// splitPair splits rest on a delimiter that must occur exactly once and
// returns both trimmed, non-empty sides.
func splitPair(rest, delim, leftField, rightField string) (string, string, error) {
	switch n := strings.Count(rest, delim); {
	case n == 0:
		return "", "", missingDelimiter(delim, leftField, rightField)
	case n > 1:
		return "", "", ambiguousDelimiter(delim)
	}
	left, right, _ := strings.Cut(rest, delim)
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if left == "" {
		return "", "", emptyField(leftField)
	}
	if right == "" {
		return "", "", emptyField(rightField)
	}
	return left, right, nil
}

// tag is a case-insensitive field label such as "/Name:".
type tag struct {
	label string
	field string
}

// splitTagged extracts the value following each tag. Tags must each occur
// once, in the given order, with nothing before the first one.
func splitTagged(rest string, tags ...tag) ([]string, error) {
	starts := make([]int, len(tags))
	for i, t := range tags {
		idx := indexFold(rest, t.label)
		if idx < 0 {
			return nil, missingDelimiter(t.label, "fields", t.field)
		}
		if indexFold(rest[idx+len(t.label):], t.label) >= 0 {
			return nil, ambiguousDelimiter(t.label)
		}
		if i > 0 && idx < starts[i-1] {
			return nil, missingDelimiter(t.label, tags[i-1].field, t.field)
		}
		starts[i] = idx
	}
	if lead := strings.TrimSpace(rest[:starts[0]]); lead != "" {
		return nil, unexpectedArgument(lead)
	}
	values := make([]string, len(tags))
	for i, t := range tags {
		end := len(rest)
		if i+1 < len(tags) {
			end = starts[i+1]
		}
		v := strings.TrimSpace(rest[starts[i]+len(t.label) : end])
		if v == "" {
			return nil, emptyField(t.field)
		}
		values[i] = v
	}
	return values, nil
}

// indexFold is strings.Index with ASCII case folding of sub.
func indexFold(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

func parseInt(field, text string) (int, error) {
	text = strings.TrimSpace(text)
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, invalidNumber(field, text)
	}
	return v, nil
}

func parseInRange(field, text string, r Range) (int, error) {
	v, err := parseInt(field, text)
	if err != nil {
		return 0, err
	}
	if v < r.Min {
		return 0, outOfRange(field, v, r.Min, TooLow)
	}
	if v > r.Max {
		return 0, outOfRange(field, v, r.Max, TooHigh)
	}
	return v, nil
}

func parseAtLeast(field, text string, min int) (int, error) {
	v, err := parseInt(field, text)
	if err != nil {
		return 0, err
	}
	if v < min {
		return 0, outOfRange(field, v, min, TooLow)
	}
	return v, nil
}

// housekeeperName accepts letters and spaces only; inner space runs collapse.
func housekeeperName(text string) (string, error) {
	name := strings.Join(strings.Fields(text), " ")
	if name == "" {
		return "", emptyField("name")
	}
	if !namePattern.MatchString(name) {
		return "", invalidName(name)
	}
	return name, nil
}

func required(field, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", emptyField(field)
	}
	return text, nil
}

func parseDate(text string) (time.Time, error) {
	d, err := time.Parse(domain.DateLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, invalidDate(text)
	}
	return d, nil
}

func parseDays(text string) ([]domain.Day, error) {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(tokens) == 0 {
		return nil, emptyField("days")
	}
	days := make([]domain.Day, 0, len(tokens))
	for _, tok := range tokens {
		d, ok := domain.ParseDay(tok)
		if !ok {
			return nil, unknownDay(tok)
		}
		days = append(days, d)
	}
	return days, nil
}

func noArguments(rest string) error {
	if s := strings.TrimSpace(rest); s != "" {
		return unexpectedArgument(s)
	}
	return nil
}

// truncate shortens text for error messages.
func truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	r := []rune(text)
	return string(r[:max]) + "..."
}

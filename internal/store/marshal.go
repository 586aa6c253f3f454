package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/hotelite/internal/domain"
	"github.com/roach88/hotelite/internal/entity"
)

// marshalJSON encodes v as compact JSON TEXT without HTML escaping.
func marshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	// Encoder adds a trailing newline
	return strings.TrimSpace(buf.String()), nil
}

// marshalDays converts an availability set to JSON TEXT.
func marshalDays(days []domain.Day) (string, error) {
	if len(days) == 0 {
		return "[]", nil
	}
	s, err := marshalJSON(days)
	if err != nil {
		return "", fmt.Errorf("marshal availability: %w", err)
	}
	return s, nil
}

// unmarshalDays parses availability TEXT. Unknown tokens are an error.
func unmarshalDays(data string) ([]domain.Day, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var raw []string
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal availability: %w", err)
	}
	days := make([]domain.Day, 0, len(raw))
	for _, r := range raw {
		d, ok := domain.ParseDay(r)
		if !ok {
			return nil, fmt.Errorf("unmarshal availability: unknown day %q", r)
		}
		days = append(days, d)
	}
	return days, nil
}

// marshalKinds converts the changed store kinds of a journal row to JSON TEXT.
func marshalKinds(kinds []entity.Kind) (string, error) {
	if kinds == nil {
		kinds = []entity.Kind{}
	}
	s, err := marshalJSON(kinds)
	if err != nil {
		return "", fmt.Errorf("marshal kinds: %w", err)
	}
	return s, nil
}

func unmarshalKinds(data string) ([]entity.Kind, error) {
	var kinds []entity.Kind
	if err := json.Unmarshal([]byte(data), &kinds); err != nil {
		return nil, fmt.Errorf("unmarshal kinds: %w", err)
	}
	return kinds, nil
}

// formatTime stores journal times in UTC. The zero time is stored as "".
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse journal time: %w", err)
	}
	return t, nil
}

func formatDate(t time.Time) string { return t.Format(domain.DateLayout) }

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse event date: %w", err)
	}
	return t, nil
}

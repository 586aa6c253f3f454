package store

import (
	"reflect"
	"testing"

	"github.com/roach88/hotelite/internal/domain"
	"github.com/roach88/hotelite/internal/entity"
)

func TestMarshalDays(t *testing.T) {
	got, err := marshalDays([]domain.Day{domain.Monday, domain.Sunday})
	if err != nil {
		t.Fatalf("marshalDays() failed: %v", err)
	}
	if got != `["mon","sun"]` {
		t.Errorf("marshalDays() = %s", got)
	}

	empty, _ := marshalDays(nil)
	if empty != "[]" {
		t.Errorf("marshalDays(nil) = %s, want []", empty)
	}
}

func TestUnmarshalDays(t *testing.T) {
	days, err := unmarshalDays(`["wed","fri"]`)
	if err != nil {
		t.Fatalf("unmarshalDays() failed: %v", err)
	}
	if !reflect.DeepEqual(days, []domain.Day{domain.Wednesday, domain.Friday}) {
		t.Errorf("unmarshalDays() = %v", days)
	}

	for _, empty := range []string{"", "[]"} {
		days, err := unmarshalDays(empty)
		if err != nil || days != nil {
			t.Errorf("unmarshalDays(%q) = %v, %v; want nil, nil", empty, days, err)
		}
	}

	if _, err := unmarshalDays(`not json`); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestMarshalKinds_NilIsEmptyArray(t *testing.T) {
	got, err := marshalKinds(nil)
	if err != nil || got != "[]" {
		t.Errorf("marshalKinds(nil) = %q, %v", got, err)
	}

	back, err := unmarshalKinds(`["rooms","events"]`)
	if err != nil {
		t.Fatalf("unmarshalKinds() failed: %v", err)
	}
	if !reflect.DeepEqual(back, []entity.Kind{entity.KindRooms, entity.KindEvents}) {
		t.Errorf("unmarshalKinds() = %v", back)
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-12-24")
	if err != nil {
		t.Fatalf("parseDate() failed: %v", err)
	}
	if formatDate(d) != "2026-12-24" {
		t.Errorf("formatDate(parseDate()) = %s", formatDate(d))
	}
	if _, err := parseDate("24/12/2026"); err == nil {
		t.Error("expected error for wrong layout")
	}
}

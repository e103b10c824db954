package document

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestIsExpired(t *testing.T) {
	today := day("2026-03-10")

	cases := []struct {
		expiry string
		want   bool
	}{
		{"2026-03-09", true},
		{"2026-03-10", false},
		{"2026-03-11", false},
	}
	for _, c := range cases {
		d := PersonalDocument{ExpiryDate: day(c.expiry)}
		if got := d.IsExpired(today); got != c.want {
			t.Errorf("IsExpired(expiry=%s) = %v, want %v", c.expiry, got, c.want)
		}
	}
}

func TestDaysUntilExpiry(t *testing.T) {
	today := day("2026-03-10")

	cases := []struct {
		expiry string
		want   int
	}{
		{"2026-03-10", 0},
		{"2026-03-11", 1},
		{"2026-03-17", 7},
		{"2026-04-09", 30},
		{"2026-03-01", 0}, // already expired
	}
	for _, c := range cases {
		d := PersonalDocument{ExpiryDate: day(c.expiry)}
		if got := d.DaysUntilExpiry(today); got != c.want {
			t.Errorf("DaysUntilExpiry(expiry=%s) = %d, want %d", c.expiry, got, c.want)
		}
	}
}

package leave

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

func TestDurationDays(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2026-03-10", "2026-03-10", 1},
		{"2026-03-10", "2026-03-11", 2},
		{"2026-03-01", "2026-03-31", 31},
		{"2026-02-27", "2026-03-02", 4},
	}
	for _, c := range cases {
		r := LeaveRecord{StartDate: day(c.start), EndDate: day(c.end)}
		if got := r.DurationDays(); got != c.want {
			t.Errorf("DurationDays(%s..%s) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

func TestRangesIntersect(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"disjoint before", "2026-03-01", "2026-03-05", "2026-03-06", "2026-03-10", false},
		{"disjoint after", "2026-03-06", "2026-03-10", "2026-03-01", "2026-03-05", false},
		{"shared boundary day", "2026-03-01", "2026-03-05", "2026-03-05", "2026-03-10", true},
		{"contained", "2026-03-01", "2026-03-31", "2026-03-10", "2026-03-12", true},
		{"identical", "2026-03-10", "2026-03-12", "2026-03-10", "2026-03-12", true},
		{"single day overlap", "2026-03-10", "2026-03-10", "2026-03-10", "2026-03-10", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := RangesIntersect(day(c.s1), day(c.e1), day(c.s2), day(c.e2))
			if got != c.want {
				t.Errorf("RangesIntersect = %v, want %v", got, c.want)
			}
		})
	}
}

func TestStatusActive(t *testing.T) {
	if !StatusRequested.Active() || !StatusApproved.Active() {
		t.Error("REQUESTED and APPROVED must block overlapping requests")
	}
	if StatusRejected.Active() || StatusCancelled.Active() {
		t.Error("REJECTED and CANCELLED must not block overlapping requests")
	}
}

package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthWindow(t *testing.T) {
	cases := []struct {
		name      string
		year      int
		month     time.Month
		wantStart string
		wantEnd   string
	}{
		{"thirty one days", 2026, time.January, "2026-01-01", "2026-01-31"},
		{"thirty days", 2026, time.April, "2026-04-01", "2026-04-30"},
		{"february common year", 2026, time.February, "2026-02-01", "2026-02-28"},
		{"february leap year", 2028, time.February, "2028-02-01", "2028-02-29"},
		{"december wraps year", 2026, time.December, "2026-12-01", "2026-12-31"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := MonthWindow(tc.year, tc.month)
			assert.Equal(t, tc.wantStart, start.Format("2006-01-02"))
			assert.Equal(t, tc.wantEnd, end.Format("2006-01-02"))
			assert.Equal(t, time.UTC, start.Location())
		})
	}
}

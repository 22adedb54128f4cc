package batch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2025-03-08", "2025/03/08", "03-08-2025", "03/08/2025"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(want), "ParseDate(%q) = %v", in, got)
	}

	_, err := ParseDate("March 8th")
	require.Error(t, err)
}

func TestSeasonWindow(t *testing.T) {
	start, end := SeasonWindow(2025)
	assert.Equal(t, time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestCurrentSeason(t *testing.T) {
	cases := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC), 2025},
		{time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC), 2025},
		// October flips to the season that ends next year.
		{time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), 2026},
		{time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC), 2026},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CurrentSeason(tc.now), "as of %s", tc.now.Format("2006-01-02"))
	}
}

func TestEnumerateDates(t *testing.T) {
	start := time.Date(2025, time.March, 8, 15, 30, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 10, 2, 0, 0, 0, time.UTC)

	dates := enumerateDates(start, end)
	require.Len(t, dates, 3)
	assert.Equal(t, time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), dates[2])
}

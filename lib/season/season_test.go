package season

import (
	"testing"
	"time"
	"outreach-backend/lib/timezone"

	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	tz := timezone.Location

	testCases := []struct {
		now       time.Time
		startYear int
		endYear   int
	}{
		{
			now:       time.Date(2025, 9, 12, 0, 0, 0, 0, tz),
			startYear: 2025,
			endYear:   2026,
		},
		{
			now:       time.Date(2026, 3, 4, 0, 0, 0, 0, tz),
			startYear: 2025,
			endYear:   2026,
		},
		{
			now:       time.Date(2025, 7, 31, 23, 59, 59, 0, tz),
			startYear: 2024,
			endYear:   2025,
		},
		{
			now:       time.Date(2025, 8, 1, 0, 0, 0, 0, tz),
			startYear: 2025,
			endYear:   2026,
		},
	}

	for _, test := range testCases {
		year := Current(test.now)
		require.Equal(t, test.startYear, year.StartYear)
		require.Equal(t, test.endYear, year.EndYear)
		require.Equal(t, time.Date(test.startYear, 8, 1, 0, 0, 0, 0, tz), year.Start)
		require.True(t, year.Contains(test.now))
	}
}

func TestContainsBoundaries(t *testing.T) {
	tz := timezone.Location
	year := Current(time.Date(2025, 10, 1, 0, 0, 0, 0, tz))

	require.True(t, year.Contains(time.Date(2025, 8, 1, 0, 0, 0, 0, tz)))
	require.True(t, year.Contains(time.Date(2026, 7, 31, 23, 59, 59, 0, tz)))
	require.False(t, year.Contains(time.Date(2026, 8, 1, 0, 0, 0, 0, tz)))
	require.False(t, year.Contains(time.Date(2025, 7, 31, 0, 0, 0, 0, tz)))
}

package season

import "time"

// AcademicYear is the Aug 1 - Jul 31 window school athletics run on.
// StartYear is the calendar year of the August that opens the window,
// e.g. the 2025-26 year has StartYear 2025.
type AcademicYear struct {
	StartYear int
	EndYear   int
	Start     time.Time
	End       time.Time
}

// gets the academic year containing now; during Jan-Jul that is
// the window that opened the previous August
func Current(now time.Time) AcademicYear {
	year := now.Year()
	if now.Month() < time.August {
		year--
	}
	tz := now.Location()
	return AcademicYear{
		StartYear: year,
		EndYear:   year + 1,
		Start:     time.Date(year, time.August, 1, 0, 0, 0, 0, tz),
		End:       time.Date(year+1, time.August, 1, 0, 0, 0, 0, tz),
	}
}

// Contains reports whether t falls inside the window, start inclusive,
// end exclusive (Jul 31 23:59:59 is in, Aug 1 of the next year is not).
func (y AcademicYear) Contains(t time.Time) bool {
	return !t.Before(y.Start) && t.Before(y.End)
}

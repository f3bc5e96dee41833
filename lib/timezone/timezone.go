package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
}

// force the clock into eastern time because the schedule data and the
// academic-year boundaries are all northeast NCAA; a host in another
// timezone would otherwise shift Year()/Month()/Day() math around midnight
func Now() time.Time {
	return time.Now().In(Location)
}

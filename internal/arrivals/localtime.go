package arrivals

import (
	"errors"
	"fmt"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// ErrNonExistentLocalTime is returned for wall-clock times skipped by a
// daylight saving transition.
var ErrNonExistentLocalTime = errors.New("local time does not exist")

// offsetProbes are the distances from a wall-clock time at which the zone
// offset is sampled. Every transition within a day of the wall time is seen.
var offsetProbes = []time.Duration{-24 * time.Hour, -12 * time.Hour, 0, 12 * time.Hour, 24 * time.Hour}

// LocalToUTC resolves seconds since local midnight of the reference date in
// loc to an absolute instant. Values of a day or more roll over to the
// following days. A wall time that occurs twice resolves to the earlier
// instant; one that never occurs is an error.
func LocalToUTC(loc *time.Location, reference time.Time, seconds int) (time.Time, error) {
	if seconds < 0 {
		return time.Time{}, fmt.Errorf("negative seconds since midnight: %d", seconds)
	}
	y, m, d := reference.In(loc).Date()
	rem := seconds % secondsPerDay
	wall := time.Date(y, m, d+seconds/secondsPerDay, rem/3600, rem%3600/60, rem%60, 0, time.UTC)

	var (
		best  time.Time
		found bool
	)
	for _, probe := range offsetProbes {
		_, offset := wall.Add(probe).In(loc).Zone()
		candidate := wall.Add(-time.Duration(offset) * time.Second)
		if !sameWallClock(candidate.In(loc), wall) {
			continue
		}
		if !found || candidate.Before(best) {
			best, found = candidate, true
		}
	}
	if !found {
		return time.Time{}, fmt.Errorf("%s in %s: %w", wall.Format("2006-01-02 15:04:05"), loc, ErrNonExistentLocalTime)
	}
	return best.UTC(), nil
}

func sameWallClock(t, wall time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := wall.Date()
	return y1 == y2 && m1 == m2 && d1 == d2 &&
		t.Hour() == wall.Hour() && t.Minute() == wall.Minute() && t.Second() == wall.Second()
}

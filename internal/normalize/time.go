package normalize

import (
	"sync"
	"time"
)

// Game days and tip times render in Pacific time, matching how the source
// site's archives are keyed.

const (
	dayLayout  = "January 02, 2006"
	timeLayout = "03:04 PM MST"
)

var (
	pacificOnce sync.Once
	pacificLoc  *time.Location
)

func pacific() *time.Location {
	pacificOnce.Do(func() {
		loc, err := time.LoadLocation("America/Los_Angeles")
		if err != nil {
			loc = time.UTC
		}
		pacificLoc = loc
	})
	return pacificLoc
}

func formatDay(t time.Time) string {
	return t.In(pacific()).Format(dayLayout)
}

func formatTime(t time.Time) string {
	return t.In(pacific()).Format(timeLayout)
}

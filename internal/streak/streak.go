// Package streak computes consecutive-day completion streaks.
package streak

import (
	"time"

	"github.com/yukikurage/planner-api/internal/constants"
)

// State is a streak as stored on a profile. LastCompleted is a civil date
// formatted with constants.DateLayout.
type State struct {
	Count         int
	LastCompleted *string
}

// Advance applies one completion made on today:
// the same day leaves the state unchanged, the day after extends the streak,
// anything else restarts it at 1.
func Advance(s State, today time.Time) State {
	todayStr := today.Format(constants.DateLayout)
	if s.LastCompleted != nil {
		switch *s.LastCompleted {
		case todayStr:
			return s
		case today.AddDate(0, 0, -1).Format(constants.DateLayout):
			return State{Count: s.Count + 1, LastCompleted: &todayStr}
		}
	}
	return State{Count: 1, LastCompleted: &todayStr}
}

// Today returns the current civil date in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Location resolves a profile timezone, falling back to def.
func Location(name string, def *time.Location) *time.Location {
	if name == "" {
		return def
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return def
	}
	return loc
}

package services

import (
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// dayBounds returns the inclusive start/end of the calendar day holding t,
// formatted for collection filters.
func dayBounds(t time.Time) (string, string) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Millisecond)
	return start.Format(types.DefaultDateLayout), end.Format(types.DefaultDateLayout)
}

func startOfToday() string {
	start, _ := dayBounds(time.Now().UTC())
	return start
}

// optTime reads an optional datetime field as a *time.Time.
func optTime(r *core.Record, field string) *time.Time {
	dt := r.GetDateTime(field)
	if dt.IsZero() {
		return nil
	}
	t := dt.Time()
	return &t
}

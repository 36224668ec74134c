package scheduling

// Quote derives the billable hours and total cost for a start/end pair at
// the given hourly rate. Hours are whole-hour granularity, consistent with
// the 2-hour slot stepping. An empty, malformed or inverted range quotes
// zero; callers treat a zero quote as an incomplete selection, not a
// fault.
func Quote(start, end string, costPerHour float64) (hours, cost float64) {
	s, errS := ParseClock(start)
	e, errE := ParseClock(end)
	if errS != nil || errE != nil {
		return 0, 0
	}
	if !e.After(s) {
		return 0, 0
	}
	hours = float64(e.Hour() - s.Hour())
	if hours <= 0 {
		return 0, 0
	}
	if costPerHour < 0 {
		costPerHour = 0
	}
	return hours, hours * costPerHour
}

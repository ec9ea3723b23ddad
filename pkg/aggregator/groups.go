package aggregator

import "sort"

// DateGroup is one day's events, in start-datetime order.
type DateGroup struct {
	Date   string  `json:"date"`
	Events []Event `json:"events"`
}

// Result is a grouped aggregation response. Done reports whether every known
// artist for the user has been processed.
type Result struct {
	Groups []DateGroup `json:"events"`
	Done   bool        `json:"done"`
}

// groupByDate sorts events by (date, datetime) ascending and folds them into
// per-date groups. Group order equals ascending date order.
func groupByDate(evs []Event) []DateGroup {
	sorted := make([]Event, len(evs))
	copy(sorted, evs)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start.Date != sorted[j].Start.Date {
			return sorted[i].Start.Date < sorted[j].Start.Date
		}

		return sorted[i].Start.Datetime < sorted[j].Start.Datetime
	})

	groups := make([]DateGroup, 0)

	for _, ev := range sorted {
		if n := len(groups); n > 0 && groups[n-1].Date == ev.Start.Date {
			groups[n-1].Events = append(groups[n-1].Events, ev)
			continue
		}

		groups = append(groups, DateGroup{Date: ev.Start.Date, Events: []Event{ev}})
	}

	return groups
}

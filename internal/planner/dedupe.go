package planner

import (
	"strings"

	"github.com/dockly/family-planner/internal/model"
)

// ReconciliationKey derives the string used to detect duplicate events
// across providers: lowercase-trimmed title plus the start date. There is
// no cross-provider ID linkage, so title+date is the only available key;
// two genuinely distinct events with the same title on the same day will
// collapse. That inherited ambiguity is documented rather than papered
// over with a guess.
func ReconciliationKey(e model.CalendarEvent) string {
	return strings.ToLower(strings.TrimSpace(e.Title)) + "-" + e.Start.Format(dateLayout)
}

// Dedupe removes imported events that duplicate a dockly-native event with
// the same reconciliation key. Native events are kept unconditionally; the
// native source always wins. The input is not mutated.
func Dedupe(events []model.CalendarEvent) []model.CalendarEvent {
	native := make(map[string]struct{})
	for _, e := range events {
		if e.Provider == model.ProviderDockly {
			native[ReconciliationKey(e)] = struct{}{}
		}
	}

	result := make([]model.CalendarEvent, 0, len(events))
	for _, e := range events {
		if e.Provider != model.ProviderDockly {
			if _, dup := native[ReconciliationKey(e)]; dup {
				continue
			}
		}
		result = append(result, e)
	}
	return result
}

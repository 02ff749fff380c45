// Package core holds the pure domain logic of the dashboard: entity types,
// validation, default-task seeding and the reporting rollup. Nothing in this
// package touches storage or the network.
package core

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// hydrationKeyword identifies the seeded hydration task. Matching is
// diacritic-insensitive so renditions like "wáter" still count.
const hydrationKeyword = "water"

// DefaultTasks builds the fixed daily triple for the given calendar day:
// hydration at 08:00, exercise at 18:00 and a study block at 20:00.
func DefaultTasks(date string) []Task {
	return []Task{
		{ID: uuid.NewString(), Text: "Drink 2L of water", Completed: false, Time: "08:00", Date: date, Category: CategoryReminder},
		{ID: uuid.NewString(), Text: "Physical exercise", Completed: false, Time: "18:00", Date: date, Category: CategoryGym},
		{ID: uuid.NewString(), Text: "Daily study", Completed: false, Time: "20:00", Date: date, Category: CategoryWork},
	}
}

// HasSeededTasks reports whether any task on the given day matches the
// hydration keyword. This is the legacy guard against duplicate defaults; it
// still runs so data written before the SeededDate marker existed is honored.
func HasSeededTasks(tasks []Task, date string) bool {
	for _, t := range tasks {
		if t.Date == date && foldContains(t.Text, hydrationKeyword) {
			return true
		}
	}
	return false
}

// SeedDefaults prepends the day's default tasks to data unless they were
// already seeded, and records the seeding day. It returns true when tasks
// were added. Calling it twice for the same day is a no-op the second time.
func SeedDefaults(data *AppData, date string) bool {
	if data.SeededDate == date || HasSeededTasks(data.Tasks, date) {
		data.SeededDate = date
		return false
	}
	data.Tasks = append(DefaultTasks(date), data.Tasks...)
	data.SeededDate = date
	return true
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldContains reports whether s contains substr ignoring case and diacritics.
func foldContains(s, substr string) bool {
	folded, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		folded = s
	}
	return strings.Contains(strings.ToLower(folded), strings.ToLower(substr))
}

package core

import (
	"testing"
)

func TestDefaultTasks(t *testing.T) {
	tasks := DefaultTasks("2024-03-05")

	if len(tasks) != 3 {
		t.Fatalf("expected 3 default tasks, got %d", len(tasks))
	}

	wantTimes := map[TaskCategory]string{
		CategoryReminder: "08:00",
		CategoryGym:      "18:00",
		CategoryWork:     "20:00",
	}
	seen := map[TaskCategory]bool{}
	for _, task := range tasks {
		if task.Date != "2024-03-05" {
			t.Errorf("task %q dated %s, want 2024-03-05", task.Text, task.Date)
		}
		if task.Completed {
			t.Errorf("task %q seeded as completed", task.Text)
		}
		if task.ID == "" {
			t.Errorf("task %q has no ID", task.Text)
		}
		if want := wantTimes[task.Category]; task.Time != want {
			t.Errorf("category %s at %s, want %s", task.Category, task.Time, want)
		}
		if err := task.Validate(); err != nil {
			t.Errorf("default task %q invalid: %v", task.Text, err)
		}
		seen[task.Category] = true
	}
	for cat := range wantTimes {
		if !seen[cat] {
			t.Errorf("no default task for category %s", cat)
		}
	}
}

func TestSeedDefaultsIdempotent(t *testing.T) {
	data := &AppData{}

	if !SeedDefaults(data, "2024-03-05") {
		t.Fatal("first seed should add tasks")
	}
	if len(data.Tasks) != 3 {
		t.Fatalf("expected 3 tasks after first seed, got %d", len(data.Tasks))
	}

	if SeedDefaults(data, "2024-03-05") {
		t.Error("second seed on the same day should be a no-op")
	}
	if len(data.Tasks) != 3 {
		t.Errorf("expected 3 tasks after repeated seed, got %d", len(data.Tasks))
	}
	if data.SeededDate != "2024-03-05" {
		t.Errorf("seeded date = %q, want 2024-03-05", data.SeededDate)
	}
}

func TestSeedDefaultsNewDay(t *testing.T) {
	data := &AppData{}
	SeedDefaults(data, "2024-03-05")

	if !SeedDefaults(data, "2024-03-06") {
		t.Fatal("a new day should seed again")
	}
	if len(data.Tasks) != 6 {
		t.Errorf("expected 6 tasks across two seeded days, got %d", len(data.Tasks))
	}
	// New defaults are prepended.
	if data.Tasks[0].Date != "2024-03-06" {
		t.Errorf("first task dated %s, want 2024-03-06", data.Tasks[0].Date)
	}
}

func TestSeedDefaultsHonorsLegacyGuard(t *testing.T) {
	// Data written before the SeededDate marker existed: only the keyword
	// heuristic can tell the defaults are already there.
	tests := []struct {
		name string
		text string
		want bool // want seeding to happen
	}{
		{"plain keyword", "Drink 2L of water", false},
		{"diacritic keyword", "Beber 2L de wáter", false},
		{"uppercase keyword", "DRINK WATER NOW", false},
		{"unrelated task", "Morning run", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := &AppData{Tasks: []Task{{ID: "1", Text: tt.text, Date: "2024-03-05"}}}
			if got := SeedDefaults(data, "2024-03-05"); got != tt.want {
				t.Errorf("SeedDefaults = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasSeededTasksOtherDay(t *testing.T) {
	tasks := []Task{{ID: "1", Text: "Drink 2L of water", Date: "2024-03-04"}}
	if HasSeededTasks(tasks, "2024-03-05") {
		t.Error("yesterday's hydration task should not guard today")
	}
}

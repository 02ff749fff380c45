package core

import (
	"fmt"
	"math"
	"time"
)

// DayStats is the per-day completion rollup behind the reports calendar.
type DayStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Score     int `json:"score"`
}

// MonthSummary aggregates a month of DayStats.
type MonthSummary struct {
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	Rate           int `json:"rate"`
	PerfectDays    int `json:"perfectDays"`
}

// ComputeDailyStats folds the task collection into per-day completion counts
// for the target month. Every calendar day of the month gets an entry, zeroed
// when no task touches it. Tasks dated outside the month are ignored, except
// that a month-prefixed date missing from the initialized grid still gets a
// fallback entry counting that one task. The result depends only on the task
// multiset, never on input order.
func ComputeDailyStats(tasks []Task, year int, month time.Month) map[string]DayStats {
	stats := make(map[string]DayStats)

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	prefix := fmt.Sprintf("%04d-%02d", year, int(month))
	for d := 1; d <= daysInMonth; d++ {
		stats[fmt.Sprintf("%s-%02d", prefix, d)] = DayStats{}
	}

	for _, task := range tasks {
		if day, ok := stats[task.Date]; ok {
			day.Total++
			if task.Completed {
				day.Completed++
			}
			stats[task.Date] = day
		} else if len(task.Date) > len(prefix) && task.Date[:len(prefix)] == prefix {
			// Day-count initialization and the task date disagree; keep the
			// task visible rather than dropping it.
			day := DayStats{Total: 1}
			if task.Completed {
				day.Completed = 1
			}
			stats[task.Date] = day
		}
	}

	for key, day := range stats {
		if day.Total > 0 {
			day.Score = roundPercent(day.Completed, day.Total)
			stats[key] = day
		}
	}

	return stats
}

// Summarize derives the monthly aggregates from a per-day rollup.
func Summarize(stats map[string]DayStats) MonthSummary {
	var s MonthSummary
	for _, day := range stats {
		s.TotalTasks += day.Total
		s.CompletedTasks += day.Completed
		if day.Total > 0 && day.Score == 100 {
			s.PerfectDays++
		}
	}
	if s.TotalTasks > 0 {
		s.Rate = roundPercent(s.CompletedTasks, s.TotalTasks)
	}
	return s
}

func roundPercent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}

package review

import (
	"sort"

	"github.com/velimirb/riderewind/internal/workout"
)

// InstructorStats accumulates one instructor's workouts within the
// window. The per-discipline counts always sum up to Workouts.
type InstructorStats struct {
	ID            string         `json:"id"`
	Name          string         `json:"name,omitempty"`
	Workouts      int            `json:"workouts"`
	Minutes       float64        `json:"minutes"`
	ByDiscipline  map[string]int `json:"byDiscipline"`
	AvgDifficulty float64        `json:"avgDifficulty"`

	difficultySum   float64
	difficultyCount int
}

type InstructorLeaderboard struct {
	// Favorite is the instructor with the most workouts, ties broken by
	// total minutes. Nil when no record in the window has an instructor.
	Favorite *InstructorStats `json:"favorite,omitempty"`
	// TopByDiscipline holds, per discipline, the instructor with the
	// highest count in that discipline specifically.
	TopByDiscipline map[string]InstructorStats `json:"topByDiscipline,omitempty"`
	All             []InstructorStats          `json:"all,omitempty"`
}

// AggregateInstructors builds the instructor leaderboard. Records
// without an instructor are skipped. The names mapping is injected
// read-only reference data (instructor ID to display name).
func AggregateInstructors(records []workout.Record, names map[string]string) InstructorLeaderboard {
	byID := make(map[string]*InstructorStats)
	for _, r := range records {
		if r.InstructorID == "" {
			continue
		}
		stats, ok := byID[r.InstructorID]
		if !ok {
			stats = &InstructorStats{
				ID:           r.InstructorID,
				Name:         names[r.InstructorID],
				ByDiscipline: make(map[string]int),
			}
			byID[r.InstructorID] = stats
		}
		stats.Workouts++
		stats.Minutes += r.Minutes()
		stats.ByDiscipline[r.Discipline]++
		if r.Difficulty != nil {
			stats.difficultySum += *r.Difficulty
			stats.difficultyCount++
		}
	}

	all := make([]InstructorStats, 0, len(byID))
	for _, stats := range byID {
		if stats.difficultyCount > 0 {
			stats.AvgDifficulty = roundTo(stats.difficultySum/float64(stats.difficultyCount), 2)
		}
		all = append(all, *stats)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Workouts != all[j].Workouts {
			return all[i].Workouts > all[j].Workouts
		}
		if all[i].Minutes != all[j].Minutes {
			return all[i].Minutes > all[j].Minutes
		}
		return all[i].ID < all[j].ID
	})

	board := InstructorLeaderboard{All: all}
	if len(all) > 0 {
		favorite := all[0]
		board.Favorite = &favorite
	}

	topByDiscipline := make(map[string]InstructorStats)
	for _, stats := range all {
		for discipline, count := range stats.ByDiscipline {
			current, ok := topByDiscipline[discipline]
			if !ok || count > current.ByDiscipline[discipline] {
				topByDiscipline[discipline] = stats
			}
		}
	}
	if len(topByDiscipline) > 0 {
		board.TopByDiscipline = topByDiscipline
	}

	return board
}

package workout

import "time"

// Known fitness disciplines as reported by the platform.
const (
	DisciplineCycling    = "cycling"
	DisciplineStrength   = "strength"
	DisciplineYoga       = "yoga"
	DisciplineMeditation = "meditation"
	DisciplineStretching = "stretching"
	DisciplineRunning    = "running"
	DisciplineWalking    = "walking"
	DisciplineCardio     = "cardio"
)

// FeedWorkout is a single workout as returned by the platform workouts feed.
type FeedWorkout struct {
	ID                 string   `json:"id"`
	StartTime          int64    `json:"start_time"` // epoch seconds
	Duration           int64    `json:"duration"`   // seconds
	FitnessDiscipline  string   `json:"fitness_discipline"`
	InstructorID       string   `json:"instructor_id"`
	Title              string   `json:"title"`
	DifficultyEstimate *float64 `json:"difficulty_estimate,omitempty"`
}

// Record is the unified per-workout view, built by correlating a feed
// workout with its bulk-export counterpart. All CSV-sourced fields are
// pointers: nil means the value was absent in the export (or no export
// row matched), which is not the same as zero.
type Record struct {
	ID           string        `json:"id"`
	StartedAt    time.Time     `json:"startedAt"`
	Duration     time.Duration `json:"duration"`
	Discipline   string        `json:"discipline"`
	InstructorID string        `json:"instructorId"`
	Title        string        `json:"title"`
	Difficulty   *float64      `json:"difficulty,omitempty"`

	// sourced from the bulk export when a matching row exists
	Output       *float64 `json:"output,omitempty"`     // kJ
	Resistance   *float64 `json:"resistance,omitempty"` // percent
	Cadence      *float64 `json:"cadence,omitempty"`    // rpm
	Speed        *float64 `json:"speed,omitempty"`      // mph
	Distance     *float64 `json:"distance,omitempty"`   // miles
	Calories     *float64 `json:"calories,omitempty"`
	AvgHeartRate *float64 `json:"avgHeartRate,omitempty"`
	MaxHeartRate *float64 `json:"maxHeartRate,omitempty"`
}

// Minutes returns the workout duration in minutes.
func (r Record) Minutes() float64 {
	return r.Duration.Minutes()
}

// IsCycling reports whether the record is a cycling workout.
func (r Record) IsCycling() bool {
	return r.Discipline == DisciplineCycling
}

// HasOutput reports whether the record carries a positive total output,
// i.e. evidence of connected bike equipment.
func (r Record) HasOutput() bool {
	return r.Output != nil && *r.Output > 0
}

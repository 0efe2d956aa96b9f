package review

import (
	"math"
)

const workingDayHours = 8

// TimeTotals breaks total workout time into display-friendly units.
// WorkingDays stays nil until at least one full working day of exercise
// has been accumulated; absence signals "not meaningful yet".
type TimeTotals struct {
	Hours       int  `json:"hours"`
	Minutes     int  `json:"minutes"`
	WorkingDays *int `json:"workingDays,omitempty"`
}

type Totals struct {
	Workouts        int        `json:"workouts"`
	WorkoutsPerWeek float64    `json:"workoutsPerWeek"`
	TotalMinutes    float64    `json:"totalMinutes"`
	Time            TimeTotals `json:"time"`

	// calories and distance are summed over the records that carry the
	// field; the per-workout averages divide by that count, not by the
	// total number of records
	TotalCalories      float64 `json:"totalCalories"`
	CaloriesPerWorkout float64 `json:"caloriesPerWorkout"`
	TotalDistance      float64 `json:"totalDistance"`
	DistancePerWorkout float64 `json:"distancePerWorkout"`
	TotalOutput        float64 `json:"totalOutput"` // kJ
}

// AggregateTotals computes overall counts, time totals and the
// present-fields-only calorie/distance/output sums for the selection.
func AggregateTotals(sel Selection) Totals {
	totals := Totals{Workouts: len(sel.Records)}

	var caloriesCount, distanceCount int
	for _, r := range sel.Records {
		totals.TotalMinutes += r.Minutes()
		if r.Calories != nil {
			totals.TotalCalories += *r.Calories
			caloriesCount++
		}
		if r.Distance != nil {
			totals.TotalDistance += *r.Distance
			distanceCount++
		}
		if r.Output != nil {
			totals.TotalOutput += *r.Output
		}
	}

	totals.WorkoutsPerWeek = roundTo(float64(totals.Workouts)/sel.ElapsedWeeks, 1)

	totalHours := int(totals.TotalMinutes) / 60
	totals.Time = TimeTotals{
		Hours:   totalHours,
		Minutes: int(totals.TotalMinutes) % 60,
	}
	if totalHours >= workingDayHours {
		days := totalHours / workingDayHours
		totals.Time.WorkingDays = &days
	}

	if caloriesCount > 0 {
		totals.CaloriesPerWorkout = math.Round(totals.TotalCalories / float64(caloriesCount))
	}
	if distanceCount > 0 {
		totals.DistancePerWorkout = roundTo(totals.TotalDistance/float64(distanceCount), 2)
	}

	return totals
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

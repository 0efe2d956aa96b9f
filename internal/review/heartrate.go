package review

import (
	"time"

	"github.com/velimirb/riderewind/internal/workout"
)

// workouts at or above this duration count as "long" for the heart-rate split
const longWorkoutThreshold = 20 * time.Minute

type HeartRateAvg struct {
	Workouts int     `json:"workouts"`
	Avg      float64 `json:"avg"`
	Max      float64 `json:"max"`
}

type HeartRateStats struct {
	// overall means across workouts that carry both avg and max heart rate
	Workouts     int                     `json:"workouts"`
	Avg          float64                 `json:"avg"`
	Max          float64                 `json:"max"`
	ByDiscipline map[string]HeartRateAvg `json:"byDiscipline,omitempty"`
	Long         HeartRateAvg            `json:"long"`
	Short        HeartRateAvg            `json:"short"`
}

// AggregateHeartRate computes heart-rate means over the records that
// carry both average and max heart rate. Records missing either field
// are skipped here but still count for every other aggregator.
func AggregateHeartRate(records []workout.Record) HeartRateStats {
	stats := HeartRateStats{}

	var avgSum, maxSum float64
	byDiscipline := make(map[string]*HeartRateAvg)
	var longAvgSum, longMaxSum, shortAvgSum, shortMaxSum float64

	for _, r := range records {
		if r.AvgHeartRate == nil || r.MaxHeartRate == nil {
			continue
		}
		stats.Workouts++
		avgSum += *r.AvgHeartRate
		maxSum += *r.MaxHeartRate

		d, ok := byDiscipline[r.Discipline]
		if !ok {
			d = &HeartRateAvg{}
			byDiscipline[r.Discipline] = d
		}
		d.Workouts++
		d.Avg += *r.AvgHeartRate
		d.Max += *r.MaxHeartRate

		if r.Duration >= longWorkoutThreshold {
			stats.Long.Workouts++
			longAvgSum += *r.AvgHeartRate
			longMaxSum += *r.MaxHeartRate
		} else {
			stats.Short.Workouts++
			shortAvgSum += *r.AvgHeartRate
			shortMaxSum += *r.MaxHeartRate
		}
	}

	if stats.Workouts == 0 {
		return stats
	}

	stats.Avg = roundTo(avgSum/float64(stats.Workouts), 1)
	stats.Max = roundTo(maxSum/float64(stats.Workouts), 1)

	stats.ByDiscipline = make(map[string]HeartRateAvg, len(byDiscipline))
	for discipline, d := range byDiscipline {
		stats.ByDiscipline[discipline] = HeartRateAvg{
			Workouts: d.Workouts,
			Avg:      roundTo(d.Avg/float64(d.Workouts), 1),
			Max:      roundTo(d.Max/float64(d.Workouts), 1),
		}
	}

	if stats.Long.Workouts > 0 {
		stats.Long.Avg = roundTo(longAvgSum/float64(stats.Long.Workouts), 1)
		stats.Long.Max = roundTo(longMaxSum/float64(stats.Long.Workouts), 1)
	}
	if stats.Short.Workouts > 0 {
		stats.Short.Avg = roundTo(shortAvgSum/float64(stats.Short.Workouts), 1)
		stats.Short.Max = roundTo(shortMaxSum/float64(stats.Short.Workouts), 1)
	}

	return stats
}

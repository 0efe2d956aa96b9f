package review

import (
	"math"
	"sort"

	"github.com/velimirb/riderewind/internal/workout"
)

// disciplines with this many workouts or fewer get merged into "Other"
const otherBucketThreshold = 5

const otherBucketName = "Other"

type DisciplineBucket struct {
	Name            string  `json:"name"`
	Count           int     `json:"count"`
	Minutes         float64 `json:"minutes"`
	PercentWorkouts int     `json:"percentWorkouts"`
	PercentTime     int     `json:"percentTime"`
}

// AggregateDisciplines groups the selection by discipline, sorted by
// workout count descending. Small disciplines are merged into one
// synthetic "Other" bucket whose percentages are computed from the
// original totals, so rounding errors do not compound.
func AggregateDisciplines(records []workout.Record) []DisciplineBucket {
	if len(records) == 0 {
		return nil
	}

	counts := make(map[string]int)
	minutes := make(map[string]float64)
	var totalMinutes float64
	for _, r := range records {
		counts[r.Discipline]++
		minutes[r.Discipline] += r.Minutes()
		totalMinutes += r.Minutes()
	}

	totalCount := len(records)
	percent := func(part, whole float64) int {
		if whole == 0 {
			return 0
		}
		return int(math.Round(part / whole * 100))
	}

	var buckets []DisciplineBucket
	other := DisciplineBucket{Name: otherBucketName}
	for name, count := range counts {
		if count <= otherBucketThreshold {
			other.Count += count
			other.Minutes += minutes[name]
			continue
		}
		buckets = append(buckets, DisciplineBucket{
			Name:            name,
			Count:           count,
			Minutes:         minutes[name],
			PercentWorkouts: percent(float64(count), float64(totalCount)),
			PercentTime:     percent(minutes[name], totalMinutes),
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Name < buckets[j].Name
	})

	if other.Count > 0 {
		other.PercentWorkouts = percent(float64(other.Count), float64(totalCount))
		other.PercentTime = percent(other.Minutes, totalMinutes)
		buckets = append(buckets, other)
	}

	return buckets
}

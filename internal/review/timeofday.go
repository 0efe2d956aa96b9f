package review

import (
	"sort"
	"time"

	"github.com/velimirb/riderewind/internal/workout"
)

// fixed half-open [start, end) time-of-day buckets, in minutes of the day
var timeOfDayBuckets = []struct {
	name       string
	start, end int
}{
	{"Early Bird", 0, 10 * 60},
	{"Daytime Rider", 10 * 60, 16*60 + 30},
	{"Post Work Pro", 16*60 + 30, 20 * 60},
	{"Night Owl", 20 * 60, 24 * 60},
}

type TimeOfDayBucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AggregateTimeOfDay distributes workouts over the four fixed
// time-of-day buckets by local start hour and ranks them by count
// descending. Bucket declaration order breaks ties.
func AggregateTimeOfDay(records []workout.Record, loc *time.Location) []TimeOfDayBucket {
	if loc == nil {
		loc = time.UTC
	}

	buckets := make([]TimeOfDayBucket, len(timeOfDayBuckets))
	order := make(map[string]int, len(timeOfDayBuckets))
	for i, b := range timeOfDayBuckets {
		buckets[i] = TimeOfDayBucket{Name: b.name}
		order[b.name] = i
	}

	for _, r := range records {
		local := r.StartedAt.In(loc)
		minuteOfDay := local.Hour()*60 + local.Minute()
		for i, b := range timeOfDayBuckets {
			if minuteOfDay >= b.start && minuteOfDay < b.end {
				buckets[i].Count++
				break
			}
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return order[buckets[i].Name] < order[buckets[j].Name]
	})

	return buckets
}

package review

import (
	"sort"

	"github.com/velimirb/riderewind/internal/workout"
)

const favoriteWorkoutsLimit = 3

type FavoriteWorkout struct {
	Title      string `json:"title"`
	Discipline string `json:"discipline"`
	Count      int    `json:"count"`
}

// AggregateFavorites ranks workouts by how often they were repeated and
// returns the top three. When no cycling workout makes the top three,
// the single most-repeated cycling workout is appended as an extra
// entry, so cycling is always represented when it exists at all.
func AggregateFavorites(records []workout.Record) []FavoriteWorkout {
	type key struct {
		title      string
		discipline string
	}

	counts := make(map[key]int)
	firstSeen := make(map[key]int)
	for i, r := range records {
		k := key{title: r.Title, discipline: r.Discipline}
		counts[k]++
		if _, ok := firstSeen[k]; !ok {
			firstSeen[k] = i
		}
	}

	ranked := make([]FavoriteWorkout, 0, len(counts))
	for k, count := range counts {
		ranked = append(ranked, FavoriteWorkout{
			Title:      k.title,
			Discipline: k.discipline,
			Count:      count,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		ki := key{title: ranked[i].Title, discipline: ranked[i].Discipline}
		kj := key{title: ranked[j].Title, discipline: ranked[j].Discipline}
		return firstSeen[ki] < firstSeen[kj]
	})

	top := ranked
	if len(top) > favoriteWorkoutsLimit {
		top = top[:favoriteWorkoutsLimit]
	}

	for _, fav := range top {
		if fav.Discipline == workout.DisciplineCycling {
			return top
		}
	}
	for _, fav := range ranked[len(top):] {
		if fav.Discipline == workout.DisciplineCycling {
			return append(top, fav)
		}
	}

	return top
}

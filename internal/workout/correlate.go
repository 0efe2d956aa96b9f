package workout

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// CorrelationIndex maps a minute-granularity epoch timestamp to the
// export row that started at that minute. The export reports timestamps
// at minute precision while the feed reports epoch seconds, so the
// minute is the finest key both sources can agree on.
type CorrelationIndex map[int64]ExportRow

// NewCorrelationIndex builds the lookup index from export rows.
func NewCorrelationIndex(rows []ExportRow) CorrelationIndex {
	index := make(CorrelationIndex, len(rows))
	for _, row := range rows {
		index[epochMinute(row.Timestamp)] = row
	}
	return index
}

func epochMinute(t time.Time) int64 {
	return t.Unix() / 60
}

// Correlate merges the feed workouts with the bulk-export rows into the
// unified record set. A feed workout whose minute-truncated start time
// matches an export row gets the export-only fields; one without a
// match keeps those fields absent, a normal condition when the export
// lags behind the feed. Inputs are not mutated and the result does not
// depend on input ordering.
func Correlate(feed []FeedWorkout, rows []ExportRow) []Record {
	index := NewCorrelationIndex(rows)

	records := make([]Record, 0, len(feed))
	misses := 0
	for _, fw := range feed {
		record := Record{
			ID:           fw.ID,
			StartedAt:    time.Unix(fw.StartTime, 0).UTC(),
			Duration:     time.Duration(fw.Duration) * time.Second,
			Discipline:   fw.FitnessDiscipline,
			InstructorID: fw.InstructorID,
			Title:        fw.Title,
			Difficulty:   fw.DifficultyEstimate,
		}

		row, ok := index[fw.StartTime/60]
		if !ok {
			misses++
			records = append(records, record)
			continue
		}

		record.Output = row.Output
		record.Resistance = row.Resistance
		record.Cadence = row.Cadence
		record.Speed = row.Speed
		record.Distance = row.Distance
		record.Calories = row.Calories
		record.AvgHeartRate = row.AvgHeartRate
		record.MaxHeartRate = row.MaxHeartRate

		records = append(records, record)
	}

	if misses > 0 {
		log.Debugf("correlate: %d of %d feed workouts have no export row", misses, len(feed))
	}

	return records
}

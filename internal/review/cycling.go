package review

import (
	"time"

	"github.com/velimirb/riderewind/internal/workout"
)

// RideSummary is the preview of a single notable ride.
type RideSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartedAt time.Time `json:"startedAt"`
	Output    float64   `json:"output"` // kJ
}

type CyclingStats struct {
	Rides         int     `json:"rides"`
	AvgCadence    float64 `json:"avgCadence"`
	AvgResistance float64 `json:"avgResistance"`
	AvgOutput     float64 `json:"avgOutput"`
	AvgSpeed      float64 `json:"avgSpeed"` // mph
	// BestRide is the single highest-output ride in the window.
	BestRide *RideSummary `json:"bestRide,omitempty"`
}

// AggregateCycling computes cycling-only averages. Each average divides
// by the number of rides that actually carry the metric, so rides with
// a missing field do not drag an average toward zero.
func AggregateCycling(records []workout.Record) CyclingStats {
	stats := CyclingStats{}

	var cadenceSum, resistanceSum, outputSum, speedSum float64
	var cadenceCount, resistanceCount, outputCount, speedCount int

	for _, r := range records {
		if !r.IsCycling() {
			continue
		}
		stats.Rides++

		if r.Cadence != nil {
			cadenceSum += *r.Cadence
			cadenceCount++
		}
		if r.Resistance != nil {
			resistanceSum += *r.Resistance
			resistanceCount++
		}
		if r.Output != nil {
			outputSum += *r.Output
			outputCount++
			if stats.BestRide == nil || *r.Output > stats.BestRide.Output {
				stats.BestRide = &RideSummary{
					ID:        r.ID,
					Title:     r.Title,
					StartedAt: r.StartedAt,
					Output:    *r.Output,
				}
			}
		}
		if r.Speed != nil {
			speedSum += *r.Speed
			speedCount++
		}
	}

	if cadenceCount > 0 {
		stats.AvgCadence = roundTo(cadenceSum/float64(cadenceCount), 1)
	}
	if resistanceCount > 0 {
		stats.AvgResistance = roundTo(resistanceSum/float64(resistanceCount), 1)
	}
	if outputCount > 0 {
		stats.AvgOutput = roundTo(outputSum/float64(outputCount), 1)
	}
	if speedCount > 0 {
		stats.AvgSpeed = roundTo(speedSum/float64(speedCount), 1)
	}

	return stats
}

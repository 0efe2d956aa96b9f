package workout

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// bulk export header names; speed and distance come in one of two unit
// variants depending on the account's unit preference
const (
	colTimestamp      = "Workout Timestamp"
	colInstructorName = "Instructor Name"
	colDiscipline     = "Fitness Discipline"
	colTitle          = "Title"
	colOutput         = "Total Output"
	colResistance     = "Avg. Resistance"
	colCadence        = "Avg. Cadence (RPM)"
	colSpeedMph       = "Avg. Speed (mph)"
	colSpeedKph       = "Avg. Speed (kph)"
	colDistanceMi     = "Distance (mi)"
	colDistanceKm     = "Distance (km)"
	colCalories       = "Calories Burned"
	colAvgHeartRate   = "Avg. Heartrate"
	colMaxHeartRate   = "Max. Heartrate"
	colLengthMinutes  = "Length (minutes)"
)

// ExportRow is one normalized row of the bulk workout export. Optional
// numeric fields are nil when the cell was empty.
type ExportRow struct {
	Timestamp      time.Time
	InstructorName string
	Discipline     string
	Title          string
	Output         *float64 // kJ
	Resistance     *float64 // percent
	Cadence        *float64 // rpm
	Speed          *float64 // mph
	Distance       *float64 // miles
	Calories       *float64
	AvgHeartRate   *float64
	MaxHeartRate   *float64
	LengthMinutes  *float64
}

// ParseExport reads the raw bulk-export CSV and returns its normalized
// rows. Columns are resolved by header name, so column order does not
// matter. Rows with an unparsable timestamp are dropped, not defaulted.
func ParseExport(r io.Reader) ([]ExportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read export header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	if _, ok := col[colTimestamp]; !ok {
		return nil, fmt.Errorf("export header missing %q column", colTimestamp)
	}

	cell := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	var rows []ExportRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read export row: %w", err)
		}

		ts, err := ParseTimestamp(cell(record, colTimestamp))
		if err != nil {
			log.Warnf("skipping export row with bad timestamp: %s", err)
			continue
		}

		row := ExportRow{
			Timestamp:      ts,
			InstructorName: cell(record, colInstructorName),
			Discipline:     cell(record, colDiscipline),
			Title:          cell(record, colTitle),
			Output:         parseOptionalFloat(cell(record, colOutput)),
			Resistance:     parseOptionalResistance(cell(record, colResistance)),
			Cadence:        parseOptionalFloat(cell(record, colCadence)),
			Calories:       parseOptionalFloat(cell(record, colCalories)),
			AvgHeartRate:   parseOptionalFloat(cell(record, colAvgHeartRate)),
			MaxHeartRate:   parseOptionalFloat(cell(record, colMaxHeartRate)),
			LengthMinutes:  parseOptionalFloat(cell(record, colLengthMinutes)),
		}

		if speed := parseOptionalFloat(cell(record, colSpeedMph)); speed != nil {
			row.Speed = speed
		} else if speed := parseOptionalFloat(cell(record, colSpeedKph)); speed != nil {
			mph := KphToMph(*speed)
			row.Speed = &mph
		}

		if dist := parseOptionalFloat(cell(record, colDistanceMi)); dist != nil {
			row.Distance = dist
		} else if dist := parseOptionalFloat(cell(record, colDistanceKm)); dist != nil {
			miles := KmToMiles(*dist)
			row.Distance = &miles
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func parseOptionalFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Tracef("skipping unparsable export value %q: %s", raw, err)
		return nil
	}
	return &val
}

func parseOptionalResistance(raw string) *float64 {
	if raw == "" {
		return nil
	}
	val, err := ParseResistance(raw)
	if err != nil {
		log.Tracef("skipping unparsable resistance %q: %s", raw, err)
		return nil
	}
	return &val
}

package workout

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// the platform reports metric values in km/kph, we normalize to imperial
const kmToMilesFactor = 0.621371

// export timestamps come at minute granularity, e.g. "2024-03-01 09:14 (GMT)"
const exportTimeLayout = "2006-01-02 15:04"

var ErrBadTimestamp = fmt.Errorf("unparsable timestamp")

// ParseTimestamp normalizes a raw timestamp into UTC. Two formats are
// accepted: the bulk-export format "YYYY-MM-DD HH:MM (GMT)" (the suffix
// varies between "(GMT)" and "(UTC)", both meaning UTC), and a raw
// epoch-seconds value. Anything else is an error; callers drop such
// records instead of defaulting them, since a zero timestamp would
// corrupt date-range computations.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrBadTimestamp)
	}

	for _, suffix := range []string{"(GMT)", "(UTC)"} {
		if strings.HasSuffix(raw, suffix) {
			trimmed := strings.TrimSpace(strings.TrimSuffix(raw, suffix))
			t, err := time.ParseInLocation(exportTimeLayout, trimmed, time.UTC)
			if err != nil {
				return time.Time{}, fmt.Errorf("%w: %s", ErrBadTimestamp, raw)
			}
			return t, nil
		}
	}

	epoch, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrBadTimestamp, raw)
	}
	return time.Unix(epoch, 0).UTC(), nil
}

// KphToMph converts kilometers per hour to miles per hour.
func KphToMph(kph float64) float64 {
	return kph * kmToMilesFactor
}

// KmToMiles converts kilometers to miles.
func KmToMiles(km float64) float64 {
	return km * kmToMilesFactor
}

// ParseResistance parses a resistance value, stripping an optional
// trailing "%" suffix.
func ParseResistance(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse resistance %q: %w", raw, err)
	}
	return val, nil
}

package review

// conversion constants for the "fun equivalents" slide
const (
	kjToWattHours        = 0.277778
	phoneChargeWattHours = 15.0
	toastWattHours       = 33.0
	marathonMiles        = 26.2
)

type Equivalents struct {
	WattHours    float64 `json:"wattHours"`
	PhoneCharges float64 `json:"phoneCharges"`
	ToastSlices  float64 `json:"toastSlices"`
	Marathons    float64 `json:"marathons"`
}

// AggregateEquivalents converts total output and distance into
// everyday-quantity equivalents. Pure arithmetic over already-computed
// totals; formatting stays with the presentation layer.
func AggregateEquivalents(totalOutputKJ, totalDistanceMiles float64) Equivalents {
	wattHours := totalOutputKJ * kjToWattHours
	return Equivalents{
		WattHours:    roundTo(wattHours, 1),
		PhoneCharges: roundTo(wattHours/phoneChargeWattHours, 1),
		ToastSlices:  roundTo(wattHours/toastWattHours, 1),
		Marathons:    roundTo(totalDistanceMiles/marathonMiles, 2),
	}
}

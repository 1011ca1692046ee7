package trend

// Label is the qualitative direction of a temperature trend
type Label string

const (
	HeatingUp   Label = "Heating Up"
	CoolingDown Label = "Cooling Down"
	Stable      Label = "Stable"
)

// slopes strictly beyond these bounds, in degrees per forecast step, are labelled as a trend
const (
	HeatingThreshold = 0.5
	CoolingThreshold = -0.5
)

// Classify maps a regression slope to a trend label
func Classify(slope float64) Label {
	switch {
	case slope > HeatingThreshold:
		return HeatingUp
	case slope < CoolingThreshold:
		return CoolingDown
	default:
		return Stable
	}
}

func (l Label) String() string {
	return string(l)
}

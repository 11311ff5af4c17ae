package timeline

// Status classifies a machine's operational state at a point in time.
type Status string

const (
	StatusRunning Status = "RUNNING"
	StatusStandby Status = "STANDBY"
	StatusStopped Status = "STOP"
	StatusUnknown Status = "UNKNOWN"
	// StatusNoData marks synthetic segments covering intervals with no
	// event coverage. It is never produced by a classifier.
	StatusNoData Status = "NO DATA"
)

// Colors used by the dashboard's timeline bars, keyed by status.
const (
	ColorRunning = "#00BCD4"
	ColorStandby = "#FFC107"
	ColorStopped = "#FF5252"
	ColorNoData  = "#e0e0e0"
)

// Color returns the fixed display color token for a status. Unknown states
// share the stop color so they stand out as non-productive time.
func (s Status) Color() string {
	switch s {
	case StatusRunning:
		return ColorRunning
	case StatusStandby:
		return ColorStandby
	case StatusNoData:
		return ColorNoData
	default:
		return ColorStopped
	}
}

// Classifier maps a raw numeric status code from the telemetry feed to a
// Status. Codes outside the mapping must yield StatusUnknown.
type Classifier func(code float64) Status

// DefaultClassifier implements the floor gateway's standard code scheme:
// 2 running, 1 standby, 0 stopped.
func DefaultClassifier(code float64) Status {
	switch code {
	case 2:
		return StatusRunning
	case 1:
		return StatusStandby
	case 0:
		return StatusStopped
	default:
		return StatusUnknown
	}
}

// NewClassifier builds a Classifier from explicit code lists, mirroring how
// deployments remap vendor-specific codes in configuration.
func NewClassifier(running, standby, stopped []float64) Classifier {
	return func(code float64) Status {
		for _, v := range running {
			if code == v {
				return StatusRunning
			}
		}
		for _, v := range standby {
			if code == v {
				return StatusStandby
			}
		}
		for _, v := range stopped {
			if code == v {
				return StatusStopped
			}
		}
		return StatusUnknown
	}
}

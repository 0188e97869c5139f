package calculation

import "time"

// Model constants
const (
	// DaysPerYear is the compounding basis for every daily factor.
	DaysPerYear = 365

	// PreservationAge is the age before which super cannot be touched.
	PreservationAge = 60

	// HorizonAge is the last age the engine will model working to.
	HorizonAge = 67

	// DebtEpsilon is the balance at or below which a debt is considered paid off.
	DebtEpsilon = 0.005

	// ForecastWindowDays bounds how many simulated days use forecast returns.
	ForecastWindowDays = 730

	// UnboundedProbeYears caps the "how long does it really last" probes.
	UnboundedProbeYears = 100

	// RequestDelay is the pause between remote forecast requests (provider rate limit).
	RequestDelay = 8500 * time.Millisecond
)

// Convergence defaults for the allocation search
const (
	DefaultMaxEpochs = 10
	DefaultMinWidth  = 1e-3

	// MaxEpochsCap bounds any configured MaxEpochs.
	MaxEpochsCap = 12
)

// ratioCap stands in for an unbounded feasibility ratio (empty window).
const ratioCap = 1e9

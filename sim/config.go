package sim

// Policy mode selectors, matching the original command-line contract:
// 0 selects the greedy best-SNR policy, 1 selects MACOL.
const (
	ModeGreedy = 0
	ModeMACOL  = 1
)

// PolicyConfig groups beam-allocation policy selection and MACOL tuning.
type PolicyConfig struct {
	Mode         int     // ModeGreedy (default) or ModeMACOL
	Epsilon      float64 // exploration rate after the explore-first phase
	ExploreTicks int64   // duration of the initial full-exploration phase
}

// MobilityConfig groups traffic generation parameters.
type MobilityConfig struct {
	NumCars  int     // number of vehicles kept on the highway
	SpeedMin float64 // metres per second (must be > 0)
	SpeedMax float64 // metres per second (must be >= SpeedMin)
}

// ReportConfig groups periodic statistics reporting.
type ReportConfig struct {
	PeriodTicks int64 // reporting period; 0 disables period rows
}

// SimConfig groups everything NewSimulator needs besides the scenario.
type SimConfig struct {
	Seed      int64
	Horizon   int64 // total simulation time in ticks
	StepTicks int64 // mobility step; every step the policy runs once

	Policy   PolicyConfig
	Mobility MobilityConfig
	Report   ReportConfig
}

// Package trace provides session recording for beam-allocation runs.
// This package has no dependencies on sim/ and stores pure data types.
package trace

// PeriodRecord captures one periodic statistics row, one line of a
// session file.
type PeriodRecord struct {
	Clock          int64 // end of the period, in ticks
	PeriodDuration int64 // observed vehicle-time in the period, in ticks

	// Vehicle service time split, in ticks.
	Connected    int64
	Disconnected int64
	Interfered   int64

	// Per-sector means over connections finished in the period, in ticks.
	MeanConnDuration     float64
	MeanInterferenceFree float64
}

// ConnectedPct returns the connected share of the period in percent.
func (r PeriodRecord) ConnectedPct() float64 { return pct(r.Connected, r.PeriodDuration) }

// DisconnectedPct returns the no-service share of the period in percent.
func (r PeriodRecord) DisconnectedPct() float64 { return pct(r.Disconnected, r.PeriodDuration) }

// InterferedPct returns the interfered share of the period in percent.
func (r PeriodRecord) InterferedPct() float64 { return pct(r.Interfered, r.PeriodDuration) }

func pct(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return 100.0 * float64(part) / float64(whole)
}

// ConnectionRecord captures one finished beam-vehicle connection.
type ConnectionRecord struct {
	SectorID         string
	Clock            int64   // time of connection loss, in ticks
	Duration         int64   // connection duration, in ticks
	InterferenceFree int64   // interference-free part of the duration, in ticks
	Displacement     float64 // metres the vehicle covered while connected
}

// InterferenceFreeRatio returns the clean fraction of the connection, in [0, 1].
func (r ConnectionRecord) InterferenceFreeRatio() float64 {
	if r.Duration == 0 {
		return 0
	}
	return float64(r.InterferenceFree) / float64(r.Duration)
}

// ServiceDisplacement weights the displacement by the interference-free
// fraction: the effective distance over which the vehicle was served cleanly.
func (r ConnectionRecord) ServiceDisplacement() float64 {
	return r.InterferenceFreeRatio() * r.Displacement
}

package trace

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SessionSummary aggregates statistics from a SessionTrace.
type SessionSummary struct {
	Periods     int
	Connections int

	// Service displacement: distance covered per connection weighted by its
	// interference-free fraction, in metres.
	MeanServiceDisplacement   float64
	MedianServiceDisplacement float64
	P90ServiceDisplacement    float64

	MeanInterferenceFreeRatio float64

	// PerSectorServiceDisplacement maps sector ID to its mean service
	// displacement across finished connections.
	PerSectorServiceDisplacement map[string]float64
}

// Summarize computes aggregate statistics from a SessionTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SessionTrace) *SessionSummary {
	summary := &SessionSummary{
		PerSectorServiceDisplacement: make(map[string]float64),
	}
	if st == nil {
		return summary
	}

	summary.Periods = len(st.Periods)
	summary.Connections = len(st.Connections)
	if len(st.Connections) == 0 {
		return summary
	}

	displacements := make([]float64, 0, len(st.Connections))
	ratios := make([]float64, 0, len(st.Connections))
	perSector := make(map[string][]float64)
	for _, c := range st.Connections {
		d := c.ServiceDisplacement()
		displacements = append(displacements, d)
		ratios = append(ratios, c.InterferenceFreeRatio())
		perSector[c.SectorID] = append(perSector[c.SectorID], d)
	}

	sort.Float64s(displacements)
	summary.MeanServiceDisplacement = stat.Mean(displacements, nil)
	summary.MedianServiceDisplacement = stat.Quantile(0.5, stat.Empirical, displacements, nil)
	summary.P90ServiceDisplacement = stat.Quantile(0.9, stat.Empirical, displacements, nil)
	summary.MeanInterferenceFreeRatio = stat.Mean(ratios, nil)

	for id, ds := range perSector {
		summary.PerSectorServiceDisplacement[id] = stat.Mean(ds, nil)
	}

	return summary
}

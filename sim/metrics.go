// Tracks simulation-wide service statistics: connected, no-service and
// interfered vehicle-time, overall and per reporting period.

package sim

import (
	"fmt"
	"time"

	"github.com/beam-sim/beam-sim/sim/trace"
)

// Metrics aggregates statistics about the simulation for periodic rows and
// the final report. All durations are in ticks of observed vehicle-time:
// one vehicle observed for one tick contributes one tick.
type Metrics struct {
	Connected    int64 // vehicle-time served without interference
	Disconnected int64 // vehicle-time without any serving beam
	Interfered   int64 // vehicle-time served but interfered

	PeakAssociations int   // max number of simultaneously serving sectors
	SimEndedTime     int64 // clock value when the simulation ended

	// Snapshot bases for the current reporting period.
	periodConnected    int64
	periodDisconnected int64
	periodInterfered   int64
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// ObservedTime returns the total observed vehicle-time in ticks.
func (m *Metrics) ObservedTime() int64 {
	return m.Connected + m.Disconnected + m.Interfered
}

// Report computes the period row ending at now and rolls the period
// snapshots, both in Metrics and in the per-sector counters. It returns
// false when no vehicle-time was observed in the period.
func (m *Metrics) Report(now int64, sectors []*Sector) (trace.PeriodRecord, bool) {
	connected := m.Connected - m.periodConnected
	disconnected := m.Disconnected - m.periodDisconnected
	interfered := m.Interfered - m.periodInterfered
	periodDuration := connected + disconnected + interfered
	if periodDuration == 0 {
		return trace.PeriodRecord{}, false
	}

	// Mean per-connection duration across sectors that completed connections
	// this period.
	var meanDur, meanFree float64
	busySectors := 0
	for _, sector := range sectors {
		if sector.PeriodConnCount == 0 {
			continue
		}
		meanDur += float64(sector.TotalDuration-sector.PeriodDuration) / float64(sector.PeriodConnCount)
		meanFree += float64(sector.TotalInterferenceFree-sector.PeriodInterferenceFree) / float64(sector.PeriodConnCount)
		busySectors++
	}
	if busySectors > 0 {
		meanDur /= float64(busySectors)
		meanFree /= float64(busySectors)
	}

	record := trace.PeriodRecord{
		Clock:                now,
		PeriodDuration:       periodDuration,
		Connected:            connected,
		Disconnected:         disconnected,
		Interfered:           interfered,
		MeanConnDuration:     meanDur,
		MeanInterferenceFree: meanFree,
	}

	// Roll the snapshots.
	m.periodConnected = m.Connected
	m.periodDisconnected = m.Disconnected
	m.periodInterfered = m.Interfered
	for _, sector := range sectors {
		sector.PeriodDuration = sector.TotalDuration
		sector.PeriodInterferenceFree = sector.TotalInterferenceFree
		sector.PeriodConnCount = 0
	}

	return record, true
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print(policyName string, startTime time.Time) {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Policy               : %s\n", policyName)
	fmt.Printf("Simulated time       : %.2f s\n", float64(m.SimEndedTime)/TicksPerSecond)
	total := m.ObservedTime()
	if total > 0 {
		fmt.Printf("Connected            : %.2f%%\n", 100*float64(m.Connected)/float64(total))
		fmt.Printf("No service           : %.2f%%\n", 100*float64(m.Disconnected)/float64(total))
		fmt.Printf("Interfered           : %.2f%%\n", 100*float64(m.Interfered)/float64(total))
	}
	fmt.Printf("Peak active beams    : %d\n", m.PeakAssociations)
	fmt.Printf("Wall-clock time      : %v\n", time.Since(startTime))
}

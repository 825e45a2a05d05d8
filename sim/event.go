package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event has a Timestamp (in ticks) and an Execute method that advances
// simulation state when invoked.
type Event interface {
	Timestamp() int64
	Execute(*Simulator)
}

// MobilityTickEvent advances every vehicle by one mobility step, accrues
// service-time statistics, runs the beam-allocation policy, and rescans
// beam overlap for interference.
type MobilityTickEvent struct {
	time int64
}

// Timestamp returns the scheduled time of the MobilityTickEvent.
func (e *MobilityTickEvent) Timestamp() int64 {
	return e.time
}

// Execute runs one mobility step and schedules the next one.
func (e *MobilityTickEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< MobilityTick at %d ticks", e.time)
	sim.stepMobility(e.time)

	next := e.time + sim.StepTicks
	if next <= sim.Horizon {
		sim.Schedule(&MobilityTickEvent{time: next})
	}
}

// ReportEvent emits one periodic statistics row and schedules the next
// reporting period.
type ReportEvent struct {
	time int64
}

// Timestamp returns the scheduled time of the ReportEvent.
func (e *ReportEvent) Timestamp() int64 {
	return e.time
}

// Execute aggregates the period that just ended.
func (e *ReportEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< Report at %d ticks", e.time)
	sim.report(e.time)

	next := e.time + sim.PeriodTicks
	if next <= sim.Horizon {
		sim.Schedule(&ReportEvent{time: next})
	}
}

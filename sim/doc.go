// Package sim provides the core discrete-event simulation engine for beam-sim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - event.go: Event types that drive the simulation (MobilityTick, Report)
//   - simulator.go: The event loop, per-step stats accrual, and respawn logic
//   - policy.go: The BeamPolicy extension point (Greedy, MACOL)
//
// # Architecture
//
// A Scenario describes the highway: lanes, base-station sites, the beams
// mounted at each site, and the neighbour relation between sectors. The
// Simulator owns the event queue; every mobility step it advances vehicles,
// accrues service-time statistics, runs the active BeamPolicy, and rescans
// beam overlap to mark interfered vehicles.
//
// Implementations of secondary concerns live in sub-packages:
//   - sim/trace/: period rows, finished-connection records, CSV session output
//   - sim/display/: live terminal animation of a running simulation
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - BeamPolicy: per-step vehicle selection for every idle sector
//   - CoverageModel: radio footprint and signal quality of a transmitter
package sim

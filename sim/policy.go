package sim

import (
	"fmt"

	"github.com/beam-sim/beam-sim/sim/trace"
)

// BeamPolicy decides, once per mobility step, which vehicles the sectors
// serve. Implementations must keep the association bookkeeping consistent:
// after Execute returns, every sector either serves a covered vehicle or is
// idle, and every finished connection has been recorded.
type BeamPolicy interface {
	// Name returns a human-readable policy description.
	Name() string
	// Execute runs one allocation round at time now.
	Execute(now int64, vehicles []*Vehicle, sectors []*Sector)
	// Finish is called once at the end of the simulation.
	Finish(now int64)
}

// NewBeamPolicy constructs the policy selected by cfg.Mode.
func NewBeamPolicy(cfg PolicyConfig, sectors []*Sector, rng *PartitionedRNG, tr *trace.SessionTrace) (BeamPolicy, error) {
	switch cfg.Mode {
	case ModeGreedy:
		return NewGreedyPolicy(tr), nil
	case ModeMACOL:
		return NewMACOLPolicy(sectors, cfg, rng.ForSubsystem(SubsystemPolicy), tr), nil
	default:
		return nil, fmt.Errorf("unknown policy mode %d (0 = greedy, 1 = MACOL)", cfg.Mode)
	}
}

// dropLostConnections releases every sector whose serving vehicle left the
// beam footprint, recording one ConnectionRecord per loss. It returns the
// sectors that just lost a connection, with their final per-connection
// counters still intact.
func dropLostConnections(now int64, sectors []*Sector, tr *trace.SessionTrace) []*Sector {
	var lost []*Sector
	for _, sector := range sectors {
		if sector.ServingVehicle == nil {
			continue
		}
		if sector.Covers(sector.ServingVehicle) && sector.ServingVehicle.IsActive() {
			continue
		}
		sector.LostVehicle(now)
		lost = append(lost, sector)
		if tr != nil {
			tr.RecordConnection(trace.ConnectionRecord{
				SectorID:         sector.ID,
				Clock:            now,
				Duration:         sector.ServingDuration,
				InterferenceFree: sector.ServingInterferenceFree,
				Displacement:     sector.ServingDisplacement,
			})
		}
	}
	return lost
}

// reachableCandidates lists the active, unassociated vehicles inside the
// sector's footprint.
func reachableCandidates(sector *Sector, vehicles []*Vehicle) []*Vehicle {
	var candidates []*Vehicle
	for _, v := range vehicles {
		if !v.IsActive() || v.IsAssociated() {
			continue
		}
		if sector.Covers(v) {
			candidates = append(candidates, v)
		}
	}
	return candidates
}

package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/beam-sim/beam-sim/sim/trace"
)

// GreedyPolicy is base-station-centric best-SNR association: every idle
// sector serves the reachable unassociated vehicle with the strongest
// signal, with no regard for the interference it may cause.
type GreedyPolicy struct {
	tr *trace.SessionTrace
}

// NewGreedyPolicy creates a GreedyPolicy recording finished connections
// into tr (may be nil).
func NewGreedyPolicy(tr *trace.SessionTrace) *GreedyPolicy {
	return &GreedyPolicy{tr: tr}
}

func (p *GreedyPolicy) Name() string {
	return "Base station centric, selecting highest SNR"
}

// Execute refreshes existing associations and greedily fills idle sectors.
func (p *GreedyPolicy) Execute(now int64, vehicles []*Vehicle, sectors []*Sector) {
	dropLostConnections(now, sectors, p.tr)

	for _, sector := range sectors {
		if sector.ServingVehicle != nil {
			continue // skip if already in service
		}

		var best *Vehicle
		bestQuality := 0.0
		for _, v := range reachableCandidates(sector, vehicles) {
			if q := sector.SignalQuality(v); q > bestQuality {
				best, bestQuality = v, q
			}
		}
		if best != nil {
			sector.AssociateVehicle(best, now)
			logrus.Debugf("at t=%d, %s now serves %s", now, sector.ID, best.ID)
		}
	}
}

// Finish is a no-op for the greedy policy.
func (p *GreedyPolicy) Finish(now int64) {}

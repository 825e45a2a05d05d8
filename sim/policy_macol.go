package sim

import (
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/beam-sim/beam-sim/sim/trace"
)

// MACOLPolicy implements Multi-Agent Context Learning: each sector is an
// independent contextual-bandit agent. The context is the busy/idle bitmap
// of the sector's neighbours; the reward of a finished connection is its
// interference-free fraction. A sector that has learned a context to be
// interference-prone backs off instead of serving.
type MACOLPolicy struct {
	epsilon      float64
	exploreTicks int64

	explorationRate float64
	explorationOver bool
	rng             *rand.Rand
	tr              *trace.SessionTrace

	// Q tables per agent: sector ID -> context -> running mean reward / pulls.
	qValue map[string]map[string]float64
	qCount map[string]map[string]int
}

// NewMACOLPolicy creates a MACOL policy over the given sectors. rng drives
// candidate selection and exploration draws; tr (may be nil) receives
// finished-connection records.
func NewMACOLPolicy(sectors []*Sector, cfg PolicyConfig, rng *rand.Rand, tr *trace.SessionTrace) *MACOLPolicy {
	p := &MACOLPolicy{
		epsilon:         cfg.Epsilon,
		exploreTicks:    cfg.ExploreTicks,
		explorationRate: 1.0,
		rng:             rng,
		tr:              tr,
		qValue:          make(map[string]map[string]float64, len(sectors)),
		qCount:          make(map[string]map[string]int, len(sectors)),
	}
	for _, sector := range sectors {
		p.qValue[sector.ID] = make(map[string]float64)
		p.qCount[sector.ID] = make(map[string]int)
	}
	return p
}

func (p *MACOLPolicy) Name() string {
	return "Context Learning MAB"
}

// currentContext renders the sector's context: one bit per neighbour,
// "1" when the neighbour is transmitting.
func (p *MACOLPolicy) currentContext(sector *Sector) string {
	var sb strings.Builder
	sb.WriteString("[")
	for _, neighbour := range sector.Neighbours {
		if neighbour.ServingVehicle != nil {
			sb.WriteString("1")
		} else {
			sb.WriteString("0")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// threshold classifies contexts as interfering or non-interfering: the mean
// reward across every context the agent has seen so far.
func (p *MACOLPolicy) threshold(sector *Sector) float64 {
	values := p.qValue[sector.ID]
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// updateReward folds reward into the running mean for (sector, context).
func (p *MACOLPolicy) updateReward(sector *Sector, context string, reward float64) {
	value := p.qValue[sector.ID][context]*float64(p.qCount[sector.ID][context]) + reward
	p.qCount[sector.ID][context]++
	p.qValue[sector.ID][context] = value / float64(p.qCount[sector.ID][context])
}

// reward returns the learned mean reward for (sector, context), 0 if unseen.
func (p *MACOLPolicy) reward(sector *Sector, context string) float64 {
	return p.qValue[sector.ID][context]
}

// Execute runs one MACOL allocation round.
func (p *MACOLPolicy) Execute(now int64, vehicles []*Vehicle, sectors []*Sector) {
	// Explore-first, then epsilon-greedy.
	if now < p.exploreTicks {
		p.explorationRate = 1.0
	} else {
		if !p.explorationOver {
			p.explorationOver = true
			logrus.Infof("at t=%d, MACOL exploration phase is over", now)
		}
		p.explorationRate = p.epsilon
	}

	// Connections just lost update the reward of the context they started in.
	lost := dropLostConnections(now, sectors, p.tr)
	for _, sector := range lost {
		if sector.ServingDuration == 0 {
			// Vehicle got connected and moved out of the beam within the same
			// step. Very rare; no signal to learn from.
			continue
		}
		reward := float64(sector.ServingInterferenceFree) / float64(sector.ServingDuration)
		p.updateReward(sector, sector.Context, reward)
	}

	// Check for new associations.
	for _, sector := range sectors {
		if sector.ServingVehicle != nil {
			continue // skip if already in service
		}
		if sector.IsBackoff(now) {
			continue // skip if in backoff mode
		}

		candidates := reachableCandidates(sector, vehicles)
		if len(candidates) == 0 {
			continue
		}
		selected := candidates[p.rng.Intn(len(candidates))]

		// Exploration or exploitation?
		context := p.currentContext(sector)
		toServe := true
		threshold := 0.0
		if p.rng.Float64() >= p.explorationRate {
			reward := p.reward(sector, context)
			threshold = p.threshold(sector)
			toServe = reward == 0 || reward > threshold
			if reward != 0 {
				if toServe {
					logrus.Debugf("at t=%d, %s exploits service, as %.2f>%.2f", now, sector.ID, reward, threshold)
				} else {
					logrus.Debugf("at t=%d, %s skips, as %.2f<=%.2f", now, sector.ID, reward, threshold)
				}
			}
		}

		// Serve or back off?
		if toServe {
			sector.AssociateVehicle(selected, now)
			sector.Context = context
			logrus.Debugf("at t=%d, %s now serves %s", now, sector.ID, selected.ID)
		} else {
			// The threshold is a reward fraction, read as seconds of backoff.
			sector.Backoff(now, int64(threshold*float64(TicksPerSecond)))
		}
	}
}

// Finish logs how much each agent explored, for post-run inspection.
func (p *MACOLPolicy) Finish(now int64) {
	for sectorID, counts := range p.qCount {
		total := 0
		for _, c := range counts {
			total += c
		}
		logrus.Debugf("sector %s explored %d contexts, %d pulls", sectorID, len(counts), total)
	}
}

// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/beam-sim/beam-sim/sim/trace"
)

// EventQueue implements heap.Interface and orders events by timestamp.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []Event

func (eq EventQueue) Len() int           { return len(eq) }
func (eq EventQueue) Less(i, j int) bool { return eq[i].Timestamp() < eq[j].Timestamp() }
func (eq EventQueue) Swap(i, j int)      { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(Event))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds simulation time, system state,
// and the event loop.
type Simulator struct {
	Clock   int64
	Horizon int64
	// EventQueue has all the simulator events: mobility ticks and reports.
	EventQueue  EventQueue
	StepTicks   int64
	PeriodTicks int64

	Scenario *Scenario
	Vehicles []*Vehicle
	Sectors  []*Sector
	Policy   BeamPolicy
	Metrics  *Metrics
	Trace    *trace.SessionTrace
	RNG      *PartitionedRNG

	// Writer, when set, receives period rows as they are produced.
	Writer trace.RowWriter

	mobility MobilityConfig
	lastTick int64
	spawnSeq int
	finished bool
}

// NewSimulator validates cfg and scenario, builds sectors, traffic and the
// selected policy, and schedules the initial events.
func NewSimulator(cfg SimConfig, scenario *Scenario) (*Simulator, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if cfg.StepTicks <= 0 {
		return nil, fmt.Errorf("step must be positive, got %d ticks", cfg.StepTicks)
	}
	if cfg.Horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d ticks", cfg.Horizon)
	}
	if cfg.Mobility.NumCars <= 0 {
		return nil, fmt.Errorf("number of cars must be positive, got %d", cfg.Mobility.NumCars)
	}
	if cfg.Mobility.SpeedMin <= 0 || cfg.Mobility.SpeedMax < cfg.Mobility.SpeedMin {
		return nil, fmt.Errorf("invalid speed range [%.1f, %.1f]", cfg.Mobility.SpeedMin, cfg.Mobility.SpeedMax)
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	sectors := scenario.BuildSectors()
	vehicles := scenario.BuildVehicles(cfg.Mobility, rng.ForSubsystem(SubsystemMobility))
	tr := trace.NewSessionTrace()

	policy, err := NewBeamPolicy(cfg.Policy, sectors, rng, tr)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		Clock:       0,
		Horizon:     cfg.Horizon,
		EventQueue:  make(EventQueue, 0),
		StepTicks:   cfg.StepTicks,
		PeriodTicks: cfg.Report.PeriodTicks,
		Scenario:    scenario,
		Vehicles:    vehicles,
		Sectors:     sectors,
		Policy:      policy,
		Metrics:     NewMetrics(),
		Trace:       tr,
		RNG:         rng,
		mobility:    cfg.Mobility,
		spawnSeq:    len(vehicles),
	}

	s.Schedule(&MobilityTickEvent{time: cfg.StepTicks})
	if cfg.Report.PeriodTicks > 0 {
		s.Schedule(&ReportEvent{time: cfg.Report.PeriodTicks})
	}
	return s, nil
}

// Schedule pushes an event into the simulator's EventQueue.
func (s *Simulator) Schedule(ev Event) {
	heap.Push(&s.EventQueue, ev)
}

// Step processes events until one mobility step has executed. It returns
// false once the horizon is reached or the queue is drained, after the
// simulation has been finalized.
func (s *Simulator) Step() bool {
	for len(s.EventQueue) > 0 {
		ev := heap.Pop(&s.EventQueue).(Event)
		if ev.Timestamp() > s.Horizon {
			s.finish()
			return false
		}
		// advance the clock, then process the event
		s.Clock = ev.Timestamp()
		logrus.Debugf("[tick %07d] Executing %T", s.Clock, ev)
		ev.Execute(s)
		if _, ok := ev.(*MobilityTickEvent); ok {
			return true
		}
	}
	s.finish()
	return false
}

// Run drives the event loop to completion.
func (s *Simulator) Run() {
	for s.Step() {
	}
}

// Done reports whether the simulation has been finalized.
func (s *Simulator) Done() bool {
	return s.finished
}

// Finalize ends the simulation early, flushing end-of-run state. Used when
// an interactive display is quit before the horizon. Idempotent.
func (s *Simulator) Finalize() {
	s.finish()
}

func (s *Simulator) finish() {
	if s.finished {
		return
	}
	s.finished = true
	s.Metrics.SimEndedTime = min(s.Clock, s.Horizon)
	s.Policy.Finish(s.Clock)
	logrus.Infof("[tick %07d] Simulation ended", s.Clock)
}

// stepMobility is the body of one MobilityTickEvent: move, accrue, decide,
// rescan interference.
func (s *Simulator) stepMobility(now int64) {
	dt := now - s.lastTick
	s.lastTick = now

	// Advance vehicles; a vehicle that reaches the end of its lane leaves
	// the map and a fresh one enters on the same lane.
	for i, v := range s.Vehicles {
		if v.Mobility.Advance(dt) {
			s.respawn(i, now)
		}
	}

	// Accrue service-time statistics for every observable vehicle.
	for _, v := range s.Vehicles {
		if !v.Mobility.Entered() {
			continue
		}
		switch {
		case !v.IsAssociated():
			v.Stats.Disconnected += dt
			s.Metrics.Disconnected += dt
		case v.HasInterference:
			v.Stats.Interfered += dt
			s.Metrics.Interfered += dt
		default:
			v.Stats.Connected += dt
			s.Metrics.Connected += dt
		}
	}
	for _, sector := range s.Sectors {
		if sector.ServingVehicle == nil {
			continue
		}
		sector.TotalDuration += dt
		sector.ServingDuration += dt
		if !sector.ServingVehicle.HasInterference {
			sector.TotalInterferenceFree += dt
			sector.ServingInterferenceFree += dt
		}
	}

	// Run the beam-allocation policy.
	s.Policy.Execute(now, s.Vehicles, s.Sectors)

	// Re-evaluate beam overlap for every served vehicle.
	s.scanInterference()

	active := 0
	for _, sector := range s.Sectors {
		if sector.ServingVehicle != nil {
			active++
		}
	}
	if active > s.Metrics.PeakAssociations {
		s.Metrics.PeakAssociations = active
	}
}

// respawn replaces the vehicle at index i with a fresh one entering at the
// start of the same lane with a new random speed.
func (s *Simulator) respawn(i int, now int64) {
	old := s.Vehicles[i]
	spec := s.Scenario.Lanes[old.Lane]
	rng := s.RNG.ForSubsystem(SubsystemMobility)
	speed := s.mobility.SpeedMin + rng.Float64()*(s.mobility.SpeedMax-s.mobility.SpeedMin)
	id := fmt.Sprintf("car%d-%d", old.Lane+1, s.spawnSeq)
	s.spawnSeq++

	start := Point{X: spec.StartX, Y: spec.Y}
	end := Point{X: spec.EndX, Y: spec.Y}
	s.Vehicles[i] = NewVehicle(id, old.Lane, NewPathMobility(start, end, speed, 0))
	logrus.Debugf("at t=%d, %s left the highway, %s enters lane %d", now, old.ID, id, old.Lane+1)
}

// scanInterference marks every associated vehicle that a second active beam
// also covers. The flag is only meaningful while the vehicle is associated.
func (s *Simulator) scanInterference() {
	for _, v := range s.Vehicles {
		if !v.IsAssociated() {
			v.HasInterference = false
			continue
		}
		v.HasInterference = false
		for _, sector := range s.Sectors {
			if sector.ServingVehicle == nil || sector == v.AssociatedSector {
				continue
			}
			if sector.Covers(v) {
				v.HasInterference = true
				break
			}
		}
	}
}

// report emits one period row to the trace, the attached writer, and the log.
func (s *Simulator) report(now int64) {
	record, ok := s.Metrics.Report(now, s.Sectors)
	if !ok {
		return
	}
	s.Trace.RecordPeriod(record)
	if s.Writer != nil {
		if err := s.Writer.WritePeriod(record); err != nil {
			logrus.Errorf("failed to write period row: %v", err)
		}
	}
	logrus.Infof(">>> t=%.0fs: conn=%.2f%%, no_service=%.2f%%, interfered=%.2f%%, conn_duration=%.2fs, int_free=%.2fs",
		float64(now)/TicksPerSecond,
		record.ConnectedPct(), record.DisconnectedPct(), record.InterferedPct(),
		record.MeanConnDuration/TicksPerSecond, record.MeanInterferenceFree/TicksPerSecond)
}

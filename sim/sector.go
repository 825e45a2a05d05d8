package sim

import "math"

// Sector is one directional base-station beam. Under MACOL each sector acts
// as an independent learning agent; its neighbour list defines the context
// it observes.
type Sector struct {
	ID      string
	Site    Point
	Azimuth float64 // degrees clockwise from north
	Beam    CoverageModel

	Neighbours []*Sector

	// ServingVehicle is the vehicle currently served by this beam, nil if idle.
	ServingVehicle *Vehicle

	// Connection counters, in ticks.
	// - duration: connection duration (interfered or not)
	// - interference free: duration counting only interference-free time
	TotalDuration          int64 // overall connection duration
	TotalInterferenceFree  int64 // overall interference-free duration
	PeriodDuration         int64 // snapshot base for the current reporting period
	PeriodInterferenceFree int64 // snapshot base for the current reporting period
	PeriodConnCount        int   // connections started in the current period

	ServingDuration         int64 // duration of the current connection
	ServingInterferenceFree int64 // interference-free duration of the current connection

	// ServingDisplacement is the distance in metres the last served vehicle
	// covered while connected, recorded on loss.
	ServingDisplacement float64
	servingStartX       float64

	// MACOL agent state.
	Context         string
	backoffStart    int64
	backoffDuration int64
}

// NewSector creates a sector beam at the given site.
func NewSector(id string, site Point, azimuth float64, beam CoverageModel) *Sector {
	return &Sector{ID: id, Site: site, Azimuth: azimuth, Beam: beam}
}

// Covers reports whether the beam footprint reaches the vehicle.
func (s *Sector) Covers(v *Vehicle) bool {
	return s.Beam.Covers(s.Site, s.Azimuth, v.Position())
}

// SignalQuality returns the beam's signal score at the vehicle's location,
// 0 when out of coverage.
func (s *Sector) SignalQuality(v *Vehicle) float64 {
	return s.Beam.Quality(s.Site, s.Azimuth, v.Position())
}

// AssociateVehicle starts serving the given vehicle and resets the
// per-connection counters.
func (s *Sector) AssociateVehicle(v *Vehicle, now int64) {
	s.ServingVehicle = v
	v.AssociatedSector = s
	s.ServingDuration = 0
	s.ServingInterferenceFree = 0
	s.PeriodConnCount++
	s.servingStartX = v.Position().X
}

// LostVehicle ends the current connection, recording the service
// displacement of the vehicle while it was connected.
func (s *Sector) LostVehicle(now int64) {
	s.ServingDisplacement = math.Abs(s.ServingVehicle.Position().X - s.servingStartX)
	s.ServingVehicle.AssociatedSector = nil
	s.ServingVehicle.HasInterference = false
	s.ServingVehicle = nil
}

// Backoff activates a backoff window starting at start for duration ticks.
func (s *Sector) Backoff(start, duration int64) {
	s.backoffStart = start
	s.backoffDuration = duration
}

// IsBackoff reports whether the sector is inside its backoff window at the
// given time.
func (s *Sector) IsBackoff(now int64) bool {
	return now-s.backoffStart < s.backoffDuration
}

package sim

import (
	"fmt"
	"math/rand"
)

// LaneSpec describes one highway lane. Vehicles travel from (StartX, Y) to
// (EndX, Y); StartX > EndX means westbound traffic.
type LaneSpec struct {
	Y      float64 `yaml:"y"`
	StartX float64 `yaml:"start_x"`
	EndX   float64 `yaml:"end_x"`
}

// SiteSpec describes one base-station site and the beams mounted on it,
// one sector per azimuth.
type SiteSpec struct {
	X        float64   `yaml:"x"`
	Y        float64   `yaml:"y"`
	Azimuths []float64 `yaml:"azimuths"`
}

// Scenario describes the simulated highway: geometry, radio parameters, and
// the neighbour relation between sectors that MACOL agents observe.
type Scenario struct {
	Name       string  `yaml:"name"`
	CarrierGHz float64 `yaml:"carrier_ghz"`
	BeamRadius float64 `yaml:"beam_radius_m"`
	BeamWidth  float64 `yaml:"beam_width_deg"`

	Lanes []LaneSpec `yaml:"lanes"`
	Sites []SiteSpec `yaml:"sites"`

	// Neighbours maps a sector index to the indices of its neighbouring
	// sectors. Sector indices count beams site by site, in azimuth order.
	Neighbours map[int][]int `yaml:"neighbours"`
}

// NumSectors returns the total number of beams across all sites.
func (sc *Scenario) NumSectors() int {
	n := 0
	for _, site := range sc.Sites {
		n += len(site.Azimuths)
	}
	return n
}

// Validate checks scenario consistency before a simulation is built.
func (sc *Scenario) Validate() error {
	if len(sc.Lanes) == 0 {
		return fmt.Errorf("scenario %q has no lanes", sc.Name)
	}
	if len(sc.Sites) == 0 {
		return fmt.Errorf("scenario %q has no base-station sites", sc.Name)
	}
	if sc.BeamRadius <= 0 {
		return fmt.Errorf("beam radius must be positive, got %.1f", sc.BeamRadius)
	}
	if sc.BeamWidth <= 0 || sc.BeamWidth > 360 {
		return fmt.Errorf("beam width must be in (0, 360], got %.1f", sc.BeamWidth)
	}
	for i, lane := range sc.Lanes {
		if lane.StartX == lane.EndX {
			return fmt.Errorf("lane %d has zero length", i)
		}
	}
	numSectors := sc.NumSectors()
	for _, site := range sc.Sites {
		for _, az := range site.Azimuths {
			if az < 0 || az >= 360 {
				return fmt.Errorf("sector azimuth %.1f out of range [0, 360)", az)
			}
		}
	}
	for idx, neighbours := range sc.Neighbours {
		if idx < 0 || idx >= numSectors {
			return fmt.Errorf("neighbour map references unknown sector index %d", idx)
		}
		for _, n := range neighbours {
			if n < 0 || n >= numSectors {
				return fmt.Errorf("sector %d lists unknown neighbour index %d", idx, n)
			}
			if n == idx {
				return fmt.Errorf("sector %d lists itself as a neighbour", idx)
			}
		}
	}
	return nil
}

// BuildSectors instantiates the sector beams and wires the neighbour
// relation. Sector IDs follow the "BS-<site>.<azimuth>" convention.
func (sc *Scenario) BuildSectors() []*Sector {
	beam := &SectorBeamModel{Radius: sc.BeamRadius, BeamWidth: sc.BeamWidth}
	sectors := make([]*Sector, 0, sc.NumSectors())
	for i, site := range sc.Sites {
		for _, az := range site.Azimuths {
			id := fmt.Sprintf("BS-%d.%d", i, int(az))
			sectors = append(sectors, NewSector(id, Point{X: site.X, Y: site.Y}, az, beam))
		}
	}
	for idx, neighbours := range sc.Neighbours {
		for _, n := range neighbours {
			sectors[idx].Neighbours = append(sectors[idx].Neighbours, sectors[n])
		}
	}
	return sectors
}

// BuildVehicles creates the initial traffic. The first wave puts one vehicle
// on every lane with a short random start delay; further waves of up to one
// vehicle per lane enter every waveGapSec seconds, outermost lanes first,
// until numCars vehicles exist.
func (sc *Scenario) BuildVehicles(mob MobilityConfig, rng *rand.Rand) []*Vehicle {
	const waveGapSec = 5.0

	vehicles := make([]*Vehicle, 0, mob.NumCars)
	spawn := func(lane int, delaySec float64) {
		spec := sc.Lanes[lane]
		start := Point{X: spec.StartX, Y: spec.Y}
		end := Point{X: spec.EndX, Y: spec.Y}
		speed := mob.SpeedMin + rng.Float64()*(mob.SpeedMax-mob.SpeedMin)
		id := fmt.Sprintf("car%d-%d", lane+1, len(vehicles))
		delay := int64(delaySec * TicksPerSecond)
		vehicles = append(vehicles, NewVehicle(id, lane, NewPathMobility(start, end, speed, delay)))
	}

	// First wave: one vehicle per lane.
	for lane := range sc.Lanes {
		if len(vehicles) >= mob.NumCars {
			break
		}
		spawn(lane, rng.Float64()*waveGapSec)
	}

	// Later waves fill outermost lanes first (lane 0, lane N-1, lane 1, ...).
	order := laneFillOrder(len(sc.Lanes))
	delay := 0.0
	for len(vehicles) < mob.NumCars {
		delay += waveGapSec
		for _, lane := range order {
			if len(vehicles) >= mob.NumCars {
				break
			}
			spawn(lane, delay+rng.Float64()*waveGapSec)
		}
	}
	return vehicles
}

// laneFillOrder interleaves lanes outermost-first: 0, n-1, 1, n-2, ...
func laneFillOrder(n int) []int {
	order := make([]int, 0, n)
	lo, hi := 0, n-1
	for lo <= hi {
		order = append(order, lo)
		if hi != lo {
			order = append(order, hi)
		}
		lo++
		hi--
	}
	return order
}

// DefaultScenario returns the built-in M26 highway layout: 6 sites along a
// 3-lane dual carriageway, 3 beams per site (18 sectors), 80 m beams of 60
// degrees at 28 GHz.
//
// Beam layout (azimuths clockwise from north):
//
//	[9][10][11]  [12][13][14]  [15][16][17]  <- north sites, facing south
//	====================================HIGHWAY===========
//	[0][1][2]       [3][4][5]    [6][7][8]   <- south sites, facing north
func DefaultScenario() *Scenario {
	lanes := make([]LaneSpec, 0, 6)
	y := 211.0 // 4 m lane spacing from the north edge of the south carriageway
	const endPoint = 480.0
	for i := 0; i < 3; i++ { // eastbound lanes
		lanes = append(lanes, LaneSpec{Y: y, StartX: 0, EndX: endPoint})
		y += 4
	}
	for i := 0; i < 3; i++ { // westbound lanes
		lanes = append(lanes, LaneSpec{Y: y, StartX: endPoint, EndX: 0})
		y += 4
	}

	return &Scenario{
		Name:       "A busy highway (M26)",
		CarrierGHz: 28,
		BeamRadius: 80,
		BeamWidth:  60,
		Lanes:      lanes,
		Sites: []SiteSpec{
			// south side, beams pointing north-west / north / north-east
			{X: 100, Y: 260, Azimuths: []float64{300, 0, 60}},
			{X: 220, Y: 260, Azimuths: []float64{300, 0, 60}},
			{X: 360, Y: 260, Azimuths: []float64{300, 0, 60}},
			// north side, beams pointing south-east / south / south-west
			{X: 90, Y: 180, Azimuths: []float64{240, 180, 120}},
			{X: 210, Y: 180, Azimuths: []float64{240, 180, 120}},
			{X: 340, Y: 180, Azimuths: []float64{240, 180, 120}},
		},
		// Manually derived adjacency: a neighbour is any beam whose footprint
		// can overlap with this one across or along the carriageway.
		Neighbours: map[int][]int{
			0:  {9, 10, 1},
			1:  {9, 10, 11, 0, 2},
			2:  {10, 11, 12, 1, 3},
			3:  {11, 12, 13, 2, 4},
			4:  {12, 13, 14, 3, 5},
			5:  {13, 14, 15, 4, 6},
			6:  {14, 15, 16, 5, 7},
			7:  {15, 16, 17, 6, 8},
			8:  {16, 17, 7},
			9:  {0, 1, 10},
			10: {0, 1, 2, 9, 11},
			11: {1, 2, 3, 10, 12},
			12: {2, 3, 4, 11, 13},
			13: {3, 4, 5, 12, 14},
			14: {4, 5, 6, 13, 15},
			15: {5, 6, 7, 14, 16},
			16: {6, 7, 8, 15, 17},
			17: {7, 8, 16},
		},
	}
}

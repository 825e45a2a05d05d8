package sim

// CoverageModel decides whether a transmitter reaches a target location and
// with what signal quality. Quality is an abstract monotone score: higher
// means stronger, 0 means not covered. The only property policies rely on
// is that, within a footprint, a nearer target scores higher.
type CoverageModel interface {
	Covers(origin Point, azimuth float64, target Point) bool
	Quality(origin Point, azimuth float64, target Point) float64
}

// DiscModel is an ideal omnidirectional footprint: every target within
// Radius metres of the origin is covered, regardless of azimuth.
type DiscModel struct {
	Radius float64 // metres
}

func (m *DiscModel) Covers(origin Point, _ float64, target Point) bool {
	return origin.DistanceTo(target) <= m.Radius
}

func (m *DiscModel) Quality(origin Point, _ float64, target Point) float64 {
	d := origin.DistanceTo(target)
	if d > m.Radius {
		return 0
	}
	return m.Radius - d
}

// SectorBeamModel is a directional mmWave beam: the disc sector of
// BeamWidth degrees centred on the transmitter azimuth, out to Radius
// metres.
type SectorBeamModel struct {
	Radius    float64 // metres
	BeamWidth float64 // degrees
}

func (m *SectorBeamModel) Covers(origin Point, azimuth float64, target Point) bool {
	if origin.DistanceTo(target) > m.Radius {
		return false
	}
	return angularDistance(origin.AzimuthTo(target), azimuth) <= m.BeamWidth/2.0
}

func (m *SectorBeamModel) Quality(origin Point, azimuth float64, target Point) float64 {
	if !m.Covers(origin, azimuth, target) {
		return 0
	}
	return m.Radius - origin.DistanceTo(target)
}

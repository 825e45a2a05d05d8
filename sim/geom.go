package sim

import "math"

// Point is a location on the simulation map, in metres.
// Map coordinates follow the screen convention: x grows east, y grows south,
// so north is the negative y direction.
type Point struct {
	X float64
	Y float64
}

// DistanceTo returns the Euclidean distance between p and q in metres.
func (p Point) DistanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// AzimuthTo returns the bearing from p to q in degrees clockwise from north,
// in [0, 360).
func (p Point) AzimuthTo(q Point) float64 {
	deg := math.Atan2(q.X-p.X, p.Y-q.Y) * 180.0 / math.Pi
	if deg < 0 {
		deg += 360.0
	}
	return deg
}

// angularDistance returns the absolute difference between two bearings,
// folded into [0, 180].
func angularDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360.0)
	if d > 180.0 {
		d = 360.0 - d
	}
	return d
}

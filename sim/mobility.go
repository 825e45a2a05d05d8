// Implements straight-line lane mobility with delayed entry, the movement
// model for every vehicle in the highway scenario.

package sim

// TicksPerSecond fixes the clock resolution: 1 tick = 1 ms of simulated time.
const TicksPerSecond = 1000

// PathMobility moves a vehicle in a straight line from Start to End at a
// constant speed. A vehicle with a start delay waits off-map and is invisible
// to coverage until it enters.
type PathMobility struct {
	Start Point
	End   Point
	Speed float64 // metres per second

	delayTicks int64
	pos        Point
	entered    bool
	finished   bool
}

// NewPathMobility creates a mobility path. delayTicks postpones entry onto
// the map; 0 means the vehicle is active immediately.
func NewPathMobility(start, end Point, speed float64, delayTicks int64) *PathMobility {
	return &PathMobility{
		Start:      start,
		End:        end,
		Speed:      speed,
		delayTicks: delayTicks,
		pos:        start,
		entered:    delayTicks == 0,
	}
}

// Position returns the current location. Before entry it is the start point.
func (m *PathMobility) Position() Point {
	return m.pos
}

// Entered reports whether the vehicle has entered the map.
func (m *PathMobility) Entered() bool {
	return m.entered
}

// Finished reports whether the vehicle has reached the end of its path.
func (m *PathMobility) Finished() bool {
	return m.finished
}

// Advance moves the vehicle by dt ticks and returns true when the end of
// the path has been reached. The final position is clamped to End.
func (m *PathMobility) Advance(dt int64) bool {
	if m.finished {
		return true
	}
	if m.delayTicks > 0 {
		if dt <= m.delayTicks {
			m.delayTicks -= dt
			return false
		}
		dt -= m.delayTicks
		m.delayTicks = 0
	}
	m.entered = true

	travel := m.Speed * float64(dt) / float64(TicksPerSecond)
	remaining := m.pos.DistanceTo(m.End)
	if travel >= remaining {
		m.pos = m.End
		m.finished = true
		return true
	}
	frac := travel / remaining
	m.pos.X += (m.End.X - m.pos.X) * frac
	m.pos.Y += (m.End.Y - m.pos.Y) * frac
	return false
}

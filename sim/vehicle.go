package sim

import "fmt"

// VehicleStats accumulates per-vehicle service time, in ticks.
// Connected + Disconnected + Interfered equals the total time the vehicle
// has been observable on the map.
type VehicleStats struct {
	Connected    int64
	Disconnected int64
	Interfered   int64
}

// Vehicle is a transmitting node travelling along a highway lane.
type Vehicle struct {
	ID       string
	Lane     int
	Mobility *PathMobility

	// AssociatedSector is the beam currently serving this vehicle, nil if none.
	AssociatedSector *Sector
	// HasInterference is meaningful only while associated: true when a second
	// active beam also covers this vehicle.
	HasInterference bool

	Stats VehicleStats
}

// NewVehicle creates a vehicle on the given lane with the given mobility.
func NewVehicle(id string, lane int, mobility *PathMobility) *Vehicle {
	return &Vehicle{ID: id, Lane: lane, Mobility: mobility}
}

// Position returns the vehicle's current map location.
func (v *Vehicle) Position() Point {
	return v.Mobility.Position()
}

// IsActive reports whether the vehicle is observable: it has entered the map
// and has not yet reached the end of its lane.
func (v *Vehicle) IsActive() bool {
	return v.Mobility.Entered() && !v.Mobility.Finished()
}

// IsAssociated reports whether a sector currently serves this vehicle.
func (v *Vehicle) IsAssociated() bool {
	return v.AssociatedSector != nil
}

func (v *Vehicle) String() string {
	return fmt.Sprintf("%s@(%.1f,%.1f)", v.ID, v.Position().X, v.Position().Y)
}

package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSector(id string) *Sector {
	return NewSector(id, Point{100, 260}, 0, &SectorBeamModel{Radius: 80, BeamWidth: 60})
}

func testVehicleAt(id string, x, y float64) *Vehicle {
	return NewVehicle(id, 0, NewPathMobility(Point{x, y}, Point{x + 480, y}, 25, 0))
}

func TestSector_AssociateVehicle_Lifecycle(t *testing.T) {
	// GIVEN an idle sector and a vehicle inside its beam
	sector := testSector("BS-0.0")
	v := testVehicleAt("car1-0", 100, 215)
	require.True(t, sector.Covers(v))

	// WHEN the sector associates the vehicle
	sector.AssociateVehicle(v, 1000)

	// THEN both sides of the association are set
	assert.Equal(t, v, sector.ServingVehicle)
	assert.Equal(t, sector, v.AssociatedSector)
	assert.Equal(t, 1, sector.PeriodConnCount)
	assert.Zero(t, sector.ServingDuration)
}

func TestSector_LostVehicle_RecordsDisplacement(t *testing.T) {
	// GIVEN a connection established at x=100
	sector := testSector("BS-0.0")
	v := testVehicleAt("car1-0", 100, 215)
	sector.AssociateVehicle(v, 0)

	// WHEN the vehicle travels 50 m and the connection drops
	v.Mobility.Advance(2 * TicksPerSecond)
	sector.LostVehicle(2 * TicksPerSecond)

	// THEN the displacement covers the distance travelled while connected
	assert.InDelta(t, 50.0, sector.ServingDisplacement, 1e-9)
	assert.Nil(t, sector.ServingVehicle)
	assert.Nil(t, v.AssociatedSector)
	assert.False(t, v.HasInterference)
}

func TestSector_Backoff_Window(t *testing.T) {
	sector := testSector("BS-0.0")

	// GIVEN a 500-tick backoff starting at t=1000
	sector.Backoff(1000, 500)

	assert.True(t, sector.IsBackoff(1000))
	assert.True(t, sector.IsBackoff(1499))
	assert.False(t, sector.IsBackoff(1500))
	assert.False(t, sector.IsBackoff(2000))
}

func TestSector_IsBackoff_DefaultInactive(t *testing.T) {
	sector := testSector("BS-0.0")
	assert.False(t, sector.IsBackoff(0))
	assert.False(t, sector.IsBackoff(12345))
}

func TestSector_SignalQuality_StrongerWhenCloser(t *testing.T) {
	sector := testSector("BS-0.0")
	near := testVehicleAt("near", 100, 215)
	far := testVehicleAt("far", 100, 190)

	assert.Greater(t, sector.SignalQuality(near), sector.SignalQuality(far))
}

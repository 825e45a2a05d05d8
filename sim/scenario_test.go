package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScenario_IsValid(t *testing.T) {
	sc := DefaultScenario()
	require.NoError(t, sc.Validate())
	assert.Equal(t, 18, sc.NumSectors())
	assert.Len(t, sc.Lanes, 6)
	assert.Len(t, sc.Sites, 6)
}

func TestScenario_Validate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(sc *Scenario)
		errMsg string
	}{
		{
			name:   "no lanes",
			mutate: func(sc *Scenario) { sc.Lanes = nil },
			errMsg: "no lanes",
		},
		{
			name:   "no sites",
			mutate: func(sc *Scenario) { sc.Sites = nil },
			errMsg: "no base-station sites",
		},
		{
			name:   "zero beam radius",
			mutate: func(sc *Scenario) { sc.BeamRadius = 0 },
			errMsg: "beam radius",
		},
		{
			name:   "beam width over 360",
			mutate: func(sc *Scenario) { sc.BeamWidth = 400 },
			errMsg: "beam width",
		},
		{
			name:   "zero-length lane",
			mutate: func(sc *Scenario) { sc.Lanes[0].EndX = sc.Lanes[0].StartX },
			errMsg: "zero length",
		},
		{
			name:   "azimuth out of range",
			mutate: func(sc *Scenario) { sc.Sites[0].Azimuths[0] = 360 },
			errMsg: "azimuth",
		},
		{
			name:   "neighbour index out of range",
			mutate: func(sc *Scenario) { sc.Neighbours[0] = []int{99} },
			errMsg: "unknown neighbour",
		},
		{
			name:   "self neighbour",
			mutate: func(sc *Scenario) { sc.Neighbours[0] = []int{0} },
			errMsg: "itself",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := DefaultScenario()
			tt.mutate(sc)
			err := sc.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestScenario_BuildSectors(t *testing.T) {
	sc := DefaultScenario()
	sectors := sc.BuildSectors()

	require.Len(t, sectors, 18)
	// IDs follow the BS-<site>.<azimuth> convention, site by site.
	assert.Equal(t, "BS-0.300", sectors[0].ID)
	assert.Equal(t, "BS-0.0", sectors[1].ID)
	assert.Equal(t, "BS-3.240", sectors[9].ID)
	assert.Equal(t, "BS-5.120", sectors[17].ID)

	// The neighbour relation is wired by index.
	require.Len(t, sectors[0].Neighbours, 3)
	assert.Equal(t, sectors[9], sectors[0].Neighbours[0])
	assert.Equal(t, sectors[10], sectors[0].Neighbours[1])
	assert.Equal(t, sectors[1], sectors[0].Neighbours[2])
}

func TestScenario_BuildSectors_SouthSiteCoversHighway(t *testing.T) {
	// GIVEN the built-in layout
	sectors := DefaultScenario().BuildSectors()

	// THEN the north-facing beam of the first south site reaches the
	// nearest eastbound lane right above its own site
	northBeam := sectors[1] // BS-0.0 at (100, 260)
	onLane := NewVehicle("car", 0, NewPathMobility(Point{100, 211}, Point{480, 211}, 25, 0))
	assert.True(t, northBeam.Covers(onLane))
}

func TestScenario_BuildVehicles_CountAndLanes(t *testing.T) {
	sc := DefaultScenario()
	rng := rand.New(rand.NewSource(7))
	mob := MobilityConfig{NumCars: 20, SpeedMin: 22.3, SpeedMax: 31.2}

	vehicles := sc.BuildVehicles(mob, rng)

	require.Len(t, vehicles, 20)
	for _, v := range vehicles {
		assert.GreaterOrEqual(t, v.Lane, 0)
		assert.Less(t, v.Lane, len(sc.Lanes))
		assert.GreaterOrEqual(t, v.Mobility.Speed, mob.SpeedMin)
		assert.LessOrEqual(t, v.Mobility.Speed, mob.SpeedMax)
	}

	// The first wave seeds one vehicle per lane.
	seen := map[int]bool{}
	for _, v := range vehicles[:len(sc.Lanes)] {
		seen[v.Lane] = true
	}
	assert.Len(t, seen, len(sc.Lanes))

	// Vehicle IDs encode lane (1-based) and spawn sequence.
	assert.Equal(t, "car1-0", vehicles[0].ID)
	assert.Equal(t, "car2-1", vehicles[1].ID)
}

func TestScenario_BuildVehicles_FewerCarsThanLanes(t *testing.T) {
	sc := DefaultScenario()
	rng := rand.New(rand.NewSource(7))

	vehicles := sc.BuildVehicles(MobilityConfig{NumCars: 2, SpeedMin: 25, SpeedMax: 25}, rng)
	require.Len(t, vehicles, 2)
}

func TestLaneFillOrder(t *testing.T) {
	assert.Equal(t, []int{0, 5, 1, 4, 2, 3}, laneFillOrder(6))
	assert.Equal(t, []int{0, 2, 1}, laneFillOrder(3))
	assert.Equal(t, []int{0}, laneFillOrder(1))
}

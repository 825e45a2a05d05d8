package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(mode int) SimConfig {
	return SimConfig{
		Seed:      42,
		Horizon:   120 * TicksPerSecond,
		StepTicks: 100,
		Policy: PolicyConfig{
			Mode:         mode,
			Epsilon:      0.05,
			ExploreTicks: 30 * TicksPerSecond,
		},
		Mobility: MobilityConfig{NumCars: 20, SpeedMin: 22.3, SpeedMax: 31.2},
		Report:   ReportConfig{PeriodTicks: 30 * TicksPerSecond},
	}
}

func TestNewSimulator_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *SimConfig)
		errMsg string
	}{
		{
			name:   "zero step",
			mutate: func(cfg *SimConfig) { cfg.StepTicks = 0 },
			errMsg: "step must be positive",
		},
		{
			name:   "zero horizon",
			mutate: func(cfg *SimConfig) { cfg.Horizon = 0 },
			errMsg: "horizon must be positive",
		},
		{
			name:   "zero cars",
			mutate: func(cfg *SimConfig) { cfg.Mobility.NumCars = 0 },
			errMsg: "number of cars",
		},
		{
			name:   "inverted speed range",
			mutate: func(cfg *SimConfig) { cfg.Mobility.SpeedMin = 30; cfg.Mobility.SpeedMax = 20 },
			errMsg: "speed range",
		},
		{
			name:   "unknown policy mode",
			mutate: func(cfg *SimConfig) { cfg.Policy.Mode = 7 },
			errMsg: "unknown policy mode",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(ModeGreedy)
			tt.mutate(&cfg)
			_, err := NewSimulator(cfg, DefaultScenario())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewSimulator_RejectsInvalidScenario(t *testing.T) {
	sc := DefaultScenario()
	sc.Lanes = nil
	_, err := NewSimulator(testConfig(ModeGreedy), sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scenario")
}

func TestSimulator_Run_Greedy(t *testing.T) {
	// GIVEN the default highway with the greedy policy
	s, err := NewSimulator(testConfig(ModeGreedy), DefaultScenario())
	require.NoError(t, err)

	// WHEN the simulation runs to the horizon
	s.Run()

	// THEN it finalized within the horizon with traffic served
	assert.True(t, s.Done())
	assert.LessOrEqual(t, s.Metrics.SimEndedTime, s.Horizon)
	assert.Positive(t, s.Metrics.ObservedTime())
	assert.Positive(t, s.Metrics.Connected, "some vehicles must have been served")
	assert.GreaterOrEqual(t, s.Metrics.PeakAssociations, 1)

	// Observed vehicle-time cannot exceed cars * horizon.
	assert.LessOrEqual(t, s.Metrics.ObservedTime(), int64(20)*s.Horizon)
}

func TestSimulator_Run_EmitsPeriodRows(t *testing.T) {
	s, err := NewSimulator(testConfig(ModeGreedy), DefaultScenario())
	require.NoError(t, err)

	s.Run()

	// 120 s horizon with a 30 s period gives four rows.
	require.Len(t, s.Trace.Periods, 4)
	for _, p := range s.Trace.Periods {
		assert.Equal(t, p.PeriodDuration, p.Connected+p.Disconnected+p.Interfered)
	}
	assert.Equal(t, int64(30*TicksPerSecond), s.Trace.Periods[0].Clock)
	assert.Equal(t, int64(120*TicksPerSecond), s.Trace.Periods[3].Clock)
}

func TestSimulator_Determinism(t *testing.T) {
	// GIVEN two MACOL simulations built from the same seed
	run := func() *Simulator {
		s, err := NewSimulator(testConfig(ModeMACOL), DefaultScenario())
		require.NoError(t, err)
		s.Run()
		return s
	}
	a := run()
	b := run()

	// THEN they produce identical metrics, traffic and trace
	assert.Equal(t, a.Metrics.Connected, b.Metrics.Connected)
	assert.Equal(t, a.Metrics.Disconnected, b.Metrics.Disconnected)
	assert.Equal(t, a.Metrics.Interfered, b.Metrics.Interfered)
	assert.Equal(t, a.Metrics.PeakAssociations, b.Metrics.PeakAssociations)
	assert.Equal(t, a.Trace.Periods, b.Trace.Periods)
	assert.Equal(t, len(a.Trace.Connections), len(b.Trace.Connections))
	for i := range a.Vehicles {
		assert.Equal(t, a.Vehicles[i].ID, b.Vehicles[i].ID)
	}
}

func TestSimulator_DifferentSeedsDiverge(t *testing.T) {
	run := func(seed int64) *Simulator {
		cfg := testConfig(ModeGreedy)
		cfg.Seed = seed
		s, err := NewSimulator(cfg, DefaultScenario())
		require.NoError(t, err)
		s.Run()
		return s
	}
	a := run(42)
	b := run(43)

	// Different traffic makes identical service totals all but impossible.
	assert.NotEqual(t,
		[3]int64{a.Metrics.Connected, a.Metrics.Disconnected, a.Metrics.Interfered},
		[3]int64{b.Metrics.Connected, b.Metrics.Disconnected, b.Metrics.Interfered})
}

func TestSimulator_RespawnKeepsVehicleCount(t *testing.T) {
	// GIVEN a horizon long enough for vehicles to complete their lanes
	// (480 m at >= 22.3 m/s is under 22 s)
	s, err := NewSimulator(testConfig(ModeGreedy), DefaultScenario())
	require.NoError(t, err)

	s.Run()

	// THEN the fleet size is constant and fresh vehicles entered
	assert.Len(t, s.Vehicles, 20)
	assert.Greater(t, s.spawnSeq, 20, "lane completions must trigger respawns")
	for _, v := range s.Vehicles {
		require.NotNil(t, v)
	}
}

func TestSimulator_StepDrivesOneMobilityTick(t *testing.T) {
	s, err := NewSimulator(testConfig(ModeGreedy), DefaultScenario())
	require.NoError(t, err)

	require.True(t, s.Step())
	assert.Equal(t, int64(100), s.Clock)
	require.True(t, s.Step())
	assert.Equal(t, int64(200), s.Clock)
}

func TestSimulator_Finalize_Idempotent(t *testing.T) {
	s, err := NewSimulator(testConfig(ModeGreedy), DefaultScenario())
	require.NoError(t, err)
	require.True(t, s.Step())

	s.Finalize()
	assert.True(t, s.Done())
	ended := s.Metrics.SimEndedTime
	s.Finalize()
	assert.Equal(t, ended, s.Metrics.SimEndedTime)
}

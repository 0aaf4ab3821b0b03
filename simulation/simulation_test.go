package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/INLOpen/cloudreaders/kinematics"
)

func testKinematics() *kinematics.Result {
	return &kinematics.Result{
		Profile: kinematics.Profile{
			Points:       [][2]float64{{0, 0}, {0.5, 0.4}, {1, 1}},
			Velocities:   []float64{0.1, 0.2, 0.15},
			Curvature:    []float64{0.2, 0.25, 0.3},
			Pressure:     []float64{0.9, 0.8, 0.7},
			Size:         []float64{0.4, 0.5, 0.6},
			TimestampsUS: []uint64{0, 50_000, 100_000},
		},
		Metadata: map[string]string{"mean_velocity": "0.15"},
	}
}

func TestSimulateMotion(t *testing.T) {
	cfg := Config{SampleRateHz: 200.0, NoiseStd: 0.05, Gravity: [3]float64{0, 0, -9.81}, Seed: 42}
	result, err := SimulateMotion(testKinematics(), "internal", nil, cfg)
	require.NoError(t, err)

	// 200 Hz over a 100ms trajectory: samples at 0, 5000, ..., 100000 us.
	assert.Equal(t, 21, result.Accelerometer.SampleCount())
	assert.Equal(t, 21, result.Gyroscope.SampleCount())
	assert.Equal(t, result.Accelerometer.T, result.Gyroscope.T)

	for i := 1; i < len(result.Accelerometer.T); i++ {
		assert.Greater(t, result.Accelerometer.T[i], result.Accelerometer.T[i-1])
	}

	// Gravity dominates z; the noise std is far smaller than 9.81.
	for _, z := range result.Accelerometer.Z {
		assert.InDelta(t, -9.81, z, 1.0)
	}

	assert.Equal(t, "internal", result.Metadata["physics_engine"])
	assert.Equal(t, "100000", result.Metadata["duration_us"])
	assert.Equal(t, "[0, 0, -9.81]", result.Metadata["gravity_vector"])
	assert.Equal(t, "42", result.Metadata["noise_seed"])
}

func TestSimulateMotionOmitsSeedWhenUnset(t *testing.T) {
	result, err := SimulateMotion(testKinematics(), "internal", nil, DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, result.Metadata, "gravity_vector")
	assert.NotContains(t, result.Metadata, "noise_seed")
}

func TestSimulateMotionDeterministicWithSeed(t *testing.T) {
	cfg := Config{SampleRateHz: 100.0, NoiseStd: 0.05, Gravity: [3]float64{0, 0, -9.81}, Seed: 7}
	first, err := SimulateMotion(testKinematics(), "internal", nil, cfg)
	require.NoError(t, err)
	second, err := SimulateMotion(testKinematics(), "internal", nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSimulateMotionNeedsSamples(t *testing.T) {
	kin := &kinematics.Result{
		Profile: kinematics.Profile{
			Points:       [][2]float64{{0, 0}},
			Velocities:   []float64{0.1},
			TimestampsUS: []uint64{0},
		},
	}
	_, err := SimulateMotion(kin, "internal", nil, DefaultConfig())
	require.Error(t, err)
}

func TestInterp(t *testing.T) {
	xs := []uint64{0, 10, 20}
	ys := []float64{0, 1, 3}
	assert.InDelta(t, 0.0, interp(-5, xs, ys), 1e-12)
	assert.InDelta(t, 0.5, interp(5, xs, ys), 1e-12)
	assert.InDelta(t, 1.0, interp(10, xs, ys), 1e-12)
	assert.InDelta(t, 2.0, interp(15, xs, ys), 1e-12)
	assert.InDelta(t, 3.0, interp(25, xs, ys), 1e-12)
}

package kinematics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/INLOpen/cloudreaders/extraction"
)

func diagonalSkeleton(n int) *extraction.Result {
	res := &extraction.Result{
		Width:    n,
		Height:   n,
		Skeleton: make([]bool, n*n),
		Metadata: map[string]string{"device": "test"},
	}
	for i := 0; i < n; i++ {
		res.Skeleton[i*n+i] = true
	}
	return res
}

func TestReconstructPowerLaw(t *testing.T) {
	result, err := ReconstructPowerLaw(diagonalSkeleton(10), nil)
	require.NoError(t, err)

	profile := result.Profile
	n := len(profile.Points)
	assert.Equal(t, 10, n)
	assert.Len(t, profile.Velocities, n)
	assert.Len(t, profile.Curvature, n)
	assert.Len(t, profile.Pressure, n)
	assert.Len(t, profile.Size, n)
	assert.Len(t, profile.TimestampsUS, n)

	// Points normalized into the unit square.
	for _, p := range profile.Points {
		assert.GreaterOrEqual(t, p[0], 0.0)
		assert.LessOrEqual(t, p[0], 1.0)
		assert.GreaterOrEqual(t, p[1], 0.0)
		assert.LessOrEqual(t, p[1], 1.0)
	}

	// The timeline starts at zero and never runs backwards.
	assert.Equal(t, uint64(0), profile.TimestampsUS[0])
	for i := 1; i < n; i++ {
		assert.GreaterOrEqual(t, profile.TimestampsUS[i], profile.TimestampsUS[i-1])
	}

	for i := 0; i < n; i++ {
		assert.Positive(t, profile.Velocities[i])
		assert.GreaterOrEqual(t, profile.Pressure[i], 0.05)
		assert.LessOrEqual(t, profile.Pressure[i], 1.0)
		assert.GreaterOrEqual(t, profile.Size[i], 0.05)
		assert.LessOrEqual(t, profile.Size[i], 1.0)
	}

	assert.Equal(t, "10", result.Metadata["point_count"])
	assert.Contains(t, result.Metadata, "mean_velocity")
	assert.Contains(t, result.Metadata, "duration_us")
}

func TestReconstructPowerLawNeedsPoints(t *testing.T) {
	empty := &extraction.Result{Width: 4, Height: 4, Skeleton: make([]bool, 16)}
	_, err := ReconstructPowerLaw(empty, nil)
	require.Error(t, err)

	single := &extraction.Result{Width: 4, Height: 4, Skeleton: make([]bool, 16)}
	single.Skeleton[5] = true
	_, err = ReconstructPowerLaw(single, nil)
	require.Error(t, err)
}

func TestGradient(t *testing.T) {
	got := gradient([]float64{0, 1, 4, 9})
	assert.Equal(t, []float64{1, 2, 4, 5}, got)
}

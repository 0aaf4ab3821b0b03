// Package kinematics reconstructs a plausible velocity and curvature
// profile from a stroke skeleton using the two-thirds power law.
package kinematics

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/INLOpen/cloudreaders/extraction"
)

// PowerLawGain scales the curvature-derived velocity profile.
const PowerLawGain = 0.9

// Profile holds the reconstructed per-point kinematic columns. Points
// are normalized to the unit square; timestamps are cumulative
// microseconds along the stroke.
type Profile struct {
	Points       [][2]float64
	Velocities   []float64
	Curvature    []float64
	Pressure     []float64
	Size         []float64
	TimestampsUS []uint64
}

// Result bundles the profile with summary metadata.
type Result struct {
	Profile  Profile
	Metadata map[string]string
}

// ReconstructPowerLaw derives velocities from curvature via the
// two-thirds power law (v = gain * curvature^(1/3)), then integrates
// segment lengths into a microsecond timeline and shapes pressure and
// size profiles from the velocity and curvature extremes.
func ReconstructPowerLaw(ext *extraction.Result, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("kinematics reconstruction starting")

	points := extraction.SummarizePoints(ext)
	if len(points) < 2 {
		return nil, fmt.Errorf("no stroke skeleton available for kinematics reconstruction")
	}

	n := len(points)
	xs := make([]float64, n)
	ys := make([]float64, n)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, p := range points {
		xs[i], ys[i] = float64(p.X), float64(p.Y)
		minX = math.Min(minX, xs[i])
		minY = math.Min(minY, ys[i])
		maxX = math.Max(maxX, xs[i])
		maxY = math.Max(maxY, ys[i])
	}
	spanX := math.Max(maxX-minX, 1e-6)
	spanY := math.Max(maxY-minY, 1e-6)
	normalized := make([][2]float64, n)
	for i := range normalized {
		normalized[i] = [2]float64{(xs[i] - minX) / spanX, (ys[i] - minY) / spanY}
	}

	dx := gradient(column(normalized, 0))
	dy := gradient(column(normalized, 1))
	ddx := gradient(dx)
	ddy := gradient(dy)

	curvature := make([]float64, n)
	velocities := make([]float64, n)
	for i := 0; i < n; i++ {
		denom := math.Pow(dx[i]*dx[i]+dy[i]*dy[i]+1e-6, 1.5)
		k := math.Abs(dx[i]*ddy[i]-dy[i]*ddx[i]) / denom
		if k < 1e-6 {
			k = 1e-6
		}
		curvature[i] = k
		velocities[i] = PowerLawGain * math.Cbrt(k)
	}
	logger.Debug("velocity profile", "min", minFloat(velocities), "max", maxFloat(velocities))

	// Integrate segment traversal times into a cumulative timeline.
	timestamps := make([]float64, n)
	for i := 1; i < n; i++ {
		segDX := normalized[i][0] - normalized[i-1][0]
		segDY := normalized[i][1] - normalized[i-1][1]
		segment := math.Hypot(segDX, segDY)
		avgVel := (velocities[i-1] + velocities[i]) / 2.0
		dt := 1e-3
		if avgVel > 1e-6 {
			dt = segment / avgVel
		}
		timestamps[i] = timestamps[i-1] + dt
	}
	timestampsUS := make([]uint64, n)
	for i, t := range timestamps {
		timestampsUS[i] = uint64(math.Round(t * 1e6))
	}

	velMin, velMax := minFloat(velocities), maxFloat(velocities)
	velSpan := velMax - velMin
	if velSpan == 0 {
		velSpan = 1.0
	}
	curvMax := maxFloat(curvature)
	if curvMax == 0 {
		curvMax = 1.0
	}
	pressure := make([]float64, n)
	size := make([]float64, n)
	for i := 0; i < n; i++ {
		pressure[i] = clamp(1.0-0.6*(velocities[i]-velMin)/velSpan, 0.05, 1.0)
		size[i] = clamp(math.Pow(curvature[i]/curvMax, 0.25), 0.05, 1.0)
	}

	metadata := map[string]string{
		"power_law_gain":   fmt.Sprintf("%g", PowerLawGain),
		"mean_velocity":    fmt.Sprintf("%.6f", meanFloat(velocities)),
		"max_velocity":     fmt.Sprintf("%.6f", velMax),
		"duration_us":      fmt.Sprintf("%d", timestampsUS[n-1]),
		"median_curvature": fmt.Sprintf("%.6f", medianFloat(curvature)),
		"point_count":      fmt.Sprintf("%d", n),
	}
	logger.Info("kinematics reconstruction complete", "points", n)

	return &Result{
		Profile: Profile{
			Points:       normalized,
			Velocities:   velocities,
			Curvature:    curvature,
			Pressure:     pressure,
			Size:         size,
			TimestampsUS: timestampsUS,
		},
		Metadata: metadata,
	}, nil
}

// gradient computes central differences with one-sided differences at
// the boundaries, matching numpy.gradient with unit spacing.
func gradient(v []float64) []float64 {
	n := len(v)
	out := make([]float64, n)
	if n == 1 {
		return out
	}
	out[0] = v[1] - v[0]
	out[n-1] = v[n-1] - v[n-2]
	for i := 1; i < n-1; i++ {
		out[i] = (v[i+1] - v[i-1]) / 2.0
	}
	return out
}

func column(points [][2]float64, idx int) []float64 {
	out := make([]float64, len(points))
	for i := range points {
		out[i] = points[i][idx]
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func minFloat(v []float64) float64 {
	out := v[0]
	for _, x := range v[1:] {
		out = math.Min(out, x)
	}
	return out
}

func maxFloat(v []float64) float64 {
	out := v[0]
	for _, x := range v[1:] {
		out = math.Max(out, x)
	}
	return out
}

func meanFloat(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

func medianFloat(v []float64) float64 {
	sorted := append([]float64(nil), v...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2.0
	}
	return sorted[mid]
}

// Package simulation synthesizes IMU-like accelerometer and gyroscope
// channels from a reconstructed kinematic profile.
package simulation

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/INLOpen/cloudreaders/kinematics"
)

// Channel is one sensor stream in t/x/y/z column layout, timestamps in
// microseconds.
type Channel struct {
	T []uint64
	X []float64
	Y []float64
	Z []float64
}

// SampleCount returns the number of samples in the channel.
func (c *Channel) SampleCount() int { return len(c.T) }

// Config controls the IMU synthesis. An explicit rng seed keeps runs
// reproducible; there is no process-wide random state.
type Config struct {
	SampleRateHz float64
	NoiseStd     float64
	Gravity      [3]float64
	Seed         uint64
}

// DefaultConfig returns the standard synthesis parameters.
func DefaultConfig() Config {
	return Config{
		SampleRateHz: 200.0,
		NoiseStd:     0.05,
		Gravity:      [3]float64{0.0, 0.0, -9.81},
	}
}

// Result carries the simulated channels plus summary metadata.
type Result struct {
	Accelerometer Channel
	Gyroscope     Channel
	Metadata      map[string]string
}

// SimulateMotion resamples the kinematic trajectory onto a uniform
// sample grid, differentiates it into body acceleration, adds gravity
// and Gaussian noise, and derives gyroscope z from the heading rate.
func SimulateMotion(kin *kinematics.Result, physicsEngine string, logger *slog.Logger, cfg Config) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SampleRateHz <= 0 {
		cfg = DefaultConfig()
	}
	logger.Info("simulation starting", "engine", physicsEngine, "sample_rate_hz", cfg.SampleRateHz)

	baseTimes := kin.Profile.TimestampsUS
	if len(baseTimes) < 2 {
		return nil, fmt.Errorf("kinematics contain insufficient samples for simulation")
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	dtUS := uint64(math.Round(1e6 / cfg.SampleRateHz))
	last := baseTimes[len(baseTimes)-1]
	var targetTimes []uint64
	for t := uint64(0); t < last+dtUS; t += dtUS {
		targetTimes = append(targetTimes, t)
	}
	dtSeconds := 1.0 / cfg.SampleRateHz
	n := len(targetTimes)

	xs := resample(columnOf(kin.Profile.Points, 0), baseTimes, targetTimes)
	ys := resample(columnOf(kin.Profile.Points, 1), baseTimes, targetTimes)
	speeds := resample(kin.Profile.Velocities, baseTimes, targetTimes)

	dx := gradientScaled(xs, dtSeconds)
	dy := gradientScaled(ys, dtSeconds)

	velX := make([]float64, n)
	velY := make([]float64, n)
	for i := 0; i < n; i++ {
		norm := math.Hypot(dx[i], dy[i])
		if norm == 0 {
			norm = 1.0
		}
		velX[i] = speeds[i] * dx[i] / norm
		velY[i] = speeds[i] * dy[i] / norm
	}

	ax := gradientScaled(velX, dtSeconds)
	ay := gradientScaled(velY, dtSeconds)

	acc := Channel{T: targetTimes,
		X: make([]float64, n), Y: make([]float64, n), Z: make([]float64, n)}
	for i := 0; i < n; i++ {
		acc.X[i] = ax[i] + cfg.Gravity[0] + rng.NormFloat64()*cfg.NoiseStd
		acc.Y[i] = ay[i] + cfg.Gravity[1] + rng.NormFloat64()*cfg.NoiseStd
		acc.Z[i] = cfg.Gravity[2] + rng.NormFloat64()*cfg.NoiseStd
	}

	heading := make([]float64, n)
	for i := 0; i < n; i++ {
		heading[i] = math.Atan2(velY[i], velX[i])
	}
	gyroZ := gradientScaled(heading, dtSeconds)
	gyro := Channel{T: append([]uint64(nil), targetTimes...),
		X: make([]float64, n), Y: make([]float64, n), Z: make([]float64, n)}
	for i := 0; i < n; i++ {
		gyro.X[i] = rng.NormFloat64() * cfg.NoiseStd
		gyro.Y[i] = rng.NormFloat64() * cfg.NoiseStd
		gyro.Z[i] = gyroZ[i] + rng.NormFloat64()*cfg.NoiseStd
	}

	metadata := map[string]string{
		"physics_engine": physicsEngine,
		"accel_peak":     fmt.Sprintf("%.4f", peakAbs(acc)),
		"gyro_peak":      fmt.Sprintf("%.4f", peakAbs(gyro)),
		"sample_rate_hz": fmt.Sprintf("%g", cfg.SampleRateHz),
		"gravity_vector": fmt.Sprintf("[%g, %g, %g]", cfg.Gravity[0], cfg.Gravity[1], cfg.Gravity[2]),
		"noise_std":      fmt.Sprintf("%g", cfg.NoiseStd),
		"duration_us":    fmt.Sprintf("%d", targetTimes[n-1]),
	}
	if cfg.Seed != 0 {
		metadata["noise_seed"] = fmt.Sprintf("%d", cfg.Seed)
	}

	logger.Debug("simulation profile",
		"accel_peak", metadata["accel_peak"], "gyro_peak", metadata["gyro_peak"])
	logger.Info("simulation complete", "samples", n)
	return &Result{Accelerometer: acc, Gyroscope: gyro, Metadata: metadata}, nil
}

// resample linearly interpolates values defined on sourceT onto
// targetT, clamping outside the source range.
func resample(values []float64, sourceT, targetT []uint64) []float64 {
	out := make([]float64, len(targetT))
	for i, t := range targetT {
		out[i] = interp(float64(t), sourceT, values)
	}
	return out
}

func interp(t float64, xs []uint64, ys []float64) float64 {
	if t <= float64(xs[0]) {
		return ys[0]
	}
	last := len(xs) - 1
	if t >= float64(xs[last]) {
		return ys[last]
	}
	for i := 1; i <= last; i++ {
		x1 := float64(xs[i])
		if t <= x1 {
			x0 := float64(xs[i-1])
			if x1 == x0 {
				return ys[i]
			}
			frac := (t - x0) / (x1 - x0)
			return ys[i-1] + frac*(ys[i]-ys[i-1])
		}
	}
	return ys[last]
}

// gradientScaled is numpy-style gradient with sample spacing dt.
func gradientScaled(v []float64, dt float64) []float64 {
	n := len(v)
	out := make([]float64, n)
	if n == 1 {
		return out
	}
	out[0] = (v[1] - v[0]) / dt
	out[n-1] = (v[n-1] - v[n-2]) / dt
	for i := 1; i < n-1; i++ {
		out[i] = (v[i+1] - v[i-1]) / (2.0 * dt)
	}
	return out
}

func columnOf(points [][2]float64, idx int) []float64 {
	out := make([]float64, len(points))
	for i := range points {
		out[i] = points[i][idx]
	}
	return out
}

func peakAbs(c Channel) float64 {
	var peak float64
	for _, col := range [][]float64{c.X, c.Y, c.Z} {
		for _, v := range col {
			peak = math.Max(peak, math.Abs(v))
		}
	}
	return peak
}

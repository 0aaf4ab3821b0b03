// Package artifacts persists and reloads the JSON side-channel files
// exchanged between pipeline stages: extraction.json, kinematics.json,
// and simulation.json.
package artifacts

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/INLOpen/cloudreaders/extraction"
	"github.com/INLOpen/cloudreaders/kinematics"
	"github.com/INLOpen/cloudreaders/simulation"
)

const (
	ExtractionFile = "extraction.json"
	KinematicsFile = "kinematics.json"
	SimulationFile = "simulation.json"
)

type extractionPayload struct {
	Metadata       map[string]string `json:"metadata"`
	SkeletonPoints [][2]int          `json:"skeleton_points"`
}

type kinematicsPayload struct {
	Metadata     map[string]string `json:"metadata"`
	Points       [][2]float64      `json:"points"`
	Velocity     []float64         `json:"velocity"`
	Curvature    []float64         `json:"curvature"`
	Pressure     []float64         `json:"pressure"`
	Size         []float64         `json:"size"`
	TimestampsUS []uint64          `json:"timestamps_us"`
}

type channelPayload struct {
	T []uint64  `json:"t"`
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
	Z []float64 `json:"z"`
}

type simulationPayload struct {
	Metadata      map[string]string `json:"metadata"`
	Accelerometer channelPayload    `json:"accelerometer"`
	Gyroscope     channelPayload    `json:"gyroscope"`
}

func persistStage(payload any, dir, name string, logger *slog.Logger) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create artifact dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Debug("saved stage artifact", "path", path)
	return path, nil
}

// SaveExtraction writes extraction.json into dir.
func SaveExtraction(res *extraction.Result, dir string, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	points := extraction.SummarizePoints(res)
	payload := extractionPayload{
		Metadata:       res.Metadata,
		SkeletonPoints: make([][2]int, len(points)),
	}
	for i, p := range points {
		payload.SkeletonPoints[i] = [2]int{p.X, p.Y}
	}
	return persistStage(payload, dir, ExtractionFile, logger)
}

// SaveKinematics writes kinematics.json into dir.
func SaveKinematics(kin *kinematics.Result, dir string, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	payload := kinematicsPayload{
		Metadata:     kin.Metadata,
		Points:       kin.Profile.Points,
		Velocity:     kin.Profile.Velocities,
		Curvature:    kin.Profile.Curvature,
		Pressure:     kin.Profile.Pressure,
		Size:         kin.Profile.Size,
		TimestampsUS: kin.Profile.TimestampsUS,
	}
	return persistStage(payload, dir, KinematicsFile, logger)
}

// SaveSimulation writes simulation.json into dir.
func SaveSimulation(sim *simulation.Result, dir string, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	payload := simulationPayload{
		Metadata:      sim.Metadata,
		Accelerometer: toPayload(sim.Accelerometer),
		Gyroscope:     toPayload(sim.Gyroscope),
	}
	return persistStage(payload, dir, SimulationFile, logger)
}

func toPayload(c simulation.Channel) channelPayload {
	return channelPayload{T: c.T, X: c.X, Y: c.Y, Z: c.Z}
}

// ExtractionMetadata reloads just the metadata map of extraction.json.
func ExtractionMetadata(path string, logger *slog.Logger) (map[string]string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var payload extractionPayload
	if err := readJSON(path, &payload); err != nil {
		return nil, err
	}
	logger.Debug("loaded extraction metadata", "path", path)
	return payload.Metadata, nil
}

// LoadKinematics reloads a kinematics.json written by SaveKinematics.
func LoadKinematics(path string, logger *slog.Logger) (*kinematics.Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var payload kinematicsPayload
	if err := readJSON(path, &payload); err != nil {
		return nil, err
	}
	logger.Debug("loaded kinematics", "path", path)
	return &kinematics.Result{
		Profile: kinematics.Profile{
			Points:       payload.Points,
			Velocities:   payload.Velocity,
			Curvature:    payload.Curvature,
			Pressure:     payload.Pressure,
			Size:         payload.Size,
			TimestampsUS: payload.TimestampsUS,
		},
		Metadata: payload.Metadata,
	}, nil
}

// LoadSimulation reloads a simulation.json and repairs each channel's
// timestamps to be strictly increasing: a stable sort by t, then a
// forward walk bumping any timestamp that is <= its predecessor to
// predecessor+1. Ties keep their original relative order.
func LoadSimulation(path string, logger *slog.Logger) (*simulation.Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var payload simulationPayload
	if err := readJSON(path, &payload); err != nil {
		return nil, err
	}
	acc, err := repairChannel(payload.Accelerometer)
	if err != nil {
		return nil, fmt.Errorf("accelerometer channel in %s: %w", path, err)
	}
	gyro, err := repairChannel(payload.Gyroscope)
	if err != nil {
		return nil, fmt.Errorf("gyroscope channel in %s: %w", path, err)
	}
	logger.Debug("loaded simulation", "path", path)
	return &simulation.Result{
		Accelerometer: acc,
		Gyroscope:     gyro,
		Metadata:      payload.Metadata,
	}, nil
}

func repairChannel(p channelPayload) (simulation.Channel, error) {
	n := len(p.T)
	if n > 0 && (len(p.X) != n || len(p.Y) != n || len(p.Z) != n) {
		return simulation.Channel{}, fmt.Errorf("channels must align t/x/y/z lengths, got %d/%d/%d/%d",
			n, len(p.X), len(p.Y), len(p.Z))
	}

	c := simulation.Channel{
		T: append([]uint64(nil), p.T...),
		X: append([]float64(nil), p.X...),
		Y: append([]float64(nil), p.Y...),
		Z: append([]float64(nil), p.Z...),
	}
	if n < 2 {
		return c, nil
	}

	monotonic := true
	for i := 1; i < n; i++ {
		if c.T[i] <= c.T[i-1] {
			monotonic = false
			break
		}
	}
	if !monotonic {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool { return c.T[order[a]] < c.T[order[b]] })
		c = simulation.Channel{
			T: permuteU64(c.T, order),
			X: permuteF64(c.X, order),
			Y: permuteF64(c.Y, order),
			Z: permuteF64(c.Z, order),
		}
		for i := 1; i < n; i++ {
			if c.T[i] <= c.T[i-1] {
				c.T[i] = c.T[i-1] + 1
			}
		}
	}
	return c, nil
}

func permuteU64(v []uint64, order []int) []uint64 {
	out := make([]uint64, len(v))
	for i, idx := range order {
		out[i] = v[idx]
	}
	return out
}

func permuteF64(v []float64, order []int) []float64 {
	out := make([]float64, len(v))
	for i, idx := range order {
		out[i] = v[idx]
	}
	return out
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	return nil
}

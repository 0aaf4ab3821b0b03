package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/INLOpen/cloudreaders/artifacts"
	"github.com/INLOpen/cloudreaders/compressors"
	"github.com/INLOpen/cloudreaders/core"
	"github.com/INLOpen/cloudreaders/kinematics"
	"github.com/INLOpen/cloudreaders/rcp"
	"github.com/INLOpen/cloudreaders/simulation"
)

func newExportCommand(root *rootOptions) *cobra.Command {
	var (
		extractionDir string
		simulationDir string
		format        string
		out           string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Compress and package the pipeline outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger()
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if format == "" {
				format = cfg.Export.Format
			}

			metadata, err := artifacts.ExtractionMetadata(filepath.Join(extractionDir, artifacts.ExtractionFile), logger)
			if err != nil {
				return err
			}
			kine, err := artifacts.LoadKinematics(filepath.Join(extractionDir, artifacts.KinematicsFile), logger)
			if err != nil {
				return err
			}
			sim, err := artifacts.LoadSimulation(filepath.Join(simulationDir, artifacts.SimulationFile), logger)
			if err != nil {
				return err
			}

			manifest := buildManifest(format, extractionDir, metadata, kine, sim)
			touch := touchFromKinematics(kine)
			acc := motionToAcc(sim.Accelerometer)
			gyro := motionToGyro(sim.Gyroscope)

			compressionType, err := core.ParseCompressionType(cfg.Export.Compression)
			if err != nil {
				return err
			}
			compressor, err := compressors.ForType(compressionType, cfg.Export.CompressionLevel)
			if err != nil {
				return err
			}

			index, err := rcp.WritePackage(cmd.Context(), out, manifest, touch, acc, gyro, rcp.WriterOptions{
				Compressor: compressor,
				Logger:     logger,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported package %s to %s (%d touch samples, %.3fs)\n",
				manifest.PackageID, out, index.TouchSamples, index.DurationSeconds)
			return nil
		},
	}
	cmd.Flags().StringVar(&extractionDir, "extraction-dir", "", "Folder with extraction artifacts (required)")
	cmd.Flags().StringVar(&simulationDir, "simulation-dir", "", "Folder with simulation artifacts (required)")
	cmd.Flags().StringVar(&format, "fmt", "", "Export format label")
	cmd.Flags().StringVar(&out, "out", "./artifacts/export", "Destination folder")
	cmd.MarkFlagRequired("extraction-dir")
	cmd.MarkFlagRequired("simulation-dir")
	return cmd
}

// buildManifest promotes well-known metadata keys into manifest fields
// and merges everything the pipeline recorded into the attribute map.
func buildManifest(format, extractionDir string, metadata map[string]string, kine *kinematics.Result, sim *simulation.Result) *rcp.Manifest {
	source := metadata["source"]
	if source == "" {
		source = extractionDir
	}
	dpi := 0.0
	if v, err := strconv.ParseFloat(metadata["dpi"], 64); err == nil {
		dpi = v
	}
	createdAt := metadata["created_at"]
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	attributes := make(map[string]string)
	for _, m := range []map[string]string{metadata, kine.Metadata, sim.Metadata} {
		for k, v := range m {
			attributes[k] = v
		}
	}
	return &rcp.Manifest{
		Version:       format,
		PackageID:     uuid.NewString(),
		Source:        source,
		DeviceProfile: metadata["device"],
		DPI:           dpi,
		CreatedAt:     createdAt,
		Attributes:    attributes,
	}
}

func touchFromKinematics(kine *kinematics.Result) *rcp.TouchChannel {
	n := len(kine.Profile.Points)
	touch := &rcp.TouchChannel{
		T:        append([]uint64(nil), kine.Profile.TimestampsUS...),
		X:        make([]float32, n),
		Y:        make([]float32, n),
		Pressure: make([]float32, n),
		Size:     make([]float32, n),
	}
	for i := 0; i < n; i++ {
		touch.X[i] = float32(kine.Profile.Points[i][0])
		touch.Y[i] = float32(kine.Profile.Points[i][1])
		touch.Pressure[i] = float32(kine.Profile.Pressure[i])
		touch.Size[i] = float32(kine.Profile.Size[i])
	}
	return touch
}

func motionToAcc(c simulation.Channel) *rcp.AccChannel {
	return &rcp.AccChannel{
		T: append([]uint64(nil), c.T...),
		X: toFloat32(c.X),
		Y: toFloat32(c.Y),
		Z: toFloat32(c.Z),
	}
}

func motionToGyro(c simulation.Channel) *rcp.GyroChannel {
	return &rcp.GyroChannel{
		T: append([]uint64(nil), c.T...),
		X: toFloat32(c.X),
		Y: toFloat32(c.Y),
		Z: toFloat32(c.Z),
	}
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}

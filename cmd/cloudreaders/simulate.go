package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/INLOpen/cloudreaders/artifacts"
	"github.com/INLOpen/cloudreaders/simulation"
)

func newSimulateCommand(root *rootOptions) *cobra.Command {
	var (
		inputDir      string
		physicsEngine string
		out           string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Generate IMU-like channels from extracted kinematics",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger()
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			kinematicsPath := filepath.Join(inputDir, artifacts.KinematicsFile)
			kine, err := artifacts.LoadKinematics(kinematicsPath, logger)
			if err != nil {
				return err
			}

			simulated, err := simulation.SimulateMotion(kine, physicsEngine, logger, simulation.Config{
				SampleRateHz: cfg.Simulation.SampleRateHz,
				NoiseStd:     cfg.Simulation.NoiseStd,
				Gravity:      [3]float64{0.0, 0.0, -9.81},
				Seed:         cfg.Simulation.Seed,
			})
			if err != nil {
				return err
			}
			if _, err := artifacts.SaveSimulation(simulated, out, logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Simulated data written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&inputDir, "input-dir", "", "Directory containing kinematics.json (required)")
	cmd.Flags().StringVar(&physicsEngine, "physics-engine", "internal", "Physics backend name")
	cmd.Flags().StringVar(&out, "out", "./artifacts/simulation", "Directory to store simulated data")
	cmd.MarkFlagRequired("input-dir")
	return cmd
}

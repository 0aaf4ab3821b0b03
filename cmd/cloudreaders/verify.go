package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/INLOpen/cloudreaders/rcp"
)

func newVerifyCommand(root *rootOptions) *cobra.Command {
	var packageRoot string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Re-hash every package artifact and compare against checksums.txt",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := rcp.VerifyPackage(packageRoot)
			if err != nil {
				return err
			}
			if result.OK {
				fmt.Fprintf(cmd.OutOrStdout(), "Package %s verified: all checksums match\n", packageRoot)
				return nil
			}

			w := tabwriter.NewWriter(cmd.ErrOrStderr(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "FILE\tSTATUS\tEXPECTED\tACTUAL")
			for _, missing := range result.Missing {
				fmt.Fprintf(w, "%s\tmissing\t-\t-\n", missing)
			}
			for _, m := range result.Mismatches {
				fmt.Fprintf(w, "%s\tmismatch\t%s\t%s\n", m.File, m.Expected, m.Actual)
			}
			w.Flush()
			return fmt.Errorf("package %s failed verification: %d missing, %d mismatched",
				packageRoot, len(result.Missing), len(result.Mismatches))
		},
	}
	cmd.Flags().StringVar(&packageRoot, "package", "", "Path to the package root (required)")
	cmd.MarkFlagRequired("package")
	return cmd
}

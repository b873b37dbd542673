package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dora-network/series-convergence/reference"
)

func newReferenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Print the true value of a constant to the requested digits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd, nil)
			if err != nil {
				return err
			}
			if err := cfg.Precision.Validate(); err != nil {
				return err
			}
			constant, err := reference.ParseConstant(cfg.Constant)
			if err != nil {
				return err
			}
			v, err := reference.Value(constant, cfg.Precision)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v.String())
			return err
		},
	}
	addCommonFlags(cmd.Flags())
	return cmd
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/well-data-service/internal/domain"
)

func getDMSCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dms",
		Short: "Converts coordinates between DMS and decimal degrees",
	}

	parse := &cobra.Command{
		Use:   "parse DMS",
		Short: `Parses a DMS string such as 27° 14' 07.52" S`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, ok := domain.ParseDMS(args[0])
			if !ok {
				return fmt.Errorf("%q is not a DMS coordinate", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", d)
			return nil
		},
	}

	var longitude bool
	format := &cobra.Command{
		Use:   "format DECIMAL",
		Short: "Formats decimal degrees as DMS (latitude unless --lon)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid decimal degrees %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), domain.FormatDMS(d, !longitude))
			return nil
		},
	}
	format.Flags().BoolVar(&longitude, "lon", false, "format as longitude (E/W)")

	cmd.AddCommand(parse, format)
	return cmd
}

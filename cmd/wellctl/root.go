package main

import (
	"github.com/spf13/cobra"
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wellctl",
		Short: "wellctl works with well records outside the service",
		Long: `wellctl is a companion CLI for the well data service.

Commands:
  - generate: Write synthetic well records derived from the Acrasia-8 template
  - validate: Check a JSON fixture file against the well record invariants
  - extract:  Extract a well record from a PDF report (Gemini or simulated)
  - dms:      Convert coordinates between DMS strings and decimal degrees

Environment Variables:
  API_KEY / GEMINI_API_KEY    Gemini credential used by 'extract'
  GEMINI_MODEL                Model name (default gemini-2.5-flash)`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		getGenerateCmd(),
		getValidateCmd(),
		getExtractCmd(),
		getDMSCmd(),
	)
	return rootCmd
}

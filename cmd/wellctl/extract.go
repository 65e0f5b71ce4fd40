package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/well-data-service/internal/adapter/gemini"
	"github.com/couchcryptid/well-data-service/internal/adapter/simulate"
	"github.com/couchcryptid/well-data-service/internal/domain"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

func getExtractCmd() *cobra.Command {
	var (
		simulated bool
		timeout   time.Duration
		seed      uint64
	)
	cmd := &cobra.Command{
		Use:   "extract FILE.pdf",
		Short: "Extracts a well record from a PDF report",
		Long: `Sends one PDF report to the extraction model and prints the decoded,
validated well record as JSON. With --simulate no API key is needed and a
synthetic record named after the file is printed instead.

Examples:
  API_KEY=... wellctl extract reports/Acrasia-9.pdf
  wellctl extract --simulate reports/Acrasia-9.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			doc := domain.Document{Filename: filepath.Base(args[0]), MIMEType: domain.MIMETypePDF, Data: data}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			extractor, err := newExtractor(ctx, simulated, seed, logger)
			if err != nil {
				return err
			}

			well, err := extractor.Extract(ctx, doc)
			if err != nil {
				return err
			}
			if err := domain.Validate(well); err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(well)
		},
	}
	cmd.Flags().BoolVar(&simulated, "simulate", false, "generate a synthetic record instead of calling the model")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall extraction timeout")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "generator seed for --simulate (0 = time-seeded)")
	return cmd
}

func newExtractor(ctx context.Context, simulated bool, seed uint64, logger *slog.Logger) (domain.Extractor, error) {
	if simulated {
		return simulate.New(domain.NewGenerator(seed), domain.Acrasia8(), 0, nil, logger), nil
	}
	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	client, err := gemini.NewClient(ctx, apiKey, sharedcfg.EnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"), logger)
	if err != nil {
		return nil, fmt.Errorf("%w (set API_KEY or use --simulate)", err)
	}
	return client, nil
}

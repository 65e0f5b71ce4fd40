package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/well-data-service/internal/domain"
)

type generateOptions struct {
	count           int
	seed            uint64
	prefix          string
	out             string
	includeTemplate bool
}

func getGenerateCmd() *cobra.Command {
	opts := generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Writes synthetic well records as a JSON fixture",
		Long: `Generates well records by perturbing the Acrasia-8 template and writes
them as a JSON array. A fixed --seed makes the output reproducible.

Examples:
  wellctl generate --count 5 --seed 42
  wellctl generate --count 3 --prefix Tinchoo --out testdata/wells.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", opts.count)
			}
			if opts.out != "" {
				f, err := os.Create(opts.out)
				if err != nil {
					return fmt.Errorf("create %s: %w", opts.out, err)
				}
				defer f.Close()
				if err := writeFixture(f, opts); err != nil {
					return err
				}
				if info, err := f.Stat(); err == nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%s)\n",
						opts.out, humanize.Bytes(uint64(info.Size())))
				}
				return nil
			}
			return writeFixture(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", 1, "number of wells to generate")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 = time-seeded)")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "Acrasia", "well name prefix")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.includeTemplate, "include-template", false, "prepend the Acrasia-8 template record")
	return cmd
}

func writeFixture(w io.Writer, opts generateOptions) error {
	template := domain.Acrasia8()
	gen := domain.NewGenerator(opts.seed)

	wells := make([]domain.WellRecord, 0, opts.count+1)
	if opts.includeTemplate {
		wells = append(wells, template)
	}
	// Template is number 8; synthetic wells continue the sequence.
	for i := 0; i < opts.count; i++ {
		label := fmt.Sprintf("%s-%d", opts.prefix, 9+i)
		wells = append(wells, gen.Generate(template, label))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(wells); err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	return nil
}

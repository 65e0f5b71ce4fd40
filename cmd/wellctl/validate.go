package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/well-data-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func getValidateCmd() *cobra.Command {
	var strictDMS bool
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Checks a JSON fixture against the well record invariants",
		Long: `Reads a JSON array of well records (or a single record) and reports:
  1. Record invariants: formation contiguity, TD, perforation and complication bounds
  2. Name uniqueness across the fixture
  3. Location encoding: DMS strings that would fall back to the default position

Location problems are warnings unless --strict-dms is set.

Examples:
  wellctl generate -n 10 --seed 1 | wellctl validate -
  wellctl validate testdata/wells.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			wells, err := decodeFixture(data)
			if err != nil {
				return err
			}
			if !report(cmd.OutOrStdout(), wells, strictDMS) {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strictDMS, "strict-dms", false, "treat unparseable coordinates as failures")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func decodeFixture(data []byte) ([]domain.WellRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var w domain.WellRecord
		if err := json.Unmarshal(trimmed, &w); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		return []domain.WellRecord{w}, nil
	}
	var wells []domain.WellRecord
	if err := json.Unmarshal(trimmed, &wells); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return wells, nil
}

// report prints each phase and returns whether all blocking phases passed.
func report(w io.Writer, wells []domain.WellRecord, strictDMS bool) bool {
	invariants := &phase{name: "record invariants"}
	for i := range wells {
		if err := domain.Validate(wells[i]); err != nil {
			invariants.errorf("[%d] %s: %v", i, wells[i].Name, err)
		}
	}

	names := &phase{name: "unique names"}
	seen := make(map[string]int, len(wells))
	for i, well := range wells {
		if j, ok := seen[well.Name]; ok {
			names.errorf("[%d] %q duplicates [%d]", i, well.Name, j)
			continue
		}
		seen[well.Name] = i
	}

	locations := &phase{name: "location encoding"}
	for i, well := range wells {
		if pos := domain.ResolvePosition(well.Location); pos.Fallback {
			locations.errorf("[%d] %s: lat %q long %q not DMS, map uses default position", i, well.Name, well.Location.Lat, well.Location.Long)
		}
	}

	fmt.Fprintf(w, "checked %d well records\n", len(wells))
	ok := true
	for _, p := range []*phase{invariants, names, locations} {
		blocking := p != locations || strictDMS
		status := "PASS"
		switch {
		case !p.passed() && blocking:
			status = "FAIL"
			ok = false
		case !p.passed():
			status = "WARN"
		}
		fmt.Fprintf(w, "%-4s %s\n", status, p.name)
		for _, e := range p.errors {
			fmt.Fprintf(w, "     %s\n", e)
		}
	}
	return ok
}

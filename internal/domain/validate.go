package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// depthTolerance absorbs decimal noise in extracted depths (meters).
const depthTolerance = 0.05

// Validate checks a record against the well data invariants. All violations
// are reported together; the returned error wraps ErrInvalidRecord.
func Validate(w WellRecord) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if strings.TrimSpace(w.Name) == "" {
		add("name is empty")
	}
	if w.TD <= 0 {
		add("td must be positive, got %g", w.TD)
	}
	if w.KBElevation < 0 {
		add("kbElevation must not be negative, got %g", w.KBElevation)
	}

	validateFormations(w, add)

	for i, p := range w.Production {
		if p.RateBOPD < 0 {
			add("production[%d] rateBOPD must not be negative, got %g", i, p.RateBOPD)
		}
	}
	for i, c := range w.Complications {
		if !c.Severity.Valid() {
			add("complications[%d] severity %q is not low, medium or high", i, c.Severity)
		}
		if c.Depth < 0 || c.Depth > w.TD+depthTolerance {
			add("complications[%d] depth %g outside [0, %g]", i, c.Depth, w.TD)
		}
	}
	for i, p := range w.Perforations {
		if p.TopMD >= p.BottomMD {
			add("perforations[%d] topMD %g must be above bottomMD %g", i, p.TopMD, p.BottomMD)
		}
		if p.TopMD < 0 || p.BottomMD > w.TD+depthTolerance {
			add("perforations[%d] interval %g-%g outside [0, %g]", i, p.TopMD, p.BottomMD, w.TD)
		}
	}
	for i, d := range w.Documents {
		if d.Page < 1 {
			add("documents[%d] page must be a positive integer, got %d", i, d.Page)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidRecord, errors.Join(errs...))
}

func validateFormations(w WellRecord, add func(string, ...any)) {
	if len(w.Formations) == 0 {
		add("formations are empty")
		return
	}

	if first := w.Formations[0]; first.TopMD < 0 {
		add("formations[0] topMD must not be negative, got %g", first.TopMD)
	}
	for i, f := range w.Formations {
		if f.BottomMD < f.TopMD {
			add("formations[%d] %q bottomMD %g above topMD %g", i, f.Name, f.BottomMD, f.TopMD)
		}
		if i > 0 {
			prev := w.Formations[i-1]
			if math.Abs(f.TopMD-prev.BottomMD) > depthTolerance {
				add("formations[%d] %q topMD %g does not meet previous bottomMD %g", i, f.Name, f.TopMD, prev.BottomMD)
			}
		}
	}
	if last := w.Formations[len(w.Formations)-1]; math.Abs(last.BottomMD-w.TD) > depthTolerance {
		add("deepest formation bottomMD %g does not equal td %g", last.BottomMD, w.TD)
	}
}

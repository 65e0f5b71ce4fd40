// Package simulate stands in for document extraction when no API key is
// configured: it waits a fixed delay, then derives a synthetic well from the
// seed template, named after the uploaded file.
package simulate

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/well-data-service/internal/domain"
)

// Source is the extractor name reported in logs and metrics.
const Source = "simulated"

// DefaultDelay matches the processing time users see with real extraction.
const DefaultDelay = 1500 * time.Millisecond

// Extractor implements domain.Extractor without any network calls.
type Extractor struct {
	generator *domain.Generator
	template  domain.WellRecord
	delay     time.Duration
	clock     clockwork.Clock
	logger    *slog.Logger
}

// New creates a simulated extractor.
func New(generator *domain.Generator, template domain.WellRecord, delay time.Duration, clock clockwork.Clock, logger *slog.Logger) *Extractor {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Extractor{
		generator: generator,
		template:  template,
		delay:     delay,
		clock:     clock,
		logger:    logger,
	}
}

// Source implements domain.Extractor.
func (e *Extractor) Source() string { return Source }

// Extract waits for the configured delay and returns a generated record. The
// document content is ignored. Cancelling ctx aborts the wait.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) (domain.WellRecord, error) {
	if e.delay > 0 {
		timer := e.clock.NewTimer(e.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return domain.WellRecord{}, ctx.Err()
		case <-timer.Chan():
		}
	}

	well := e.generator.Generate(e.template, domain.WellNameFromFilename(doc.Filename))
	e.logger.Info("simulated extraction", "file", doc.Filename, "well", well.Name, "td", well.TD)
	return well, nil
}

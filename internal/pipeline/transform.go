package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/couchcryptid/well-data-service/internal/domain"
	"github.com/couchcryptid/well-data-service/internal/observability"
)

// WellTransformer implements Transformer: it extracts a record from a document,
// checks the record invariants and enriches the location with a place name.
type WellTransformer struct {
	extractor domain.Extractor
	geocoder  domain.Geocoder
	logger    *slog.Logger
	metrics   *observability.Metrics
	timeout   time.Duration
}

// NewTransformer creates a WellTransformer. Pass a nil geocoder to disable
// geocoding enrichment. A zero timeout leaves extraction bounded only by ctx.
func NewTransformer(extractor domain.Extractor, geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics, timeout time.Duration) *WellTransformer {
	return &WellTransformer{
		extractor: extractor,
		geocoder:  geocoder,
		logger:    logger,
		metrics:   metrics,
		timeout:   timeout,
	}
}

// Source names the underlying extractor.
func (t *WellTransformer) Source() string {
	return t.extractor.Source()
}

// Transform turns one uploaded document into a validated, enriched record.
// Non-PDF uploads fail with ErrUnsupportedMedia before extraction.
func (t *WellTransformer) Transform(ctx context.Context, doc domain.Document) (domain.WellRecord, error) {
	if err := checkMediaType(doc); err != nil {
		return domain.WellRecord{}, err
	}

	extractCtx := ctx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		extractCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	start := time.Now()
	well, err := t.extractor.Extract(extractCtx, doc)
	t.metrics.ExtractionDuration.WithLabelValues(t.Source()).Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.WellRecord{}, err
	}

	if err := domain.Validate(well); err != nil {
		return domain.WellRecord{}, err
	}

	if pos := domain.ResolvePosition(well.Location); pos.Fallback {
		t.metrics.CoordinateFallbacks.Inc()
		t.logger.Warn("well location is not valid DMS, using default position",
			"well", well.Name,
			"file", doc.Filename,
			"lat", well.Location.Lat,
			"long", well.Location.Long,
		)
	}

	return t.Enrich(ctx, well), nil
}

// Enrich attaches a place name to the well location when geocoding is enabled.
func (t *WellTransformer) Enrich(ctx context.Context, well domain.WellRecord) domain.WellRecord {
	return domain.EnrichWithPlaceName(ctx, well, t.geocoder, t.logger)
}

// checkMediaType accepts PDFs only. Undeclared or generic types are sniffed
// from the payload.
func checkMediaType(doc domain.Document) error {
	mediaType := ""
	if doc.MIMEType != "" {
		mt, _, err := mime.ParseMediaType(doc.MIMEType)
		if err != nil {
			return fmt.Errorf("%w: %q", domain.ErrUnsupportedMedia, doc.MIMEType)
		}
		mediaType = mt
	}
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType, _, _ = mime.ParseMediaType(http.DetectContentType(doc.Data))
	}
	if mediaType != domain.MIMETypePDF {
		return fmt.Errorf("%w: %s is %s, want %s", domain.ErrUnsupportedMedia, doc.Filename, mediaType, domain.MIMETypePDF)
	}
	return nil
}

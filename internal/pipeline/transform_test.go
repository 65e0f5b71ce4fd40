package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/well-data-service/internal/domain"
	"github.com/couchcryptid/well-data-service/internal/observability"
)

// --- mocks ---

type stubExtractor struct {
	well     domain.WellRecord
	err      error
	calls    int
	deadline bool
}

func (s *stubExtractor) Extract(ctx context.Context, _ domain.Document) (domain.WellRecord, error) {
	s.calls++
	_, s.deadline = ctx.Deadline()
	return s.well, s.err
}

func (s *stubExtractor) Source() string { return "stub" }

type stubGeocoder struct {
	calls int
}

func (g *stubGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (domain.GeocodingResult, error) {
	g.calls++
	return domain.GeocodingResult{FormattedAddress: "Innamincka, South Australia"}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var pdfBytes = []byte("%PDF-1.7\n%âãÏÓ\n")

// --- tests ---

func TestWellTransformer_Transform(t *testing.T) {
	ext := &stubExtractor{well: domain.Acrasia8()}
	geo := &stubGeocoder{}
	metrics := observability.NewMetricsForTesting()
	tfm := NewTransformer(ext, geo, testLogger(), metrics, time.Minute)

	well, err := tfm.Transform(context.Background(), domain.Document{Filename: "a.pdf", MIMEType: domain.MIMETypePDF, Data: pdfBytes})
	require.NoError(t, err)

	assert.Equal(t, "Acrasia-8", well.Name)
	assert.Equal(t, "Innamincka, South Australia", well.Location.PlaceName)
	assert.True(t, ext.deadline, "extraction runs under a timeout")
	assert.Equal(t, 1, geo.calls)
	assert.Equal(t, "stub", tfm.Source())
}

func TestWellTransformer_ExtractorError(t *testing.T) {
	ext := &stubExtractor{err: errors.Join(domain.ErrMalformedResponse, errors.New("not json"))}
	tfm := NewTransformer(ext, nil, testLogger(), observability.NewMetricsForTesting(), 0)

	_, err := tfm.Transform(context.Background(), domain.Document{Filename: "a.pdf", MIMEType: domain.MIMETypePDF, Data: pdfBytes})
	require.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.False(t, ext.deadline)
}

func TestWellTransformer_InvalidRecord(t *testing.T) {
	bad := domain.Acrasia8()
	bad.TD = 9999
	ext := &stubExtractor{well: bad}
	geo := &stubGeocoder{}
	tfm := NewTransformer(ext, geo, testLogger(), observability.NewMetricsForTesting(), 0)

	_, err := tfm.Transform(context.Background(), domain.Document{Filename: "a.pdf", MIMEType: domain.MIMETypePDF, Data: pdfBytes})
	require.ErrorIs(t, err, domain.ErrInvalidRecord)
	assert.Zero(t, geo.calls)
}

func TestWellTransformer_CoordinateFallbackCounted(t *testing.T) {
	w := domain.Acrasia8()
	w.Location.Lat = "not a coordinate"
	metrics := observability.NewMetricsForTesting()
	tfm := NewTransformer(&stubExtractor{well: w}, nil, testLogger(), metrics, 0)

	well, err := tfm.Transform(context.Background(), domain.Document{Filename: "a.pdf", MIMEType: domain.MIMETypePDF, Data: pdfBytes})
	require.NoError(t, err, "unparseable coordinates are flagged, not rejected")
	assert.Equal(t, "not a coordinate", well.Location.Lat)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.CoordinateFallbacks), 0)
}

func TestCheckMediaType(t *testing.T) {
	tests := []struct {
		name    string
		doc     domain.Document
		wantErr bool
	}{
		{"declared pdf", domain.Document{Filename: "a.pdf", MIMEType: "application/pdf", Data: []byte("x")}, false},
		{"declared pdf with params", domain.Document{Filename: "a.pdf", MIMEType: "application/pdf; name=a.pdf"}, false},
		{"sniffed pdf", domain.Document{Filename: "a.pdf", Data: pdfBytes}, false},
		{"octet stream pdf", domain.Document{Filename: "a.pdf", MIMEType: "application/octet-stream", Data: pdfBytes}, false},
		{"png", domain.Document{Filename: "a.png", MIMEType: "image/png"}, true},
		{"sniffed text", domain.Document{Filename: "a.pdf", Data: []byte("hello world")}, true},
		{"garbage header", domain.Document{Filename: "a.pdf", MIMEType: ";;;"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkMediaType(tt.doc)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrUnsupportedMedia)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestWellTransformer_RejectsNonPDFBeforeExtraction(t *testing.T) {
	ext := &stubExtractor{well: domain.Acrasia8()}
	tfm := NewTransformer(ext, nil, testLogger(), observability.NewMetricsForTesting(), 0)

	_, err := tfm.Transform(context.Background(), domain.Document{Filename: "notes.txt", MIMEType: "text/plain"})
	require.ErrorIs(t, err, domain.ErrUnsupportedMedia)
	assert.Zero(t, ext.calls)
}

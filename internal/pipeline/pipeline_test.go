package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/well-data-service/internal/domain"
	"github.com/couchcryptid/well-data-service/internal/observability"
	"github.com/couchcryptid/well-data-service/internal/pipeline"
	"github.com/couchcryptid/well-data-service/internal/store"
)

// --- mocks ---

// mockTransformer derives a record from the filename; files whose name
// contains "bad" fail with err.
type mockTransformer struct {
	err   error
	calls []string
}

func (m *mockTransformer) Transform(_ context.Context, doc domain.Document) (domain.WellRecord, error) {
	m.calls = append(m.calls, doc.Filename)
	if strings.Contains(doc.Filename, "bad") {
		return domain.WellRecord{}, m.err
	}
	w := domain.Acrasia8()
	w.Name = domain.WellNameFromFilename(doc.Filename)
	return w, nil
}

func (m *mockTransformer) Enrich(_ context.Context, well domain.WellRecord) domain.WellRecord {
	well.Location.PlaceName = "Innamincka"
	return well
}

func (m *mockTransformer) Source() string { return "mock" }

type mockPublisher struct {
	mu      sync.Mutex
	err     error
	sources []string
	wells   []domain.WellRecord
}

func (m *mockPublisher) Publish(_ context.Context, source string, wells []domain.WellRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources = append(m.sources, source)
	m.wells = append(m.wells, wells...)
	return m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pdf(name string) domain.Document {
	return domain.Document{Filename: name, MIMEType: domain.MIMETypePDF, Data: []byte("%PDF-1.4\n")}
}

type fixture struct {
	pipeline  *pipeline.Pipeline
	store     *store.Store
	tfm       *mockTransformer
	publisher *mockPublisher
	metrics   *observability.Metrics
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	s, err := store.New(domain.Acrasia8())
	require.NoError(t, err)

	f := fixture{
		store:     s,
		tfm:       &mockTransformer{err: domain.ErrExtractionFailed},
		publisher: &mockPublisher{},
		metrics:   observability.NewMetricsForTesting(),
	}
	f.pipeline = pipeline.New(f.tfm, s, domain.NewGenerator(1), domain.Acrasia8(), f.publisher, discardLogger(), f.metrics)
	return f
}

func wellNames(wells []domain.WellRecord) []string {
	out := make([]string, len(wells))
	for i, w := range wells {
		out[i] = w.Name
	}
	return out
}

// --- tests ---

func TestIngest_AllSucceed(t *testing.T) {
	f := newFixture(t)

	res := f.pipeline.Ingest(context.Background(), []domain.Document{pdf("Acrasia-9.pdf"), pdf("Acrasia-10.pdf")})

	assert.NotEmpty(t, res.BatchID)
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Files, 2)
	for _, fr := range res.Files {
		assert.Equal(t, pipeline.StatusStored, fr.Status)
		assert.Empty(t, fr.Error)
	}

	assert.Equal(t, []string{"Acrasia-8", "Acrasia-9", "Acrasia-10"}, wellNames(f.store.List()))
	sel, err := f.store.Selected()
	require.NoError(t, err)
	assert.Equal(t, "Acrasia-10", sel.Name)

	assert.Equal(t, []string{"Acrasia-9.pdf", "Acrasia-10.pdf"}, f.tfm.calls, "files processed in order")
	assert.Equal(t, []string{"mock"}, f.publisher.sources, "one publish per batch")
	assert.Len(t, f.publisher.wells, 2)

	assert.InDelta(t, 3, testutil.ToFloat64(f.metrics.WellsStored), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(f.metrics.FilesProcessed.WithLabelValues("mock", pipeline.StatusStored)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.UploadBatches.WithLabelValues("ok")), 0)
}

func TestIngest_PartialFailureCommitsSuccesses(t *testing.T) {
	f := newFixture(t)

	res := f.pipeline.Ingest(context.Background(), []domain.Document{
		pdf("Acrasia-9.pdf"),
		pdf("bad-scan.pdf"),
		pdf("Acrasia-11.pdf"),
	})

	assert.Equal(t, 2, res.Added)
	assert.Equal(t, pipeline.StatusStored, res.Files[0].Status)
	assert.Equal(t, pipeline.StatusFailed, res.Files[1].Status)
	require.ErrorIs(t, res.Files[1].Err, domain.ErrExtractionFailed)
	assert.Contains(t, res.Files[1].Error, "document extraction failed")
	assert.Equal(t, pipeline.StatusStored, res.Files[2].Status)

	assert.Equal(t, []string{"Acrasia-8", "Acrasia-9", "Acrasia-11"}, wellNames(f.store.List()))
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.UploadBatches.WithLabelValues("partial")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.FilesProcessed.WithLabelValues("mock", pipeline.StatusFailed)), 0)
}

func TestIngest_AllFail(t *testing.T) {
	f := newFixture(t)

	res := f.pipeline.Ingest(context.Background(), []domain.Document{pdf("bad-1.pdf"), pdf("bad-2.pdf")})

	assert.Zero(t, res.Added)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, f.store.Len())
	assert.Empty(t, f.publisher.sources, "nothing to publish")

	sel, err := f.store.Selected()
	require.NoError(t, err)
	assert.Equal(t, "Acrasia-8", sel.Name, "selection unchanged")
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.UploadBatches.WithLabelValues("failed")), 0)
}

func TestIngest_Duplicates(t *testing.T) {
	f := newFixture(t)

	res := f.pipeline.Ingest(context.Background(), []domain.Document{
		pdf("Acrasia-8.pdf"), // already stored
		pdf("Acrasia-9.pdf"),
		pdf("Acrasia-9.PDF"), // same name within batch
	})

	assert.Equal(t, 1, res.Added)
	assert.Equal(t, pipeline.StatusRejected, res.Files[0].Status)
	require.ErrorIs(t, res.Files[0].Err, domain.ErrDuplicateWell)
	assert.Equal(t, pipeline.StatusStored, res.Files[1].Status)
	assert.Equal(t, pipeline.StatusRejected, res.Files[2].Status)
	assert.Equal(t, "Acrasia-9", res.Files[2].Well)
	assert.Equal(t, 2, f.store.Len())
}

func TestIngest_PublishErrorDoesNotFailBatch(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker unavailable")

	res := f.pipeline.Ingest(context.Background(), []domain.Document{pdf("Acrasia-9.pdf")})

	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 2, f.store.Len())
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.PublishErrors), 0)
}

func TestIngest_NilPublisher(t *testing.T) {
	s, err := store.New(domain.Acrasia8())
	require.NoError(t, err)
	p := pipeline.New(&mockTransformer{}, s, domain.NewGenerator(1), domain.Acrasia8(), nil, discardLogger(), observability.NewMetricsForTesting())

	res := p.Ingest(context.Background(), []domain.Document{pdf("Acrasia-9.pdf")})
	assert.Equal(t, 1, res.Added)
}

func TestGenerate(t *testing.T) {
	f := newFixture(t)

	well, err := f.pipeline.Generate(context.Background(), "Acrasia-12")
	require.NoError(t, err)

	assert.Equal(t, "Acrasia-12", well.Name)
	require.NoError(t, domain.Validate(well))
	assert.Equal(t, "Innamincka", well.Location.PlaceName, "generated wells are enriched")
	assert.Equal(t, 2, f.store.Len())

	sel, err := f.store.Selected()
	require.NoError(t, err)
	assert.Equal(t, "Acrasia-12", sel.Name)

	assert.Equal(t, []string{pipeline.SourceGenerator}, f.publisher.sources)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.WellsGenerated), 0)
}

func TestGenerate_DefaultLabel(t *testing.T) {
	f := newFixture(t)

	first, err := f.pipeline.Generate(context.Background(), "")
	require.NoError(t, err)
	second, err := f.pipeline.Generate(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "Acrasia-8-SIM-1", first.Name)
	assert.Equal(t, "Acrasia-8-SIM-2", second.Name)
}

func TestGenerate_BlankLabel(t *testing.T) {
	f := newFixture(t)

	blank, err := f.pipeline.Generate(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, "Acrasia-8-SIM-1", blank.Name)

	padded, err := f.pipeline.Generate(context.Background(), "  Acrasia-20\t")
	require.NoError(t, err)
	assert.Equal(t, "Acrasia-20", padded.Name)

	for _, w := range f.store.List() {
		assert.NotEmpty(t, strings.TrimSpace(w.Name))
	}
}

func TestGenerate_Duplicate(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.Generate(context.Background(), "Acrasia-8")
	require.ErrorIs(t, err, domain.ErrDuplicateWell)
	assert.Equal(t, 1, f.store.Len())
}

func TestCheckReadiness(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.pipeline.CheckReadiness(context.Background()))

	empty, err := store.New()
	require.NoError(t, err)
	p := pipeline.New(&mockTransformer{}, empty, domain.NewGenerator(1), domain.Acrasia8(), nil, discardLogger(), observability.NewMetricsForTesting())
	require.Error(t, p.CheckReadiness(context.Background()))
}

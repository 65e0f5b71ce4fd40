package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/well-data-service/internal/domain"
	"github.com/couchcryptid/well-data-service/internal/observability"
)

// SourceGenerator labels records produced by the perturbation generator.
const SourceGenerator = "generator"

// Transformer converts an uploaded document into a validated well record.
type Transformer interface {
	Transform(ctx context.Context, doc domain.Document) (domain.WellRecord, error)
	Enrich(ctx context.Context, well domain.WellRecord) domain.WellRecord
	Source() string
}

// WellStore is the ordered well collection the pipeline commits to.
type WellStore interface {
	Append(wells []domain.WellRecord) (int, error)
	Contains(name string) bool
	Len() int
}

// Publisher forwards committed records downstream.
type Publisher interface {
	Publish(ctx context.Context, source string, wells []domain.WellRecord) error
}

// File outcomes reported in a BatchResult.
const (
	StatusStored   = "stored"
	StatusRejected = "rejected"
	StatusFailed   = "failed"
)

// FileResult is the outcome for one uploaded file.
type FileResult struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Well     string `json:"well,omitempty"`
	Error    string `json:"error,omitempty"`

	Err error `json:"-"`
}

// BatchResult summarizes one upload batch.
type BatchResult struct {
	BatchID string       `json:"batchId"`
	Files   []FileResult `json:"files"`
	Added   int          `json:"added"`
	Total   int          `json:"total"`
}

// Pipeline orchestrates document ingestion and synthetic generation into the
// well collection.
type Pipeline struct {
	transformer Transformer
	store       WellStore
	generator   *domain.Generator
	template    domain.WellRecord
	publisher   Publisher
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates a Pipeline. template seeds the generator; publisher may be nil.
func New(t Transformer, s WellStore, g *domain.Generator, template domain.WellRecord, pub Publisher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	p := &Pipeline{
		transformer: t,
		store:       s,
		generator:   g,
		template:    template,
		publisher:   pub,
		logger:      logger,
		metrics:     metrics,
	}
	metrics.WellsStored.Set(float64(s.Len()))
	return p
}

// CheckReadiness returns nil once the collection holds at least one well.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.store.Len() == 0 {
		return errors.New("well collection is empty")
	}
	return nil
}

// Ingest processes docs one at a time, in order, and commits every record that
// passed in a single append. Files that fail are reported individually and do
// not block the rest of the batch.
func (p *Pipeline) Ingest(ctx context.Context, docs []domain.Document) BatchResult {
	start := time.Now()
	batchID := uuid.NewString()
	source := p.transformer.Source()
	logger := p.logger.With("batch_id", batchID, "source", source)

	logger.Info("upload batch started", "files", len(docs))
	p.metrics.BatchSize.Observe(float64(len(docs)))

	result := BatchResult{BatchID: batchID, Files: make([]FileResult, len(docs))}
	accepted := make([]domain.WellRecord, 0, len(docs))
	acceptedIdx := make([]int, 0, len(docs))
	names := make(map[string]struct{}, len(docs))

	for i, doc := range docs {
		fr := FileResult{Filename: doc.Filename}

		well, err := p.transformer.Transform(ctx, doc)
		switch {
		case err != nil:
			fr.Status = StatusFailed
			fr.Err = err
		case p.isDuplicate(names, well.Name):
			fr.Status = StatusRejected
			fr.Well = well.Name
			fr.Err = fmt.Errorf("%w: %q", domain.ErrDuplicateWell, well.Name)
		default:
			names[well.Name] = struct{}{}
			fr.Status = StatusStored
			fr.Well = well.Name
			accepted = append(accepted, well)
			acceptedIdx = append(acceptedIdx, i)
		}

		if fr.Err != nil {
			fr.Error = fr.Err.Error()
			logger.Warn("file not ingested", "file", doc.Filename, "status", fr.Status, "error", fr.Err)
		}
		result.Files[i] = fr
	}

	total, err := p.store.Append(accepted)
	if err != nil {
		// Another writer took a name after the duplicate check.
		logger.Error("commit batch failed", "error", err, "wells", len(accepted))
		for _, i := range acceptedIdx {
			result.Files[i].Status = StatusRejected
			result.Files[i].Err = err
			result.Files[i].Error = err.Error()
		}
		accepted = nil
	}
	result.Added = len(accepted)
	result.Total = total

	for _, fr := range result.Files {
		p.metrics.FilesProcessed.WithLabelValues(source, fr.Status).Inc()
	}
	p.metrics.UploadBatches.WithLabelValues(batchOutcome(result)).Inc()
	p.metrics.WellsStored.Set(float64(total))

	if len(accepted) > 0 {
		p.publish(ctx, logger, source, accepted)
	}

	logger.Info("upload batch finished",
		"added", result.Added,
		"failed", len(docs)-result.Added,
		"total", total,
		"duration", time.Since(start),
	)
	return result
}

// Generate derives a synthetic well from the template and stores it. The label
// is trimmed; a blank label picks the next free "<template>-SIM-<n>" name.
func (p *Pipeline) Generate(ctx context.Context, label string) (domain.WellRecord, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = p.nextLabel()
	}
	if p.store.Contains(label) {
		return domain.WellRecord{}, fmt.Errorf("%w: %q", domain.ErrDuplicateWell, label)
	}

	well := p.generator.Generate(p.template, label)
	well = p.transformer.Enrich(ctx, well)

	total, err := p.store.Append([]domain.WellRecord{well})
	if err != nil {
		return domain.WellRecord{}, err
	}
	p.metrics.WellsGenerated.Inc()
	p.metrics.WellsStored.Set(float64(total))
	p.logger.Info("synthetic well generated", "well", well.Name, "td", well.TD, "total", total)

	p.publish(ctx, p.logger, SourceGenerator, []domain.WellRecord{well})
	return well, nil
}

func (p *Pipeline) isDuplicate(batch map[string]struct{}, name string) bool {
	if _, ok := batch[name]; ok {
		return true
	}
	return p.store.Contains(name)
}

func (p *Pipeline) nextLabel() string {
	for n := p.store.Len(); ; n++ {
		label := fmt.Sprintf("%s-SIM-%d", p.template.Name, n)
		if !p.store.Contains(label) {
			return label
		}
	}
}

func (p *Pipeline) publish(ctx context.Context, logger *slog.Logger, source string, wells []domain.WellRecord) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, source, wells); err != nil {
		p.metrics.PublishErrors.Inc()
		logger.Error("publish wells failed", "error", err, "wells", len(wells))
	}
}

func batchOutcome(r BatchResult) string {
	switch {
	case r.Added == 0:
		return "failed"
	case r.Added < len(r.Files):
		return "partial"
	default:
		return "ok"
	}
}

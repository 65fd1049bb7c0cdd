package mapper

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/portway/mapping-core/internal/appconfig"
)

// Processor maps raw records to entities using a loaded configuration. It
// holds no mutable state and is safe for concurrent use across kinds and
// batches.
type Processor struct {
	cfg     *appconfig.Config
	builder *Builder
	logger  *slog.Logger
}

// New creates a Processor over a loaded configuration. A nil logger falls
// back to slog.Default().
func New(cfg *appconfig.Config, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		cfg:     cfg,
		builder: NewBuilder(logger),
		logger:  logger,
	}
}

// ProcessBatch maps an in-memory batch of records of one kind.
func (p *Processor) ProcessBatch(ctx context.Context, kind string, records []Record) (*Result, error) {
	return p.ProcessStream(ctx, kind, NewSliceIterator(records))
}

// ProcessStream consumes records from an iterator and maps each one. The
// returned error reflects only iterator failures or context cancellation;
// per-record mapping problems are collected in Result.Errors.
func (p *Processor) ProcessStream(ctx context.Context, kind string, it Iterator) (*Result, error) {
	defer it.Close()

	result := &Result{
		RunID: uuid.New().String(),
		Kind:  kind,
	}
	logger := p.logger.With(slog.String("kind", kind), slog.String("run_id", result.RunID))

	resources := p.cfg.ResourcesForKind(kind)
	if len(resources) == 0 {
		logger.Warn("no resource configured for kind, dropping batch")
		return result, nil
	}

	var fetched int
	for it.Next() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		fetched++
		record := it.Value()
		for _, res := range resources {
			p.processRecord(res, record, result)
		}
	}
	if err := it.Err(); err != nil {
		return result, err
	}

	logger.Info("batch mapped",
		slog.Int("fetched", fetched),
		slog.Int("emitted", len(result.Entities)),
		slog.Int("filtered", result.Filtered),
		slog.Int("rejected", result.Rejected),
		slog.Int("errors", len(result.Errors)),
	)
	return result, nil
}

// processRecord walks one record through filtered → mapped → emitted or
// rejected for a single resource mapping.
func (p *Processor) processRecord(res *appconfig.Resource, record Record, result *Result) {
	matched, err := p.builder.Matches(res, record)
	if err != nil {
		result.Errors = append(result.Errors, err)
		return
	}
	if !matched {
		result.Filtered++
		return
	}

	e, err := p.builder.Build(res, record)
	if err != nil {
		result.Rejected++
		result.Errors = append(result.Errors, err)
		p.logger.Warn("record rejected", slog.String("error", err.Error()))
		return
	}
	result.Entities = append(result.Entities, e)
}

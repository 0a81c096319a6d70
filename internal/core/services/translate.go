package services

import (
	"context"
	"time"

	"github.com/custodia-labs/nlquery/internal/core/domain"
	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
	"github.com/custodia-labs/nlquery/internal/core/ports/driving"
	"github.com/custodia-labs/nlquery/internal/logger"
)

// Ensure TranslationService implements the interface.
var _ driving.TranslationService = (*TranslationService)(nil)

// structuredQuerySchemaName names the output shape for providers.
const structuredQuerySchemaName = "typesense_query"

// TranslationService is the pipeline entry point: free text in, a
// structured query or a single QueryError out. Nothing is retried.
type TranslationService struct {
	introspection driving.IntrospectionService
	composer      *PromptComposer
	generator     driven.StructuredGenerator
	history       driven.HistoryStore
	timeout       time.Duration
}

// NewTranslationService creates the translation pipeline.
func NewTranslationService(
	introspection driving.IntrospectionService,
	composer *PromptComposer,
	generator driven.StructuredGenerator,
) *TranslationService {
	if composer == nil {
		composer = NewPromptComposer(nil)
	}
	return &TranslationService{
		introspection: introspection,
		composer:      composer,
		generator:     generator,
	}
}

// SetHistoryStore records every translation attempt.
func (s *TranslationService) SetHistoryStore(store driven.HistoryStore) {
	s.history = store
}

// SetTimeout bounds each generation call. Zero leaves the caller's
// context as the only bound.
func (s *TranslationService) SetTimeout(d time.Duration) {
	s.timeout = d
}

// Translate converts text into a structured query. Empty text is passed
// through to the model unchanged.
func (s *TranslationService) Translate(ctx context.Context, text string) (*domain.StructuredQuery, error) {
	start := time.Now()
	q, err := s.translate(ctx, text)
	elapsed := time.Since(start)
	s.record(ctx, text, q, err, elapsed)
	if err != nil {
		logger.Warn("Translation failed after %s: %v", elapsed, err)
		return nil, err
	}
	logger.Info("Translation done in %s", elapsed)
	return q, nil
}

func (s *TranslationService) translate(ctx context.Context, text string) (*domain.StructuredQuery, error) {
	logger.Section("Query Translation")
	logger.Debug("Text: %q", text)

	if s.generator == nil {
		return nil, domain.NewConfigurationError("llm.provider")
	}

	table, err := s.introspection.SchemaTable(ctx)
	if err != nil {
		return nil, classify(domain.KindIntrospection, err)
	}

	system := s.composer.Compose(table)
	return s.generate(ctx, system, text)
}

// generate invokes the model once and validates its answer.
func (s *TranslationService) generate(ctx context.Context, system, text string) (*domain.StructuredQuery, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	logger.Debug("Calling model %s", s.generator.ModelName())
	start := time.Now()
	raw, err := s.generator.GenerateStructured(ctx, driven.StructuredRequest{
		SystemInstruction: system,
		Prompt:            text,
		SchemaName:        structuredQuerySchemaName,
		Schema:            domain.StructuredQuerySchema(),
	})
	if err != nil {
		return nil, classify(domain.KindGeneration, err)
	}
	logger.Debug("Model answered in %s: %s", time.Since(start), string(raw))

	q, err := queryValidator.decode(raw)
	if err != nil {
		return nil, err
	}
	logger.Debug("Structured query: query=%q filter_by=%q sort_by=%q", q.Query, q.FilterBy, q.SortBy)
	return q, nil
}

// record saves the attempt. History is best effort and never changes the
// translation result.
func (s *TranslationService) record(
	ctx context.Context, text string, q *domain.StructuredQuery, err error, elapsed time.Duration,
) {
	if s.history == nil {
		return
	}
	entry := domain.HistoryEntry{
		Text:      text,
		Result:    q,
		Duration:  elapsed,
		CreatedAt: time.Now().UTC(),
	}
	if s.generator != nil {
		entry.Model = s.generator.ModelName()
	}
	if err != nil {
		entry.Result = nil
		entry.Error = err.Error()
		if kind, ok := domain.KindOf(err); ok {
			entry.ErrorKind = kind
		}
	}
	if saveErr := s.history.Save(context.WithoutCancel(ctx), entry); saveErr != nil {
		logger.Warn("Recording translation history failed: %v", saveErr)
	}
}

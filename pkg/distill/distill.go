// Package distill provides the top-level API: clean article markup, extract
// its text and derive metadata, reporting the outcome in a result envelope.
package distill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/distill/internal/logger"
	"github.com/jmylchreest/distill/pkg/content"
	"github.com/jmylchreest/distill/pkg/metadata"
	"github.com/jmylchreest/distill/pkg/processor/whitespace"
	"github.com/jmylchreest/distill/pkg/rules"
)

// Failure messages reported in Result.Error.
const (
	EmptyContentMessage = "提取的文本内容为空"
	FailurePrefix       = "处理失败: "
)

// ErrEmptyContent is reported when no text remains after cleaning.
var ErrEmptyContent = errors.New("extracted text is empty")

// Item is one input of ProcessBatch.
type Item struct {
	ID      string
	Content string
	Options content.ProcessingOptions
}

// Service runs the processing pipeline.
// A Service is safe for concurrent use once constructed.
type Service struct {
	config Config
	logger *slog.Logger
}

// New creates a new Service.
func New(opts ...Option) *Service {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Chain == nil && cfg.Engine == nil {
		cfg.Engine = rules.NewDefaultEngine()
	}
	if cfg.Extractor == nil {
		cfg.Extractor = metadata.New()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	l := cfg.Logger
	if l == nil {
		l = logger.With("component", "distill")
	}
	return &Service{config: cfg, logger: l}
}

// ProcessContent cleans raw, extracts its text and computes metadata.
// It never panics and never returns an error; callers check Result.Success.
// An empty id is replaced by a generated UUID.
func (s *Service) ProcessContent(ctx context.Context, id, raw string, opts content.ProcessingOptions) (result content.Result) {
	start := time.Now()
	if id == "" {
		id = uuid.NewString()
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			s.logger.ErrorContext(ctx, "processing panicked", "id", id, "error", err)
			result = failure(err, start)
		}
	}()

	processed, err := s.process(ctx, id, raw, opts)
	if err != nil {
		if errors.Is(err, ErrEmptyContent) {
			s.logger.WarnContext(ctx, "no text extracted", "id", id)
		} else {
			s.logger.ErrorContext(ctx, "processing failed", "id", id, "error", err)
		}
		return failure(err, start)
	}

	s.logger.DebugContext(ctx, "content processed",
		"id", id,
		"input_size", len(raw),
		"text_size", len(processed.ExtractedText),
		"content_type", processed.Metadata.ContentType,
		"duration", time.Since(start))

	return content.Result{
		Success:        true,
		Content:        processed,
		ProcessingTime: time.Since(start),
	}
}

func (s *Service) process(ctx context.Context, id, raw string, opts content.ProcessingOptions) (*content.ProcessedContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	clean, err := s.Clean(raw, opts)
	if err != nil {
		return nil, err
	}

	// Engine output is already decoded text; parsing it again as markup
	// would swallow literal '<' and '>'.
	text := strings.TrimSpace(whitespace.Collapse(clean))
	if s.config.Chain != nil {
		if text, err = ExtractText(clean); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyContent
	}

	return &content.ProcessedContent{
		ID:              id,
		OriginalContent: raw,
		CleanContent:    clean,
		ExtractedText:   text,
		Metadata:        s.config.Extractor.Extract(text, opts),
		ProcessingDate:  time.Now(),
	}, nil
}

// Clean runs the configured chain, or the rule engine when no chain is set.
// Chain output is markup; rule engine output is plain text.
func (s *Service) Clean(raw string, opts content.ProcessingOptions) (string, error) {
	if s.config.Chain != nil {
		return s.config.Chain.Process(raw)
	}
	return s.config.Engine.Apply(raw, opts), nil
}

// ProcessBatch processes items with bounded concurrency and returns the
// results in input order. Items not started before ctx is cancelled get a
// failure result carrying the context error.
func (s *Service) ProcessBatch(ctx context.Context, items []Item) []content.Result {
	results := make([]content.Result, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Concurrency)
	for i, item := range items {
		if err := gctx.Err(); err != nil {
			results[i] = failure(err, time.Now())
			continue
		}
		g.Go(func() error {
			results[i] = s.ProcessContent(gctx, item.ID, item.Content, item.Options)
			return nil
		})
	}
	// Workers never return errors.
	_ = g.Wait()

	return results
}

// ExtractText returns the collapsed, trimmed text content of markup.
// Plain text input is returned normalized.
func ExtractText(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("failed to parse markup: %w", err)
	}
	return strings.TrimSpace(whitespace.Collapse(doc.Find("body").Text())), nil
}

func failure(err error, start time.Time) content.Result {
	msg := FailurePrefix + err.Error()
	if errors.Is(err, ErrEmptyContent) {
		msg = EmptyContentMessage
	}
	return content.Result{
		Success:        false,
		Error:          msg,
		ProcessingTime: time.Since(start),
		Err:            err,
	}
}

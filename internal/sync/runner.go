// Package sync rebuilds the search collections from the CMS, one category
// at a time.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/goodphonefoundation/thecloudsucks/internal/catalog"
	"github.com/goodphonefoundation/thecloudsucks/internal/directus"
	"github.com/goodphonefoundation/thecloudsucks/internal/logger"
	"github.com/goodphonefoundation/thecloudsucks/internal/metrics"
	"github.com/goodphonefoundation/thecloudsucks/internal/search"
)

// Source yields source records for a category. *directus.Client satisfies it.
type Source interface {
	Items(ctx context.Context, q directus.ItemsQuery) ([]map[string]any, error)
}

// Publisher replaces one collection. *search.Publisher satisfies it.
type Publisher interface {
	Replace(ctx context.Context, schema catalog.Schema, docs []catalog.Document) (*search.PublishResult, error)
}

// Result is the immutable outcome of one category's sync run.
type Result struct {
	Category string   `json:"collection"`
	Success  bool     `json:"success"`
	Fetched  int      `json:"fetched"`
	Indexed  int      `json:"indexed"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

// Summary aggregates a multi-category run.
type Summary struct {
	Success         bool      `json:"success"`
	DurationSeconds float64   `json:"duration_seconds"`
	Collections     int       `json:"collections"`
	Succeeded       int       `json:"succeeded"`
	Failed          int       `json:"failed"`
	TotalIndexed    int       `json:"total_indexed"`
	TotalFailed     int       `json:"total_failed"`
	Results         []*Result `json:"results"`
}

// Runner drives fetch, transform, publish for categories.
type Runner struct {
	source    Source
	publisher Publisher
	log       logger.Logger
}

// NewRunner creates a sync runner.
func NewRunner(source Source, publisher Publisher, log logger.Logger) *Runner {
	return &Runner{source: source, publisher: publisher, log: log}
}

// SyncCategory runs one category end to end. It never returns an error;
// failures are recorded in the result so a multi-category run can carry on.
func (r *Runner) SyncCategory(ctx context.Context, cat *catalog.Category) *Result {
	log := r.log.With(logger.String("category", cat.Name))
	result := &Result{Category: cat.Name, Errors: []string{}}

	log.Info("Fetching source records", logger.String("source", cat.Source))
	records, err := r.source.Items(ctx, directus.ItemsQuery{
		Collection: cat.Source,
		Status:     cat.Status,
		Fields:     cat.Fields,
	})
	if err != nil {
		log.Error("Fetch failed", logger.Error(err))
		result.Errors = append(result.Errors, err.Error())
		metrics.SyncRuns.WithLabelValues(cat.Name, "failure").Inc()
		return result
	}
	result.Fetched = len(records)
	log.Info("Fetched source records", logger.Int("count", len(records)))

	// Transforms are per-record tolerant; malformed values default, they
	// never abort the batch.
	docs := make([]catalog.Document, 0, len(records))
	for _, record := range records {
		docs = append(docs, cat.Transform(record))
	}

	published, err := r.publisher.Replace(ctx, cat.Schema, docs)
	if err != nil {
		log.Error("Publish failed", logger.Error(err))
		result.Errors = append(result.Errors, err.Error())
		metrics.SyncRuns.WithLabelValues(cat.Name, "failure").Inc()
		return result
	}

	result.Indexed = published.Indexed
	result.Failed = published.Failed
	result.Errors = append(result.Errors, published.Errors...)
	result.Success = published.Failed == 0

	outcome := "success"
	if !result.Success {
		outcome = "partial"
	}
	metrics.SyncRuns.WithLabelValues(cat.Name, outcome).Inc()
	metrics.SyncDocuments.WithLabelValues(cat.Name, "indexed").Add(float64(result.Indexed))
	metrics.SyncDocuments.WithLabelValues(cat.Name, "failed").Add(float64(result.Failed))

	log.Info("Category sync finished",
		logger.Bool("success", result.Success),
		logger.Int("fetched", result.Fetched),
		logger.Int("indexed", result.Indexed),
		logger.Int("failed", result.Failed),
	)
	return result
}

// SyncAll runs every category, or the named subset, strictly in sequence.
// Sequencing keeps log output ordered and avoids stacking engine load; one
// category's failure never stops the ones after it. Returns an error only
// when a requested category name is unknown.
func (r *Runner) SyncAll(ctx context.Context, only []string) (*Summary, error) {
	cats, err := resolve(only)
	if err != nil {
		return nil, err
	}

	r.log.Info("Starting full sync", logger.Int("collections", len(cats)))
	start := time.Now()

	summary := &Summary{Results: make([]*Result, 0, len(cats)), Collections: len(cats)}
	for _, cat := range cats {
		result := r.SyncCategory(ctx, cat)
		summary.Results = append(summary.Results, result)
		summary.TotalIndexed += result.Indexed
		summary.TotalFailed += result.Failed
		if result.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	summary.Success = summary.Failed == 0
	summary.DurationSeconds = time.Since(start).Seconds()
	metrics.SyncDuration.Observe(summary.DurationSeconds)

	r.log.Info("Full sync finished",
		logger.Bool("success", summary.Success),
		logger.Int("succeeded", summary.Succeeded),
		logger.Int("failed", summary.Failed),
		logger.Int("total_indexed", summary.TotalIndexed),
		logger.Int("total_failed", summary.TotalFailed),
		logger.Duration("duration", time.Since(start)),
	)
	return summary, nil
}

func resolve(only []string) ([]*catalog.Category, error) {
	if len(only) == 0 {
		return catalog.All(), nil
	}
	cats := make([]*catalog.Category, 0, len(only))
	for _, name := range only {
		cat, err := catalog.Get(name)
		if err != nil {
			return nil, fmt.Errorf("resolve sync subset: %w", err)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

package search

import (
	"context"
	"fmt"

	"github.com/goodphonefoundation/thecloudsucks/internal/catalog"
	"github.com/goodphonefoundation/thecloudsucks/internal/logger"
)

// Indexer is the engine surface the publisher needs. *Client satisfies it;
// tests substitute a fake.
type Indexer interface {
	DeleteCollection(ctx context.Context, name string) error
	CreateCollection(ctx context.Context, schema catalog.Schema) error
	ImportDocuments(ctx context.Context, name string, docs []catalog.Document) ([]ImportResult, error)
}

// Publisher replaces a collection wholesale: the previous generation is
// deleted, the collection is recreated from its schema, and the new
// documents are bulk-loaded. There is no blue/green swap; queries during
// the rebuild window see an absent or partially filled collection and get
// empty results, not errors.
type Publisher struct {
	engine Indexer
	log    logger.Logger
}

// NewPublisher creates an index publisher.
func NewPublisher(engine Indexer, log logger.Logger) *Publisher {
	return &Publisher{engine: engine, log: log}
}

// PublishResult aggregates the per-document import outcomes.
type PublishResult struct {
	Indexed int
	Failed  int
	Errors  []string
}

// Replace rebuilds the collection named by the schema from docs.
//
// The delete is idempotent: a missing collection is success. Any other
// delete failure is logged and the create is still attempted; if the old
// collection survived, the create fails and that failure is surfaced. An
// empty document set is a valid, successful publish of an empty collection.
func (p *Publisher) Replace(ctx context.Context, schema catalog.Schema, docs []catalog.Document) (*PublishResult, error) {
	if err := p.engine.DeleteCollection(ctx, schema.Name); err != nil && !IsNotFound(err) {
		p.log.Warn("Failed to delete existing collection, attempting create anyway",
			logger.String("collection", schema.Name),
			logger.Error(err),
		)
	}

	if err := p.engine.CreateCollection(ctx, schema); err != nil {
		return nil, fmt.Errorf("create %s: %w", schema.Name, err)
	}

	if len(docs) == 0 {
		p.log.Warn("No documents to import", logger.String("collection", schema.Name))
		return &PublishResult{}, nil
	}

	imports, err := p.engine.ImportDocuments(ctx, schema.Name, docs)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", schema.Name, err)
	}

	result := &PublishResult{}
	for _, r := range imports {
		if r.Success {
			continue
		}
		result.Failed++
		msg := fmt.Sprintf("failed to index document: %s", r.Error)
		result.Errors = append(result.Errors, msg)
		p.log.Warn("Document rejected by engine",
			logger.String("collection", schema.Name),
			logger.String("reason", r.Error),
		)
	}
	result.Indexed = len(docs) - result.Failed

	p.log.Info("Collection replaced",
		logger.String("collection", schema.Name),
		logger.Int("indexed", result.Indexed),
		logger.Int("failed", result.Failed),
	)
	return result, nil
}

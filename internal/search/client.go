// Package search wraps the Typesense client behind the narrow surface the
// sync pipeline and query gateway need: collection lifecycle, bulk import,
// single-collection search, and federated multi-collection search.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/goodphonefoundation/thecloudsucks/internal/catalog"
)

const healthTimeout = 2 * time.Second

// Client is a thin wrapper around the Typesense Go client.
type Client struct {
	ts *typesense.Client
}

// NewClient creates a search engine client.
func NewClient(serverURL, apiKey string, connectionTimeout time.Duration) *Client {
	return &Client{
		ts: typesense.NewClient(
			typesense.WithServer(serverURL),
			typesense.WithAPIKey(apiKey),
			typesense.WithConnectionTimeout(connectionTimeout),
		),
	}
}

// DeleteCollection removes a collection. A missing collection reports
// IsNotFound(err) == true so callers can treat the delete as idempotent.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	if _, err := c.ts.Collection(name).Delete(ctx); err != nil {
		return fmt.Errorf("delete collection %s: %w", name, err)
	}
	return nil
}

// CreateCollection creates a collection from a catalog schema.
func (c *Client) CreateCollection(ctx context.Context, schema catalog.Schema) error {
	if _, err := c.ts.Collections().Create(ctx, collectionSchema(schema)); err != nil {
		return fmt.Errorf("create collection %s: %w", schema.Name, err)
	}
	return nil
}

// ImportResult is the per-document outcome of a bulk import.
type ImportResult struct {
	Success bool
	Error   string
}

// ImportDocuments bulk-loads documents with insert-only semantics. Every
// document is attempted; failures come back in the per-document results,
// not as an error.
func (c *Client) ImportDocuments(ctx context.Context, name string, docs []catalog.Document) ([]ImportResult, error) {
	payload := make([]any, len(docs))
	for i, doc := range docs {
		payload[i] = doc
	}

	responses, err := c.ts.Collection(name).Documents().Import(ctx, payload, &api.ImportDocumentsParams{
		Action: pointer.String("create"),
	})
	if err != nil {
		return nil, fmt.Errorf("import into %s: %w", name, err)
	}

	results := make([]ImportResult, 0, len(responses))
	for _, r := range responses {
		results = append(results, ImportResult{Success: r.Success, Error: r.Error})
	}
	return results, nil
}

// Query is a single-collection search request in engine terms.
type Query struct {
	Text     string
	QueryBy  string
	FilterBy string
	SortBy   string
	Page     int
	PerPage  int
}

// Result is a search response unwrapped from the engine's hit envelope.
type Result struct {
	Hits  []map[string]any
	Found int
	Page  int
}

// Search runs a single-collection query.
func (c *Client) Search(ctx context.Context, collection string, q Query) (*Result, error) {
	params := &api.SearchCollectionParams{
		Q:       pointer.String(q.Text),
		QueryBy: pointer.String(q.QueryBy),
		Page:    pointer.Int(q.Page),
		PerPage: pointer.Int(q.PerPage),
	}
	if q.FilterBy != "" {
		params.FilterBy = pointer.String(q.FilterBy)
	}
	if q.SortBy != "" {
		params.SortBy = pointer.String(q.SortBy)
	}

	res, err := c.ts.Collection(collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", collection, err)
	}

	out := &Result{Hits: unwrapHits(res.Hits), Page: q.Page}
	if res.Found != nil {
		out.Found = *res.Found
	}
	if res.Page != nil {
		out.Page = *res.Page
	}
	return out, nil
}

// FederatedQuery targets one collection inside a multi-search request.
type FederatedQuery struct {
	Collection string
	Query
}

// MultiSearch issues one federated request covering every query; the engine
// fans out internally and the combined response preserves query order.
func (c *Client) MultiSearch(ctx context.Context, queries []FederatedQuery) ([]Result, error) {
	searches := make([]api.MultiSearchCollectionParameters, 0, len(queries))
	for _, q := range queries {
		params := api.MultiSearchCollectionParameters{
			Collection: q.Collection,
			Q:          pointer.String(q.Text),
			QueryBy:    pointer.String(q.QueryBy),
			PerPage:    pointer.Int(q.PerPage),
		}
		if q.SortBy != "" {
			params.SortBy = pointer.String(q.SortBy)
		}
		if q.FilterBy != "" {
			params.FilterBy = pointer.String(q.FilterBy)
		}
		searches = append(searches, params)
	}

	res, err := c.ts.MultiSearch.Perform(ctx, &api.MultiSearchParams{}, api.MultiSearchSearchesParameter{
		Searches: searches,
	})
	if err != nil {
		return nil, fmt.Errorf("multi search: %w", err)
	}

	results := make([]Result, 0, len(res.Results))
	for _, item := range res.Results {
		r := Result{Hits: unwrapHits(item.Hits)}
		if item.Found != nil {
			r.Found = *item.Found
		}
		results = append(results, r)
	}
	return results, nil
}

// Health reports whether the engine is reachable and healthy.
func (c *Client) Health(ctx context.Context) error {
	ok, err := c.ts.Health(ctx, healthTimeout)
	if err != nil {
		return fmt.Errorf("typesense health: %w", err)
	}
	if !ok {
		return errors.New("typesense reports unhealthy")
	}
	return nil
}

func unwrapHits(hits *[]api.SearchResultHit) []map[string]any {
	if hits == nil {
		return []map[string]any{}
	}
	out := make([]map[string]any, 0, len(*hits))
	for _, hit := range *hits {
		if hit.Document != nil {
			out = append(out, *hit.Document)
		}
	}
	return out
}

func collectionSchema(schema catalog.Schema) *api.CollectionSchema {
	fields := make([]api.Field, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		field := api.Field{
			Name: f.Name,
			Type: string(f.Type),
		}
		if f.Optional {
			field.Optional = pointer.True()
		}
		if f.Facet {
			field.Facet = pointer.True()
		}
		fields = append(fields, field)
	}

	out := &api.CollectionSchema{
		Name:   schema.Name,
		Fields: fields,
	}
	if schema.DefaultSortingField != "" {
		out.DefaultSortingField = pointer.String(schema.DefaultSortingField)
	}
	return out
}

// IsNotFound reports whether err is the engine's 404 (missing collection).
func IsNotFound(err error) bool {
	var httpErr *typesense.HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound
}

// IsUnavailable reports whether err should degrade to an empty result at
// the query gateway: the engine is unreachable (transport error) or the
// requested collection does not exist. Engine-side request errors (bad
// query, schema conflict) are not "unavailable", and neither is a request
// the caller itself cancelled.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var httpErr *typesense.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status == http.StatusNotFound || httpErr.Status == http.StatusServiceUnavailable
	}
	return true
}

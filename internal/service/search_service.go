// Package service implements the query gateway: it translates user-facing
// search requests into engine queries and shapes the engine's responses.
package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/goodphonefoundation/thecloudsucks/internal/logger"
	"github.com/goodphonefoundation/thecloudsucks/internal/search"
)

const (
	defaultPage        = 1
	defaultPerPage     = 20
	defaultGlobalLimit = 5
	minGlobalQueryLen  = 2

	carrierQueryBy  = "name,short_description,parent_company"
	serviceQueryBy  = "name,short_description"
	hardwareQueryBy = "name,short_description,manufacturer"

	unavailableCarriersMsg = "Search service unavailable. Please configure Typesense."
	unavailableGlobalMsg   = "Search service unavailable"
)

// Engine is the query surface of the search engine. *search.Client
// satisfies it; tests substitute a fake.
type Engine interface {
	Search(ctx context.Context, collection string, q search.Query) (*search.Result, error)
	MultiSearch(ctx context.Context, queries []search.FederatedQuery) ([]search.Result, error)
	Health(ctx context.Context) error
}

// SearchService answers the public search endpoints.
type SearchService struct {
	engine      Engine
	pageSize    int
	globalLimit int
	log         logger.Logger
}

// NewSearchService creates a query gateway service. pageSize and
// globalLimit set the per-request defaults; values below 1 fall back to
// the built-in defaults.
func NewSearchService(engine Engine, pageSize, globalLimit int, log logger.Logger) *SearchService {
	if pageSize < 1 {
		pageSize = defaultPerPage
	}
	if globalLimit < 1 {
		globalLimit = defaultGlobalLimit
	}
	return &SearchService{engine: engine, pageSize: pageSize, globalLimit: globalLimit, log: log}
}

// CarrierSearchRequest carries the carrier endpoint's query parameters.
type CarrierSearchRequest struct {
	Query            string
	Page             int
	PerPage          int
	Category         string
	MVNOOnly         bool
	ESIMSupport      bool
	FiveG            bool
	PrepaidAnonymous bool
	NoContract       bool
	SortBy           string
}

// CarrierSearchResponse is the carrier endpoint's payload. When the engine
// is unavailable it is returned well-formed and empty with Error set.
type CarrierSearchResponse struct {
	Hits       []map[string]any `json:"hits"`
	Found      int              `json:"found"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	Error      string           `json:"error,omitempty"`
}

// CarrierSearch translates the request into an engine query against the
// carriers collection. Engine unavailability degrades to an empty result
// with an advisory message; any other engine failure propagates.
func (s *SearchService) CarrierSearch(ctx context.Context, req *CarrierSearchRequest) (*CarrierSearchResponse, error) {
	start := time.Now()
	s.applyCarrierDefaults(req)

	q := search.Query{
		Text:     req.Query,
		QueryBy:  carrierQueryBy,
		FilterBy: carrierFilter(req),
		SortBy:   req.SortBy,
		Page:     req.Page,
		PerPage:  req.PerPage,
	}

	res, err := s.engine.Search(ctx, "carriers", q)
	if err != nil {
		if search.IsUnavailable(err) {
			s.log.Warn("Search engine unavailable", logger.Error(err))
			return &CarrierSearchResponse{
				Hits:       []map[string]any{},
				Page:       defaultPage,
				TotalPages: 0,
				Error:      unavailableCarriersMsg,
			}, nil
		}
		return nil, err
	}

	s.log.Debug("Carrier search completed",
		logger.String("query", req.Query),
		logger.Int("found", res.Found),
		logger.Duration("took", time.Since(start)),
	)

	return &CarrierSearchResponse{
		Hits:       res.Hits,
		Found:      res.Found,
		Page:       res.Page,
		TotalPages: totalPages(res.Found, req.PerPage),
	}, nil
}

func (s *SearchService) applyCarrierDefaults(req *CarrierSearchRequest) {
	if strings.TrimSpace(req.Query) == "" {
		req.Query = "*"
	}
	if req.Page < 1 {
		req.Page = defaultPage
	}
	if req.PerPage < 1 {
		req.PerPage = s.pageSize
	}
	if req.SortBy == "" {
		req.SortBy = "overall_score:desc"
	}
}

// carrierFilter assembles the engine filter string; active filters are
// combined with logical AND.
func carrierFilter(req *CarrierSearchRequest) string {
	var filters []string
	if req.Category != "" {
		filters = append(filters, "categories:=["+req.Category+"]")
	}
	if req.MVNOOnly {
		filters = append(filters, "mvno_status:=mvno")
	}
	if req.ESIMSupport {
		filters = append(filters, "esim_support:=true")
	}
	if req.FiveG {
		filters = append(filters, "5g_available:=true")
	}
	if req.PrepaidAnonymous {
		filters = append(filters, "prepaid_anonymous:=true")
	}
	if req.NoContract {
		filters = append(filters, "contract_flexibility:=no_contract_required")
	}
	return strings.Join(filters, " && ")
}

// CollectionHits is one collection's slice of a global search.
type CollectionHits struct {
	Collection string           `json:"collection"`
	Hits       []map[string]any `json:"hits"`
	Found      int              `json:"found"`
}

// GlobalSearchResponse is the multi-collection endpoint's payload.
type GlobalSearchResponse struct {
	Results      []map[string]any `json:"results"`
	Total        int              `json:"total"`
	ByCollection []CollectionHits `json:"by_collection,omitempty"`
	Error        string           `json:"error,omitempty"`
}

// globalTargets are the collections covered by global search, each ranked
// by its own primary score field.
var globalTargets = []struct {
	collection string
	queryBy    string
	sortBy     string
}{
	{"carriers", carrierQueryBy, "overall_score:desc"},
	{"services", serviceQueryBy, "score_overall:desc"},
	{"hardware", hardwareQueryBy, "overall_score:desc"},
}

// GlobalSearch fans one federated query out over carriers, services, and
// hardware. Queries shorter than two characters return an empty result
// without contacting the engine.
func (s *SearchService) GlobalSearch(ctx context.Context, query string, limit int) (*GlobalSearchResponse, error) {
	query = strings.TrimSpace(query)
	if len(query) < minGlobalQueryLen {
		return &GlobalSearchResponse{Results: []map[string]any{}, Total: 0}, nil
	}
	if limit < 1 {
		limit = s.globalLimit
	}

	queries := make([]search.FederatedQuery, 0, len(globalTargets))
	for _, target := range globalTargets {
		queries = append(queries, search.FederatedQuery{
			Collection: target.collection,
			Query: search.Query{
				Text:    query,
				QueryBy: target.queryBy,
				SortBy:  target.sortBy,
				PerPage: limit,
			},
		})
	}

	results, err := s.engine.MultiSearch(ctx, queries)
	if err != nil {
		if search.IsUnavailable(err) {
			s.log.Warn("Search engine unavailable", logger.Error(err))
			return &GlobalSearchResponse{
				Results: []map[string]any{},
				Total:   0,
				Error:   unavailableGlobalMsg,
			}, nil
		}
		return nil, err
	}

	response := &GlobalSearchResponse{Results: []map[string]any{}}
	for i, result := range results {
		if i >= len(globalTargets) {
			break
		}
		collection := globalTargets[i].collection
		hits := make([]map[string]any, 0, len(result.Hits))
		for _, hit := range result.Hits {
			tagged := make(map[string]any, len(hit)+2)
			for k, v := range hit {
				tagged[k] = v
			}
			tagged["_collection"] = collection
			tagged["_type"] = strings.TrimSuffix(collection, "s")
			hits = append(hits, tagged)
		}
		response.Results = append(response.Results, hits...)
		response.Total += result.Found
		response.ByCollection = append(response.ByCollection, CollectionHits{
			Collection: collection,
			Hits:       hits,
			Found:      result.Found,
		})
	}
	return response, nil
}

// HealthStatus reports service and dependency health.
type HealthStatus struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Dependencies map[string]string `json:"dependencies"`
}

// HealthCheck checks the engine dependency.
func (s *SearchService) HealthCheck(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:       "healthy",
		Timestamp:    time.Now(),
		Dependencies: make(map[string]string),
	}
	if err := s.engine.Health(ctx); err != nil {
		status.Status = "unhealthy"
		status.Dependencies["typesense"] = "unhealthy: " + err.Error()
	} else {
		status.Dependencies["typesense"] = "healthy"
	}
	return status
}

func totalPages(found, perPage int) int {
	if perPage < 1 {
		return 0
	}
	return int(math.Ceil(float64(found) / float64(perPage)))
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typesense/typesense-go/v2/typesense"

	"github.com/goodphonefoundation/thecloudsucks/internal/logger"
	"github.com/goodphonefoundation/thecloudsucks/internal/search"
)

type fakeEngine struct {
	searchErr  error
	multiErr   error
	healthErr  error
	lastQuery  search.Query
	lastTarget string
	lastMulti  []search.FederatedQuery
	result     *search.Result
	multi      []search.Result
}

func (f *fakeEngine) Search(_ context.Context, collection string, q search.Query) (*search.Result, error) {
	f.lastTarget = collection
	f.lastQuery = q
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.result != nil {
		return f.result, nil
	}
	return &search.Result{Hits: []map[string]any{}, Page: q.Page}, nil
}

func (f *fakeEngine) MultiSearch(_ context.Context, queries []search.FederatedQuery) ([]search.Result, error) {
	f.lastMulti = queries
	if f.multiErr != nil {
		return nil, f.multiErr
	}
	return f.multi, nil
}

func (f *fakeEngine) Health(_ context.Context) error {
	return f.healthErr
}

func unavailableErr() error {
	return &typesense.HTTPError{Status: 503, Body: []byte("not ready")}
}

func TestCarrierSearch_Defaults(t *testing.T) {
	engine := &fakeEngine{}
	svc := NewSearchService(engine, 0, 0, logger.NewNop())

	_, err := svc.CarrierSearch(context.Background(), &CarrierSearchRequest{})
	require.NoError(t, err)

	assert.Equal(t, "carriers", engine.lastTarget)
	assert.Equal(t, "*", engine.lastQuery.Text, "empty query matches everything")
	assert.Equal(t, 1, engine.lastQuery.Page)
	assert.Equal(t, 20, engine.lastQuery.PerPage)
	assert.Equal(t, "name,short_description,parent_company", engine.lastQuery.QueryBy)
	assert.Equal(t, "overall_score:desc", engine.lastQuery.SortBy)
	assert.Empty(t, engine.lastQuery.FilterBy)
}

func TestConfiguredDefaultsFlowThrough(t *testing.T) {
	engine := &fakeEngine{multi: []search.Result{{}, {}, {}}}
	svc := NewSearchService(engine, 30, 8, logger.NewNop())

	_, err := svc.CarrierSearch(context.Background(), &CarrierSearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, 30, engine.lastQuery.PerPage, "configured page size is the per_page default")

	_, err = svc.GlobalSearch(context.Background(), "proton", 0)
	require.NoError(t, err)
	require.Len(t, engine.lastMulti, 3)
	for _, fq := range engine.lastMulti {
		assert.Equal(t, 8, fq.Query.PerPage, "configured global limit is the limit default")
	}
}

func TestCarrierSearch_FilterAssembly(t *testing.T) {
	engine := &fakeEngine{}
	svc := NewSearchService(engine, 0, 0, logger.NewNop())

	_, err := svc.CarrierSearch(context.Background(), &CarrierSearchRequest{
		Query:            "mint",
		Category:         "MVNO",
		MVNOOnly:         true,
		ESIMSupport:      true,
		FiveG:            true,
		PrepaidAnonymous: true,
		NoContract:       true,
	})
	require.NoError(t, err)

	want := "categories:=[MVNO] && mvno_status:=mvno && esim_support:=true" +
		" && 5g_available:=true && prepaid_anonymous:=true" +
		" && contract_flexibility:=no_contract_required"
	assert.Equal(t, want, engine.lastQuery.FilterBy)
}

func TestCarrierSearch_SingleFilterHasNoSeparator(t *testing.T) {
	engine := &fakeEngine{}
	svc := NewSearchService(engine, 0, 0, logger.NewNop())

	_, err := svc.CarrierSearch(context.Background(), &CarrierSearchRequest{ESIMSupport: true})
	require.NoError(t, err)
	assert.Equal(t, "esim_support:=true", engine.lastQuery.FilterBy)
}

func TestCarrierSearch_Pagination(t *testing.T) {
	engine := &fakeEngine{result: &search.Result{
		Hits:  []map[string]any{{"id": "c1"}},
		Found: 41,
		Page:  3,
	}}
	svc := NewSearchService(engine, 0, 0, logger.NewNop())

	resp, err := svc.CarrierSearch(context.Background(), &CarrierSearchRequest{Page: 3, PerPage: 20})
	require.NoError(t, err)

	assert.Equal(t, 41, resp.Found)
	assert.Equal(t, 3, resp.Page)
	assert.Equal(t, 3, resp.TotalPages, "41 results at 20 per page span 3 pages")
}

func TestCarrierSearch_EngineUnavailable(t *testing.T) {
	engine := &fakeEngine{searchErr: unavailableErr()}
	svc := NewSearchService(engine, 0, 0, logger.NewNop())

	resp, err := svc.CarrierSearch(context.Background(), &CarrierSearchRequest{Query: "mint"})
	require.NoError(t, err, "unavailability is not an error, it degrades")

	assert.NotNil(t, resp.Hits)
	assert.Empty(t, resp.Hits)
	assert.Equal(t, 0, resp.Found)
	assert.Equal(t, "Search service unavailable. Please configure Typesense.", resp.Error)
}

func TestCarrierSearch_QueryErrorPropagates(t *testing.T) {
	engine := &fakeEngine{searchErr: &typesense.HTTPError{Status: 400, Body: []byte("bad sort")}}
	svc := NewSearchService(engine, 0, 0, logger.NewNop())

	_, err := svc.CarrierSearch(context.Background(), &CarrierSearchRequest{SortBy: "nope:desc"})
	require.Error(t, err)
}

func TestGlobalSearch_ShortQueryShortCircuits(t *testing.T) {
	engine := &fakeEngine{multiErr: errors.New("must not be called")}
	svc := NewSearchService(engine, 0, 0, logger.NewNop())

	for _, q := range []string{"", "a", " a "} {
		resp, err := svc.GlobalSearch(context.Background(), q, 5)
		require.NoError(t, err)
		assert.NotNil(t, resp.Results)
		assert.Empty(t, resp.Results)
		assert.Equal(t, 0, resp.Total)
		assert.Nil(t, engine.lastMulti, "engine must not be contacted for %q", q)
	}
}

func TestGlobalSearch_FederatedQueries(t *testing.T) {
	engine := &fakeEngine{multi: []search.Result{{}, {}, {}}}
	svc := NewSearchService(engine, 0, 0, logger.NewNop())

	_, err := svc.GlobalSearch(context.Background(), "proton", 0)
	require.NoError(t, err)

	require.Len(t, engine.lastMulti, 3)
	assert.Equal(t, "carriers", engine.lastMulti[0].Collection)
	assert.Equal(t, "services", engine.lastMulti[1].Collection)
	assert.Equal(t, "hardware", engine.lastMulti[2].Collection)
	assert.Equal(t, "score_overall:desc", engine.lastMulti[1].Query.SortBy)
	assert.Equal(t, "name,short_description,manufacturer", engine.lastMulti[2].Query.QueryBy)
	for _, fq := range engine.lastMulti {
		assert.Equal(t, "proton", fq.Query.Text)
		assert.Equal(t, 5, fq.Query.PerPage, "zero limit falls back to the default")
	}
}

func TestGlobalSearch_TagsAndAggregates(t *testing.T) {
	engine := &fakeEngine{multi: []search.Result{
		{Hits: []map[string]any{{"id": "c1", "name": "Mint"}}, Found: 12},
		{Hits: []map[string]any{{"id": "s1", "name": "Proton Mail"}}, Found: 7},
		{Hits: []map[string]any{}, Found: 0},
	}}
	svc := NewSearchService(engine, 0, 0, logger.NewNop())

	resp, err := svc.GlobalSearch(context.Background(), "pr", 5)
	require.NoError(t, err)

	assert.Equal(t, 19, resp.Total)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "carriers", resp.Results[0]["_collection"])
	assert.Equal(t, "carrier", resp.Results[0]["_type"])
	assert.Equal(t, "services", resp.Results[1]["_collection"])
	assert.Equal(t, "service", resp.Results[1]["_type"])

	require.Len(t, resp.ByCollection, 3)
	assert.Equal(t, 12, resp.ByCollection[0].Found)
	assert.Equal(t, 7, resp.ByCollection[1].Found)
	assert.Equal(t, 0, resp.ByCollection[2].Found)
}

func TestGlobalSearch_EngineUnavailable(t *testing.T) {
	engine := &fakeEngine{multiErr: unavailableErr()}
	svc := NewSearchService(engine, 0, 0, logger.NewNop())

	resp, err := svc.GlobalSearch(context.Background(), "proton", 5)
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.Total)
	assert.Equal(t, "Search service unavailable", resp.Error)
}

func TestHealthCheck(t *testing.T) {
	healthy := NewSearchService(&fakeEngine{}, 0, 0, logger.NewNop())
	status := healthy.HealthCheck(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "healthy", status.Dependencies["typesense"])

	down := NewSearchService(&fakeEngine{healthErr: errors.New("refused")}, 0, 0, logger.NewNop())
	status = down.HealthCheck(context.Background())
	assert.Equal(t, "unhealthy", status.Status)
	assert.Contains(t, status.Dependencies["typesense"], "refused")
}

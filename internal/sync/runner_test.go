package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodphonefoundation/thecloudsucks/internal/catalog"
	"github.com/goodphonefoundation/thecloudsucks/internal/directus"
	"github.com/goodphonefoundation/thecloudsucks/internal/logger"
	"github.com/goodphonefoundation/thecloudsucks/internal/search"
)

type fakeSource struct {
	records map[string][]map[string]any
	errs    map[string]error
	order   []string
}

func (f *fakeSource) Items(_ context.Context, q directus.ItemsQuery) ([]map[string]any, error) {
	f.order = append(f.order, q.Collection)
	if err := f.errs[q.Collection]; err != nil {
		return nil, err
	}
	return f.records[q.Collection], nil
}

type fakePublisher struct {
	err       error
	perDocErr map[string]string // document id -> import error
	published map[string][]catalog.Document
}

func (f *fakePublisher) Replace(_ context.Context, schema catalog.Schema, docs []catalog.Document) (*search.PublishResult, error) {
	if f.published == nil {
		f.published = make(map[string][]catalog.Document)
	}
	f.published[schema.Name] = docs
	if f.err != nil {
		return nil, f.err
	}
	result := &search.PublishResult{}
	for _, doc := range docs {
		id, _ := doc["id"].(string)
		if msg, bad := f.perDocErr[id]; bad {
			result.Failed++
			result.Errors = append(result.Errors, msg)
		} else {
			result.Indexed++
		}
	}
	return result, nil
}

func carrierRecord(id, name string, score any) map[string]any {
	r := map[string]any{"id": id, "name": name, "slug": name}
	if score != nil {
		r["overall_score"] = score
	}
	return r
}

func TestSyncCategory_CountsAndScoreDefault(t *testing.T) {
	source := &fakeSource{records: map[string][]map[string]any{
		"carriers": {
			carrierRecord("c1", "Mint", float64(4)),
			carrierRecord("c2", "Calyx", float64(5)),
			carrierRecord("c3", "NoScore", nil),
		},
	}}
	publisher := &fakePublisher{}
	runner := NewRunner(source, publisher, logger.NewNop())

	cat, err := catalog.Get("carriers")
	require.NoError(t, err)

	result := runner.SyncCategory(context.Background(), cat)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Fetched)
	assert.Equal(t, 3, result.Indexed)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Errors)

	docs := publisher.published["carriers"]
	require.Len(t, docs, 3)
	assert.Equal(t, 0, docs[2]["overall_score"], "missing score must be stored as 0")
}

func TestSyncCategory_FetchErrorIsTerminal(t *testing.T) {
	source := &fakeSource{errs: map[string]error{"carriers": errors.New("directus unreachable")}}
	publisher := &fakePublisher{}
	runner := NewRunner(source, publisher, logger.NewNop())

	cat, _ := catalog.Get("carriers")
	result := runner.SyncCategory(context.Background(), cat)

	assert.False(t, result.Success)
	assert.Equal(t, 0, result.Fetched)
	assert.Equal(t, 0, result.Indexed)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "directus unreachable")
	assert.Empty(t, publisher.published, "publish must not run after a fetch error")
}

func TestSyncCategory_PublishErrorIsTerminal(t *testing.T) {
	source := &fakeSource{records: map[string][]map[string]any{
		"carriers": {carrierRecord("c1", "Mint", float64(4))},
	}}
	publisher := &fakePublisher{err: errors.New("create collection failed")}
	runner := NewRunner(source, publisher, logger.NewNop())

	cat, _ := catalog.Get("carriers")
	result := runner.SyncCategory(context.Background(), cat)

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.Fetched)
	assert.Equal(t, 0, result.Indexed)
	require.Len(t, result.Errors, 1)
}

func TestSyncCategory_PartialDocumentFailures(t *testing.T) {
	source := &fakeSource{records: map[string][]map[string]any{
		"carriers": {
			carrierRecord("c1", "Mint", float64(4)),
			carrierRecord("c2", "Calyx", float64(5)),
		},
	}}
	publisher := &fakePublisher{perDocErr: map[string]string{"c2": "id collision"}}
	runner := NewRunner(source, publisher, logger.NewNop())

	cat, _ := catalog.Get("carriers")
	result := runner.SyncCategory(context.Background(), cat)

	assert.False(t, result.Success, "any failed document makes the category unsuccessful")
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 1, result.Indexed)
	assert.Equal(t, 1, result.Failed)
}

func TestSyncCategory_EmptySourceIsSuccess(t *testing.T) {
	source := &fakeSource{}
	publisher := &fakePublisher{}
	runner := NewRunner(source, publisher, logger.NewNop())

	cat, _ := catalog.Get("posts")
	result := runner.SyncCategory(context.Background(), cat)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.Fetched)
	assert.Equal(t, 0, result.Indexed)
	assert.Equal(t, 0, result.Failed)
}

func TestSyncAll_SequentialAndIsolated(t *testing.T) {
	source := &fakeSource{
		errs: map[string]error{"carriers": errors.New("boom")},
		records: map[string][]map[string]any{
			"services": {{"id": "s1", "name": "Proton", "slug": "proton"}},
		},
	}
	publisher := &fakePublisher{}
	runner := NewRunner(source, publisher, logger.NewNop())

	summary, err := runner.SyncAll(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, len(catalog.Names()), summary.Collections)
	assert.False(t, summary.Success)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, len(catalog.Names())-1, summary.Succeeded)

	// Fetches happen in registration order, one at a time; a failing
	// category does not stop the ones after it.
	wantOrder := []string{
		"carriers", "services", "hardware_items", "operating_systems",
		"posts", "help_articles", "selfhosted_alternatives",
	}
	assert.Equal(t, wantOrder, source.order)
	assert.Equal(t, 1, summary.TotalIndexed)
}

func TestSyncAll_Subset(t *testing.T) {
	source := &fakeSource{records: map[string][]map[string]any{
		"carriers": {carrierRecord("c1", "Mint", float64(4))},
	}}
	publisher := &fakePublisher{}
	runner := NewRunner(source, publisher, logger.NewNop())

	summary, err := runner.SyncAll(context.Background(), []string{"carriers"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Collections)
	assert.Equal(t, []string{"carriers"}, source.order)
}

func TestSyncAll_UnknownSubsetName(t *testing.T) {
	runner := NewRunner(&fakeSource{}, &fakePublisher{}, logger.NewNop())
	_, err := runner.SyncAll(context.Background(), []string{"widgets"})
	require.Error(t, err)
}

func TestSyncAll_IdempotentCounts(t *testing.T) {
	source := &fakeSource{records: map[string][]map[string]any{
		"carriers": {
			carrierRecord("c1", "Mint", float64(4)),
			carrierRecord("c2", "Calyx", float64(5)),
		},
	}}
	publisher := &fakePublisher{}
	runner := NewRunner(source, publisher, logger.NewNop())

	first, err := runner.SyncAll(context.Background(), []string{"carriers"})
	require.NoError(t, err)
	second, err := runner.SyncAll(context.Background(), []string{"carriers"})
	require.NoError(t, err)

	assert.Equal(t, first.TotalIndexed, second.TotalIndexed)
	assert.Equal(t, first.TotalFailed, second.TotalFailed)
	assert.Equal(t, first.Results[0].Fetched, second.Results[0].Fetched)

	// The rebuild replaces the collection wholesale, so the second run
	// publishes exactly the same document set, not an appended one.
	assert.Len(t, publisher.published["carriers"], 2)
}

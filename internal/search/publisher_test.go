package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/typesense/typesense-go/v2/typesense"

	"github.com/goodphonefoundation/thecloudsucks/internal/catalog"
	"github.com/goodphonefoundation/thecloudsucks/internal/logger"
)

type fakeEngine struct {
	deleteErr error
	createErr error
	importErr error
	imports   []ImportResult

	deleted []string
	created []string
	docs    []catalog.Document
}

func (f *fakeEngine) DeleteCollection(_ context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return f.deleteErr
}

func (f *fakeEngine) CreateCollection(_ context.Context, schema catalog.Schema) error {
	f.created = append(f.created, schema.Name)
	return f.createErr
}

func (f *fakeEngine) ImportDocuments(_ context.Context, _ string, docs []catalog.Document) ([]ImportResult, error) {
	f.docs = docs
	if f.importErr != nil {
		return nil, f.importErr
	}
	return f.imports, nil
}

func testSchema() catalog.Schema {
	c, _ := catalog.Get("carriers")
	return c.Schema
}

func docs(n int) []catalog.Document {
	out := make([]catalog.Document, n)
	for i := range out {
		out[i] = catalog.Document{"id": string(rune('a' + i))}
	}
	return out
}

func notFoundErr() error {
	return &typesense.HTTPError{Status: http.StatusNotFound, Body: []byte("Not Found")}
}

func TestReplace_MissingCollectionIsIdempotentDelete(t *testing.T) {
	engine := &fakeEngine{
		deleteErr: notFoundErr(),
		imports:   []ImportResult{{Success: true}, {Success: true}},
	}
	p := NewPublisher(engine, logger.NewNop())

	result, err := p.Replace(context.Background(), testSchema(), docs(2))
	if err != nil {
		t.Fatalf("Replace() unexpected error: %v", err)
	}
	if result.Indexed != 2 || result.Failed != 0 {
		t.Errorf("result = %+v, want indexed=2 failed=0", result)
	}
	if len(engine.created) != 1 {
		t.Errorf("create not attempted after idempotent delete")
	}
}

func TestReplace_DeleteFailureStillAttemptsCreate(t *testing.T) {
	engine := &fakeEngine{
		deleteErr: errors.New("engine timeout"),
		imports:   []ImportResult{{Success: true}},
	}
	p := NewPublisher(engine, logger.NewNop())

	if _, err := p.Replace(context.Background(), testSchema(), docs(1)); err != nil {
		t.Fatalf("Replace() unexpected error: %v", err)
	}
	if len(engine.created) != 1 {
		t.Error("create should be attempted even when delete fails")
	}
}

func TestReplace_CreateFailureSurfaces(t *testing.T) {
	engine := &fakeEngine{createErr: errors.New("collection already exists")}
	p := NewPublisher(engine, logger.NewNop())

	if _, err := p.Replace(context.Background(), testSchema(), docs(1)); err == nil {
		t.Fatal("Replace() should fail when create fails")
	}
	if engine.docs != nil {
		t.Error("import should not run after a failed create")
	}
}

func TestReplace_EmptyDocsIsSuccess(t *testing.T) {
	engine := &fakeEngine{}
	p := NewPublisher(engine, logger.NewNop())

	result, err := p.Replace(context.Background(), testSchema(), nil)
	if err != nil {
		t.Fatalf("Replace() unexpected error: %v", err)
	}
	if result.Indexed != 0 || result.Failed != 0 || len(result.Errors) != 0 {
		t.Errorf("empty publish result = %+v, want all zero", result)
	}
	if len(engine.created) != 1 {
		t.Error("collection should still be recreated for an empty category")
	}
	if engine.docs != nil {
		t.Error("no import call expected for zero documents")
	}
}

func TestReplace_PartialImportFailuresCounted(t *testing.T) {
	engine := &fakeEngine{
		imports: []ImportResult{
			{Success: true},
			{Success: false, Error: "id collision"},
			{Success: true},
		},
	}
	p := NewPublisher(engine, logger.NewNop())

	result, err := p.Replace(context.Background(), testSchema(), docs(3))
	if err != nil {
		t.Fatalf("Replace() unexpected error: %v", err)
	}
	if result.Indexed != 2 {
		t.Errorf("indexed = %d, want 2", result.Indexed)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v, want one entry", result.Errors)
	}
}

func TestReplace_ImportConnectivityLossSurfaces(t *testing.T) {
	engine := &fakeEngine{importErr: errors.New("connection reset")}
	p := NewPublisher(engine, logger.NewNop())

	if _, err := p.Replace(context.Background(), testSchema(), docs(1)); err == nil {
		t.Fatal("Replace() should fail on import transport error")
	}
}

func TestIsUnavailable(t *testing.T) {
	if !IsUnavailable(errors.New("dial tcp: connection refused")) {
		t.Error("transport errors should count as unavailable")
	}
	if !IsUnavailable(notFoundErr()) {
		t.Error("missing collection should count as unavailable")
	}
	if IsUnavailable(&typesense.HTTPError{Status: http.StatusBadRequest}) {
		t.Error("bad request is not unavailability")
	}
	if IsUnavailable(nil) {
		t.Error("nil is not unavailable")
	}
	if IsUnavailable(context.Canceled) {
		t.Error("a caller-cancelled request is not unavailability")
	}
	if IsUnavailable(fmt.Errorf("search carriers: %w", context.DeadlineExceeded)) {
		t.Error("a wrapped deadline is not unavailability")
	}
}

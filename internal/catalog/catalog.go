// Package catalog declares, for every searchable content category, the flat
// document schema required by the search engine, the CMS query that yields
// its source records, and the transform that flattens a record into a
// schema-conformant document.
package catalog

import "fmt"

// FieldType enumerates the primitive field types the engine supports.
type FieldType string

const (
	TypeString      FieldType = "string"
	TypeBool        FieldType = "bool"
	TypeInt32       FieldType = "int32"
	TypeInt64       FieldType = "int64"
	TypeStringArray FieldType = "string[]"
)

// Field describes one field of a search collection schema.
type Field struct {
	Name     string
	Type     FieldType
	Optional bool
	Facet    bool
}

// Schema is the flat document shape bound to a search collection.
// Every schema carries a string "id" field.
type Schema struct {
	Name                string
	Fields              []Field
	DefaultSortingField string
}

// Record is a source record as returned by the CMS, keyed by field name.
type Record = map[string]any

// Document is the flattened shape loaded into the search engine.
type Document = map[string]any

// Category binds a schema to its CMS fetch definition and transform.
type Category struct {
	// Name is both the category identifier and the engine collection name.
	Name string
	// Source is the CMS collection the records live in.
	Source string
	// Status is the publication-status value that makes a record visible.
	Status string
	// Fields is the exact CMS field list, including one-hop relation
	// expansions in Directus dot syntax.
	Fields []string
	// Schema is the engine collection schema.
	Schema Schema
	// Transform flattens one source record into one document. It is pure
	// and total: malformed per-record values fall back to zero values.
	Transform func(Record) Document
}

// Registration order is the order full sync runs execute in.
var categories = []*Category{
	&carriers,
	&services,
	&hardware,
	&operatingSystems,
	&posts,
	&helpArticles,
	&selfhostedAlternatives,
}

var byName = func() map[string]*Category {
	m := make(map[string]*Category, len(categories))
	for _, c := range categories {
		m[c.Name] = c
	}
	return m
}()

// Get returns the category with the given name. Unknown names are a
// programmer error surfaced to the caller, not recovered from.
func Get(name string) (*Category, error) {
	c, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown category: %s", name)
	}
	return c, nil
}

// All returns every category in registration order.
func All() []*Category {
	out := make([]*Category, len(categories))
	copy(out, categories)
	return out
}

// Names returns every category name in registration order.
func Names() []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = c.Name
	}
	return out
}

package catalog

var helpArticles = Category{
	Name:   "help_articles",
	Source: "help_articles",
	Status: "published",
	Fields: []string{
		"id",
		"title",
		"slug",
		"summary",
		"content",
		"date_created",
		"help_collection.title",
	},
	Schema: Schema{
		Name: "help_articles",
		Fields: []Field{
			{Name: "id", Type: TypeString},
			{Name: "title", Type: TypeString},
			{Name: "slug", Type: TypeString},
			{Name: "summary", Type: TypeString, Optional: true},
			{Name: "content", Type: TypeString, Optional: true},
			{Name: "collection", Type: TypeString, Optional: true, Facet: true},
			{Name: "date_created", Type: TypeInt64},
		},
		DefaultSortingField: "date_created",
	},
	Transform: func(r Record) Document {
		return Document{
			"id":           idString(r),
			"title":        stringOr(r, "title"),
			"slug":         stringOr(r, "slug"),
			"summary":      stringOr(r, "summary"),
			"content":      stringOr(r, "content"),
			"collection":   relationName(r, "help_collection", "title"),
			"date_created": epochMillis(r, "date_created"),
		}
	},
}

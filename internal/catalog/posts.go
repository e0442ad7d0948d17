package catalog

var posts = Category{
	Name:   "posts",
	Source: "posts",
	Status: "published",
	Fields: []string{
		"id",
		"title",
		"slug",
		"summary",
		"type",
		"date_published",
		"image",
		"category.title",
		"author.name",
	},
	Schema: Schema{
		Name: "posts",
		Fields: []Field{
			{Name: "id", Type: TypeString},
			{Name: "title", Type: TypeString},
			{Name: "slug", Type: TypeString},
			{Name: "summary", Type: TypeString, Optional: true},
			{Name: "type", Type: TypeString, Facet: true},
			{Name: "category", Type: TypeString, Optional: true, Facet: true},
			{Name: "author", Type: TypeString, Optional: true},
			{Name: "date_published", Type: TypeInt64},
			{Name: "image", Type: TypeString, Optional: true},
		},
		DefaultSortingField: "date_published",
	},
	Transform: func(r Record) Document {
		postType := stringOr(r, "type")
		if postType == "" {
			postType = "blog"
		}
		return Document{
			"id":             idString(r),
			"title":          stringOr(r, "title"),
			"slug":           stringOr(r, "slug"),
			"summary":        stringOr(r, "summary"),
			"type":           postType,
			"category":       relationName(r, "category", "title"),
			"author":         relationName(r, "author", "name"),
			"date_published": epochMillis(r, "date_published"),
			"image":          stringOr(r, "image"),
		}
	},
}

package catalog

// Self-hosted alternatives use "active" as their visible status, unlike the
// published/draft workflow the other collections follow.
var selfhostedAlternatives = Category{
	Name:   "selfhosted_alternatives",
	Source: "selfhosted_alternatives",
	Status: "active",
	Fields: []string{
		"id",
		"name",
		"slug",
		"short_description",
		"category",
		"tier",
		"is_open_source",
		"end_to_end_encryption",
		"hosting_modes",
		"deployment_complexity",
		"replaces",
		"date_created",
	},
	Schema: Schema{
		Name: "selfhosted_alternatives",
		Fields: []Field{
			{Name: "id", Type: TypeString},
			{Name: "name", Type: TypeString},
			{Name: "slug", Type: TypeString},
			{Name: "short_description", Type: TypeString, Optional: true},
			{Name: "category", Type: TypeString, Optional: true, Facet: true},
			{Name: "tier", Type: TypeString, Optional: true, Facet: true},
			{Name: "is_open_source", Type: TypeBool, Optional: true, Facet: true},
			{Name: "end_to_end_encryption", Type: TypeString, Optional: true, Facet: true},
			{Name: "hosting_modes", Type: TypeStringArray, Optional: true, Facet: true},
			{Name: "deployment_complexity", Type: TypeString, Optional: true, Facet: true},
			{Name: "replaces", Type: TypeStringArray, Optional: true},
			{Name: "date_created", Type: TypeInt64},
		},
		DefaultSortingField: "date_created",
	},
	Transform: func(r Record) Document {
		return Document{
			"id":                    idString(r),
			"name":                  stringOr(r, "name"),
			"slug":                  stringOr(r, "slug"),
			"short_description":     stringOr(r, "short_description"),
			"category":              stringOr(r, "category"),
			"tier":                  stringOr(r, "tier"),
			"is_open_source":        boolOr(r, "is_open_source"),
			"end_to_end_encryption": stringOr(r, "end_to_end_encryption"),
			"hosting_modes":         stringList(r, "hosting_modes"),
			"deployment_complexity": stringOr(r, "deployment_complexity"),
			"replaces":              stringList(r, "replaces"),
			"date_created":          epochMillis(r, "date_created"),
		}
	},
}

package catalog

var services = Category{
	Name:   "services",
	Source: "services",
	Status: "published",
	Fields: []string{
		"id",
		"name",
		"slug",
		"short_description",
		"service_status",
		"primary_business_model",
		"governance_model",
		"self_hostable",
		"federated",
		"end_to_end_encryption",
		"default_tracking",
		"assessment_tier",
		"scores",
		"website_url",
		"brand_symbol_light",
		"service_categories.service_categories_id.name",
	},
	Schema: Schema{
		Name: "services",
		Fields: []Field{
			{Name: "id", Type: TypeString},
			{Name: "name", Type: TypeString},
			{Name: "slug", Type: TypeString},
			{Name: "short_description", Type: TypeString, Optional: true},
			{Name: "service_status", Type: TypeString, Optional: true, Facet: true},
			{Name: "primary_business_model", Type: TypeString, Optional: true, Facet: true},
			{Name: "governance_model", Type: TypeString, Optional: true, Facet: true},
			{Name: "self_hostable", Type: TypeBool, Optional: true, Facet: true},
			{Name: "federated", Type: TypeBool, Optional: true, Facet: true},
			{Name: "end_to_end_encryption", Type: TypeString, Optional: true, Facet: true},
			{Name: "default_tracking", Type: TypeString, Optional: true, Facet: true},
			{Name: "assessment_tier", Type: TypeString, Optional: true, Facet: true},
			{Name: "categories", Type: TypeStringArray, Optional: true, Facet: true},
			{Name: "score_overall", Type: TypeInt32},
			{Name: "website_url", Type: TypeString, Optional: true},
			{Name: "brand_symbol_light", Type: TypeString, Optional: true},
		},
		DefaultSortingField: "score_overall",
	},
	Transform: func(r Record) Document {
		return Document{
			"id":                     idString(r),
			"name":                   stringOr(r, "name"),
			"slug":                   stringOr(r, "slug"),
			"short_description":      stringOr(r, "short_description"),
			"service_status":         stringOr(r, "service_status"),
			"primary_business_model": stringOr(r, "primary_business_model"),
			"governance_model":       stringOr(r, "governance_model"),
			"self_hostable":          boolOr(r, "self_hostable"),
			"federated":              boolOr(r, "federated"),
			"end_to_end_encryption":  stringOr(r, "end_to_end_encryption"),
			"default_tracking":       stringOr(r, "default_tracking"),
			"assessment_tier":        stringOr(r, "assessment_tier"),
			"categories":             junctionNames(r, "service_categories", "service_categories_id", "name"),
			"score_overall":          overallScore(r, "scores"),
			"website_url":            stringOr(r, "website_url"),
			"brand_symbol_light":     stringOr(r, "brand_symbol_light"),
		}
	},
}

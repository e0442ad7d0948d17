package catalog

var carriers = Category{
	Name:   "carriers",
	Source: "carriers",
	Status: "published",
	Fields: []string{
		"id",
		"name",
		"slug",
		"short_description",
		"parent_company",
		"network_type",
		"mvno_status",
		"esim_support",
		"5g_available",
		"prepaid_anonymous",
		"contract_flexibility",
		"country_of_operation",
		"privacy_score",
		"overall_score",
		"website_url",
		"brand_symbol_light",
		"categories.carrier_categories_id.name",
	},
	Schema: Schema{
		Name: "carriers",
		Fields: []Field{
			{Name: "id", Type: TypeString},
			{Name: "name", Type: TypeString},
			{Name: "slug", Type: TypeString},
			{Name: "short_description", Type: TypeString, Optional: true},
			{Name: "parent_company", Type: TypeString, Optional: true},
			{Name: "network_type", Type: TypeString, Optional: true, Facet: true},
			{Name: "mvno_status", Type: TypeString, Optional: true, Facet: true},
			{Name: "esim_support", Type: TypeBool, Optional: true, Facet: true},
			{Name: "5g_available", Type: TypeBool, Optional: true, Facet: true},
			{Name: "prepaid_anonymous", Type: TypeBool, Optional: true, Facet: true},
			{Name: "contract_flexibility", Type: TypeString, Optional: true, Facet: true},
			{Name: "country_of_operation", Type: TypeString, Optional: true, Facet: true},
			{Name: "categories", Type: TypeStringArray, Optional: true, Facet: true},
			{Name: "privacy_score", Type: TypeInt32, Optional: true},
			{Name: "overall_score", Type: TypeInt32},
			{Name: "website_url", Type: TypeString, Optional: true},
			{Name: "brand_symbol_light", Type: TypeString, Optional: true},
		},
		DefaultSortingField: "overall_score",
	},
	Transform: func(r Record) Document {
		return Document{
			"id":                   idString(r),
			"name":                 stringOr(r, "name"),
			"slug":                 stringOr(r, "slug"),
			"short_description":    stringOr(r, "short_description"),
			"parent_company":       stringOr(r, "parent_company"),
			"network_type":         stringOr(r, "network_type"),
			"mvno_status":          stringOr(r, "mvno_status"),
			"esim_support":         boolOr(r, "esim_support"),
			"5g_available":         boolOr(r, "5g_available"),
			"prepaid_anonymous":    boolOr(r, "prepaid_anonymous"),
			"contract_flexibility": stringOr(r, "contract_flexibility"),
			"country_of_operation": stringOr(r, "country_of_operation"),
			"categories":           junctionNames(r, "categories", "carrier_categories_id", "name"),
			"privacy_score":        intOr(r, "privacy_score"),
			"overall_score":        intOr(r, "overall_score"),
			"website_url":          stringOr(r, "website_url"),
			"brand_symbol_light":   stringOr(r, "brand_symbol_light"),
		}
	},
}

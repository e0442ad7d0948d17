package catalog

var operatingSystems = Category{
	Name:   "operating_systems",
	Source: "operating_systems",
	Status: "published",
	Fields: []string{
		"id",
		"name",
		"slug",
		"tagline",
		"description",
		"tier",
		"is_open_source",
		"telemetry_default",
		"bootloader_unlockable",
		"root_access_available",
		"date_created",
	},
	Schema: Schema{
		Name: "operating_systems",
		Fields: []Field{
			{Name: "id", Type: TypeString},
			{Name: "name", Type: TypeString},
			{Name: "slug", Type: TypeString},
			{Name: "tagline", Type: TypeString, Optional: true},
			{Name: "description", Type: TypeString, Optional: true},
			{Name: "tier", Type: TypeString, Optional: true, Facet: true},
			{Name: "is_open_source", Type: TypeBool, Optional: true, Facet: true},
			{Name: "telemetry_default", Type: TypeString, Optional: true, Facet: true},
			{Name: "bootloader_unlockable", Type: TypeString, Optional: true, Facet: true},
			{Name: "root_access_available", Type: TypeBool, Optional: true, Facet: true},
			{Name: "date_created", Type: TypeInt64},
		},
		DefaultSortingField: "date_created",
	},
	Transform: func(r Record) Document {
		return Document{
			"id":                    idString(r),
			"name":                  stringOr(r, "name"),
			"slug":                  stringOr(r, "slug"),
			"tagline":               stringOr(r, "tagline"),
			"description":           stringOr(r, "description"),
			"tier":                  stringOr(r, "tier"),
			"is_open_source":        boolOr(r, "is_open_source"),
			"telemetry_default":     stringOr(r, "telemetry_default"),
			"bootloader_unlockable": stringOr(r, "bootloader_unlockable"),
			"root_access_available": boolOr(r, "root_access_available"),
			"date_created":          epochMillis(r, "date_created"),
		}
	},
}

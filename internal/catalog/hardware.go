package catalog

var hardware = Category{
	Name:   "hardware",
	Source: "hardware_items",
	Status: "published",
	Fields: []string{
		"id",
		"name",
		"slug",
		"short_description",
		"manufacturer",
		"hardware_type",
		"repairability",
		"bootloader_unlockable",
		"tier",
		"scores",
		"brand_symbol_light",
	},
	Schema: Schema{
		Name: "hardware",
		Fields: []Field{
			{Name: "id", Type: TypeString},
			{Name: "name", Type: TypeString},
			{Name: "slug", Type: TypeString},
			{Name: "short_description", Type: TypeString, Optional: true},
			{Name: "manufacturer", Type: TypeString, Optional: true},
			{Name: "hardware_type", Type: TypeString, Optional: true, Facet: true},
			{Name: "repairability", Type: TypeString, Optional: true, Facet: true},
			{Name: "bootloader_unlockable", Type: TypeString, Optional: true, Facet: true},
			{Name: "tier", Type: TypeString, Optional: true, Facet: true},
			{Name: "overall_score", Type: TypeInt32},
			{Name: "brand_symbol_light", Type: TypeString, Optional: true},
		},
		DefaultSortingField: "overall_score",
	},
	Transform: func(r Record) Document {
		return Document{
			"id":                    idString(r),
			"name":                  stringOr(r, "name"),
			"slug":                  stringOr(r, "slug"),
			"short_description":     stringOr(r, "short_description"),
			"manufacturer":          stringOr(r, "manufacturer"),
			"hardware_type":         stringOr(r, "hardware_type"),
			"repairability":         stringOr(r, "repairability"),
			"bootloader_unlockable": stringOr(r, "bootloader_unlockable"),
			"tier":                  stringOr(r, "tier"),
			"overall_score":         overallScore(r, "scores"),
			"brand_symbol_light":    stringOr(r, "brand_symbol_light"),
		}
	},
}

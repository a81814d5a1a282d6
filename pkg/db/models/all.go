package models

// All lists every persisted model in dependency order. The product and
// attribute value join table is created through Product's many2many tag.
func All() []any {
	return []any{
		&Region{},
		&RentalPeriod{},
		&Attribute{},
		&AttributeValue{},
		&Product{},
		&ProductPricing{},
		&RentalTransaction{},
	}
}

package domain

// Fields names the index fields the query compiler and facet decoder work with.
type Fields struct {
	ID            string
	Name          string
	Brand         string
	BrandText     string
	NameShingles  string
	BrandShingles string
	Price         string

	Variants         string
	VariantSize      string
	VariantSizeText  string
	VariantColor     string
	VariantColorText string
}

// FacetNames are the keys facets are reported under in a search response.
type FacetNames struct {
	Brand        string
	Price        string
	VariantSize  string
	VariantColor string
}

// Analyzers names the engine analyzers used to tokenize query text.
type Analyzers struct {
	Word    string
	Shingle string
}

// DefaultFields returns the field layout of the product index.
func DefaultFields() Fields {
	return Fields{
		ID:               "_id",
		Name:             "name",
		Brand:            "brand",
		BrandText:        "brand.text",
		NameShingles:     "name.shingles",
		BrandShingles:    "brand.shingles",
		Price:            "price",
		Variants:         "variants",
		VariantSize:      "variants.size",
		VariantSizeText:  "variants.size.text",
		VariantColor:     "variants.color",
		VariantColorText: "variants.color.text",
	}
}

// DefaultFacetNames returns the facet keys exposed by the API.
func DefaultFacetNames() FacetNames {
	return FacetNames{
		Brand:        "brand",
		Price:        "price",
		VariantSize:  "variant.size",
		VariantColor: "variant.color",
	}
}

// DefaultAnalyzers returns the analyzer names defined in the index settings.
func DefaultAnalyzers() Analyzers {
	return Analyzers{
		Word:    "text_analyzer",
		Shingle: "shingle_analyzer",
	}
}

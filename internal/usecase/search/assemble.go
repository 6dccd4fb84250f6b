package search

import (
	"github.com/kailas-cloud/prodsearch/internal/domain/document"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/result"
)

// idField is the document field the normalized engine id is written to.
const idField = "id"

// Assemble builds the response from one page of hits. Every product carries
// its unquoted engine id under "id"; facets are attached only when there are products.
func Assemble(page *result.Page) result.Result {
	if page == nil {
		return result.Failed()
	}

	products := make([]*document.Document, 0, len(page.Hits))
	for _, h := range page.Hits {
		doc := h.Source
		if doc == nil {
			doc = document.New()
		}
		doc.Set(idField, document.String(result.UnquoteID(h.ID)))
		products = append(products, doc)
	}

	res := result.Result{
		TotalHits: page.Total,
		Products:  products,
		Executed:  true,
	}
	if len(products) > 0 {
		res.Facets = page.Facets
	}
	return res
}

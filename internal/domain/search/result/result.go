// Package result holds search outcomes: raw engine pages and assembled responses.
package result

import (
	"github.com/kailas-cloud/prodsearch/internal/domain/document"
	"github.com/kailas-cloud/prodsearch/internal/domain/facet"
)

// Hit is a single engine hit.
type Hit struct {
	ID     string
	Score  float64
	Source *document.Document
}

// Page is one page of engine hits with decoded facets.
// Facets is nil when the page has no hits.
type Page struct {
	Total  int64
	Hits   []Hit
	Facets facet.Set
}

// Result is the assembled search response.
type Result struct {
	TotalHits int64
	Products  []*document.Document
	Facets    facet.Set

	// Executed is false when the request short-circuited without a query.
	Executed bool
}

// Empty returns the short-circuit result for a request without query text.
func Empty() Result { return Result{} }

// Failed returns the result of an executed search that could not complete.
func Failed() Result {
	return Result{Products: []*document.Document{}, Executed: true}
}

// UnquoteID strips one leading and one trailing double quote when both are present.
func UnquoteID(id string) string {
	if len(id) >= 2 && id[0] == '"' && id[len(id)-1] == '"' {
		return id[1 : len(id)-1]
	}
	return id
}

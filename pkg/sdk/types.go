package prodsearch

import (
	"github.com/kailas-cloud/prodsearch/internal/domain/document"
	"github.com/kailas-cloud/prodsearch/internal/domain/facet"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/result"
	indexinguc "github.com/kailas-cloud/prodsearch/internal/usecase/indexing"
)

// Document is a product with its fields in source order.
type Document = document.Document

// Bucket is one facet value with its product count.
type Bucket = facet.Bucket

// SearchRequest describes one page of a search. Page is zero-based;
// a non-positive Size uses the client's default page size.
type SearchRequest struct {
	QueryText string
	Page      int
	Size      int
}

// SearchResult is one page of products with facets.
// Executed is false when QueryText was empty and no query ran.
type SearchResult struct {
	TotalHits int64
	Products  []*Document
	Facets    map[string][]Bucket
	Executed  bool
}

// CatalogFiles locates the index definition and product data for Reindex.
type CatalogFiles struct {
	Settings string
	Mappings string
	Data     string
}

// ReindexReport summarizes a rebuild.
type ReindexReport struct {
	Index     string
	Processed int
	Failed    int
	Previous  []string
	Deleted   []string
}

func searchResultFromDomain(r result.Result) SearchResult {
	return SearchResult{
		TotalHits: r.TotalHits,
		Products:  r.Products,
		Facets:    r.Facets,
		Executed:  r.Executed,
	}
}

func reindexReportFromDomain(r *indexinguc.Report) ReindexReport {
	return ReindexReport{
		Index:     r.Index,
		Processed: r.Processed,
		Failed:    r.Failed,
		Previous:  r.Previous,
		Deleted:   r.Deleted,
	}
}

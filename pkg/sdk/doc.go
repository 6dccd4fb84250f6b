// Package prodsearch provides an embeddable Go client for faceted product
// search over an Elasticsearch index alias.
//
// The client runs the same query compiler and facet decoder as the HTTP
// service, in process:
//
//	client, _ := prodsearch.New(ctx,
//	    prodsearch.WithElastic("http://localhost:9200"),
//	    prodsearch.WithIndex("products"),
//	)
//	defer client.Close()
//
//	res := client.Search(ctx, prodsearch.SearchRequest{QueryText: "blue jeans", Size: 20})
//	for _, b := range res.Facets["brand"] {
//	    fmt.Println(b.Value, b.Count)
//	}
//
// Reindex rebuilds the dated index behind the alias from local files:
//
//	rep, err := client.Reindex(ctx, prodsearch.CatalogFiles{
//	    Settings: "settings.json",
//	    Mappings: "mappings.json",
//	    Data:     "products.json",
//	})
package prodsearch

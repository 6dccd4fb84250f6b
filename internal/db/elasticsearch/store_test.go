package elasticsearch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/kailas-cloud/prodsearch/internal/db"
	"github.com/kailas-cloud/prodsearch/internal/domain/aggregation"
	"github.com/kailas-cloud/prodsearch/internal/domain/query"
)

// --- client.go tests ---

func TestNewStore_NoURLs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty urls")
	}
}

func TestPing(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{"green", http.StatusOK, `{"cluster_name":"c","status":"green"}`, false},
		{"yellow", http.StatusOK, `{"cluster_name":"c","status":"yellow"}`, false},
		{"red", http.StatusOK, `{"cluster_name":"c","status":"red"}`, true},
		{"unavailable", http.StatusServiceUnavailable, `{"error":"down"}`, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/_cluster/health" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				writeJSON(w, tc.status, tc.body)
			})
			err := s.Ping(context.Background())
			if (err != nil) != tc.wantErr {
				t.Fatalf("Ping() err = %v, wantErr %v", err, tc.wantErr)
			}
			var dbErr *db.Error
			if err != nil && (!errors.As(err, &dbErr) || dbErr.Op != db.OpPing) {
				t.Errorf("expected db.Error with op %s, got %v", db.OpPing, err)
			}
		})
	}
}

// --- analyze.go tests ---

func TestAnalyze_Success(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/_analyze" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body := decodeBody(t, r)
		if body["analyzer"] != "text_analyzer" {
			t.Errorf("analyzer = %v", body["analyzer"])
		}
		writeJSON(w, http.StatusOK, `{"tokens":[
			{"token":"skinny","start_offset":0,"end_offset":6,"type":"<ALPHANUM>","position":0},
			{"token":"jeans","start_offset":7,"end_offset":12,"type":"<ALPHANUM>","position":1}]}`)
	})

	terms, err := s.Analyze(context.Background(), "products", "text_analyzer", "Skinny Jeans")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !reflect.DeepEqual(terms, []string{"skinny", "jeans"}) {
		t.Errorf("terms = %v", terms)
	}
}

func TestAnalyze_NoTokens(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"tokens":[]}`)
	})
	terms, err := s.Analyze(context.Background(), "products", "text_analyzer", "   ")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if terms == nil || len(terms) != 0 {
		t.Errorf("terms = %v, want empty", terms)
	}
}

func TestAnalyze_Error(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadRequest,
			`{"error":{"type":"illegal_argument_exception","reason":"failed to find analyzer"},"status":400}`)
	})
	_, err := s.Analyze(context.Background(), "products", "missing", "jeans")
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpAnalyze {
		t.Fatalf("expected db.Error with op %s, got %v", db.OpAnalyze, err)
	}
}

// --- search.go tests ---

const searchResponse = `{
  "took": 3,
  "hits": {
    "total": {"value": 8, "relation": "eq"},
    "max_score": 1.2,
    "hits": [
      {"_index": "products_1", "_id": "\"6\"", "_score": 1.2, "_source": {"name": "Slim jeans", "brand": "Levi's"}},
      {"_index": "products_1", "_id": "\"5\"", "_score": 1.2, "_source": {"name": "Ankle jeans", "brand": "Calvin Klein"}}
    ]
  },
  "aggregations": {
    "brand": {"buckets": [{"key": "Calvin Klein", "doc_count": 4}]}
  }
}`

func TestSearch_Success(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/_search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body := decodeBody(t, r)
		if body["from"] != 2.0 || body["size"] != 2.0 {
			t.Errorf("from/size = %v/%v", body["from"], body["size"])
		}
		if got := path(t, body, "sort", 1, "_id", "order"); got != "desc" {
			t.Errorf("tie-break order = %v", got)
		}
		path(t, body, "aggregations", "brand", "terms")
		path(t, body, "query", "bool", "must", "multi_match")
		writeJSON(w, http.StatusOK, searchResponse)
	})

	res, err := s.Search(context.Background(), &db.SearchRequest{
		Index: "products",
		Query: query.Bool{Must: []query.Clause{
			query.MultiMatch{Fields: []string{"name", "brand.text"}, Value: "jeans", Type: query.CrossFields},
		}},
		Aggregations: []aggregation.Spec{aggregation.Terms("brand", "brand", "brand")},
		From:         2,
		Size:         2,
		Sort:         []db.SortField{db.ByScoreDesc(), {Field: "_id"}},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Total != 8 {
		t.Errorf("Total = %d, want 8", res.Total)
	}
	if len(res.Hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(res.Hits))
	}
	if res.Hits[0].ID != `"6"` || res.Hits[1].ID != `"5"` {
		t.Errorf("ids = %s, %s", res.Hits[0].ID, res.Hits[1].ID)
	}
	if res.Hits[0].Score != 1.2 {
		t.Errorf("score = %v", res.Hits[0].Score)
	}
	if !strings.Contains(string(res.Hits[0].Source), "Slim jeans") {
		t.Errorf("source = %s", res.Hits[0].Source)
	}
	if _, ok := res.Aggregations["brand"]; !ok {
		t.Errorf("aggregations = %v", res.Aggregations)
	}
}

func TestSearch_EngineError(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"error":{"type":"search_phase_execution_exception"},"status":500}`)
	})
	_, err := s.Search(context.Background(), &db.SearchRequest{Index: "products", Query: query.Bool{}, Size: 10})
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpSearch {
		t.Fatalf("expected db.Error with op %s, got %v", db.OpSearch, err)
	}
}

func TestSearch_InvalidAggregation(t *testing.T) {
	s := newTestStore(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("engine must not be called")
	})
	_, err := s.Search(context.Background(), &db.SearchRequest{
		Index:        "products",
		Aggregations: []aggregation.Spec{{Kind: aggregation.KindRange, Name: "p", Facet: "p", Field: "price"}},
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

// --- index.go tests ---

func TestCreateIndex(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/products_20240101120000" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"mappings"`) {
			t.Errorf("body = %s", body)
		}
		writeJSON(w, http.StatusOK, `{"acknowledged":true,"shards_acknowledged":true,"index":"products_20240101120000"}`)
	})
	err := s.CreateIndex(context.Background(), "products_20240101120000", []byte(`{"settings":{},"mappings":{}}`))
	if err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
}

func TestCreateIndex_NotAcknowledged(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"acknowledged":false}`)
	})
	err := s.CreateIndex(context.Background(), "p", nil)
	if !errors.Is(err, db.ErrNotAcked) {
		t.Fatalf("expected ErrNotAcked, got %v", err)
	}
}

func TestUpdateAliases(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/_aliases" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body := decodeBody(t, r)
		if got := path(t, body, "actions", 0, "remove", "alias"); got != "products" {
			t.Errorf("first action alias = %v", got)
		}
		if got := path(t, body, "actions", 1, "add", "alias"); got != "products" {
			t.Errorf("second action alias = %v", got)
		}
		writeJSON(w, http.StatusOK, `{"acknowledged":true}`)
	})
	err := s.UpdateAliases(context.Background(), []db.AliasAction{
		{Type: db.AliasRemove, Alias: "products", Index: "products_1"},
		{Type: db.AliasAdd, Alias: "products", Index: "products_2"},
	})
	if err != nil {
		t.Fatalf("UpdateAliases: %v", err)
	}
}

func TestUpdateAliases_Empty(t *testing.T) {
	s := newTestStore(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("engine must not be called")
	})
	if err := s.UpdateAliases(context.Background(), nil); err != nil {
		t.Fatalf("UpdateAliases: %v", err)
	}
}

func TestIndicesByAlias(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/_alias/products") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{
			"products_2":{"aliases":{"products":{}}},
			"products_1":{"aliases":{"products":{}}}}`)
	})
	names, err := s.IndicesByAlias(context.Background(), "products")
	if err != nil {
		t.Fatalf("IndicesByAlias: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"products_1", "products_2"}) {
		t.Errorf("names = %v", names)
	}
}

func TestIndicesByAlias_NotFound(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":"alias [products] missing","status":404}`)
	})
	names, err := s.IndicesByAlias(context.Background(), "products")
	if err != nil {
		t.Fatalf("IndicesByAlias: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("names = %v, want empty", names)
	}
}

func TestIndicesByPattern(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products_*" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{
			"products_20240103000000":{"settings":{}},
			"products_20240101000000":{"settings":{}},
			"products_20240102000000":{"settings":{}}}`)
	})
	names, err := s.IndicesByPattern(context.Background(), "products_*")
	if err != nil {
		t.Fatalf("IndicesByPattern: %v", err)
	}
	want := []string{"products_20240101000000", "products_20240102000000", "products_20240103000000"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestDeleteIndex(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/products_1,products_2" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"acknowledged":true}`)
	})
	if err := s.DeleteIndex(context.Background(), "products_1", "products_2"); err != nil {
		t.Fatalf("DeleteIndex: %v", err)
	}
}

func TestDeleteIndex_NotFound(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":{"type":"index_not_found_exception"},"status":404}`)
	})
	err := s.DeleteIndex(context.Background(), "gone")
	if !errors.Is(err, db.ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestBulk_PartialFailure(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products_2/_bulk" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"create"`) {
			t.Errorf("expected create op type, got %s", body)
		}
		writeJSON(w, http.StatusOK, `{"took":5,"errors":true,"items":[
			{"create":{"_index":"products_2","_id":"\"1\"","status":201}},
			{"create":{"_index":"products_2","_id":"\"2\"","status":409,
			  "error":{"type":"version_conflict_engine_exception","reason":"document already exists"}}}]}`)
	})

	res, err := s.Bulk(context.Background(), "products_2", []db.BulkItem{
		{ID: `"1"`, Source: []byte(`{"name":"a"}`)},
		{ID: `"2"`, Source: []byte(`{"name":"b"}`)},
	})
	if err != nil {
		t.Fatalf("Bulk: %v", err)
	}
	if res.Processed != 2 {
		t.Errorf("Processed = %d", res.Processed)
	}
	if len(res.Failed) != 1 || res.Failed[0].ID != `"2"` {
		t.Fatalf("Failed = %+v", res.Failed)
	}
	if !strings.Contains(res.Failed[0].Reason, "version_conflict") {
		t.Errorf("Reason = %q", res.Failed[0].Reason)
	}
}

func TestBulk_Empty(t *testing.T) {
	s := newTestStore(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("engine must not be called")
	})
	res, err := s.Bulk(context.Background(), "p", nil)
	if err != nil || res.Processed != 0 {
		t.Fatalf("Bulk = %+v, %v", res, err)
	}
}

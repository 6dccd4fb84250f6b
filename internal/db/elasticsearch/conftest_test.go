package elasticsearch

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestStore starts a fake cluster serving h and returns a Store pointed at it.
func newTestStore(t *testing.T, h http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	s, err := NewStore(Config{URLs: []string{srv.URL}})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// decodeBody reads a JSON request body into a generic map.
func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		t.Errorf("decode request body: %v", err)
	}
	return m
}

// path walks nested maps and arrays by key or index.
func path(t *testing.T, v any, keys ...any) any {
	t.Helper()
	for _, k := range keys {
		switch key := k.(type) {
		case string:
			m, ok := v.(map[string]any)
			if !ok {
				t.Fatalf("expected object at %v, got %T", key, v)
			}
			v, ok = m[key]
			if !ok {
				t.Fatalf("missing key %q", key)
			}
		case int:
			a, ok := v.([]any)
			if !ok || key >= len(a) {
				t.Fatalf("expected array with index %d, got %v", key, v)
			}
			v = a[key]
		}
	}
	return v
}

// source renders an olivere Source() result as a generic JSON value.
func source(t *testing.T, fn func() (any, error)) any {
	t.Helper()
	src, err := fn()
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	raw, err := json.Marshal(src)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return v
}

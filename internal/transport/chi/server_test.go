package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/prodsearch/internal/domain/document"
	"github.com/kailas-cloud/prodsearch/internal/domain/facet"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/request"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/prodsearch/internal/usecase/health"
)

// --- Mocks ---

type mockSearcher struct {
	res    result.Result
	called bool
	params request.Params
}

func (m *mockSearcher) Search(_ context.Context, p request.Params) result.Result {
	m.called = true
	m.params = p
	return m.res
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

func newTestRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(zap.NewNop()))
	s.Routes(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func sampleResult(t *testing.T) result.Result {
	t.Helper()
	doc, err := document.Parse([]byte(`{"name":"Ankle jeans","brand":"Calvin Klein","id":"2"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return result.Result{
		TotalHits: 1,
		Products:  []*document.Document{doc},
		Facets: facet.Set{
			"brand": {{Value: "Calvin Klein", Count: 1}},
			"price": {{Value: "Cheap", Count: 0}, {Value: "Average", Count: 1}, {Value: "Expensive", Count: 0}},
		},
		Executed: true,
	}
}

// --- Tests ---

func TestSearchProducts_Post(t *testing.T) {
	search := &mockSearcher{res: sampleResult(t)}
	h := newTestRouter(NewServer(search, &mockHealth{}, 10, zap.NewNop()))

	rr := doRequest(t, h, "POST", ProductPath, `{"queryText":"Calvin klein L blue ankle skinny jeans","page":1,"size":2}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	p := search.params
	if p.QueryText() != "Calvin klein L blue ankle skinny jeans" || p.Page() != 1 || p.Size() != 2 || p.From() != 2 {
		t.Errorf("params = %+v", p)
	}

	want := `{"totalHits":1,"products":[{"name":"Ankle jeans","brand":"Calvin Klein","id":"2"}],` +
		`"facets":{"brand":[{"value":"Calvin Klein","count":1}],` +
		`"price":[{"value":"Cheap","count":0},{"value":"Average","count":1},{"value":"Expensive","count":0}]}}`
	if got := strings.TrimSpace(rr.Body.String()); got != want {
		t.Errorf("body:\n got %s\nwant %s", got, want)
	}
}

func TestSearchProducts_EmptyRequest(t *testing.T) {
	for _, body := range []string{"", `{}`, `{"queryText":""}`, `{"queryText":null,"page":2}`} {
		search := &mockSearcher{res: result.Empty()}
		h := newTestRouter(NewServer(search, &mockHealth{}, 10, zap.NewNop()))

		rr := doRequest(t, h, "POST", ProductPath, body)
		if rr.Code != http.StatusOK {
			t.Fatalf("body %q: status %d", body, rr.Code)
		}
		if !search.params.IsEmpty() {
			t.Errorf("body %q: expected empty params, got %+v", body, search.params)
		}
		if got := strings.TrimSpace(rr.Body.String()); got != `{"totalHits":0}` {
			t.Errorf("body %q: response %s", body, got)
		}
	}
}

func TestSearchProducts_FailedSearchKeepsProducts(t *testing.T) {
	search := &mockSearcher{res: result.Failed()}
	h := newTestRouter(NewServer(search, &mockHealth{}, 10, zap.NewNop()))

	rr := doRequest(t, h, "POST", ProductPath, `{"queryText":"jeans"}`)
	if got := strings.TrimSpace(rr.Body.String()); got != `{"totalHits":0,"products":[]}` {
		t.Errorf("response %s", got)
	}
}

func TestSearchProducts_InvalidPagingFallsBack(t *testing.T) {
	tests := []struct {
		body     string
		wantPage int
		wantSize int
	}{
		{`{"queryText":"jeans","page":"abc","size":"2"}`, 0, 2},
		{`{"queryText":"jeans","page":1.5,"size":true}`, 0, 25},
		{`{"queryText":"jeans","page":-3,"size":0}`, 0, 25},
		{`{"queryText":"jeans","page":"4","size":null}`, 4, 25},
	}
	for _, tc := range tests {
		search := &mockSearcher{res: result.Failed()}
		h := newTestRouter(NewServer(search, &mockHealth{}, 25, zap.NewNop()))

		rr := doRequest(t, h, "POST", ProductPath, tc.body)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status %d", tc.body, rr.Code)
		}
		if search.params.Page() != tc.wantPage || search.params.Size() != tc.wantSize {
			t.Errorf("%s: page=%d size=%d, want page=%d size=%d",
				tc.body, search.params.Page(), search.params.Size(), tc.wantPage, tc.wantSize)
		}
	}
}

func TestSearchProducts_MalformedBody(t *testing.T) {
	search := &mockSearcher{}
	h := newTestRouter(NewServer(search, &mockHealth{}, 10, zap.NewNop()))

	rr := doRequest(t, h, "POST", ProductPath, `{"queryText":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rr.Code)
	}
	if search.called {
		t.Error("search must not run for a malformed body")
	}
	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil || errResp.Code != codeBadRequest {
		t.Errorf("error response = %+v, %v", errResp, err)
	}
}

func TestSearchProductsQuery_Get(t *testing.T) {
	search := &mockSearcher{res: sampleResult(t)}
	h := newTestRouter(NewServer(search, &mockHealth{}, 10, zap.NewNop()))

	rr := doRequest(t, h, "GET", ProductPath+"?queryText=skinny+jeans&page=2&size=5", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	p := search.params
	if p.QueryText() != "skinny jeans" || p.Page() != 2 || p.Size() != 5 {
		t.Errorf("params = %+v", p)
	}
}

func TestSearchProductsQuery_Defaults(t *testing.T) {
	search := &mockSearcher{res: result.Empty()}
	h := newTestRouter(NewServer(search, &mockHealth{}, 10, zap.NewNop()))

	rr := doRequest(t, h, "GET", ProductPath+"?page=x", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if !search.params.IsEmpty() || search.params.Page() != 0 || search.params.Size() != 10 {
		t.Errorf("params = %+v", search.params)
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		status healthuc.Status
		want   int
	}{
		{healthuc.Healthy, http.StatusOK},
		{healthuc.Degraded, http.StatusOK},
		{healthuc.Unhealthy, http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		health := &mockHealth{report: healthuc.Report{
			Status: tc.status,
			Checks: map[string]healthuc.CheckResult{healthuc.ComponentSearchEngine: healthuc.CheckOK},
		}}
		h := newTestRouter(NewServer(&mockSearcher{}, health, 10, zap.NewNop()))

		rr := doRequest(t, h, "GET", "/health", "")
		if rr.Code != tc.want {
			t.Errorf("%s: status %d, want %d", tc.status, rr.Code, tc.want)
		}
		var resp healthResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Status != string(tc.status) || resp.Checks["search_engine"] != "ok" {
			t.Errorf("response = %+v", resp)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(NewServer(&mockSearcher{}, &mockHealth{}, 10, zap.NewNop()))

	rr := doRequest(t, h, "GET", "/metrics", "")
	if rr.Code != http.StatusOK {
		t.Errorf("status %d", rr.Code)
	}
}

func TestRequestLogger_CanonicalLine(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	search := &mockSearcher{res: result.Empty()}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(zap.New(core)))
	NewServer(search, &mockHealth{}, 10, zap.NewNop()).Routes(r)

	rr := doRequest(t, r, "POST", ProductPath, `{}`)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 http_request line, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(200) || fields["path"] != ProductPath {
		t.Errorf("fields = %v", fields)
	}
	if fields["request_id"] == "" {
		t.Error("request_id missing")
	}
}

func TestJSONRecoverer(t *testing.T) {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(zap.NewNop()))
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rr := doRequest(t, r, "GET", "/boom", "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rr.Code)
	}
	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil || errResp.Code != codeInternalError {
		t.Errorf("error response = %+v, %v", errResp, err)
	}
}

package chi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain/search/request"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/prodsearch/internal/usecase/health"
)

// ProductPath is the product search endpoint.
const ProductPath = "/v1/product"

// maxBodyBytes caps the search request body.
const maxBodyBytes = 1 << 20

// Searcher runs product searches.
type Searcher interface {
	Search(ctx context.Context, p request.Params) result.Result
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server exposes product search over HTTP.
type Server struct {
	search      Searcher
	health      HealthChecker
	defaultSize int
	logger      *zap.Logger
}

// NewServer creates an HTTP API server. defaultSize is the page size used when
// a request omits size or sends an invalid one.
func NewServer(search Searcher, health HealthChecker, defaultSize int, logger *zap.Logger) *Server {
	return &Server{search: search, health: health, defaultSize: defaultSize, logger: logger}
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Post(ProductPath, s.SearchProducts)
	r.Get(ProductPath, s.SearchProductsQuery)
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// SearchProducts handles POST /v1/product.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil && !isEmptyBody(err) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	params := req.params(r.Context(), s.defaultSize)
	s.writeResult(w, s.search.Search(r.Context(), params))
}

// SearchProductsQuery handles GET /v1/product?queryText=&page=&size=.
func (s *Server) SearchProductsQuery(w http.ResponseWriter, r *http.Request) {
	req, err := productRequestFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	params := req.params(r.Context(), s.defaultSize)
	s.writeResult(w, s.search.Search(r.Context(), params))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

func (s *Server) writeResult(w http.ResponseWriter, res result.Result) {
	writeJSON(w, http.StatusOK, productResponseFrom(res))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/document"
	"github.com/kailas-cloud/prodsearch/internal/domain/facet"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/request"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/result"
	"github.com/kailas-cloud/prodsearch/internal/logger"
)

// Error codes.
const (
	codeBadRequest    = "bad_request"
	codeUnauthorized  = "unauthorized"
	codeInternalError = "internal_error"
)

// productRequest is the search request body. Page and size are kept raw so
// that values of the wrong type fall back to defaults instead of failing the request.
type productRequest struct {
	QueryText *string         `json:"queryText,omitempty"`
	Page      json.RawMessage `json:"page,omitempty"`
	Size      json.RawMessage `json:"size,omitempty"`
}

func productRequestFromQuery(q url.Values) (productRequest, error) {
	var (
		req        productRequest
		page, size *string
	)
	if err := runtime.BindQueryParameter("form", true, false, "queryText", q, &req.QueryText); err != nil {
		return req, fmt.Errorf("queryText: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		return req, fmt.Errorf("page: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "size", q, &size); err != nil {
		return req, fmt.Errorf("size: %w", err)
	}
	if page != nil {
		req.Page = json.RawMessage(strconv.Quote(*page))
	}
	if size != nil {
		req.Size = json.RawMessage(strconv.Quote(*size))
	}
	return req, nil
}

// params converts the request into search parameters. Uninterpretable page or
// size values are logged and replaced by defaults.
func (p *productRequest) params(ctx context.Context, defaultSize int) request.Params {
	log := logger.FromContext(ctx)

	page, err := parseInt(p.Page, request.DefaultPage)
	if err != nil {
		log.Warn("Ignoring page", zap.ByteString("page", p.Page), zap.Error(err))
	}
	size, err := parseInt(p.Size, 0)
	if err != nil {
		log.Warn("Ignoring size", zap.ByteString("size", p.Size), zap.Error(err))
	}

	var text string
	if p.QueryText != nil {
		text = *p.QueryText
	}
	return request.New(text, page, size, defaultSize)
}

// parseInt reads an integer from a JSON number or a numeric JSON string.
// Absent and null values yield def without error.
func parseInt(raw json.RawMessage, def int) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return def, nil
	}

	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return def, fmt.Errorf("%w: %w", domain.ErrMalformedRequest, err)
		}
	} else {
		s = string(raw)
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def, fmt.Errorf("%w: %q is not an integer", domain.ErrMalformedRequest, s)
	}
	return n, nil
}

func isEmptyBody(err error) bool {
	return errors.Is(err, io.EOF)
}

// productResponse is the search response. Products is present whenever a
// query ran; facets are omitted when empty.
type productResponse struct {
	TotalHits int64                 `json:"totalHits"`
	Products  *[]*document.Document `json:"products,omitempty"`
	Facets    facet.Set             `json:"facets,omitempty"`
}

func productResponseFrom(r result.Result) productResponse {
	resp := productResponse{TotalHits: r.TotalHits, Facets: r.Facets}
	if r.Executed {
		products := r.Products
		if products == nil {
			products = []*document.Document{}
		}
		resp.Products = &products
	}
	return resp
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

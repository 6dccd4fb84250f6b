// Package request holds validated search request parameters.
package request

// Paging defaults.
const (
	DefaultPage = 0
	DefaultSize = 10
)

// Params is an immutable search request.
type Params struct {
	queryText string
	page      int
	size      int
}

// New normalizes search parameters. A negative page falls back to DefaultPage,
// a non-positive size to defaultSize (or DefaultSize when defaultSize is not positive).
func New(queryText string, page, size, defaultSize int) Params {
	if defaultSize <= 0 {
		defaultSize = DefaultSize
	}
	if page < 0 {
		page = DefaultPage
	}
	if size <= 0 {
		size = defaultSize
	}
	return Params{queryText: queryText, page: page, size: size}
}

// QueryText returns the raw query text.
func (p Params) QueryText() string { return p.queryText }

// Page returns the zero-based page number.
func (p Params) Page() int { return p.page }

// Size returns the page size.
func (p Params) Size() int { return p.size }

// From returns the offset of the first hit: page * size.
func (p Params) From() int { return p.page * p.size }

// IsEmpty reports whether the request carries no query text.
// Empty requests are answered without contacting the engine.
func (p Params) IsEmpty() bool { return p.queryText == "" }

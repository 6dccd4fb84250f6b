package search

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/aggregation"
	"github.com/kailas-cloud/prodsearch/internal/domain/query"
	"github.com/kailas-cloud/prodsearch/internal/domain/token"
)

// Clause boosts.
const (
	SizeBoost    = 2.0
	ColorBoost   = 3.0
	ShingleBoost = 5.0
)

// Aggregation names in the engine request.
const (
	BrandAggName        = "brand"
	PriceAggName        = "priceAgg"
	VariantSizeAggName  = "variantSizeAgg"
	VariantColorAggName = "variantColorAgg"

	reverseSizeName  = "reverse_size"
	reverseColorName = "reverse_color"
)

// Compiler turns query text into a weighted boolean query.
// It holds no per-request state and is safe for concurrent use.
type Compiler struct {
	analyzer  Analyzer
	vocab     *token.Vocabulary
	fields    domain.Fields
	analyzers domain.Analyzers
	aggs      []aggregation.Spec
}

// NewCompiler creates a compiler. A nil vocabulary uses the built-in sizes and colors.
func NewCompiler(
	a Analyzer,
	vocab *token.Vocabulary,
	fields domain.Fields,
	facets domain.FacetNames,
	analyzers domain.Analyzers,
) *Compiler {
	if vocab == nil {
		vocab = token.DefaultVocabulary()
	}
	return &Compiler{
		analyzer:  a,
		vocab:     vocab,
		fields:    fields,
		analyzers: analyzers,
		aggs:      facetAggregations(fields, facets),
	}
}

func facetAggregations(f domain.Fields, n domain.FacetNames) []aggregation.Spec {
	return []aggregation.Spec{
		aggregation.Terms(BrandAggName, n.Brand, f.Brand),
		aggregation.RangeOf(PriceAggName, n.Price, f.Price, aggregation.PriceRanges()...),
		aggregation.NestedTerms(VariantSizeAggName, n.VariantSize, f.Variants, f.VariantSize, reverseSizeName),
		aggregation.NestedTerms(VariantColorAggName, n.VariantColor, f.Variants, f.VariantColor, reverseColorName),
	}
}

// Aggregations returns the facet aggregations sent with every query.
func (c *Compiler) Aggregations() []aggregation.Spec {
	out := make([]aggregation.Spec, len(c.aggs))
	copy(out, c.aggs)
	return out
}

// Compile analyzes text and builds the query.
//
// Generic word tokens each become a mandatory cross-field AND match over name
// and brand. Size and color tokens form one mandatory nested group over the
// variants. Shingle tokens add optional boosted phrase clauses.
//
// On analyzer failure it returns an empty query together with the error.
func (c *Compiler) Compile(ctx context.Context, text string) (query.Bool, error) {
	var shingles, words []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		terms, err := c.analyze(gctx, text, c.analyzers.Shingle)
		shingles = terms
		return err
	})
	g.Go(func() error {
		terms, err := c.analyze(gctx, text, c.analyzers.Word)
		words = terms
		return err
	})
	if err := g.Wait(); err != nil {
		return query.Bool{}, err
	}

	return c.build(
		token.FromTerms(words, token.Word),
		token.FromTerms(shingles, token.Shingle),
	), nil
}

func (c *Compiler) analyze(ctx context.Context, text, analyzer string) ([]string, error) {
	terms, err := c.analyzer.Analyze(ctx, text, analyzer)
	if err != nil {
		if errors.Is(err, domain.ErrAnalyzerFailure) {
			return nil, err
		}
		return nil, domain.NewAnalyzerError(analyzer, err)
	}
	return terms, nil
}

func (c *Compiler) build(words, shingles []token.Token) query.Bool {
	var q, variant query.Bool

	for _, cl := range c.vocab.Classify(words) {
		switch cl.Class {
		case token.Size:
			variant.AddMust(query.Match{Field: c.fields.VariantSizeText, Value: cl.Token.Text, Boost: SizeBoost})
		case token.Color:
			variant.AddMust(query.Match{Field: c.fields.VariantColorText, Value: cl.Token.Text, Boost: ColorBoost})
		default:
			q.AddMust(query.MultiMatch{
				Fields:   []string{c.fields.Name, c.fields.BrandText},
				Value:    cl.Token.Text,
				Type:     query.CrossFields,
				Operator: query.OperatorAnd,
			})
		}
	}

	if !variant.IsEmpty() {
		q.AddMust(query.Nested{Path: c.fields.Variants, Inner: variant, ScoreMode: query.ScoreAvg})
	}

	for _, s := range shingles {
		q.AddShould(query.MultiMatch{
			Fields: []string{c.fields.NameShingles, c.fields.BrandShingles},
			Value:  s.Text,
			Type:   query.CrossFields,
			Boost:  ShingleBoost,
		})
	}
	return q
}

package token

import "fmt"

// Vocabulary holds the reference sets used for classification.
// It is immutable once built and safe for concurrent use.
type Vocabulary struct {
	sizes  map[string]struct{}
	colors map[string]struct{}
}

// Classified pairs a token with its class.
type Classified struct {
	Token Token
	Class Class
}

// NewVocabulary builds reference sets from size and color lists.
// A term may not appear in both lists, otherwise classification would be ambiguous.
func NewVocabulary(sizes, colors []string) (*Vocabulary, error) {
	v := &Vocabulary{
		sizes:  make(map[string]struct{}, len(sizes)),
		colors: make(map[string]struct{}, len(colors)),
	}
	for _, s := range sizes {
		if n := normalize(s); n != "" {
			v.sizes[n] = struct{}{}
		}
	}
	for _, c := range colors {
		n := normalize(c)
		if n == "" {
			continue
		}
		if _, dup := v.sizes[n]; dup {
			return nil, fmt.Errorf("term %q is listed as both size and color", n)
		}
		v.colors[n] = struct{}{}
	}
	return v, nil
}

// DefaultVocabulary returns the built-in sizes and colors.
func DefaultVocabulary() *Vocabulary {
	v, err := NewVocabulary(DefaultSizes(), DefaultColors())
	if err != nil {
		panic(err)
	}
	return v
}

// ClassOf returns the class of a single term.
func (v *Vocabulary) ClassOf(term string) Class {
	n := normalize(term)
	if _, ok := v.sizes[n]; ok {
		return Size
	}
	if _, ok := v.colors[n]; ok {
		return Color
	}
	return Generic
}

// Classify tags every token with its class, preserving order.
func (v *Vocabulary) Classify(tokens []Token) []Classified {
	out := make([]Classified, len(tokens))
	for i, t := range tokens {
		out[i] = Classified{Token: t, Class: v.ClassOf(t.Text)}
	}
	return out
}

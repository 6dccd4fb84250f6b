// Package token classifies analyzer output into size, color, and generic terms.
package token

import "strings"

// Source identifies the analyzer profile a token came from.
type Source int

const (
	// Word tokens come from the single-word analyzer.
	Word Source = iota
	// Shingle tokens are multi-word n-grams.
	Shingle
)

func (s Source) String() string {
	switch s {
	case Word:
		return "word"
	case Shingle:
		return "shingle"
	default:
		return "unknown"
	}
}

// Class is the category a word token falls into.
type Class int

const (
	// Generic is any token that is neither a known size nor a known color.
	Generic Class = iota
	// Size is a known garment size.
	Size
	// Color is a known color name.
	Color
)

func (c Class) String() string {
	switch c {
	case Size:
		return "size"
	case Color:
		return "color"
	default:
		return "generic"
	}
}

// Token is a normalized term produced by an analyzer.
type Token struct {
	Text   string
	Source Source
}

// New creates a token tagged with its source analyzer.
func New(text string, src Source) Token {
	return Token{Text: text, Source: src}
}

// FromTerms tags every term with src, preserving order.
func FromTerms(terms []string, src Source) []Token {
	out := make([]Token, len(terms))
	for i, t := range terms {
		out[i] = New(t, src)
	}
	return out
}

// Texts returns the token texts in order.
func Texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

// DefaultSizes are the garment sizes recognized in queries.
func DefaultSizes() []string {
	return []string{"xxs", "xs", "s", "m", "l", "xl", "xxl", "xxxl"}
}

// DefaultColors are the color names recognized in queries.
func DefaultColors() []string {
	return []string{
		"green", "black", "white", "blue",
		"yellow", "red", "brown", "orange", "grey",
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

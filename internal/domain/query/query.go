// Package query describes engine-neutral boolean query trees.
package query

// Operator combines the terms of a single match clause.
type Operator string

const (
	// OperatorOr matches when any term matches (engine default).
	OperatorOr Operator = "or"
	// OperatorAnd requires every term to match.
	OperatorAnd Operator = "and"
)

// MultiMatchType selects how scores from several fields are combined.
type MultiMatchType string

const (
	// CrossFields treats the fields as one combined field per term.
	CrossFields MultiMatchType = "cross_fields"
	// BestFields scores by the best matching field.
	BestFields MultiMatchType = "best_fields"
)

// ScoreMode combines scores of matching nested documents into the parent score.
type ScoreMode string

const (
	// ScoreAvg averages child scores.
	ScoreAvg ScoreMode = "avg"
	// ScoreMax takes the best child score.
	ScoreMax ScoreMode = "max"
	// ScoreSum adds child scores.
	ScoreSum ScoreMode = "sum"
	// ScoreNone ignores child scores.
	ScoreNone ScoreMode = "none"
)

// Clause is a node in a query tree.
type Clause interface {
	clause()
}

// Match is a full-text match against one field.
type Match struct {
	Field    string
	Value    string
	Boost    float64 // 0 means engine default
	Operator Operator
}

// MultiMatch is a full-text match against several fields.
type MultiMatch struct {
	Fields   []string
	Value    string
	Type     MultiMatchType
	Operator Operator
	Boost    float64
}

// Nested scopes an inner query to single nested sub-documents under Path.
type Nested struct {
	Path      string
	Inner     Clause
	ScoreMode ScoreMode
}

// Bool combines clauses: every Must clause has to match,
// Should clauses only contribute to the score.
type Bool struct {
	Must   []Clause
	Should []Clause
}

func (Match) clause()      {}
func (MultiMatch) clause() {}
func (Nested) clause()     {}
func (Bool) clause()       {}

// IsEmpty reports whether the boolean node has no clauses at all.
func (b *Bool) IsEmpty() bool {
	return len(b.Must) == 0 && len(b.Should) == 0
}

// AddMust appends mandatory clauses.
func (b *Bool) AddMust(c ...Clause) {
	b.Must = append(b.Must, c...)
}

// AddShould appends optional scoring clauses.
func (b *Bool) AddShould(c ...Clause) {
	b.Should = append(b.Should, c...)
}

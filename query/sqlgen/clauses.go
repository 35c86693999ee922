package sqlgen

// Condition is a single WHERE predicate. Bool joins the predicate to the
// one before it and is ignored for the first predicate of a clause.
// Operator is emitted verbatim; the builder treats it as an opaque token.
type Condition struct {
	Bool     string // "AND" or "OR"
	Column   string
	Operator string
	Value    interface{}
	Values   []interface{} // IN predicates only
}

// OrderBy represents an ORDER BY term.
type OrderBy struct {
	Column    string
	Direction string // "ASC" or "DESC"
}

// Join represents a JOIN clause. Left and Right are column reference
// expressions emitted verbatim, they are identifiers, never user data.
type Join struct {
	Kind     string // "INNER" or "LEFT"
	Table    string
	Left     string
	Operator string
	Right    string
}

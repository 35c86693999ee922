// Package builder provides a fluent query builder API.
//
// A Builder accumulates the clauses of one logical statement and renders it
// through a sqlgen.Generator, so every value travels as a binding and never
// as SQL text. Column names, operators and join expressions are structural
// tokens supplied by the caller and are emitted verbatim; they are a trust
// boundary, not a place for user data.
//
// A Builder owns its clause state exclusively and is not safe for concurrent
// use. Terminal operations issue exactly one blocking round-trip.
package builder

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ormkit/ormkit/query/executor"
	"github.com/ormkit/ormkit/query/sqlgen"
	"github.com/ormkit/ormkit/runtime"
)

// Builder builds and executes a single SQL statement.
type Builder struct {
	table      string
	primaryKey string
	exec       executor.Executor
	gen        sqlgen.Generator

	columns    []string
	conds      []sqlgen.Condition
	joins      []sqlgen.Join
	orderBy    []sqlgen.OrderBy
	limit      *int
	offset     *int
	eagerLoads []string

	// First invalid-argument error recorded by a fluent call. Terminal
	// operations surface it without touching the executor.
	err error
}

// New creates a builder scoped to a table.
func New(exec executor.Executor, gen sqlgen.Generator, table string) *Builder {
	return &Builder{
		table:      table,
		primaryKey: "id",
		exec:       exec,
		gen:        gen,
	}
}

// PrimaryKey overrides the primary key column used by Find and Insert.
func (b *Builder) PrimaryKey(column string) *Builder {
	b.primaryKey = column
	return b
}

// Select replaces the selected column list. The last call wins.
func (b *Builder) Select(columns ...string) *Builder {
	b.columns = columns
	return b
}

// Where appends an AND predicate. The two-argument form Where(column, value)
// is shorthand for operator "=". Operators are not validated, they are
// emitted as given.
func (b *Builder) Where(column string, args ...interface{}) *Builder {
	return b.addWhere("AND", column, args...)
}

// OrWhere appends an OR predicate with the same argument forms as Where.
func (b *Builder) OrWhere(column string, args ...interface{}) *Builder {
	return b.addWhere("OR", column, args...)
}

func (b *Builder) addWhere(boolJoin, column string, args ...interface{}) *Builder {
	var operator string
	var value interface{}

	switch len(args) {
	case 1:
		operator = "="
		value = args[0]
	case 2:
		op, ok := args[0].(string)
		if !ok {
			b.recordErr(fmt.Errorf("%w: where operator must be a string", runtime.ErrInvalidArgument))
			return b
		}
		operator = op
		value = args[1]
	default:
		b.recordErr(fmt.Errorf("%w: where takes (column, value) or (column, operator, value)", runtime.ErrInvalidArgument))
		return b
	}

	b.conds = append(b.conds, sqlgen.Condition{
		Bool:     boolJoin,
		Column:   column,
		Operator: operator,
		Value:    value,
	})
	return b
}

// WhereIn appends an AND predicate rendered as column IN (?, ?, ...) with one
// placeholder per value. An empty value set is an invalid argument, surfaced
// by the next terminal call.
func (b *Builder) WhereIn(column string, values []interface{}) *Builder {
	if len(values) == 0 {
		b.recordErr(runtime.ErrEmptyInList)
		return b
	}
	b.conds = append(b.conds, sqlgen.Condition{
		Bool:     "AND",
		Column:   column,
		Operator: "IN",
		Values:   values,
	})
	return b
}

// Join appends an INNER JOIN clause. Left and right are column reference
// expressions emitted verbatim.
func (b *Builder) Join(table, left, operator, right string) *Builder {
	b.joins = append(b.joins, sqlgen.Join{Kind: "INNER", Table: table, Left: left, Operator: operator, Right: right})
	return b
}

// LeftJoin appends a LEFT JOIN clause.
func (b *Builder) LeftJoin(table, left, operator, right string) *Builder {
	b.joins = append(b.joins, sqlgen.Join{Kind: "LEFT", Table: table, Left: left, Operator: operator, Right: right})
	return b
}

// OrderBy appends an order term. Direction is case-normalized and must be
// ASC or DESC.
func (b *Builder) OrderBy(column, direction string) *Builder {
	dir := strings.ToUpper(direction)
	if dir != "ASC" && dir != "DESC" {
		b.recordErr(fmt.Errorf("%w: got %q", runtime.ErrInvalidDirection, direction))
		return b
	}
	b.orderBy = append(b.orderBy, sqlgen.OrderBy{Column: column, Direction: dir})
	return b
}

// Limit sets the row limit, overwriting any previous value.
func (b *Builder) Limit(n int) *Builder {
	b.limit = &n
	return b
}

// Offset sets the row offset, overwriting any previous value.
func (b *Builder) Offset(n int) *Builder {
	b.offset = &n
	return b
}

// With records relation names as eager-load hints. The builder does not
// resolve them; they are advisory metadata for the model layer.
func (b *Builder) With(relations ...string) *Builder {
	b.eagerLoads = append(b.eagerLoads, relations...)
	return b
}

// Load records a single eager-load hint.
func (b *Builder) Load(relation string) *Builder {
	return b.With(relation)
}

// EagerLoads returns the accumulated eager-load hints.
func (b *Builder) EagerLoads() []string {
	return b.eagerLoads
}

// Get renders and executes the SELECT, returning rows in storage order.
func (b *Builder) Get(ctx context.Context) ([]map[string]interface{}, error) {
	if b.err != nil {
		return nil, b.err
	}
	q := b.gen.GenerateSelect(b.table, b.columns, b.joins, b.conds, b.orderBy, b.limit, b.offset)
	return b.exec.Query(ctx, q.SQL, q.Args)
}

// First executes the SELECT with a limit of one and returns the first row,
// or nil when there is none. Absence is not an error. The builder's own
// limit is untouched.
func (b *Builder) First(ctx context.Context) (map[string]interface{}, error) {
	if b.err != nil {
		return nil, b.err
	}
	one := 1
	q := b.gen.GenerateSelect(b.table, b.columns, b.joins, b.conds, b.orderBy, &one, b.offset)
	return b.exec.QueryRow(ctx, q.SQL, q.Args)
}

// Find is shorthand for a primary key equality predicate followed by First.
func (b *Builder) Find(ctx context.Context, id interface{}) (map[string]interface{}, error) {
	return b.Where(b.primaryKey, id).First(ctx)
}

// Count executes a COUNT(*) over the current predicates. The selected
// column list is not consulted and is left untouched.
func (b *Builder) Count(ctx context.Context) (int64, error) {
	if b.err != nil {
		return 0, b.err
	}
	q := b.gen.GenerateCount(b.table, b.joins, b.conds)
	row, err := b.exec.QueryRow(ctx, q.SQL, q.Args)
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, nil
	}
	return toInt64(row["aggregate"])
}

// Exists reports whether any row matches the current predicates.
func (b *Builder) Exists(ctx context.Context) (bool, error) {
	n, err := b.Count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Insert renders and executes an INSERT for the given column values and
// returns the generated primary key. An empty payload is an invalid
// argument and performs no round-trip.
func (b *Builder) Insert(ctx context.Context, data map[string]interface{}) (int64, error) {
	if b.err != nil {
		return 0, b.err
	}
	if len(data) == 0 {
		return 0, runtime.NewQueryError("insert", b.table, runtime.ErrEmptyValues)
	}

	q := b.gen.GenerateInsert(b.table, b.primaryKey, data)
	if q.Returning {
		row, err := b.exec.QueryRow(ctx, q.SQL, q.Args)
		if err != nil {
			return 0, err
		}
		if row == nil {
			return 0, runtime.NewQueryError("insert", b.table, fmt.Errorf("no generated id returned"))
		}
		return toInt64(row[b.primaryKey])
	}

	res, err := b.exec.Exec(ctx, q.SQL, q.Args)
	if err != nil {
		return 0, err
	}
	return res.LastInsertID, nil
}

// Update renders and executes an UPDATE scoped by the current predicates and
// returns the affected row count. With no predicates every row is updated;
// that is deliberate power-user behavior. An empty payload is an invalid
// argument and performs no round-trip.
func (b *Builder) Update(ctx context.Context, data map[string]interface{}) (int64, error) {
	if b.err != nil {
		return 0, b.err
	}
	if len(data) == 0 {
		return 0, runtime.NewQueryError("update", b.table, runtime.ErrEmptyValues)
	}
	q := b.gen.GenerateUpdate(b.table, data, b.conds)
	res, err := b.exec.Exec(ctx, q.SQL, q.Args)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// Delete renders and executes a DELETE scoped by the current predicates and
// returns the affected row count. The no-predicate caveat of Update applies.
func (b *Builder) Delete(ctx context.Context) (int64, error) {
	if b.err != nil {
		return 0, b.err
	}
	q := b.gen.GenerateDelete(b.table, b.conds)
	res, err := b.exec.Exec(ctx, q.SQL, q.Args)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// Reset returns the builder to its just-constructed state so the instance
// can be reused for an unrelated query. Table, primary key, executor and
// generator are preserved.
func (b *Builder) Reset() *Builder {
	b.columns = nil
	b.conds = nil
	b.joins = nil
	b.orderBy = nil
	b.limit = nil
	b.offset = nil
	b.eagerLoads = nil
	b.err = nil
	return b
}

// Err returns the first recorded invalid-argument error, if any.
func (b *Builder) Err() error {
	return b.err
}

// Table returns the table the builder is scoped to.
func (b *Builder) Table() string {
	return b.table
}

// Columns returns the selected column list, nil meaning SELECT *.
func (b *Builder) Columns() []string {
	return b.columns
}

// Conditions returns the accumulated WHERE predicates.
func (b *Builder) Conditions() []sqlgen.Condition {
	return b.conds
}

// Joins returns the accumulated JOIN clauses.
func (b *Builder) Joins() []sqlgen.Join {
	return b.joins
}

// Orders returns the accumulated ORDER BY terms.
func (b *Builder) Orders() []sqlgen.OrderBy {
	return b.orderBy
}

// GetLimit returns the limit, nil when unset.
func (b *Builder) GetLimit() *int {
	return b.limit
}

// GetOffset returns the offset, nil when unset.
func (b *Builder) GetOffset() *int {
	return b.offset
}

func (b *Builder) recordErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// toInt64 normalizes the id values drivers hand back for integer columns.
func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	case string:
		return strconv.ParseInt(n, 10, 64)
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported numeric value %T", v)
	}
}

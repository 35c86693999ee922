// Package sqlgen generates SQL for different database providers.
//
// Every user-supplied value is rendered as a positional placeholder with the
// value appended to Query.Args in placeholder order. Only structural tokens
// (identifiers, operators, keywords) are concatenated into the SQL text.
package sqlgen

import (
	"fmt"
	"sort"
	"strings"
)

// Query represents a SQL statement with its bound arguments.
type Query struct {
	SQL  string
	Args []interface{}

	// Returning is true when the statement yields the generated primary
	// key as a result row instead of through last-insert-id.
	Returning bool
}

// Generator generates SQL for a specific provider.
type Generator interface {
	GenerateSelect(table string, columns []string, joins []Join, conds []Condition, orderBy []OrderBy, limit, offset *int) *Query
	GenerateCount(table string, joins []Join, conds []Condition) *Query
	GenerateInsert(table, primaryKey string, data map[string]interface{}) *Query
	GenerateUpdate(table string, data map[string]interface{}, conds []Condition) *Query
	GenerateDelete(table string, conds []Condition) *Query
}

// dialect captures what actually differs between the supported providers.
type dialect interface {
	placeholder(i int) string
	quoteIdentifier(name string) string
	insertReturning() bool
}

type postgresDialect struct{}

func (postgresDialect) placeholder(i int) string        { return fmt.Sprintf("$%d", i) }
func (postgresDialect) quoteIdentifier(n string) string { return `"` + n + `"` }
func (postgresDialect) insertReturning() bool           { return true }

type mysqlDialect struct{}

func (mysqlDialect) placeholder(int) string          { return "?" }
func (mysqlDialect) quoteIdentifier(n string) string { return "`" + n + "`" }
func (mysqlDialect) insertReturning() bool           { return false }

type sqliteDialect struct{}

func (sqliteDialect) placeholder(int) string          { return "?" }
func (sqliteDialect) quoteIdentifier(n string) string { return `"` + n + `"` }
func (sqliteDialect) insertReturning() bool           { return false }

type generator struct {
	d dialect
}

// NewGenerator creates a new SQL generator for the given provider.
func NewGenerator(provider string) Generator {
	switch provider {
	case "postgresql", "postgres":
		return &generator{d: postgresDialect{}}
	case "mysql":
		return &generator{d: mysqlDialect{}}
	case "sqlite":
		return &generator{d: sqliteDialect{}}
	default:
		return &generator{d: postgresDialect{}} // default to postgres
	}
}

func (g *generator) GenerateSelect(table string, columns []string, joins []Join, conds []Condition, orderBy []OrderBy, limit, offset *int) *Query {
	var parts []string
	var args []interface{}
	argIndex := 1

	// SELECT columns
	if len(columns) == 0 {
		parts = append(parts, "SELECT *")
	} else {
		parts = append(parts, "SELECT "+strings.Join(columns, ", "))
	}

	// FROM table
	parts = append(parts, "FROM "+g.d.quoteIdentifier(table))

	// JOIN clauses
	for _, j := range joins {
		parts = append(parts, fmt.Sprintf("%s JOIN %s ON %s %s %s",
			j.Kind, g.d.quoteIdentifier(j.Table), j.Left, j.Operator, j.Right))
	}

	// WHERE clause
	if len(conds) > 0 {
		whereSQL, whereArgs := g.compileWhere(conds, &argIndex)
		parts = append(parts, "WHERE "+whereSQL)
		args = append(args, whereArgs...)
	}

	// ORDER BY
	if len(orderBy) > 0 {
		orderParts := make([]string, len(orderBy))
		for i, ob := range orderBy {
			direction := "ASC"
			if strings.EqualFold(ob.Direction, "DESC") {
				direction = "DESC"
			}
			orderParts[i] = g.d.quoteIdentifier(ob.Column) + " " + direction
		}
		parts = append(parts, "ORDER BY "+strings.Join(orderParts, ", "))
	}

	// LIMIT: any set value renders, including zero.
	if limit != nil {
		parts = append(parts, "LIMIT "+g.d.placeholder(argIndex))
		args = append(args, *limit)
		argIndex++
	}

	// OFFSET
	if offset != nil {
		if _, ok := g.d.(mysqlDialect); ok && limit == nil {
			// MySQL requires LIMIT when using OFFSET
			parts = append(parts, "LIMIT 18446744073709551615")
		}
		parts = append(parts, "OFFSET "+g.d.placeholder(argIndex))
		args = append(args, *offset)
	}

	return &Query{SQL: strings.Join(parts, " "), Args: args}
}

func (g *generator) GenerateCount(table string, joins []Join, conds []Condition) *Query {
	var parts []string
	var args []interface{}
	argIndex := 1

	parts = append(parts, "SELECT COUNT(*) AS aggregate")
	parts = append(parts, "FROM "+g.d.quoteIdentifier(table))

	for _, j := range joins {
		parts = append(parts, fmt.Sprintf("%s JOIN %s ON %s %s %s",
			j.Kind, g.d.quoteIdentifier(j.Table), j.Left, j.Operator, j.Right))
	}

	if len(conds) > 0 {
		whereSQL, whereArgs := g.compileWhere(conds, &argIndex)
		parts = append(parts, "WHERE "+whereSQL)
		args = append(args, whereArgs...)
	}

	return &Query{SQL: strings.Join(parts, " "), Args: args}
}

func (g *generator) GenerateInsert(table, primaryKey string, data map[string]interface{}) *Query {
	var parts []string
	var args []interface{}
	argIndex := 1

	parts = append(parts, "INSERT INTO "+g.d.quoteIdentifier(table))

	columns := sortedColumns(data)
	quotedCols := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quotedCols[i] = g.d.quoteIdentifier(col)
		placeholders[i] = g.d.placeholder(argIndex)
		args = append(args, data[col])
		argIndex++
	}
	parts = append(parts, "("+strings.Join(quotedCols, ", ")+")")
	parts = append(parts, "VALUES ("+strings.Join(placeholders, ", ")+")")

	returning := false
	if g.d.insertReturning() {
		parts = append(parts, "RETURNING "+g.d.quoteIdentifier(primaryKey))
		returning = true
	}

	return &Query{SQL: strings.Join(parts, " "), Args: args, Returning: returning}
}

func (g *generator) GenerateUpdate(table string, data map[string]interface{}, conds []Condition) *Query {
	var parts []string
	var args []interface{}
	argIndex := 1

	parts = append(parts, "UPDATE "+g.d.quoteIdentifier(table))

	columns := sortedColumns(data)
	setParts := make([]string, len(columns))
	for i, col := range columns {
		setParts[i] = g.d.quoteIdentifier(col) + " = " + g.d.placeholder(argIndex)
		args = append(args, data[col])
		argIndex++
	}
	parts = append(parts, "SET "+strings.Join(setParts, ", "))

	// No predicates means the whole table is updated. Intentional, the
	// builder documents it rather than guarding against it.
	if len(conds) > 0 {
		whereSQL, whereArgs := g.compileWhere(conds, &argIndex)
		parts = append(parts, "WHERE "+whereSQL)
		args = append(args, whereArgs...)
	}

	return &Query{SQL: strings.Join(parts, " "), Args: args}
}

func (g *generator) GenerateDelete(table string, conds []Condition) *Query {
	var parts []string
	var args []interface{}
	argIndex := 1

	parts = append(parts, "DELETE FROM "+g.d.quoteIdentifier(table))

	// Same whole-table caveat as GenerateUpdate.
	if len(conds) > 0 {
		whereSQL, whereArgs := g.compileWhere(conds, &argIndex)
		parts = append(parts, "WHERE "+whereSQL)
		args = append(args, whereArgs...)
	}

	return &Query{SQL: strings.Join(parts, " "), Args: args}
}

// compileWhere renders predicates in insertion order. The first predicate
// carries no boolean keyword, each later one self-embeds its own. Bindings
// are appended in exactly the order their placeholders are emitted.
func (g *generator) compileWhere(conds []Condition, argIndex *int) (string, []interface{}) {
	var b strings.Builder
	var args []interface{}

	for i, cond := range conds {
		if i > 0 {
			join := cond.Bool
			if join == "" {
				join = "AND"
			}
			b.WriteString(" " + join + " ")
		}

		if strings.EqualFold(cond.Operator, "IN") {
			placeholders := make([]string, len(cond.Values))
			for j, v := range cond.Values {
				placeholders[j] = g.d.placeholder(*argIndex)
				args = append(args, v)
				(*argIndex)++
			}
			b.WriteString(g.d.quoteIdentifier(cond.Column) + " IN (" + strings.Join(placeholders, ", ") + ")")
			continue
		}

		b.WriteString(g.d.quoteIdentifier(cond.Column) + " " + cond.Operator + " " + g.d.placeholder(*argIndex))
		args = append(args, cond.Value)
		(*argIndex)++
	}

	return b.String(), args
}

// sortedColumns returns the map's keys in sorted order so generated
// statements are deterministic.
func sortedColumns(data map[string]interface{}) []string {
	columns := make([]string, 0, len(data))
	for col := range data {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}

// Package executor runs generated statements against database/sql and
// converts results into column-name keyed row maps.
package executor

import (
	"context"
	"database/sql"
	"time"

	"github.com/ormkit/ormkit/internal/debug"
	"github.com/ormkit/ormkit/runtime"
)

// Result reports the outcome of a statement that does not return rows.
type Result struct {
	RowsAffected int64
	LastInsertID int64
}

// Executor is the execution primitive consumed by the query builder and the
// model layer. Implementations run one parameterized statement per call.
type Executor interface {
	// Query runs a row-returning statement and fetches every row.
	Query(ctx context.Context, sqlText string, args []interface{}) ([]map[string]interface{}, error)

	// QueryRow runs a row-returning statement and fetches the first row,
	// or nil when the result set is empty.
	QueryRow(ctx context.Context, sqlText string, args []interface{}) (map[string]interface{}, error)

	// Exec runs a statement and reports affected rows and, where the
	// driver supports it, the last generated id.
	Exec(ctx context.Context, sqlText string, args []interface{}) (Result, error)
}

// DBTX is the subset of *sql.DB and *sql.Tx the executor needs, so the same
// executor serves both direct and in-transaction execution.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SQLExecutor adapts a database/sql handle to the Executor interface.
type SQLExecutor struct {
	db DBTX
}

// NewSQLExecutor creates an executor over a *sql.DB or *sql.Tx.
func NewSQLExecutor(db DBTX) *SQLExecutor {
	return &SQLExecutor{db: db}
}

func (e *SQLExecutor) Query(ctx context.Context, sqlText string, args []interface{}) ([]map[string]interface{}, error) {
	start := time.Now()
	rows, err := e.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		debug.LogSQLError(sqlText, args, err)
		return nil, &runtime.QueryError{Operation: "query", Cause: err, Query: sqlText, Args: args}
	}
	defer rows.Close()

	results, err := ScanRows(rows)
	if err != nil {
		return nil, &runtime.QueryError{Operation: "scan", Cause: err, Query: sqlText, Args: args}
	}
	debug.LogSQL(sqlText, args, time.Since(start))
	return results, nil
}

func (e *SQLExecutor) QueryRow(ctx context.Context, sqlText string, args []interface{}) (map[string]interface{}, error) {
	results, err := e.Query(ctx, sqlText, args)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (e *SQLExecutor) Exec(ctx context.Context, sqlText string, args []interface{}) (Result, error) {
	start := time.Now()
	res, err := e.db.ExecContext(ctx, sqlText, args...)
	if err != nil {
		debug.LogSQLError(sqlText, args, err)
		return Result{}, &runtime.QueryError{Operation: "exec", Cause: err, Query: sqlText, Args: args}
	}

	var out Result
	if n, err := res.RowsAffected(); err == nil {
		out.RowsAffected = n
	}
	// Not every driver supports this (lib/pq does not); inserts on such
	// providers go through Query with a RETURNING clause instead.
	if id, err := res.LastInsertId(); err == nil {
		out.LastInsertID = id
	}
	debug.LogSQL(sqlText, args, time.Since(start))
	return out, nil
}

// ScanRows converts a *sql.Rows into a slice of column-name keyed maps.
// Driver []byte values are converted to string so row maps are comparable
// and serialize cleanly.
func ScanRows(rows *sql.Rows) ([]map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

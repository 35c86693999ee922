package model

import (
	"context"

	"github.com/ormkit/ormkit/query/builder"
	"github.com/ormkit/ormkit/query/executor"
	"github.com/ormkit/ormkit/query/sqlgen"
	"github.com/ormkit/ormkit/runtime"
)

// Type is the per-entity handle exposing finder and bulk operations. The
// executor and generator are explicit dependencies, there is no implicit
// process-wide connection.
type Type struct {
	def  Definition
	exec executor.Executor
	gen  sqlgen.Generator
}

// NewType creates an entity handle over an executor and generator.
func NewType(exec executor.Executor, gen sqlgen.Generator, def Definition) *Type {
	return &Type{def: def, exec: exec, gen: gen}
}

// WithExecutor returns a copy of the handle bound to a different executor,
// typically one scoped to a transaction.
func (t *Type) WithExecutor(exec executor.Executor) *Type {
	return &Type{def: t.def, exec: exec, gen: t.gen}
}

// Definition returns the entity declaration.
func (t *Type) Definition() Definition {
	return t.def
}

// Table returns the backing table name.
func (t *Type) Table() string {
	return t.def.table()
}

// PrimaryKey returns the primary key column name.
func (t *Type) PrimaryKey() string {
	return t.def.primaryKey()
}

// Query returns a fresh builder scoped to the entity's table. Terminal
// calls on it return raw row maps, not records; use Hydrate to convert.
func (t *Type) Query() *builder.Builder {
	return builder.New(t.exec, t.gen, t.def.table()).PrimaryKey(t.def.primaryKey())
}

// Where starts an ad-hoc query against the entity's table. The returned
// builder yields raw row maps; this raw tier sits alongside the typed
// results of Find, All and Create.
func (t *Type) Where(column string, args ...interface{}) *builder.Builder {
	return t.Query().Where(column, args...)
}

// WhereIn starts an ad-hoc query with an IN predicate.
func (t *Type) WhereIn(column string, values []interface{}) *builder.Builder {
	return t.Query().WhereIn(column, values)
}

// Find returns the record with the given primary key, or nil when no row
// matches. Absence is not an error.
func (t *Type) Find(ctx context.Context, id interface{}) (*Record, error) {
	row, err := t.Query().Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return t.Hydrate(row), nil
}

// FindOrFail returns the record with the given primary key or a not-found
// error carrying the requested id.
func (t *Type) FindOrFail(ctx context.Context, id interface{}) (*Record, error) {
	rec, err := t.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &runtime.NotFoundError{Table: t.def.table(), ID: id}
	}
	return rec, nil
}

// All returns every row of the table as records, in storage order. There is
// no implicit limit; the caller accepts the full-table materialization cost.
func (t *Type) All(ctx context.Context) ([]*Record, error) {
	rows, err := t.Query().Get(ctx)
	if err != nil {
		return nil, err
	}
	return t.HydrateAll(rows), nil
}

// Create constructs a record from the fillable-filtered attributes,
// persists it and returns the now-persisted instance.
func (t *Type) Create(ctx context.Context, attributes map[string]interface{}) (*Record, error) {
	rec := t.New(attributes)
	if _, err := rec.Save(ctx); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateByID updates the row with the given primary key directly, without
// hydrating an instance, and returns the affected row count.
func (t *Type) UpdateByID(ctx context.Context, id interface{}, attributes map[string]interface{}) (int64, error) {
	return t.Query().Where(t.def.primaryKey(), id).Update(ctx, attributes)
}

// DeleteByID deletes the row with the given primary key directly and
// returns the affected row count.
func (t *Type) DeleteByID(ctx context.Context, id interface{}) (int64, error) {
	return t.Query().Where(t.def.primaryKey(), id).Delete(ctx)
}

// Count returns the number of rows in the table.
func (t *Type) Count(ctx context.Context) (int64, error) {
	return t.Query().Count(ctx)
}

// Exists reports whether the table has any rows.
func (t *Type) Exists(ctx context.Context) (bool, error) {
	return t.Query().Exists(ctx)
}

// New constructs an unpersisted record, applying the fillable filter to the
// given attributes.
func (t *Type) New(attributes map[string]interface{}) *Record {
	rec := &Record{
		typ:      t,
		attrs:    map[string]interface{}{},
		original: map[string]interface{}{},
	}
	return rec.Fill(attributes)
}

// Hydrate wraps a storage row in a persisted record with its original
// snapshot synced.
func (t *Type) Hydrate(row map[string]interface{}) *Record {
	rec := &Record{
		typ:      t,
		attrs:    make(map[string]interface{}, len(row)),
		original: make(map[string]interface{}, len(row)),
		exists:   true,
	}
	for k, v := range row {
		rec.attrs[k] = v
		rec.original[k] = v
	}
	return rec
}

// HydrateAll wraps a row slice in records.
func (t *Type) HydrateAll(rows []map[string]interface{}) []*Record {
	records := make([]*Record, len(rows))
	for i, row := range rows {
		records[i] = t.Hydrate(row)
	}
	return records
}

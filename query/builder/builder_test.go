package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ormkit/ormkit/query/executor"
	"github.com/ormkit/ormkit/query/sqlgen"
	"github.com/ormkit/ormkit/runtime"
)

type statement struct {
	sql  string
	args []interface{}
}

// fakeExec records every statement and replays queued responses.
type fakeExec struct {
	statements []statement
	rowQueue   [][]map[string]interface{}
	execQueue  []executor.Result
}

func (f *fakeExec) Query(_ context.Context, sqlText string, args []interface{}) ([]map[string]interface{}, error) {
	f.statements = append(f.statements, statement{sqlText, args})
	if len(f.rowQueue) == 0 {
		return nil, nil
	}
	rows := f.rowQueue[0]
	f.rowQueue = f.rowQueue[1:]
	return rows, nil
}

func (f *fakeExec) QueryRow(ctx context.Context, sqlText string, args []interface{}) (map[string]interface{}, error) {
	rows, err := f.Query(ctx, sqlText, args)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (f *fakeExec) Exec(_ context.Context, sqlText string, args []interface{}) (executor.Result, error) {
	f.statements = append(f.statements, statement{sqlText, args})
	if len(f.execQueue) == 0 {
		return executor.Result{}, nil
	}
	res := f.execQueue[0]
	f.execQueue = f.execQueue[1:]
	return res, nil
}

func newTestBuilder(fake *fakeExec) *Builder {
	return New(fake, sqlgen.NewGenerator("sqlite"), "users")
}

func TestWhereTwoArgumentFormMeansEquals(t *testing.T) {
	fake := &fakeExec{}
	b := newTestBuilder(fake)

	_, err := b.Where("status", "active").Get(context.Background())
	require.NoError(t, err)

	require.Len(t, fake.statements, 1)
	require.Equal(t, `SELECT * FROM "users" WHERE "status" = ?`, fake.statements[0].sql)
	require.Equal(t, []interface{}{"active"}, fake.statements[0].args)
}

func TestOrWhereJoinsWithOr(t *testing.T) {
	fake := &fakeExec{}
	b := newTestBuilder(fake)

	_, err := b.Where("role", "admin").OrWhere("role", "owner").Get(context.Background())
	require.NoError(t, err)

	require.Equal(t, `SELECT * FROM "users" WHERE "role" = ? OR "role" = ?`, fake.statements[0].sql)
}

func TestWhereOperatorsArePassedThrough(t *testing.T) {
	fake := &fakeExec{}
	b := newTestBuilder(fake)

	_, err := b.Where("age", ">", 25).Where("name", "like", "J%").Get(context.Background())
	require.NoError(t, err)

	require.Equal(t, `SELECT * FROM "users" WHERE "age" > ? AND "name" like ?`, fake.statements[0].sql)
	require.Equal(t, []interface{}{25, "J%"}, fake.statements[0].args)
}

func TestWhereInBindsValuesInOrder(t *testing.T) {
	fake := &fakeExec{}
	b := newTestBuilder(fake)

	_, err := b.WhereIn("id", []interface{}{3, 1, 2}).Get(context.Background())
	require.NoError(t, err)

	require.Equal(t, `SELECT * FROM "users" WHERE "id" IN (?, ?, ?)`, fake.statements[0].sql)
	require.Equal(t, []interface{}{3, 1, 2}, fake.statements[0].args)
}

func TestWhereInEmptyFailsWithoutRoundTrip(t *testing.T) {
	fake := &fakeExec{}
	b := newTestBuilder(fake)

	_, err := b.WhereIn("id", nil).Get(context.Background())

	require.ErrorIs(t, err, runtime.ErrInvalidArgument)
	require.Empty(t, fake.statements)
}

func TestOrderByRejectsInvalidDirection(t *testing.T) {
	fake := &fakeExec{}
	b := newTestBuilder(fake)

	_, err := b.OrderBy("name", "sideways").Get(context.Background())

	require.ErrorIs(t, err, runtime.ErrInvalidDirection)
	require.Empty(t, fake.statements)
}

func TestOrderByNormalizesCase(t *testing.T) {
	fake := &fakeExec{}
	b := newTestBuilder(fake)

	_, err := b.OrderBy("name", "desc").Get(context.Background())
	require.NoError(t, err)

	require.Contains(t, fake.statements[0].sql, `ORDER BY "name" DESC`)
}

func TestLimitZeroIsNotDroppedSilently(t *testing.T) {
	fake := &fakeExec{}
	b := newTestBuilder(fake)

	_, err := b.Limit(0).Get(context.Background())
	require.NoError(t, err)

	require.Equal(t, `SELECT * FROM "users" LIMIT ?`, fake.statements[0].sql)
	require.Equal(t, []interface{}{0}, fake.statements[0].args)
}

func TestFirstReturnsNilForNoRowsAndKeepsLimit(t *testing.T) {
	fake := &fakeExec{}
	b := newTestBuilder(fake)

	row, err := b.Where("id", 99).First(context.Background())

	require.NoError(t, err)
	require.Nil(t, row)
	require.Contains(t, fake.statements[0].sql, "LIMIT ?")
	require.Nil(t, b.GetLimit())
}

func TestFindUsesPrimaryKey(t *testing.T) {
	fake := &fakeExec{}
	b := New(fake, sqlgen.NewGenerator("sqlite"), "accounts").PrimaryKey("account_id")

	_, err := b.Find(context.Background(), 12)
	require.NoError(t, err)

	require.Contains(t, fake.statements[0].sql, `"account_id" = ?`)
	require.Equal(t, []interface{}{12, 1}, fake.statements[0].args)
}

func TestCountLeavesSelectListUntouched(t *testing.T) {
	fake := &fakeExec{rowQueue: [][]map[string]interface{}{
		{{"aggregate": int64(2)}},
	}}
	b := newTestBuilder(fake).Select("name", "email")

	n, err := b.Count(context.Background())

	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.Equal(t, `SELECT COUNT(*) AS aggregate FROM "users"`, fake.statements[0].sql)
	require.Equal(t, []string{"name", "email"}, b.Columns())
}

func TestExists(t *testing.T) {
	fake := &fakeExec{rowQueue: [][]map[string]interface{}{
		{{"aggregate": int64(0)}},
	}}
	b := newTestBuilder(fake)

	ok, err := b.Exists(context.Background())

	require.NoError(t, err)
	require.False(t, ok)
}

func TestInsertEmptyPayloadFailsWithoutRoundTrip(t *testing.T) {
	fake := &fakeExec{}
	b := newTestBuilder(fake)

	_, err := b.Insert(context.Background(), map[string]interface{}{})

	require.ErrorIs(t, err, runtime.ErrInvalidArgument)
	require.Empty(t, fake.statements)
}

func TestUpdateEmptyPayloadFailsWithoutRoundTrip(t *testing.T) {
	fake := &fakeExec{}
	b := newTestBuilder(fake)

	_, err := b.Update(context.Background(), nil)

	require.ErrorIs(t, err, runtime.ErrInvalidArgument)
	require.Empty(t, fake.statements)
}

func TestInsertReturnsLastInsertID(t *testing.T) {
	fake := &fakeExec{execQueue: []executor.Result{{RowsAffected: 1, LastInsertID: 42}}}
	b := newTestBuilder(fake)

	id, err := b.Insert(context.Background(), map[string]interface{}{"name": "John"})

	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestInsertPostgresReadsReturningRow(t *testing.T) {
	fake := &fakeExec{rowQueue: [][]map[string]interface{}{
		{{"id": int64(7)}},
	}}
	b := New(fake, sqlgen.NewGenerator("postgresql"), "users")

	id, err := b.Insert(context.Background(), map[string]interface{}{"name": "Jane"})

	require.NoError(t, err)
	require.Equal(t, int64(7), id)
	require.Contains(t, fake.statements[0].sql, `RETURNING "id"`)
}

func TestUpdateWithoutPredicatesUpdatesEveryRow(t *testing.T) {
	fake := &fakeExec{execQueue: []executor.Result{{RowsAffected: 9}}}
	b := newTestBuilder(fake)

	n, err := b.Update(context.Background(), map[string]interface{}{"active": false})

	require.NoError(t, err)
	require.Equal(t, int64(9), n)
	require.NotContains(t, fake.statements[0].sql, "WHERE")
}

func TestDeleteScopedByPredicates(t *testing.T) {
	fake := &fakeExec{execQueue: []executor.Result{{RowsAffected: 1}}}
	b := newTestBuilder(fake)

	n, err := b.Where("id", 3).Delete(context.Background())

	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	require.Equal(t, `DELETE FROM "users" WHERE "id" = ?`, fake.statements[0].sql)
}

func TestResetRestoresFreshState(t *testing.T) {
	fake := &fakeExec{}
	b := newTestBuilder(fake).
		Select("name").
		Where("status", "active").
		WhereIn("id", nil). // records an error too
		LeftJoin("posts", "users.id", "=", "posts.user_id").
		With("posts").
		Offset(5)

	b.Reset()

	fresh := newTestBuilder(fake)
	require.Equal(t, fresh, b)
	require.NoError(t, b.Err())
}

func TestEagerLoadHintsAreAdvisoryOnly(t *testing.T) {
	fake := &fakeExec{}
	b := newTestBuilder(fake).With("posts", "profile").Load("roles")

	require.Equal(t, []string{"posts", "profile", "roles"}, b.EagerLoads())

	_, err := b.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, `SELECT * FROM "users"`, fake.statements[0].sql)
}

func TestValuesNeverEnterSQLText(t *testing.T) {
	fake := &fakeExec{}
	b := newTestBuilder(fake)
	malicious := `'; DROP TABLE users; --`

	_, err := b.Where("name", malicious).Get(context.Background())
	require.NoError(t, err)

	require.NotContains(t, fake.statements[0].sql, malicious)
	require.Equal(t, []interface{}{malicious}, fake.statements[0].args)
}

func TestScenarioActiveAdultsOrderedByName(t *testing.T) {
	// Seeded storage holds Jane (30, active) and Bob (20, inactive); only
	// Jane satisfies both predicates.
	fake := &fakeExec{rowQueue: [][]map[string]interface{}{
		{{"id": int64(1), "name": "Jane", "age": int64(30), "status": "active"}},
	}}
	b := newTestBuilder(fake)

	rows, err := b.
		Where("status", "active").
		Where("age", ">", 25).
		OrderBy("name", "ASC").
		Limit(1).
		Get(context.Background())

	require.NoError(t, err)
	require.Equal(t,
		`SELECT * FROM "users" WHERE "status" = ? AND "age" > ? ORDER BY "name" ASC LIMIT ?`,
		fake.statements[0].sql)
	require.Equal(t, []interface{}{"active", 25, 1}, fake.statements[0].args)
	require.Len(t, rows, 1)
	require.Equal(t, "Jane", rows[0]["name"])
}

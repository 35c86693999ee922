package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ormkit/ormkit/query/executor"
	"github.com/ormkit/ormkit/runtime"
)

func TestFillRespectsFillableAllowList(t *testing.T) {
	users := newUserType(&fakeExec{})

	rec := users.New(map[string]interface{}{
		"name":     "John Doe",
		"is_admin": true, // not fillable, silently dropped
	})

	_, ok := rec.Get("is_admin")
	require.False(t, ok)
	require.Equal(t, "John Doe", rec.GetString("name"))
}

func TestFillUnrestrictedWhenFillableEmpty(t *testing.T) {
	posts := newPostType(&fakeExec{})
	open := NewType(&fakeExec{}, posts.gen, Definition{Name: "Log"})

	rec := open.New(map[string]interface{}{"anything": 1})

	v, ok := rec.Get("anything")
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestGetDistinguishesUnsetFromNil(t *testing.T) {
	users := newUserType(&fakeExec{})
	rec := users.New(nil).Set("email", nil)

	_, ok := rec.Get("name")
	require.False(t, ok)

	v, ok := rec.Get("email")
	require.True(t, ok)
	require.Nil(t, v)
}

func TestSaveInsertsNewRecordAndSyncsState(t *testing.T) {
	fake := &fakeExec{execQueue: []executor.Result{{RowsAffected: 1, LastInsertID: 5}}}
	users := newUserType(fake)

	rec := users.New(map[string]interface{}{"name": "John Doe", "email": "john@example.com", "age": 25})
	saved, err := rec.Save(context.Background())

	require.NoError(t, err)
	require.True(t, saved)
	require.True(t, rec.Exists())
	require.Equal(t, int64(5), rec.GetInt64("id"))
	require.False(t, rec.IsDirty())

	require.Len(t, fake.statements, 1)
	require.Equal(t,
		"INSERT INTO \"users\" (\"age\", \"email\", \"name\") VALUES (?, ?, ?)",
		fake.statements[0].sql)
}

func TestSaveInsertWithNothingFillableFails(t *testing.T) {
	fake := &fakeExec{}
	users := newUserType(fake)

	rec := users.New(map[string]interface{}{"is_admin": true})
	_, err := rec.Save(context.Background())

	require.ErrorIs(t, err, runtime.ErrInvalidArgument)
	require.Empty(t, fake.statements)
}

func TestSaveWithNoDirtyAttributesIsNoopSuccess(t *testing.T) {
	fake := &fakeExec{}
	users := newUserType(fake)

	rec := users.Hydrate(map[string]interface{}{"id": int64(1), "name": "Jane"})
	saved, err := rec.Save(context.Background())

	require.NoError(t, err)
	require.True(t, saved)
	require.Empty(t, fake.statements)
}

func TestSaveUpdatesOnlyDirtyAttributes(t *testing.T) {
	fake := &fakeExec{execQueue: []executor.Result{{RowsAffected: 1}}}
	users := newUserType(fake)

	rec := users.Hydrate(map[string]interface{}{"id": int64(1), "name": "Jane", "age": int64(30)})
	rec.Set("name", "Jane Q")

	saved, err := rec.Save(context.Background())

	require.NoError(t, err)
	require.True(t, saved)
	require.Len(t, fake.statements, 1)
	require.Equal(t, `UPDATE "users" SET "name" = ? WHERE "id" = ?`, fake.statements[0].sql)
	require.Equal(t, []interface{}{"Jane Q", int64(1)}, fake.statements[0].args)
	require.False(t, rec.IsDirty())
}

func TestSaveUpdateWithoutPrimaryKeyFails(t *testing.T) {
	fake := &fakeExec{}
	users := newUserType(fake)

	rec := users.Hydrate(map[string]interface{}{"name": "Jane"})
	rec.Set("name", "Janet")

	_, err := rec.Save(context.Background())

	require.ErrorIs(t, err, runtime.ErrMissingPrimaryKey)
	require.Empty(t, fake.statements)
}

func TestSaveUpdateAffectingZeroRowsReportsFailure(t *testing.T) {
	fake := &fakeExec{execQueue: []executor.Result{{RowsAffected: 0}}}
	users := newUserType(fake)

	rec := users.Hydrate(map[string]interface{}{"id": int64(1), "name": "Jane"})
	rec.Set("name", "Janet")

	saved, err := rec.Save(context.Background())

	require.NoError(t, err)
	require.False(t, saved)
	require.True(t, rec.IsDirty(), "failed update must not resync the snapshot")
}

func TestDeleteOnUnpersistedRecordIsNoopFailure(t *testing.T) {
	fake := &fakeExec{}
	users := newUserType(fake)

	deleted, err := users.New(map[string]interface{}{"name": "x"}).Delete(context.Background())

	require.NoError(t, err)
	require.False(t, deleted)
	require.Empty(t, fake.statements)
}

func TestDeleteFlipsExists(t *testing.T) {
	fake := &fakeExec{execQueue: []executor.Result{{RowsAffected: 1}}}
	users := newUserType(fake)

	rec := users.Hydrate(map[string]interface{}{"id": int64(3)})
	deleted, err := rec.Delete(context.Background())

	require.NoError(t, err)
	require.True(t, deleted)
	require.False(t, rec.Exists())
	require.Equal(t, `DELETE FROM "users" WHERE "id" = ?`, fake.statements[0].sql)
}

func TestDeleteAffectingZeroRowsReportsFailure(t *testing.T) {
	fake := &fakeExec{execQueue: []executor.Result{{RowsAffected: 0}}}
	users := newUserType(fake)

	rec := users.Hydrate(map[string]interface{}{"id": int64(3)})
	deleted, err := rec.Delete(context.Background())

	require.NoError(t, err)
	require.False(t, deleted)
	require.True(t, rec.Exists())
}

func TestToArrayStripsHiddenColumns(t *testing.T) {
	users := newUserType(&fakeExec{})

	rec := users.Hydrate(map[string]interface{}{
		"id":       int64(1),
		"name":     "John Doe",
		"password": "secret-hash",
	})
	rec.Set("password", "rotated-hash") // hidden even when set later

	out := rec.ToArray()
	require.NotContains(t, out, "password")
	require.Equal(t, "John Doe", out["name"])

	js, err := rec.ToJSON()
	require.NoError(t, err)
	require.NotContains(t, js, "secret-hash")
	require.NotContains(t, js, "rotated-hash")
	require.Contains(t, js, "John Doe")
}

func TestDirtyAttributesIncludeNewlySetKeys(t *testing.T) {
	users := newUserType(&fakeExec{})

	rec := users.Hydrate(map[string]interface{}{"id": int64(1), "name": "Jane"})
	rec.Set("email", "jane@example.com")

	dirty := rec.DirtyAttributes()
	require.Equal(t, map[string]interface{}{"email": "jane@example.com"}, dirty)
}

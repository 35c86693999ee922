package model

import (
	"context"

	"github.com/ormkit/ormkit/query/executor"
	"github.com/ormkit/ormkit/query/sqlgen"
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

var userDefinition = Definition{
	Name:     "User",
	Fillable: []string{"name", "email", "age", "password"},
	Hidden:   []string{"password"},
}

var postDefinition = Definition{
	Name:     "Post",
	Fillable: []string{"title", "body", "user_id"},
}

func newUserType(fake *fakeExec) *Type {
	return NewType(fake, sqlgen.NewGenerator("sqlite"), userDefinition)
}

func newPostType(fake *fakeExec) *Type {
	return NewType(fake, sqlgen.NewGenerator("sqlite"), postDefinition)
}

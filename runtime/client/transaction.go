// Package client provides transaction support.
package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ormkit/ormkit/query/executor"
)

// Tx wraps sql.Tx with executor access so builders and models can run
// inside the transaction.
type Tx struct {
	*sql.Tx
	provider string
	done     bool
}

// Executor returns an executor bound to this transaction.
func (tx *Tx) Executor() executor.Executor {
	return executor.NewSQLExecutor(tx.Tx)
}

// Provider returns the provider of the client that began the transaction.
func (tx *Tx) Provider() string {
	return tx.provider
}

// Commit commits the transaction.
func (tx *Tx) Commit() error {
	tx.done = true
	return tx.Tx.Commit()
}

// Rollback aborts the transaction.
func (tx *Tx) Rollback() error {
	tx.done = true
	return tx.Tx.Rollback()
}

// InTransaction reports whether the transaction is still open.
func (tx *Tx) InTransaction() bool {
	return !tx.done
}

// Begin starts a transaction. The caller owns Commit/Rollback.
func (c *Client) Begin(ctx context.Context) (*Tx, error) {
	return c.BeginWithOptions(ctx, nil)
}

// BeginWithOptions starts a transaction with custom sql.TxOptions.
func (c *Client) BeginWithOptions(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	sqlTx, err := c.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{Tx: sqlTx, provider: c.provider}, nil
}

// TransactionFunc is a function that runs within a transaction.
type TransactionFunc func(tx *Tx) error

// Transaction executes a function within a database transaction.
// If the function returns an error or panics, the transaction is rolled
// back; otherwise it is committed.
func (c *Client) Transaction(ctx context.Context, fn TransactionFunc) error {
	return c.TransactionWithOptions(ctx, nil, fn)
}

// TransactionWithOptions executes a transaction with custom options.
func (c *Client) TransactionWithOptions(ctx context.Context, opts *sql.TxOptions, fn TransactionFunc) error {
	tx, err := c.BeginWithOptions(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p) // re-throw panic after rollback
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ReadOnlyTransaction executes a read-only transaction.
func (c *Client) ReadOnlyTransaction(ctx context.Context, fn TransactionFunc) error {
	return c.TransactionWithOptions(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// Package client provides the database client for ormkit.
package client

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver

	"github.com/ormkit/ormkit/query/executor"
	"github.com/ormkit/ormkit/query/sqlgen"
)

// Client is the main database client. It owns the *sql.DB handle and hands
// out executors and generators scoped to its provider.
type Client struct {
	db       *sql.DB
	provider string
}

// New opens a client for the given provider and connection string.
func New(provider string, connectionString string) (*Client, error) {
	driverName := driverFor(provider)
	if driverName == "" {
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	db, err := sql.Open(driverName, connectionString)
	if err != nil {
		return nil, err
	}

	return &Client{db: db, provider: provider}, nil
}

// NewFromDB wraps an already opened database handle.
func NewFromDB(provider string, db *sql.DB) *Client {
	return &Client{db: db, provider: provider}
}

// driverFor maps provider names to database/sql driver names.
func driverFor(provider string) string {
	switch provider {
	case "postgresql", "postgres":
		return "postgres"
	case "mysql":
		return "mysql"
	case "sqlite":
		return "sqlite3"
	default:
		return ""
	}
}

// Connect verifies the connection.
func (c *Client) Connect(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Disconnect closes the database connection.
func (c *Client) Disconnect() error {
	return c.db.Close()
}

// DB returns the underlying database handle.
func (c *Client) DB() *sql.DB {
	return c.db
}

// Provider returns the configured provider name.
func (c *Client) Provider() string {
	return c.provider
}

// Executor returns an executor over the client's connection.
func (c *Client) Executor() executor.Executor {
	return executor.NewSQLExecutor(c.db)
}

// Generator returns a SQL generator for the client's provider.
func (c *Client) Generator() sqlgen.Generator {
	return sqlgen.NewGenerator(c.provider)
}

// Package graph persists articles and their owned entities into Neo4j. All
// writes are MERGE-based upserts with parameter binding, so reloading the
// same collection converges to the same graph instead of duplicating it.
package graph

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Ramsey-B/laurel/pkg/tracing"
)

// Config holds the connection settings for the graph database.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// URI returns the bolt connection string.
func (c Config) URI() string {
	return fmt.Sprintf("bolt://%s:%d", c.Host, c.Port)
}

// Client wraps the Neo4j driver with session management and logging.
type Client struct {
	driver neo4j.DriverWithContext
	logger ectologger.Logger
}

// NewClient creates a client for the configured database. An empty username
// selects unauthenticated access, which local development databases allow.
func NewClient(cfg Config, logger ectologger.Logger) (*Client, error) {
	auth := neo4j.NoAuth()
	if cfg.Username != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI(), auth)
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver for %s: %w", cfg.URI(), err)
	}

	return &Client{
		driver: driver,
		logger: logger,
	}, nil
}

// VerifyConnectivity checks that the database is reachable.
func (c *Client) VerifyConnectivity(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, "graph.Client.VerifyConnectivity")
	defer span.End()

	if err := c.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("verify neo4j connectivity: %w", err)
	}
	return nil
}

// ExecuteWrite runs work inside a managed write transaction.
func (c *Client) ExecuteWrite(ctx context.Context, work neo4j.ManagedTransactionWork) (any, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.Client.ExecuteWrite")
	defer span.End()

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	return session.ExecuteWrite(ctx, work)
}

// ExecuteRead runs work inside a managed read transaction.
func (c *Client) ExecuteRead(ctx context.Context, work neo4j.ManagedTransactionWork) (any, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.Client.ExecuteRead")
	defer span.End()

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	return session.ExecuteRead(ctx, work)
}

// Close releases the driver and its connection pool.
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

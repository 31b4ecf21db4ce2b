package snowflake

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sf "github.com/snowflakedb/gosnowflake"
)

// Client manages the Snowflake connection pool.
type Client struct {
	db *sql.DB
}

// NewClient creates a Snowflake client and verifies the connection with a ping.
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := &ClientConfig{
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Minute,
		LoginTimeout:    15 * time.Second,
		QueryTimeout:    60 * time.Second,
		KeepAlive:       true,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	dsn, err := buildDSN(*cfg)
	if err != nil {
		return nil, fmt.Errorf("snowflake dsn: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("snowflake open: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LoginTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close() // best-effort close
		return nil, fmt.Errorf("snowflake ping: %w", err)
	}

	return &Client{db: db}, nil
}

// validate checks the six required connection fields. Values are not
// interpreted locally; the warehouse rejects bad ones at connect time.
func (c *ClientConfig) validate() error {
	for _, f := range []struct {
		name, val string
	}{
		{"account", c.Account},
		{"user", c.User},
		{"password", c.Password},
		{"database", c.Database},
		{"schema", c.Schema},
		{"warehouse", c.Warehouse},
	} {
		if f.val == "" {
			return fmt.Errorf("%s is required", f.name)
		}
	}
	return nil
}

// DB returns *sql.DB for direct use.
func (c *Client) DB() *sql.DB {
	return c.db
}

// ClientSource adapts NewClient into a per-invocation connection source: each
// call opens a fresh client and hands back its pool plus the close func. A
// dashboard refresh always starts from a new connection.
func ClientSource(opts ...ClientOption) func(context.Context) (*sql.DB, func() error, error) {
	return func(ctx context.Context) (*sql.DB, func() error, error) {
		c, err := NewClient(opts...)
		if err != nil {
			return nil, nil, err
		}
		return c.db, c.Close, nil
	}
}

// Session acquires a dedicated session from the pool. The caller must Close it.
func (c *Client) Session(ctx context.Context) (*Session, error) {
	return NewSession(ctx, c.db)
}

// Health performs health check.
func (c *Client) Health(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes connection pool.
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func buildDSN(cfg ClientConfig) (string, error) {
	sc := &sf.Config{
		Account:          cfg.Account,
		User:             cfg.User,
		Password:         cfg.Password,
		Database:         cfg.Database,
		Schema:           cfg.Schema,
		Warehouse:        cfg.Warehouse,
		Role:             cfg.Role,
		KeepSessionAlive: cfg.KeepAlive,
	}
	if cfg.LoginTimeout > 0 {
		sc.LoginTimeout = cfg.LoginTimeout
	}
	if cfg.QueryTimeout > 0 {
		sc.ClientTimeout = cfg.QueryTimeout
	}
	return sf.DSN(sc)
}

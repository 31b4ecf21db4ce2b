package snowflake

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Session is a single dedicated warehouse session. It pins one connection so
// that USE statements apply to every query issued through it.
type Session struct {
	conn *sql.Conn
}

// NewSession pins one connection from the pool. The caller must Close it on
// every exit path.
func NewSession(ctx context.Context, db *sql.DB) (*Session, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire session: %w", err)
	}
	return &Session{conn: conn}, nil
}

// ApplyContext sets the session context with USE statements. The warehouse
// statement runs last so database/schema errors surface first.
func (s *Session) ApplyContext(ctx context.Context, database, schema, warehouse string) error {
	stmts := []string{
		"USE DATABASE " + quoteIdent(database),
		"USE SCHEMA " + quoteIdent(schema),
		"USE WAREHOUSE " + quoteIdent(warehouse),
	}
	for _, stmt := range stmts {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("session context: %w", err)
		}
	}
	return nil
}

// QueryContext runs a query on the pinned connection.
func (s *Session) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return s.conn.QueryContext(ctx, query, args...)
}

// QueryRowContext runs a single-row query on the pinned connection.
func (s *Session) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return s.conn.QueryRowContext(ctx, query, args...)
}

// ExecContext runs a statement on the pinned connection.
func (s *Session) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return s.conn.ExecContext(ctx, query, args...)
}

// Close returns the connection to the pool.
func (s *Session) Close() error {
	return s.conn.Close()
}

// quoteIdent wraps an identifier in double quotes, doubling embedded quotes.
// Config identifiers are operator-supplied, never end-user input.
func quoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

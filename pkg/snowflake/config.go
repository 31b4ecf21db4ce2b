package snowflake

import "time"

// ClientOption configures Client.
type ClientOption func(*ClientConfig)

// ClientConfig holds Snowflake connection configuration.
type ClientConfig struct {
	Account         string
	User            string
	Password        string
	Database        string
	Schema          string
	Warehouse       string
	Role            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LoginTimeout    time.Duration
	QueryTimeout    time.Duration
	KeepAlive       bool
}

// WithAccount sets the account identifier (e.g. "xy12345.eu-west-1").
func WithAccount(account string) ClientOption {
	return func(c *ClientConfig) {
		c.Account = account
	}
}

// WithCredentials sets username and password.
func WithCredentials(user, password string) ClientOption {
	return func(c *ClientConfig) {
		c.User = user
		c.Password = password
	}
}

// WithDatabase sets database name.
func WithDatabase(database string) ClientOption {
	return func(c *ClientConfig) {
		c.Database = database
	}
}

// WithSchema sets schema name.
func WithSchema(schema string) ClientOption {
	return func(c *ClientConfig) {
		c.Schema = schema
	}
}

// WithWarehouse sets the virtual warehouse used for query execution.
func WithWarehouse(warehouse string) ClientOption {
	return func(c *ClientConfig) {
		c.Warehouse = warehouse
	}
}

// WithRole sets an optional session role.
func WithRole(role string) ClientOption {
	return func(c *ClientConfig) {
		c.Role = role
	}
}

// WithMaxConnections sets max open and idle connections.
func WithMaxConnections(maxOpen, maxIdle int) ClientOption {
	return func(c *ClientConfig) {
		c.MaxOpenConns = maxOpen
		c.MaxIdleConns = maxIdle
	}
}

// WithTimeouts sets login/query timeouts.
func WithTimeouts(login, query time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.LoginTimeout = login
		c.QueryTimeout = query
	}
}

// WithKeepAlive enables client_session_keep_alive on the session.
func WithKeepAlive(enabled bool) ClientOption {
	return func(c *ClientConfig) {
		c.KeepAlive = enabled
	}
}

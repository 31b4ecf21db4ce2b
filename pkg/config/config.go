package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Snowflake struct {
		Account      string        `yaml:"account"`
		User         string        `yaml:"user"`
		Password     string        `yaml:"password"`
		Database     string        `yaml:"database"`
		Schema       string        `yaml:"schema"`
		Warehouse    string        `yaml:"warehouse"`
		Role         string        `yaml:"role"`
		LoginTimeout time.Duration `yaml:"login_timeout"`
		QueryTimeout time.Duration `yaml:"query_timeout"`
		KeepAlive    bool          `yaml:"keep_alive"`
	} `yaml:"snowflake"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	c, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides the warehouse credentials
// with environment variables. Secrets normally arrive this way; the YAML
// fields exist for local development only.
func LoadWithEnv(path string) (*Config, error) {
	c, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SNOWFLAKE_ACCOUNT"); v != "" {
		c.Snowflake.Account = v
	}
	if v := os.Getenv("SNOWFLAKE_USER"); v != "" {
		c.Snowflake.User = v
	}
	if v := os.Getenv("SNOWFLAKE_PASSWORD"); v != "" {
		c.Snowflake.Password = v
	}
	if v := os.Getenv("SNOWFLAKE_DATABASE"); v != "" {
		c.Snowflake.Database = v
	}
	if v := os.Getenv("SNOWFLAKE_SCHEMA"); v != "" {
		c.Snowflake.Schema = v
	}
	if v := os.Getenv("SNOWFLAKE_WAREHOUSE"); v != "" {
		c.Snowflake.Warehouse = v
	}
	if v := os.Getenv("SNOWFLAKE_ROLE"); v != "" {
		c.Snowflake.Role = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// loadFile parses without validating, so env overrides can fill the gaps.
func loadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}

// Validate checks if the configuration is valid. Warehouse field values are
// not interpreted; presence is all the core requires before connecting.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	sf := &c.Snowflake
	for _, f := range []struct {
		name, val string
	}{
		{"snowflake.account", sf.Account},
		{"snowflake.user", sf.User},
		{"snowflake.password", sf.Password},
		{"snowflake.database", sf.Database},
		{"snowflake.schema", sf.Schema},
		{"snowflake.warehouse", sf.Warehouse},
	} {
		if f.val == "" {
			return fmt.Errorf("%s is required", f.name)
		}
	}
	return nil
}

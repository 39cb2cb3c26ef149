package postgres

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrConfParamMissing = errors.New("postgres config parameter missing")

type Config struct {
	User     string `toml:"user"`
	Password string `toml:"password"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	DBName   string `toml:"dbName"`
}

// ConfigFromEnv fills empty fields of c from the POSTGRES_* variables.
func ConfigFromEnv(c Config) (Config, error) {
	env := []struct {
		field *string
		name  string
	}{
		{&c.User, "POSTGRES_USER"},
		{&c.Password, "POSTGRES_PASSWORD"},
		{&c.Host, "POSTGRES_HOST"},
		{&c.Port, "POSTGRES_PORT"},
		{&c.DBName, "POSTGRES_DB"},
	}
	for _, e := range env {
		if *e.field == "" {
			*e.field = os.Getenv(e.name)
		}
	}

	if !c.IsValid() {
		return c, fmt.Errorf("%w: %v", ErrConfParamMissing, c)
	}
	return c, nil
}

func (c *Config) ConString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", c.User, c.Password, c.Host, c.Port, c.DBName)
}

func (c Config) String() string {
	c.Password = strings.Repeat("*", len([]rune(c.Password)))

	return fmt.Sprintf("%#v", c)
}

func (c *Config) IsValid() bool {
	if c.User == "" || c.Password == "" || c.Host == "" || c.Port == "" || c.DBName == "" {
		return false
	}
	return true
}

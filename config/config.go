// Package config loads the connection parameters used by mysqlexport.
//
// Parameters come from, in increasing order of precedence:
//   - built-in defaults (localhost:3306, user root, empty password)
//   - the first config file found in the working directory:
//     mysqlexport.yml, mysqlexport.yaml, mysqlexport.json, mysqlexport.toml
//   - environment variables (optionally from a .env file):
//     MYSQLEXPORT_HOST, MYSQLEXPORT_PORT, MYSQLEXPORT_USER, MYSQLEXPORT_PASSWORD
//   - command-line flags
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultHost     = "localhost"
	DefaultPort     = 3306
	DefaultUser     = "root"
	DefaultPassword = ""
)

// Candidates lists the config file names checked by Load, in order.
var Candidates = []string{
	"mysqlexport.yml",
	"mysqlexport.yaml",
	"mysqlexport.json",
	"mysqlexport.toml",
}

// Config holds the connection parameters. Zero values mean "not set".
type Config struct {
	Host     string `yaml:"host" toml:"host"`
	Port     int    `yaml:"port" toml:"port"`
	User     string `yaml:"user" toml:"user"`
	Password string `yaml:"password" toml:"password"`
}

// ParseError reports a config source that exists but cannot be parsed.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing config %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads the first candidate file present in dir. A missing file is not
// an error: an empty Config is returned.
func Load(dir string) (Config, error) {
	for _, name := range Candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("error checking config file %s: %w", path, err)
		}
		return LoadFile(path)
	}
	return Config{}, nil
}

// LoadFile parses path, choosing the decoder by file extension.
// YAML is a superset of JSON, so .json files go through the YAML decoder.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, &ParseError{Source: path, Err: err}
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, &ParseError{Source: path, Err: err}
		}
	}
	return cfg, nil
}

// Merge returns c with every field that is set in o replacing its own.
func (c Config) Merge(o Config) Config {
	if o.Host != "" {
		c.Host = o.Host
	}
	if o.Port != 0 {
		c.Port = o.Port
	}
	if o.User != "" {
		c.User = o.User
	}
	if o.Password != "" {
		c.Password = o.Password
	}
	return c
}

// WithDefaults fills every unset field with its documented default.
func (c Config) WithDefaults() Config {
	return Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		User:     DefaultUser,
		Password: DefaultPassword,
	}.Merge(c)
}

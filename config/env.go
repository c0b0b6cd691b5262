package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvHost     = "MYSQLEXPORT_HOST"
	EnvPort     = "MYSQLEXPORT_PORT"
	EnvUser     = "MYSQLEXPORT_USER"
	EnvPassword = "MYSQLEXPORT_PASSWORD"
)

// DotEnvFile is loaded by FromEnv when present in the working directory.
const DotEnvFile = ".env"

// FromEnv overlays base with the MYSQLEXPORT_* environment variables.
// A .env file in the working directory is loaded first when present; it never
// overrides variables that are already set. A malformed .env is a ParseError.
func FromEnv(base Config) (Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, &ParseError{Source: DotEnvFile, Err: err}
	}
	get := func(envVar string) string {
		return strings.TrimSpace(os.Getenv(envVar))
	}
	env := Config{
		Host:     get(EnvHost),
		User:     get(EnvUser),
		Password: os.Getenv(EnvPassword),
	}
	if p := get(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return Config{}, &ParseError{Source: EnvPort, Err: err}
		}
		env.Port = port
	}
	return base.Merge(env), nil
}

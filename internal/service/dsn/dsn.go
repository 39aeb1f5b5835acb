package dsn

import (
	"fmt"
	"os"
)

// FromEnv builds the postgres DSN from the DB_* variables.
func FromEnv() string {
	return fromPrefix("DB_%s")
}

// FromEnvE2E reads the *_TEST variables used by the end-to-end tests.
func FromEnvE2E() string {
	return fromPrefix("DB_%s_TEST")
}

func fromPrefix(pattern string) string {
	get := func(name string) string {
		return os.Getenv(fmt.Sprintf(pattern, name))
	}

	host := get("HOST")
	if host == "" {
		return ""
	}
	sslmode := get("SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, get("PORT"), get("USER"), get("PASS"), get("NAME"), sslmode)
}

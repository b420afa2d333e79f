// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to application settings needed by different components while keeping
// configuration details separate from business logic.
//
// Environment variables use the LOLA_ prefix with nested keys joined by
// underscores (LOLA_SERVER_PORT, LOLA_OPERATIONS_LIST_USERS). The query
// service credential is read from LOLA_API_KEY. A .env file in the working
// directory is loaded into the process environment first, without overriding
// variables that are already set.
package config

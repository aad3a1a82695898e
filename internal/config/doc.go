// Package config handles configuration loading, parsing, and validation
// from environment variables, an optional .env file and an optional
// config.yaml. Every environment variable carries the TASKAPI_ prefix, with
// nested keys joined by underscores (database.url is TASKAPI_DATABASE_URL).
package config

// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Configuration structs declare their sources via `env` struct tags
// (github.com/caarlos0/env format). Each collaborator package exposes its own
// Config struct (docstore.MongoConfig, notify.RedisConfig, ...) and the
// application composes them at startup.
package config

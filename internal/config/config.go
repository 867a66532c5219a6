// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// taskkeeper application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token signing
	// parameters and the password hashing cost.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for all persistence backends: the
	// document database, the avatar object store, and the token cache.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP
	// server.
	Server Server `envPrefix:"SERVER_"`

	// Mail holds settings for the transactional mail dispatcher.
	Mail Mail `envPrefix:"MAIL_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security and
// token lifecycle.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT bearer
	// tokens. Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token and
	// validated on every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// BcryptCost is the bcrypt work factor used when hashing passwords.
	// Zero means the bcrypt default cost.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`
}

// Server holds network and timeout settings for the inbound HTTP transport.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// Mongo holds the document database connection settings.
	Mongo Mongo `envPrefix:"MONGO_"`

	// Avatars holds the S3-compatible object storage settings for user
	// avatar blobs.
	Avatars Avatars `envPrefix:"AVATARS_"`

	// Cache holds the Redis settings for the bearer-token resolution
	// cache. The cache is optional; an empty Addr disables it.
	Cache Cache `envPrefix:"CACHE_"`
}

// Mongo holds connection settings for the MongoDB backend.
type Mongo struct {
	// URI is the MongoDB connection string
	// (e.g. "mongodb://localhost:27017").
	// Env: STORAGE_MONGO_URI
	URI string `env:"URI"`

	// Database is the name of the database holding the users and tasks
	// collections.
	// Env: STORAGE_MONGO_DATABASE
	Database string `env:"DATABASE"`
}

// Avatars holds settings for the S3-compatible object store where avatar
// images are kept.
type Avatars struct {
	// Endpoint is the object storage endpoint in "host:port" format.
	// Env: STORAGE_AVATARS_ENDPOINT
	Endpoint string `env:"ENDPOINT"`

	// AccessKey and SecretKey are the object storage credentials.
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`

	// Bucket is the bucket name for avatar objects.
	// Env: STORAGE_AVATARS_BUCKET
	Bucket string `env:"BUCKET"`

	// UseSSL selects https for object storage connections.
	// Env: STORAGE_AVATARS_USE_SSL
	UseSSL bool `env:"USE_SSL"`
}

// Cache holds Redis connection settings for the token resolution cache.
type Cache struct {
	// Addr is the Redis address in "host:port" format. Empty disables the
	// cache entirely; token resolution then always hits the database.
	// Env: STORAGE_CACHE_ADDR
	Addr string `env:"ADDR"`

	// Password is the optional Redis AUTH password.
	Password string `env:"PASSWORD"`

	// TokenTTL bounds how long a resolved token stays cached. Revocation
	// removes entries eagerly; the TTL is a backstop.
	// Env: STORAGE_CACHE_TOKEN_TTL
	TokenTTL time.Duration `env:"TOKEN_TTL"`
}

// Mail holds settings for the transactional mail dispatcher.
type Mail struct {
	// APIKey is the SendGrid API key. Empty disables mail dispatch; the
	// application logs and drops notifications instead of sending them.
	// Env: MAIL_API_KEY
	APIKey string `env:"API_KEY"`

	// Sender is the "from" address used for all outgoing mail.
	// Env: MAIL_SENDER
	Sender string `env:"SENDER"`

	// QueueSize is the capacity of the in-memory dispatch queue. When the
	// queue is full new notifications are dropped, not blocked on.
	// Env: MAIL_QUEUE_SIZE
	QueueSize int `env:"QUEUE_SIZE"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

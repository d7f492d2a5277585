package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrTokenSigningKeyTooShort error if config token.signingKey is shorter than MinSigningKeyLen bytes.
	ErrTokenSigningKeyTooShort = errors.New("toml config token.signingKey must be at least 32 bytes")

	// ErrUnsupportedDBEngine error if config db.engine is not mysql or sqlite.
	ErrUnsupportedDBEngine = errors.New("toml config db.engine must be mysql or sqlite")
)

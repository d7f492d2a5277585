package config

import (
	"time"

	"github.com/contentdeck/contentdeck/internal/logger"
)

const (
	// MinSigningKeyLen is the minimum byte length for the token signing key.
	MinSigningKeyLen = 32

	// DefaultTokenExpiry is used when token.expiryTime is not configured.
	DefaultTokenExpiry = time.Hour
)

// Token holds the credential issuance settings.
type Token struct {
	SigningKey string        // HMAC key for signing issued credentials
	Issuer     string        // iss claim for issued credentials
	ExpiryTime time.Duration // lifetime of issued credentials
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Token     Token
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}

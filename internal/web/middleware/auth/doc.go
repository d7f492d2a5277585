// Package auth provides bearer-token authentication middleware for the
// web service.
//
// The middleware validates the Authorization header on every request and
// stores the token's subject and claims in fiber.Locals for handlers and
// permission guards. Token issuance, liveness, and metrics endpoints stay
// public so services can obtain credentials and balancers can probe the
// process.
//
// Usage:
//
//	app.Use(authmiddleware.New(cfg.Token))
package auth

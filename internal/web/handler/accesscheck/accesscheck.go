// Package accesscheck exposes the decision endpoints: permission checks,
// effective-permission aggregation, and first-user bootstrap.
package accesscheck

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/contentdeck/contentdeck/internal/access"
	"github.com/contentdeck/contentdeck/internal/config"
	"github.com/contentdeck/contentdeck/internal/web/handler"
)

const (
	// CheckPath answers permission checks.
	CheckPath = "/access/check"
	// EffectivePath lists a user's permission union.
	EffectivePath = "/access/effective/:userId"
	// BootstrapPath grants the first administrator.
	BootstrapPath = "/access/bootstrap"
)

// CheckRequest is a permission check payload.
type CheckRequest struct {
	UserID     string       `json:"userId" validate:"required"`
	Permission string       `json:"permission" validate:"required"`
	Scope      access.Scope `json:"scope"`
}

// CheckResponse is a decision.
type CheckResponse struct {
	Allowed bool `json:"allowed"`
}

// EffectiveResponse lists a user's permission codes.
type EffectiveResponse struct {
	UserID      string   `json:"userId"`
	Permissions []string `json:"permissions"`
}

// BootstrapRequest names the user to become the first administrator.
type BootstrapRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// Service is the access decision handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	svc       *access.Service
	validator *validator.Validate
}

// Handler is the access decision handler.
var Handler = Service{}

// Init initializes the access decision handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, svc *access.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.svc = svc
	s.validator = validator.New()

	app.Post(CheckPath, s.Check)
	app.Get(EffectivePath, s.Effective)
	app.Post(BootstrapPath, access.RequireSetup(svc), s.Bootstrap)

	return nil
}

// Check evaluates a permission check for any user. Callers are
// authenticated services asking on behalf of their own requests, so the
// checked user is part of the payload rather than taken from the token.
func (s *Service) Check(c *fiber.Ctx) error {
	var req CheckRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validator.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "userId and permission are required")
	}

	allowed, err := s.svc.CheckAccess(req.UserID, req.Permission, req.Scope)
	if err != nil {
		log.Error().Err(err).Str("user", req.UserID).Str("permission", req.Permission).
			Msg("permission check failed")

		return fiber.NewError(fiber.StatusInternalServerError, "permission check failed")
	}

	return c.JSON(CheckResponse{Allowed: allowed})
}

// Effective returns the scope-blind union of a user's permission codes.
func (s *Service) Effective(c *fiber.Ctx) error {
	userID := c.Params("userId")

	permissions, err := s.svc.EffectivePermissions(userID)
	if err != nil {
		if errors.Is(err, access.ErrUserIDEmpty) {
			return fiber.NewError(fiber.StatusBadRequest, "userId is required")
		}

		log.Error().Err(err).Str("user", userID).Msg("failed to aggregate permissions")
		return fiber.NewError(fiber.StatusInternalServerError, "aggregation failed")
	}

	return c.JSON(EffectiveResponse{UserID: userID, Permissions: permissions})
}

// Bootstrap makes the named user the first administrator. Guarded by the
// setup rule: it only works while no access rules exist, or for callers
// already holding platform management.
func (s *Service) Bootstrap(c *fiber.Ctx) error {
	var req BootstrapRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validator.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "userId is required")
	}

	if err := s.svc.BootstrapFirstUser(req.UserID); err != nil {
		if errors.Is(err, access.ErrAlreadyBootstrapped) {
			return fiber.NewError(fiber.StatusConflict, "already bootstrapped")
		}

		log.Error().Err(err).Str("user", req.UserID).Msg("bootstrap failed")
		return fiber.NewError(fiber.StatusInternalServerError, "bootstrap failed")
	}

	log.Info().Str("user", req.UserID).Msg("bootstrapped first administrator")

	return c.SendStatus(fiber.StatusCreated)
}

// Package permission exposes the read-only permission catalog.
package permission

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/contentdeck/contentdeck/internal/access"
	"github.com/contentdeck/contentdeck/internal/config"
	controller "github.com/contentdeck/contentdeck/internal/db/controller/permission"
	"github.com/contentdeck/contentdeck/internal/web/handler"
)

const (
	// Path is the permission catalog endpoint.
	Path = "/permissions"
)

// Permission is the wire form of a catalog entry.
type Permission struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// CreateRequest is the payload for registering a permission.
type CreateRequest struct {
	Code        string `json:"code" validate:"required,max=100"`
	Description string `json:"description" validate:"max=255"`
}

// Service is the permission catalog handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the permission catalog handler.
var Handler = Service{}

// Init initializes the permission catalog handler. The catalog is
// readable by any authenticated caller; registering new codes is a
// management operation behind the setup guard.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, svc *access.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	app.Get(Path, s.List)
	app.Post(Path, access.RequireSetup(svc), s.Create)

	return nil
}

// Create registers a permission code so checks against it can resolve to
// "granted". Duplicate codes conflict.
func (s *Service) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validator.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "code is required")
	}

	created, err := controller.Create(s.db, req.Code, req.Description)
	if err != nil {
		if errors.Is(err, controller.ErrPermissionAlreadyExists) {
			return fiber.NewError(fiber.StatusConflict, "permission already exists")
		}

		log.Error().Err(err).Str("permission", req.Code).Msg("failed to create permission")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create permission")
	}

	log.Info().Str("permission", created.Code).Msg("registered permission")

	return c.Status(fiber.StatusCreated).
		JSON(Permission{Code: created.Code, Description: created.Description})
}

// List returns the permission catalog ordered by code.
func (s *Service) List(c *fiber.Ctx) error {
	perms, err := controller.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list permissions")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list permissions")
	}

	out := make([]Permission, 0, len(perms))
	for _, p := range perms {
		out = append(out, Permission{Code: p.Code, Description: p.Description})
	}

	return c.JSON(out)
}

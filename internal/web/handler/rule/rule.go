// Package rule exposes access rule management: granting roles to users
// within scopes and revoking those grants.
package rule

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/contentdeck/contentdeck/internal/access"
	"github.com/contentdeck/contentdeck/internal/config"
	controller "github.com/contentdeck/contentdeck/internal/db/controller/accessrule"
	rolecontroller "github.com/contentdeck/contentdeck/internal/db/controller/role"
	"github.com/contentdeck/contentdeck/internal/web/handler"
)

const (
	// Path is the rule collection endpoint.
	Path = "/rules"
)

// CreateRequest is the payload for granting a role to a user.
type CreateRequest struct {
	UserID string       `json:"userId" validate:"required"`
	Role   string       `json:"role" validate:"required"`
	Scope  access.Scope `json:"scope"`
}

// Rule is the wire form of an access rule.
type Rule struct {
	ID     uint         `json:"id"`
	UserID string       `json:"userId"`
	Role   string       `json:"role"`
	Scope  access.Scope `json:"scope"`
}

// Service is the rule management handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the rule management handler.
var Handler = Service{}

// Init initializes the rule management handler behind the setup guard.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, svc *access.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	guard := access.RequireSetup(svc)

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, guard, s.List)
		router.Post(handler.RouterRootPath, guard, s.Create)
		router.Delete("/:id", guard, s.Delete)
	})

	return nil
}

// List returns a user's rules; the userId query parameter is required so
// the endpoint never dumps the whole store.
func (s *Service) List(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "userId query parameter is required")
	}

	rules, err := controller.GetByUser(s.db, userID)
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("failed to list rules")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list rules")
	}

	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		name := ""
		if role, err := rolecontroller.GetByID(s.db, r.RoleID); err == nil {
			name = role.Name
		}

		out = append(out, Rule{
			ID:     r.ID,
			UserID: r.UserID,
			Role:   name,
			Scope: access.Scope{
				ProjectID:     r.ProjectID,
				EnvironmentID: r.EnvironmentID,
				SchemaID:      r.SchemaID,
				ContentStatus: r.ContentStatus,
			},
		})
	}

	return c.JSON(out)
}

// Create grants a role to a user within a scope. The reserved
// administrator role can only be bound through bootstrap.
func (s *Service) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validator.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "userId and role are required")
	}
	if req.Role == access.ReservedAdminRole {
		return fiber.NewError(fiber.StatusConflict, "the administrator role can only be granted through bootstrap")
	}

	role, err := rolecontroller.Get(s.db, req.Role)
	if err != nil {
		if errors.Is(err, rolecontroller.ErrRoleNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "role not found")
		}

		log.Error().Err(err).Str("role", req.Role).Msg("failed to load role")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create rule")
	}

	created, err := controller.Create(s.db, req.UserID, role.ID,
		req.Scope.ProjectID, req.Scope.EnvironmentID, req.Scope.SchemaID, req.Scope.ContentStatus)
	if err != nil {
		log.Error().Err(err).Str("user", req.UserID).Str("role", req.Role).
			Msg("failed to create rule")

		return fiber.NewError(fiber.StatusInternalServerError, "failed to create rule")
	}

	log.Info().Str("user", req.UserID).Str("role", req.Role).Uint("rule", created.ID).
		Msg("created access rule")

	return c.Status(fiber.StatusCreated).JSON(Rule{
		ID:     created.ID,
		UserID: created.UserID,
		Role:   role.Name,
		Scope: access.Scope{
			ProjectID:     created.ProjectID,
			EnvironmentID: created.EnvironmentID,
			SchemaID:      created.SchemaID,
			ContentStatus: created.ContentStatus,
		},
	})
}

// Delete revokes a grant by rule id.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid rule id")
	}

	if err := controller.Delete(s.db, uint(id)); err != nil {
		if errors.Is(err, controller.ErrRuleNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "rule not found")
		}

		log.Error().Err(err).Uint64("rule", id).Msg("failed to delete rule")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete rule")
	}

	log.Info().Uint64("rule", id).Msg("deleted access rule")

	return c.SendStatus(fiber.StatusNoContent)
}

// Package role exposes role management: creation, deletion, and the
// permission sets roles carry.
package role

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/contentdeck/contentdeck/internal/access"
	"github.com/contentdeck/contentdeck/internal/config"
	permissioncontroller "github.com/contentdeck/contentdeck/internal/db/controller/permission"
	controller "github.com/contentdeck/contentdeck/internal/db/controller/role"
	"github.com/contentdeck/contentdeck/internal/web/handler"
)

const (
	// Path is the role collection endpoint.
	Path = "/roles"
)

// CreateRequest is the payload for creating a role.
type CreateRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=255"`
}

// GrantRequest names a permission to add to a role.
type GrantRequest struct {
	Permission string `json:"permission" validate:"required"`
}

// Role is the wire form of a role.
type Role struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	IsSystem    bool     `json:"isSystem"`
	Permissions []string `json:"permissions,omitempty"`
}

// Service is the role management handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the role management handler.
var Handler = Service{}

// Init initializes the role management handler. Every route is guarded by
// the setup rule: open while the rule store is empty, platform managers
// only afterwards.
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
		router.Get("/:name", guard, s.Get)
		router.Delete("/:name", guard, s.Delete)
		router.Post("/:name/permissions", guard, s.Grant)
		router.Delete("/:name/permissions/:code", guard, s.Revoke)
	})

	return nil
}

// List returns all roles without their permission sets.
func (s *Service) List(c *fiber.Ctx) error {
	roles, err := controller.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list roles")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list roles")
	}

	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, Role{Name: r.Name, Description: r.Description, IsSystem: r.IsSystem})
	}

	return c.JSON(out)
}

// Create adds a role. The reserved administrator role cannot be created
// through the API; bootstrap owns it.
func (s *Service) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validator.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	if req.Name == access.ReservedAdminRole {
		return fiber.NewError(fiber.StatusConflict, "role name is reserved")
	}

	created, err := controller.Create(s.db, req.Name, req.Description, false)
	if err != nil {
		if errors.Is(err, controller.ErrRoleAlreadyExists) {
			return fiber.NewError(fiber.StatusConflict, "role already exists")
		}

		log.Error().Err(err).Str("role", req.Name).Msg("failed to create role")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create role")
	}

	log.Info().Str("role", created.Name).Msg("created role")

	return c.Status(fiber.StatusCreated).
		JSON(Role{Name: created.Name, Description: created.Description})
}

// Get returns one role with its permission set.
func (s *Service) Get(c *fiber.Ctx) error {
	name := c.Params("name")

	role, err := controller.Get(s.db, name)
	if err != nil {
		if errors.Is(err, controller.ErrRoleNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "role not found")
		}

		log.Error().Err(err).Str("role", name).Msg("failed to load role")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load role")
	}

	perms, err := controller.Permissions(s.db, role.ID)
	if err != nil {
		log.Error().Err(err).Str("role", name).Msg("failed to load role permissions")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load role")
	}

	codes := make([]string, 0, len(perms))
	for _, p := range perms {
		codes = append(codes, p.Code)
	}

	return c.JSON(Role{
		Name:        role.Name,
		Description: role.Description,
		IsSystem:    role.IsSystem,
		Permissions: codes,
	})
}

// Delete removes a role, its permission mappings, and the rules granting
// it. System roles are refused.
func (s *Service) Delete(c *fiber.Ctx) error {
	name := c.Params("name")

	if err := controller.Delete(s.db, name); err != nil {
		switch {
		case errors.Is(err, controller.ErrRoleNotFound):
			return fiber.NewError(fiber.StatusNotFound, "role not found")
		case errors.Is(err, controller.ErrRoleIsSystem):
			return fiber.NewError(fiber.StatusConflict, "system roles cannot be deleted")
		}

		log.Error().Err(err).Str("role", name).Msg("failed to delete role")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete role")
	}

	log.Info().Str("role", name).Msg("deleted role")

	return c.SendStatus(fiber.StatusNoContent)
}

// Grant adds a permission to a role's set. Granting an already-held
// permission succeeds silently.
func (s *Service) Grant(c *fiber.Ctx) error {
	name := c.Params("name")

	var req GrantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validator.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "permission is required")
	}

	role, perm, status, msg := s.resolvePair(name, req.Permission)
	if status != 0 {
		return fiber.NewError(status, msg)
	}

	if err := controller.GrantPermission(s.db, role, perm); err != nil {
		log.Error().Err(err).Str("role", name).Str("permission", req.Permission).
			Msg("failed to grant permission")

		return fiber.NewError(fiber.StatusInternalServerError, "failed to grant permission")
	}

	log.Info().Str("role", name).Str("permission", req.Permission).Msg("granted permission")

	return c.SendStatus(fiber.StatusNoContent)
}

// Revoke removes a permission from a role's set. Revoking an absent
// permission succeeds silently.
func (s *Service) Revoke(c *fiber.Ctx) error {
	name := c.Params("name")
	code := c.Params("code")

	role, perm, status, msg := s.resolvePair(name, code)
	if status != 0 {
		return fiber.NewError(status, msg)
	}

	if err := controller.RevokePermission(s.db, role, perm); err != nil {
		log.Error().Err(err).Str("role", name).Str("permission", code).
			Msg("failed to revoke permission")

		return fiber.NewError(fiber.StatusInternalServerError, "failed to revoke permission")
	}

	log.Info().Str("role", name).Str("permission", code).Msg("revoked permission")

	return c.SendStatus(fiber.StatusNoContent)
}

// resolvePair maps a role name and permission code to their ids, returning
// an HTTP status and message when either end is missing.
func (s *Service) resolvePair(name, code string) (roleID, permID uint, status int, msg string) {
	role, err := controller.Get(s.db, name)
	if err != nil {
		if errors.Is(err, controller.ErrRoleNotFound) {
			return 0, 0, fiber.StatusNotFound, "role not found"
		}

		log.Error().Err(err).Str("role", name).Msg("failed to load role")
		return 0, 0, fiber.StatusInternalServerError, "failed to load role"
	}

	perm, err := permissioncontroller.Get(s.db, code)
	if err != nil {
		if errors.Is(err, permissioncontroller.ErrPermissionNotFound) {
			return 0, 0, fiber.StatusNotFound, "permission not found"
		}

		log.Error().Err(err).Str("permission", code).Msg("failed to load permission")
		return 0, 0, fiber.StatusInternalServerError, "failed to load permission"
	}

	return role.ID, perm.ID, 0, ""
}

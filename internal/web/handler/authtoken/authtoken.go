// Package authtoken issues signed bearer tokens to operator accounts.
package authtoken

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/contentdeck/contentdeck/internal/access"
	"github.com/contentdeck/contentdeck/internal/config"
	"github.com/contentdeck/contentdeck/internal/db/models"
	"github.com/contentdeck/contentdeck/internal/token"
	"github.com/contentdeck/contentdeck/internal/web/handler"
)

const (
	// Path is the token issuance endpoint.
	Path = "/auth/token"
)

// Request is the credential exchange payload.
type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response carries the signed token.
type Response struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// Service is the token issuance handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	svc       *access.Service
	validator *validator.Validate
}

// Handler is the token issuance handler.
var Handler = Service{}

// Init initializes the token issuance handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, svc *access.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.svc = svc
	s.validator = validator.New()

	app.Post(Path, s.Post)

	return nil
}

// Post exchanges a username and password for a signed token. The token's
// permissions claim is the scope-blind union of the account's permission
// codes at issuance time.
func (s *Service) Post(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validator.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "username and password are required")
	}

	var user models.User
	result := s.db.Where("username = ?", req.Username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			// same answer as a wrong password, usernames are not probeable
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}

		log.Error().Err(result.Error).Msg("failed to load user for token issuance")
		return fiber.NewError(fiber.StatusInternalServerError, "token issuance failed")
	}

	if !user.Active || !user.VerifyPassword(req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	permissions, err := s.svc.EffectivePermissions(user.SubjectID)
	if err != nil {
		log.Error().Err(err).Str("user", user.SubjectID).Msg("failed to aggregate permissions")
		return fiber.NewError(fiber.StatusInternalServerError, "token issuance failed")
	}

	signed, err := token.Issue(s.cfg.Token, user.SubjectID, permissions)
	if err != nil {
		log.Error().Err(err).Str("user", user.SubjectID).Msg("failed to sign token")
		return fiber.NewError(fiber.StatusInternalServerError, "token issuance failed")
	}

	log.Info().Str("user", user.SubjectID).Msg("issued token")

	return c.JSON(Response{
		Token:     signed,
		ExpiresIn: int64(s.cfg.Token.ExpiryTime.Seconds()),
	})
}

package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/contentdeck/contentdeck/internal/access"
	"github.com/contentdeck/contentdeck/internal/config"
	"github.com/contentdeck/contentdeck/internal/db/controller/permission"
	"github.com/contentdeck/contentdeck/internal/db/models"
)

// seed loads the permission catalog and, on a fresh database, a default
// operator account for obtaining the first credentials.
func seed(_ *config.Config, db *gorm.DB) {
	for _, entry := range access.Catalog() {
		if _, err := permission.Ensure(db, entry.Code, entry.Description); err != nil {
			log.Fatal().Err(err).Str("permission", entry.Code).Msg("failed to seed permission catalog")
		}
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count == 0 {
		// Create default operator account
		// change the password after first login

		db.Create(
			&models.User{
				Username:  "admin",
				Password:  models.HashPassword("changeme"),
				Active:    true,
				SubjectID: "admin",
			},
		)

		log.Info().Msg("created default operator account 'admin'")
	}
}

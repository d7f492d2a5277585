// Package daemon assembles the access service: it opens the database,
// migrates and seeds the schema, and wires the web service.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/contentdeck/contentdeck/internal/access"
	"github.com/contentdeck/contentdeck/internal/config"
	"github.com/contentdeck/contentdeck/internal/db/dsn"
	"github.com/contentdeck/contentdeck/internal/db/models"
	"github.com/contentdeck/contentdeck/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	// pointer: the /checkalive handler closes over the Service web.New
	// built, and WaitShutdown's liveness flip must hit that same instance
	webService *web.Service
	port       int
}

// Start starts the Daemon's web service and blocks until it is shut down
// by SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.port))
}

// OpenDB opens the configured database engine and migrates the schema.
// It is shared by the daemon and the offline bootstrap command.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	var dialector gorm.Dialector
	switch cfg.DB.Engine {
	case config.EngineMySQL:
		dialector = gormmysql.Open(dsn.Create(cfg))
	case config.EngineSQLite:
		dialector = sqlite.Open(cfg.DB.Name)
	default:
		return nil, config.ErrUnsupportedDBEngine
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "connecting to database")
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Permission{},
		&models.Role{},
		&models.RolePermission{},
		&models.AccessRule{},
	); err != nil {
		return nil, errors.Wrap(err, "migrating database")
	}

	return db, nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := OpenDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
		return nil
	}

	seed(cfg, db)

	svc := access.NewService(db)

	return &Daemon{
		webService: web.New(cfg, db, svc),
		port:       cfg.Webserver.Port,
	}
}

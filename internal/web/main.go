package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/contentdeck/contentdeck/internal/access"
	"github.com/contentdeck/contentdeck/internal/config"
	loggerfiber "github.com/contentdeck/contentdeck/internal/logger/adapter/fiber"
	"github.com/contentdeck/contentdeck/internal/web/handler/accesscheck"
	"github.com/contentdeck/contentdeck/internal/web/handler/authtoken"
	permissionhandler "github.com/contentdeck/contentdeck/internal/web/handler/permission"
	rolehandler "github.com/contentdeck/contentdeck/internal/web/handler/role"
	rulehandler "github.com/contentdeck/contentdeck/internal/web/handler/rule"
	authmiddleware "github.com/contentdeck/contentdeck/internal/web/middleware/auth"
)

const checkAlivePath = "/checkalive"

// Service represents the web service.
type Service struct {
	App           *fiber.App
	cfg           *config.Config
	fastShutDown  bool
	alive         atomic.Bool
	db            *gorm.DB
	accessService *access.Service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB, svc *access.Service) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "ContentDeck",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	// init web service
	service := &Service{
		cfg:           cfg,
		App:           app,
		db:            db,
		accessService: svc,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	// access logging middleware
	app.Use(loggerfiber.New(loggerfiber.Config{
		Config:        cfg.Log,
		CheckAliveURI: checkAlivePath,
	}))

	// bearer token middleware
	app.Use(authmiddleware.New(cfg.Token))

	// liveness endpoint for balancers; fails during graceful shutdown
	app.Get(checkAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	// prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// init handlers (they register their own routes with permission checks)
	authtoken.Handler.Init(app, cfg, db, svc)
	accesscheck.Handler.Init(app, cfg, db, svc)
	rolehandler.Handler.Init(app, cfg, db, svc)
	rulehandler.Handler.Init(app, cfg, db, svc)
	permissionhandler.Handler.Init(app, cfg, db, svc)

	return service
}

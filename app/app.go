package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"sales-pulse/app/controller"
	"sales-pulse/app/router"
	"sales-pulse/config"
	"sales-pulse/db"
	"sales-pulse/logging"
	"sales-pulse/repository"
	"sales-pulse/service"
)

// janitorInterval is how often expired preview sessions are dropped from memory
const janitorInterval = time.Minute

// App holds the wired HTTP handler and everything that must be released on shutdown
type App struct {
	Handler http.Handler
	closers []func() error
}

// Close releases connections opened by Initialize
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

// Initialize wires the order source, permissions, renderers and routes.
// ctx bounds background work such as the preview store janitor.
func Initialize(ctx context.Context, cfg *config.Configuration, logger *logrus.Logger) (*App, error) {
	a := &App{}

	// Order source
	var orders repository.OrderRepositoryInterface
	switch cfg.OrderSource {
	case config.SourceRemote:
		orders = service.NewRemoteOrderClient(cfg.SalesAPI.URL, cfg.SalesAPI.Token, nil, logging.Component(logger, "sales-api"))
	default:
		connStr, err := cfg.Database.ConnectionString()
		if err != nil {
			return nil, err
		}
		if err := db.InitDB(ctx, connStr, logging.Component(logger, "db")); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.closers = append(a.closers, db.CloseDB)
		orders = repository.NewOrderRepository(logging.Component(logger, "orders"))
	}

	// Permissions
	permissions, err := initPermissions(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Preview store
	var store service.DocumentStoreInterface
	switch cfg.DocumentStore.Kind {
	case config.StoreRedis:
		redisStore, err := service.NewRedisDocumentStore(ctx, cfg.DocumentStore.RedisURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, redisStore.Close)
		store = redisStore
	default:
		memoryStore := service.NewMemoryDocumentStore()
		go memoryStore.RunJanitor(ctx, janitorInterval)
		store = memoryStore
	}

	deps := service.OrderFormDeps{
		Orders:   orders,
		Renderer: service.NewChromeRenderer(cfg.OrderForm.ChromePath, cfg.OrderForm.PDFTimeout, logging.Component(logger, "chrome")),
		Store:    store,
	}

	// Optional delivery channels stay nil when unconfigured
	if cfg.MailEnabled() {
		deps.Mailer = service.NewSendGridMailer(cfg.Mail.SendGridAPIKey, cfg.Mail.From, cfg.Company.Name, logging.Component(logger, "mail"))
	} else {
		logger.Warn("⚠️  SENDGRID_API_KEY or MAIL_FROM not set, order form email disabled")
	}
	if cfg.ArchiveEnabled() {
		archive, err := service.NewDriveArchive(ctx, cfg.Drive.CredentialsPath, cfg.Drive.ArchiveFolderID)
		if err != nil {
			a.Close()
			return nil, err
		}
		deps.Archive = archive
	} else {
		logger.Warn("⚠️  Drive archive not configured, order form archiving disabled")
	}

	orderForms := service.NewOrderFormService(deps, service.OrderFormSettings{
		Company:    cfg.Company,
		PageSize:   cfg.OrderForm.PageSize,
		PreviewTTL: cfg.DocumentStore.TTL,
		DefaultTo:  cfg.Mail.To,
	}, logging.Component(logger, "order-form"))

	// Create controllers
	controllers := &router.Controllers{
		OrderForm: controller.NewOrderFormController(orderForms, permissions, cfg.PublicURL(), logging.Component(logger, "http")),
		Rights:    controller.NewRightsController(permissions, logging.Component(logger, "http")),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)
	a.Handler = mux

	return a, nil
}

func initPermissions(ctx context.Context, cfg *config.Configuration, logger *logrus.Logger) (*service.PermissionService, error) {
	authzLogger := logging.Component(logger, "authz")
	switch {
	case !cfg.Authz.Enabled:
		authzLogger.Warn("⚠️  AUTHZ_ENABLED=false, every role may perform every action")
		return service.NewDisabledPermissionService(authzLogger), nil
	case cfg.Authz.PolicyPath != "":
		return service.NewPermissionServiceFromFile(cfg.Authz.PolicyPath, authzLogger)
	default:
		return service.LoadPermissionService(ctx, repository.NewUserRightRepository(logging.Component(logger, "rights")), authzLogger)
	}
}

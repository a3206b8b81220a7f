package server

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/sara-relief/relief-service/internal/api/http"
	"github.com/sara-relief/relief-service/internal/api/http/handlers"
	"github.com/sara-relief/relief-service/internal/auth"
	"github.com/sara-relief/relief-service/internal/config"
	"github.com/sara-relief/relief-service/internal/events"
	"github.com/sara-relief/relief-service/internal/observability"
	"github.com/sara-relief/relief-service/internal/persistence"
	"github.com/sara-relief/relief-service/internal/repository"
	"github.com/sara-relief/relief-service/internal/repository/memory"
	"github.com/sara-relief/relief-service/internal/service"
)

const notificationOutboxSize = 256

// Stores groups the four repositories.
type Stores struct {
	Users       repository.UserRepository
	Resources   repository.ResourceRepository
	Requests    repository.RequestRepository
	Assignments repository.AssignmentRepository
}

// PostgresStores builds Postgres-backed repositories.
func PostgresStores(pg *persistence.Postgres) Stores {
	return Stores{
		Users:       repository.NewUserRepository(pg.Pool),
		Resources:   repository.NewResourceRepository(pg.Pool),
		Requests:    repository.NewRequestRepository(pg.Pool),
		Assignments: repository.NewAssignmentRepository(pg.Pool),
	}
}

// MemoryStores builds repositories over a fresh in-memory store.
func MemoryStores() Stores {
	store := memory.NewStore()
	return Stores{
		Users:       store.Users(),
		Resources:   store.Resources(),
		Requests:    store.Requests(),
		Assignments: store.Assignments(),
	}
}

// Infra holds optional external connections. Nil members are tolerated.
type Infra struct {
	Postgres *persistence.Postgres
	Redis    *persistence.Redis
}

// Server is the assembled application.
type Server struct {
	App           *fiber.App
	Auth          *service.AuthService
	Notifications *service.NotificationService
	Relay         events.Relay
	Metrics       *observability.Metrics
}

// New wires services, handlers and routes.
func New(cfg *config.Config, logger *zap.Logger, stores Stores, infra Infra) *Server {
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	var denylist auth.Denylist
	var relay events.Relay
	if infra.Redis != nil {
		denylist = auth.NewRedisDenylist(infra.Redis)
		relay = events.NewRedisRelay(infra.Redis, cfg.Notification.EventsChannel)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo: stores.Users,
		Tokens:   tokens,
		Hasher:   auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		Denylist: denylist,
	})
	userService := service.NewUserService(stores.Users, logger)
	resourceService := service.NewResourceService(stores.Resources, dispatcher, logger)
	requestService := service.NewRequestService(stores.Requests, dispatcher, logger)
	volunteerService := service.NewVolunteerService(service.VolunteerDependencies{
		AssignmentRepo: stores.Assignments,
		RequestRepo:    stores.Requests,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	dashboardService := service.NewDashboardService(userService, resourceService, requestService, volunteerService, cfg.Dashboard)
	notificationService := service.NewNotificationService(dispatcher, logger, metrics, notificationOutboxSize)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, infra.Postgres, infra.Redis, metrics),
		Auth:   handlers.NewAuthHandler(authService),
		Public: handlers.NewPublicHandler(dashboardService, resourceService, requestService),
		Admin: handlers.NewAdminHandler(handlers.AdminDependencies{
			Dashboards: dashboardService,
			Users:      userService,
			Resources:  resourceService,
			Requests:   requestService,
			Volunteers: volunteerService,
		}),
		Donor:          handlers.NewDonorHandler(dashboardService, resourceService),
		Victim:         handlers.NewVictimHandler(dashboardService, requestService, resourceService),
		Volunteer:      handlers.NewVolunteerHandler(dashboardService, requestService, volunteerService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, stores.Users, denylist, logger),
	})

	return &Server{
		App:           app,
		Auth:          authService,
		Notifications: notificationService,
		Relay:         relay,
		Metrics:       metrics,
	}
}

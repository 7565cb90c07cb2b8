package bootstrap

import (
	"context"
	"log"
	"time"

	"workshop-wizard-be/internal/config"
	"workshop-wizard-be/internal/controller"
	"workshop-wizard-be/internal/handler"
	"workshop-wizard-be/internal/pkg/logger"
	"workshop-wizard-be/internal/repository/contract"
	"workshop-wizard-be/internal/repository/memory"
	"workshop-wizard-be/internal/repository/redisstore"
	"workshop-wizard-be/internal/repository/unitofwork"
	"workshop-wizard-be/internal/service"
	internalWS "workshop-wizard-be/internal/websocket"
	"workshop-wizard-be/pkg/events"
	"workshop-wizard-be/pkg/workshop"

	pktNats "workshop-wizard-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	UserController     controller.IUserController
	CatalogController  controller.ICatalogController
	WorkshopController controller.IWorkshopController
	LiveHandler        *handler.LiveHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	ActivityService *service.ActivityService
	Hub             *internalWS.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	autosaveLogger := logger.NewIsolatedLogger("logs/autosave.log")
	c.Logger = sysLogger

	templates, err := workshop.LoadTemplates()
	if err != nil {
		log.Fatalf("[FATAL] Failed to load workshop templates: %v", err)
	}

	// 2. Autosave Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Live Sessions
	rdb := newRedisClient(cfg, c)
	var sessions contract.SessionRepository
	if rdb != nil {
		sessions = redisstore.NewSessionRepository(rdb, cfg.Workshop.SessionTTL)
	} else {
		sessions = memory.NewSessionRepository(cfg.Workshop.SessionTTL)
	}
	c.Hub = internalWS.NewHub(rdb, sysLogger)

	// 4. Domain Events
	var eventPublisher events.Publisher = events.NopPublisher{}
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, cfg.Workshop.EventStream)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v (events are dropped)", err)
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, cfg.Workshop.EventStream)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		c.ActivityService = service.NewActivityService(natsSub, sysLogger)
		c.closers = append(c.closers, natsSub.Close)
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Workshop.AutosaveTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Workshop.AutosaveTopic,
		uowFactory,
		sessions,
		eventPublisher,
		autosaveLogger,
		cfg.Workshop.AutosaveDebounce,
	)

	authService := service.NewAuthService(uowFactory, eventPublisher, sysLogger, cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	userService := service.NewUserService(uowFactory)
	catalogService := service.NewCatalogService(templates)
	workshopService := service.NewWorkshopService(
		uowFactory,
		sessions,
		publisherService,
		eventPublisher,
		c.Hub,
		templates,
		sysLogger,
	)

	// 6. Controllers
	c.AuthController = controller.NewAuthController(authService)
	c.UserController = controller.NewUserController(userService)
	c.CatalogController = controller.NewCatalogController(catalogService)
	c.WorkshopController = controller.NewWorkshopController(workshopService)
	c.LiveHandler = handler.NewLiveHandler(workshopService, c.Hub, cfg.Auth.JWTSecret, sysLogger)

	return c
}

// newRedisClient connects to Redis when the redis session store is selected.
// It returns nil, and sessions stay in memory, when Redis cannot be reached at
// startup.
func newRedisClient(cfg *config.Config, c *Container) *redis.Client {
	if cfg.Workshop.SessionStore != config.SessionStoreRedis {
		return nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (sessions stay in memory)", err)
		_ = rdb.Close()
		return nil
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return rdb
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

package bootstrap

import (
	"context"
	"log"

	"mdt-records-be/internal/config"
	"mdt-records-be/internal/controller"
	"mdt-records-be/internal/dto"
	"mdt-records-be/internal/handler"
	"mdt-records-be/internal/pkg/logger"
	"mdt-records-be/internal/repository/memory"
	"mdt-records-be/internal/repository/unitofwork"
	"mdt-records-be/internal/service"
	internalWS "mdt-records-be/internal/websocket"
	"mdt-records-be/pkg/events"
	pktNats "mdt-records-be/pkg/nats"
	"mdt-records-be/pkg/reactive"
	"mdt-records-be/pkg/redisbus"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const viewRowLimit = 50

type Container struct {
	// Controllers
	LookupController  controller.ILookupController
	RecordController  controller.IRecordController
	RefreshController controller.IRefreshController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	RefreshService  service.IRefreshService

	// WebSockets
	RealtimeHandler *handler.RealtimeHandler
	WebSocketHub    *internalWS.Hub

	Logger         *logger.ZapLogger
	RealtimeLogger *logger.ZapLogger

	pubSub *gochannel.GoChannel
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	rtLogger := logger.NewIsolatedLogger(cfg.App.RealtimeLogPath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	bus := reactive.NewRefreshBus(sysLogger.Reporter("REFRESH"))
	refreshService := service.NewRefreshService(bus, newRelay(cfg), cfg.App.InstanceID, sysLogger)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Refresh.MutationTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Refresh.MutationTopic, refreshService, sysLogger)
	recordService := service.NewRecordService(uowFactory, publisherService, sysLogger)

	lookupCache := memory.NewLookupCache(cfg.Search.CacheTTL)
	lookupService := service.NewLookupService(uowFactory, lookupCache, cfg.Search, rtLogger)
	lookupService.BindInvalidation(bus)

	// 4. Realtime
	wsHub := internalWS.NewHub(lookupService.Resolver(), bus, viewCatalog(recordService), rtLogger)
	realtimeHandler := handler.NewRealtimeHandler(wsHub, refreshService, cfg.Auth.JwtSecret, rtLogger)

	return &Container{
		LookupController:  controller.NewLookupController(lookupService),
		RecordController:  controller.NewRecordController(recordService),
		RefreshController: controller.NewRefreshController(refreshService),

		ConsumerService: consumerService,
		RefreshService:  refreshService,

		RealtimeHandler: realtimeHandler,
		WebSocketHub:    wsHub,

		Logger:         sysLogger,
		RealtimeLogger: rtLogger,

		pubSub: pubSub,
	}
}

// Start runs the background workers until ctx is done.
func (c *Container) Start(ctx context.Context) {
	go c.WebSocketHub.Run(ctx)
	c.RefreshService.Start(ctx)

	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := c.ConsumerService.Consume(ctx); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()
}

func (c *Container) Close() {
	if err := c.pubSub.Close(); err != nil {
		log.Printf("[WARN] Failed to close mutation queue: %v", err)
	}
	c.RefreshService.Close()
	_ = c.Logger.Sync()
	_ = c.RealtimeLogger.Sync()
}

// newRelay picks the cross-instance transport. A transport that cannot be
// reached degrades to in-process delivery.
func newRelay(cfg *config.Config) service.Relay {
	switch cfg.Refresh.Transport {
	case config.TransportNats:
		relay, err := pktNats.NewRelay(cfg.App.NatsURL, cfg.Refresh.Stream, cfg.Refresh.Subject)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS relay: %v. Refresh events stay local", err)
			return nil
		}
		log.Printf("[INFO] Refresh relay: NATS (%s)", cfg.Refresh.Subject)
		return relay
	case config.TransportRedis:
		rdb := redisbus.NewClient(cfg.App.RedisURL)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis relay: %v. Refresh events stay local", err)
			_ = rdb.Close()
			return nil
		}
		log.Printf("[INFO] Refresh relay: REDIS (%s)", cfg.Refresh.RedisChannel)
		return redisbus.NewRelay(rdb, cfg.Refresh.RedisChannel)
	default:
		return nil
	}
}

func viewCatalog(records service.IRecordService) internalWS.ViewCatalog {
	arrestEvents, _ := events.EventsForView("arrests")
	wantedEvents, _ := events.EventsForView("wanted")

	return internalWS.ViewCatalog{
		"arrests": {
			Events: arrestEvents,
			Fetch: internalWS.Rows(func(ctx context.Context) ([]*dto.ArrestRow, error) {
				return records.ListArrests(ctx, viewRowLimit)
			}),
		},
		"wanted": {
			Events: wantedEvents,
			Fetch: internalWS.Rows(func(ctx context.Context) ([]*dto.WantedRow, error) {
				return records.ListWanted(ctx, viewRowLimit)
			}),
		},
	}
}

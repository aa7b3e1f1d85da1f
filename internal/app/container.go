package app

import (
	"context"
	"log"
	"time"

	"tender-sync/internal/config"
	"tender-sync/internal/database"
	dbpostgres "tender-sync/internal/database/postgres"
	"tender-sync/internal/feed"
	"tender-sync/internal/infrastructure/cache"
	"tender-sync/internal/pipeline"
	"tender-sync/internal/repository"
	"tender-sync/internal/usecase"
	"tender-sync/internal/ws"
)

// Container wires every component of the service from config. All
// construction happens here; handlers, the scheduler and the CLIs only
// consume what the container built.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	Records     *usecase.RecordUsecase
	Matches     *usecase.MatchUsecase
	Sync        *usecase.SyncUsecase
	SyncRunRepo repository.SyncRunRepository

	logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)
	hub := ws.NewHub(logger)

	recordRepo := repository.NewPostgresRecordRepository(db)
	matchRepo := repository.NewPostgresMatchRepository(db)
	subscriberRepo := repository.NewPostgresSubscriberRepository(db)
	rawEntryRepo := repository.NewPostgresRawEntryRepository(db)
	syncRunRepo := repository.NewPostgresSyncRunRepository(db)

	recordUC := usecase.NewRecordUsecase(recordRepo, redisCache, logger)
	matchUC := usecase.NewMatchUsecase(subscriberRepo, matchRepo, logger)

	fetcher := feed.NewFetcher(cfg.Feed.URL, cfg.Feed.Timeout, cfg.Sync.MaxEntries, logger)
	syncer := pipeline.NewSyncer(
		fetcher,
		recordRepo, rawEntryRepo, syncRunRepo, subscriberRepo,
		matchUC,
		cfg.Feed.SourceSystem,
		cfg.Sync.SectorCPVPrefix,
		cfg.Sync.Staleness,
		logger,
	)
	syncUC := usecase.NewSyncUsecase(syncer, syncRunRepo, recordUC, hub, logger)

	return &Container{
		Config:      cfg,
		DB:          db,
		Cache:       redisCache,
		Hub:         hub,
		Records:     recordUC,
		Matches:     matchUC,
		Sync:        syncUC,
		SyncRunRepo: syncRunRepo,
		logger:      logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

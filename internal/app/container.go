package app

import (
	"context"
	"log"
	"os"
	"time"

	"credtrack/internal/config"
	"credtrack/internal/database"
	dbpostgres "credtrack/internal/database/postgres"
	"credtrack/internal/infrastructure/cache"
	"credtrack/internal/infrastructure/gateway"
	"credtrack/internal/jobs"
	"credtrack/internal/repository"
	"credtrack/internal/ws"
)

type Container struct {
	Config     config.Config
	Logger     *log.Logger
	DB         database.DB
	Cache      *cache.Redis
	Gateway    *gateway.Client
	Hub        *ws.Hub
	Reconciler *jobs.Reconciler
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, cfg.App.AppName+" ", log.LstdFlags|log.Lmsgprefix)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	courseRepo := repository.NewPostgresCourseRepository(db)

	return &Container{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Cache:      cache.NewRedis(cfg.Redis, logger),
		Gateway:    gateway.NewClient(cfg.Gateway),
		Hub:        ws.NewHub(logger),
		Reconciler: jobs.NewReconciler(courseRepo, cfg.Jobs.ReconcileSchedule, logger),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Reconciler != nil {
		c.Reconciler.Stop()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

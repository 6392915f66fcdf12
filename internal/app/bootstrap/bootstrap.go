package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	announcementservice "vecindario/contexts/community/announcement-service"
	announcementpostgres "vecindario/contexts/community/announcement-service/adapters/postgres"
	emergencyservice "vecindario/contexts/community/emergency-service"
	emergencypostgres "vecindario/contexts/community/emergency-service/adapters/postgres"
	billingcycle "vecindario/contexts/finance/billing-cycle"
	billingpostgres "vecindario/contexts/finance/billing-cycle/adapters/postgres"
	treasuryservice "vecindario/contexts/finance/treasury-service"
	treasurypostgres "vecindario/contexts/finance/treasury-service/adapters/postgres"
	votingengine "vecindario/contexts/governance/voting-engine"
	votingpostgres "vecindario/contexts/governance/voting-engine/adapters/postgres"
	"vecindario/internal/platform/config"
	"vecindario/internal/platform/db"
	"vecindario/internal/platform/httpserver"
	"vecindario/internal/platform/messaging"
	"vecindario/internal/platform/metrics"
	"vecindario/internal/shared/outbox"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	relays       []outbox.Relay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	votingRepo := votingpostgres.NewRepository(pg.DB, logger)
	votingModule := votingengine.NewModule(votingengine.Dependencies{
		Votaciones: votingRepo,
		Votos:      votingRepo,
		Roster:     votingRepo,
		Outbox:     votingRepo,
		Clock:      votingpostgres.SystemClock{},
		IDGen:      votingpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	billingRepo := billingpostgres.NewRepository(pg.DB, logger)
	billingModule := billingcycle.NewModule(billingcycle.Dependencies{
		Periodos:   billingRepo,
		Gastos:     billingRepo,
		Roster:     billingRepo,
		Outbox:     billingRepo,
		Clock:      billingpostgres.SystemClock{},
		IDGen:      billingpostgres.UUIDGenerator{},
		PaidWindow: cfg.StatementPaidWindow,
		Logger:     logger,
	})

	treasuryModule := treasuryservice.NewModule(treasuryservice.Dependencies{
		Movimientos: treasurypostgres.NewRepository(pg.DB, logger),
		Clock:       treasurypostgres.SystemClock{},
		IDGen:       treasurypostgres.UUIDGenerator{},
		Logger:      logger,
	})

	announcementModule := announcementservice.NewModule(announcementservice.Dependencies{
		Comunicados: announcementpostgres.NewRepository(pg.DB, logger),
		Clock:       announcementpostgres.SystemClock{},
		IDGen:       announcementpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	emergencyRepo := emergencypostgres.NewRepository(pg.DB, logger)
	emergencyModule := emergencyservice.NewModule(emergencyservice.Dependencies{
		Alertas: emergencyRepo,
		Outbox:  emergencyRepo,
		Clock:   emergencypostgres.SystemClock{},
		IDGen:   emergencypostgres.UUIDGenerator{},
		Logger:  logger,
	})

	server := httpserver.New(httpserver.Dependencies{
		Voting:        votingModule,
		Billing:       billingModule,
		Treasury:      treasuryModule,
		Announcements: announcementModule,
		Emergencies:   emergencyModule,
		JWTSecret:     cfg.JWTSecret,
		Metrics:       metrics.New(cfg.ServiceName),
		Logger:        logger,
		Addr:          normalizeAddr(cfg.HTTPPort),
	})
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	relays := []outbox.Relay{
		{
			Name:      "governance/voting-engine",
			Source:    votingpostgres.NewRepository(pg.DB, logger),
			Publisher: bus,
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		{
			Name:      "finance/billing-cycle",
			Source:    billingpostgres.NewRepository(pg.DB, logger),
			Publisher: bus,
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		{
			Name:      "community/emergency-service",
			Source:    emergencypostgres.NewRepository(pg.DB, logger),
			Publisher: bus,
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
	}

	return &WorkerApp{
		postgres:     pg,
		relays:       relays,
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	interval := w.pollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", interval.String(),
	)

	for {
		for _, relay := range w.relays {
			if err := relay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}

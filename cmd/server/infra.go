package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"claims/internal/audit"
	auditkafka "claims/internal/audit/store/kafka"
	auditmemory "claims/internal/audit/store/memory"
	auditpostgres "claims/internal/audit/store/postgres"
	claimservice "claims/internal/claims/service"
	claimstore "claims/internal/claims/store"
	coverservice "claims/internal/covers/service"
	coverstore "claims/internal/covers/store"
	"claims/internal/platform/config"
	"claims/internal/platform/postgres"
	"claims/internal/platform/redis"
	httptransport "claims/internal/transport/http"
)

// infra holds the external resources chosen by configuration.
type infra struct {
	db    *sql.DB
	redis *redis.Client
	kafka *auditkafka.Store

	coverStore coverservice.Store
	claimStore claimservice.Store
	auditStore audit.Store
}

func openInfra(ctx context.Context, cfg config.Config, log *slog.Logger) (*infra, error) {
	in := &infra{}

	if cfg.UsesDatabase() {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		in.db = db
		if err := postgres.Migrate(ctx, db); err != nil {
			in.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		in.coverStore = coverstore.NewPostgres(db)
		in.claimStore = claimstore.NewPostgres(db)
	} else {
		log.Warn("DATABASE_URL not set, covers and claims are kept in memory")
		in.coverStore = coverstore.NewInMemory()
		in.claimStore = claimstore.NewInMemory()
	}

	switch cfg.Audit.Sink {
	case config.AuditSinkPostgres:
		in.auditStore = auditpostgres.New(in.db)
	case config.AuditSinkKafka:
		store, err := auditkafka.New(auditkafka.Config{
			Brokers:           cfg.Kafka.Brokers,
			Topic:             cfg.Kafka.Topic,
			Partitions:        int32(cfg.Kafka.Partitions),
			ReplicationFactor: int16(cfg.Kafka.ReplicationFactor),
		})
		if err != nil {
			in.Close()
			return nil, fmt.Errorf("open kafka audit sink: %w", err)
		}
		in.kafka = store
		if err := store.EnsureTopic(ctx); err != nil {
			in.Close()
			return nil, fmt.Errorf("ensure audit topic: %w", err)
		}
		in.auditStore = store
	default:
		in.auditStore = auditmemory.NewInMemoryStore()
	}

	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("open redis: %w", err)
	}
	in.redis = client

	return in, nil
}

func (in *infra) healthChecks() map[string]httptransport.HealthCheck {
	checks := map[string]httptransport.HealthCheck{}
	if in.db != nil {
		checks["postgres"] = in.db.PingContext
	}
	if in.redis != nil {
		checks["redis"] = in.redis.Health
	}
	return checks
}

func (in *infra) Close() {
	if in.kafka != nil {
		in.kafka.Close()
	}
	if in.redis != nil {
		_ = in.redis.Close()
	}
	if in.db != nil {
		_ = in.db.Close()
	}
}

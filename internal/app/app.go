package app

import (
	"context"
	"time"

	"github.com/gogotex/gogotex/backend/go-simplifier/handlers"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/cache"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/config"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/model"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/simplification/repository"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/simplification/service"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/storage"
	"github.com/gogotex/gogotex/backend/go-simplifier/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Deps holds the process-wide objects built at startup. Everything except
// Runtime may be nil when the corresponding backend is not configured.
type Deps struct {
	Runtime   *model.Runtime
	Connector *repository.MongoConnector
	Cache     *cache.RedisCache
	Archive   *storage.MinIOArchive

	redis *redis.Client
}

// Wire loads the model and connects the optional backends described by cfg.
// Backends that fail to initialise are logged and left nil.
func Wire(ctx context.Context, cfg *config.Config) (*Deps, error) {
	rt, err := model.Load(ctx, cfg.Model)
	if err != nil {
		return nil, err
	}
	d := &Deps{Runtime: rt}

	if cfg.MongoDB.URI != "" {
		d.Connector = repository.NewMongoConnector(cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Collection, cfg.MongoDB.Timeout, cfg.MongoDB.ReconnectInterval)
		// connect eagerly so the first request does not pay for it
		d.Connector.Connect(ctx)
	} else {
		logger.Infof("MONGODB_URI not set, persistence disabled")
	}

	if cfg.Redis.Host != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := client.Ping(pctx).Err()
		cancel()
		if err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s), cache disabled: %v", cfg.Redis.Host, cfg.Redis.Port, err)
			_ = client.Close()
		} else {
			d.redis = client
			d.Cache = cache.NewRedisCache(client, rt.Name(), cfg.Cache.TTL)
			logger.Infof("simplification cache on Redis %s:%s (ttl=%s)", cfg.Redis.Host, cfg.Redis.Port, cfg.Cache.TTL)
		}
	}

	if cfg.MinIO.Endpoint != "" {
		a, err := storage.NewMinIOArchive(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("minio archive disabled: %v", err)
		} else {
			d.Archive = a
			logger.Infof("archiving records to bucket %s", cfg.MinIO.Bucket)
		}
	}
	return d, nil
}

// Service builds the simplification service over d.
func (d *Deps) Service() *service.Service {
	opts := service.Options{Model: d.Runtime}
	// typed nils must not leak into the interfaces
	if d.Connector != nil {
		opts.Connector = d.Connector
	}
	if d.Cache != nil {
		opts.Cache = d.Cache
	}
	if d.Archive != nil {
		opts.Archive = d.Archive
	}
	return service.New(opts)
}

// Checks returns the readiness checks for d. The model check asks the bound
// inference endpoint whether it still serves the model; the store and cache
// checks are informational.
func (d *Deps) Checks() []handlers.Check {
	checks := []handlers.Check{
		{Name: "model", Required: true, Probe: func(ctx context.Context) bool { return d.Runtime.Ping(ctx) == nil }},
	}
	if d.Connector != nil {
		checks = append(checks, handlers.Check{Name: "mongo", Probe: func(context.Context) bool { return d.Connector.Connected() }})
	}
	if d.Cache != nil {
		checks = append(checks, handlers.Check{Name: "cache", Probe: func(ctx context.Context) bool { return d.Cache.Ping(ctx) == nil }})
	}
	return checks
}

// Close releases connections held by d.
func (d *Deps) Close(ctx context.Context) {
	if d.Connector != nil {
		if err := d.Connector.Close(ctx); err != nil {
			logger.Warnf("mongo disconnect: %v", err)
		}
	}
	if d.redis != nil {
		_ = d.redis.Close()
	}
}

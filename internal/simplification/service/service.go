package service

import (
	"context"
	"time"

	"github.com/gogotex/gogotex/backend/go-simplifier/internal/model"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/simplification"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/simplification/repository"
	"github.com/gogotex/gogotex/backend/go-simplifier/pkg/logger"
	"github.com/gogotex/gogotex/backend/go-simplifier/pkg/metrics"
	"github.com/google/uuid"
)

const defaultStoreTimeout = 5 * time.Second

// Simplifier is the model runtime as seen by the service.
type Simplifier interface {
	Simplify(ctx context.Context, text string) (string, error)
	Name() string
	Device() string
}

// Cache short-circuits repeated inputs. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, text string) (string, bool, error)
	Set(ctx context.Context, text, simplified string) error
}

// Options wires the service. Only Model is required; nil Connector, Cache and
// Archive disable the corresponding side effect.
type Options struct {
	Model        Simplifier
	Connector    repository.Connector
	Cache        Cache
	Archive      repository.Recorder
	StoreTimeout time.Duration
}

// Service runs a simplification and its best-effort side effects.
type Service struct {
	model        Simplifier
	connector    repository.Connector
	cache        Cache
	archive      repository.Recorder
	storeTimeout time.Duration
}

func New(opts Options) *Service {
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = defaultStoreTimeout
	}
	return &Service{
		model:        opts.Model,
		connector:    opts.Connector,
		cache:        opts.Cache,
		archive:      opts.Archive,
		storeTimeout: opts.StoreTimeout,
	}
}

// Simplify returns the simplified rendering of text. Only model errors are
// returned; cache and persistence failures are logged and counted.
func (s *Service) Simplify(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", model.ErrEmptyInput
	}
	log := logger.With("request_id", requestID(ctx))

	simplified, hit := s.lookup(ctx, log, text)
	if !hit {
		out, err := s.model.Simplify(ctx, text)
		if err != nil {
			return "", err
		}
		simplified = out
		if s.cache != nil {
			if err := s.cache.Set(ctx, text, simplified); err != nil {
				log.Warnf("cache store failed: %v", err)
			}
		}
	}

	s.persist(ctx, log, &simplification.Record{
		ID:             uuid.NewString(),
		OriginalText:   text,
		SimplifiedText: simplified,
		Model:          s.model.Name(),
		Device:         s.model.Device(),
		CreatedAt:      time.Now().UTC(),
	})
	return simplified, nil
}

func (s *Service) lookup(ctx context.Context, log *logger.Entry, text string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	v, ok, err := s.cache.Get(ctx, text)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		log.Warnf("cache lookup failed: %v", err)
		return "", false
	case ok:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		log.Debugf("cache hit")
		return v, true
	default:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return "", false
	}
}

// persist writes rec to the document store (when reachable) and the archive.
// Writes use a context detached from the request so a client disconnect does
// not abort them.
func (s *Service) persist(ctx context.Context, log *logger.Entry, rec *simplification.Record) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()

	var store repository.Recorder
	if s.connector != nil {
		store = s.connector.Connect(ctx)
	}
	if store == nil {
		metrics.PersistenceWrites.WithLabelValues("mongo", "skipped").Inc()
	} else if err := store.Store(ctx, rec); err != nil {
		metrics.PersistenceWrites.WithLabelValues("mongo", "failed").Inc()
		log.Warnf("store record %s: %v", rec.ID, err)
	} else {
		metrics.PersistenceWrites.WithLabelValues("mongo", "stored").Inc()
		log.Debugf("stored record %s", rec.ID)
	}

	if s.archive == nil {
		return
	}
	if err := s.archive.Store(ctx, rec); err != nil {
		metrics.PersistenceWrites.WithLabelValues("minio", "failed").Inc()
		log.Warnf("archive record %s: %v", rec.ID, err)
		return
	}
	metrics.PersistenceWrites.WithLabelValues("minio", "stored").Inc()
}

type ctxKey struct{}

// WithRequestID attaches a request id used in log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return id
	}
	return "-"
}

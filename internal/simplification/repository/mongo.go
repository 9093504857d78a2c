package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gogotex/gogotex/backend/go-simplifier/internal/database"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/simplification"
	"github.com/gogotex/gogotex/backend/go-simplifier/pkg/logger"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"
)

// MongoRecorder inserts records into a MongoDB collection.
type MongoRecorder struct {
	col *mongo.Collection
}

func NewMongoRecorder(col *mongo.Collection) *MongoRecorder {
	return &MongoRecorder{col: col}
}

func (m *MongoRecorder) Store(ctx context.Context, rec *simplification.Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if _, err := m.col.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert record %s: %w", rec.ID, err)
	}
	return nil
}

// MongoConnector connects to MongoDB on first use and keeps the client for the
// process lifetime. After a failed attempt further attempts are made at most
// once per reconnect interval; in between Connect returns nil immediately.
type MongoConnector struct {
	uri        string
	database   string
	collection string
	timeout    time.Duration
	dial       func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error)

	attempts rate.Sometimes

	mu     sync.RWMutex
	client *mongo.Client
	rec    *MongoRecorder
}

// Non-positive durations fall back to 5s (timeout) and 30s (reconnect interval).
func NewMongoConnector(uri, databaseName, collection string, timeout, reconnectInterval time.Duration) *MongoConnector {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	// a zero Interval would let rate.Sometimes run only the first attempt
	if reconnectInterval <= 0 {
		reconnectInterval = 30 * time.Second
	}
	return &MongoConnector{
		uri:        uri,
		database:   databaseName,
		collection: collection,
		timeout:    timeout,
		dial:       database.ConnectMongo,
		attempts:   rate.Sometimes{First: 1, Interval: reconnectInterval},
	}
}

func (c *MongoConnector) Connect(ctx context.Context) Recorder {
	if rec := c.recorder(); rec != nil {
		return rec
	}
	c.attempts.Do(func() {
		// another caller may have connected while we waited on the limiter
		if c.recorder() != nil {
			return
		}
		client, err := c.dial(ctx, c.uri, c.timeout)
		if err != nil {
			logger.Warnf("mongo unavailable, persistence disabled: %v", err)
			return
		}
		c.mu.Lock()
		c.client = client
		c.rec = NewMongoRecorder(client.Database(c.database).Collection(c.collection))
		c.mu.Unlock()
		logger.Infof("connected to MongoDB (%s.%s)", c.database, c.collection)
	})
	if rec := c.recorder(); rec != nil {
		return rec
	}
	return nil
}

func (c *MongoConnector) recorder() *MongoRecorder {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rec
}

// Connected reports whether a client is currently held.
func (c *MongoConnector) Connected() bool {
	return c.recorder() != nil
}

// Close disconnects the held client, if any.
func (c *MongoConnector) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	c.rec = nil
	return err
}

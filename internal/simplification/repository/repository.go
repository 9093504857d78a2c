package repository

import (
	"context"

	"github.com/gogotex/gogotex/backend/go-simplifier/internal/simplification"
)

// Recorder persists simplification records.
type Recorder interface {
	Store(ctx context.Context, rec *simplification.Record) error
}

// Connector hands out a Recorder when the backing store is reachable and nil
// when it is not. Connection failures are never returned to the caller.
type Connector interface {
	Connect(ctx context.Context) Recorder
}

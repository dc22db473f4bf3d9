package storage

import (
	"context"
	"errors"

	"github.com/saurabhkm/pland/internal/model"
)

// ErrNotFound is returned by Load when no schedule document has ever been
// saved.
var ErrNotFound = errors.New("storage: not found")

// Store owns the durable schedule document. There is exactly one document per
// store, keyed by model.ScheduleKey; Save always replaces it wholesale.
type Store interface {
	Load(ctx context.Context) (model.Schedule, error)
	Save(ctx context.Context, in model.Schedule) error
	Close() error
}

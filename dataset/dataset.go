package dataset

import (
	"context"
	"errors"

	"hermannm.dev/candlestick/table"
)

// Provider loads datasets by name from a backing store.
type Provider interface {
	LoadDataset(ctx context.Context, name string) (table.Table, error)
}

var ErrNotFound = errors.New("dataset not found")

// Package session keeps one feedback batch per dashboard session so the
// "live" feed does not re-roll on every view.
package session

import (
	"context"
	"time"

	"feedback-intel-go/internal/types"
)

const DefaultID = "default"

// Snapshot is a batch plus the moment and refresh bucket it was produced in.
// Live marks a batch that came from the live source rather than the generator.
type Snapshot struct {
	Records     []types.Record `json:"records"`
	LastRefresh time.Time      `json:"last_refresh"`
	Tick        int64          `json:"tick"`
	Live        bool           `json:"live"`
}

// Store is the externally owned session cache. A missing session is
// (Snapshot{}, false, nil), not an error.
type Store interface {
	Get(ctx context.Context, id string) (Snapshot, bool, error)
	Put(ctx context.Context, id string, snap Snapshot) error
	Invalidate(ctx context.Context, id string) error
}

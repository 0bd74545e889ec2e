package storage

import (
	"context"

	"github.com/suimfx/suimfx-official/internal/application/port"
	"github.com/suimfx/suimfx-official/internal/domain"
)

// Nop is the recorder used when no storage backend is enabled.
type Nop struct{}

func (Nop) UpsertQuote(ctx context.Context, q domain.Quote) error { return nil }

func (Nop) InsertSnapshot(ctx context.Context, ts int64, payload string) error { return nil }

func (Nop) Close() error { return nil }

var _ port.Recorder = Nop{}

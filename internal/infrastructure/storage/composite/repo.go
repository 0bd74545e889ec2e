package composite

import (
	"context"

	"github.com/suimfx/suimfx-official/internal/application/port"
	"github.com/suimfx/suimfx-official/internal/domain"
)

// Repo fans every write out to all configured recorders. The first error
// is reported; the rest still get the write.
type Repo struct {
	recorders []port.Recorder
}

func New(recorders ...port.Recorder) *Repo {
	// nil recorders are allowed; filter in constructor for safety
	out := make([]port.Recorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			out = append(out, r)
		}
	}
	return &Repo{recorders: out}
}

func (r *Repo) UpsertQuote(ctx context.Context, q domain.Quote) error {
	var firstErr error
	for _, rec := range r.recorders {
		if err := rec.UpsertQuote(ctx, q); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Repo) InsertSnapshot(ctx context.Context, ts int64, payload string) error {
	var firstErr error
	for _, rec := range r.recorders {
		if err := rec.InsertSnapshot(ctx, ts, payload); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Repo) Close() error {
	var firstErr error
	for _, rec := range r.recorders {
		if err := rec.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ port.Recorder = (*Repo)(nil)

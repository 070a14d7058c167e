package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/stratumdoc/stratum/pkg/adapters/fs"
)

type workspaceSource struct {
	events <-chan fs.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits workspace change events.
// It bridges the typed event channel to the generic lifecycle Event
// interface so host programs can supervise a recomposition loop.
func NewSource(events <-chan fs.Event) lifecycle.Source {
	return &workspaceSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *workspaceSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *workspaceSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// fs.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"

	"github.com/stratumdoc/stratum/pkg/core"
)

// Watch observes the layer directories and emits one debounced Event per
// changed document until ctx is cancelled. Consumers re-run Compose on
// each event. The returned channel is closed when the watcher shuts down.
func (w *Workspace) Watch(ctx context.Context) (<-chan Event, error) {
	events := make(chan Event, 16)
	wk := newWatchWorker(w, events)
	if err := wk.Start(ctx); err != nil {
		return nil, err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = wk.Stop(stopCtx)
		close(events)
		return nil
	})

	return events, nil
}

type watchWorker struct {
	*worker.BaseWorker
	ws        *Workspace
	events    chan<- Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(ws *Workspace, events chan<- Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("workspace-watcher"),
		ws:         ws,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.addLayerDirs(watcher); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)
	w.ws.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// addLayerDirs registers every directory beneath the layer roots with the
// fsnotify watcher. fsnotify is not recursive on its own.
func (w *watchWorker) addLayerDirs(watcher *fsnotify.Watcher) error {
	for _, layer := range []core.Layer{core.LayerBase, core.LayerExtension, core.LayerLocalOverride} {
		root := filepath.Join(w.ws.Root, w.ws.config.LayerDirs[layer])
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}

		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		})
		if err != nil {
			return fmt.Errorf("failed to watch layer dir %s: %w", root, err)
		}
	}
	return nil
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.ws.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)

			// Full stack only when debug logging is enabled; production
			// levels omit it to reduce log noise.
			var stack string
			if logger != nil && logger.Enabled(ctx, slog.LevelDebug) {
				stack = string(debug.Stack())
			}
			if logger != nil {
				if stack != "" {
					logger.Error("watcher panic", "error", panicErr, "stack", stack)
				} else {
					logger.Error("watcher panic", "error", panicErr)
				}
			}
		}
	}()
	defer w.ws.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.loop(ctx)

	// Shutdown: stop accepting events and wait for in-flight timers so the
	// events channel can be closed safely afterwards.
	w.debouncer.stopAndWait(5 * time.Second)

	return err
}

func (w *watchWorker) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			if w.ws.config.Logger != nil {
				w.ws.config.Logger.Error("fsnotify error", "error", wErr)
			}
		}
	}
}

func (w *watchWorker) handleEvent(ctx context.Context, event fsnotify.Event) {
	// Newly created directories must join the watch set.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !strings.HasPrefix(filepath.Base(event.Name), ".") {
				_ = w.watcher.Add(event.Name)
			}
			return
		}
	}

	layer, id, ok := w.ws.resolveID(event.Name)
	if !ok {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}

	if w.ws.config.Logger != nil {
		w.ws.config.Logger.Debug("event received", "name", event.Name, "id", id)
	}

	w.debouncer.add(Event{
		Type:      eType,
		Layer:     layer,
		ID:        id,
		Timestamp: time.Now().Unix(),
	}, func(e Event) {
		defer func() {
			// Recover from panic if channel was closed (worker stopping).
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func mapEventType(event fsnotify.Event) EventType {
	switch {
	case event.Has(fsnotify.Create):
		return EventCreate
	case event.Has(fsnotify.Write):
		return EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return EventDelete
	default:
		return ""
	}
}

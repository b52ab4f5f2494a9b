// Package app hosts preference contributors: it owns the configuration
// registry, runs every contributor's Init in order at startup, and resolves
// user settings against what was registered.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/trayprefs/internal/config/layer"
	"github.com/dshills/trayprefs/internal/config/notify"
	"github.com/dshills/trayprefs/internal/config/registry"
	"github.com/dshills/trayprefs/internal/config/schema"
)

// Initializable is a component that needs one-time setup during startup.
type Initializable interface {
	// Name identifies the component in logs and errors.
	Name() string
	// Init performs the setup. A returned error aborts startup.
	Init(ctx context.Context) error
}

// Application wires the registry, its notifier and metrics, and runs
// initializers against them.
type Application struct {
	mu sync.Mutex

	logger   *slog.Logger
	metrics  *prometheus.Registry
	notifier *notify.Notifier
	registry *registry.Registry
	counters *initCounters

	initialized []string
	started     bool
}

// Options configures the application.
type Options struct {
	// Logger receives startup logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// New creates an Application with an empty registry.
func New(opts Options) *Application {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics := prometheus.NewRegistry()
	notifier := notify.New()
	notifier.Subscribe(func(r notify.Registration) {
		logger.Debug("registered property", "key", r.Key, "default", r.Default, "source", r.NodeID)
	})

	return &Application{
		logger:   logger,
		metrics:  metrics,
		notifier: notifier,
		registry: registry.New(
			registry.WithNotifier(notifier),
			registry.WithMetrics(metrics),
		),
		counters: newInitCounters(metrics),
	}
}

// Registry returns the configuration registry contributors register into.
func (app *Application) Registry() *registry.Registry {
	return app.registry
}

// Metrics returns the gatherer holding registry and startup metrics.
func (app *Application) Metrics() prometheus.Gatherer {
	return app.metrics
}

// Start runs initializers in order. The first failure stops startup and is
// returned as *InitError; initializers after it are not run.
// Start may only be called once.
func (app *Application) Start(ctx context.Context, initializers ...Initializable) error {
	app.mu.Lock()
	if app.started {
		app.mu.Unlock()
		return ErrAlreadyStarted
	}
	app.started = true
	app.mu.Unlock()

	b := newBootstrapper(app)
	err := b.run(ctx, initializers)

	app.mu.Lock()
	app.initialized = b.initOrder
	app.mu.Unlock()

	return err
}

// Initialized returns the names of initializers that completed, in order.
func (app *Application) Initialized() []string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return append([]string(nil), app.initialized...)
}

// Accepts reports whether value may be used for key: the registered
// property allows it, or no registered property claims key.
func (app *Application) Accepts(key string, value any) bool {
	err := app.registry.Validate(key, value)
	return err == nil || errors.Is(err, registry.ErrUnknownProperty)
}

// Preferences resolves the layer stack against the registry. Each key takes
// its value from the highest layer whose value the registry accepts, so an
// invalid override falls back to the layer below it and finally to the
// default. Rejected values are reported in the returned error alongside the
// result.
func (app *Application) Preferences(layers *layer.Manager) (map[string]any, error) {
	values := make(map[string]any)
	errs := &schema.ValidationErrors{}

	for _, l := range layers.Layers() {
		keys := make([]string, 0, len(l.Values))
		for k := range l.Values {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			value := l.Values[key]
			if app.Accepts(key, value) {
				values[key] = value
				continue
			}
			err := app.registry.Validate(key, value)
			app.logger.Warn("ignoring invalid preference value", "layer", l.Name, "key", key, "error", err)
			var verr *schema.ValidationError
			if errors.As(err, &verr) {
				errs.AddError(verr)
			} else {
				errs.Add(key, err.Error())
			}
		}
	}

	resolved, err := app.registry.Resolve(values)
	if err != nil {
		return resolved, err
	}
	return resolved, errs.AsError()
}

// Close releases the notifier.
func (app *Application) Close() {
	app.notifier.Close()
}

package app

import (
	"context"
	"time"
)

// bootstrapper runs initializers in the order given and records which ones
// completed.
type bootstrapper struct {
	app       *Application
	initOrder []string
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{
		app:       app,
		initOrder: make([]string, 0, 4),
	}
}

func (b *bootstrapper) run(ctx context.Context, initializers []Initializable) error {
	for _, c := range initializers {
		if err := b.initComponent(ctx, c); err != nil {
			return err
		}
	}

	b.app.logger.Info("startup complete", "components", len(b.initOrder))
	return nil
}

func (b *bootstrapper) initComponent(ctx context.Context, c Initializable) error {
	name := c.Name()
	logger := b.app.logger.With("component", name)

	start := time.Now()
	logger.Debug("initializing")

	if err := c.Init(ctx); err != nil {
		b.app.counters.failed.Inc()
		logger.Error("initialization failed", "error", err)
		return &InitError{Component: name, Err: err}
	}

	b.app.counters.succeeded.Inc()
	b.initOrder = append(b.initOrder, name)
	logger.Debug("initialized", "duration", time.Since(start))
	return nil
}

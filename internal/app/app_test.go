package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/trayprefs/internal/config/layer"
	"github.com/dshills/trayprefs/internal/config/loader"
	"github.com/dshills/trayprefs/internal/config/registry"
	"github.com/dshills/trayprefs/internal/preferences/trayicon"
)

type stubInit struct {
	name  string
	err   error
	calls *[]string
}

func (s stubInit) Name() string { return s.name }

func (s stubInit) Init(context.Context) error {
	*s.calls = append(*s.calls, s.name)
	return s.err
}

func quietApp() *Application {
	return New(Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
}

func TestStartRegistersTrayIconColor(t *testing.T) {
	app := quietApp()
	defer app.Close()

	err := app.Start(context.Background(), DefaultInitializers(app.Registry())...)
	require.NoError(t, err)

	assert.Equal(t, []string{"tray icon color"}, app.Initialized())
	_, ok := app.Registry().Node(trayicon.NodeID)
	assert.True(t, ok)
	assert.Equal(t, "default", app.Registry().Default(trayicon.PropertyKey))
}

func TestStartStopsAtFirstFailure(t *testing.T) {
	app := quietApp()
	defer app.Close()

	var calls []string
	boom := errors.New("boom")
	err := app.Start(context.Background(),
		stubInit{name: "first", calls: &calls},
		stubInit{name: "second", err: boom, calls: &calls},
		stubInit{name: "third", calls: &calls},
	)

	var ierr *InitError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "second", ierr.Component)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "init second: boom", err.Error())
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, []string{"first"}, app.Initialized())
}

func TestStartTwice(t *testing.T) {
	app := quietApp()
	defer app.Close()

	require.NoError(t, app.Start(context.Background()))
	assert.ErrorIs(t, app.Start(context.Background()), ErrAlreadyStarted)
}

func TestStartSurfacesRegistryRejection(t *testing.T) {
	app := quietApp()
	defer app.Close()

	app.Registry().MustRegister(trayicon.ConfigurationNode())

	err := app.Start(context.Background(), DefaultInitializers(app.Registry())...)
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrAlreadyRegistered)

	var ierr *InitError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "tray icon color", ierr.Component)
}

func TestStartMetrics(t *testing.T) {
	app := quietApp()
	defer app.Close()

	var calls []string
	_ = app.Start(context.Background(),
		stubInit{name: "ok", calls: &calls},
		stubInit{name: "bad", err: errors.New("x"), calls: &calls},
	)

	assert.Equal(t, 1.0, testutil.ToFloat64(app.counters.succeeded))
	assert.Equal(t, 1.0, testutil.ToFloat64(app.counters.failed))

	families, err := app.Metrics().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "trayprefs_app_initializers_total")
}

func TestPreferences(t *testing.T) {
	app := quietApp()
	defer app.Close()
	require.NoError(t, app.Start(context.Background(), DefaultInitializers(app.Registry())...))

	fsys := fstest.MapFS{
		"settings.json": {Data: []byte(`{"preferences.TrayIconColor": "light"}`)},
		"bad.json":      {Data: []byte(`{"preferences.TrayIconColor": "purple"}`)},
	}

	stack := func(t *testing.T, path string) *layer.Manager {
		t.Helper()
		m := layer.NewManager()
		require.NoError(t, m.Load(path, layer.SourceUser, loader.NewJSONLoaderWithFS(fsys, path)))
		return m
	}

	t.Run("user value", func(t *testing.T) {
		values, err := app.Preferences(stack(t, "settings.json"))
		require.NoError(t, err)
		assert.Equal(t, "light", values[trayicon.PropertyKey])
	})

	t.Run("missing file falls back to default", func(t *testing.T) {
		values, err := app.Preferences(stack(t, "absent.json"))
		require.NoError(t, err)
		assert.Equal(t, "default", values[trayicon.PropertyKey])
	})

	t.Run("invalid value falls back to default", func(t *testing.T) {
		values, err := app.Preferences(stack(t, "bad.json"))
		require.Error(t, err)
		assert.Equal(t, "default", values[trayicon.PropertyKey])
	})
}

func TestStartLogsRegisteredProperties(t *testing.T) {
	var buf bytes.Buffer
	app := New(Options{Logger: NewLogger("debug", &buf)})
	defer app.Close()

	require.NoError(t, app.Start(context.Background(), DefaultInitializers(app.Registry())...))

	out := buf.String()
	assert.Contains(t, out, "registered property")
	assert.Contains(t, out, "key=preferences.TrayIconColor")
	assert.Contains(t, out, "default=default")
	assert.Contains(t, out, "source=preferences.trayiconcolor")
}

func TestPreferencesInvalidOverrideFallsBackToLowerLayer(t *testing.T) {
	app := quietApp()
	defer app.Close()
	require.NoError(t, app.Start(context.Background(), DefaultInitializers(app.Registry())...))

	layers := layer.NewManager()
	layers.AddLayer(layer.NewLayerWithValues("settings.json", layer.SourceUser, map[string]any{
		trayicon.PropertyKey: "light",
	}))
	layers.AddLayer(layer.NewLayerWithValues("environment", layer.SourceEnv, map[string]any{
		trayicon.PropertyKey: "blue",
		"external.Thing":     42,
	}))

	values, err := app.Preferences(layers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), trayicon.PropertyKey)
	assert.Equal(t, "light", values[trayicon.PropertyKey])
	assert.Equal(t, 42, values["external.Thing"])

	assert.True(t, app.Accepts(trayicon.PropertyKey, "dark"))
	assert.False(t, app.Accepts(trayicon.PropertyKey, "blue"))
	assert.True(t, app.Accepts("external.Thing", 42))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("warn", &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}

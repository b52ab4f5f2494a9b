package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/trayprefs/internal/app"
	"github.com/dshills/trayprefs/internal/config/layer"
	"github.com/dshills/trayprefs/internal/config/loader"
)

// Viper keys.
const (
	keyLogLevel   = "log_level"
	keySettings   = "settings"
	keyBackground = "background"
	keySet        = "set"
)

// cli holds the state shared by every subcommand of one invocation.
type cli struct {
	v       *viper.Viper
	cfgFile string
	logger  *slog.Logger
}

func newRootCmd(version string) *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:          "trayprefs",
		Short:        "Inspect the tray icon color preference",
		Long:         `Registers the built-in preference contributors and reports their schema and resolved values.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.cfgFile, "config", "c", "", "config file (json, toml or yaml)")
	flags.StringSlice(keySettings, nil, "user settings files, later files win")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.StringArray(keySet, nil, "override a preference as key=value (repeatable)")

	_ = c.v.BindPFlag(keySettings, flags.Lookup(keySettings))
	_ = c.v.BindPFlag(keyLogLevel, flags.Lookup("log-level"))

	root.AddCommand(
		newSchemaCmd(c),
		newGetCmd(c),
		newTrayColorCmd(c),
		newMetricsCmd(c),
	)
	return root
}

func (c *cli) initConfig(cmd *cobra.Command) error {
	c.v.SetDefault(keyLogLevel, "info")
	c.v.SetEnvPrefix("TRAYPREFS")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	c.v.AutomaticEnv()

	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", c.cfgFile, err)
		}
	}

	c.logger = app.NewLogger(c.v.GetString(keyLogLevel), cmd.ErrOrStderr())
	slog.SetDefault(c.logger)
	return nil
}

// start creates an application with the default contributors registered.
// The caller closes it.
func (c *cli) start(cmd *cobra.Command) (*app.Application, error) {
	application := app.New(app.Options{Logger: c.logger})
	if err := application.Start(cmd.Context(), app.DefaultInitializers(application.Registry())...); err != nil {
		application.Close()
		return nil, err
	}
	return application, nil
}

// layers loads the settings files in order, then the environment, then
// --set overrides.
func (c *cli) layers(cmd *cobra.Command) (*layer.Manager, error) {
	m := layer.NewManager()
	for _, path := range c.v.GetStringSlice(keySettings) {
		l, err := loader.ForPath(path)
		if err != nil {
			return nil, err
		}
		if err := m.Load(path, layer.SourceUser, l); err != nil {
			return nil, err
		}
	}
	if err := m.Load("environment", layer.SourceEnv, loader.NewEnvLoader()); err != nil {
		return nil, err
	}

	sets, err := cmd.Flags().GetStringArray(keySet)
	if err != nil {
		return nil, err
	}
	args, err := parseSets(sets)
	if err != nil {
		return nil, err
	}
	m.AddLayer(layer.NewLayerWithValues("arguments", layer.SourceArgs, args))
	return m, nil
}

// parseSets converts key=value pairs into layer values.
func parseSets(sets []string) (map[string]any, error) {
	values := make(map[string]any, len(sets))
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", s)
		}
		values[key] = value
	}
	return values, nil
}

// preferences resolves user values. Invalid values fall back to their
// defaults and are only logged.
func (c *cli) preferences(cmd *cobra.Command, application *app.Application) (map[string]any, *layer.Manager, error) {
	layers, err := c.layers(cmd)
	if err != nil {
		return nil, nil, err
	}
	values, _ := application.Preferences(layers)
	return values, layers, nil
}

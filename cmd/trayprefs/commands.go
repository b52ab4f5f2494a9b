package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/trayprefs/internal/config/layer"
	"github.com/dshills/trayprefs/internal/preferences/trayicon"
)

func newSchemaCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the registered configuration nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := c.start(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			nodes := application.Registry().Nodes()
			out := cmd.OutOrStdout()

			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(nodes)
			case "yaml", "yml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(nodes); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, yaml)")
	return cmd
}

func newGetCmd(c *cli) *cobra.Command {
	var showOrigin bool

	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Print resolved preference values",
		Long:  `Prints the value of key, or every registered key, after applying settings files and TRAYPREFS_ environment variables over the defaults.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := c.start(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			values, layers, err := c.preferences(cmd, application)
			if err != nil {
				return err
			}

			// origin names the layer a value came from, skipping values the
			// registry rejected.
			origin := func(key string) string {
				name, source, ok := layers.Origin(key, func(v any) bool {
					return application.Accepts(key, v)
				})
				switch {
				case !ok:
					return layer.SourceBuiltin.String()
				case source == layer.SourceUser:
					return name
				default:
					return source.String()
				}
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				v, ok := values[args[0]]
				if !ok {
					return fmt.Errorf("unknown preference %q", args[0])
				}
				if showOrigin {
					fmt.Fprintf(out, "%v (%s)\n", v, origin(args[0]))
				} else {
					fmt.Fprintln(out, v)
				}
				return nil
			}

			keys := application.Registry().Keys()
			sort.Strings(keys)
			for _, k := range keys {
				if showOrigin {
					fmt.Fprintf(out, "%s=%v (%s)\n", k, values[k], origin(k))
				} else {
					fmt.Fprintf(out, "%s=%v\n", k, values[k])
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showOrigin, "origin", false, "show which source each value came from")
	return cmd
}

func newTrayColorCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tray-color",
		Short: "Print the tray icon color to use",
		Long: `Prints "light" or "dark". A forced preference wins; with "default" the color
is picked to contrast with --background (a hex color such as #202020).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := c.start(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			values, _, err := c.preferences(cmd, application)
			if err != nil {
				return err
			}

			pref, err := trayicon.FromSettings(values)
			if err != nil {
				return err
			}
			color, err := trayicon.Resolve(pref, c.v.GetString(keyBackground))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color)
			return nil
		},
	}

	cmd.Flags().String(keyBackground, "", "panel background color as hex")
	_ = c.v.BindPFlag(keyBackground, cmd.Flags().Lookup(keyBackground))
	return cmd
}

func newMetricsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print startup and registry metrics in Prometheus text format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := c.start(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			families, err := application.Metrics().Gather()
			if err != nil {
				return fmt.Errorf("gathering metrics: %w", err)
			}
			for _, mf := range families {
				if _, err := expfmt.MetricFamilyToText(cmd.OutOrStdout(), mf); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"honnef.co/go/smooth"
	"honnef.co/go/smooth/internal/codec"
	"honnef.co/go/smooth/internal/config"
	"honnef.co/go/smooth/internal/feature"
	"honnef.co/go/smooth/internal/logging"
	"honnef.co/go/smooth/internal/metrics"
	"honnef.co/go/smooth/internal/server"
)

// newRootCmd links the commands together. All flags are bound to v, so they
// take precedence over the configuration file and the environment.
func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:   "smoothline",
		Short: "Convert hand-drawn routes into smooth curves and back.",
		Long: `smoothline converts the sharp polylines of hand-drawn routes into smooth
curves of the same length, and restores the drawn geometry on request.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'SMOOTHLINE_section_var',
e.g. SMOOTHLINE_SMOOTHING_SHARPNESS.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(v, v.GetString("config"))
			if err != nil {
				return err
			}
			logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "configuration file location")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("strategy", "chaikin", "smoothing strategy: chaikin or spline")
	pf.Float64("sharpness", smooth.DefaultSharpness, "smoothing sharpness, 0.01 to 1")
	pf.Int("resolution", smooth.DefaultResolution, "number of points sampled from the spline")
	pf.String("metric", "euclidean", "metric used for densification: euclidean or great-circle")
	pf.Bool("densify", true, "split long segments before smoothing")
	pf.Bool("rescale", true, "stretch the smoothed curve to the drawn route's length")
	bind(v, pf.Lookup, map[string]string{
		"config":               "config",
		"log.level":            "log-level",
		"log.format":           "log-format",
		"smoothing.strategy":   "strategy",
		"smoothing.sharpness":  "sharpness",
		"smoothing.resolution": "resolution",
		"smoothing.metric":     "metric",
		"smoothing.densify":    "densify",
		"smoothing.rescale":    "rescale",
	})

	smoothCmd := &cobra.Command{
		Use:   "smooth",
		Short: "Smooth all routes of a file.",
		Long: `smooth reads routes, smooths them and writes them as GeoJSON features
annotated with their drawn coordinates, so that they can be restored later.
Routes that are already smoothed are smoothed again from their drawn
coordinates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pl, err := cfg.Smoothing.Pipeline()
			if err != nil {
				return err
			}
			params := cfg.Smoothing.Params()
			strategy := cfg.Smoothing.Strategy
			return convert(cmd, func(r smooth.Route) (smooth.Route, error) {
				start := time.Now()
				out, err := r.Smooth(pl, params)
				metrics.ObservePipeline(strategy, start, out.Live().Len(), err)
				return out, err
			})
		},
	}

	restoreCmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore the drawn geometry of smoothed routes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return convert(cmd, func(r smooth.Route) (smooth.Route, error) {
				return r.Restore(), nil
			})
		},
	}

	for _, c := range []*cobra.Command{smoothCmd, restoreCmd} {
		c.Flags().StringP("input", "i", "-", "input file, - for standard input")
		c.Flags().StringP("output", "o", "-", "output file, - for standard output")
		c.Flags().String("from", "", "input format: geojson, gpx or polyline (default: from file extension, else geojson)")
		c.Flags().String("to", "geojson", "output format: geojson, gpx or polyline")
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the smoothing API over HTTP.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}
	serveCmd.Flags().Int("port", 8080, "port to listen on")
	bind(v, serveCmd.Flags().Lookup, map[string]string{"server.port": "port"})

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "smoothline %s\n", Version)
		},
		DisableAutoGenTag: true,
	}

	root.AddCommand(smoothCmd, restoreCmd, serveCmd, versionCmd)
	return root
}

func bind(v *viper.Viper, lookup func(string) *pflag.Flag, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, lookup(name)); err != nil {
			panic(err)
		}
	}
}

// convert reads routes, applies op to each of them and writes the result.
func convert(cmd *cobra.Command, op feature.Op) error {
	flags := cmd.Flags()
	in, _ := flags.GetString("input")
	out, _ := flags.GetString("output")
	from, _ := flags.GetString("from")
	to, _ := flags.GetString("to")

	inFormat := codec.FormatFromPath(in, codec.GeoJSON)
	if from != "" {
		f, err := codec.ParseFormat(from)
		if err != nil {
			return err
		}
		inFormat = f
	}
	outFormat, err := codec.ParseFormat(to)
	if err != nil {
		return err
	}

	r := cmd.InOrStdin()
	if in != "-" {
		f, err := os.Open(in)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	fc, err := codec.Read(r, inFormat)
	if err != nil {
		return err
	}

	res, err := feature.Apply(fc, op)
	if err != nil {
		return err
	}
	slog.Info("converted routes", "features", len(res.Features), "from", inFormat, "to", outFormat)

	return write(cmd.OutOrStdout(), out, res, outFormat)
}

func write(stdout io.Writer, name string, fc *geojson.FeatureCollection, format codec.Format) error {
	if name == "-" {
		return codec.Write(stdout, fc, format)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := codec.Write(f, fc, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func serve(cfg *config.Config) error {
	app := server.NewApp(cfg, &server.Dependencies{
		Smoothing: cfg.Smoothing,
		Logger:    slog.Default(),
		Version:   Version,
	})

	errc := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("server starting", "addr", addr)
		errc <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		return err
	case sig := <-quit:
		slog.Info("shutdown signal received, draining connections", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(ctx)
}

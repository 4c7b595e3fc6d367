package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"baby-feed-tracker/internal/adapters/storage/sqldb"
	"baby-feed-tracker/internal/adapters/storage/xlsx"
	"baby-feed-tracker/internal/domain/feeds"
	"baby-feed-tracker/internal/domain/voice"
	"baby-feed-tracker/internal/platform/apiclient"
	"baby-feed-tracker/internal/platform/config"
	"baby-feed-tracker/internal/platform/logger"
	"baby-feed-tracker/internal/router"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type rootFlags struct {
	configPath string
	server     string
	caregiver  string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:           "baby-feed-tracker",
		Short:         "Registro compartido de tomas, pañales y vitamina D",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), f)
		},
	}

	root.PersistentFlags().StringVar(&f.configPath, "config", os.Getenv("CONFIG_FILE"), "archivo YAML de configuración")
	root.PersistentFlags().StringVar(&f.server, "server", "http://localhost:8080", "URL del servidor (log, status)")
	root.PersistentFlags().StringVar(&f.caregiver, "as", os.Getenv("CAREGIVER"), "nombre de quien registra (log)")

	root.AddCommand(
		newServeCmd(f),
		newInitCmd(f),
		newParseCmd(),
		newLogCmd(f),
		newStatusCmd(f),
	)
	return root
}

func newServeCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), f)
		},
	}
}

func newInitCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Crea la planilla (o el esquema SQL) si no existe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			_, closeTable, err := openTable(cfg)
			if err != nil {
				return err
			}
			defer closeTable()

			target := cfg.FeedFile
			if cfg.DB.DSN != "" {
				target = cfg.DB.Driver + " feed_log"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ready: %s\n", target)
			return nil
		},
	}
}

func newParseCmd() *cobra.Command {
	var unit string

	cmd := &cobra.Command{
		Use:   "parse <frase>",
		Short: "Interpreta una frase sin registrar nada",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printParse(cmd.OutOrStdout(), strings.Join(args, " "), feeds.ParseVolumeUnit(unit))
		},
	}
	cmd.Flags().StringVar(&unit, "unit", "ml", "unidad de volumen del registro (ml|oz)")
	return cmd
}

func newLogCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "log <frase>",
		Short: "Registra una frase en el servidor en marcha",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(f)
			if err != nil {
				return err
			}

			res, err := c.Voice(cmd.Context(), strings.Join(args, " "), true)
			if err != nil {
				var herr *apiclient.HTTPError
				if errors.As(err, &herr) && herr.StatusCode == http.StatusUnprocessableEntity {
					return errors.New("could not parse input")
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "logged #%d: %s\n", res.ID, res.Description)
			return nil
		},
	}
}

func newStatusCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Muestra vitamina y totales de hoy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(f)
			if err != nil {
				return err
			}

			vit, err := c.VitaminStatus(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := c.TodayStats(cmd.Context())
			if err != nil {
				return err
			}

			printStatus(cmd.OutOrStdout(), vit, stats)
			return nil
		},
	}
}

func runServe(ctx context.Context, f *rootFlags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	defer func() { _ = logger.Sync(log) }()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	table, closeTable, err := openTable(cfg)
	if err != nil {
		return err
	}
	defer closeTable()

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Table:    table,
			Logger:   log,
			Unit:     feeds.ParseVolumeUnit(cfg.VolumeUnit),
			Location: loc,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "unit": cfg.VolumeUnit, "file": cfg.FeedFile})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openTable elige el backend: tabla SQL si hay DSN, planilla si no.
func openTable(cfg config.Config) (feeds.Table, func(), error) {
	if cfg.DB.DSN != "" {
		db, err := sqldb.Open(cfg.DB.Driver, cfg.DB.DSN)
		if err != nil {
			return nil, nil, err
		}
		return sqldb.NewFeedsTable(db, cfg.DB.Driver), func() { _ = db.Close() }, nil
	}

	t := xlsx.NewFeedTable(cfg.FeedFile, feeds.ParseVolumeUnit(cfg.VolumeUnit))
	if err := t.Init(); err != nil {
		return nil, nil, err
	}
	return t, func() {}, nil
}

func newClient(f *rootFlags) (*apiclient.Client, error) {
	c, err := apiclient.New(f.server, apiclient.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	c.Caregiver = f.caregiver
	return c, nil
}

func printParse(w io.Writer, transcript string, unit feeds.VolumeUnit) error {
	c, ok := voice.Parse(transcript)
	fmt.Fprintln(w, voice.Describe(c, ok))
	if !ok {
		return errors.New("could not parse input")
	}

	e := c.Event(unit)
	fmt.Fprintf(w, "would log: %s", feeds.Label(e.Kind, e.Qualifier))
	if e.Amount != nil {
		fmt.Fprintf(w, " — %s %s", feeds.FormatNumber(e.Amount), unit)
	}
	if e.Duration != nil {
		fmt.Fprintf(w, " — %s min", feeds.FormatNumber(e.Duration))
	}
	fmt.Fprintln(w)
	return nil
}

func printStatus(w io.Writer, vit apiclient.VitaminStatus, st apiclient.Stats) {
	if vit.GivenToday && vit.TimeGiven != nil {
		fmt.Fprintf(w, "Vitamin D: given at %s\n", *vit.TimeGiven)
	} else {
		fmt.Fprintln(w, "Vitamin D: not given yet")
	}
	if vit.MissedDoseLogged {
		fmt.Fprintln(w, "Yesterday's missed dose was recorded")
	}

	fmt.Fprintf(w, "Bottles: %d (%s %s)\n", st.TotalFeeds, feeds.FormatNumber(&st.TotalVolume), st.Unit)
	fmt.Fprintf(w, "Nursing sessions: %d\n", st.TotalNursingSessions)
	fmt.Fprintf(w, "Pumped: %s %s\n", feeds.FormatNumber(&st.TotalPumpVolume), st.Unit)
	fmt.Fprintf(w, "Diapers: %d\n", st.TotalDiaperChanges)
	if st.AvgFeedIntervalMin != nil {
		fmt.Fprintf(w, "Avg interval: %d min\n", *st.AvgFeedIntervalMin)
	}
}

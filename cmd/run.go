package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/kasuboski/mediaindex/config"
	"github.com/kasuboski/mediaindex/pkg/library"
	"github.com/kasuboski/mediaindex/pkg/logger"
	"github.com/kasuboski/mediaindex/pkg/scanner"
	"github.com/kasuboski/mediaindex/server"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// runCmd keeps the collections in sync until interrupted
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scan collections on a schedule and on file changes",
	Long: `Scan every configured collection at startup, then rescan on the configured cron schedule
and, when watching is enabled, whenever files below an item directory change. The read api is
served on server.port unless it is zero`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = logger.WithCtx(ctx, log)

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		store, s := setup(ctx, cfg)

		scanAll := func() {
			for _, coll := range cfg.Collections() {
				summary, err := s.ScanCollection(ctx, coll, library.ScanOptions{})
				if err != nil {
					log.Errorw("failed to scan collection", "collection", coll.Name, "error", err)
					continue
				}
				printSummary(summary)
			}
		}

		scanAll()

		g, ctx := errgroup.WithContext(ctx)

		if cfg.Scanner.Schedule != "" {
			c := cron.New(cron.WithLogger(cronLogger{}))
			_, err := c.AddFunc(cfg.Scanner.Schedule, scanAll)
			if err != nil {
				log.Fatal("invalid scan schedule", zap.String("schedule", cfg.Scanner.Schedule), zap.Error(err))
			}

			g.Go(func() error {
				c.Start()
				log.Infow("scheduled collection scans", "schedule", cfg.Scanner.Schedule)
				<-ctx.Done()
				<-c.Stop().Done()
				return nil
			})
		}

		if cfg.Scanner.Watch {
			w, err := scanner.NewWatcher(s, cfg.Collections(), cfg.Scanner.Debounce)
			if err != nil {
				log.Fatal("failed to watch collections", zap.Error(err))
			}

			g.Go(func() error {
				return w.Run(ctx)
			})
		}

		if cfg.Server.Port > 0 {
			srv := server.New(log, store, s, cfg.Collections())
			g.Go(func() error {
				return srv.Serve(ctx, cfg.Server.Port)
			})
		}

		g.Go(func() error {
			<-ctx.Done()
			return nil
		})

		err = g.Wait()
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Fatal("stopped with error", zap.Error(err))
		}

		log.Info("shutting down")
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// cronLogger routes cron's own logging to zap
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logger.Get().Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logger.Get().Errorw(msg, append(keysAndValues, "error", err)...)
}

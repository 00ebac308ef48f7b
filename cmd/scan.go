package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kasuboski/mediaindex/config"
	mio "github.com/kasuboski/mediaindex/pkg/io"
	"github.com/kasuboski/mediaindex/pkg/library"
	"github.com/kasuboski/mediaindex/pkg/logger"
	"github.com/kasuboski/mediaindex/pkg/media"
	"github.com/kasuboski/mediaindex/pkg/probe"
	"github.com/kasuboski/mediaindex/pkg/scanner"
	"github.com/kasuboski/mediaindex/pkg/storage"
	"github.com/kasuboski/mediaindex/pkg/storage/sqlite"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var onlyNfo bool

// scanCmd scans collections once
var scanCmd = &cobra.Command{
	Use:   "scan [collection]",
	Short: "Scan collections once",
	Long:  `Scan every configured collection, or only the named one, and update the stored metadata`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(cmd.Context(), log)

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		collections := cfg.Collections()
		if len(args) == 1 {
			coll, ok := cfg.Collection(args[0])
			if !ok {
				log.Fatalf("collection %q is not configured", args[0])
			}
			collections = []media.Collection{coll}
		}

		_, s := setup(ctx, cfg)

		opts := library.ScanOptions{OnlyNfo: onlyNfo}
		for _, coll := range collections {
			summary, err := s.ScanCollection(ctx, coll, opts)
			if err != nil {
				log.Fatal("failed to scan collection", zap.String("collection", coll.Name), zap.Error(err))
			}
			printSummary(summary)
		}
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&onlyNfo, "only-nfo", false, "only re-read nfo files, leave images and video info untouched")
}

// setup opens the store and builds a scanner from the configuration
func setup(ctx context.Context, cfg config.Config) (storage.Storage, *scanner.Scanner) {
	log := logger.FromCtx(ctx)

	store, err := sqlite.New(ctx, cfg.Storage.FilePath)
	if err != nil {
		log.Fatal("failed to create storage connection", zap.Error(err))
	}

	err = store.RunMigrations(ctx)
	if err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	var prober probe.Prober
	if cfg.Scanner.FFProbe != "" {
		prober = probe.NewFFProbe(cfg.Scanner.FFProbe)
	}

	lib := library.New(prober)
	return store, scanner.New(lib, store, &mio.MediaFileSystem{}, cfg.Scanner.Concurrency)
}

func printSummary(s scanner.Summary) {
	fmt.Printf("%s: %s scanned, %d created, %d updated, %d rejected, %d deleted, %d failed in %s\n",
		s.Collection,
		humanize.Comma(int64(s.Scanned)),
		s.Created,
		s.Updated,
		s.Rejected,
		s.Deleted,
		s.Failed,
		s.Duration.Round(time.Millisecond),
	)
}

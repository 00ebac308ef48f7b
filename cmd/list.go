package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/kasuboski/mediaindex/config"
	"github.com/kasuboski/mediaindex/pkg/logger"
	"github.com/kasuboski/mediaindex/pkg/storage/sqlite"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var listDeleted bool

// listCmd lists stored items
var listCmd = &cobra.Command{
	Use:   "list [collection]",
	Short: "List stored items",
	Long:  `List the items stored for every configured collection, or only the named one`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(cmd.Context(), log)

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		store, err := sqlite.New(ctx, cfg.Storage.FilePath)
		if err != nil {
			log.Fatal("failed to create storage connection", zap.Error(err))
		}

		err = store.RunMigrations(ctx)
		if err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "COLLECTION\tID\tKIND\tTITLE\tPATH\tMODIFIED\tADDED")

		for _, coll := range cfg.Collections() {
			if len(args) == 1 && coll.Name != args[0] {
				continue
			}

			items, err := store.ListItems(ctx, coll.ID)
			if err != nil {
				log.Fatal("failed to list items", zap.String("collection", coll.Name), zap.Error(err))
			}

			for _, item := range items {
				if item.Deleted && !listDeleted {
					continue
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
					coll.Name,
					item.ID,
					item.Kind,
					item.Title,
					item.Path,
					humanize.Time(item.LastModified),
					humanize.Time(item.DateAdded),
				)
			}
		}

		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listDeleted, "deleted", false, "include items flagged deleted")
}

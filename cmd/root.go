package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mediaindex",
	Short: "mediaindex cli",
	Long:  `mediaindex scans movie and show collections and keeps their metadata in sync`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")
}

const (
	defaultConcurrency = 4
	defaultDebounce    = time.Second * 5
)

func initConfig() {
	viper.SetConfigFile(cfgFile)

	viper.SetEnvPrefix("MEDIAINDEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("storage.filePath", "mediaindex.sqlite")

	viper.SetDefault("scanner.concurrency", defaultConcurrency)
	viper.SetDefault("scanner.schedule", "")
	viper.SetDefault("scanner.ffprobe", "ffprobe")
	viper.SetDefault("scanner.watch", false)
	viper.SetDefault("scanner.debounce", defaultDebounce)

	viper.SetDefault("server.port", 8080)
}

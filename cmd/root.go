package cmd

import (
	"log"

	"tobaccoform/internal/config"
	"tobaccoform/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg = config.Default()

	apiURL  string
	logFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "tobacco",
	Short: "Register tobacco brands, tastes and flavours in the hookah catalog",
	Long: `Tobacco is an operator tool for the hookah tobacco catalog. Without a
subcommand it opens the interactive menu; "form" jumps straight to the
entry form, and the remaining commands cover scripted entry, bulk import
and catalog administration.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&apiURL, "api-url", "a", config.DefaultAPIURL, "Base URL of the tobacco catalog API")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write diagnostic logs to this file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(brandsCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

// initConfig layers .env and the environment over the defaults, then lets
// explicitly set flags win.
func initConfig() {
	loaded, err := config.Load()
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	cfg = loaded

	flags := rootCmd.PersistentFlags()
	if flags.Changed("api-url") {
		cfg.APIURL = apiURL
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
}

// newLogger builds the diagnostic logger. fallbackFile is used when no log
// file is configured; an empty fallback logs to stderr.
func newLogger(fallbackFile string) *zap.Logger {
	file := cfg.LogFile
	if file == "" {
		file = fallbackFile
	}
	logger, err := logging.New(logging.Options{File: file, Debug: cfg.Debug})
	if err != nil {
		log.Printf("Falling back to a no-op logger: %v", err)
		return zap.NewNop()
	}
	return logger
}

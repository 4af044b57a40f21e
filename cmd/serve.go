package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tobaccoform/internal/catalog"
	"tobaccoform/internal/database"

	"github.com/spf13/cobra"
)

var (
	listenAddr string
	dbURI      string
	dbName     string
	collection string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tobacco catalog API backed by MongoDB",
	Long: `Run a catalog backend that serves the brand list and accepts new
tobacco records. Useful for local development of the entry form.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "Listen address (default from LISTEN_ADDR or :5000)")
	addDatabaseFlags(serveCmd)
}

func addDatabaseFlags(c *cobra.Command) {
	c.Flags().StringVarP(&dbURI, "db-uri", "u", "", "MongoDB connection URI (default from DB_URI)")
	c.Flags().StringVarP(&dbName, "database", "d", "", "Database name (default from DB_NAME)")
	c.Flags().StringVarP(&collection, "collection", "c", "", "Collection name (default from DB_COLLECTION)")
}

// databaseSettings resolves flag values over the loaded configuration.
func databaseSettings() (uri, name, coll string) {
	uri, name, coll = cfg.DBURI, cfg.DBName, cfg.Collection
	if dbURI != "" {
		uri = dbURI
	}
	if dbName != "" {
		name = dbName
	}
	if collection != "" {
		coll = collection
	}
	return uri, name, coll
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger("")
	defer logger.Sync()

	uri, name, coll := databaseSettings()
	db, err := database.NewMongoDB(uri, name, coll)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer db.Close()

	addr := cfg.ListenAddr
	if listenAddr != "" {
		addr = listenAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return catalog.Serve(ctx, catalog.NewServer(db, logger), addr, logger)
}

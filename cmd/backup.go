package cmd

import (
	"fmt"
	"log"

	"tobaccoform/internal/backup"
	"tobaccoform/internal/database"

	"github.com/spf13/cobra"
)

var (
	outputDir    string
	backupFormat string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Backup the tobacco catalog collection",
	Long:  "Backup the tobacco catalog collection to a BSON or JSON file",
	RunE:  runBackup,
}

func init() {
	backupCmd.Flags().StringVarP(&outputDir, "output", "o", "./backups", "Output directory for backup files")
	backupCmd.Flags().StringVarP(&backupFormat, "format", "f", "bson", "Backup format: bson or json")
	addDatabaseFlags(backupCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	if backupFormat != "bson" && backupFormat != "json" {
		return fmt.Errorf("invalid format: %s. Use 'bson' or 'json'", backupFormat)
	}

	uri, name, coll := databaseSettings()
	db, err := database.NewMongoDB(uri, name, coll)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer db.Close()

	backupService := backup.NewService(db)

	log.Printf("Starting backup of collection '%s' to %s format...", coll, backupFormat)
	backupFile, count, err := backupService.BackupCollection(coll, outputDir, backupFormat)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	log.Printf("Backup completed successfully: %s (%d documents)", backupFile, count)

	return nil
}

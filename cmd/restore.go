package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"tobaccoform/internal/backup"
	"tobaccoform/internal/database"

	"github.com/spf13/cobra"
)

var (
	inputFile        string
	restoreFormat    string
	dropExisting     bool
	skipConfirmation bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the tobacco catalog collection from a backup",
	Long:  "Restore the tobacco catalog collection from a BSON or JSON backup file",
	RunE:  runRestore,
}

func init() {
	restoreCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input backup file to restore (required)")
	restoreCmd.Flags().StringVarP(&restoreFormat, "format", "f", "", "Backup format: bson or json (auto-detected if not specified)")
	restoreCmd.Flags().BoolVar(&dropExisting, "drop", false, "Drop existing collection before restore")
	restoreCmd.Flags().BoolVar(&skipConfirmation, "yes", false, "Skip confirmation prompts")
	addDatabaseFlags(restoreCmd)

	restoreCmd.MarkFlagRequired("input")
}

func runRestore(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", inputFile)
	}

	format := restoreFormat
	if format == "" {
		detected, err := backup.DetectFormat(inputFile)
		if err != nil {
			return fmt.Errorf("%w. Please specify --format", err)
		}
		format = detected
	}

	if format != "bson" && format != "json" {
		return fmt.Errorf("invalid format: %s. Use 'bson' or 'json'", format)
	}

	uri, name, targetCollection := databaseSettings()
	if collection == "" {
		if fromName := backup.CollectionFromFileName(inputFile); fromName != "" {
			targetCollection = fromName
		}
	}

	if !skipConfirmation {
		log.Printf("About to restore:")
		log.Printf("  Source file: %s", inputFile)
		log.Printf("  Target database: %s", name)
		log.Printf("  Target collection: %s", targetCollection)
		log.Printf("  Format: %s", format)
		if dropExisting {
			log.Printf("  WARNING: Existing collection will be DROPPED!")
		}

		if !confirmAction(cmd.InOrStdin(), "Do you want to continue?") {
			log.Println("Restore cancelled")
			return nil
		}
	}

	db, err := database.NewMongoDB(uri, name, targetCollection)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer db.Close()

	backupService := backup.NewService(db)

	if err := backupService.ValidateBackupFile(inputFile, format); err != nil {
		return fmt.Errorf("backup file validation failed: %w", err)
	}

	log.Printf("Starting restore of collection '%s' from %s...", targetCollection, inputFile)

	count, err := backupService.RestoreCollection(targetCollection, inputFile, format, dropExisting)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	log.Printf("Restore completed successfully! %d documents restored", count)
	return nil
}

func confirmAction(in io.Reader, message string) bool {
	fmt.Printf("%s (y/N): ", message)
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

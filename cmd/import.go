package cmd

import (
	"fmt"
	"log"

	"tobaccoform/internal/api"
	"tobaccoform/internal/csv"
	"tobaccoform/internal/form"

	"github.com/spf13/cobra"
)

var csvFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Submit every row of a CSV file to the catalog",
	Long: `Read brand,taste,flavour rows from a CSV file and submit them one by
one, logging the server's answer for each row.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&csvFile, "csv", "c", "", "CSV file to import (required)")

	importCmd.MarkFlagRequired("csv")
}

func runImport(cmd *cobra.Command, args []string) error {
	parser := csv.NewParser(csvFile)
	records, err := parser.ParseRecords()
	if err != nil {
		return fmt.Errorf("failed to parse CSV: %w", err)
	}

	log.Printf("Parsed %d tobacco records from %s", len(records), csvFile)

	logger := newLogger("")
	defer logger.Sync()
	client := api.NewClient(cfg.APIURL)
	submitter := form.NewSubmitter(client, logger)

	sentCount := 0
	skippedCount := 0
	failedCount := 0
	for i, record := range records {
		if err := form.CheckRecord(record); err != nil {
			log.Printf("Skipping row %d (%s): %v", i+1, record.Brand, err)
			skippedCount++
			continue
		}

		text, ok := submitter.Send(cmd.Context(), record)
		if !ok {
			log.Printf("Failed to submit row %d (%s, %s)", i+1, record.Brand, record.Flavour)
			failedCount++
			continue
		}
		log.Printf("Row %d (%s, %s): %s", i+1, record.Brand, record.Flavour, text)
		sentCount++
	}

	if skippedCount > 0 {
		log.Printf("WARNING: Skipped %d rows", skippedCount)
		log.Printf("Expected columns (case-insensitive): brand, taste, flavour")
	}

	log.Printf("Submitted %d/%d rows to %s (%d failed)", sentCount, len(records), client.BaseURL(), failedCount)
	return nil
}

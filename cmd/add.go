package cmd

import (
	"fmt"
	"strings"

	"tobaccoform/internal/api"
	"tobaccoform/internal/form"
	"tobaccoform/internal/models"

	"github.com/spf13/cobra"
)

var (
	addBrand   string
	addTaste   string
	addFlavour string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Submit one tobacco record without the form",
	Long: `Submit one tobacco record to the catalog and print the server's
answer as-is. Tastes: sweet, sour, drink, herbs, dessert, no-specific-taste.`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addBrand, "brand", "b", "", "Brand name (required)")
	addCmd.Flags().StringVarP(&addTaste, "taste", "t", string(models.TasteNoSpecificTaste), "Taste category")
	addCmd.Flags().StringVarP(&addFlavour, "flavour", "f", "", "Flavour description")

	addCmd.MarkFlagRequired("brand")
}

func runAdd(cmd *cobra.Command, args []string) error {
	brand := strings.TrimSpace(addBrand)
	if brand == "" {
		return form.ErrNoBrand
	}
	taste, err := models.ParseTaste(addTaste)
	if err != nil {
		return err
	}

	logger := newLogger("")
	defer logger.Sync()

	client := api.NewClient(cfg.APIURL)
	submitter := form.NewSubmitter(client, logger)
	text, ok := submitter.Send(cmd.Context(), models.TobaccoRecord{
		Brand:   brand,
		Taste:   taste,
		Flavour: addFlavour,
	})
	if !ok {
		return fmt.Errorf("could not reach the catalog at %s", client.BaseURL())
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

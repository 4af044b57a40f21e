package cmd

import (
	"fmt"

	"tobaccoform/internal/api"

	"github.com/spf13/cobra"
)

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "List the brands known to the catalog",
	RunE:  runBrands,
}

func runBrands(cmd *cobra.Command, args []string) error {
	client := api.NewClient(cfg.APIURL)
	brands, err := client.Brands(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list brands from %s: %w", client.BaseURL(), err)
	}

	out := cmd.OutOrStdout()
	for _, brand := range brands {
		fmt.Fprintln(out, brand)
	}
	return nil
}

package cmd

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/mzawadzki/stripe-infakt-sync/pkg/config"
	"github.com/mzawadzki/stripe-infakt-sync/pkg/converter"
	"github.com/spf13/cobra"
)

// ratesCmd represents the rates command.
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Display the VAT symbol mappings in effect",
	Long: `Display the Stripe tax-percentage to inFakt tax-symbol mappings
that the sync command would use.

The built-in mapping covers only the exempt case (no tax rate -> "zw").
Concrete percentages come from the YAML file pointed to by VAT_RATES_FILE.

Example:
  stripe-infakt-sync rates`,
	Run: runRates,
}

func runRates(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	mapper := converter.NewVatMapper()
	if cfg.VatRatesFile != "" {
		mapper, err = converter.LoadVatMapper(cfg.VatRatesFile)
		exitOnError(err, "failed to load VAT rates file")
		slog.Info("Loaded VAT rates file", "path", cfg.VatRatesFile)
	} else {
		slog.Info("No VAT_RATES_FILE configured, only the built-in exempt mapping applies")
	}

	rates := mapper.Rates()
	sort.Slice(rates, func(i, j int) bool {
		return rates[i].Percentage < rates[j].Percentage
	})

	fmt.Println("\n=== VAT Symbol Mappings ===")
	fmt.Printf("%-12s -> %s (built-in: exempt)\n", "(no rate)", converter.ExemptSymbol)
	for _, rate := range rates {
		fmt.Printf("%-12s -> %s\n", fmt.Sprintf("%g%%", rate.Percentage), rate.Symbol)
	}
	fmt.Println()
}

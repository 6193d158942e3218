package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mzawadzki/stripe-infakt-sync/pkg/config"
	"github.com/mzawadzki/stripe-infakt-sync/pkg/converter"
	"github.com/mzawadzki/stripe-infakt-sync/pkg/infakt"
	"github.com/mzawadzki/stripe-infakt-sync/pkg/stripe"
	"github.com/mzawadzki/stripe-infakt-sync/pkg/timeutil"
	"github.com/spf13/cobra"
)

var (
	targetYear  int
	targetMonth int
	dryRun      bool
)

// syncCmd represents the sync command.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync paid Stripe invoices to inFakt",
	Long: `Sync paid invoices from Stripe to inFakt for a target month.

This command:
1. Fetches all paid invoices from Stripe for the target month
2. Transforms each into inFakt's invoice format
3. Asks for confirmation before each submission
4. Submits confirmed invoices to inFakt's async creation endpoint

The target month comes from TARGET_YEAR/TARGET_MONTH or the flags below.

Example:
  stripe-infakt-sync sync --year 2024 --month 3
  stripe-infakt-sync sync --year 2024 --month 3 --dry-run`,
	Run: runSync,
}

func init() {
	// Flags
	syncCmd.Flags().IntVar(&targetYear, "year", 0, "Target year (overrides TARGET_YEAR)")
	syncCmd.Flags().IntVar(&targetMonth, "month", 0, "Target month 1-12 (overrides TARGET_MONTH)")
	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Dry run mode (no submissions, no prompts)")
}

// runCounters tallies per-run outcomes for the final summary.
type runCounters struct {
	submitted     int
	skippedByUser int
	failed        int
	previewed     int
}

func runSync(cmd *cobra.Command, args []string) {
	slog.Info("Starting Stripe to inFakt invoice transfer")

	// Load configuration
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	if targetYear != 0 {
		cfg.TargetYear = targetYear
	}
	if targetMonth != 0 {
		cfg.TargetMonth = targetMonth
	}

	exitOnError(cfg.Validate(), "invalid configuration")
	exitOnError(timeutil.ValidateMonth(cfg.TargetYear, cfg.TargetMonth), "invalid target month")

	// Initialize components
	stripeClient := stripe.NewClient(stripe.ClientConfig{
		APIURL:     cfg.Stripe.APIURL,
		SecretKey:  cfg.Stripe.SecretKey,
		MaxRetries: cfg.Stripe.MaxRetries,
		RetryDelay: cfg.Stripe.RetryDelay,
	})
	infaktClient := infakt.NewClient(infakt.ClientConfig{
		APIURL: cfg.Infakt.APIURL,
		APIKey: cfg.Infakt.APIKey,
	})

	mapper := converter.NewVatMapper()
	if cfg.VatRatesFile != "" {
		mapper, err = converter.LoadVatMapper(cfg.VatRatesFile)
		exitOnError(err, "failed to load VAT rates file")
	}
	cvtr := converter.NewConverter(mapper)

	start, end := timeutil.MonthRange(cfg.TargetYear, cfg.TargetMonth)
	slog.Info("Calculated time range",
		"year", cfg.TargetYear,
		"month", cfg.TargetMonth,
		"start", start,
		"end", end,
	)

	// Fetch paid invoices from Stripe
	invoices, err := stripeClient.FetchPaidInvoices(start, end)
	exitOnError(err, "failed to fetch Stripe invoices")

	if len(invoices) == 0 {
		slog.Info("No paid invoices found in Stripe for the specified period")
		return
	}

	counters := processInvoices(invoices, cvtr, infaktClient, os.Stdin)

	// Summary
	fmt.Println("\n=== Processing Summary ===")
	fmt.Printf("Total Stripe invoices processed: %d\n", counters.total())
	if dryRun {
		fmt.Printf("Previewed (dry run):             %d\n", counters.previewed)
	} else {
		fmt.Printf("Submitted to inFakt queue:       %d\n", counters.submitted)
		fmt.Printf("Skipped by user:                 %d\n", counters.skippedByUser)
	}
	fmt.Printf("Failed (transform or submit):    %d\n", counters.failed)
	fmt.Println()

	slog.Info("Sync completed",
		"submitted", counters.submitted,
		"skipped_by_user", counters.skippedByUser,
		"failed", counters.failed,
	)
}

func (c runCounters) total() int {
	return c.submitted + c.skippedByUser + c.failed + c.previewed
}

// processInvoices drives the per-invoice transform / confirm / submit loop.
// Each invoice is processed fully before the next begins; a per-run set of
// seen IDs guards against duplicate submission within the run.
func processInvoices(invoices []stripe.Invoice, cvtr *converter.Converter, infaktClient *infakt.Client, in io.Reader) runCounters {
	var counters runCounters
	seen := make(map[string]bool)
	reader := bufio.NewReader(in)

	for i := range invoices {
		inv := &invoices[i]
		if inv.ID == "" {
			slog.Warn("Found invoice data without an ID, skipping")
			continue
		}
		if seen[inv.ID] {
			slog.Warn("Stripe invoice already processed this run, skipping", "invoice_id", inv.ID)
			continue
		}
		seen[inv.ID] = true

		slog.Info("Processing Stripe invoice", "invoice_id", inv.ID, "number", inv.Number)

		payload := cvtr.Transform(inv)
		if payload == nil {
			slog.Warn("Transformation skipped, not sending to inFakt", "invoice_id", inv.ID)
			counters.failed++
			continue
		}

		summary := converter.Summary(inv.ID, payload)

		if dryRun {
			fmt.Printf("\n[DRY RUN] Would create inFakt invoice for:\n%s\n", summary)
			counters.previewed++
			continue
		}

		if !confirm(reader, summary) {
			slog.Info("User skipped creating inFakt invoice", "invoice_id", inv.ID)
			counters.skippedByUser++
			continue
		}

		slog.Info("User confirmed, creating invoice in inFakt", "invoice_id", inv.ID)
		result, err := infaktClient.CreateInvoiceAsync(payload)
		if err != nil {
			slog.Error("Failed to submit invoice to inFakt", "invoice_id", inv.ID, "error", err)
			counters.failed++
			continue
		}

		slog.Info("Successfully submitted invoice task",
			"invoice_id", inv.ID,
			"task_reference", result.InvoiceTaskReferenceNumber,
		)
		counters.submitted++
	}

	return counters
}

// confirm prompts the operator and accepts exactly the literal lowercase "y";
// any other input declines.
func confirm(reader *bufio.Reader, summary string) bool {
	fmt.Printf("\nCreate inFakt invoice for:\n%s\n\nProceed? (y/n): ", summary)

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	return strings.TrimSpace(line) == "y"
}

package converter

import (
	"fmt"
	"strings"

	"github.com/mzawadzki/stripe-infakt-sync/pkg/infakt"
)

// Summary builds the human-readable confirmation block shown to the operator
// before an invoice is submitted. The gross amount is rendered in major
// currency units, assuming 100 minor units per major unit.
func Summary(stripeID string, inv *infakt.Invoice) string {
	clientName := derefOr(inv.ClientCompanyName, "")
	if clientName == "" {
		clientName = strings.TrimSpace(derefOr(inv.ClientFirstName, "") + " " + derefOr(inv.ClientLastName, ""))
	}

	var addressParts []string
	if street := derefOr(inv.ClientStreet, ""); street != "" {
		addressParts = append(addressParts, street)
	}
	codeCity := strings.TrimSpace(derefOr(inv.ClientPostCode, "") + " " + derefOr(inv.ClientCity, ""))
	if codeCity != "" {
		addressParts = append(addressParts, codeCity)
	}
	if country := derefOr(inv.ClientCountry, ""); country != "" {
		addressParts = append(addressParts, country)
	}

	gross := "N/A"
	if inv.GrossPrice != nil {
		gross = fmt.Sprintf("%.2f", float64(*inv.GrossPrice)/100)
	}

	return fmt.Sprintf(
		"Stripe ID: %s\n"+
			"  inFakt #: %s\n"+
			"  Client: %s\n"+
			"  Client address: %s\n"+
			"  Date: %s\n"+
			"  Amount: %s %s",
		stripeID,
		derefOr(inv.Number, "(auto)"),
		clientName,
		strings.Join(addressParts, ", "),
		derefOr(inv.InvoiceDate, ""),
		gross,
		inv.Currency,
	)
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

package converter

import (
	"log/slog"
	"strings"

	"github.com/mzawadzki/stripe-infakt-sync/pkg/infakt"
	"github.com/mzawadzki/stripe-infakt-sync/pkg/stripe"
	"github.com/mzawadzki/stripe-infakt-sync/pkg/timeutil"
)

const (
	defaultCurrency   = "PLN"
	defaultUnit       = "szt."
	flatRateTaxSymbol = "12"
)

// Converter transforms Stripe invoices into inFakt invoice payloads.
type Converter struct {
	mapper *VatMapper
}

// NewConverter creates a new Converter.
func NewConverter(mapper *VatMapper) *Converter {
	if mapper == nil {
		mapper = NewVatMapper()
	}
	return &Converter{
		mapper: mapper,
	}
}

// Transform maps a single Stripe invoice into the inFakt format. A nil result
// is a deliberate skip, not an error: zero-value invoices and invoices
// without usable line items or a determinable invoice date are not
// transferred. The result is never partial.
func (c *Converter) Transform(inv *stripe.Invoice) *infakt.Invoice {
	slog.Debug("Transforming Stripe invoice", "invoice_id", inv.ID)

	if inv.Total == 0 {
		slog.Warn("Stripe invoice has zero total amount, skipping", "invoice_id", inv.ID)
		return nil
	}

	if len(inv.Lines.Data) == 0 {
		slog.Warn("Stripe invoice has no line items, skipping", "invoice_id", inv.ID)
		return nil
	}

	services := c.buildServices(inv)
	if len(services) == 0 {
		slog.Warn("No valid line items after processing, skipping", "invoice_id", inv.ID)
		return nil
	}

	// Dates: paid_at drives invoice, payment and paid dates; sale date falls
	// back to the creation date when the invoice was never marked paid.
	var paidDate *string
	if inv.StatusTransitions.PaidAt != nil {
		d := timeutil.UnixToDate(*inv.StatusTransitions.PaidAt)
		paidDate = &d
	}
	saleDate := timeutil.UnixToDate(inv.Created)
	if paidDate != nil {
		saleDate = *paidDate
	}

	currency := inv.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	payload := &infakt.Invoice{
		InvoiceDate:   paidDate,
		SaleDate:      &saleDate,
		PaidDate:      paidDate,
		PaymentDate:   paidDate,
		Currency:      strings.ToUpper(currency),
		Status:        "paid",
		Kind:          "vat",
		PaymentMethod: mapPaymentMethod(inv),
		Number:        optString(inv.Number),
		NetPrice:      inv.Subtotal,
		TaxPrice:      inv.Tax,
		GrossPrice:    &inv.Total,
		PaidPrice:     inv.AmountPaid,
		LeftToPay:     0,
		SaleType:      "service",
		Services:      services,
	}

	taxCode := extractTaxCode(inv)
	if taxCode != "" {
		slog.Debug("Found tax ID on invoice", "invoice_id", inv.ID, "tax_code", taxCode)
	} else {
		slog.Debug("No tax ID found on invoice", "invoice_id", inv.ID)
	}

	mergeClientDetails(payload, Classify(inv.Customer, taxCode))

	if len(payload.Services) == 0 {
		slog.Error("Invoice transformation failed: missing services", "invoice_id", inv.ID)
		return nil
	}
	if payload.InvoiceDate == nil {
		slog.Error("Invoice transformation failed: missing invoice date", "invoice_id", inv.ID)
		return nil
	}

	return payload
}

// buildServices converts the invoice line items into inFakt service lines.
// Non-line-item entries are ignored.
func (c *Converter) buildServices(inv *stripe.Invoice) []infakt.Service {
	var services []infakt.Service

	for _, item := range inv.Lines.Data {
		if item.Object != "line_item" {
			continue
		}

		var taxTotal int64
		for _, t := range item.TaxAmounts {
			taxTotal += t.Amount
		}

		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}

		unitNetPrice := item.Amount
		if item.Quantity != 0 {
			unitNetPrice = item.Amount / item.Quantity
		}

		unit := defaultUnit
		if item.Price != nil && item.Price.UnitLabel != "" {
			unit = item.Price.UnitLabel
		}

		name := item.Description
		if name == "" {
			name = "N/A"
		}

		service := infakt.Service{
			Name:              name,
			Quantity:          quantity,
			Unit:              unit,
			NetPrice:          item.Amount,
			TaxPrice:          taxTotal,
			GrossPrice:        item.Amount + taxTotal,
			UnitNetPrice:      unitNetPrice,
			FlatRateTaxSymbol: flatRateTaxSymbol,
		}

		var percentage *float64
		if len(item.TaxRates) > 0 {
			percentage = item.TaxRates[0].Percentage
		}
		if symbol := c.mapper.Symbol(percentage); symbol != nil {
			service.TaxSymbol = symbol
		} else if percentage != nil {
			slog.Warn("Could not map tax rate for line item, omitting tax symbol",
				"invoice_id", inv.ID,
				"percentage", *percentage,
			)
		}

		services = append(services, service)
	}

	return services
}

// mapPaymentMethod maps Stripe payment info to inFakt's payment method enum.
// A payment-intent or charge reference is assumed to mean a card payment;
// the underlying payment instrument is not looked up.
func mapPaymentMethod(inv *stripe.Invoice) string {
	if inv.PaymentIntent != "" || inv.Charge != "" {
		return "card"
	}
	return "other"
}

// extractTaxCode scans the invoice's customer tax identifiers for the first
// non-empty value. An eu_vat identifier always wins and stops the scan, even
// when a non-eu_vat value was already captured.
func extractTaxCode(inv *stripe.Invoice) string {
	taxCode := ""
	for _, taxID := range inv.CustomerTaxIDs {
		if taxID.Value == "" {
			continue
		}
		if taxID.Type == "eu_vat" {
			return taxID.Value
		}
		if taxCode == "" {
			taxCode = taxID.Value
		}
	}
	return taxCode
}

// mergeClientDetails copies the classified client fields into the invoice
// payload, setting only the fields of the active variant.
func mergeClientDetails(payload *infakt.Invoice, details ClientDetails) {
	payload.ClientStreet = optString(details.Street)
	payload.ClientCity = optString(details.City)
	payload.ClientPostCode = optString(details.PostCode)
	payload.ClientCountry = optString(details.Country)
	payload.ClientBusinessActivityKind = optString(details.BusinessKind)

	switch details.Kind {
	case Company:
		payload.ClientCompanyName = optString(details.CompanyName)
		payload.ClientTaxCode = optString(details.TaxCode)
	case PrivatePerson:
		payload.ClientFirstName = optString(details.FirstName)
		payload.ClientLastName = optString(details.LastName)
	}
}

// optString returns a pointer to s, or nil when s is empty, so empty fields
// are stripped from the payload.
func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

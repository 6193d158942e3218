// Package stripe provides a Stripe API client and invoice types.
package stripe

// Invoice represents a Stripe invoice resource. Amounts are integers in the
// smallest currency unit (cents/groszy). Optional fields are pointers so that
// absence is distinguishable from zero.
type Invoice struct {
	ID                string            `json:"id"`
	Number            string            `json:"number,omitempty"`
	Total             int64             `json:"total"`
	Subtotal          *int64            `json:"subtotal,omitempty"`
	Tax               *int64            `json:"tax,omitempty"`
	AmountPaid        *int64            `json:"amount_paid,omitempty"`
	Currency          string            `json:"currency,omitempty"`
	Created           int64             `json:"created"`
	StatusTransitions StatusTransitions `json:"status_transitions"`
	PaymentIntent     string            `json:"payment_intent,omitempty"`
	Charge            string            `json:"charge,omitempty"`
	Customer          *Customer         `json:"customer,omitempty"`
	Lines             InvoiceLines      `json:"lines"`
	CustomerTaxIDs    []TaxID           `json:"customer_tax_ids,omitempty"`
}

// StatusTransitions holds the timestamps of invoice status changes.
type StatusTransitions struct {
	PaidAt *int64 `json:"paid_at,omitempty"`
}

// InvoiceLines wraps the expanded line items of an invoice.
type InvoiceLines struct {
	Data []LineItem `json:"data"`
}

// LineItem represents a single invoice line item.
type LineItem struct {
	Object      string      `json:"object"`
	Description string      `json:"description,omitempty"`
	Quantity    int64       `json:"quantity,omitempty"`
	Amount      int64       `json:"amount"`
	Price       *Price      `json:"price,omitempty"`
	TaxRates    []TaxRate   `json:"tax_rates,omitempty"`
	TaxAmounts  []TaxAmount `json:"tax_amounts,omitempty"`
}

// Price carries the price metadata attached to a line item.
type Price struct {
	UnitLabel string `json:"unit_label,omitempty"`
}

// TaxRate represents a tax rate applied to a line item.
type TaxRate struct {
	Percentage *float64 `json:"percentage,omitempty"`
}

// TaxAmount represents a computed tax amount on a line item.
type TaxAmount struct {
	Amount int64 `json:"amount"`
}

// Customer represents an expanded Stripe customer.
type Customer struct {
	ID      string   `json:"id"`
	Name    string   `json:"name,omitempty"`
	Email   string   `json:"email,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// Address represents a customer billing address.
type Address struct {
	Line1      string `json:"line1,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// TaxID represents a customer tax identifier attached to an invoice.
type TaxID struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// InvoiceList represents the response from the /v1/invoices list endpoint.
type InvoiceList struct {
	Object  string    `json:"object"`
	Data    []Invoice `json:"data"`
	HasMore bool      `json:"has_more"`
}

// ErrorResponse represents an error response from the Stripe API.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// APIError carries the error detail fields Stripe returns.
type APIError struct {
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Package infakt provides an inFakt API client and invoice types.
package infakt

// Invoice represents an inFakt invoice payload. All amounts are integers in
// grosze (minor currency units). Optional fields are pointers with omitempty
// so that absent values are stripped from the wire format, which the API
// requires.
type Invoice struct {
	InvoiceDate   *string `json:"invoice_date,omitempty"` // YYYY-MM-DD
	SaleDate      *string `json:"sale_date,omitempty"`
	PaidDate      *string `json:"paid_date,omitempty"`
	PaymentDate   *string `json:"payment_date,omitempty"`
	Currency      string  `json:"currency,omitempty"`
	Status        string  `json:"status,omitempty"`
	Kind          string  `json:"kind,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	Number        *string `json:"number,omitempty"`
	NetPrice      *int64  `json:"net_price,omitempty"`
	TaxPrice      *int64  `json:"tax_price,omitempty"`
	GrossPrice    *int64  `json:"gross_price,omitempty"`
	PaidPrice     *int64  `json:"paid_price,omitempty"`
	LeftToPay     int64   `json:"left_to_pay"`
	SaleType      string  `json:"sale_type,omitempty"`

	Services []Service `json:"services,omitempty"`

	// Client fields, flattened into the invoice payload.
	ClientCompanyName          *string `json:"client_company_name,omitempty"`
	ClientFirstName            *string `json:"client_first_name,omitempty"`
	ClientLastName             *string `json:"client_last_name,omitempty"`
	ClientTaxCode              *string `json:"client_tax_code,omitempty"`
	ClientBusinessActivityKind *string `json:"client_business_activity_kind,omitempty"`
	ClientStreet               *string `json:"client_street,omitempty"`
	ClientCity                 *string `json:"client_city,omitempty"`
	ClientPostCode             *string `json:"client_post_code,omitempty"`
	ClientCountry              *string `json:"client_country,omitempty"`
}

// Service represents a single invoiced service line.
type Service struct {
	Name              string  `json:"name"`
	Quantity          int64   `json:"quantity"`
	Unit              string  `json:"unit"`
	NetPrice          int64   `json:"net_price"`
	TaxPrice          int64   `json:"tax_price"`
	GrossPrice        int64   `json:"gross_price"`
	UnitNetPrice      int64   `json:"unit_net_price"`
	TaxSymbol         *string `json:"tax_symbol,omitempty"`
	FlatRateTaxSymbol string  `json:"flat_rate_tax_symbol"`
}

// CreateInvoiceRequest is the envelope required by the invoice endpoints.
type CreateInvoiceRequest struct {
	Invoice *Invoice `json:"invoice"`
}

// TaskResponse represents the response from the asynchronous invoice
// creation endpoint. The reference number identifies a queued creation job,
// not a confirmed invoice.
type TaskResponse struct {
	InvoiceTaskReferenceNumber string `json:"invoice_task_reference_number"`
}

// ErrorResponse represents an error response from the inFakt API.
type ErrorResponse struct {
	Error  string              `json:"error,omitempty"`
	Errors map[string][]string `json:"errors,omitempty"`
}

package converter

import (
	"log/slog"
	"strings"

	"github.com/mzawadzki/stripe-infakt-sync/pkg/stripe"
)

// ClientKind identifies which client variant a classification produced.
// The variants are mutually exclusive: a classified client is exactly one of
// a company, a private person, or unclassified.
type ClientKind int

const (
	// Unclassified means there was not enough customer data to decide
	// (no name and no tax code).
	Unclassified ClientKind = iota
	// Company means the customer is a business entity.
	Company
	// PrivatePerson means the customer is an individual.
	PrivatePerson
)

// String returns a human-readable kind name.
func (k ClientKind) String() string {
	switch k {
	case Company:
		return "company"
	case PrivatePerson:
		return "private_person"
	default:
		return "unclassified"
	}
}

// ClientDetails is the result of classifying a customer. Only the fields of
// the active variant are populated: CompanyName/TaxCode for Company,
// FirstName/LastName for PrivatePerson, neither for Unclassified. Address
// fields are filled on every variant when present in the source.
type ClientDetails struct {
	Kind ClientKind

	CompanyName  string
	TaxCode      string
	FirstName    string
	LastName     string
	BusinessKind string

	Street   string
	City     string
	PostCode string
	Country  string
}

// Classify decides whether a Stripe customer is a company or a private
// person. A present tax code always means company. Without one, a name that
// splits on its first space into exactly two parts is treated as a private
// person; any other name shape falls back to company. Country codes are
// passed through as Stripe provides them, without alpha-2 normalization.
func Classify(customer *stripe.Customer, taxCode string) ClientDetails {
	if customer == nil {
		slog.Warn("No customer data found for invoice")
		return ClientDetails{Kind: Unclassified}
	}

	details := ClientDetails{Kind: Unclassified}
	if customer.Address != nil {
		details.Street = customer.Address.Line1
		details.City = customer.Address.City
		details.PostCode = customer.Address.PostalCode
		details.Country = customer.Address.Country
	}

	name := customer.Name

	switch {
	case taxCode != "":
		// Stripe uses the name field for company names too.
		details.Kind = Company
		details.CompanyName = name
		details.TaxCode = taxCode
		details.BusinessKind = "other_business"
		slog.Debug("Identified as company", "tax_code", taxCode, "name", name)

	case name != "":
		parts := strings.SplitN(name, " ", 2)
		if len(parts) == 2 && !strings.Contains(parts[1], " ") {
			details.Kind = PrivatePerson
			details.FirstName = parts[0]
			details.LastName = parts[1]
			details.BusinessKind = "private_person"
			slog.Debug("Identified as private person", "name", name)
		} else {
			details.Kind = Company
			details.CompanyName = name
			details.BusinessKind = "other_business"
			slog.Warn("No tax ID and name does not split into two parts, treating as company name",
				"name", name,
			)
		}

	default:
		slog.Error("Cannot determine client type: no name or tax ID",
			"customer_id", customer.ID,
		)
	}

	return details
}

// DisplayName returns the name to show an operator for these client details.
func (d ClientDetails) DisplayName() string {
	if d.CompanyName != "" {
		return d.CompanyName
	}
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// Package converter provides conversion from Stripe invoices to inFakt payloads.
package converter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExemptSymbol is the inFakt tax symbol for VAT-exempt services. It is the
// only mapping built into the tool: a line item without tax rate information
// is treated as exempt.
const ExemptSymbol = "zw"

// VatRateMapping represents a single percentage-to-symbol mapping entry.
type VatRateMapping struct {
	Percentage  float64 `yaml:"percentage"`
	Symbol      string  `yaml:"symbol"`
	Description string  `yaml:"description,omitempty"`
}

// VatRatesConfig represents the VAT rates mapping configuration file.
type VatRatesConfig struct {
	VatRates []VatRateMapping `yaml:"vat_rates"`
}

// VatMapper maps Stripe tax rate percentages to inFakt tax symbols.
//
// Which symbols apply to which concrete percentages depends on the inFakt
// account's tax-code table (see /api/v3/vat_rates.json), so concrete rates
// resolve only through an operator-supplied mapping file. Percentages without
// an entry map to nothing and the caller decides how to handle that.
type VatMapper struct {
	symbols map[float64]string
}

// NewVatMapper creates a VatMapper with no configured percentage mappings.
func NewVatMapper() *VatMapper {
	return &VatMapper{
		symbols: make(map[float64]string),
	}
}

// LoadVatMapper creates a VatMapper from a YAML configuration file.
func LoadVatMapper(configPath string) (*VatMapper, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read VAT rates file: %w", err)
	}

	var config VatRatesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse VAT rates YAML: %w", err)
	}

	mapper := NewVatMapper()
	for _, mapping := range config.VatRates {
		mapper.symbols[mapping.Percentage] = mapping.Symbol
	}

	return mapper, nil
}

// Symbol returns the inFakt tax symbol for a Stripe tax rate percentage.
// A nil percentage means no tax rate was attached and maps to the exempt
// symbol. Returns nil when the percentage has no configured mapping.
func (m *VatMapper) Symbol(percentage *float64) *string {
	if percentage == nil {
		symbol := ExemptSymbol
		return &symbol
	}
	if symbol, ok := m.symbols[*percentage]; ok {
		return &symbol
	}
	return nil
}

// Rates returns the configured percentage mappings.
func (m *VatMapper) Rates() []VatRateMapping {
	rates := make([]VatRateMapping, 0, len(m.symbols))
	for percentage, symbol := range m.symbols {
		rates = append(rates, VatRateMapping{Percentage: percentage, Symbol: symbol})
	}
	return rates
}

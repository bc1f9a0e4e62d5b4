// Package domain provides domain models used across the application.
package domain

import (
	"encoding/json"
	"strings"
)

// FlexValue is a wire-level value that collectors emit either as a JSON
// string ("$19.99") or as a JSON number (19.99). It preserves the raw
// textual form; numeric coercion happens in the sanitizer.
type FlexValue string

// UnmarshalJSON accepts strings, numbers, and null.
func (f *FlexValue) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		*f = FlexValue(unquoted)
		return nil
	}
	*f = FlexValue(s)
	return nil
}

// MarshalJSON emits the raw textual form as a string.
func (f FlexValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// String returns the raw textual form.
func (f FlexValue) String() string {
	return string(f)
}

// CandidateRecord is an untrusted listing as produced by a source collector.
// Every field is optional and potentially malformed; records only become
// CatalogEntry values after sanitation and validation.
type CandidateRecord struct {
	// Title is the listing title, possibly polluted with leaked markup.
	Title string `json:"title" mapstructure:"title"`
	// Brand is the product brand as reported by the collector.
	Brand string `json:"brand,omitempty" mapstructure:"brand"`
	// Model is the product model name.
	Model string `json:"model,omitempty" mapstructure:"model"`
	// SalePrice is the discounted price (string or number on the wire).
	SalePrice FlexValue `json:"salePrice" mapstructure:"salePrice"`
	// Price is the reference (original) price (string or number on the wire).
	Price FlexValue `json:"price" mapstructure:"price"`
	// Store is the retailer name.
	Store string `json:"store" mapstructure:"store"`
	// URL is the listing URL, possibly relative or protocol-relative.
	URL string `json:"url" mapstructure:"url"`
	// Image is the product image URL.
	Image string `json:"image,omitempty" mapstructure:"image"`
	// Gender is the target demographic (men/women/kids), free text.
	Gender string `json:"gender,omitempty" mapstructure:"gender"`
	// ShoeType is the footwear category, free text.
	ShoeType string `json:"shoeType,omitempty" mapstructure:"shoeType"`
}

// CatalogEntry is a validated, normalized deal. Invariants are enforced by
// the validity filter: SalePrice within the configured band, Price strictly
// greater than SalePrice, discount within the configured band, URL absolute
// and non-empty, Title non-empty and markup-free.
type CatalogEntry struct {
	Title     string  `json:"title"`
	Brand     string  `json:"brand"`
	Model     string  `json:"model,omitempty"`
	SalePrice float64 `json:"salePrice"`
	Price     float64 `json:"price"`
	Store     string  `json:"store"`
	URL       string  `json:"url"`
	Image     string  `json:"image,omitempty"`
	Gender    string  `json:"gender,omitempty"`
	ShoeType  string  `json:"shoeType,omitempty"`
}

// DiscountPercent returns the discount as a percentage of the reference
// price, or 0 when no valid reference price is present.
func (e *CatalogEntry) DiscountPercent() float64 {
	if e.Price <= 0 || e.SalePrice >= e.Price {
		return 0
	}
	return (e.Price - e.SalePrice) / e.Price * 100
}

// Savings returns the absolute amount saved against the reference price.
func (e *CatalogEntry) Savings() float64 {
	if e.Price <= e.SalePrice {
		return 0
	}
	return e.Price - e.SalePrice
}

// HasImage reports whether the entry carries a usable image URL.
func (e *CatalogEntry) HasImage() bool {
	return strings.TrimSpace(e.Image) != ""
}

// UnknownBrand is the placeholder brand assigned when a collector could not
// determine one.
const UnknownBrand = "Unknown"

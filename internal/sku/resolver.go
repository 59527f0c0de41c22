package sku

import "strings"

// Mapping links an external store SKU prefix to a canonical product.
type Mapping struct {
	Prefix  string
	Model   string
	Variant string
}

// Match is the canonical product a SKU resolved to.
type Match struct {
	Model   string
	Variant string
}

// Resolver maps externally-supplied SKU strings to canonical products by
// case-insensitive prefix match. The table is fixed at construction; when two
// prefixes could match the same SKU, the one declared first wins, so a longer
// prefix must be listed before any shorter prefix that subsumes it.
type Resolver struct {
	mappings []Mapping
}

// NewResolver creates a Resolver over the given mappings. Declaration order
// is the match priority.
func NewResolver(mappings []Mapping) *Resolver {
	return &Resolver{mappings: mappings}
}

// DefaultMappings returns the SKU table for the current product line.
func DefaultMappings() []Mapping {
	return []Mapping{
		{Prefix: "fire24", Model: "Fire", Variant: "24pin"},
		{Prefix: "fire28", Model: "Fire", Variant: "28pin"},
		{Prefix: "ice24", Model: "Ice", Variant: "24pin"},
		{Prefix: "ice28", Model: "Ice", Variant: "28pin"},
	}
}

// Resolve returns the canonical product for a SKU, or ok=false when no
// configured prefix matches. An unknown SKU is not an error.
func (r *Resolver) Resolve(code string) (Match, bool) {
	if code == "" {
		return Match{}, false
	}
	upper := strings.ToUpper(code)
	for _, m := range r.mappings {
		if strings.HasPrefix(upper, strings.ToUpper(m.Prefix)) {
			return Match{Model: m.Model, Variant: m.Variant}, true
		}
	}
	return Match{}, false
}

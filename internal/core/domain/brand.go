package domain

import "strings"

// Brand is a monitored entity with a canonical name and alias strings. A
// text occurrence of the canonical name or any alias counts as a mention of
// the brand.
type Brand struct {
	Name    string   `json:"name" yaml:"name"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases"`
}

// Terms returns the canonical name plus all aliases.
func (b Brand) Terms() []string {
	terms := make([]string, 0, len(b.Aliases)+1)
	terms = append(terms, b.Name)
	terms = append(terms, b.Aliases...)
	return terms
}

// BrandRegistry holds the monitored brand followed by its competitors.
// The slice order is the canonical iteration order everywhere KPIs are
// reported, which keeps repeated runs byte-identical.
type BrandRegistry struct {
	Brands []Brand
}

// Monitored returns the subject brand, the first registry entry.
func (r BrandRegistry) Monitored() (Brand, bool) {
	if len(r.Brands) == 0 {
		return Brand{}, false
	}
	return r.Brands[0], true
}

// Lookup finds a brand by canonical name, case-insensitively.
func (r BrandRegistry) Lookup(name string) (Brand, bool) {
	for _, b := range r.Brands {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return Brand{}, false
}

package domain

import "fmt"

// ThemeCategory is the closed set of message themes a mention can receive.
// The zero value ("") means the mention has not been classified.
type ThemeCategory string

const (
	ThemeCSRESG         ThemeCategory = "CSR/ESG"
	ThemeCorporate      ThemeCategory = "Corporate"
	ThemeProductService ThemeCategory = "Product/Service"
	ThemeLegalRisk      ThemeCategory = "Legal/Risk"
	ThemeOther          ThemeCategory = "Other"
)

// ThemePriority fixes the tie-break order for theme classification. Ties on
// keyword-hit count resolve to the earlier entry. ThemeOther is the
// zero-match fallback and is never scored.
var ThemePriority = []ThemeCategory{
	ThemeCSRESG,
	ThemeCorporate,
	ThemeProductService,
	ThemeLegalRisk,
}

func (t ThemeCategory) Valid() bool {
	switch t {
	case ThemeCSRESG, ThemeCorporate, ThemeProductService, ThemeLegalRisk, ThemeOther:
		return true
	}
	return false
}

// ParseThemeCategory maps a stored label back to its typed value.
func ParseThemeCategory(label string) (ThemeCategory, error) {
	t := ThemeCategory(label)
	if !t.Valid() {
		return "", fmt.Errorf("unknown theme category: %q", label)
	}
	return t, nil
}

package webhook

import "strings"

// unknownContactName is stored when the payload carries no usable name at all.
const unknownContactName = "Unknown Contact"

// NormalizedContact is the derived display identity of the inquirer.
// DisplayName is never empty.
type NormalizedContact struct {
	DisplayName string
	FirstName   *string
	LastName    *string
}

// NormalizeContact derives a display name from a contact name sub-record
// that may be partially or fully absent. Preference order: the provider's
// display value, then first/last joined with a space, then a fixed
// placeholder. Total; never fails.
func NormalizeContact(name *ContactName) NormalizedContact {
	result := NormalizedContact{DisplayName: unknownContactName}
	if name == nil {
		return result
	}

	result.FirstName = name.First
	result.LastName = name.Last

	if name.Display != nil && strings.TrimSpace(*name.Display) != "" {
		result.DisplayName = *name.Display
		return result
	}

	parts := make([]string, 0, 2)
	for _, p := range []*string{name.First, name.Last} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	if len(parts) > 0 {
		result.DisplayName = strings.Join(parts, " ")
	}
	return result
}

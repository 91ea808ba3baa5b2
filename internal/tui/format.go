package tui

import (
	"fmt"
	"strings"

	"github.com/bft-labs/charview/internal/domain"
)

// FormatRow renders a character as a single list row.
func FormatRow(c domain.Character) string {
	return fmt.Sprintf("ID: %s  %s  Strength: %s", c.ID, c.Name, c.Ki)
}

// FormatDetail renders every known field of a character, one per line.
// Optional fields are omitted when empty.
func FormatDetail(c domain.Character) string {
	lines := []string{
		"ID: " + c.ID,
		"Name: " + c.Name,
		"Strength: " + c.Ki,
	}
	optional := []struct{ label, value string }{
		{"Max strength", c.MaxKi},
		{"Race", c.Race},
		{"Gender", c.Gender},
		{"Affiliation", c.Affiliation},
		{"Image", c.Image},
		{"Description", c.Description},
	}
	for _, f := range optional {
		if f.value != "" {
			lines = append(lines, f.label+": "+f.value)
		}
	}
	return strings.Join(lines, "\n")
}

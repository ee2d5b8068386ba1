package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// PromptForFields presents a Huh form to choose the fields queries match
// against. Options are the known record fields, preselected from current.
// Returns (selected, proceed, error); proceed is false when the user aborted.
// Selecting nothing means "match any field".
func PromptForFields(available, current []string) ([]string, bool, error) {
	if len(available) == 0 {
		return nil, false, fmt.Errorf("no fields to choose from")
	}

	selected := append([]string(nil), current...)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Restrict search to fields? (optional)").
				Description("Selected fields are matched case-insensitively; none selected matches any field").
				Options(fieldOptions(available, current)...).
				Value(&selected),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("form error: %w", err)
	}

	return selected, true, nil
}

func fieldOptions(available, current []string) []huh.Option[string] {
	chosen := make(map[string]bool, len(current))
	for _, f := range current {
		chosen[f] = true
	}

	options := make([]huh.Option[string], 0, len(available))
	for _, f := range available {
		options = append(options, huh.NewOption(f, f).Selected(chosen[f]))
	}
	return options
}

package discovery

import (
	"systest/internal/domain"
)

// Select returns the cases named in names, in suite order. Every requested name
// must exist; an unknown one is a configuration error. Empty names selects all.
func Select(cases []domain.TestCase, names []string) ([]domain.TestCase, error) {
	if len(names) == 0 {
		return cases, nil
	}

	available := make(map[string]bool, len(cases))
	for _, tc := range cases {
		available[tc.Name] = true
	}

	requested := make(map[string]bool, len(names))
	for _, name := range names {
		if !available[name] {
			return nil, domain.NewConfigError("select tests", name, "test is not defined in the suite")
		}
		requested[name] = true
	}

	var selected []domain.TestCase
	for _, tc := range cases {
		if requested[tc.Name] {
			selected = append(selected, tc)
		}
	}
	return selected, nil
}

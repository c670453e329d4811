// Package theme persists the dark/light display preference.
package theme

import (
	"fmt"

	"github.com/mesh-intelligence/stacked/pkg/types"
)

// Mode is the display mode.
type Mode string

// Display modes. Light is the default.
const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Parse maps a stored or typed value to a Mode. Only "dark" selects dark.
func Parse(v string) Mode {
	if v == string(Dark) {
		return Dark
	}
	return Light
}

// IsDark reports whether m is the dark mode.
func (m Mode) IsDark() bool { return m == Dark }

// Toggled returns the other mode.
func (m Mode) Toggled() Mode {
	if m.IsDark() {
		return Light
	}
	return Dark
}

// Load reads the mode from the store. An absent or unrecognized value is
// light.
func Load(s types.Store) (Mode, error) {
	v, ok, err := s.Get(types.DisplayModeKey)
	if err != nil {
		return Light, fmt.Errorf("reading display mode: %w", err)
	}
	if !ok {
		return Light, nil
	}
	return Parse(v), nil
}

// Save writes the mode to the store.
func Save(s types.Store, m Mode) error {
	if err := s.Set(types.DisplayModeKey, string(Parse(string(m)))); err != nil {
		return fmt.Errorf("writing display mode: %w", err)
	}
	return nil
}

// Toggle flips the stored mode and returns the new one.
func Toggle(s types.Store) (Mode, error) {
	m, err := Load(s)
	if err != nil {
		return m, err
	}
	m = m.Toggled()
	if err := Save(s, m); err != nil {
		return m, err
	}
	return m, nil
}

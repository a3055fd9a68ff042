// Package config provides file-backed configuration for recall. Settings are
// grouped into registered sections, persisted together in a single YAML file,
// and exposed through a process-global manager initialized at startup.
package config

// Section is a named group of related settings. Sections own their defaults,
// their (de)serialization to the store's generic map form, and their
// validation.
type Section interface {
	// ID returns the section identifier used as the store key.
	ID() string

	// Title returns a human-readable section title.
	Title() string

	// Description returns a human-readable section description.
	Description() string

	// Data returns the current configuration data.
	Data() map[string]interface{}

	// SetData updates the configuration from the provided data.
	SetData(data map[string]interface{}) error

	// Validate validates the current configuration.
	Validate() error

	// Reset resets the section to default configuration.
	Reset()
}

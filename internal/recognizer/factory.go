package recognizer

import (
	"fmt"

	"snaptex/internal/config"
	"snaptex/internal/port"
)

// ProviderFactory is a function that creates a Recognizer from a provider config.
type ProviderFactory func(cfg *config.RecognizerConfig) (port.Recognizer, error)

// registry of recognizer provider factories, populated explicitly via
// RegisterProvider at startup.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a recognizer provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// New creates a Recognizer from a provider config using the registered factory.
func New(cfg *config.RecognizerConfig) (port.Recognizer, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown recognizer provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

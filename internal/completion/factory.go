package completion

import (
	"fmt"
	"sort"

	"gretutor/internal/config"
	"gretutor/internal/domain"
	"gretutor/internal/port"
)

// ProviderFactory is a function that creates a CompletionClient from the completion config.
type ProviderFactory func(cfg *config.CompletionConfig) (port.CompletionClient, error)

// registry of completion provider factories, populated explicitly via
// RegisterProvider at process start.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a completion provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewClient creates a CompletionClient from the config using the registered factory.
func NewClient(cfg *config.CompletionConfig) (port.CompletionClient, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", domain.ErrUnknownProvider, cfg.Provider, registered())
	}
	return factory(cfg)
}

func registered() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

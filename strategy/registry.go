package strategy

import (
	"fmt"
	"sort"

	"github.com/sartorproj/goforecast/timeseries"
)

// Factory builds a strategy over a series.
type Factory func(series *timeseries.Series, opts ...Option) (Strategy, error)

// registry is written during package init only.
var registry = make(map[string]Factory)

// Register adds a strategy factory under name, replacing any previous one.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	if f, ok := registry[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
}

// Names returns the registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewByName builds the strategy registered under name.
func NewByName(name string, series *timeseries.Series, opts ...Option) (Strategy, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return f(series, opts...)
}

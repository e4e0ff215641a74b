// Package plugins registers the pluggable backends the service assembles
// from configuration.
package plugins

import (
	"fmt"

	"github.com/vanditkanudia/gridgap/config"
	"github.com/vanditkanudia/gridgap/core/results"
)

// StoreFactory builds a result-record store from the results section.
type StoreFactory func(cfg config.ResultsConfig) (results.Store, error)

var stores = map[string]StoreFactory{}

// RegisterStore adds a store factory for the given backend name.
func RegisterStore(name string, f StoreFactory) { stores[name] = f }

// NewStore builds the store selected by cfg.Backend.
func NewStore(cfg config.ResultsConfig) (results.Store, error) {
	f, ok := stores[cfg.Backend]
	if !ok {
		return nil, fmt.Errorf("unknown results backend %q", cfg.Backend)
	}
	return f(cfg)
}

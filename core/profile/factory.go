package profile

import "github.com/vanditkanudia/gridgap/core/factory"

var sourceRegistry = factory.NewRegistry[Source]()

// RegisterSource adds a profile source factory identified by name.
func RegisterSource(name string, f factory.Factory[Source]) error {
	return sourceRegistry.Register(name, f)
}

// SourceTypes returns the registered source type names, sorted.
func SourceTypes() []string { return sourceRegistry.Types() }

// NewSource creates a Source from the provided configuration.
func NewSource(cfg factory.ModuleConfig) (Source, error) {
	return sourceRegistry.Create(cfg)
}

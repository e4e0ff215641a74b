// Package factory provides a small generic registry used to instantiate modules
// from configuration. Modules are defined by a type string and a map of raw
// settings. Factories decode the settings into typed structs and return the
// concrete implementation. Profile sources, result stores, and metrics sinks
// are all built through it.
//
// Example usage:
//
//	reg := factory.NewRegistry[profile.Source]()
//	reg.Register("csv", func(conf map[string]any) (profile.Source, error) {
//	    var c struct{ Dir string `json:"dir"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return csvsource.New(c.Dir), nil
//	})
//	src, err := reg.Create(factory.ModuleConfig{Type: "csv", Conf: map[string]any{"dir": "profiles"}})
package factory

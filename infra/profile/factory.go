package profile

import (
	"fmt"

	"github.com/vanditkanudia/gridgap/core/factory"
	coreprofile "github.com/vanditkanudia/gridgap/core/profile"
)

// init registers built-in profile sources.
func init() {
	_ = coreprofile.RegisterSource("csv", func(conf map[string]any) (coreprofile.Source, error) {
		var c struct {
			Dir string `json:"dir"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Dir == "" {
			return nil, fmt.Errorf("csv profile source requires dir")
		}
		return NewCSVSource(c.Dir), nil
	})

	_ = coreprofile.RegisterSource("http", func(conf map[string]any) (coreprofile.Source, error) {
		var c struct {
			URL   string `json:"url"`
			Token string `json:"token"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.URL == "" {
			return nil, fmt.Errorf("http profile source requires url")
		}
		var opts []HTTPOption
		if c.Token != "" {
			opts = append(opts, WithBearerToken(c.Token))
		}
		return NewHTTPSource(c.URL, opts...), nil
	})

	_ = coreprofile.RegisterSource("synthetic", func(conf map[string]any) (coreprofile.Source, error) {
		var c SyntheticConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewSyntheticSource(c), nil
	})
}

package plugins

import (
	"github.com/vanditkanudia/gridgap/config"
	"github.com/vanditkanudia/gridgap/core/results"
)

func init() {
	RegisterStore("jsonl", func(cfg config.ResultsConfig) (results.Store, error) {
		if cfg.MaxSizeMB > 0 {
			return results.NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
		}
		return results.NewJSONLStore(cfg.Path)
	})
	RegisterStore("sqlite", func(cfg config.ResultsConfig) (results.Store, error) {
		return results.NewSQLiteStore(cfg.Path)
	})
}

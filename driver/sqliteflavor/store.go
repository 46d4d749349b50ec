package sqliteflavor

import (
	"github.com/goforj/flavors/driver/sqlcore"
	"github.com/goforj/flavors/flavorcore"
	_ "modernc.org/sqlite"
)

// Config configures a sqlite-backed registry store.
type Config struct {
	flavorcore.BaseConfig
	DSN   string
	Table string
}

// New builds a sqlite-backed flavorcore.Store.
func New(cfg Config) (flavorcore.Store, error) {
	return sqlcore.New(sqlcore.Config{
		BaseConfig: flavorcore.BaseConfig{
			Prefix: cfg.Prefix,
		},
		DriverName: "sqlite",
		DSN:        cfg.DSN,
		Table:      cfg.Table,
	})
}

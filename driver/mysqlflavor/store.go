package mysqlflavor

import (
	_ "github.com/go-sql-driver/mysql"
	"github.com/goforj/flavors/driver/sqlcore"
	"github.com/goforj/flavors/flavorcore"
)

// Config configures a mysql-backed registry store.
type Config struct {
	flavorcore.BaseConfig
	DSN   string
	Table string
}

// New builds a mysql-backed flavorcore.Store.
func New(cfg Config) (flavorcore.Store, error) {
	return sqlcore.New(sqlcore.Config{
		BaseConfig: flavorcore.BaseConfig{
			Prefix: cfg.Prefix,
		},
		DriverName: "mysql",
		DSN:        cfg.DSN,
		Table:      cfg.Table,
	})
}

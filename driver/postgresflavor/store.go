package postgresflavor

import (
	"github.com/goforj/flavors/driver/sqlcore"
	"github.com/goforj/flavors/flavorcore"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Config configures a postgres-backed registry store.
type Config struct {
	flavorcore.BaseConfig
	DSN   string
	Table string
}

// New builds a postgres-backed flavorcore.Store using the pgx stdlib driver.
func New(cfg Config) (flavorcore.Store, error) {
	return sqlcore.New(sqlcore.Config{
		BaseConfig: flavorcore.BaseConfig{
			Prefix: cfg.Prefix,
		},
		DriverName: "pgx",
		DSN:        cfg.DSN,
		Table:      cfg.Table,
	})
}

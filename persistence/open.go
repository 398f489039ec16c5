package persistence

import (
	"fmt"

	"github.com/wfunc/whist/config"
)

// Open connects the database selected by cfg.Driver.
func Open(cfg config.DatabaseConfig) (Database, error) {
	pg := cfg.Postgres
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemory(), nil
	case config.DriverGorm:
		return NewGormPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	case config.DriverSQL:
		return NewPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

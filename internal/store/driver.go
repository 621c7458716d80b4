package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Canonical driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

var driverAliases = map[string]string{
	"sqlite":     DriverSQLite,
	"sqlite3":    DriverSQLite,
	"postgres":   DriverPostgres,
	"postgresql": DriverPostgres,
	"pgx":        DriverPostgres,
}

// openDialector resolves a configured driver name to its canonical name and
// a gorm dialector for dsn.
func openDialector(driver, dsn string) (string, gorm.Dialector, error) {
	name, ok := driverAliases[strings.ToLower(strings.TrimSpace(driver))]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}

	switch name {
	case DriverPostgres:
		return name, postgres.Open(dsn), nil
	default:
		return name, sqlite.Open(dsn), nil
	}
}

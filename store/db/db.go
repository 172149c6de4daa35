// Package db provides the database driver factory.
package db

import (
	"github.com/pkg/errors"

	"github.com/notetutor/notetutor/internal/profile"
	"github.com/notetutor/notetutor/store"
	"github.com/notetutor/notetutor/store/db/mysql"
	"github.com/notetutor/notetutor/store/db/postgres"
	"github.com/notetutor/notetutor/store/db/sqlite"
)

// NewDBDriver creates a store driver based on the profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	switch profile.Driver {
	case "sqlite":
		return sqlite.NewDB(profile)
	case "mysql":
		return mysql.NewDB(profile)
	case "postgres":
		return postgres.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver %q", profile.Driver)
	}
}

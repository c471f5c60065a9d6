package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// noVersion is what migrate.Force takes to mean "nothing applied".
const noVersion = -1

// RunMigrations brings the itineraries schema up to date from the migrations
// embedded in the binary. It runs on every start. A dirty version left by a
// crashed run is rolled back one step and applied again.
func RunMigrations(dbURL string) error {
	log := logger.GetLogger().Named("migrations")

	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, convertToPgx5URL(dbURL))
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer m.Close()

	if err := recoverDirty(m, log); err != nil {
		return err
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Info("Schema already current")
		return nil
	case err != nil:
		return fmt.Errorf("apply migrations: %w", err)
	}

	if v, _, err := m.Version(); err == nil {
		log.Infow("Schema migrated", "version", v)
	}
	return nil
}

func recoverDirty(m *migrate.Migrate, log *zap.SugaredLogger) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info("Fresh database, applying every migration")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if !dirty {
		log.Infow("Schema version", "version", version)
		return nil
	}

	target := int(version) - 1
	if target < 1 {
		target = noVersion
	}
	log.Warnw("Schema left dirty by an earlier run, forcing previous version", "dirtyVersion", version, "forcedTo", target)
	if err := m.Force(target); err != nil {
		return fmt.Errorf("force schema version %d: %w", target, err)
	}
	return nil
}

// convertToPgx5URL switches postgres:// and postgresql:// URLs to the pgx5://
// scheme registered by the pgx v5 migrate driver.
func convertToPgx5URL(dbURL string) string {
	scheme, rest, ok := strings.Cut(dbURL, "://")
	if !ok || (scheme != "postgres" && scheme != "postgresql") {
		return dbURL
	}
	return "pgx5://" + rest
}

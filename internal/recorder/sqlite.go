package recorder

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteRecorder mirrors every fetched sample into a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	log logrus.FieldLogger
}

// NewSQLiteRecorder opens (or creates) the database and applies migrations.
func NewSQLiteRecorder(dbPath string, log logrus.FieldLogger) (*SQLiteRecorder, error) {
	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// WAL lets dashboards read while a run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	log.WithField("path", dbPath).Info("sqlite recorder opened")
	return &SQLiteRecorder{db: db, log: log}, nil
}

// runMigrations uses its own connection; closing the migrate instance closes it.
func runMigrations(dbPath string) error {
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		migrateDB.Close()
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		migrateDB.Close()
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		migrateDB.Close()
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) RecordSample(s *Sample) error {
	_, err := r.db.Exec(`INSERT INTO samples
		(fetched_at, period, lt_balance, ac_balance, stored, warning)
		VALUES (?,?,?,?,?,?)`,
		s.FetchedAt.Unix(), s.Period, s.Lighting, s.AirConditioning,
		boolToInt(s.Stored), boolToInt(s.Warning),
	)
	return err
}

// CountSamples returns the number of samples recorded for period.
func (r *SQLiteRecorder) CountSamples(period string) (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM samples WHERE period = ?`, period).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

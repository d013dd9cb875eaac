package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"cityroute/internal/database"

	_ "modernc.org/sqlite"
)

const (
	DefaultDBFileName = "cityroute.db"
	schemaVersion     = 1
)

// Store is a SQLite-based store implementing database.Store. Itineraries and
// day plans are kept as JSON documents keyed by id; id sequences live in
// their own table so they survive restarts.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex

	itineraryRepo database.ItineraryRepository
	dayRepo       database.DayRepository
}

// New creates a new SQLite store at the specified path
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	log.Printf("[SQLITE] opening database at: %s", dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	store := &Store{db: db, dbPath: dbPath}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	store.itineraryRepo = &itineraryRepository{store: store}
	store.dayRepo = &dayRepository{store: store}

	return store, nil
}

// GetDBPath returns the current database file path
func (s *Store) GetDBPath() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist, create everything
		return s.createSchema()
	}
	if version < schemaVersion {
		return s.runMigrations(version)
	}
	return nil
}

func (s *Store) createSchema() error {
	schema := `
	-- Schema version tracking
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);
	INSERT INTO schema_version (version) VALUES (1);

	-- Itineraries, stored as JSON documents
	CREATE TABLE IF NOT EXISTS itineraries (
		id TEXT PRIMARY KEY,
		doc TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Day plans, stored as JSON documents
	CREATE TABLE IF NOT EXISTS days (
		id TEXT PRIMARY KEY,
		doc TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Id sequences, global across itineraries
	CREATE TABLE IF NOT EXISTS sequences (
		name TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	);
	INSERT OR IGNORE INTO sequences (name, value) VALUES ('itinerary', 0);
	INSERT OR IGNORE INTO sequences (name, value) VALUES ('day', 0);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	log.Printf("[SQLITE] schema initialized (version %d)", schemaVersion)
	return nil
}

func (s *Store) runMigrations(fromVersion int) error {
	// Add migrations here as schema evolves
	_, err := s.db.Exec("UPDATE schema_version SET version = ?", schemaVersion)
	return err
}

// nextSeq bumps the named sequence and returns its new value
func (s *Store) nextSeq(ctx context.Context, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx,
		"UPDATE sequences SET value = value + 1 WHERE name = ?", name); err != nil {
		return 0, fmt.Errorf("failed to bump sequence %s: %w", name, err)
	}

	var value int
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM sequences WHERE name = ?", name).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence %s: %w", name, err)
	}
	return value, nil
}

// NextItineraryID returns the next "it-###" id
func (s *Store) NextItineraryID(ctx context.Context) (string, error) {
	n, err := s.nextSeq(ctx, "itinerary")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("it-%03d", n), nil
}

// NextDayID returns the next "day<N>" id, numbered globally
func (s *Store) NextDayID(ctx context.Context) (string, error) {
	n, err := s.nextSeq(ctx, "day")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("day%d", n), nil
}

// Close checkpoints the WAL and closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
		return s.db.Close()
	}
	return nil
}

// HealthCheck verifies the database connection
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Repository accessors
func (s *Store) Itineraries() database.ItineraryRepository { return s.itineraryRepo }
func (s *Store) Days() database.DayRepository              { return s.dayRepo }

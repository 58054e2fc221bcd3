// Package store implements a SQLite-backed trajectory archive: an append/
// read store of codec-encoded trajectories, indexed by UUID and object ID.
// It is not a transactional store with crash-recovery semantics (spec.md
// Non-goals carry over unchanged) — just a durable place to park and
// retrieve trajectories. Schema management follows
// internal/db/migrate.go's golang-migrate + embedded-iofs pattern, and
// connection setup follows internal/db/db.go's PRAGMA tuning.
package store

import (
	"bytes"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/sandialabs/tracktable-go/internal/tracktable/codec"
	"github.com/sandialabs/tracktable-go/internal/tracktable/trajectory"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned by GetTrajectory when no row matches the
// requested UUID.
var ErrNotFound = errors.New("store: trajectory not found")

// Store is a durable trajectory archive backed by a SQLite file. Writes
// are serialized with a single mutex, matching the "exclusively owned by
// one logical holder at a time" resource rule (spec.md §5) the way the
// teacher's Tracker.mu serializes writes to shared tracking state
// (internal/lidar/stats.go).
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA temp_store = MEMORY",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("store: apply pragma %q: %w", p, err)
		}
	}
	return nil
}

// Open opens or creates a SQLite database at path and brings its schema up
// to the latest migration.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	s := &Store{db: db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrateUp() error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("store: migration source: %w", err)
	}
	dbDriver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("store: migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("store: migration instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("store: migrate up: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutTrajectory codec-encodes t and stores it, keyed by its UUID, with
// object_id/trajectory_id/start_ns/end_ns/point_count as derived columns
// (object_id is indexed). A trajectory with the same UUID already present
// is replaced.
func (s *Store) PutTrajectory(t *trajectory.Trajectory) error {
	var buf bytes.Buffer
	if err := codec.EncodeTrajectory(&buf, t); err != nil {
		return fmt.Errorf("store: encode trajectory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO trajectories (uuid, domain, object_id, trajectory_id, start_ns, end_ns, point_count, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uuid) DO UPDATE SET
			domain = excluded.domain,
			object_id = excluded.object_id,
			trajectory_id = excluded.trajectory_id,
			start_ns = excluded.start_ns,
			end_ns = excluded.end_ns,
			point_count = excluded.point_count,
			payload = excluded.payload
	`,
		t.UUID().String(), t.Domain().Name(), t.ObjectID(), t.TrajectoryID(),
		t.StartTime().UnixNano(), t.EndTime().UnixNano(), t.Len(), buf.Bytes(),
	)
	if err != nil {
		return fmt.Errorf("store: insert trajectory: %w", err)
	}
	return nil
}

// GetTrajectory decodes and returns the trajectory stored under uuid, or
// ErrNotFound if no such row exists.
func (s *Store) GetTrajectory(uuid string) (*trajectory.Trajectory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM trajectories WHERE uuid = ?`, uuid).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: query trajectory: %w", err)
	}

	t, err := codec.DecodeTrajectory(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("store: decode trajectory: %w", err)
	}
	return t, nil
}

// ListByObjectID returns the UUIDs of every trajectory stored under the
// given object ID, ordered by start time.
func (s *Store) ListByObjectID(objectID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT uuid FROM trajectories WHERE object_id = ? ORDER BY start_ns ASC
	`, objectID)
	if err != nil {
		return nil, fmt.Errorf("store: query by object id: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scan uuid: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

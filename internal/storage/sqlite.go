package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/fediasonin/geomerge/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

// SQLiteStore implements Store with a SQLite backend
type SQLiteStore struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the journal database under dataDir.
func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "journal.db")

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to journal database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ss := &SQLiteStore{
		db:   db,
		path: dbPath,
	}

	if err := ss.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing journal schema: %w", err)
	}

	return ss, nil
}

// initSchema creates the database schema
func (ss *SQLiteStore) initSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}

	_, err = ss.db.Exec(string(schema))
	return err
}

// Close closes the database connection
func (ss *SQLiteStore) Close() error {
	return ss.db.Close()
}

// RecordSnapshot inserts a journal entry. A missing ID or CreatedAt is
// filled in.
func (ss *SQLiteStore) RecordSnapshot(snapshot *model.Snapshot) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now()
	}

	_, err := ss.db.Exec(`
		INSERT INTO snapshots (id, created_at, stamp, locations_path, blocks_path, output_path, rows, unresolved, digest)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, snapshot.ID, snapshot.CreatedAt, snapshot.Stamp, snapshot.LocationsPath, snapshot.BlocksPath,
		snapshot.OutputPath, snapshot.Rows, snapshot.Unresolved, snapshot.Digest)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}

	return nil
}

// GetSnapshot retrieves a journal entry by ID
func (ss *SQLiteStore) GetSnapshot(id string) (*model.Snapshot, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	row := ss.db.QueryRow(`
		SELECT id, created_at, stamp, locations_path, blocks_path, output_path, rows, unresolved, digest
		FROM snapshots
		WHERE id = ?
		LIMIT 1
	`, id)

	var snapshot model.Snapshot
	err := row.Scan(&snapshot.ID, &snapshot.CreatedAt, &snapshot.Stamp, &snapshot.LocationsPath,
		&snapshot.BlocksPath, &snapshot.OutputPath, &snapshot.Rows, &snapshot.Unresolved, &snapshot.Digest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}

	return &snapshot, nil
}

// ListSnapshots returns journal entries, newest first. A non-positive
// limit returns everything.
func (ss *SQLiteStore) ListSnapshots(limit int) ([]model.Snapshot, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	if limit <= 0 {
		limit = -1 // SQLite: negative LIMIT means no limit
	}

	rows, err := ss.db.Query(`
		SELECT id, created_at, stamp, locations_path, blocks_path, output_path, rows, unresolved, digest
		FROM snapshots
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []model.Snapshot
	for rows.Next() {
		var snapshot model.Snapshot
		if err := rows.Scan(&snapshot.ID, &snapshot.CreatedAt, &snapshot.Stamp, &snapshot.LocationsPath,
			&snapshot.BlocksPath, &snapshot.OutputPath, &snapshot.Rows, &snapshot.Unresolved, &snapshot.Digest); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}

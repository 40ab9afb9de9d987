/*
Package sqlite provides the durable snapshot store.

PURPOSE:
  Implements station.Persister on a single SQLite file. The persisted
  layout matches the engine's contract exactly: one row per collection,
  holding the whole collection as a JSON document, loaded wholesale at
  startup and overwritten wholesale on every change.

SCHEMA:
  collections(name PRIMARY KEY, schema_version, data, updated_at)

  schema_version is station.SchemaVersion (currently 1). Loading a row
  with a higher version fails: that data was written by a newer build.

WAL MODE:
  The database opens with WAL for better crash recovery. Writes are
  serialized with a mutex; the engine is effectively single-writer anyway.

SEE ALSO:
  - station/snapshot.go: the Persister contract and collection set
  - station/store/memory.go: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/petroops/station-engine/station"
)

// Store implements station.Persister on SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		name           TEXT PRIMARY KEY,
		schema_version INTEGER NOT NULL,
		data           TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PERSISTER IMPLEMENTATION
// =============================================================================

// SaveCollections overwrites the durable record of each touched collection
// inside one transaction.
func (s *Store) SaveCollections(ctx context.Context, snap station.Snapshot, touched []station.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range touched {
		payload, err := json.Marshal(collectionPayload(&snap, c))
		if err != nil {
			return fmt.Errorf("marshal %s: %w", c, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO collections (name, schema_version, data, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				schema_version = excluded.schema_version,
				data           = excluded.data,
				updated_at     = excluded.updated_at`,
			string(c), station.SchemaVersion, string(payload), now)
		if err != nil {
			return fmt.Errorf("save %s: %w", c, err)
		}
	}

	return tx.Commit()
}

// LoadSnapshot restores every persisted collection. Collections that were
// never saved come back as their zero values.
func (s *Store) LoadSnapshot(ctx context.Context) (station.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snap station.Snapshot

	rows, err := s.db.QueryContext(ctx, `SELECT name, schema_version, data FROM collections`)
	if err != nil {
		return snap, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var version int
		var data string
		if err := rows.Scan(&name, &version, &data); err != nil {
			return snap, err
		}
		if version > station.SchemaVersion {
			return snap, fmt.Errorf("collection %s has schema version %d, this build understands up to %d",
				name, version, station.SchemaVersion)
		}
		dst := collectionPayload(&snap, station.Collection(name))
		if dst == nil {
			// Unknown collection from an older build; ignored.
			continue
		}
		if err := json.Unmarshal([]byte(data), dst); err != nil {
			return snap, fmt.Errorf("unmarshal %s: %w", name, err)
		}
	}
	return snap, rows.Err()
}

// Reset drops all persisted collections. Dev/test only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `DELETE FROM collections`)
	return err
}

// collectionPayload returns a pointer into snap for the named collection,
// usable for both marshal (save) and unmarshal (load).
func collectionPayload(snap *station.Snapshot, c station.Collection) any {
	switch c {
	case station.CollectionUsers:
		return &snap.Users
	case station.CollectionStaff:
		return &snap.Staff
	case station.CollectionFuels:
		return &snap.Fuels
	case station.CollectionPumps:
		return &snap.Pumps
	case station.CollectionShifts:
		return &snap.Shifts
	case station.CollectionExpenses:
		return &snap.Expenses
	case station.CollectionSuppliers:
		return &snap.Suppliers
	case station.CollectionSupplies:
		return &snap.Supplies
	case station.CollectionDocuments:
		return &snap.Documents
	case station.CollectionDocumentTypes:
		return &snap.DocumentTypes
	case station.CollectionSettings:
		return &snap.Settings
	case station.CollectionAuditLog:
		return &snap.AuditLog
	case station.CollectionBackups:
		return &snap.Backups
	default:
		return nil
	}
}

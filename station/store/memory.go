// Package store provides Persister implementations.
package store

import (
	"context"
	"sync"

	"github.com/petroops/station-engine/station"
)

// =============================================================================
// MEMORY PERSISTER - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps the "durable" snapshot in process. It honors the same
// contract as the SQLite store: only the touched collections are
// overwritten on save.
type Memory struct {
	mu    sync.RWMutex
	snap  station.Snapshot
	saves map[station.Collection]int

	// FailWith, when set, makes every save return this error. Lets tests
	// exercise the best-effort persistence contract.
	FailWith error
}

func NewMemory() *Memory {
	return &Memory{saves: make(map[station.Collection]int)}
}

// NewMemoryWith starts from an existing snapshot, as if a previous session
// had persisted it.
func NewMemoryWith(snap station.Snapshot) *Memory {
	m := NewMemory()
	m.snap = snap
	return m
}

func (m *Memory) LoadSnapshot(_ context.Context) (station.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap, nil
}

func (m *Memory) SaveCollections(_ context.Context, snap station.Snapshot, touched []station.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}

	for _, c := range touched {
		m.saves[c]++
		switch c {
		case station.CollectionUsers:
			m.snap.Users = snap.Users
		case station.CollectionStaff:
			m.snap.Staff = snap.Staff
		case station.CollectionFuels:
			m.snap.Fuels = snap.Fuels
		case station.CollectionPumps:
			m.snap.Pumps = snap.Pumps
		case station.CollectionShifts:
			m.snap.Shifts = snap.Shifts
		case station.CollectionExpenses:
			m.snap.Expenses = snap.Expenses
		case station.CollectionSuppliers:
			m.snap.Suppliers = snap.Suppliers
		case station.CollectionSupplies:
			m.snap.Supplies = snap.Supplies
		case station.CollectionDocuments:
			m.snap.Documents = snap.Documents
		case station.CollectionDocumentTypes:
			m.snap.DocumentTypes = snap.DocumentTypes
		case station.CollectionSettings:
			m.snap.Settings = snap.Settings
		case station.CollectionAuditLog:
			m.snap.AuditLog = snap.AuditLog
		case station.CollectionBackups:
			m.snap.Backups = snap.Backups
		}
	}
	return nil
}

// SaveCount reports how many times a collection was saved.
func (m *Memory) SaveCount(c station.Collection) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves[c]
}

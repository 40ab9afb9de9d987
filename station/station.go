/*
station.go - The aggregate store and command surface

PURPOSE:
  Station owns every collection and exposes the command methods the UI
  collaborator calls (OpenShift, CloseShift, ReceiveSupply, ...). It is the
  single writer: commands validate first, then derive new collections and
  swap them in, then record the audit entry, then notify the persistence
  subscriber. A rejected command leaves every collection untouched.

CONCURRENCY:
  The system has exactly one active session, so there is no multi-actor
  contention by design. The mutex exists because the HTTP collaborator can
  issue overlapping requests; it serializes commands so the copy-on-write
  discipline cannot be broken mid-swap.

MUTATION DISCIPLINE:
  Never mutate a slice element in place. Build the replacement collection,
  assign it, and hand the resulting Snapshot to readers. A Snapshot handed
  out is frozen forever.

SEE ALSO:
  - shift.go, fuel.go, users.go, admin.go: the commands themselves
  - snapshot.go: the Persister contract
*/
package station

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Station is the aggregate holding all collections in memory.
type Station struct {
	mu        sync.RWMutex
	snap      Snapshot
	ids       IDSource
	clock     Clock
	log       zerolog.Logger
	persister Persister
}

// Options configures a Station. Persister is required; the rest default to
// production implementations.
type Options struct {
	Persister Persister
	IDs       IDSource
	Clock     Clock
	Logger    zerolog.Logger

	// AdminPIN seeds the first admin user on an empty store.
	AdminPIN string
}

// New restores the snapshot from the persister, seeding first-run defaults
// when the store is empty.
func New(ctx context.Context, opts Options) (*Station, error) {
	if opts.Persister == nil {
		return nil, fmt.Errorf("station: persister is required")
	}
	if opts.IDs == nil {
		opts.IDs = UUIDSource{}
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}

	snap, err := opts.Persister.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("station: load snapshot: %w", err)
	}

	s := &Station{
		snap:      snap,
		ids:       opts.IDs,
		clock:     opts.Clock,
		log:       opts.Logger,
		persister: opts.Persister,
	}

	if snap.IsEmpty() {
		s.snap = SeedSnapshot(opts.AdminPIN)
		if err := opts.Persister.SaveCollections(ctx, s.snap, AllCollections()); err != nil {
			return nil, fmt.Errorf("station: seed snapshot: %w", err)
		}
		s.log.Info().Msg("seeded first-run snapshot")
	}

	return s, nil
}

// Snapshot returns the current collection set. The returned value is frozen;
// subsequent commands will not change it.
func (s *Station) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Now exposes the engine clock, so collaborators (exports, reports) stamp
// output consistently with the audit trail.
func (s *Station) Now() time.Time { return s.clock.Now() }

// =============================================================================
// INTERNAL COMMIT PATH
// =============================================================================

// commitLocked pushes the current snapshot to the persistence subscriber.
// Saves are best-effort: a storage failure is logged, never surfaced to the
// command that triggered it.
func (s *Station) commitLocked(ctx context.Context, touched ...Collection) {
	if err := s.persister.SaveCollections(ctx, s.snap, touched); err != nil {
		s.log.Error().Err(err).
			Interface("collections", touched).
			Msg("snapshot save failed; in-memory state is ahead of storage")
	}
}

// recordLocked appends an audit entry for the mutation being committed.
// Callers must include CollectionAuditLog in their commit.
func (s *Station) recordLocked(actor Actor, action AuditAction, details string) {
	entry := AuditEntry{
		ID:        s.ids.NewID(),
		UserID:    actor.ID,
		UserName:  actor.Name,
		Action:    action,
		Details:   details,
		Timestamp: s.clock.Now(),
	}
	s.snap.AuditLog = prependCapped(s.snap.AuditLog, entry, auditLogCap)
}

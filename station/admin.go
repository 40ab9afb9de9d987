/*
admin.go - Back-office administration: roster, suppliers, compliance
documents, document taxonomy, corporate settings, backup log

These are the thin CRUD surfaces around the reconciliation core. They share
the same discipline as everything else: validate, derive a new collection,
swap, audit, notify the persister.
*/
package station

import (
	"context"
	"fmt"
)

// =============================================================================
// PERSONNEL ROSTER
// =============================================================================

// SaveStaff creates the member when its ID is empty, otherwise overwrites.
func (s *Station) SaveStaff(ctx context.Context, actor Actor, m StaffMember) (StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staff := cloneSlice(s.snap.Staff)
	if m.ID == "" {
		m.ID = s.ids.NewID()
		staff = append(staff, m)
	} else {
		idx := indexByID(staff, m.ID, func(x StaffMember) string { return x.ID })
		if idx < 0 {
			return StaffMember{}, ErrStaffNotFound
		}
		staff[idx] = m
	}
	s.snap.Staff = staff

	s.recordLocked(actor, ActionStaffManage, "Personnel records updated")
	s.commitLocked(ctx, CollectionStaff, CollectionAuditLog)
	return m, nil
}

// DeleteStaff removes a roster member. Closed shifts keep the frozen name;
// there is no cascade against history.
func (s *Station) DeleteStaff(ctx context.Context, actor Actor, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.snap.Staff, id, func(m StaffMember) string { return m.ID })
	if idx < 0 {
		return ErrStaffNotFound
	}
	staff := cloneSlice(s.snap.Staff)
	s.snap.Staff = append(staff[:idx], staff[idx+1:]...)

	s.recordLocked(actor, ActionStaffManage, "Personnel record removed")
	s.commitLocked(ctx, CollectionStaff, CollectionAuditLog)
	return nil
}

// =============================================================================
// SUPPLIERS
// =============================================================================

func (s *Station) SaveSupplier(ctx context.Context, actor Actor, sp Supplier) (Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	suppliers := cloneSlice(s.snap.Suppliers)
	if sp.ID == "" {
		sp.ID = s.ids.NewID()
		suppliers = append(suppliers, sp)
	} else {
		idx := indexByID(suppliers, sp.ID, func(x Supplier) string { return x.ID })
		if idx < 0 {
			return Supplier{}, ErrSupplierNotFound
		}
		suppliers[idx] = sp
	}
	s.snap.Suppliers = suppliers

	s.recordLocked(actor, ActionSupplierManage, "Supply partner profile updated")
	s.commitLocked(ctx, CollectionSuppliers, CollectionAuditLog)
	return sp, nil
}

func (s *Station) DeleteSupplier(ctx context.Context, actor Actor, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.snap.Suppliers, id, func(sp Supplier) string { return sp.ID })
	if idx < 0 {
		return ErrSupplierNotFound
	}
	suppliers := cloneSlice(s.snap.Suppliers)
	s.snap.Suppliers = append(suppliers[:idx], suppliers[idx+1:]...)

	s.recordLocked(actor, ActionSupplierManage, "Supply partner removed")
	s.commitLocked(ctx, CollectionSuppliers, CollectionAuditLog)
	return nil
}

// =============================================================================
// COMPLIANCE DOCUMENTS
// =============================================================================

func (s *Station) SaveDocument(ctx context.Context, actor Actor, d StationDocument) (StationDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := cloneSlice(s.snap.Documents)
	if d.ID == "" {
		d.ID = s.ids.NewID()
		docs = append(docs, d)
	} else {
		idx := indexByID(docs, d.ID, func(x StationDocument) string { return x.ID })
		if idx < 0 {
			return StationDocument{}, ErrDocumentNotFound
		}
		docs[idx] = d
	}
	s.snap.Documents = docs

	s.recordLocked(actor, ActionDocumentManage, "Station compliance document uploaded or removed")
	s.commitLocked(ctx, CollectionDocuments, CollectionAuditLog)
	return d, nil
}

func (s *Station) DeleteDocument(ctx context.Context, actor Actor, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.snap.Documents, id, func(d StationDocument) string { return d.ID })
	if idx < 0 {
		return ErrDocumentNotFound
	}
	docs := cloneSlice(s.snap.Documents)
	s.snap.Documents = append(docs[:idx], docs[idx+1:]...)

	s.recordLocked(actor, ActionDocumentManage, "Station compliance document uploaded or removed")
	s.commitLocked(ctx, CollectionDocuments, CollectionAuditLog)
	return nil
}

// SaveDocumentTypes replaces the configurable document taxonomy wholesale.
func (s *Station) SaveDocumentTypes(ctx context.Context, actor Actor, types []DocumentType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range types {
		if types[i].ID == "" {
			types[i].ID = s.ids.NewID()
		}
	}
	s.snap.DocumentTypes = cloneSlice(types)

	s.recordLocked(actor, ActionDocTypeConfig, "Document classification types changed")
	s.commitLocked(ctx, CollectionDocumentTypes, CollectionAuditLog)
	return nil
}

// ExpiringDocuments returns station documents expiring within the given
// number of days (already-expired documents included). Dashboard read.
func (s *Station) ExpiringDocuments(withinDays int) []StationDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.clock.Now()
	var out []StationDocument
	for _, d := range s.snap.Documents {
		if DaysUntil(now, d.ExpiryDate) <= withinDays {
			out = append(out, d)
		}
	}
	return out
}

// =============================================================================
// SETTINGS & BACKUP LOG
// =============================================================================

// SaveSettings overwrites the corporate identity used on exports.
func (s *Station) SaveSettings(ctx context.Context, actor Actor, cfg Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Settings = cfg

	s.recordLocked(actor, ActionCompanyConfig, "Corporate identity and tax settings modified")
	s.commitLocked(ctx, CollectionSettings, CollectionAuditLog)
	return nil
}

// RecordBackup notes that a snapshot export was taken.
func (s *Station) RecordBackup(ctx context.Context, actor Actor, fileName string) BackupEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := BackupEntry{
		ID:        s.ids.NewID(),
		Timestamp: s.clock.Now(),
		UserName:  actor.Name,
		FileName:  fileName,
	}
	s.snap.Backups = append(cloneSlice(s.snap.Backups), entry)

	s.recordLocked(actor, ActionBackup, fmt.Sprintf("Snapshot exported to %s", fileName))
	s.commitLocked(ctx, CollectionBackups, CollectionAuditLog)
	return entry
}

/*
snapshot.go - The full in-memory state and its persistence contract

PURPOSE:
  A Snapshot is the complete collection set the station operates on. The
  aggregate mutates by deriving a new collection and swapping it in; the
  persistence collaborator observes the result and durably saves it.

PERSISTENCE MODEL:
  One durable record per collection, JSON-serializable, loaded wholesale at
  startup and overwritten wholesale after every change. Persistence is a
  SUBSCRIBER to state changes, not an inline side effect: a failing save is
  logged and never fails the triggering command.

SCHEMA VERSIONING:
  Every persisted collection carries SchemaVersion. Loaders must reject
  records with a higher version than they understand.

SEE ALSO:
  - station.go:      where snapshots are swapped and subscribers notified
  - store/sqlite:    durable implementation
  - station/store:   in-memory implementation for tests
*/
package station

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SchemaVersion is the persisted collection format version.
const SchemaVersion = 1

// Collection names a persisted record. The persistence collaborator stores
// exactly one durable record per collection.
type Collection string

const (
	CollectionUsers         Collection = "users"
	CollectionStaff         Collection = "staff"
	CollectionFuels         Collection = "fuels"
	CollectionPumps         Collection = "pumps"
	CollectionShifts        Collection = "shifts"
	CollectionExpenses      Collection = "expenses"
	CollectionSuppliers     Collection = "suppliers"
	CollectionSupplies      Collection = "supplies"
	CollectionDocuments     Collection = "documents"
	CollectionDocumentTypes Collection = "document_types"
	CollectionSettings      Collection = "settings"
	CollectionAuditLog      Collection = "audit_log"
	CollectionBackups       Collection = "backups"
)

// AllCollections lists every persisted collection, in save order.
func AllCollections() []Collection {
	return []Collection{
		CollectionUsers, CollectionStaff, CollectionFuels, CollectionPumps,
		CollectionShifts, CollectionExpenses, CollectionSuppliers,
		CollectionSupplies, CollectionDocuments, CollectionDocumentTypes,
		CollectionSettings, CollectionAuditLog, CollectionBackups,
	}
}

// Snapshot is the whole collection set at one point in time. Collections are
// replaced wholesale on mutation, so holding a Snapshot is safe: it will
// never change underneath the holder.
type Snapshot struct {
	Users         []User              `json:"users"`
	Staff         []StaffMember       `json:"staff"`
	Fuels         []FuelProduct       `json:"fuels"`
	Pumps         []PumpMeter         `json:"pumps"`
	Shifts        []Shift             `json:"shifts"`
	Expenses      []Expense           `json:"expenses"`
	Suppliers     []Supplier          `json:"suppliers"`
	Supplies      []SupplyTransaction `json:"supplies"`
	Documents     []StationDocument   `json:"documents"`
	DocumentTypes []DocumentType      `json:"documentTypes"`
	Settings      Settings            `json:"settings"`
	AuditLog      []AuditEntry        `json:"auditLog"`
	Backups       []BackupEntry       `json:"backups"`
}

// Persister durably saves collections after each mutation and restores the
// full snapshot on the next load. Saves are best-effort from the engine's
// point of view: storage failure does not undo the in-memory mutation.
type Persister interface {
	// SaveCollections overwrites the durable record of each touched collection.
	SaveCollections(ctx context.Context, snap Snapshot, touched []Collection) error

	// LoadSnapshot restores the full collection set. Missing collections
	// come back as their zero values.
	LoadSnapshot(ctx context.Context) (Snapshot, error)
}

// =============================================================================
// SEED DATA - First-run defaults
// =============================================================================

// SeedSnapshot returns the state a brand-new installation starts from:
// one admin user, the default document taxonomy, and a small product and
// pump catalog the operator edits into shape.
func SeedSnapshot(adminPIN string) Snapshot {
	if adminPIN == "" {
		adminPIN = "1234"
	}
	return Snapshot{
		Users: []User{
			{ID: "admin-1", PIN: adminPIN, Name: "System Admin", Role: RoleAdmin, Username: "admin"},
		},
		Fuels: []FuelProduct{
			{
				ID: "f1", Name: "Octane 91",
				SalePricePerLiter:     decimal.RequireFromString("2.18"),
				PurchasePricePerLiter: decimal.RequireFromString("1.85"),
				IncludesTax:           true,
				InitialStock:          decimal.NewFromInt(50000),
				CurrentStock:          decimal.NewFromInt(42000),
				AlertThreshold:        decimal.NewFromInt(10000),
			},
			{
				ID: "f2", Name: "Octane 95",
				SalePricePerLiter:     decimal.RequireFromString("2.33"),
				PurchasePricePerLiter: decimal.RequireFromString("2.05"),
				IncludesTax:           true,
				InitialStock:          decimal.NewFromInt(30000),
				CurrentStock:          decimal.NewFromInt(12000),
				AlertThreshold:        decimal.NewFromInt(5000),
			},
			{
				ID: "f3", Name: "Diesel",
				SalePricePerLiter:     decimal.RequireFromString("1.15"),
				PurchasePricePerLiter: decimal.RequireFromString("0.95"),
				IncludesTax:           true,
				InitialStock:          decimal.NewFromInt(100000),
				CurrentStock:          decimal.NewFromInt(85000),
				AlertThreshold:        decimal.NewFromInt(20000),
			},
		},
		Pumps: []PumpMeter{
			{ID: "p1", Code: "01", Name: "Nozzle 1 (91)", FuelID: "f1", LastReading: decimal.NewFromInt(10000), CurrentReading: decimal.NewFromInt(10000)},
			{ID: "p2", Code: "02", Name: "Nozzle 2 (95)", FuelID: "f2", LastReading: decimal.NewFromInt(5000), CurrentReading: decimal.NewFromInt(5000)},
		},
		DocumentTypes: []DocumentType{
			{ID: "dt1", Label: "Commercial Registration", LabelAr: "السجل التجاري"},
			{ID: "dt2", Label: "Municipality License", LabelAr: "رخصة البلدية"},
			{ID: "dt3", Label: "Civil Defense License", LabelAr: "رخصة الدفاع المدني"},
			{ID: "dt4", Label: "Environmental Permit", LabelAr: "تصريح البيئة"},
		},
		Settings: Settings{
			CompanyName:   "Saudi Petro ERP",
			CompanyNameAr: "نظام بترو السعودي",
			TaxNumber:     "312345678900003",
		},
	}
}

// IsEmpty reports whether the snapshot has no identities at all, i.e. a
// fresh database that should be seeded.
func (s Snapshot) IsEmpty() bool { return len(s.Users) == 0 }

// DaysUntil returns whole days from now (at day granularity) to the given
// date. Negative means already expired.
func DaysUntil(now, expiry time.Time) int {
	truncate := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(truncate(expiry).Sub(truncate(now)).Hours() / 24)
}

/*
audit.go - Closed action taxonomy and the capped audit recorder

PURPOSE:
  Every mutating command appends exactly one audit entry. The trail is
  newest-first, capped at 5000 entries; beyond the cap the oldest entries
  drop silently. Recording never rejects and never blocks the mutation
  that triggered it.

ACTION CODES:
  The codes are a closed enumeration, one per component surface, so tests
  can assert exhaustively. Prefixes group by area: AUTH_, OPS_, INV_, FIN_,
  SYS_, HR_, PRO_, GOV_.
*/
package station

import "strings"

// auditLogCap bounds the trail; the tail drops silently past this.
const auditLogCap = 5000

type AuditAction string

const (
	ActionLogin          AuditAction = "AUTH_LOGIN"
	ActionLogout         AuditAction = "AUTH_LOGOUT"
	ActionShiftOpen      AuditAction = "OPS_SHIFT_OPEN"
	ActionShiftClose     AuditAction = "OPS_SHIFT_CLOSE"
	ActionPumpUpdate     AuditAction = "OPS_PUMP_UPDATE"
	ActionStockUpdate    AuditAction = "INV_STOCK_UPDATE"
	ActionLedgerUpdate   AuditAction = "FIN_LEDGER_UPDATE"
	ActionUserManage     AuditAction = "SYS_USER_MGMT"
	ActionStaffManage    AuditAction = "HR_STAFF_MGMT"
	ActionSupplierManage AuditAction = "PRO_SUPPLIER_MGMT"
	ActionSupplyReceive  AuditAction = "PRO_SUPPLY_RECEIVE"
	ActionDocumentManage AuditAction = "GOV_DOC_MGMT"
	ActionDocTypeConfig  AuditAction = "SYS_CONFIG_DOCS"
	ActionCompanyConfig  AuditAction = "SYS_CONFIG_COMPANY"
	ActionBackup         AuditAction = "SYS_BACKUP"
)

// Actions lists every defined audit action.
func Actions() []AuditAction {
	return []AuditAction{
		ActionLogin, ActionLogout, ActionShiftOpen, ActionShiftClose,
		ActionPumpUpdate, ActionStockUpdate, ActionLedgerUpdate,
		ActionUserManage, ActionStaffManage, ActionSupplierManage,
		ActionSupplyReceive, ActionDocumentManage, ActionDocTypeConfig,
		ActionCompanyConfig, ActionBackup,
	}
}

// AuditLog returns the trail, newest first.
func (s *Station) AuditLog() []AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.AuditLog
}

// QueryAudit filters the trail with a single case-insensitive term matched
// against actor name, action code, or details (OR semantics). An empty term
// returns the whole trail.
func (s *Station) QueryAudit(term string) []AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if term == "" {
		return s.snap.AuditLog
	}
	needle := strings.ToLower(term)

	var out []AuditEntry
	for _, e := range s.snap.AuditLog {
		if strings.Contains(strings.ToLower(e.UserName), needle) ||
			strings.Contains(strings.ToLower(string(e.Action)), needle) ||
			strings.Contains(strings.ToLower(e.Details), needle) {
			out = append(out, e)
		}
	}
	return out
}

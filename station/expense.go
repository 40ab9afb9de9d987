/*
expense.go - Expense records feeding the monthly aggregator

Expenses are freely edited and deleted by operators; they only ever feed
reporting. Recurrence (ONCE/MONTHLY/YEARLY) is carried as recorded and
never drives automatic future-period generation.
*/
package station

import "context"

// SaveExpense creates the expense when its ID is empty, otherwise overwrites.
func (s *Station) SaveExpense(ctx context.Context, actor Actor, e Expense) (Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses := cloneSlice(s.snap.Expenses)
	if e.ID == "" {
		e.ID = s.ids.NewID()
		expenses = append(expenses, e)
	} else {
		idx := indexByID(expenses, e.ID, func(x Expense) string { return x.ID })
		if idx < 0 {
			return Expense{}, ErrExpenseNotFound
		}
		expenses[idx] = e
	}
	s.snap.Expenses = expenses

	s.recordLocked(actor, ActionLedgerUpdate, "Accounting ledger entry modified")
	s.commitLocked(ctx, CollectionExpenses, CollectionAuditLog)
	return e, nil
}

// DeleteExpense removes an expense record.
func (s *Station) DeleteExpense(ctx context.Context, actor Actor, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.snap.Expenses, id, func(e Expense) string { return e.ID })
	if idx < 0 {
		return ErrExpenseNotFound
	}
	expenses := cloneSlice(s.snap.Expenses)
	s.snap.Expenses = append(expenses[:idx], expenses[idx+1:]...)

	s.recordLocked(actor, ActionLedgerUpdate, "Accounting ledger entry removed")
	s.commitLocked(ctx, CollectionExpenses, CollectionAuditLog)
	return nil
}

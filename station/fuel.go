/*
fuel.go - Fuel ledger: stock movements and product administration

PURPOSE:
  CurrentStock on a product moves through exactly two flows: shift closes
  subtract consumption, supply receipts add quantity. Everything else is a
  direct administrative overwrite with no derived invariant re-checked.

KNOWN PERMISSIVENESS:
  - Stock may go below zero on a shift close. The operator is trusted; the
    engine logs a warning instead of clamping.
  - Supply quantity is accepted as given, including zero and negatives.
    Forms may allow it; the engine logs a warning and records it anyway.
*/
package station

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SUPPLY RECEIPTS
// =============================================================================

// ReceiveSupply records a supplier delivery and raises the product's stock
// by the received quantity. The receipt is append-only.
func (s *Station) ReceiveSupply(ctx context.Context, actor Actor, supplierID, fuelID string, quantity, cost decimal.Decimal) (SupplyTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	supplier, ok := findByID(s.snap.Suppliers, supplierID, func(sp Supplier) string { return sp.ID })
	if !ok {
		return SupplyTransaction{}, ErrSupplierNotFound
	}
	idx := indexByID(s.snap.Fuels, fuelID, func(f FuelProduct) string { return f.ID })
	if idx < 0 {
		return SupplyTransaction{}, ErrFuelNotFound
	}

	if !quantity.IsPositive() {
		s.log.Warn().Str("supplier", supplier.Name).Str("quantity", quantity.String()).
			Msg("supply receipt with non-positive quantity accepted")
	}

	fuels := cloneSlice(s.snap.Fuels)
	fuels[idx].CurrentStock = fuels[idx].CurrentStock.Add(quantity)
	s.snap.Fuels = fuels

	tx := SupplyTransaction{
		ID:           s.ids.NewID(),
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		FuelID:       fuels[idx].ID,
		FuelName:     fuels[idx].Name,
		Quantity:     quantity,
		Cost:         cost,
		Date:         s.clock.Now(),
	}
	s.snap.Supplies = append(cloneSlice(s.snap.Supplies), tx)

	s.recordLocked(actor, ActionSupplyReceive,
		fmt.Sprintf("Received %sL from %s", quantity, supplier.Name))
	s.commitLocked(ctx, CollectionFuels, CollectionSupplies, CollectionAuditLog)

	return tx, nil
}

// deductStockLocked lowers a product's stock after a shift close. No floor
// at zero; the warning is the only guard.
func (s *Station) deductStockLocked(fuelID string, quantity decimal.Decimal) {
	idx := indexByID(s.snap.Fuels, fuelID, func(f FuelProduct) string { return f.ID })
	if idx < 0 {
		// The product was deleted while its shift ran; the close still
		// reconciles, there is just no stock to move.
		s.log.Warn().Str("fuel_id", fuelID).Msg("shift close for a deleted fuel product")
		return
	}

	fuels := cloneSlice(s.snap.Fuels)
	fuels[idx].CurrentStock = fuels[idx].CurrentStock.Sub(quantity)
	s.snap.Fuels = fuels

	if fuels[idx].CurrentStock.IsNegative() {
		s.log.Warn().Str("fuel", fuels[idx].Name).Str("stock", fuels[idx].CurrentStock.String()).
			Msg("stock driven below zero by shift close")
	}
}

// =============================================================================
// PRODUCT ADMINISTRATION
// =============================================================================

// SaveFuelProduct creates the product when its ID is empty, otherwise
// overwrites the stored record field for field.
func (s *Station) SaveFuelProduct(ctx context.Context, actor Actor, f FuelProduct) (FuelProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fuels := cloneSlice(s.snap.Fuels)
	if f.ID == "" {
		f.ID = s.ids.NewID()
		fuels = append(fuels, f)
	} else {
		idx := indexByID(fuels, f.ID, func(p FuelProduct) string { return p.ID })
		if idx < 0 {
			return FuelProduct{}, ErrFuelNotFound
		}
		fuels[idx] = f
	}
	s.snap.Fuels = fuels

	s.recordLocked(actor, ActionStockUpdate, "Warehouse inventory levels adjusted manually")
	s.commitLocked(ctx, CollectionFuels, CollectionAuditLog)
	return f, nil
}

// DeleteFuelProduct removes the product. History referencing it is kept
// as-is: closed shifts carry their own frozen names and prices.
func (s *Station) DeleteFuelProduct(ctx context.Context, actor Actor, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.snap.Fuels, id, func(f FuelProduct) string { return f.ID })
	if idx < 0 {
		return ErrFuelNotFound
	}
	fuels := cloneSlice(s.snap.Fuels)
	s.snap.Fuels = append(fuels[:idx], fuels[idx+1:]...)

	s.recordLocked(actor, ActionStockUpdate, "Fuel product removed from catalog")
	s.commitLocked(ctx, CollectionFuels, CollectionAuditLog)
	return nil
}

// SavePump creates or overwrites a pump meter record.
func (s *Station) SavePump(ctx context.Context, actor Actor, p PumpMeter) (PumpMeter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := findByID(s.snap.Fuels, p.FuelID, func(f FuelProduct) string { return f.ID }); !ok {
		return PumpMeter{}, ErrFuelNotFound
	}

	pumps := cloneSlice(s.snap.Pumps)
	if p.ID == "" {
		p.ID = s.ids.NewID()
		pumps = append(pumps, p)
	} else {
		idx := indexByID(pumps, p.ID, func(q PumpMeter) string { return q.ID })
		if idx < 0 {
			return PumpMeter{}, ErrPumpNotFound
		}
		pumps[idx] = p
	}
	s.snap.Pumps = pumps

	s.recordLocked(actor, ActionPumpUpdate, "Nozzle meter configuration changed")
	s.commitLocked(ctx, CollectionPumps, CollectionAuditLog)
	return p, nil
}

// DeletePump removes a pump meter.
func (s *Station) DeletePump(ctx context.Context, actor Actor, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.snap.Pumps, id, func(p PumpMeter) string { return p.ID })
	if idx < 0 {
		return ErrPumpNotFound
	}
	pumps := cloneSlice(s.snap.Pumps)
	s.snap.Pumps = append(pumps[:idx], pumps[idx+1:]...)

	s.recordLocked(actor, ActionPumpUpdate, "Nozzle meter removed")
	s.commitLocked(ctx, CollectionPumps, CollectionAuditLog)
	return nil
}

// =============================================================================
// QUERIES
// =============================================================================

// LowStock returns every product whose current stock sits below its alert
// threshold. Pure read for the dashboard.
func (s *Station) LowStock() []FuelProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var low []FuelProduct
	for _, f := range s.snap.Fuels {
		if f.CurrentStock.LessThan(f.AlertThreshold) {
			low = append(low, f)
		}
	}
	return low
}

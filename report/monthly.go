/*
Package report computes financial projections over the station's collections.

PURPOSE:
  The monthly aggregator rolls closed shifts and expense records into one
  P&L bucket per calendar month. It is a pure function: no stored state,
  no incremental caching, recomputed fully on every call. Calling it twice
  with identical inputs yields identical output.

BUCKETING:
  Buckets key on (year, month) internally. The display label is the short
  locale form ("Jan 2025"), but two Januaries in different years never
  collapse into one bucket.

PER-SHIFT CONTRIBUTIONS:
  revenue  = cash + card          (actual collected funds, not liters*price)
  cost     = liters * purchase price (the product's CURRENT purchase price
                                      at aggregation time, not at shift time)
  vat      = revenue * 15%

PER-EXPENSE CONTRIBUTIONS:
  FIXED amounts land in the fixed bucket, everything else in variable.

DERIVED:
  totalExpense = fixed + variable
  grossProfit  = revenue - cost - vat
  netProfit    = grossProfit - totalExpense

ORDERING:
  Ascending (year, month) - chronological, not insertion order.
*/
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petroops/station-engine/station"
)

// VATRate is the Saudi VAT applied to collected revenue.
var VATRate = decimal.RequireFromString("0.15")

// MonthKey identifies a bucket. Year-qualified so month abbreviations from
// different years never merge.
type MonthKey struct {
	Year  int
	Month time.Month
}

func (k MonthKey) Label() string {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

func keyOf(t time.Time) MonthKey { return MonthKey{Year: t.Year(), Month: t.Month()} }

// MonthlyAggregate is one month's P&L rollup. Derived, never persisted.
type MonthlyAggregate struct {
	Key             MonthKey        `json:"-"`
	Month           string          `json:"month"`
	Revenue         decimal.Decimal `json:"revenue"`
	Cost            decimal.Decimal `json:"cost"`
	VAT             decimal.Decimal `json:"vat"`
	FixedExpense    decimal.Decimal `json:"fixedExp"`
	VariableExpense decimal.Decimal `json:"varExp"`
	TotalExpense    decimal.Decimal `json:"totalExp"`
	GrossProfit     decimal.Decimal `json:"grossProfit"`
	NetProfit       decimal.Decimal `json:"netProfit"`
}

// Monthly rolls closed shifts and expenses into per-month buckets.
// A bucket exists for every (year, month) appearing in either shift start
// times or expense dates.
func Monthly(shifts []station.Shift, expenses []station.Expense, fuels []station.FuelProduct) []MonthlyAggregate {
	purchasePrice := make(map[string]decimal.Decimal, len(fuels))
	for _, f := range fuels {
		purchasePrice[f.ID] = f.PurchasePricePerLiter
	}

	buckets := make(map[MonthKey]*MonthlyAggregate)
	bucket := func(k MonthKey) *MonthlyAggregate {
		b, ok := buckets[k]
		if !ok {
			b = &MonthlyAggregate{Key: k, Month: k.Label()}
			buckets[k] = b
		}
		return b
	}

	for _, sh := range shifts {
		if sh.Status != station.ShiftClosed {
			continue
		}
		b := bucket(keyOf(sh.StartTime))

		rev := sh.CashAmount.Add(sh.CardAmount)
		b.Revenue = b.Revenue.Add(rev)
		// A deleted product contributes zero cost, same as an unknown one.
		b.Cost = b.Cost.Add(sh.TotalLiters.Mul(purchasePrice[sh.FuelID]))
		b.VAT = b.VAT.Add(rev.Mul(VATRate))
	}

	for _, e := range expenses {
		b := bucket(keyOf(e.Date))
		if e.Type == station.ExpenseFixed {
			b.FixedExpense = b.FixedExpense.Add(e.Amount)
		} else {
			b.VariableExpense = b.VariableExpense.Add(e.Amount)
		}
	}

	out := make([]MonthlyAggregate, 0, len(buckets))
	for _, b := range buckets {
		b.TotalExpense = b.FixedExpense.Add(b.VariableExpense)
		b.GrossProfit = b.Revenue.Sub(b.Cost).Sub(b.VAT)
		b.NetProfit = b.GrossProfit.Sub(b.TotalExpense)
		out = append(out, *b)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Year != out[j].Key.Year {
			return out[i].Key.Year < out[j].Key.Year
		}
		return out[i].Key.Month < out[j].Key.Month
	})
	return out
}

// Summary totals the monthly buckets for the dashboard header cards.
type Summary struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	TotalVAT     decimal.Decimal `json:"totalVat"`
	GrossProfit  decimal.Decimal `json:"grossProfit"`
	NetProfit    decimal.Decimal `json:"netProfit"`
}

// Summarize folds the aggregates into one figure set.
func Summarize(months []MonthlyAggregate) Summary {
	var s Summary
	for _, m := range months {
		s.TotalRevenue = s.TotalRevenue.Add(m.Revenue)
		s.TotalExpense = s.TotalExpense.Add(m.TotalExpense)
		s.TotalVAT = s.TotalVAT.Add(m.VAT)
		s.GrossProfit = s.GrossProfit.Add(m.GrossProfit)
		s.NetProfit = s.NetProfit.Add(m.NetProfit)
	}
	return s
}

// Package ledger holds the pure billing arithmetic: billed amounts, paid
// amounts and net balances over the in-memory delivery and payment logs.
// Everything here is a single pass over slices; nothing mutates its inputs.
package ledger

import "github.com/kharjul/milkbook/internal/model"

// Range is an inclusive [Start, End] window of ISO date strings. The zero
// value means "all time".
type Range struct {
	Start string
	End   string
}

func (r Range) contains(date string) bool {
	if r.Start != "" && date < r.Start {
		return false
	}
	if r.End != "" && date > r.End {
		return false
	}
	return true
}

// PriceFor resolves the per-litre rate for a log: the log's milk type
// override if set, else the customer default. A missing price entry
// resolves to 0 rather than failing.
func PriceFor(customer model.Customer, log model.DeliveryLog) float64 {
	milkType := log.MilkType
	if milkType == "" {
		milkType = customer.MilkType
	}
	return customer.Prices[milkType]
}

// BilledAmount sums quantity*rate over the customer's Delivered logs inside
// the range. Pending, Missed and Paused logs never bill. Returns the billed
// amount and the delivered litres.
func BilledAmount(customer model.Customer, logs []model.DeliveryLog, r Range) (amount, litres float64) {
	for _, log := range logs {
		if log.CustomerID != customer.ID || log.Status != model.DeliveryStatusDelivered {
			continue
		}
		if !r.contains(log.Date) {
			continue
		}
		amount += log.Quantity * PriceFor(customer, log)
		litres += log.Quantity
	}
	return amount, litres
}

// PaidAmount sums the customer's payments inside the range.
func PaidAmount(customerID string, payments []model.PaymentLog, r Range) float64 {
	total := 0.0
	for _, p := range payments {
		if p.CustomerID != customerID {
			continue
		}
		if !r.contains(p.Date) {
			continue
		}
		total += p.Amount
	}
	return total
}

// NetBalance is the authoritative amount owed: opening balance plus billed
// minus paid. Positive means the customer owes, negative means advance.
// Customer.Balance must be the due before any of logs/payments were
// recorded; with a live balance that payments already decremented, the same
// figure is Balance plus billed only.
func NetBalance(customer model.Customer, logs []model.DeliveryLog, payments []model.PaymentLog, r Range) float64 {
	billed, _ := BilledAmount(customer, logs, r)
	return customer.Balance + billed - PaidAmount(customer.ID, payments, r)
}

// OpeningBalanceForRange reconstructs the balance as of just before start:
//
//	opening = balance + payments(date >= start) + billed(date < start)
//
// Customer.Balance is the due before any logged activity, already net of
// every recorded payment, so isolating the pre-start snapshot means adding
// back the payments from start onward and the deliveries before start.
// The identity is order-sensitive; subtracting in-range billing instead
// produces a different, wrong number.
func OpeningBalanceForRange(customer model.Customer, logs []model.DeliveryLog, payments []model.PaymentLog, start string) float64 {
	billedBefore := 0.0
	for _, log := range logs {
		if log.CustomerID != customer.ID || log.Status != model.DeliveryStatusDelivered {
			continue
		}
		if log.Date >= start {
			continue
		}
		billedBefore += log.Quantity * PriceFor(customer, log)
	}
	paidSince := PaidAmount(customer.ID, payments, Range{Start: start})
	return customer.Balance + paidSince + billedBefore
}

// AllTimeOpeningBalance is the opening figure for an unbounded statement:
// the initial debt, recovered as current balance plus every payment ever
// recorded, since payments are the only activity folded into Balance.
func AllTimeOpeningBalance(customer model.Customer, payments []model.PaymentLog) float64 {
	return customer.Balance + PaidAmount(customer.ID, payments, Range{})
}

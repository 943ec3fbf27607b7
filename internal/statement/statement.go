// Package statement assembles the ordered transaction list and totals a
// renderer needs. It is a pure single-pass transform; the PDF and Excel
// generators draw the result without recomputing anything.
package statement

import (
	"fmt"
	"sort"

	"github.com/kharjul/milkbook/internal/ledger"
	"github.com/kharjul/milkbook/internal/model"
)

// Build merges the customer's delivered logs (debits) and payments (credits)
// into a date-sorted statement. Rows on the same date keep deliveries before
// payments so output is deterministic. Logs and payments for other customers
// are ignored; non-Delivered logs never appear.
func Build(customer model.Customer, logs []model.DeliveryLog, payments []model.PaymentLog, title string, openingBalance float64) model.Statement {
	rows := make([]model.TransactionRow, 0, len(logs)+len(payments))

	for _, log := range logs {
		if log.CustomerID != customer.ID || log.Status != model.DeliveryStatusDelivered {
			continue
		}
		milkType := log.MilkType
		if milkType == "" {
			milkType = customer.MilkType
		}
		rate := ledger.PriceFor(customer, log)
		rows = append(rows, model.TransactionRow{
			Date:        log.Date,
			Description: fmt.Sprintf("%s Milk", milkType),
			Rate:        rate,
			Quantity:    log.Quantity,
			Amount:      log.Quantity * rate,
			Kind:        model.TransactionDebit,
		})
	}

	for _, p := range payments {
		if p.CustomerID != customer.ID {
			continue
		}
		rows = append(rows, model.TransactionRow{
			Date:        p.Date,
			Description: fmt.Sprintf("Payment (%s)", p.Mode),
			Amount:      p.Amount,
			Kind:        model.TransactionCredit,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})

	st := model.Statement{
		Customer:       customer,
		Title:          title,
		OpeningBalance: openingBalance,
		Rows:           rows,
	}
	for _, row := range rows {
		if row.Kind == model.TransactionDebit {
			st.TotalDebit += row.Amount
			st.TotalLitres += row.Quantity
		} else {
			st.TotalCredit += row.Amount
		}
	}
	st.NetReceivable = openingBalance + st.TotalDebit - st.TotalCredit
	return st
}

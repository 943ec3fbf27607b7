package ledger

import (
	"testing"

	"github.com/kharjul/milkbook/internal/model"
)

func testCustomer(balance float64) model.Customer {
	return model.Customer{
		ID:       "c1",
		Name:     "Sharma Family",
		MilkType: model.MilkTypeCow,
		Prices: map[model.MilkType]float64{
			model.MilkTypeCow:     60,
			model.MilkTypeBuffalo: 70,
		},
		Balance: balance,
	}
}

func delivered(customerID, date string, qty float64) model.DeliveryLog {
	return model.DeliveryLog{
		ID:         model.DeliveryLogID(customerID, date),
		CustomerID: customerID,
		Date:       date,
		Status:     model.DeliveryStatusDelivered,
		Quantity:   qty,
	}
}

func payment(customerID, date string, amount float64) model.PaymentLog {
	return model.PaymentLog{
		ID:         "pay-" + date,
		CustomerID: customerID,
		Date:       date,
		Amount:     amount,
		Mode:       model.PaymentModeCash,
	}
}

func TestPriceFor(t *testing.T) {
	c := testCustomer(0)

	log := delivered("c1", "2024-03-01", 2)
	if got := PriceFor(c, log); got != 60 {
		t.Errorf("default milk type price = %v, want 60", got)
	}

	log.MilkType = model.MilkTypeBuffalo
	if got := PriceFor(c, log); got != 70 {
		t.Errorf("override milk type price = %v, want 70", got)
	}

	c.Prices = map[model.MilkType]float64{}
	if got := PriceFor(c, log); got != 0 {
		t.Errorf("missing price entry = %v, want 0", got)
	}
}

func TestBilledAmountCountsOnlyDelivered(t *testing.T) {
	c := testCustomer(0)
	logs := []model.DeliveryLog{
		delivered("c1", "2024-03-01", 2),
		{CustomerID: "c1", Date: "2024-03-02", Status: model.DeliveryStatusMissed, Quantity: 2},
		{CustomerID: "c1", Date: "2024-03-03", Status: model.DeliveryStatusPending, Quantity: 2},
		{CustomerID: "c1", Date: "2024-03-04", Status: model.DeliveryStatusPaused, Quantity: 2},
		delivered("other", "2024-03-01", 5),
	}

	amount, litres := BilledAmount(c, logs, Range{})
	if amount != 120 || litres != 2 {
		t.Fatalf("BilledAmount = (%v, %v), want (120, 2)", amount, litres)
	}

	// Flipping one status to Delivered moves the total by exactly qty*price.
	logs[1].Status = model.DeliveryStatusDelivered
	amount2, _ := BilledAmount(c, logs, Range{})
	if diff := amount2 - amount; diff != 120 {
		t.Errorf("marking Missed as Delivered changed total by %v, want 120", diff)
	}
}

func TestBilledAmountRange(t *testing.T) {
	c := testCustomer(0)
	logs := []model.DeliveryLog{
		delivered("c1", "2024-02-28", 1),
		delivered("c1", "2024-03-01", 1),
		delivered("c1", "2024-03-15", 1),
		delivered("c1", "2024-04-01", 1),
	}

	amount, litres := BilledAmount(c, logs, Range{Start: "2024-03-01", End: "2024-03-31"})
	if amount != 120 || litres != 2 {
		t.Errorf("ranged BilledAmount = (%v, %v), want (120, 2)", amount, litres)
	}
}

func TestNetBalanceExample(t *testing.T) {
	// balance=1000, two delivered 2L at Rs.60, one payment of 500 -> 740.
	c := testCustomer(1000)
	logs := []model.DeliveryLog{
		delivered("c1", "2024-03-01", 2),
		delivered("c1", "2024-03-02", 2),
	}
	payments := []model.PaymentLog{payment("c1", "2024-03-03", 500)}

	if got := NetBalance(c, logs, payments, Range{}); got != 740 {
		t.Errorf("NetBalance = %v, want 740", got)
	}
}

func TestNetBalanceOrderIndependent(t *testing.T) {
	c := testCustomer(100)
	logs := []model.DeliveryLog{
		delivered("c1", "2024-03-02", 2),
		delivered("c1", "2024-03-01", 1.5),
		delivered("c1", "2024-03-05", 3),
	}
	payments := []model.PaymentLog{
		payment("c1", "2024-03-04", 90),
		payment("c1", "2024-03-01", 10),
	}

	want := NetBalance(c, logs, payments, Range{})

	reversedLogs := []model.DeliveryLog{logs[2], logs[1], logs[0]}
	reversedPayments := []model.PaymentLog{payments[1], payments[0]}
	if got := NetBalance(c, reversedLogs, reversedPayments, Range{}); got != want {
		t.Errorf("NetBalance after reorder = %v, want %v", got, want)
	}
}

func TestOpeningBalanceForRangeExample(t *testing.T) {
	// balance=0, Delivered 5L@60 before start, payment of 100 after start
	// -> opening = 0 + 100 + 300 = 400.
	c := testCustomer(0)
	logs := []model.DeliveryLog{delivered("c1", "2024-02-20", 5)}
	payments := []model.PaymentLog{payment("c1", "2024-03-10", 100)}

	if got := OpeningBalanceForRange(c, logs, payments, "2024-03-01"); got != 400 {
		t.Errorf("OpeningBalanceForRange = %v, want 400", got)
	}
}

func TestStatementIdentity(t *testing.T) {
	// opening(start) + billed[start,end] - paid[start,end] == netBalance
	// when [start,end] spans all activity from start onward. The fixture's
	// Balance is the live stored value (payments already folded in), so the
	// net-balance side evaluates at the recovered opening due.
	c := testCustomer(500)
	logs := []model.DeliveryLog{
		delivered("c1", "2024-02-10", 2),
		delivered("c1", "2024-03-03", 1),
		delivered("c1", "2024-03-20", 2.5),
	}
	payments := []model.PaymentLog{
		payment("c1", "2024-02-15", 200),
		payment("c1", "2024-03-10", 150),
	}

	start, end := "2024-03-01", "2024-12-31"
	opening := OpeningBalanceForRange(c, logs, payments, start)
	billed, _ := BilledAmount(c, logs, Range{Start: start, End: end})
	paid := PaidAmount(c.ID, payments, Range{Start: start, End: end})

	atOpening := c
	atOpening.Balance = AllTimeOpeningBalance(c, payments)
	want := NetBalance(atOpening, logs, payments, Range{})

	if got := opening + billed - paid; got != want {
		t.Errorf("statement math = %v, dashboard math = %v", got, want)
	}
}

func TestAllTimeOpeningBalance(t *testing.T) {
	c := testCustomer(700)
	payments := []model.PaymentLog{
		payment("c1", "2024-01-01", 100),
		payment("c1", "2024-02-01", 200),
		payment("other", "2024-02-01", 999),
	}
	if got := AllTimeOpeningBalance(c, payments); got != 1000 {
		t.Errorf("AllTimeOpeningBalance = %v, want 1000", got)
	}
}

func TestPaidAmountRange(t *testing.T) {
	payments := []model.PaymentLog{
		payment("c1", "2024-02-28", 10),
		payment("c1", "2024-03-01", 20),
		payment("c1", "2024-03-31", 30),
		payment("c1", "2024-04-01", 40),
		payment("c2", "2024-03-15", 99),
	}

	if got := PaidAmount("c1", payments, Range{Start: "2024-03-01", End: "2024-03-31"}); got != 50 {
		t.Errorf("ranged PaidAmount = %v, want 50", got)
	}
	if got := PaidAmount("c1", payments, Range{}); got != 100 {
		t.Errorf("all-time PaidAmount = %v, want 100", got)
	}
}

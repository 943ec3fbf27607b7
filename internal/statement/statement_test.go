package statement

import (
	"testing"

	"github.com/kharjul/milkbook/internal/ledger"
	"github.com/kharjul/milkbook/internal/model"
)

func testCustomer() model.Customer {
	return model.Customer{
		ID:       "c1",
		Name:     "Rahul Verma",
		MilkType: model.MilkTypeBuffalo,
		Prices: map[model.MilkType]float64{
			model.MilkTypeCow:     62,
			model.MilkTypeBuffalo: 72,
		},
		Balance: 2100,
	}
}

func TestBuildMergesAndSorts(t *testing.T) {
	c := testCustomer()
	logs := []model.DeliveryLog{
		{CustomerID: "c1", Date: "2024-03-03", Status: model.DeliveryStatusDelivered, Quantity: 1},
		{CustomerID: "c1", Date: "2024-03-01", Status: model.DeliveryStatusDelivered, Quantity: 2},
		{CustomerID: "c1", Date: "2024-03-02", Status: model.DeliveryStatusMissed, Quantity: 1},
		{CustomerID: "other", Date: "2024-03-01", Status: model.DeliveryStatusDelivered, Quantity: 9},
	}
	payments := []model.PaymentLog{
		{CustomerID: "c1", Date: "2024-03-02", Amount: 100, Mode: model.PaymentModeOnline},
		{CustomerID: "other", Date: "2024-03-02", Amount: 400, Mode: model.PaymentModeCash},
	}

	st := Build(c, logs, payments, "Statement", 0)

	if len(st.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(st.Rows))
	}
	wantDates := []string{"2024-03-01", "2024-03-02", "2024-03-03"}
	for i, want := range wantDates {
		if st.Rows[i].Date != want {
			t.Errorf("row %d date = %s, want %s", i, st.Rows[i].Date, want)
		}
	}
	if st.Rows[1].Kind != model.TransactionCredit {
		t.Errorf("middle row kind = %s, want CREDIT", st.Rows[1].Kind)
	}
	if st.Rows[1].Description != "Payment (Online)" {
		t.Errorf("payment description = %q", st.Rows[1].Description)
	}
	if st.Rows[0].Description != "Buffalo Milk" {
		t.Errorf("delivery description = %q", st.Rows[0].Description)
	}
}

func TestBuildSameDateDeliveriesBeforePayments(t *testing.T) {
	c := testCustomer()
	logs := []model.DeliveryLog{
		{CustomerID: "c1", Date: "2024-03-05", Status: model.DeliveryStatusDelivered, Quantity: 1},
	}
	payments := []model.PaymentLog{
		{CustomerID: "c1", Date: "2024-03-05", Amount: 72, Mode: model.PaymentModeCash},
	}

	st := Build(c, logs, payments, "Statement", 0)
	if len(st.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(st.Rows))
	}
	if st.Rows[0].Kind != model.TransactionDebit || st.Rows[1].Kind != model.TransactionCredit {
		t.Errorf("same-date order = (%s, %s), want (DEBIT, CREDIT)", st.Rows[0].Kind, st.Rows[1].Kind)
	}
}

func TestBuildTotalsAndNetReceivable(t *testing.T) {
	c := testCustomer()
	logs := []model.DeliveryLog{
		{CustomerID: "c1", Date: "2024-03-01", Status: model.DeliveryStatusDelivered, Quantity: 2},
		{CustomerID: "c1", Date: "2024-03-02", Status: model.DeliveryStatusDelivered, Quantity: 1.5, MilkType: model.MilkTypeCow},
	}
	payments := []model.PaymentLog{
		{CustomerID: "c1", Date: "2024-03-03", Amount: 150, Mode: model.PaymentModeCash},
	}

	st := Build(c, logs, payments, "Statement", 1000)

	wantDebit := 2*72 + 1.5*62
	if st.TotalDebit != wantDebit {
		t.Errorf("TotalDebit = %v, want %v", st.TotalDebit, wantDebit)
	}
	if st.TotalCredit != 150 {
		t.Errorf("TotalCredit = %v, want 150", st.TotalCredit)
	}
	if st.TotalLitres != 3.5 {
		t.Errorf("TotalLitres = %v, want 3.5", st.TotalLitres)
	}
	if want := 1000 + wantDebit - 150; st.NetReceivable != want {
		t.Errorf("NetReceivable = %v, want %v", st.NetReceivable, want)
	}
}

// Statement math and dashboard math must agree: net receivable over an
// all-activity window equals the ledger's net balance.
func TestNetReceivableMatchesNetBalance(t *testing.T) {
	c := testCustomer()
	logs := []model.DeliveryLog{
		{CustomerID: "c1", Date: "2024-01-05", Status: model.DeliveryStatusDelivered, Quantity: 2},
		{CustomerID: "c1", Date: "2024-02-10", Status: model.DeliveryStatusDelivered, Quantity: 1},
	}
	payments := []model.PaymentLog{
		{CustomerID: "c1", Date: "2024-01-20", Amount: 100, Mode: model.PaymentModeCash},
	}

	opening := ledger.AllTimeOpeningBalance(c, payments)
	st := Build(c, logs, payments, "Statement", opening)

	// NetBalance expects Balance to be the opening due, so evaluate it on a
	// copy carrying the recovered opening rather than the live balance.
	atOpening := c
	atOpening.Balance = opening
	if want := ledger.NetBalance(atOpening, logs, payments, ledger.Range{}); st.NetReceivable != want {
		t.Errorf("NetReceivable = %v, NetBalance = %v", st.NetReceivable, want)
	}
	// 2316 either way: opening 2200 + billed 216 - paid 100.
	if st.NetReceivable != 2316 {
		t.Errorf("NetReceivable = %v, want 2316", st.NetReceivable)
	}
}

func TestBuildEmpty(t *testing.T) {
	st := Build(testCustomer(), nil, nil, "Statement", 500)
	if len(st.Rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(st.Rows))
	}
	if st.NetReceivable != 500 {
		t.Errorf("NetReceivable = %v, want opening balance 500", st.NetReceivable)
	}
}

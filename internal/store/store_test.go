package store

import (
	"testing"

	"github.com/kharjul/milkbook/internal/model"
)

func newCustomer(id string, balance float64) model.Customer {
	return model.Customer{
		ID:       id,
		Name:     "Customer " + id,
		Mobile:   "9000000000",
		MilkType: model.MilkTypeCow,
		Prices:   map[model.MilkType]float64{model.MilkTypeCow: 60},
		Balance:  balance,
	}
}

func TestUpsertCustomer(t *testing.T) {
	s := New()
	s.UpsertCustomer(newCustomer("c1", 100))
	s.UpsertCustomer(newCustomer("c2", 0))

	updated := newCustomer("c1", 250)
	updated.Name = "Renamed"
	s.UpsertCustomer(updated)

	customers := s.Customers()
	if len(customers) != 2 {
		t.Fatalf("customers = %d, want 2", len(customers))
	}
	got, ok := s.Customer("c1")
	if !ok || got.Name != "Renamed" || got.Balance != 250 {
		t.Errorf("Customer(c1) = %+v, ok=%v", got, ok)
	}
}

func TestDeliveryLogUpsertByDerivedID(t *testing.T) {
	s := New()

	first := s.UpsertDeliveryLog(model.DeliveryLog{
		CustomerID: "c1",
		Date:       "2024-03-01",
		Status:     model.DeliveryStatusDelivered,
		Quantity:   2,
	})
	if first.ID != "c1-2024-03-01" {
		t.Errorf("derived id = %s", first.ID)
	}

	// Same (customer, date) replaces, never duplicates.
	s.UpsertDeliveryLog(model.DeliveryLog{
		CustomerID: "c1",
		Date:       "2024-03-01",
		Status:     model.DeliveryStatusMissed,
		Quantity:   0,
	})

	logs := s.DeliveryLogs()
	if len(logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(logs))
	}
	if logs[0].Status != model.DeliveryStatusMissed {
		t.Errorf("status = %s, want Missed", logs[0].Status)
	}

	log, ok := s.DeliveryLog("c1", "2024-03-01")
	if !ok || log.Status != model.DeliveryStatusMissed {
		t.Errorf("DeliveryLog lookup = %+v, ok=%v", log, ok)
	}
}

func TestApplyPaymentAtomicity(t *testing.T) {
	s := New()
	s.UpsertCustomer(newCustomer("c1", 500))

	err := s.ApplyPayment(model.PaymentLog{
		ID:         "pay-1",
		CustomerID: "c1",
		Date:       "2024-03-01",
		Amount:     200,
		Mode:       model.PaymentModeCash,
	})
	if err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}

	c, _ := s.Customer("c1")
	if c.Balance != 300 {
		t.Errorf("balance = %v, want 300", c.Balance)
	}
	if len(s.Payments()) != 1 {
		t.Errorf("payments = %d, want 1", len(s.Payments()))
	}
}

func TestApplyPaymentUnknownCustomerLeavesStateUntouched(t *testing.T) {
	s := New()
	s.UpsertCustomer(newCustomer("c1", 500))

	err := s.ApplyPayment(model.PaymentLog{ID: "pay-1", CustomerID: "ghost", Amount: 200})
	if err != ErrCustomerNotFound {
		t.Fatalf("err = %v, want ErrCustomerNotFound", err)
	}
	if len(s.Payments()) != 0 {
		t.Errorf("payments = %d, want 0", len(s.Payments()))
	}
	c, _ := s.Customer("c1")
	if c.Balance != 500 {
		t.Errorf("balance = %v, want 500", c.Balance)
	}
}

// Deleting a customer keeps its logs and payments. Orphans are the recorded
// behavior; this test makes a future cascade a deliberate change.
func TestDeleteCustomerKeepsOrphans(t *testing.T) {
	s := New()
	s.UpsertCustomer(newCustomer("c1", 0))
	s.UpsertDeliveryLog(model.DeliveryLog{CustomerID: "c1", Date: "2024-03-01", Status: model.DeliveryStatusDelivered, Quantity: 1})
	if err := s.ApplyPayment(model.PaymentLog{ID: "pay-1", CustomerID: "c1", Amount: 50}); err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}

	if !s.DeleteCustomer("c1") {
		t.Fatal("DeleteCustomer returned false")
	}
	if s.DeleteCustomer("c1") {
		t.Error("second delete should return false")
	}
	if len(s.DeliveryLogs()) != 1 {
		t.Errorf("delivery logs = %d, want 1 (orphan kept)", len(s.DeliveryLogs()))
	}
	if len(s.Payments()) != 1 {
		t.Errorf("payments = %d, want 1 (orphan kept)", len(s.Payments()))
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := New()
	s.UpsertCustomer(newCustomer("c1", 100))

	customers := s.Customers()
	customers[0].Balance = -999

	c, _ := s.Customer("c1")
	if c.Balance != 100 {
		t.Errorf("mutating the returned slice leaked into the store: balance = %v", c.Balance)
	}
}

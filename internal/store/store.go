// Package store owns the three in-memory collections. All mutation goes
// through typed operations under one mutex, so the cross-collection
// invariants (payment append + balance decrement, one delivery log per
// customer per date) cannot half-apply.
package store

import (
	"errors"
	"sync"

	"github.com/kharjul/milkbook/internal/model"
)

var ErrCustomerNotFound = errors.New("customer not found")

type Store struct {
	mu        sync.RWMutex
	customers []model.Customer
	logs      []model.DeliveryLog
	payments  []model.PaymentLog
}

func New() *Store {
	return &Store{}
}

// Customers returns a copy of the roster in insertion order.
func (s *Store) Customers() []model.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

func (s *Store) Customer(id string) (model.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return model.Customer{}, false
}

// UpsertCustomer replaces the customer with the same id or appends a new one.
func (s *Store) UpsertCustomer(c model.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID == c.ID {
			s.customers[i] = c
			return
		}
	}
	s.customers = append(s.customers, c)
}

// DeleteCustomer removes only the roster entry. Delivery and payment logs
// referencing the id are kept; statements and totals skip unknown ids.
func (s *Store) DeleteCustomer(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID == id {
			s.customers = append(s.customers[:i], s.customers[i+1:]...)
			return true
		}
	}
	return false
}

// DeliveryLogs returns a copy of all delivery logs.
func (s *Store) DeliveryLogs() []model.DeliveryLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.DeliveryLog, len(s.logs))
	copy(out, s.logs)
	return out
}

func (s *Store) DeliveryLog(customerID, date string) (model.DeliveryLog, bool) {
	id := model.DeliveryLogID(customerID, date)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, log := range s.logs {
		if log.ID == id {
			return log, true
		}
	}
	return model.DeliveryLog{}, false
}

// UpsertDeliveryLog enforces the one-log-per-(customer, date) constraint:
// the derived id is the upsert key regardless of what the caller set.
func (s *Store) UpsertDeliveryLog(log model.DeliveryLog) model.DeliveryLog {
	log.ID = model.DeliveryLogID(log.CustomerID, log.Date)
	if log.Extras == nil {
		log.Extras = []string{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.logs {
		if s.logs[i].ID == log.ID {
			s.logs[i] = log
			return log
		}
	}
	s.logs = append(s.logs, log)
	return log
}

// Payments returns a copy of all payment logs.
func (s *Store) Payments() []model.PaymentLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.PaymentLog, len(s.payments))
	copy(out, s.payments)
	return out
}

// ApplyPayment appends the payment and decrements the owning customer's
// balance as one transaction. The balance field and the payment list are two
// views of the same debt; neither step applies without the other.
func (s *Store) ApplyPayment(p model.PaymentLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID == p.CustomerID {
			s.customers[i].Balance -= p.Amount
			s.payments = append(s.payments, p)
			return nil
		}
	}
	return ErrCustomerNotFound
}

// Replace swaps in a fully validated snapshot, overwriting all collections.
func (s *Store) Replace(customers []model.Customer, logs []model.DeliveryLog, payments []model.PaymentLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = customers
	s.logs = logs
	s.payments = payments
}

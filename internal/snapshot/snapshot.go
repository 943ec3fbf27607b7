// Package snapshot implements the manual backup format: one JSON document
// holding the full roster, delivery logs and payment logs.
package snapshot

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/kharjul/milkbook/internal/model"
)

var (
	ErrMissingCustomers = errors.New("backup missing customers array")
	ErrMissingLogs      = errors.New("backup missing delivery logs array")
)

type Snapshot struct {
	Customers    []model.Customer    `json:"customers"`
	DeliveryLogs []model.DeliveryLog `json:"deliveryLogs"`
	PaymentLogs  []model.PaymentLog  `json:"paymentLogs"`
	BackupDate   string              `json:"backupDate"`
}

// Encode marshals the snapshot with the backup timestamp set to now.
func Encode(customers []model.Customer, logs []model.DeliveryLog, payments []model.PaymentLog) ([]byte, error) {
	snap := Snapshot{
		Customers:    customers,
		DeliveryLogs: logs,
		PaymentLogs:  payments,
		BackupDate:   time.Now().UTC().Format(time.RFC3339),
	}
	return json.MarshalIndent(snap, "", "  ")
}

// raw accepts the key aliases older backups used for the two log arrays.
type raw struct {
	Customers    []model.Customer    `json:"customers"`
	DeliveryLogs []model.DeliveryLog `json:"deliveryLogs"`
	Logs         []model.DeliveryLog `json:"logs"`
	PaymentLogs  []model.PaymentLog  `json:"paymentLogs"`
	Payments     []model.PaymentLog  `json:"payments"`
	BackupDate   string              `json:"backupDate"`
}

// Decode parses and validates a backup document. Customers and delivery
// logs are required; a missing payments array defaults to empty rather than
// rejecting the restore.
func Decode(data []byte) (*Snapshot, error) {
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	if r.Customers == nil {
		return nil, ErrMissingCustomers
	}
	logs := r.DeliveryLogs
	if logs == nil {
		logs = r.Logs
	}
	if logs == nil {
		return nil, ErrMissingLogs
	}
	payments := r.PaymentLogs
	if payments == nil {
		payments = r.Payments
	}
	if payments == nil {
		payments = []model.PaymentLog{}
	}
	return &Snapshot{
		Customers:    r.Customers,
		DeliveryLogs: logs,
		PaymentLogs:  payments,
		BackupDate:   r.BackupDate,
	}, nil
}

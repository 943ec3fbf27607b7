package model

import "fmt"

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "Pending"
	DeliveryStatusDelivered DeliveryStatus = "Delivered"
	DeliveryStatusMissed    DeliveryStatus = "Missed"
	DeliveryStatusPaused    DeliveryStatus = "Paused"
)

func ValidDeliveryStatus(s DeliveryStatus) bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusDelivered, DeliveryStatusMissed, DeliveryStatusPaused:
		return true
	}
	return false
}

// DeliveryLog records one (customer, date) delivery. Dates are ISO
// YYYY-MM-DD strings; string comparison gives chronological order.
type DeliveryLog struct {
	ID         string         `json:"id"`
	CustomerID string         `json:"customerId"`
	Date       string         `json:"date"`
	Status     DeliveryStatus `json:"status"`
	Quantity   float64        `json:"quantity"`
	// MilkType overrides the customer default for this delivery when set.
	MilkType  MilkType `json:"milkType,omitempty"`
	Extras    []string `json:"extras"`
	ExtraCost float64  `json:"extraCost"`
}

// DeliveryLogID derives the upsert key: one log per customer per date.
func DeliveryLogID(customerID, date string) string {
	return fmt.Sprintf("%s-%s", customerID, date)
}

package model

// PaymentLog records money received from a customer. Amount is a positive
// credit reducing the customer's due.
type PaymentLog struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customerId"`
	Date       string      `json:"date"`
	Amount     float64     `json:"amount"`
	Mode       PaymentMode `json:"mode"`
}

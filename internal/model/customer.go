package model

type MilkType string

const (
	MilkTypeCow     MilkType = "Cow"
	MilkTypeBuffalo MilkType = "Buffalo"
)

type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "Cash"
	PaymentModeOnline PaymentMode = "Online"
)

type DeliveryShift string

const (
	ShiftMorning DeliveryShift = "Morning"
	ShiftEvening DeliveryShift = "Evening"
)

// Customer is the roster entry. Balance is the opening due recorded
// independent of logged deliveries and payments; positive means the
// customer owes.
type Customer struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Mobile          string               `json:"mobile"`
	Address         string               `json:"address"`
	MilkType        MilkType             `json:"milkType"`
	DefaultQuantity float64              `json:"defaultQuantity"`
	Prices          map[MilkType]float64 `json:"prices"`
	DeliveryTime    DeliveryShift        `json:"deliveryTime"`
	StartDate       string               `json:"startDate"`
	PaymentMode     PaymentMode          `json:"paymentMode"`
	Balance         float64              `json:"balance"`
	IsPaused        bool                 `json:"isPaused"`
}

func ValidMilkType(t MilkType) bool {
	switch t {
	case MilkTypeCow, MilkTypeBuffalo:
		return true
	}
	return false
}

func ValidPaymentMode(m PaymentMode) bool {
	switch m {
	case PaymentModeCash, PaymentModeOnline:
		return true
	}
	return false
}

func ValidDeliveryShift(s DeliveryShift) bool {
	switch s {
	case ShiftMorning, ShiftEvening:
		return true
	}
	return false
}

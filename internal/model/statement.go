package model

type TransactionKind string

const (
	TransactionDebit  TransactionKind = "DEBIT"
	TransactionCredit TransactionKind = "CREDIT"
)

// TransactionRow is one line of a statement: a delivered log (debit) or a
// payment (credit).
type TransactionRow struct {
	Date        string
	Description string
	Rate        float64
	Quantity    float64
	Amount      float64
	Kind        TransactionKind
}

// Statement is the data contract for rendering: the ordered rows plus the
// derived totals. Renderers (PDF, xlsx) draw it but never recompute it.
type Statement struct {
	Customer       Customer
	Title          string
	OpeningBalance float64
	Rows           []TransactionRow
	TotalDebit     float64
	TotalCredit    float64
	TotalLitres    float64
	NetReceivable  float64
}

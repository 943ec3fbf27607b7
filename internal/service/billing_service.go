package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kharjul/milkbook/internal/config"
	"github.com/kharjul/milkbook/internal/ledger"
	"github.com/kharjul/milkbook/internal/model"
	"github.com/kharjul/milkbook/internal/snapshot"
	"github.com/kharjul/milkbook/internal/statement"
	"github.com/kharjul/milkbook/internal/store"
)

// StatementRenderer turns an assembled statement into file bytes.
type StatementRenderer interface {
	Generate(st model.Statement) ([]byte, error)
}

type BillingService struct {
	store *store.Store
	pdf   StatementRenderer
	excel StatementRenderer
	cfg   *config.Config
}

func NewBillingService(st *store.Store, pdf, excel StatementRenderer, cfg *config.Config) *BillingService {
	return &BillingService{store: st, pdf: pdf, excel: excel, cfg: cfg}
}

const dateLayout = "2006-01-02"

func today() string {
	return time.Now().Format(dateLayout)
}

func validDate(raw string) bool {
	_, err := time.Parse(dateLayout, raw)
	return err == nil
}

// finite rejects the NaN/Inf values that would otherwise corrupt every
// total they touch.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// --- Customers ---

type CustomerInput struct {
	ID              string
	Name            string
	Mobile          string
	Address         string
	MilkType        model.MilkType
	DefaultQuantity float64
	Prices          map[model.MilkType]float64
	DeliveryTime    model.DeliveryShift
	StartDate       string
	PaymentMode     model.PaymentMode
	Balance         float64
	IsPaused        bool
}

// SaveCustomer validates and upserts a roster entry. A blank id creates a
// new customer.
func (s *BillingService) SaveCustomer(in CustomerInput) (model.Customer, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Mobile) == "" {
		return model.Customer{}, fmt.Errorf("%w: name and mobile are required", ErrInvalidInput)
	}
	if !model.ValidMilkType(in.MilkType) {
		return model.Customer{}, fmt.Errorf("%w: unknown milk type %q", ErrInvalidInput, in.MilkType)
	}
	if in.DeliveryTime == "" {
		in.DeliveryTime = model.ShiftMorning
	}
	if !model.ValidDeliveryShift(in.DeliveryTime) {
		return model.Customer{}, fmt.Errorf("%w: unknown delivery time %q", ErrInvalidInput, in.DeliveryTime)
	}
	if in.PaymentMode == "" {
		in.PaymentMode = model.PaymentModeCash
	}
	if !model.ValidPaymentMode(in.PaymentMode) {
		return model.Customer{}, fmt.Errorf("%w: unknown payment mode %q", ErrInvalidInput, in.PaymentMode)
	}
	if !finite(in.DefaultQuantity) || in.DefaultQuantity < 0 {
		return model.Customer{}, fmt.Errorf("%w: invalid default quantity", ErrInvalidInput)
	}
	if !finite(in.Balance) {
		return model.Customer{}, fmt.Errorf("%w: invalid opening balance", ErrInvalidInput)
	}
	for milkType, price := range in.Prices {
		if !model.ValidMilkType(milkType) {
			return model.Customer{}, fmt.Errorf("%w: price for unknown milk type %q", ErrInvalidInput, milkType)
		}
		if !finite(price) || price < 0 {
			return model.Customer{}, fmt.Errorf("%w: invalid price for %s", ErrInvalidInput, milkType)
		}
	}
	if in.StartDate == "" {
		in.StartDate = today()
	}
	if !validDate(in.StartDate) {
		return model.Customer{}, fmt.Errorf("%w: invalid start date", ErrInvalidInput)
	}

	c := model.Customer{
		ID:              in.ID,
		Name:            strings.TrimSpace(in.Name),
		Mobile:          strings.TrimSpace(in.Mobile),
		Address:         strings.TrimSpace(in.Address),
		MilkType:        in.MilkType,
		DefaultQuantity: in.DefaultQuantity,
		Prices:          in.Prices,
		DeliveryTime:    in.DeliveryTime,
		StartDate:       in.StartDate,
		PaymentMode:     in.PaymentMode,
		Balance:         in.Balance,
		IsPaused:        in.IsPaused,
	}
	if c.Prices == nil {
		c.Prices = map[model.MilkType]float64{}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	} else if _, ok := s.store.Customer(c.ID); !ok {
		return model.Customer{}, ErrNotFound
	}
	s.store.UpsertCustomer(c)
	return c, nil
}

func (s *BillingService) Customers() []model.Customer {
	return s.store.Customers()
}

func (s *BillingService) Customer(id string) (model.Customer, error) {
	c, ok := s.store.Customer(id)
	if !ok {
		return model.Customer{}, ErrNotFound
	}
	return c, nil
}

// DeleteCustomer removes the roster entry only. Existing delivery and
// payment logs stay behind as orphans; that is the recorded behavior, not
// an oversight.
func (s *BillingService) DeleteCustomer(id string) error {
	if !s.store.DeleteCustomer(id) {
		return ErrNotFound
	}
	return nil
}

// --- Deliveries ---

type DeliveryInput struct {
	CustomerID string
	Date       string
	Status     model.DeliveryStatus
	// Quantity < 0 means "keep the existing log's quantity, else the
	// customer default".
	Quantity float64
	MilkType model.MilkType
}

// RecordDelivery upserts the (customer, date) log. A date with no log is
// implicitly Pending; recording makes the status explicit.
func (s *BillingService) RecordDelivery(in DeliveryInput) (model.DeliveryLog, error) {
	customer, ok := s.store.Customer(in.CustomerID)
	if !ok {
		return model.DeliveryLog{}, ErrNotFound
	}
	if !validDate(in.Date) {
		return model.DeliveryLog{}, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}
	if !model.ValidDeliveryStatus(in.Status) {
		return model.DeliveryLog{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}
	if in.MilkType != "" && !model.ValidMilkType(in.MilkType) {
		return model.DeliveryLog{}, fmt.Errorf("%w: unknown milk type %q", ErrInvalidInput, in.MilkType)
	}
	if !finite(in.Quantity) {
		return model.DeliveryLog{}, fmt.Errorf("%w: invalid quantity", ErrInvalidInput)
	}

	existing, hasExisting := s.store.DeliveryLog(in.CustomerID, in.Date)

	quantity := in.Quantity
	if quantity < 0 {
		if hasExisting {
			quantity = existing.Quantity
		} else {
			quantity = customer.DefaultQuantity
		}
	}
	milkType := in.MilkType
	if milkType == "" {
		if hasExisting && existing.MilkType != "" {
			milkType = existing.MilkType
		} else {
			milkType = customer.MilkType
		}
	}

	log := model.DeliveryLog{
		CustomerID: in.CustomerID,
		Date:       in.Date,
		Status:     in.Status,
		Quantity:   quantity,
		MilkType:   milkType,
	}
	if hasExisting {
		log.Extras = existing.Extras
		log.ExtraCost = existing.ExtraCost
	}
	return s.store.UpsertDeliveryLog(log), nil
}

// DeliveryLogs lists logs, optionally filtered by date and/or customer.
func (s *BillingService) DeliveryLogs(date, customerID string) []model.DeliveryLog {
	logs := s.store.DeliveryLogs()
	out := logs[:0:0]
	for _, log := range logs {
		if date != "" && log.Date != date {
			continue
		}
		if customerID != "" && log.CustomerID != customerID {
			continue
		}
		out = append(out, log)
	}
	return out
}

// --- Payments ---

type PaymentInput struct {
	CustomerID string
	Date       string
	Amount     float64
	Mode       model.PaymentMode
}

// RecordPayment appends a receipt and decrements the customer's balance in
// one store transaction.
func (s *BillingService) RecordPayment(in PaymentInput) (model.PaymentLog, error) {
	if !finite(in.Amount) || in.Amount <= 0 {
		return model.PaymentLog{}, fmt.Errorf("%w: amount must be a positive number", ErrInvalidInput)
	}
	if in.Date == "" {
		in.Date = today()
	}
	if !validDate(in.Date) {
		return model.PaymentLog{}, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}
	if in.Mode == "" {
		in.Mode = model.PaymentModeCash
	}
	if !model.ValidPaymentMode(in.Mode) {
		return model.PaymentLog{}, fmt.Errorf("%w: unknown payment mode %q", ErrInvalidInput, in.Mode)
	}

	p := model.PaymentLog{
		ID:         "pay-" + uuid.NewString(),
		CustomerID: in.CustomerID,
		Date:       in.Date,
		Amount:     in.Amount,
		Mode:       in.Mode,
	}
	if err := s.store.ApplyPayment(p); err != nil {
		return model.PaymentLog{}, ErrNotFound
	}
	return p, nil
}

func (s *BillingService) Payments(customerID string) []model.PaymentLog {
	payments := s.store.Payments()
	if customerID == "" {
		return payments
	}
	out := payments[:0:0]
	for _, p := range payments {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out
}

// --- Balances ---

// NetBalance reports what the customer currently owes. ApplyPayment folds
// every payment into the stored balance, so the live figure is balance plus
// all-time billing; subtracting payments again would double-count them.
// This equals ledger.NetBalance over the opening balance.
func (s *BillingService) NetBalance(customerID string) (float64, error) {
	customer, ok := s.store.Customer(customerID)
	if !ok {
		return 0, ErrNotFound
	}
	billed, _ := ledger.BilledAmount(customer, s.store.DeliveryLogs(), ledger.Range{})
	return customer.Balance + billed, nil
}

// --- Statements ---

type StatementFormat string

const (
	FormatPDF  StatementFormat = "pdf"
	FormatXLSX StatementFormat = "xlsx"
)

type StatementInput struct {
	CustomerID string
	Format     StatementFormat
	// Start and End bound the statement; both empty means all time.
	Start string
	End   string
}

type StatementResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

// GenerateStatement assembles and renders a statement. With no range it is
// the all-time statement; with a range it is a bill for that window with
// the opening balance reconstructed as of the start date.
func (s *BillingService) GenerateStatement(in StatementInput) (*StatementResult, error) {
	customer, ok := s.store.Customer(in.CustomerID)
	if !ok {
		return nil, ErrNotFound
	}

	renderer := s.pdf
	ext := "pdf"
	contentType := "application/pdf"
	switch in.Format {
	case FormatPDF, "":
	case FormatXLSX:
		renderer = s.excel
		ext = "xlsx"
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidInput, in.Format)
	}

	logs := s.store.DeliveryLogs()
	payments := s.store.Payments()

	var st model.Statement
	if in.Start == "" && in.End == "" {
		opening := ledger.AllTimeOpeningBalance(customer, payments)
		st = statement.Build(customer, logs, payments, "Statement", opening)
	} else {
		if !validDate(in.Start) || !validDate(in.End) {
			return nil, fmt.Errorf("%w: invalid statement range", ErrInvalidInput)
		}
		if in.Start > in.End {
			return nil, fmt.Errorf("%w: start must not be after end", ErrInvalidInput)
		}
		r := ledger.Range{Start: in.Start, End: in.End}
		rangedLogs := filterLogs(logs, customer.ID, r)
		rangedPayments := filterPayments(payments, customer.ID, r)
		if len(rangedLogs) == 0 && len(rangedPayments) == 0 {
			return nil, ErrNoTransactions
		}
		opening := ledger.OpeningBalanceForRange(customer, logs, payments, in.Start)
		title := fmt.Sprintf("Bill: %s - %s", in.Start, in.End)
		st = statement.Build(customer, rangedLogs, rangedPayments, title, opening)
	}

	content, err := renderer.Generate(st)
	if err != nil {
		return nil, err
	}
	return &StatementResult{
		FileName:    s.buildFileName(customer, in, ext),
		ContentType: contentType,
		Content:     content,
	}, nil
}

func filterLogs(logs []model.DeliveryLog, customerID string, r ledger.Range) []model.DeliveryLog {
	out := make([]model.DeliveryLog, 0, len(logs))
	for _, log := range logs {
		if log.CustomerID != customerID || log.Status != model.DeliveryStatusDelivered {
			continue
		}
		if log.Date < r.Start || log.Date > r.End {
			continue
		}
		out = append(out, log)
	}
	return out
}

func filterPayments(payments []model.PaymentLog, customerID string, r ledger.Range) []model.PaymentLog {
	out := make([]model.PaymentLog, 0, len(payments))
	for _, p := range payments {
		if p.CustomerID != customerID {
			continue
		}
		if p.Date < r.Start || p.Date > r.End {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *BillingService) buildFileName(customer model.Customer, in StatementInput, ext string) string {
	name := sanitizeFileName(customer.Name)
	if name == "" {
		name = customer.ID
	}
	if in.Start != "" || in.End != "" {
		return fmt.Sprintf("bill-%s-%s-%s.%s", name,
			strings.ReplaceAll(in.Start, "-", ""), strings.ReplaceAll(in.End, "-", ""), ext)
	}
	return fmt.Sprintf("statement-%s.%s", name, ext)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}

// --- Dashboard ---

type DashboardSummary struct {
	TotalCustomers   int     `json:"totalCustomers"`
	InactiveCount    int     `json:"inactiveCount"`
	PendingDue       float64 `json:"pendingDue"`
	DeliveredToday   int     `json:"deliveredToday"`
	TodayDate        string  `json:"todayDate"`
	TotalLitresToday float64 `json:"totalLitresToday"`
}

// Dashboard aggregates the landing-screen numbers. PendingDue is the sum of
// every customer's net balance with payments already folded into Balance,
// i.e. balance + all-time billed.
func (s *BillingService) Dashboard() DashboardSummary {
	customers := s.store.Customers()
	logs := s.store.DeliveryLogs()
	todayStr := today()

	summary := DashboardSummary{
		TotalCustomers: len(customers),
		TodayDate:      todayStr,
	}
	for _, c := range customers {
		if c.IsPaused {
			summary.InactiveCount++
		}
		billed, _ := ledger.BilledAmount(c, logs, ledger.Range{})
		summary.PendingDue += c.Balance + billed
	}
	for _, log := range logs {
		if log.Date == todayStr && log.Status == model.DeliveryStatusDelivered {
			summary.DeliveredToday++
			summary.TotalLitresToday += log.Quantity
		}
	}
	return summary
}

// --- Backup / Restore ---

func (s *BillingService) Backup() ([]byte, string, error) {
	data, err := snapshot.Encode(s.store.Customers(), s.store.DeliveryLogs(), s.store.Payments())
	if err != nil {
		return nil, "", err
	}
	fileName := fmt.Sprintf("milk_daily_backup_%s.json", today())
	return data, fileName, nil
}

// Restore replaces all collections with a validated snapshot. On any
// validation failure the current state is untouched.
func (s *BillingService) Restore(data []byte) error {
	snap, err := snapshot.Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	s.store.Replace(snap.Customers, snap.DeliveryLogs, snap.PaymentLogs)
	return nil
}

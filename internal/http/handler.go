package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kharjul/milkbook/internal/auth"
	"github.com/kharjul/milkbook/internal/model"
	"github.com/kharjul/milkbook/internal/service"
)

type Handler struct {
	billing *service.BillingService
	tokens  *auth.Manager
	pin     string
	log     zerolog.Logger
}

func NewHandler(billing *service.BillingService, tokens *auth.Manager, pin string, log zerolog.Logger) *Handler {
	return &Handler{billing: billing, tokens: tokens, pin: pin, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.POST("/auth/login", h.login)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/customers", h.listCustomers)
	protected.POST("/customers", h.createCustomer)
	protected.GET("/customers/:id", h.getCustomer)
	protected.PUT("/customers/:id", h.updateCustomer)
	protected.DELETE("/customers/:id", h.deleteCustomer)
	protected.GET("/customers/:id/balance", h.customerBalance)
	protected.GET("/customers/:id/statement", h.customerStatement)

	protected.GET("/deliveries", h.listDeliveries)
	protected.PUT("/deliveries", h.upsertDelivery)

	protected.GET("/payments", h.listPayments)
	protected.POST("/payments", h.createPayment)

	protected.GET("/dashboard", h.dashboard)
	protected.GET("/backup", h.backup)
	protected.POST("/restore", h.restore)
}

// --- Auth ---

type loginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PIN != h.pin {
		h.handleError(c, service.ErrInvalidPIN)
		return
	}
	token, err := h.tokens.Issue(time.Now())
	if err != nil {
		h.log.Error().Err(err).Msg("issue token failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// --- Customers ---

type customerRequest struct {
	Name            string             `json:"name" binding:"required"`
	Mobile          string             `json:"mobile" binding:"required"`
	Address         string             `json:"address"`
	MilkType        string             `json:"milkType" binding:"required"`
	DefaultQuantity float64            `json:"defaultQuantity"`
	Prices          map[string]float64 `json:"prices"`
	DeliveryTime    string             `json:"deliveryTime"`
	StartDate       string             `json:"startDate"`
	PaymentMode     string             `json:"paymentMode"`
	Balance         float64            `json:"balance"`
	IsPaused        bool               `json:"isPaused"`
}

func (req customerRequest) toInput(id string) service.CustomerInput {
	prices := make(map[model.MilkType]float64, len(req.Prices))
	for milkType, price := range req.Prices {
		prices[model.MilkType(milkType)] = price
	}
	return service.CustomerInput{
		ID:              id,
		Name:            req.Name,
		Mobile:          req.Mobile,
		Address:         req.Address,
		MilkType:        model.MilkType(req.MilkType),
		DefaultQuantity: req.DefaultQuantity,
		Prices:          prices,
		DeliveryTime:    model.DeliveryShift(req.DeliveryTime),
		StartDate:       req.StartDate,
		PaymentMode:     model.PaymentMode(req.PaymentMode),
		Balance:         req.Balance,
		IsPaused:        req.IsPaused,
	}
}

func (h *Handler) listCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, h.billing.Customers())
}

func (h *Handler) getCustomer(c *gin.Context) {
	customer, err := h.billing.Customer(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) createCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	customer, err := h.billing.SaveCustomer(req.toInput(""))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) updateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	customer, err := h.billing.SaveCustomer(req.toInput(c.Param("id")))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) deleteCustomer(c *gin.Context) {
	if err := h.billing.DeleteCustomer(c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) customerBalance(c *gin.Context) {
	balance, err := h.billing.NetBalance(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"netBalance": balance})
}

// --- Deliveries ---

type deliveryRequest struct {
	CustomerID string   `json:"customerId" binding:"required"`
	Date       string   `json:"date" binding:"required"`
	Status     string   `json:"status" binding:"required"`
	Quantity   *float64 `json:"quantity"`
	MilkType   string   `json:"milkType"`
}

func (h *Handler) upsertDelivery(c *gin.Context) {
	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quantity := -1.0 // keep existing / default
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must not be negative"})
			return
		}
		quantity = *req.Quantity
	}
	log, err := h.billing.RecordDelivery(service.DeliveryInput{
		CustomerID: req.CustomerID,
		Date:       req.Date,
		Status:     model.DeliveryStatus(req.Status),
		Quantity:   quantity,
		MilkType:   model.MilkType(req.MilkType),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *Handler) listDeliveries(c *gin.Context) {
	c.JSON(http.StatusOK, h.billing.DeliveryLogs(c.Query("date"), c.Query("customerId")))
}

// --- Payments ---

type paymentRequest struct {
	CustomerID string  `json:"customerId" binding:"required"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount" binding:"required"`
	Mode       string  `json:"mode"`
}

func (h *Handler) createPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payment, err := h.billing.RecordPayment(service.PaymentInput{
		CustomerID: req.CustomerID,
		Date:       req.Date,
		Amount:     req.Amount,
		Mode:       model.PaymentMode(req.Mode),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *Handler) listPayments(c *gin.Context) {
	c.JSON(http.StatusOK, h.billing.Payments(c.Query("customerId")))
}

// --- Statements ---

func (h *Handler) customerStatement(c *gin.Context) {
	result, err := h.billing.GenerateStatement(service.StatementInput{
		CustomerID: c.Param("id"),
		Format:     service.StatementFormat(c.DefaultQuery("format", "pdf")),
		Start:      c.Query("start"),
		End:        c.Query("end"),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// --- Dashboard / Backup ---

func (h *Handler) dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.billing.Dashboard())
}

func (h *Handler) backup(c *gin.Context) {
	data, fileName, err := h.billing.Backup()
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, "application/json", data)
}

func (h *Handler) restore(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read body"})
		return
	}
	if err := h.billing.Restore(data); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "restored"})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBadSnapshot):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidPIN):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoTransactions):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

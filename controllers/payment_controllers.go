package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plateful/pos-backend/apperrors"
	"github.com/plateful/pos-backend/services"
	"github.com/plateful/pos-backend/utils"
)

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{Payments: services.NewPaymentService(db, utils.ErrorLogger)}
}

// RecordPayment -> POST /orders/:order_id/payments
func (pc *PaymentController) RecordPayment(c *gin.Context) {
	orderID, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var body struct {
		Amount   decimal.Decimal  `json:"amount" binding:"required"`
		Method   string           `json:"method" binding:"required"`
		Tendered *decimal.Decimal `json:"tendered"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperrors.Validationf("invalid request body: %v", err))
		return
	}

	order, status, err := pc.Payments.RecordPayment(orderID, body.Amount, body.Method, body.Tendered)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Payment recorded", orderPayload(order, status))
}

// RecordRefund -> POST /orders/:order_id/refunds
func (pc *PaymentController) RecordRefund(c *gin.Context) {
	orderID, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var body struct {
		Amount decimal.Decimal `json:"amount" binding:"required"`
		Reason string          `json:"reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperrors.Validationf("invalid request body: %v", err))
		return
	}

	order, status, err := pc.Payments.RecordRefund(orderID, body.Amount, body.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Refund recorded", orderPayload(order, status))
}

// GetPaymentStatus -> GET /orders/:order_id/payment-status
func (pc *PaymentController) GetPaymentStatus(c *gin.Context) {
	orderID, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	status, err := pc.Payments.Status(orderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment status", status)
}

// ListPayments -> GET /orders/:order_id/payments
func (pc *PaymentController) ListPayments(c *gin.Context) {
	orderID, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	payments, refunds, err := pc.Payments.List(orderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment history", gin.H{
		"payments": payments,
		"refunds":  refunds,
	})
}

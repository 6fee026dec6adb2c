package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plateful/pos-backend/apperrors"
	"github.com/plateful/pos-backend/kds"
	"github.com/plateful/pos-backend/middlewares"
	"github.com/plateful/pos-backend/models"
	"github.com/plateful/pos-backend/services"
	"github.com/plateful/pos-backend/utils"
)

type OrderController struct {
	Checkout  *services.CheckoutService
	QuickSale *services.QuickSaleService
	Orders    *services.OrderService
	Discounts *services.DiscountService
}

func NewOrderController(db *gorm.DB, hub *kds.Hub) *OrderController {
	return &OrderController{
		Checkout:  services.NewCheckoutService(db, hub, utils.ErrorLogger),
		QuickSale: services.NewQuickSaleService(db, hub, utils.ErrorLogger),
		Orders:    services.NewOrderService(db, hub, utils.ErrorLogger),
		Discounts: services.NewDiscountService(db, utils.ErrorLogger),
	}
}

// orderPayload is the standard response shape: the order plus its
// freshly reconciled payment status.
func orderPayload(order *models.Order, status services.PaymentStatus) gin.H {
	return gin.H{"order": order, "payment_status": status}
}

// CheckoutOrder -> POST /sessions/:session_id/checkout
func (oc *OrderController) CheckoutOrder(c *gin.Context) {
	sessionID, err := paramUint(c, "session_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var body struct {
		OrderType         string `json:"order_type" binding:"required"`
		TableNameOverride string `json:"table_name"`
		SessionToken      string `json:"session_token"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperrors.Validationf("invalid request body: %v", err))
		return
	}

	order, status, err := oc.Checkout.Checkout(services.CheckoutInput{
		SessionID:         sessionID,
		OrderType:         body.OrderType,
		TableNameOverride: body.TableNameOverride,
		SessionToken:      body.SessionToken,
		ActorID:           middlewares.ActorID(c),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", orderPayload(order, status))
}

// QuickCheckout -> POST /stores/:store_id/quick-checkout
func (oc *OrderController) QuickCheckout(c *gin.Context) {
	storeID, err := paramUint(c, "store_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var body struct {
		SessionType   string                   `json:"session_type" binding:"required"`
		OrderType     string                   `json:"order_type" binding:"required"`
		CustomerName  string                   `json:"customer_name"`
		CustomerPhone string                   `json:"customer_phone"`
		Items         []services.QuickSaleItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperrors.Validationf("invalid request body: %v", err))
		return
	}

	order, status, err := oc.QuickSale.QuickCheckout(services.QuickSaleInput{
		StoreID:       storeID,
		SessionType:   body.SessionType,
		OrderType:     body.OrderType,
		ActorID:       middlewares.ActorID(c),
		CustomerName:  body.CustomerName,
		CustomerPhone: body.CustomerPhone,
		Items:         body.Items,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", orderPayload(order, status))
}

// GetOrder -> GET /orders/:order_id
func (oc *OrderController) GetOrder(c *gin.Context) {
	orderID, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	order, status, err := oc.Orders.Get(orderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", orderPayload(order, status))
}

// ListOrders -> GET /stores/:store_id/orders?page=
func (oc *OrderController) ListOrders(c *gin.Context) {
	storeID, err := paramUint(c, "store_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := oc.Orders.List(storeID, page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", result)
}

// ListKitchenOrders -> GET /stores/:store_id/kitchen/orders?status=&page=
func (oc *OrderController) ListKitchenOrders(c *gin.Context) {
	storeID, err := paramUint(c, "store_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	statusFilter := models.OrderStatus(c.Query("status"))

	result, err := oc.Orders.ListKitchen(storeID, statusFilter, page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen orders", result)
}

// UpdateOrderStatus -> PATCH /orders/:order_id/status
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var body struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperrors.Validationf("invalid request body: %v", err))
		return
	}

	order, status, err := oc.Orders.UpdateStatus(orderID, body.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", orderPayload(order, status))
}

// ApplyDiscount -> POST /stores/:store_id/orders/:order_id/discount
func (oc *OrderController) ApplyDiscount(c *gin.Context) {
	storeID, err := paramUint(c, "store_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	orderID, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var body struct {
		Type   string          `json:"type" binding:"required"`
		Value  decimal.Decimal `json:"value" binding:"required"`
		Reason string          `json:"reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperrors.Validationf("invalid request body: %v", err))
		return
	}

	order, status, err := oc.Discounts.Apply(middlewares.ActorID(c), storeID, orderID, body.Type, body.Value, body.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Discount applied", orderPayload(order, status))
}

// RemoveDiscount -> DELETE /stores/:store_id/orders/:order_id/discount
func (oc *OrderController) RemoveDiscount(c *gin.Context) {
	storeID, err := paramUint(c, "store_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	orderID, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	order, status, err := oc.Discounts.Remove(middlewares.ActorID(c), storeID, orderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Discount removed", orderPayload(order, status))
}

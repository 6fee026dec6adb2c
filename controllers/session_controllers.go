package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/plateful/pos-backend/apperrors"
	"github.com/plateful/pos-backend/services"
	"github.com/plateful/pos-backend/utils"
)

type SessionController struct {
	Sessions *services.SessionService
	Carts    *services.CartService
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{
		Sessions: services.NewSessionService(db),
		Carts:    services.NewCartService(db),
	}
}

// OpenSession -> POST /stores/:store_id/sessions
func (sc *SessionController) OpenSession(c *gin.Context) {
	storeID, err := paramUint(c, "store_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var body struct {
		Type          string `json:"type" binding:"required"`
		TableID       *uint  `json:"table_id"`
		CustomerName  string `json:"customer_name"`
		CustomerPhone string `json:"customer_phone"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperrors.Validationf("invalid request body: %v", err))
		return
	}

	session, err := sc.Sessions.Open(storeID, body.Type, body.TableID, body.CustomerName, body.CustomerPhone)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	// The token is returned once at creation; the model hides it from
	// every other response.
	utils.RespondJSON(c, http.StatusCreated, "Session opened", gin.H{
		"session":       session,
		"session_token": session.SessionToken,
	})
}

// GetSession -> GET /sessions/:session_id
func (sc *SessionController) GetSession(c *gin.Context) {
	sessionID, err := paramUint(c, "session_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	session, err := sc.Sessions.Get(sessionID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session detail", session)
}

// CloseSession -> POST /sessions/:session_id/close
func (sc *SessionController) CloseSession(c *gin.Context) {
	sessionID, err := paramUint(c, "session_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	session, err := sc.Sessions.Close(sessionID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session closed", session)
}

// AddCartItem -> POST /sessions/:session_id/cart/items
func (sc *SessionController) AddCartItem(c *gin.Context) {
	sessionID, err := paramUint(c, "session_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var body struct {
		SessionToken string `json:"session_token" binding:"required"`
		MenuItemID   uint   `json:"menu_item_id" binding:"required"`
		Quantity     int    `json:"quantity" binding:"required"`
		Notes        string `json:"notes"`
		OptionIDs    []uint `json:"option_ids"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperrors.Validationf("invalid request body: %v", err))
		return
	}

	cart, err := sc.Carts.AddItem(sessionID, body.SessionToken, body.MenuItemID, body.Quantity, body.Notes, body.OptionIDs)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item added to cart", cart)
}

// GetCart -> GET /sessions/:session_id/cart
func (sc *SessionController) GetCart(c *gin.Context) {
	sessionID, err := paramUint(c, "session_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	cart, err := sc.Carts.Get(sessionID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart detail", cart)
}

package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/plateful/pos-backend/controllers"
	"github.com/plateful/pos-backend/kds"
	"github.com/plateful/pos-backend/middlewares"
)

func SetupRouter(db *gorm.DB, hub *kds.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Global middleware must be attached before any route registers, gin
	// freezes each handler chain at registration time.
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	userCtrl := controllers.NewUserController(db)
	sessionCtrl := controllers.NewSessionController(db)
	orderCtrl := controllers.NewOrderController(db, hub)
	paymentCtrl := controllers.NewPaymentController(db)
	kdsCtrl := controllers.NewKDSController(db, hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/auth")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Customer-facing session and cart flow. The session token handed out
	// at open acts as the credential for everything below.
	r.POST("/stores/:store_id/sessions", sessionCtrl.OpenSession)
	r.GET("/sessions/:session_id", sessionCtrl.GetSession)
	r.POST("/sessions/:session_id/cart/items", sessionCtrl.AddCartItem)
	r.GET("/sessions/:session_id/cart", sessionCtrl.GetCart)

	// Checkout accepts a session token or a staff bearer token.
	checkout := r.Group("/")
	checkout.Use(middlewares.OptionalAuthMiddleware())
	{
		checkout.POST("/sessions/:session_id/checkout", orderCtrl.CheckoutOrder)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/sessions/:session_id/close", sessionCtrl.CloseSession)

		auth.POST("/stores/:store_id/quick-checkout", orderCtrl.QuickCheckout)
		auth.GET("/stores/:store_id/orders", orderCtrl.ListOrders)
		auth.GET("/stores/:store_id/kitchen/orders", orderCtrl.ListKitchenOrders)
		auth.POST("/stores/:store_id/orders/:order_id/discount", orderCtrl.ApplyDiscount)
		auth.DELETE("/stores/:store_id/orders/:order_id/discount", orderCtrl.RemoveDiscount)

		auth.GET("/orders/:order_id", orderCtrl.GetOrder)
		auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)

		auth.POST("/orders/:order_id/payments", paymentCtrl.RecordPayment)
		auth.GET("/orders/:order_id/payments", paymentCtrl.ListPayments)
		auth.POST("/orders/:order_id/refunds", paymentCtrl.RecordRefund)
		auth.GET("/orders/:order_id/payment-status", paymentCtrl.GetPaymentStatus)

		auth.GET("/ws/kds/:store_id", kdsCtrl.Stream)
	}

	return r
}

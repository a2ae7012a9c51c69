package routes

import (
	coreport "github.com/guineapay/djomy-bridge/internal/domain/port/core"
	"github.com/guineapay/djomy-bridge/internal/infrastructure/adapter/api/handler"
	"github.com/guineapay/djomy-bridge/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// Paths the provider is configured to call back on. They feed the return and
// cancel URLs sent with every payment creation, so changing them breaks
// in-flight checkouts.
const (
	ReturnPath  = "/payment/djomy/return"
	CancelPath  = "/payment/djomy/cancel"
	WebhookPath = "/payment/djomy/webhook"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	paymentHandler *handler.PaymentHandler,
	posHandler *handler.PosHandler,
	transactionHandler *handler.TransactionHandler,
) {
	// Hosted payment flow
	paymentRoutes := router.Group("/payment/djomy")
	{
		paymentRoutes.POST("/process", paymentHandler.Process)
		paymentRoutes.GET("/return", paymentHandler.Return)
		paymentRoutes.GET("/cancel", paymentHandler.Cancel)
		paymentRoutes.GET("/webhook", paymentHandler.WebhookHealth)
		paymentRoutes.POST("/webhook", paymentHandler.Webhook)
	}

	// Point-of-sale flow
	posRoutes := router.Group("/pos/djomy")
	{
		posRoutes.POST("/payment", posHandler.CreatePayment)
		posRoutes.POST("/link", posHandler.CreateLink)
		posRoutes.GET("/payment/:transactionId/status", posHandler.PaymentStatus)
		posRoutes.GET("/link/:reference/status", posHandler.LinkStatus)
	}

	// Host platform transaction API
	transactionRoutes := router.Group("/transactions")
	{
		transactionRoutes.POST("", transactionHandler.Create)
		transactionRoutes.GET("/:reference", transactionHandler.Get)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}

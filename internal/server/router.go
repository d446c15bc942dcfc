package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every API route. All simulation routes sit behind the
// JWT middleware; /health and /api/v1/login stay open.
func NewRouter(svc *RateioService, jwtSecret []byte) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/login", svc.HandleLogin)

		protected := apiV1.Group("/")
		protected.Use(AuthMiddleware(jwtSecret))
		{
			protected.POST("/sessions", svc.HandleCreateSession)
			protected.GET("/sessions/:id", svc.HandleGetSession)
			protected.DELETE("/sessions/:id", svc.HandleDeleteSession)
			protected.POST("/sessions/:id/reset", svc.HandleResetSession)

			protected.POST("/sessions/:id/extract", svc.HandleExtract)
			protected.DELETE("/sessions/:id/record", svc.HandleClearRecord)

			protected.PUT("/sessions/:id/gross", svc.HandleSetGross)
			protected.POST("/sessions/:id/discounts", svc.HandleAddDiscount)
			protected.PUT("/sessions/:id/discounts/:itemID", svc.HandleUpdateDiscount)
			protected.DELETE("/sessions/:id/discounts/:itemID", svc.HandleDeleteDiscount)
			protected.POST("/sessions/:id/debits", svc.HandleAddDebit)
			protected.PUT("/sessions/:id/debits/:itemID", svc.HandleUpdateDebit)
			protected.DELETE("/sessions/:id/debits/:itemID", svc.HandleDeleteDebit)

			protected.POST("/sessions/:id/deposits", svc.HandleAddDeposit)
			protected.PUT("/sessions/:id/deposits/:depositID", svc.HandleUpdateDeposit)
			protected.DELETE("/sessions/:id/deposits/:depositID", svc.HandleDeleteDeposit)

			protected.PUT("/sessions/:id/fee-config", svc.HandleSetFeeConfig)
			protected.PUT("/sessions/:id/items/:itemID/selection", svc.HandleSetItemSelection)
			protected.PUT("/sessions/:id/items/:itemID/description", svc.HandleSetItemDescription)
			protected.PUT("/sessions/:id/result/:itemID/paid", svc.HandleOverridePaid)
			protected.PUT("/sessions/:id/fee-share", svc.HandleSetFeeShare)
			protected.PUT("/sessions/:id/view", svc.HandleSetView)

			protected.GET("/sessions/:id/export", svc.HandleExport)
		}
	}

	return router
}

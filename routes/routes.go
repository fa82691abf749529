package routes

import (
	"github.com/cb023725/pos-project/configs"
	"github.com/cb023725/pos-project/controllers"
	"github.com/cb023725/pos-project/middlewares"
	"github.com/cb023725/pos-project/repository"
	"github.com/cb023725/pos-project/services"
	"github.com/cb023725/pos-project/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	tableRepo := repository.NewTableRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	orderSvc := services.NewOrderService(db, orderRepo, menuRepo, tableRepo)
	orderSvc.Printer = services.NewPrinterService(cfg.PrinterAddr, cfg.PrinterTimeout)
	reportSvc := services.NewReportService(orderRepo)

	// Table feed: every committed lifecycle transaction pushes the floor plan
	hub := ws.NewTableHub(tableRepo)
	go hub.Run()
	orderSvc.OnCommit = hub.NotifyTablesChanged

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, userRepo)
	menuCtrl := controllers.NewMenuController(menuRepo)
	orderCtrl := controllers.NewOrderController(orderSvc)
	tableCtrl := controllers.NewTableController(orderSvc, tableRepo, cfg.Tables)
	reportCtrl := controllers.NewReportController(reportSvc)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/login", authCtrl.Login)
	}
	aAuth := a.Group("", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.POST("/staff", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"), authCtrl.CreateStaff)
	}

	// Till (staff or admin)
	till := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		till.GET("/menu", menuCtrl.List)
		till.GET("/inventory", menuCtrl.Inventory)

		till.POST("/orders/save", orderCtrl.Save)
		till.POST("/orders/send", orderCtrl.Send)
		till.GET("/orders/active", orderCtrl.Active)
		till.GET("/orders/report", orderCtrl.Report)
		till.GET("/orders/:id", orderCtrl.Detail)
		till.POST("/orders/:id/checkout/preview", orderCtrl.CheckoutPreview)
		till.POST("/orders/:id/checkout", orderCtrl.Checkout)

		till.GET("/tables", tableCtrl.List)
		till.GET("/tables/:id/order", tableCtrl.Order)
		till.POST("/tables/:id/reserve", tableCtrl.Reserve)
		till.POST("/tables/:id/reset", tableCtrl.Reset)
		till.POST("/tables/:id/force-clear", tableCtrl.ForceClear)
	}

	// Menu management (admin only)
	manage := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		manage.POST("/menu", menuCtrl.Create)
		manage.PATCH("/menu/:id", menuCtrl.Update)
		manage.DELETE("/menu/:id", menuCtrl.Delete)

		manage.GET("/reports/summary", reportCtrl.Summary)
		manage.GET("/reports/rankings", reportCtrl.Rankings)
	}

	// Live table overview
	r.GET("/ws/tables", hub.HandleWebSocket)
}

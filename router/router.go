package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-orders/controllers"
	"github.com/yeremiapane/restaurant-orders/kds"
	"github.com/yeremiapane/restaurant-orders/middlewares"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/utils"
)

const defaultCORSOrigin = "http://127.0.0.1:5500"

// Options wires the router. A nil App is created and initialised over Store.
type Options struct {
	Store      *services.Store
	App        *services.AppState
	Hub        *kds.Hub
	CORSOrigin string
}

func SetupRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	origin := opts.CORSOrigin
	if origin == "" {
		origin = defaultCORSOrigin
	}
	hub := opts.Hub
	if hub == nil {
		hub = kds.NewHub()
	}
	store := opts.Store
	app := opts.App
	if app == nil {
		app = services.NewAppState(store)
		if err := app.Init(context.Background()); err != nil {
			utils.ErrorLogger.Printf("Error initialising session state: %v", err)
		}
	}

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(origin))
	r.Use(middlewares.LoggerMiddleware())

	authCtrl := controllers.NewAuthController(app)
	cartCtrl := controllers.NewCartController(app)
	menuCtrl := controllers.NewMenuController(store)
	tableCtrl := controllers.NewTableController(store)
	waiterCtrl := controllers.NewWaiterController(store)
	orderCtrl := controllers.NewOrderController(store)
	reservationCtrl := controllers.NewReservationController(store)
	adminCtrl := controllers.NewAdminController(store)
	kdsCtrl := controllers.NewKDSController(hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", authCtrl.Login)
	}
	r.GET("/session", authCtrl.Session)

	r.GET("/kds/ws", middlewares.WebSocketAuthMiddleware(store), kdsCtrl.KDSHandler)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware(store))
	{
		auth.POST("/logout", authCtrl.Logout)

		auth.GET("/menu-items", menuCtrl.GetMenuItems)
		auth.GET("/menu-items/:id", menuCtrl.GetMenuItem)
		auth.GET("/categories", menuCtrl.GetCategories)

		auth.GET("/tables", tableCtrl.GetAllTables)
		auth.GET("/tables/stats", tableCtrl.GetTableStats)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.PUT("/cart/table", cartCtrl.SelectTable)
		auth.POST("/cart/items", cartCtrl.AddItem)
		auth.PATCH("/cart/items/:id", cartCtrl.UpdateItem)
		auth.DELETE("/cart", cartCtrl.ClearCart)
		auth.POST("/cart/submit", cartCtrl.SubmitCart)

		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.GetAllOrders)
		auth.GET("/orders/:id", orderCtrl.GetOrderDetail)

		auth.GET("/kitchen/orders", orderCtrl.GetKitchenOrders)
		auth.PATCH("/kitchen/orders/:id/status", orderCtrl.UpdateOrderStatus)
		auth.POST("/kitchen/orders/:id/advance", orderCtrl.AdvanceOrder)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(store), middlewares.RoleCheck(models.RoleAdmin), middlewares.AuditLogger())
	{
		admin.GET("/dashboard", adminCtrl.GetDashboardStats)
		admin.GET("/reports/sales", adminCtrl.GetSalesReport)

		admin.POST("/menu-items", menuCtrl.CreateMenuItem)
		admin.PUT("/menu-items/:id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu-items/:id", menuCtrl.DeleteMenuItem)

		admin.POST("/tables", tableCtrl.CreateTable)
		admin.PATCH("/tables/:id/status", tableCtrl.UpdateTableStatus)
		admin.DELETE("/tables/:id", tableCtrl.DeleteTable)

		admin.GET("/waiters", waiterCtrl.GetWaiters)
		admin.POST("/waiters", waiterCtrl.CreateWaiter)
		admin.PUT("/waiters/:id", waiterCtrl.UpdateWaiter)
		admin.DELETE("/waiters/:id", waiterCtrl.DeleteWaiter)

		admin.GET("/reservations", reservationCtrl.GetReservations)
		admin.GET("/reservations/tables", reservationCtrl.GetReservableTables)
		admin.POST("/reservations", reservationCtrl.CreateReservation)
		admin.PUT("/reservations/:id", reservationCtrl.UpdateReservation)
		admin.PATCH("/reservations/:id/status", reservationCtrl.UpdateReservationStatus)
		admin.DELETE("/reservations/:id", reservationCtrl.DeleteReservation)
	}

	return r
}

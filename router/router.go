package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danuarta/property-console/config"
	"github.com/danuarta/property-console/controllers"
	"github.com/danuarta/property-console/middlewares"
	"github.com/danuarta/property-console/services"
	"github.com/danuarta/property-console/storage"
)

func SetupRouter(db *gorm.DB, blobs storage.BlobStore, cfg config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	ownershipSvc := services.NewOwnershipService(db)
	qrSvc := services.NewQRService(db, blobs, cfg.BaseOrderURL)
	orderSvc := services.NewOrderService(db)

	accountCtrl := controllers.NewAccountController(db)
	buildingCtrl := controllers.NewBuildingController(db, ownershipSvc)
	unitCtrl := controllers.NewUnitController(db, ownershipSvc, qrSvc)
	menuCtrl := controllers.NewMenuController(db, ownershipSvc)
	serviceCtrl := controllers.NewServiceController(db, ownershipSvc)
	orderCtrl := controllers.NewOrderController(db, ownershipSvc, orderSvc)
	guestCtrl := controllers.NewGuestController(db, ownershipSvc, orderSvc)
	dashboardCtrl := controllers.NewDashboardController(db, ownershipSvc)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", accountCtrl.Register)
		public.POST("/login", accountCtrl.Login)
	}

	// -- GUEST (no auth, reached via a unit's QR deep link) --
	guest := r.Group("/guest")
	{
		guest.GET("/units/:unit_id", guestCtrl.GetUnit)
		guest.GET("/buildings/:building_id", guestCtrl.GetBuilding)
		guest.GET("/menu-items", guestCtrl.GetMenuItems)
		guest.GET("/services", guestCtrl.GetServices)
		guest.POST("/orders", guestCtrl.CreateOrder)
	}

	// ----------------------------------------------------------------
	//                      OWNER ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware())
	{
		admin.GET("/profile", accountCtrl.GetProfile)

		// BUILDINGS
		admin.GET("/buildings", buildingCtrl.GetBuildings)
		admin.POST("/buildings", buildingCtrl.CreateBuilding)
		admin.GET("/buildings/:building_id", buildingCtrl.GetBuildingByID)
		admin.PATCH("/buildings/:building_id", buildingCtrl.UpdateBuilding)
		admin.DELETE("/buildings/:building_id", buildingCtrl.DeleteBuilding)

		// UNITS
		admin.GET("/units", unitCtrl.GetUnits)
		admin.POST("/units", unitCtrl.CreateUnit)
		admin.GET("/units/:unit_id", unitCtrl.GetUnitByID)
		admin.PATCH("/units/:unit_id", unitCtrl.UpdateUnit)
		admin.DELETE("/units/:unit_id", unitCtrl.DeleteUnit)
		admin.POST("/units/:unit_id/qrcode", unitCtrl.ProvisionQRCode)

		// MENU ITEMS
		admin.GET("/menu-items", menuCtrl.GetMenuItems)
		admin.POST("/menu-items", menuCtrl.CreateMenuItem)
		admin.PATCH("/menu-items/:item_id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu-items/:item_id", menuCtrl.DeleteMenuItem)

		// SERVICES
		admin.GET("/services", serviceCtrl.GetServices)
		admin.POST("/services", serviceCtrl.CreateService)
		admin.PATCH("/services/:service_id", serviceCtrl.UpdateService)
		admin.DELETE("/services/:service_id", serviceCtrl.DeleteService)

		// ORDERS
		admin.GET("/orders", orderCtrl.GetOrders)
		admin.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		admin.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		admin.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

		// DASHBOARD
		admin.GET("/dashboard/stats", dashboardCtrl.GetStats)
	}

	// Websocket feed, token via query string
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/events", controllers.EventsHandler)
	}

	return r
}

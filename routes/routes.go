package routes

import (
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/configs"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/controllers"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/middlewares"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/events"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/logger"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/payments"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/rag"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/storage"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/services"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the adapters chosen at start-up. Nil Checkout disables card payments,
// nil LLM disables the assistant and nil Broker keeps order events in-process.
type Deps struct {
	DB       *gorm.DB
	Config   *configs.Config
	Log      *logger.Logger
	Storage  storage.Uploader
	Checkout payments.Checkout
	LLM      rag.Completer
	History  rag.HistoryStore
	Broker   events.Publisher
}

// App exposes what main has to run or stop besides the router.
type App struct {
	Carts *services.CartService
	Hub   *ws.TrackingHub
}

func RegisterRoutes(r *gin.Engine, d Deps) *App {
	cfg := d.Config
	if d.History == nil {
		d.History = rag.NewMemoryHistory(0)
	}

	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	if local, ok := d.Storage.(*storage.Local); ok {
		r.Static(local.PublicPrefix, local.Dir)
	}

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	ownerRepo := repository.NewOwnerRepository(d.DB)
	dboyRepo := repository.NewDeliveryBoyRepository(d.DB)
	cityRepo := repository.NewCityRepository(d.DB)
	restRepo := repository.NewRestaurantRepository(d.DB)
	catRepo := repository.NewCategoryRepository(d.DB)
	itemRepo := repository.NewItemRepository(d.DB)
	cartRepo := repository.NewCartRepository(d.DB)
	orderRepo := repository.NewOrderRepository(d.DB)
	reviewRepo := repository.NewReviewRepository(d.DB)
	reportRepo := repository.NewReportRepository(d.DB)

	// Services
	authSvc := services.NewAuthService(userRepo, itemRepo, restRepo, cfg.JWTSecret, cfg.JWTTTL)
	ownerSvc := services.NewOwnerService(ownerRepo, restRepo, cfg.JWTSecret, cfg.JWTTTL)
	restSvc := services.NewRestaurantService(d.DB, restRepo, ownerRepo, orderRepo, reviewRepo, itemRepo, catRepo)
	catSvc := services.NewCategoryService(catRepo)
	itemSvc := services.NewItemService(itemRepo, catRepo, restRepo)
	cartSvc := services.NewCartService(d.DB, cartRepo, itemRepo)
	orderSvc := services.NewOrderService(d.DB, orderRepo, cartRepo, itemRepo, restRepo, nil, d.Checkout, cfg.ClientSiteURL, d.Log)
	dboySvc := services.NewDeliveryBoyService(dboyRepo, orderRepo, cfg.JWTSecret, cfg.JWTTTL)
	reviewSvc := services.NewReviewService(d.DB, reviewRepo, restRepo)
	reportSvc := services.NewReportService(reportRepo, itemRepo)
	adminSvc := services.NewSuperAdminService(d.DB, userRepo, ownerRepo, dboyRepo, restRepo, orderRepo, cityRepo)

	// order events reach live trackers and, when configured, the broker
	hub := ws.NewTrackingHub(orderSvc, d.Log)
	fanout := events.Fanout{hub}
	if d.Broker != nil {
		fanout = append(fanout, d.Broker)
	}
	orderSvc.Events = fanout

	var bot *rag.Bot
	if d.LLM != nil {
		bot = rag.NewBot(d.LLM, repository.NewCatalogRepository(d.DB), d.History, d.Log)
	}

	// Controllers
	userCtrl := controllers.NewUserController(authSvc, orderSvc, d.Storage)
	ownerCtrl := controllers.NewOwnerController(ownerSvc)
	restCtrl := controllers.NewRestaurantController(restSvc, d.Storage)
	catCtrl := controllers.NewCategoryController(catSvc)
	itemCtrl := controllers.NewItemController(itemSvc, catSvc, d.Storage)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc, d.Checkout)
	dboyCtrl := controllers.NewDeliveryBoyController(dboySvc, orderSvc, d.Storage)
	reviewCtrl := controllers.NewReviewController(reviewSvc)
	reportCtrl := controllers.NewReportController(reportSvc)
	adminCtrl := controllers.NewSuperAdminController(adminSvc, d.Storage)
	ragCtrl := controllers.NewRagController(bot, d.History)

	// Middlewares
	user := middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleUser, entity.RoleSuperAdmin)
	owner := middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleOwner)
	ownerRest := []gin.HandlerFunc{owner, middlewares.RequireOwnerRestaurant(ownerSvc)}
	rider := middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleDeliveryBoy)
	superAdmin := []gin.HandlerFunc{user, middlewares.RequireSuperAdmin(userRepo)}

	api := r.Group("/api/v1")

	// Customer accounts
	u := api.Group("/auth/user")
	{
		u.POST("/register", userCtrl.Register)
		u.POST("/login", userCtrl.Login)

		ua := u.Group("", user)
		ua.GET("/get-favorite-restaurants", userCtrl.FavoriteRestaurants)
		ua.PUT("/add-to-favorite-restaurant", userCtrl.AddFavoriteRestaurant)
		ua.DELETE("/removed-from-favorite-restaurant/:restaurantId", userCtrl.RemoveFavoriteRestaurant)
		ua.GET("/get-favorite-items", userCtrl.FavoriteItems)
		ua.PUT("/add-to-favorite-item", userCtrl.AddFavoriteItem)
		ua.DELETE("/removed-from-favorite-item/:itemId", userCtrl.RemoveFavoriteItem)
		ua.GET("/fetch-user-data", userCtrl.Profile)
		ua.PUT("/manage-profile", userCtrl.UpdateProfile)
		ua.POST("/upload-profile-image", userCtrl.UploadProfileImage)
		ua.GET("/checkuser", userCtrl.CheckUser)
		ua.GET("/check-order/:orderId", userCtrl.CheckOrder)
	}

	// Restaurant owners
	o := api.Group("/auth/owner")
	{
		o.POST("/register", ownerCtrl.Register)
		o.POST("/login", ownerCtrl.Login)
		o.GET("/check-owner", owner, ownerCtrl.CheckOwner)

		or := o.Group("", ownerRest...)
		or.GET("/checkownerandrestaurant", ownerCtrl.CheckOwnerAndRestaurant)
		or.PUT("/manage-profile/:id", ownerCtrl.UpdateProfile)
		or.GET("/fetch-owner/:id", ownerCtrl.Fetch)
		or.GET("/fetch-owner-data/:id", ownerCtrl.FetchWithRestaurant)
	}

	// Restaurants
	rs := api.Group("/auth/restaurant")
	{
		rs.POST("/create", owner, restCtrl.Create)
		rs.GET("/get-all-restaurants/:city", restCtrl.ListByCity)
		rs.GET("/get-search-restaurants/:city/:searchRestaurant", restCtrl.Search)
		rs.GET("/get-filtered-restaurants/:city/:sortBy", restCtrl.Filter)
		rs.GET("/check-restaurant-creation-status/:restaurantId", restCtrl.CreationStatus)
		rs.GET("/get-popular-restaurants/:city", restCtrl.Popular)

		rr := rs.Group("", ownerRest...)
		rr.GET("/fetch-restaurant/:id", restCtrl.Fetch)
		rr.PUT("/manage-restaurant/:id", restCtrl.Update)
		rr.GET("/get-restaurant-dashboard-overview/:restaurantId", restCtrl.Dashboard)
	}

	// Categories
	cg := api.Group("/category", ownerRest...)
	{
		cg.POST("/create-category", catCtrl.Create)
		cg.PUT("/update-category/:id", catCtrl.Update)
		cg.GET("/getallcategories", catCtrl.List)
		cg.DELETE("/delete-category/:id", catCtrl.Delete)
	}

	// Items
	it := api.Group("/item")
	{
		it.GET("/get-restaurant-items/:restaurantId", itemCtrl.Menu)
		it.GET("/get-search-item/:restaurantId/:searchItem", itemCtrl.Search)
		it.GET("/get-restaurant-items-by-rating/:restaurantId", itemCtrl.ByRating)
		it.GET("/get-popular-items", itemCtrl.Popular)

		io := it.Group("", ownerRest...)
		io.POST("/create-item", itemCtrl.Create)
		io.GET("/get-all-items/:restaurantId", itemCtrl.ListOwn)
		io.PUT("/update-item/:itemId", itemCtrl.Update)
		io.DELETE("/delete-item/:id", itemCtrl.Delete)
		io.GET("/filter-items/:categoryId", itemCtrl.ByCategory)
		io.GET("/check-item/:restaurantId/:categoryId", itemCtrl.CheckCategoryItems)
	}

	// Cart
	ct := api.Group("/cart", user)
	{
		ct.POST("/add-to-cart", cartCtrl.Add)
		ct.GET("/get-user-cart/:userId/:restaurantId", cartCtrl.Get)
		ct.DELETE("/remove-from-cart/:userId/:itemId/:restaurantId", cartCtrl.RemoveOne)
		ct.DELETE("/remove-all-items-from-cart/:userId/:itemId/:restaurantId", cartCtrl.RemoveLine)
	}

	// Orders
	od := api.Group("/order")
	{
		od.POST("/stripe-webhook", orderCtrl.StripeWebhook)
		od.GET("/track/:orderId", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)

		ou := od.Group("", user)
		ou.POST("/create-order", orderCtrl.Create)
		ou.GET("/get-order-details/:orderId", orderCtrl.Details)
		ou.GET("/get-user-orders", orderCtrl.UserOrders)
		ou.GET("/get-user-order-status/:statusOrderId", orderCtrl.UserOrderStatus)
		ou.DELETE("/delete-user-order/:orderId", orderCtrl.RemoveFromHistory)
		ou.PUT("/review-prompt-dismissed", orderCtrl.DismissReviewPrompt)
		ou.PUT("/cancel-order/:orderId", orderCtrl.Cancel)

		oo := od.Group("", ownerRest...)
		oo.GET("/get-restaurant-orders/:restaurantId", orderCtrl.RestaurantOrders)
		oo.PUT("/update-order-status/:orderId", orderCtrl.UpdateStatus)
		oo.GET("/get-filter-status-orders/:status/:restaurantId", orderCtrl.RestaurantOrdersByStatus)
	}

	// Reviews
	rv := api.Group("/review")
	{
		rv.POST("/create-review", user, reviewCtrl.Create)
		rv.GET("/get-restaurant-reviews/:restaurantId", reviewCtrl.ForRestaurant)
		rv.GET("/get-item-rating/:foodItemId", reviewCtrl.ItemRating)
	}

	// Reports
	rp := api.Group("/report")
	{
		rp.POST("/report-item", user, reportCtrl.ReportItem)
		rp.GET("/get-all-items-reports/:restaurantId", append(ownerRest, reportCtrl.ForRestaurant)...)
	}

	// Super admin
	sa := api.Group("/superadmin")
	{
		sa.GET("/get-all-cities", adminCtrl.Cities)
		sa.GET("/check-super-admin", user, adminCtrl.Check)

		sx := sa.Group("", superAdmin...)
		sx.GET("/restaurant-creation-requests", adminCtrl.CreationRequests)
		sx.PUT("/update-restaurant-status/:restaurantId", adminCtrl.UpdateRestaurantStatus)
		sx.GET("/get-all-restaurants", adminCtrl.Restaurants)
		sx.GET("/get-all-users", adminCtrl.Users)
		sx.GET("/get-all-restaurant-admins", adminCtrl.Owners)
		sx.GET("/get-all-delivery-partners", adminCtrl.DeliveryPartners)
		sx.GET("/dashboard-overview", adminCtrl.Dashboard)
		sx.GET("/get-revenue-overview", adminCtrl.RevenueOverview)
		sx.GET("/get-payouts-overview", adminCtrl.PayoutsOverview)
		sx.GET("/get-commission-overview/:city/:dateRange", adminCtrl.CommissionOverview)
		sx.POST("/add-city", adminCtrl.AddCity)
		sx.PUT("/complete-payout-now", adminCtrl.CompletePayout)
	}

	// Delivery partners
	db := api.Group("/deliveryboy")
	{
		db.POST("/register", dboyCtrl.Register)
		db.POST("/login", dboyCtrl.Login)

		da := db.Group("", rider)
		da.GET("/check-delivery-boy", dboyCtrl.Check)
		da.GET("/get-delivery-boy-data/:deliveryBoyId", dboyCtrl.Profile)
		da.PUT("/update-profile-info/:deliveryBoyId", dboyCtrl.UpdateProfile)
		da.GET("/get-orders/:city", dboyCtrl.CityOrders)
		da.PUT("/accept-order/:orderId", dboyCtrl.Accept)
		da.PUT("/order-delivered/:orderId", dboyCtrl.Delivered)
		da.PUT("/return-order/:orderId", dboyCtrl.Return)
		da.GET("/get-delivery-boy-dashboard-overview/:deliveryBoyId", dboyCtrl.Dashboard)
		da.GET("/get-delivery-boy-earnings/:deliveryBoyId", dboyCtrl.Earnings)
		da.GET("/get-all-orders/:deliveryBoyId", dboyCtrl.MyOrders)
	}

	// Menu assistant
	rg := api.Group("/rag")
	{
		rg.POST("/ask", ragCtrl.Ask)
		rg.GET("/history", append(superAdmin, ragCtrl.RecentHistory)...)
	}

	return &App{Carts: cartSvc, Hub: hub}
}

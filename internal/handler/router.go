package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shophub/internal/handler/api"
	"shophub/internal/handler/middleware"
	"shophub/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth     *api.AuthHandler
	Store    *api.StoreHandler
	Product  *api.ProductHandler
	Cart     *api.CartHandler
	Order    *api.OrderHandler
	Tracking *api.TrackingHandler
	Shipping *api.ShippingHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		stores := apiGroup.Group("/stores")
		{
			addRoutes(stores, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: h.Store.GetStore},
			})

			storesAuth := stores.Group("")
			storesAuth.Use(authMiddleware.RequireAuth())
			addRoutes(storesAuth, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Store.CreateStore},
			})
		}

		products := apiGroup.Group("/products")
		{
			addRoutes(products, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Product.ListProducts},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Product.GetProduct},
			})

			productsAuth := products.Group("")
			productsAuth.Use(authMiddleware.RequireAuth())
			addRoutes(productsAuth, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Product.CreateProduct},
			})
		}

		cart := apiGroup.Group("/cart")
		cart.Use(authMiddleware.RequireAuth())
		{
			addRoutes(cart, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Cart.GetCart},
				{Method: http.MethodPost, Path: "/items", Handler: h.Cart.AddItem},
				{Method: http.MethodPut, Path: "/items/:id", Handler: h.Cart.UpdateItem},
				{Method: http.MethodDelete, Path: "/items/:id", Handler: h.Cart.RemoveItem},
			})
		}

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Order.PlaceOrder},
				{Method: http.MethodGet, Path: "", Handler: h.Order.ListOrders},
				{Method: http.MethodGet, Path: "/new", Handler: h.Order.ListNewOrders},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Order.GetOrder},
				{Method: http.MethodGet, Path: "/:id/status", Handler: h.Tracking.GetStatus},
				{Method: http.MethodPut, Path: "/:id/status", Handler: h.Tracking.UpdateStatus},
			})
		}

		shipping := apiGroup.Group("/shipping")
		{
			addRoutes(shipping, []route{
				{Method: http.MethodPost, Path: "/quote", Handler: h.Shipping.Quote},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}

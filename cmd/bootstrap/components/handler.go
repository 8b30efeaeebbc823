package components

import (
	"shophub/internal/handler"
	"shophub/internal/handler/api"
	"shophub/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewStoreHandler,
		api.NewProductHandler,
		api.NewCartHandler,
		api.NewOrderHandler,
		api.NewTrackingHandler,
		api.NewShippingHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	store *api.StoreHandler,
	product *api.ProductHandler,
	cart *api.CartHandler,
	order *api.OrderHandler,
	tracking *api.TrackingHandler,
	shipping *api.ShippingHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:     auth,
		Store:    store,
		Product:  product,
		Cart:     cart,
		Order:    order,
		Tracking: tracking,
		Shipping: shipping,
	}
}

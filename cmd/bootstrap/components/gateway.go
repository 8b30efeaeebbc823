package components

import (
	"shophub/internal/infra/payment"
	"shophub/internal/infra/shipping"
	"shophub/internal/pkg/config"
	"shophub/internal/usecase/commands"
	"shophub/internal/usecase/queries"

	"go.uber.org/fx"
)

// GatewayModule wires the outbound HTTP clients: payment capture, CEP lookup
// and geocoding.
var GatewayModule = fx.Module("gateway",
	fx.Provide(
		func(cfg config.Config) commands.PaymentGateway {
			return payment.NewGateway(cfg.Payment)
		},
		func(cfg config.Config) config.ShippingConfig {
			return cfg.Shipping
		},
		shipping.NewCEPClient,
		shipping.NewGeocoder,
		fx.Annotate(
			shipping.NewResolver,
			fx.As(new(queries.CEPResolver)),
		),
		fx.Annotate(
			shipping.NewEstimator,
			fx.As(new(queries.DistanceEstimator)),
		),
	),
)

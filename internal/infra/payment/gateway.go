package payment

import (
	"context"
	"fmt"

	"shophub/internal/pkg/config"
	"shophub/internal/usecase/commands"

	"github.com/google/uuid"
)

// NewGateway selects the capture backend from config. The fake gateway
// approves everything and is the default outside production.
func NewGateway(cfg config.PaymentConfig) commands.PaymentGateway {
	if cfg.Mode == "fake" {
		return NewFakeGateway()
	}
	return NewStripeGateway(cfg)
}

type FakeGateway struct{}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{}
}

func (g *FakeGateway) Capture(_ context.Context, amountCents int64, _ commands.PaymentMethod) (*commands.CaptureResult, error) {
	return &commands.CaptureResult{
		Gateway:     "fake",
		Reference:   fmt.Sprintf("fake_%s", uuid.New().String()),
		AmountCents: amountCents,
		Status:      "succeeded",
	}, nil
}

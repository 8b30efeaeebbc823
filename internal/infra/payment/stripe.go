package payment

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"shophub/internal/pkg/config"
	"shophub/internal/pkg/errs"
	"shophub/internal/usecase/commands"
)

// StripeGateway captures card payments through a Stripe-compatible charges
// API. Every call carries the configured timeout so a slow gateway cannot
// hold an order placement open indefinitely; a timeout surfaces as a capture
// error, never as silent success.
type StripeGateway struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewStripeGateway(cfg config.PaymentConfig) *StripeGateway {
	return &StripeGateway{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		secretKey: cfg.SecretKey,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

type chargeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *StripeGateway) Capture(ctx context.Context, amountCents int64, method commands.PaymentMethod) (*commands.CaptureResult, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", "brl")
	form.Set("source", method.Reference)
	form.Set("capture", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/charges", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errs.Wrap(err, "failed to build charge request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "charge request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errs.Wrap(err, "failed to read charge response")
	}

	var charge chargeResponse
	if err := json.Unmarshal(body, &charge); err != nil {
		return nil, errs.Wrap(err, "failed to decode charge response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if charge.Error != nil && charge.Error.Message != "" {
			return nil, errs.Newf("charge declined: %s", charge.Error.Message)
		}
		return nil, errs.Newf("charge failed with status %d", resp.StatusCode)
	}

	return &commands.CaptureResult{
		Gateway:     "stripe",
		Reference:   charge.ID,
		AmountCents: amountCents,
		Status:      charge.Status,
	}, nil
}

var _ commands.PaymentGateway = (*StripeGateway)(nil)

package queries

import (
	"context"
	"math"

	"shophub/internal/pkg/config"
	"shophub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCEPUnresolved = errs.New("destination CEP could not be resolved")
)

// CEPInfo is a resolved postal code.
type CEPInfo struct {
	CEP          string
	Street       string
	Neighborhood string
	City         string
	State        string
}

type CEPResolver interface {
	Resolve(ctx context.Context, cep string) (*CEPInfo, error)
}

// DistanceEstimator returns the geodesic distance in kilometers between two
// free-form address queries.
type DistanceEstimator interface {
	DistanceKm(ctx context.Context, origin, destination string) (float64, error)
}

type ShippingQuoteView struct {
	StoreID        uuid.UUID `json:"store_id"`
	OriginCEP      string    `json:"origin_cep"`
	DestinationCEP string    `json:"destination_cep"`
	Deliverable    bool      `json:"deliverable"`
	DistanceKm     float64   `json:"distance_km,omitempty"`
	FeeCents       int64     `json:"fee_cents,omitempty"`
	EstimatedDays  int       `json:"estimated_days"`
}

type ShippingQueries interface {
	Quote(ctx context.Context, storeID uuid.UUID, destinationCEP string) (*ShippingQuoteView, error)
}

type shippingQueriesImpl struct {
	storeQueries StoreQueries
	resolver     CEPResolver
	distance     DistanceEstimator
	cfg          config.ShippingConfig
}

func NewShippingQueries(
	storeQueries StoreQueries,
	resolver CEPResolver,
	distance DistanceEstimator,
	cfg config.ShippingConfig,
) ShippingQueries {
	return &shippingQueriesImpl{
		storeQueries: storeQueries,
		resolver:     resolver,
		distance:     distance,
		cfg:          cfg,
	}
}

// Quote prices local delivery from the store to a destination CEP. Delivery
// is offered only when both CEPs resolve to the same city; the fee is the
// store's own delivery fee (or the configured base fee) plus the per-km rate
// for distance beyond the free radius. The fee rule is a fixed parameterized
// formula, not a pluggable expression.
func (q *shippingQueriesImpl) Quote(ctx context.Context, storeID uuid.UUID, destinationCEP string) (*ShippingQuoteView, error) {
	store, err := q.storeQueries.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	origin, err := q.resolver.Resolve(ctx, store.CEP)
	if err != nil {
		return nil, errs.Mark(err, ErrCEPUnresolved)
	}
	destination, err := q.resolver.Resolve(ctx, destinationCEP)
	if err != nil {
		return nil, errs.Mark(err, ErrCEPUnresolved)
	}

	view := &ShippingQuoteView{
		StoreID:        storeID,
		OriginCEP:      origin.CEP,
		DestinationCEP: destination.CEP,
	}

	if origin.City != destination.City || origin.State != destination.State {
		return view, nil
	}

	distanceKm, err := q.distance.DistanceKm(ctx, addressQuery(origin), addressQuery(destination))
	if err != nil {
		return nil, errs.Wrap(err, "failed to estimate distance")
	}

	view.Deliverable = true
	view.DistanceKm = math.Round(distanceKm*100) / 100
	view.FeeCents = q.fee(store.DeliveryFeeCents, distanceKm)
	view.EstimatedDays = estimatedDays(distanceKm)

	return view, nil
}

func (q *shippingQueriesImpl) fee(storeFeeCents int64, distanceKm float64) int64 {
	base := storeFeeCents
	if base <= 0 {
		base = q.cfg.BaseFeeCents
	}

	extra := distanceKm - q.cfg.FreeRadiusKm
	if extra <= 0 {
		return base
	}
	return base + int64(math.Ceil(extra))*q.cfg.PerKmRateCents
}

// estimatedDays buckets by distance: nearby orders go out the same day.
func estimatedDays(distanceKm float64) int {
	switch {
	case distanceKm <= 5:
		return 0
	case distanceKm <= 15:
		return 1
	default:
		return 2
	}
}

func addressQuery(info *CEPInfo) string {
	if info.Street != "" {
		return info.Street + ", " + info.City + ", " + info.State + ", Brazil"
	}
	return info.City + ", " + info.State + ", Brazil"
}

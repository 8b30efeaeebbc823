package shipping

import (
	"context"

	"shophub/internal/domain/store"
	"shophub/internal/usecase/queries"
)

// Resolver adapts the ViaCEP client to the quote port, normalizing the CEP
// before the lookup.
type Resolver struct {
	client *CEPClient
}

func NewResolver(client *CEPClient) *Resolver {
	return &Resolver{client: client}
}

func (r *Resolver) Resolve(ctx context.Context, cep string) (*queries.CEPInfo, error) {
	normalized, err := store.NormalizeCEP(cep)
	if err != nil {
		return nil, err
	}

	address, err := r.client.Lookup(ctx, normalized)
	if err != nil {
		return nil, err
	}

	return &queries.CEPInfo{
		CEP:          normalized,
		Street:       address.Street,
		Neighborhood: address.Neighborhood,
		City:         address.City,
		State:        address.State,
	}, nil
}

// Estimator adapts the geocoder to the distance port.
type Estimator struct {
	geocoder *Geocoder
}

func NewEstimator(geocoder *Geocoder) *Estimator {
	return &Estimator{geocoder: geocoder}
}

func (e *Estimator) DistanceKm(ctx context.Context, origin, destination string) (float64, error) {
	from, err := e.geocoder.Geocode(ctx, origin)
	if err != nil {
		return 0, err
	}
	to, err := e.geocoder.Geocode(ctx, destination)
	if err != nil {
		return 0, err
	}
	return HaversineKm(*from, *to), nil
}

var (
	_ queries.CEPResolver       = (*Resolver)(nil)
	_ queries.DistanceEstimator = (*Estimator)(nil)
)

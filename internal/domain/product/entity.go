package product

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrNegativePrice = errors.New("price cannot be negative")
	ErrNegativeStock = errors.New("stock cannot be negative")
)

// Product owns the per-product stock counter the order saga reserves from.
// The counter itself is mutated only through the inventory repository's
// conditional decrement; the entity never goes below zero.
type Product struct {
	id            uuid.UUID
	storeID       uuid.UUID
	name          string
	description   string
	priceCents    int64
	stock         int32
	readyDelivery bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewProduct(storeID uuid.UUID, name, description string, priceCents int64, stock int32, readyDelivery bool) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}

	return &Product{
		id:            uuid.New(),
		storeID:       storeID,
		name:          name,
		description:   description,
		priceCents:    priceCents,
		stock:         stock,
		readyDelivery: readyDelivery,
	}, nil
}

func ReconstructProduct(id, storeID uuid.UUID, name, description string, priceCents int64, stock int32, readyDelivery bool, createdAt, updatedAt time.Time) *Product {
	return &Product{
		id:            id,
		storeID:       storeID,
		name:          name,
		description:   description,
		priceCents:    priceCents,
		stock:         stock,
		readyDelivery: readyDelivery,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p *Product) ID() uuid.UUID       { return p.id }
func (p *Product) StoreID() uuid.UUID  { return p.storeID }
func (p *Product) Name() string        { return p.name }
func (p *Product) Description() string { return p.description }
func (p *Product) PriceCents() int64   { return p.priceCents }
func (p *Product) Stock() int32        { return p.stock }
func (p *Product) ReadyDelivery() bool { return p.readyDelivery }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

func (p *Product) InStock() bool {
	return p.stock > 0
}

package commands

import (
	"context"

	"shophub/internal/domain/product"
	"shophub/internal/infra"
	"shophub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errs.New("product not found")
	ErrNotStoreOwner   = errs.New("account does not own this store")
)

type CreateProductInput struct {
	StoreID       uuid.UUID
	Name          string
	Description   string
	PriceCents    int64
	Stock         int32
	ReadyDelivery bool
}

type ProductCommands interface {
	Create(ctx context.Context, accountID uuid.UUID, input CreateProductInput) (uuid.UUID, error)
}

type productUseCaseImpl struct {
	productRepo ProductRepository
	storeRepo   StoreRepository
}

func NewProductUseCase(productRepo ProductRepository, storeRepo StoreRepository) ProductCommands {
	return &productUseCaseImpl{
		productRepo: productRepo,
		storeRepo:   storeRepo,
	}
}

func (u *productUseCaseImpl) Create(ctx context.Context, accountID uuid.UUID, input CreateProductInput) (uuid.UUID, error) {
	s, err := u.storeRepo.FindByID(ctx, input.StoreID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrStoreNotFound
		}
		return uuid.Nil, errs.Wrap(err, "failed to find store")
	}
	if s.AccountID != accountID {
		return uuid.Nil, ErrNotStoreOwner
	}

	p, err := product.NewProduct(input.StoreID, input.Name, input.Description, input.PriceCents, input.Stock, input.ReadyDelivery)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to create product")
	}

	return id, nil
}
